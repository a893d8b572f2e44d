package errors

import "github.com/rawatr0788-code/Gamerz-Kit/internal/shared/apperrors"

// MapAppError translates the shared error kinds into problems. Upload and
// backend failures keep a generic detail; the cause is only logged.
func MapAppError(err error) (ProblemDetail, bool) {
	switch apperrors.Kind(err) {
	case apperrors.ErrUnauthenticated:
		return ErrUnauthorized.WithDetail("sign in to continue"), true
	case apperrors.ErrAuthorization:
		return ErrForbidden.WithDetail("admin access required"), true
	case apperrors.ErrValidation:
		violations := leafMessages(err)
		return NewValidationProblem(violations[0], violations), true
	case apperrors.ErrInvalidTransition:
		return ErrInvalidTransition.WithDetail(leafMessages(err)[0]), true
	case apperrors.ErrNotFound:
		return ErrNotFound.WithDetail(leafMessages(err)[0]), true
	case apperrors.ErrUpload:
		return ErrUploadFailed.WithDetail("image upload failed, nothing was saved"), true
	case apperrors.ErrNetwork:
		return ErrUnavailable.WithDetail("storage backend unavailable, try again"), true
	default:
		return ProblemDetail{}, false
	}
}

var kinds = []error{
	apperrors.ErrUnauthenticated,
	apperrors.ErrAuthorization,
	apperrors.ErrValidation,
	apperrors.ErrInvalidTransition,
	apperrors.ErrNotFound,
	apperrors.ErrUpload,
	apperrors.ErrNetwork,
}

// leafMessages flattens joined errors into their messages, skipping the shared
// kind sentinels. It never returns an empty slice.
func leafMessages(err error) []string {
	var out []string
	var walk func(error)
	walk = func(e error) {
		switch u := e.(type) {
		case interface{ Unwrap() []error }:
			for _, inner := range u.Unwrap() {
				walk(inner)
			}
		default:
			if e != nil && !isKind(e) {
				out = append(out, e.Error())
			}
		}
	}
	walk(err)
	if len(out) == 0 {
		out = append(out, err.Error())
	}
	return out
}

func isKind(err error) bool {
	for _, kind := range kinds {
		if err == kind {
			return true
		}
	}
	return false
}
