package application

import (
	"errors"
	"fmt"

	"github.com/rawatr0788-code/Gamerz-Kit/internal/domains/identity/domain"
	"github.com/rawatr0788-code/Gamerz-Kit/internal/domains/identity/ports"
	"github.com/rawatr0788-code/Gamerz-Kit/internal/shared/apperrors"
)

// ErrInvalidCredentials is returned for unknown emails and wrong passwords alike.
var ErrInvalidCredentials = fmt.Errorf("%w: invalid email or password", apperrors.ErrUnauthenticated)

func mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, domain.ErrEmptyEmail) ||
		errors.Is(err, domain.ErrInvalidEmail) ||
		errors.Is(err, domain.ErrEmptyPassword) ||
		errors.Is(err, domain.ErrWeakPassword) ||
		errors.Is(err, domain.ErrPasswordTooLong) ||
		errors.Is(err, ports.ErrEmailInUse) {
		return apperrors.Validation(err)
	}
	if errors.Is(err, ports.ErrInvalidToken) || errors.Is(err, ports.ErrSessionNotFound) {
		return fmt.Errorf("%w: %w", apperrors.ErrUnauthenticated, err)
	}
	return err
}
