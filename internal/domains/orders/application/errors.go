package application

import (
	"errors"

	"github.com/rawatr0788-code/Gamerz-Kit/internal/domains/orders/domain"
	"github.com/rawatr0788-code/Gamerz-Kit/internal/domains/orders/ports"
	uploaddomain "github.com/rawatr0788-code/Gamerz-Kit/internal/domains/uploads/domain"
	"github.com/rawatr0788-code/Gamerz-Kit/internal/shared/apperrors"
)

func mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, domain.ErrInvalidTransition) || errors.Is(err, ports.ErrStaleStatus) {
		return apperrors.InvalidTransition(err)
	}
	if errors.Is(err, domain.ErrEmptyID) ||
		errors.Is(err, domain.ErrEmptyProductID) ||
		errors.Is(err, domain.ErrEmptyUserID) ||
		errors.Is(err, domain.ErrInvalidQuantity) ||
		errors.Is(err, domain.ErrMissingUTR) ||
		errors.Is(err, domain.ErrMissingPhone) ||
		errors.Is(err, domain.ErrMissingAddress) ||
		errors.Is(err, domain.ErrMissingReceiverName) ||
		errors.Is(err, domain.ErrMissingScreenshot) ||
		errors.Is(err, domain.ErrQuantityTooLarge) ||
		errors.Is(err, domain.ErrNegativeAmount) ||
		errors.Is(err, domain.ErrAmountTooLarge) ||
		errors.Is(err, domain.ErrUnknownStatus) ||
		errors.Is(err, ports.ErrIdempotencyConflict) ||
		errors.Is(err, uploaddomain.ErrEmptyFile) ||
		errors.Is(err, uploaddomain.ErrMissingName) {
		return apperrors.Validation(err)
	}
	return err
}
