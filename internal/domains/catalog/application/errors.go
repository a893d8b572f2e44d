package application

import (
	"errors"

	"github.com/rawatr0788-code/Gamerz-Kit/internal/domains/catalog/domain"
	uploaddomain "github.com/rawatr0788-code/Gamerz-Kit/internal/domains/uploads/domain"
	"github.com/rawatr0788-code/Gamerz-Kit/internal/shared/apperrors"
)

func mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, domain.ErrEmptyID) ||
		errors.Is(err, domain.ErrEmptyName) ||
		errors.Is(err, domain.ErrMissingPrice) ||
		errors.Is(err, domain.ErrInvalidPrice) ||
		errors.Is(err, domain.ErrNegativePrice) ||
		errors.Is(err, domain.ErrPricePrecision) ||
		errors.Is(err, domain.ErrPriceTooLarge) ||
		errors.Is(err, domain.ErrMissingQRCodeURL) ||
		errors.Is(err, domain.ErrInvalidQRCodeURL) ||
		errors.Is(err, domain.ErrNoImages) ||
		errors.Is(err, domain.ErrInvalidImageURL) ||
		errors.Is(err, uploaddomain.ErrEmptyFile) ||
		errors.Is(err, uploaddomain.ErrMissingName) {
		return apperrors.Validation(err)
	}
	return err
}
