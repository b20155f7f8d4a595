package services

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/shashiranjanraj/storefront/pkg/validate"
)

// Business errors. Services wrap them with detail; controllers classify them
// with errors.Is and send the wrapped message to the client. Anything else is
// an internal error.
var (
	ErrValidation        = errors.New("validation failed")
	ErrNotFound          = errors.New("not found")
	ErrInsufficientStock = errors.New("insufficient stock")
	ErrEmptyCart         = errors.New("cart is empty")
	ErrProductMissing    = errors.New("product is no longer available")
	ErrInvalidState      = errors.New("invalid order state")
)

func validationError(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}

// validateInput runs struct-tag validation and folds the result into ErrValidation.
func validateInput(in any) error {
	if errs := validate.Struct(in); validate.HasErrors(errs) {
		return validationError("%s", validate.Summary(errs))
	}
	return nil
}

// notFound maps gorm's missing-row error to ErrNotFound for the named entity.
func notFound(entity string, err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%s %w", entity, ErrNotFound)
	}
	return err
}
