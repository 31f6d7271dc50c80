package core

import (
	"log/slog"
	"strings"

	"github.com/go-playground/validator/v10"

	"aquacheck/internal/types"
)

// Validator wraps go-playground/validator for request DTO validation. It
// translates validator failures into structured AppErrors so handlers never
// leak raw validator messages to clients.
type Validator struct {
	validate *validator.Validate
	logger   *slog.Logger
}

// NewValidator creates a new Validator.
func NewValidator(logger *slog.Logger) *Validator {
	return &Validator{
		validate: validator.New(),
		logger:   logger,
	}
}

// ValidateStruct validates dst against its `validate` struct tags. On
// failure it returns a *types.AppError with code "validation_invalid_field"
// and a details map of field -> violated rule.
func (v *Validator) ValidateStruct(dst interface{}) error {
	err := v.validate.Struct(dst)
	if err == nil {
		return nil
	}

	validationErrs, ok := err.(validator.ValidationErrors)
	if !ok {
		// InvalidValidationError: dst was not a struct. Programming error.
		return types.NewAppError(types.ErrCodeInternalUnexpected, "invalid validation target", err)
	}

	details := make(map[string]any, len(validationErrs))
	for _, fe := range validationErrs {
		details[strings.ToLower(fe.Field())] = fe.Tag()
	}

	return types.NewAppErrorWithDetails(
		types.ErrCodeValidationInvalidField,
		"request validation failed",
		err,
		details,
	)
}
