package serverutils

import (
	"errors"
	"fmt"
	"strings"

	"ai-datavault-be/internal/pkg/apperrors"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// ValidateRequest runs struct-tag validation and converts failures into the
// ValidationError taxonomy so the error middleware can map them to 400s.
func ValidateRequest(req interface{}) error {
	if err := validate.Struct(req); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) {
			parts := make([]string, 0, len(fieldErrs))
			for _, fe := range fieldErrs {
				parts = append(parts, fmt.Sprintf("%s (%s)", fe.Field(), fe.Tag()))
			}
			return apperrors.NewValidationError("request", strings.Join(parts, ", "))
		}
		return apperrors.NewValidationError("request", err.Error())
	}
	return nil
}
