package exceptions

import (
	"errors"
	"fmt"
	"smartrx-service/internal/pkg/constvars"
	"strings"

	"github.com/go-playground/validator/v10"
)

func FormatFirstValidationError(err error) string {
	var validationErrors validator.ValidationErrors
	if err == nil || !errors.As(err, &validationErrors) || len(validationErrors) == 0 {
		return constvars.ErrClientCannotProcessRequest
	}
	return formatFieldError(validationErrors[0])
}

func formatFieldError(fieldErr validator.FieldError) string {
	fieldName := strings.ToLower(fieldErr.Field())
	switch fieldErr.Tag() {
	case "required":
		return fmt.Sprintf(constvars.ErrMsgRequired, fieldName)
	case "required_if":
		return fmt.Sprintf(constvars.ErrMsgRequiredIf, fieldName)
	case "oneof":
		return fmt.Sprintf(constvars.ErrMsgOneOf, fieldName, strings.Join(strings.Fields(fieldErr.Param()), ", "))
	case "url":
		return fmt.Sprintf(constvars.ErrMsgURL, fieldName)
	default:
		return fmt.Sprintf(constvars.ErrMsgDefault, fieldName)
	}
}
