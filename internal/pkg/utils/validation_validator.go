package utils

import (
	"net/url"

	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate

func init() {
	validate = validator.New(validator.WithRequiredStructEnabled())
	validate.RegisterValidation("fhir_base_url", validateFhirBaseURL)
}

func ValidateStruct(s interface{}) error {
	return validate.Struct(s)
}

// validateFhirBaseURL accepts absolute http(s) URLs with a host.
func validateFhirBaseURL(fl validator.FieldLevel) bool {
	parsed, err := url.Parse(fl.Field().String())
	if err != nil {
		return false
	}
	return (parsed.Scheme == "http" || parsed.Scheme == "https") && parsed.Host != ""
}
