package models

import "net/url"

// LaunchConfig is built once per launch request and never mutated afterwards.
type LaunchConfig struct {
	AppID       string  `validate:"required"`
	APIBase     string  `validate:"required,fhir_base_url"`
	AuthType    string  `validate:"required,oneof=oauth2 none"`
	LaunchToken *string `validate:"required_if=AuthType oauth2"`
	RedirectURI string  `validate:"required_if=AuthType oauth2"`
	PatientID   *string `validate:"required_if=AuthType none"`
	Scope       string
}

type LaunchRequest struct {
	Query      url.Values
	AppBaseURL string
}

type LaunchResult struct {
	RedirectURL string
	AuthType    string
}

func StringPtr(s string) *string {
	return &s
}
