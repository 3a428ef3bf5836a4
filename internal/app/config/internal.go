package config

import "strings"

type InternalConfig struct {
	App     App
	Smart   AppSmart
	FHIR    AppFHIR
	Session AppSession
	JWT     AppJWT
}

type App struct {
	Env                        string
	Port                       string
	Version                    string
	BaseUrl                    string
	Timezone                   string
	EndpointPrefix             string
	AllowedOrigins             []string
	MaxRequests                int
	ShutdownTimeoutInSeconds   int
	RequestTimeoutInSeconds    int
	RequestBodyLimitInMegabyte int
}

// AppSmart configures the SMART-on-FHIR client registration of this app.
type AppSmart struct {
	AppID                string
	Scope                string
	CallbackPath         string
	HTTPTimeoutInSeconds int
}

type AppFHIR struct {
	// DefaultAPIBase and DefaultPatientID back the session when no launch happened yet.
	DefaultAPIBase    string
	DefaultPatientID  string
	MaxSearchPages    int
	RequestsPerSecond int
	RequestBurst      int
}

type AppSession struct {
	Driver               string
	CookieName           string
	CookieSecure         bool
	ExpiredTimeInMinutes int
}

type AppJWT struct {
	Secret string
}

// RoutePrefix returns EndpointPrefix as "/prefix", or "" when unset.
func (a App) RoutePrefix() string {
	prefix := strings.Trim(a.EndpointPrefix, "/")
	if prefix == "" {
		return ""
	}
	return "/" + prefix
}

// PublicURL is the externally visible address of the app, prefix included.
func (a App) PublicURL() string {
	return strings.TrimRight(a.BaseUrl, "/") + a.RoutePrefix()
}
