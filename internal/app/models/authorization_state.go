package models

import "golang.org/x/oauth2"

const (
	PhaseUnauthenticated = "UNAUTHENTICATED"
	PhaseAuthorizing     = "AUTHORIZING"
	PhaseAuthorized      = "AUTHORIZED"
)

// AuthorizationState is everything the handshake needs to survive a browser
// redirect. It is persisted as one opaque JSON value and replaced on every save.
type AuthorizationState struct {
	AppID        string        `json:"app_id"`
	AuthType     string        `json:"auth_type"`
	ServerBase   string        `json:"server_base"`
	RedirectURI  string        `json:"redirect_uri,omitempty"`
	LaunchToken  *string       `json:"launch_token,omitempty"`
	Scope        string        `json:"scope,omitempty"`
	AuthorizeURI string        `json:"authorize_uri,omitempty"`
	TokenURI     string        `json:"token_uri,omitempty"`
	PKCE         bool          `json:"pkce,omitempty"`
	State        string        `json:"state,omitempty"`
	CodeVerifier string        `json:"code_verifier,omitempty"`
	Token        *oauth2.Token `json:"token,omitempty"`
	PatientID    string        `json:"patient_id,omitempty"`
	EncounterID  string        `json:"encounter_id,omitempty"`
}

func (s *AuthorizationState) Phase() string {
	switch {
	case s.Token != nil && s.Token.AccessToken != "":
		return PhaseAuthorized
	case s.State != "":
		return PhaseAuthorizing
	default:
		return PhaseUnauthenticated
	}
}
