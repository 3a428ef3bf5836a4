package contracts

import (
	"context"
	"net/http"
	"smartrx-service/internal/app/models"
)

type SmartClientSession interface {
	AuthorizeURL(ctx context.Context) (string, error)
	HandleCallback(ctx context.Context, callbackURL string) error
	Ready() bool
	PatientID() string
	ServerBase() string
	HTTPClient(ctx context.Context) *http.Client
	State() *models.AuthorizationState
}

type SmartClientFactory interface {
	// NewClientSession restores the persisted session, or starts one from cfg
	// when nothing is persisted. cfg may be nil.
	NewClientSession(ctx context.Context, cfg *models.LaunchConfig) (SmartClientSession, error)
}
