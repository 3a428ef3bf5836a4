package contracts

import (
	"context"
	"smartrx-service/internal/app/models"
)

// BrowserSession is a key/value bag scoped to the session id found in ctx.
type BrowserSession interface {
	Get(ctx context.Context, key string) (value string, found bool, err error)
	Set(ctx context.Context, key, value string) error
	Clear(ctx context.Context) error
}

type AuthorizationStateStore interface {
	Load(ctx context.Context) (*models.AuthorizationState, error)
	Save(ctx context.Context, state *models.AuthorizationState) error
	Clear(ctx context.Context) error
}
