package sessionstore

import (
	"context"
	"smartrx-service/internal/app/contracts"
	"smartrx-service/internal/app/models"
	"smartrx-service/internal/pkg/constvars"
	"smartrx-service/internal/pkg/exceptions"
	"smartrx-service/internal/pkg/utils"

	"github.com/goccy/go-json"
	"go.uber.org/zap"
)

// authorizationStateStore keeps the AuthorizationState under one session key.
// It never looks inside the value.
type authorizationStateStore struct {
	Session contracts.BrowserSession
	Log     *zap.Logger
}

func NewAuthorizationStateStore(session contracts.BrowserSession, logger *zap.Logger) contracts.AuthorizationStateStore {
	return &authorizationStateStore{
		Session: session,
		Log:     logger,
	}
}

func (s *authorizationStateStore) Load(ctx context.Context) (*models.AuthorizationState, error) {
	raw, found, err := s.Session.Get(ctx, constvars.SessionKeyAuthorizationState)
	if err != nil {
		return nil, err
	}
	if !found || raw == "" {
		return nil, nil
	}

	state := new(models.AuthorizationState)
	err = json.Unmarshal([]byte(raw), state)
	if err != nil {
		return nil, exceptions.ErrSessionDecodeState(err)
	}
	return state, nil
}

func (s *authorizationStateStore) Save(ctx context.Context, state *models.AuthorizationState) error {
	raw, err := json.Marshal(state)
	if err != nil {
		return exceptions.ErrCannotMarshalJSON(err)
	}

	err = s.Session.Set(ctx, constvars.SessionKeyAuthorizationState, string(raw))
	if err != nil {
		return err
	}

	s.Log.Debug("authorizationStateStore.Save succeeded",
		zap.String(constvars.LoggingRequestIDKey, utils.GetRequestIDFromContext(ctx)),
		zap.String("phase", state.Phase()),
	)
	return nil
}

func (s *authorizationStateStore) Clear(ctx context.Context) error {
	return s.Session.Clear(ctx)
}
