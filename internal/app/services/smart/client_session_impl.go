package smart

import (
	"context"
	"crypto/rand"
	"crypto/subtle"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"smartrx-service/internal/app/contracts"
	"smartrx-service/internal/app/models"
	"smartrx-service/internal/pkg/constvars"
	"smartrx-service/internal/pkg/exceptions"
	"smartrx-service/internal/pkg/utils"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/oauth2"
)

type clientFactory struct {
	Store      contracts.AuthorizationStateStore
	HTTPClient *http.Client
	Log        *zap.Logger
}

// NewClientFactory returns a factory for per-request SMART client sessions.
// httpClient is used for discovery, token exchange and as the transport
// underneath authorized FHIR calls.
func NewClientFactory(store contracts.AuthorizationStateStore, httpClient *http.Client, logger *zap.Logger) contracts.SmartClientFactory {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &clientFactory{
		Store:      store,
		HTTPClient: httpClient,
		Log:        logger,
	}
}

func (f *clientFactory) NewClientSession(ctx context.Context, cfg *models.LaunchConfig) (contracts.SmartClientSession, error) {
	state, err := f.Store.Load(ctx)
	if err != nil {
		return nil, err
	}

	if state == nil {
		state = stateFromLaunchConfig(cfg)
	}

	return &clientSession{factory: f, state: state}, nil
}

func stateFromLaunchConfig(cfg *models.LaunchConfig) *models.AuthorizationState {
	if cfg == nil {
		return &models.AuthorizationState{}
	}

	state := &models.AuthorizationState{
		AppID:       cfg.AppID,
		AuthType:    cfg.AuthType,
		ServerBase:  cfg.APIBase,
		RedirectURI: cfg.RedirectURI,
		LaunchToken: cfg.LaunchToken,
		Scope:       cfg.Scope,
	}
	if cfg.PatientID != nil {
		state.PatientID = *cfg.PatientID
	}
	return state
}

type clientSession struct {
	factory *clientFactory
	state   *models.AuthorizationState
}

// AuthorizeURL starts an authorization. For auth type "none" there is nothing
// to authorize: the state is persisted and "" returned.
func (s *clientSession) AuthorizeURL(ctx context.Context) (string, error) {
	requestID := utils.GetRequestIDFromContext(ctx)
	log := s.factory.Log
	log.Info("smartClient.AuthorizeURL called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingAuthTypeKey, s.state.AuthType),
		zap.String(constvars.LoggingServerBaseKey, s.state.ServerBase),
	)

	switch s.state.AuthType {
	case constvars.SmartAuthTypeNone:
		return "", s.save(ctx)
	case constvars.SmartAuthTypeOAuth2:
	default:
		return "", exceptions.ErrLaunchSequence(nil, fmt.Sprintf(constvars.ErrDevLaunchWrongAuthType, s.state.AuthType))
	}

	if s.state.AuthorizeURI == "" || s.state.TokenURI == "" {
		found, err := s.factory.discover(ctx, s.state.ServerBase)
		if err != nil {
			return "", err
		}
		s.state.AuthorizeURI = found.AuthorizeURI
		s.state.TokenURI = found.TokenURI
		s.state.PKCE = found.PKCES256
	}

	s.state.State = rand.Text()
	s.state.CodeVerifier = ""
	if s.state.PKCE {
		s.state.CodeVerifier = oauth2.GenerateVerifier()
	}
	s.state.Token = nil
	s.state.PatientID = ""
	s.state.EncounterID = ""

	opts := []oauth2.AuthCodeOption{
		oauth2.SetAuthURLParam(constvars.SmartAuthorizeParamAud, s.state.ServerBase),
	}
	if s.state.LaunchToken != nil && *s.state.LaunchToken != "" {
		opts = append(opts, oauth2.SetAuthURLParam(constvars.SmartAuthorizeParamLaunch, *s.state.LaunchToken))
	}
	if s.state.CodeVerifier != "" {
		opts = append(opts, oauth2.S256ChallengeOption(s.state.CodeVerifier))
	}

	err := s.save(ctx)
	if err != nil {
		return "", err
	}

	authURL := s.oauthConfig().AuthCodeURL(s.state.State, opts...)
	log.Info("smartClient.AuthorizeURL succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingURLKey, s.state.AuthorizeURI),
		zap.Bool("pkce", s.state.CodeVerifier != ""),
	)
	return authURL, nil
}

// HandleCallback validates the redirect back from the authorization server and
// exchanges the code for a token. On failure nothing is persisted.
func (s *clientSession) HandleCallback(ctx context.Context, callbackURL string) error {
	requestID := utils.GetRequestIDFromContext(ctx)
	log := s.factory.Log
	log.Info("smartClient.HandleCallback called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String("phase", s.state.Phase()),
	)

	parsed, err := url.Parse(callbackURL)
	if err != nil {
		return exceptions.ErrCallbackValidation(err, constvars.ErrDevCallbackParseURL)
	}
	query := parsed.Query()

	if errCode := query.Get(constvars.SmartCallbackParamError); errCode != "" {
		cause := errors.New(errCode)
		if desc := query.Get(constvars.SmartCallbackParamErrorDescription); desc != "" {
			cause = fmt.Errorf("%s: %s", errCode, desc)
		}
		return exceptions.ErrCallbackValidation(cause, fmt.Sprintf(constvars.ErrDevCallbackAuthorizationError, errCode))
	}

	if s.state.AuthType != constvars.SmartAuthTypeOAuth2 || s.state.State == "" {
		return exceptions.ErrCallbackValidation(nil, constvars.ErrDevCallbackNoPendingLogin)
	}

	returnedState := query.Get(constvars.SmartCallbackParamState)
	if returnedState == "" {
		return exceptions.ErrCallbackValidation(nil, constvars.ErrDevCallbackMissingState)
	}
	if subtle.ConstantTimeCompare([]byte(returnedState), []byte(s.state.State)) != 1 {
		return exceptions.ErrCallbackValidation(nil, constvars.ErrDevCallbackStateMismatch)
	}

	code := query.Get(constvars.SmartCallbackParamCode)
	if code == "" {
		return exceptions.ErrCallbackValidation(nil, constvars.ErrDevCallbackMissingCode)
	}

	var opts []oauth2.AuthCodeOption
	if s.state.CodeVerifier != "" {
		opts = append(opts, oauth2.VerifierOption(s.state.CodeVerifier))
	}

	exchangeCtx := context.WithValue(ctx, oauth2.HTTPClient, s.factory.HTTPClient)
	token, err := s.oauthConfig().Exchange(exchangeCtx, code, opts...)
	if err != nil {
		log.Error("smartClient.HandleCallback token exchange failed",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingURLKey, s.state.TokenURI),
			zap.Error(err),
		)
		if isTimeout(err) {
			return exceptions.ErrTokenExchangeTimeout(err, s.state.TokenURI)
		}
		return exceptions.ErrTokenExchange(err, s.state.TokenURI)
	}

	s.state.Token = token
	s.state.PatientID = tokenContext(token, constvars.SmartTokenContextPatient)
	s.state.EncounterID = tokenContext(token, constvars.SmartTokenContextEncounter)
	s.state.State = ""
	s.state.CodeVerifier = ""

	if s.state.PatientID == "" {
		log.Warn("smartClient.HandleCallback token response carries no patient context",
			zap.String(constvars.LoggingRequestIDKey, requestID),
		)
	}

	err = s.save(ctx)
	if err != nil {
		return err
	}

	log.Info("smartClient.HandleCallback succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingPatientIDKey, s.state.PatientID),
	)
	return nil
}

func (s *clientSession) Ready() bool {
	authorized := s.state.AuthType == constvars.SmartAuthTypeNone ||
		(s.state.AuthType == constvars.SmartAuthTypeOAuth2 && s.state.Token.Valid())
	return authorized && s.state.PatientID != "" && s.state.ServerBase != ""
}

func (s *clientSession) PatientID() string {
	return s.state.PatientID
}

func (s *clientSession) ServerBase() string {
	return s.state.ServerBase
}

// HTTPClient returns a client for FHIR calls, carrying the bearer token when
// the session was authorized through oauth2.
func (s *clientSession) HTTPClient(ctx context.Context) *http.Client {
	if s.state.AuthType != constvars.SmartAuthTypeOAuth2 || s.state.Token == nil {
		return s.factory.HTTPClient
	}
	ctx = context.WithValue(ctx, oauth2.HTTPClient, s.factory.HTTPClient)
	client := oauth2.NewClient(ctx, oauth2.StaticTokenSource(s.state.Token))
	client.Timeout = s.factory.HTTPClient.Timeout
	return client
}

func (s *clientSession) State() *models.AuthorizationState {
	state := *s.state
	return &state
}

func (s *clientSession) save(ctx context.Context) error {
	return s.factory.Store.Save(ctx, s.state)
}

func (s *clientSession) oauthConfig() *oauth2.Config {
	return &oauth2.Config{
		ClientID:    s.state.AppID,
		RedirectURL: s.state.RedirectURI,
		Scopes:      strings.Fields(s.state.Scope),
		Endpoint: oauth2.Endpoint{
			AuthURL:   s.state.AuthorizeURI,
			TokenURL:  s.state.TokenURI,
			AuthStyle: oauth2.AuthStyleInParams,
		},
	}
}

func tokenContext(token *oauth2.Token, key string) string {
	switch value := token.Extra(key).(type) {
	case string:
		return value
	case nil:
		return ""
	default:
		return fmt.Sprint(value)
	}
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}
