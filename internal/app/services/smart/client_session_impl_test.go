package smart

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"smartrx-service/internal/app/contracts"
	"smartrx-service/internal/app/models"
	"smartrx-service/internal/app/services/shared/sessionstore"
	"smartrx-service/internal/pkg/constvars"
	"smartrx-service/internal/pkg/exceptions"
	"smartrx-service/internal/pkg/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeEHR struct {
	svr         *httptest.Server
	wellKnown   bool
	pkce        bool
	tokenStatus int
	tokenBody   string
	tokenForm   url.Values
	tokenCalls  int
}

func newFakeEHR(t *testing.T) *fakeEHR {
	ehr := &fakeEHR{
		wellKnown:   true,
		pkce:        true,
		tokenStatus: http.StatusOK,
		tokenBody:   `{"access_token":"at-1","token_type":"Bearer","expires_in":3600,"scope":"launch patient/*.read","patient":"123","encounter":"enc-9"}`,
	}
	mux := http.NewServeMux()
	mux.HandleFunc("/fhir/.well-known/smart-configuration", func(w http.ResponseWriter, r *http.Request) {
		if !ehr.wellKnown {
			http.NotFound(w, r)
			return
		}
		methods := `[]`
		if ehr.pkce {
			methods = `["S256"]`
		}
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprintf(w, `{"authorization_endpoint":"%s/auth/authorize","token_endpoint":"%s/auth/token","code_challenge_methods_supported":%s}`, ehr.svr.URL, ehr.svr.URL, methods)
	})
	mux.HandleFunc("/fhir/metadata", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/fhir+json")
		fmt.Fprintf(w, `{"resourceType":"CapabilityStatement","rest":[{"mode":"server","security":{"extension":[{
			"url":"http://fhir-registry.smarthealthit.org/StructureDefinition/oauth-uris",
			"extension":[{"url":"authorize","valueUri":"%s/meta/authorize"},{"url":"token","valueUri":"%s/auth/token"}]}]}}]}`, ehr.svr.URL, ehr.svr.URL)
	})
	mux.HandleFunc("/auth/token", func(w http.ResponseWriter, r *http.Request) {
		ehr.tokenCalls++
		_ = r.ParseForm()
		ehr.tokenForm = r.PostForm
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(ehr.tokenStatus)
		fmt.Fprint(w, ehr.tokenBody)
	})
	mux.HandleFunc("/fhir/Patient/123", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, r.Header.Get("Authorization"))
	})
	ehr.svr = httptest.NewServer(mux)
	t.Cleanup(ehr.svr.Close)
	return ehr
}

func (e *fakeEHR) iss() string {
	return e.svr.URL + "/fhir"
}

func newTestFactory(ehr *fakeEHR) (contracts.SmartClientFactory, contracts.AuthorizationStateStore) {
	store := sessionstore.NewAuthorizationStateStore(sessionstore.NewMemoryBrowserSession(), zap.NewNop())
	return NewClientFactory(store, ehr.svr.Client(), zap.NewNop()), store
}

func ehrLaunchConfig(iss string) *models.LaunchConfig {
	return &models.LaunchConfig{
		AppID:       "my_web_app",
		APIBase:     iss,
		AuthType:    constvars.SmartAuthTypeOAuth2,
		LaunchToken: models.StringPtr("launch-abc"),
		RedirectURI: "https://app.example/authorize",
		Scope:       constvars.SmartDefaultScope,
	}
}

func startAuthorization(t *testing.T, ctx context.Context, factory contracts.SmartClientFactory, iss string) *url.URL {
	t.Helper()
	session, err := factory.NewClientSession(ctx, ehrLaunchConfig(iss))
	require.NoError(t, err)
	authURL, err := session.AuthorizeURL(ctx)
	require.NoError(t, err)
	parsed, err := url.Parse(authURL)
	require.NoError(t, err)
	return parsed
}

func TestClientSession_AuthorizeURL(t *testing.T) {
	ctx := utils.ContextWithSessionID(context.Background(), "s1")

	t.Run("well-known endpoints with PKCE", func(t *testing.T) {
		ehr := newFakeEHR(t)
		factory, store := newTestFactory(ehr)

		authURL := startAuthorization(t, ctx, factory, ehr.iss())
		q := authURL.Query()

		assert.Equal(t, ehr.svr.URL+"/auth/authorize", authURL.Scheme+"://"+authURL.Host+authURL.Path)
		assert.Equal(t, "code", q.Get("response_type"))
		assert.Equal(t, "my_web_app", q.Get("client_id"))
		assert.Equal(t, "https://app.example/authorize", q.Get("redirect_uri"))
		assert.Equal(t, constvars.SmartDefaultScope, q.Get("scope"))
		assert.Equal(t, ehr.iss(), q.Get("aud"))
		assert.Equal(t, "launch-abc", q.Get("launch"))
		assert.Equal(t, "S256", q.Get("code_challenge_method"))
		assert.NotEmpty(t, q.Get("code_challenge"))

		saved, err := store.Load(ctx)
		require.NoError(t, err)
		assert.Equal(t, q.Get("state"), saved.State)
		assert.NotEmpty(t, saved.CodeVerifier)
		assert.Equal(t, models.PhaseAuthorizing, saved.Phase())
	})

	t.Run("falls back to the capability statement", func(t *testing.T) {
		ehr := newFakeEHR(t)
		ehr.wellKnown = false
		factory, store := newTestFactory(ehr)

		authURL := startAuthorization(t, ctx, factory, ehr.iss())

		assert.Equal(t, "/meta/authorize", authURL.Path)
		assert.Empty(t, authURL.Query().Get("code_challenge"))
		saved, err := store.Load(ctx)
		require.NoError(t, err)
		assert.Equal(t, ehr.svr.URL+"/auth/token", saved.TokenURI)
		assert.Empty(t, saved.CodeVerifier)
	})

	t.Run("undiscoverable server aborts the launch", func(t *testing.T) {
		ehr := newFakeEHR(t)
		factory, store := newTestFactory(ehr)

		session, err := factory.NewClientSession(ctx, ehrLaunchConfig(ehr.svr.URL+"/unknown"))
		require.NoError(t, err)
		_, err = session.AuthorizeURL(ctx)

		assert.ErrorIs(t, err, exceptions.ErrKindLaunchSequence)
		saved, err := store.Load(ctx)
		assert.NoError(t, err)
		assert.Nil(t, saved)
	})

	t.Run("auth type none is ready without a token", func(t *testing.T) {
		ehr := newFakeEHR(t)
		factory, store := newTestFactory(ehr)

		session, err := factory.NewClientSession(ctx, &models.LaunchConfig{
			AppID:     "my_web_app",
			APIBase:   ehr.iss(),
			AuthType:  constvars.SmartAuthTypeNone,
			PatientID: models.StringPtr("123"),
		})
		require.NoError(t, err)
		authURL, err := session.AuthorizeURL(ctx)

		require.NoError(t, err)
		assert.Empty(t, authURL)
		assert.True(t, session.Ready())
		assert.Equal(t, "123", session.PatientID())

		saved, err := store.Load(ctx)
		require.NoError(t, err)
		assert.Equal(t, constvars.SmartAuthTypeNone, saved.AuthType)
		assert.Zero(t, ehr.tokenCalls)
	})

	t.Run("auth type none without patient is not ready", func(t *testing.T) {
		ehr := newFakeEHR(t)
		factory, _ := newTestFactory(ehr)

		session, err := factory.NewClientSession(ctx, &models.LaunchConfig{
			AppID:     "my_web_app",
			APIBase:   ehr.iss(),
			AuthType:  constvars.SmartAuthTypeNone,
			PatientID: models.StringPtr(""),
		})
		require.NoError(t, err)

		assert.False(t, session.Ready())
	})

	t.Run("nothing persisted and no config", func(t *testing.T) {
		ehr := newFakeEHR(t)
		factory, _ := newTestFactory(ehr)

		session, err := factory.NewClientSession(ctx, nil)

		require.NoError(t, err)
		assert.False(t, session.Ready())
	})
}

func TestClientSession_HandleCallback(t *testing.T) {
	ctx := utils.ContextWithSessionID(context.Background(), "s1")

	t.Run("exchanges the code and becomes ready", func(t *testing.T) {
		ehr := newFakeEHR(t)
		factory, store := newTestFactory(ehr)
		authURL := startAuthorization(t, ctx, factory, ehr.iss())
		pending, err := store.Load(ctx)
		require.NoError(t, err)

		session, err := factory.NewClientSession(ctx, nil)
		require.NoError(t, err)
		err = session.HandleCallback(ctx, "https://app.example/authorize?code=c-1&state="+authURL.Query().Get("state"))
		require.NoError(t, err)

		assert.True(t, session.Ready())
		assert.Equal(t, "123", session.PatientID())
		assert.Equal(t, "authorization_code", ehr.tokenForm.Get("grant_type"))
		assert.Equal(t, "c-1", ehr.tokenForm.Get("code"))
		assert.Equal(t, "my_web_app", ehr.tokenForm.Get("client_id"))
		assert.Equal(t, pending.CodeVerifier, ehr.tokenForm.Get("code_verifier"))

		saved, err := store.Load(ctx)
		require.NoError(t, err)
		assert.Equal(t, models.PhaseAuthorized, saved.Phase())
		assert.Empty(t, saved.State)
		assert.Empty(t, saved.CodeVerifier)
		assert.Equal(t, "enc-9", saved.EncounterID)

		restored, err := factory.NewClientSession(ctx, nil)
		require.NoError(t, err)
		assert.True(t, restored.Ready())
	})

	t.Run("authorized client sends the bearer token", func(t *testing.T) {
		ehr := newFakeEHR(t)
		factory, _ := newTestFactory(ehr)
		authURL := startAuthorization(t, ctx, factory, ehr.iss())
		session, err := factory.NewClientSession(ctx, nil)
		require.NoError(t, err)
		require.NoError(t, session.HandleCallback(ctx, "https://app.example/authorize?code=c&state="+authURL.Query().Get("state")))

		resp, err := session.HTTPClient(ctx).Get(ehr.iss() + "/Patient/123")
		require.NoError(t, err)
		defer resp.Body.Close()
		body, err := io.ReadAll(resp.Body)
		require.NoError(t, err)

		assert.Equal(t, "Bearer at-1", string(body))
	})

	failures := []struct {
		name     string
		callback func(state string) string
	}{
		{"error parameter", func(state string) string { return "/authorize?error=access_denied&state=" + state }},
		{"missing state", func(string) string { return "/authorize?code=c" }},
		{"state mismatch", func(string) string { return "/authorize?code=c&state=forged" }},
		{"missing code", func(state string) string { return "/authorize?state=" + state }},
	}
	for _, tc := range failures {
		t.Run(tc.name, func(t *testing.T) {
			ehr := newFakeEHR(t)
			factory, store := newTestFactory(ehr)
			authURL := startAuthorization(t, ctx, factory, ehr.iss())
			before, err := store.Load(ctx)
			require.NoError(t, err)

			session, err := factory.NewClientSession(ctx, nil)
			require.NoError(t, err)
			err = session.HandleCallback(ctx, "https://app.example"+tc.callback(authURL.Query().Get("state")))

			assert.ErrorIs(t, err, exceptions.ErrKindCallbackValidation)
			assert.False(t, session.Ready())
			assert.Zero(t, ehr.tokenCalls)
			after, err := store.Load(ctx)
			require.NoError(t, err)
			assert.Equal(t, before, after)
		})
	}

	t.Run("token endpoint failure leaves state untouched", func(t *testing.T) {
		ehr := newFakeEHR(t)
		ehr.tokenStatus = http.StatusBadRequest
		ehr.tokenBody = `{"error":"invalid_grant"}`
		factory, store := newTestFactory(ehr)
		authURL := startAuthorization(t, ctx, factory, ehr.iss())

		session, err := factory.NewClientSession(ctx, nil)
		require.NoError(t, err)
		err = session.HandleCallback(ctx, "https://app.example/authorize?code=bad&state="+authURL.Query().Get("state"))

		assert.ErrorIs(t, err, exceptions.ErrKindTokenExchange)
		saved, err := store.Load(ctx)
		require.NoError(t, err)
		assert.Equal(t, models.PhaseAuthorizing, saved.Phase())
	})

	t.Run("replayed callback is rejected", func(t *testing.T) {
		ehr := newFakeEHR(t)
		factory, _ := newTestFactory(ehr)
		authURL := startAuthorization(t, ctx, factory, ehr.iss())
		callback := "https://app.example/authorize?code=c&state=" + authURL.Query().Get("state")

		first, err := factory.NewClientSession(ctx, nil)
		require.NoError(t, err)
		require.NoError(t, first.HandleCallback(ctx, callback))

		second, err := factory.NewClientSession(ctx, nil)
		require.NoError(t, err)
		err = second.HandleCallback(ctx, callback)

		assert.ErrorIs(t, err, exceptions.ErrKindCallbackValidation)
		assert.Equal(t, 1, ehr.tokenCalls)
	})

	t.Run("token without patient context is not ready", func(t *testing.T) {
		ehr := newFakeEHR(t)
		ehr.tokenBody = `{"access_token":"at-2","token_type":"Bearer","expires_in":3600}`
		factory, _ := newTestFactory(ehr)
		authURL := startAuthorization(t, ctx, factory, ehr.iss())

		session, err := factory.NewClientSession(ctx, nil)
		require.NoError(t, err)
		err = session.HandleCallback(ctx, "https://app.example/authorize?code=c&state="+authURL.Query().Get("state"))

		require.NoError(t, err)
		assert.False(t, session.Ready())
	})
}
