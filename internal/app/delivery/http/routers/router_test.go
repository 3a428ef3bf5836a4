package routers

import (
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"smartrx-service/internal/app/config"
	"smartrx-service/internal/app/delivery/http/controllers"
	"smartrx-service/internal/app/delivery/http/middlewares"
	"smartrx-service/internal/app/services/core/launch"
	"smartrx-service/internal/app/services/core/medications"
	"smartrx-service/internal/app/services/fhirclient"
	"smartrx-service/internal/app/services/shared/renderer"
	"smartrx-service/internal/app/services/shared/sessionstore"
	"smartrx-service/internal/app/services/smart"
	"smartrx-service/internal/pkg/constvars"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newFakeEHR(t *testing.T) *httptest.Server {
	var ehr *httptest.Server
	mux := http.NewServeMux()
	mux.HandleFunc("/fhir/.well-known/smart-configuration", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, `{"authorization_endpoint":"%s/auth/authorize","token_endpoint":"%s/auth/token","code_challenge_methods_supported":["S256"]}`, ehr.URL, ehr.URL)
	})
	mux.HandleFunc("/auth/token", func(w http.ResponseWriter, r *http.Request) {
		_ = r.ParseForm()
		if r.PostForm.Get("code") != "good-code" || r.PostForm.Get("code_verifier") == "" {
			w.WriteHeader(http.StatusBadRequest)
			fmt.Fprint(w, `{"error":"invalid_grant"}`)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"access_token":"at-1","token_type":"Bearer","expires_in":3600,"patient":"p1"}`)
	})
	mux.HandleFunc("/fhir/", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer at-1" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		switch r.URL.Path {
		case "/fhir/Patient/p1":
			fmt.Fprint(w, `{"resourceType":"Patient","id":"p1","name":[{"given":["Ada"],"family":"Lovelace"}]}`)
		case "/fhir/MedicationRequest":
			fmt.Fprint(w, `{"resourceType":"Bundle","type":"searchset","entry":[
				{"resource":{"resourceType":"MedicationRequest","id":"1","medicationCodeableConcept":{"coding":[{"system":"http://www.nlm.nih.gov/research/umls/rxnorm","display":"Warfarin 5 MG"}]}}},
				{"resource":{"resourceType":"MedicationRequest","id":"2","medicationReference":{"reference":"Medication/missing"}}}]}`)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	})
	ehr = httptest.NewServer(mux)
	t.Cleanup(ehr.Close)
	return ehr
}

func newTestApp(t *testing.T, prefix string) *httptest.Server {
	app := httptest.NewUnstartedServer(nil)

	cfg := &config.InternalConfig{
		App: config.App{
			Env:                     constvars.AppEnvDevelopment,
			Version:                 "v-test",
			BaseUrl:                 "http://" + app.Listener.Addr().String(),
			EndpointPrefix:          prefix,
			AllowedOrigins:          []string{"*"},
			RequestTimeoutInSeconds: 5,
		},
		Smart: config.AppSmart{
			AppID:        "my_web_app",
			Scope:        constvars.SmartDefaultScope,
			CallbackPath: constvars.SmartDefaultCallbackPath,
		},
		FHIR:    config.AppFHIR{MaxSearchPages: 3},
		Session: config.AppSession{Driver: constvars.SessionDriverMemory, CookieName: "smartrx_session", ExpiredTimeInMinutes: 10},
		JWT:     config.AppJWT{Secret: "router-test"},
	}

	logger := zap.NewNop()
	stateStore := sessionstore.NewAuthorizationStateStore(sessionstore.NewMemoryBrowserSession(), logger)
	smartFactory := smart.NewClientFactory(stateStore, http.DefaultClient, logger)
	controller := controllers.NewSmartAppController(
		logger,
		launch.NewLaunchUsecase(stateStore, smartFactory, cfg, logger),
		medications.NewMedicationUsecase(smartFactory, fhirclient.NewFactory(logger, cfg.FHIR.MaxSearchPages), cfg, logger),
		renderer.NewHTMLRenderer(),
		cfg,
	)

	router := chi.NewRouter()
	SetupRoutes(router, cfg, middlewares.NewMiddlewares(logger, cfg), controller)

	app.Config.Handler = router
	app.Start()
	t.Cleanup(app.Close)
	return app
}

func newBrowser(t *testing.T) *http.Client {
	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	return &http.Client{
		Jar: jar,
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}
}

func get(t *testing.T, client *http.Client, target string) (*http.Response, string) {
	t.Helper()
	resp, err := client.Get(target)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, string(body)
}

func TestSmartAppFlow(t *testing.T) {
	ehr := newFakeEHR(t)
	app := newTestApp(t, "fhir-app")
	browser := newBrowser(t)
	base := app.URL + "/fhir-app"

	resp, body := get(t, browser, base+"/")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Empty(t, body)

	resp, _ = get(t, browser, base+"/launch.html?"+url.Values{"iss": {ehr.URL + "/fhir"}, "launch": {"L1"}}.Encode())
	require.Equal(t, http.StatusFound, resp.StatusCode)
	authorizeURL, err := url.Parse(resp.Header.Get("Location"))
	require.NoError(t, err)
	assert.Equal(t, "/auth/authorize", authorizeURL.Path)
	assert.Equal(t, base+"/authorize", authorizeURL.Query().Get("redirect_uri"))
	assert.Equal(t, "L1", authorizeURL.Query().Get("launch"))
	state := authorizeURL.Query().Get("state")

	resp, _ = get(t, browser, base+"/authorize?code=good-code&state=wrong")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, _ = get(t, browser, base+"/authorize?code=good-code&state="+url.QueryEscape(state))
	require.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, base+"/", resp.Header.Get("Location"))

	resp, body = get(t, browser, base+"/")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Type"), "text/html")
	assert.Contains(t, body, `<span id="name">Ada Lovelace</span>`)
	assert.Contains(t, body, "<li>Warfarin 5 MG</li>")
	assert.Contains(t, body, "<li>Error: medication not found</li>")

	resp, _ = get(t, browser, base+"/authorize?code=good-code&state="+url.QueryEscape(state))
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	other, body := get(t, newBrowser(t), base+"/")
	assert.Equal(t, http.StatusOK, other.StatusCode)
	assert.Empty(t, body)
}

func TestSmartAppStandaloneLaunch(t *testing.T) {
	open := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/fhir/Patient/p9":
			fmt.Fprint(w, `{"resourceType":"Patient","id":"p9","name":[{"text":"Open Patient"}]}`)
		case "/fhir/MedicationRequest":
			fmt.Fprint(w, `{"resourceType":"Bundle","type":"searchset"}`)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer open.Close()
	app := newTestApp(t, "")
	browser := newBrowser(t)

	resp, _ := get(t, browser, app.URL+"/launch?"+url.Values{"fhirServiceUrl": {open.URL + "/fhir"}, "patientId": {"p9"}}.Encode())
	require.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, app.URL+"/", resp.Header.Get("Location"))

	resp, body := get(t, browser, app.URL+"/")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "Open Patient")
	assert.Contains(t, body, constvars.ViewNoPrescriptionsMessage)
}

func TestSmartAppErrors(t *testing.T) {
	app := newTestApp(t, "")

	t.Run("launch without parameters", func(t *testing.T) {
		resp, body := get(t, newBrowser(t), app.URL+"/launch")

		assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
		assert.Contains(t, body, constvars.ErrClientLaunchSequenceAborted)
	})

	t.Run("callback without a pending launch", func(t *testing.T) {
		resp, _ := get(t, newBrowser(t), app.URL+"/authorize.html?code=c&state=s")

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("health", func(t *testing.T) {
		resp, body := get(t, newBrowser(t), app.URL+"/healthz")

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.True(t, strings.Contains(body, `"version":"v-test"`))
		assert.Contains(t, body, `"session_backend":"memory"`)
	})
}
