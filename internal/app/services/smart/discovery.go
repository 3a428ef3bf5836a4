package smart

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"slices"
	"smartrx-service/internal/pkg/constvars"
	"smartrx-service/internal/pkg/exceptions"
	"smartrx-service/internal/pkg/fhir_dto"
	"smartrx-service/internal/pkg/utils"
	"strings"

	"github.com/goccy/go-json"
	"go.uber.org/zap"
)

type endpoints struct {
	AuthorizeURI string
	TokenURI     string
	PKCES256     bool
}

// discover finds the authorize and token endpoints of iss. The SMART
// well-known document is preferred; servers that predate it advertise the
// endpoints as an oauth-uris extension on their CapabilityStatement.
func (f *clientFactory) discover(ctx context.Context, iss string) (*endpoints, error) {
	requestID := utils.GetRequestIDFromContext(ctx)
	f.Log.Info("smartClient.discover called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingServerBaseKey, iss),
	)

	found, wellKnownErr := f.discoverWellKnown(ctx, iss)
	if wellKnownErr == nil {
		f.Log.Info("smartClient.discover succeeded from well-known",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Bool("pkce_s256", found.PKCES256),
		)
		return found, nil
	}

	f.Log.Debug("smartClient.discover falling back to capability statement",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Error(wellKnownErr),
	)

	found, err := f.discoverCapabilityStatement(ctx, iss)
	if err != nil {
		f.Log.Error("smartClient.discover failed",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingServerBaseKey, iss),
			zap.Error(err),
		)
		return nil, exceptions.ErrSmartDiscovery(errors.Join(wellKnownErr, err), iss)
	}

	f.Log.Info("smartClient.discover succeeded from capability statement",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)
	return found, nil
}

func (f *clientFactory) discoverWellKnown(ctx context.Context, iss string) (*endpoints, error) {
	config := new(fhir_dto.SmartConfiguration)
	err := f.getJSON(ctx, joinURL(iss, constvars.SmartWellKnownPath), constvars.MIMEApplicationJSON, config)
	if err != nil {
		return nil, err
	}
	if config.AuthorizationEndpoint == "" || config.TokenEndpoint == "" {
		return nil, fmt.Errorf(constvars.ErrDevSmartDiscoveryNoEndpoints, iss)
	}
	return &endpoints{
		AuthorizeURI: config.AuthorizationEndpoint,
		TokenURI:     config.TokenEndpoint,
		PKCES256:     slices.Contains(config.CodeChallengeMethodsSupported, constvars.SmartPKCEMethodS256),
	}, nil
}

func (f *clientFactory) discoverCapabilityStatement(ctx context.Context, iss string) (*endpoints, error) {
	statement := new(fhir_dto.CapabilityStatement)
	err := f.getJSON(ctx, joinURL(iss, constvars.FhirMetadataPath), constvars.MIMEApplicationFHIRJSON, statement)
	if err != nil {
		return nil, err
	}

	found := new(endpoints)
	for _, rest := range statement.Rest {
		if rest.Security == nil {
			continue
		}
		for _, ext := range rest.Security.Extension {
			if ext.Url != constvars.SmartOAuthURIsExtension {
				continue
			}
			for _, sub := range ext.Extension {
				switch sub.Url {
				case constvars.SmartOAuthURIsAuthorize:
					found.AuthorizeURI = sub.ValueUri
				case constvars.SmartOAuthURIsToken:
					found.TokenURI = sub.ValueUri
				}
			}
		}
		if found.AuthorizeURI != "" && found.TokenURI != "" {
			return found, nil
		}
	}
	return nil, fmt.Errorf(constvars.ErrDevSmartDiscoveryNoEndpoints, iss)
}

func (f *clientFactory) getJSON(ctx context.Context, target, accept string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, constvars.MethodGet, target, nil)
	if err != nil {
		return err
	}
	req.Header.Set(constvars.HeaderAccept, accept)

	resp, err := f.HTTPClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != constvars.StatusOK {
		return fmt.Errorf("GET %s: unexpected status %d", target, resp.StatusCode)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func joinURL(base, path string) string {
	return strings.TrimRight(base, "/") + "/" + path
}
