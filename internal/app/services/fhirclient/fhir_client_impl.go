package fhirclient

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"smartrx-service/internal/app/contracts"
	"smartrx-service/internal/pkg/constvars"
	"smartrx-service/internal/pkg/exceptions"
	"smartrx-service/internal/pkg/fhir_dto"
	"smartrx-service/internal/pkg/utils"
	"strings"

	"go.uber.org/zap"
)

type fhirClient struct {
	BaseUrl    string
	HTTPClient *http.Client
	MaxPages   int
	Log        *zap.Logger
}

// Factory builds a FHIR client per browser session, bound to that session's
// server base and authorized HTTP client.
type Factory struct {
	Log      *zap.Logger
	MaxPages int
}

func NewFactory(logger *zap.Logger, maxPages int) *Factory {
	if maxPages <= 0 {
		maxPages = 1
	}
	return &Factory{Log: logger, MaxPages: maxPages}
}

func (f *Factory) NewFhirClient(serverBase string, httpClient *http.Client) contracts.FhirClient {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &fhirClient{
		BaseUrl:    strings.TrimRight(serverBase, "/"),
		HTTPClient: httpClient,
		MaxPages:   f.MaxPages,
		Log:        f.Log,
	}
}

func (c *fhirClient) Read(ctx context.Context, resourceType, id string, out interface{}) error {
	requestID := utils.GetRequestIDFromContext(ctx)
	c.Log.Info("fhirClient.Read called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingResourceTypeKey, resourceType),
		zap.String(constvars.LoggingResourceIDKey, id),
	)

	if id == "" {
		return exceptions.ErrGetFHIRResource(errors.New("empty resource id"), resourceType, c.BaseUrl)
	}

	resourceURL := fmt.Sprintf("%s/%s/%s", c.BaseUrl, resourceType, url.PathEscape(id))
	body, err := c.get(ctx, resourceType, resourceURL)
	if err != nil {
		return err
	}

	err = json.Unmarshal(body, out)
	if err != nil {
		c.Log.Error("fhirClient.Read error decoding response",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingResourceTypeKey, resourceType),
			zap.Error(err),
		)
		return exceptions.ErrDecodeFHIRResource(err, resourceType)
	}

	c.Log.Info("fhirClient.Read succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingResourceTypeKey, resourceType),
		zap.String(constvars.LoggingResourceIDKey, id),
	)
	return nil
}

// Search returns the matching resources of resourceType in server order,
// following "next" links up to MaxPages pages. Included resources of other
// types are skipped.
func (c *fhirClient) Search(ctx context.Context, resourceType string, params url.Values) ([]json.RawMessage, error) {
	requestID := utils.GetRequestIDFromContext(ctx)
	c.Log.Info("fhirClient.Search called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingResourceTypeKey, resourceType),
		zap.String(constvars.LoggingQueryKey, params.Encode()),
	)

	pageURL := fmt.Sprintf("%s/%s", c.BaseUrl, resourceType)
	if len(params) > 0 {
		pageURL += "?" + params.Encode()
	}

	var resources []json.RawMessage
	for page := 1; pageURL != "" && page <= c.MaxPages; page++ {
		body, err := c.get(ctx, constvars.ResourceBundle, pageURL)
		if err != nil {
			return nil, err
		}

		bundle := new(fhir_dto.FHIRBundle)
		err = json.Unmarshal(body, bundle)
		if err != nil {
			c.Log.Error("fhirClient.Search error decoding bundle",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.Int(constvars.LoggingPageKey, page),
				zap.Error(err),
			)
			return nil, exceptions.ErrDecodeFHIRResource(err, constvars.ResourceBundle)
		}

		for _, entry := range bundle.Entry {
			if matchesResourceType(entry.Resource, resourceType) {
				resources = append(resources, entry.Resource)
			}
		}

		pageURL, err = c.resolveNext(bundle.NextLink())
		if err != nil {
			c.Log.Warn("fhirClient.Search ignoring malformed next link",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.Error(err),
			)
			break
		}
	}

	c.Log.Info("fhirClient.Search succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingResourceTypeKey, resourceType),
		zap.Int(constvars.LoggingTotalEntriesKey, len(resources)),
	)
	return resources, nil
}

func (c *fhirClient) get(ctx context.Context, resourceType, resourceURL string) ([]byte, error) {
	requestID := utils.GetRequestIDFromContext(ctx)

	req, err := http.NewRequestWithContext(ctx, constvars.MethodGet, resourceURL, nil)
	if err != nil {
		return nil, exceptions.ErrBuildRequest(err)
	}
	req.Header.Set(constvars.HeaderAccept, constvars.MIMEApplicationFHIRJSON)

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		c.Log.Error("fhirClient error sending HTTP request",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingURLKey, resourceURL),
			zap.Error(err),
		)
		if isTimeout(err) {
			return nil, exceptions.ErrFHIRTimeout(err, resourceType)
		}
		var customErr *exceptions.CustomError
		if errors.As(err, &customErr) {
			return nil, customErr
		}
		return nil, exceptions.ErrGetFHIRResource(err, resourceType, resourceURL)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		if isTimeout(err) {
			return nil, exceptions.ErrFHIRTimeout(err, resourceType)
		}
		return nil, exceptions.ErrGetFHIRResource(err, resourceType, resourceURL)
	}

	if resp.StatusCode != constvars.StatusOK {
		fhirErr := fmt.Errorf("unexpected status %d", resp.StatusCode)
		var outcome fhir_dto.OperationOutcome
		if json.Unmarshal(body, &outcome) == nil && outcome.FirstDiagnostics() != "" {
			fhirErr = fmt.Errorf("status %d: %s", resp.StatusCode, outcome.FirstDiagnostics())
		}
		c.Log.Error("fhirClient FHIR error",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingURLKey, resourceURL),
			zap.Int(constvars.LoggingStatusCodeKey, resp.StatusCode),
			zap.Error(fhirErr),
		)
		return nil, exceptions.ErrGetFHIRResource(fhirErr, resourceType, resourceURL)
	}

	return body, nil
}

func (c *fhirClient) resolveNext(next string) (string, error) {
	if next == "" {
		return "", nil
	}
	base, err := url.Parse(c.BaseUrl + "/")
	if err != nil {
		return "", err
	}
	ref, err := url.Parse(next)
	if err != nil {
		return "", err
	}
	return base.ResolveReference(ref).String(), nil
}

func matchesResourceType(raw json.RawMessage, resourceType string) bool {
	var probe struct {
		ResourceType string `json:"resourceType"`
	}
	if json.Unmarshal(raw, &probe) != nil {
		return false
	}
	return probe.ResourceType == resourceType
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}
