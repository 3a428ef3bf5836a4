package contracts

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
)

type FhirClient interface {
	Read(ctx context.Context, resourceType, id string, out interface{}) error
	Search(ctx context.Context, resourceType string, params url.Values) ([]json.RawMessage, error)
}

type FhirClientFactory interface {
	NewFhirClient(serverBase string, httpClient *http.Client) FhirClient
}
