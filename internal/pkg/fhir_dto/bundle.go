package fhir_dto

import (
	"encoding/json"
	"smartrx-service/internal/pkg/constvars"
)

type FHIRBundle struct {
	ResourceType string       `json:"resourceType"`
	ID           string       `json:"id"`
	Type         string       `json:"type"`
	Total        int          `json:"total"`
	Link         []BundleLink `json:"link,omitempty"`
	Entry        []Entry      `json:"entry"`
}

type BundleLink struct {
	Relation string `json:"relation"`
	Url      string `json:"url"`
}

type Entry struct {
	FullUrl  string          `json:"fullUrl,omitempty"`
	Resource json.RawMessage `json:"resource"`
}

// NextLink returns the url of the "next" page, or "" when this is the last page.
func (b *FHIRBundle) NextLink() string {
	for _, link := range b.Link {
		if link.Relation == constvars.FhirBundleLinkNext {
			return link.Url
		}
	}
	return ""
}
