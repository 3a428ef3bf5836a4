package fhir_dto

type Reference struct {
	Reference string `json:"reference,omitempty" bson:"reference,omitempty"`
	Type      string `json:"type,omitempty" bson:"type,omitempty"`
	Display   string `json:"display,omitempty" bson:"display,omitempty"`
}

// CodeableReference is the R5 shape that carries either a concept or a reference.
type CodeableReference struct {
	Concept   *CodeableConcept `json:"concept,omitempty"`
	Reference *Reference       `json:"reference,omitempty"`
}

type CodeableConcept struct {
	Coding []Coding `json:"coding,omitempty" bson:"coding,omitempty"`
	Text   string   `json:"text,omitempty" bson:"text,omitempty"`
}

type Coding struct {
	System  string `json:"system,omitempty" bson:"system,omitempty"`
	Version string `json:"version,omitempty" bson:"version,omitempty"`
	Code    string `json:"code,omitempty" bson:"code,omitempty"`
	Display string `json:"display,omitempty" bson:"display,omitempty"`
}

type HumanName struct {
	Use    string   `json:"use,omitempty"`
	Text   string   `json:"text,omitempty"`
	Family string   `json:"family,omitempty"`
	Given  []string `json:"given,omitempty"`
	Prefix []string `json:"prefix,omitempty"`
	Suffix []string `json:"suffix,omitempty"`
}

type Meta struct {
	VersionId   string `json:"versionId,omitempty"`
	LastUpdated string `json:"lastUpdated,omitempty"`
}

type Extension struct {
	Url       string      `json:"url,omitempty"`
	ValueUri  string      `json:"valueUri,omitempty"`
	ValueCode string      `json:"valueCode,omitempty"`
	Extension []Extension `json:"extension,omitempty"`
}
