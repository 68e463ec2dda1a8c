package stixcore

import (
	"encoding/json"
	"fmt"
)

// MISPFeed is the top-level structure of a MISP galaxy export. The
// records themselves are kept raw so that one malformed record cannot
// fail the decode of the whole feed.
type MISPFeed struct {
	Name    string            `json:"name,omitempty"`
	Type    string            `json:"type,omitempty"`
	Version int               `json:"version,omitempty"`
	Values  []json.RawMessage `json:"values"`
}

// MISPRecord is a single threat-actor entry from the feed. Meta fields
// are loosely typed in the wild (scalar or list, number or string), so
// they are decoded as `any` and normalized later.
type MISPRecord struct {
	UUID        string          `json:"uuid"`
	Value       string          `json:"value"`
	Description string          `json:"description,omitempty"`
	Meta        RecordMeta      `json:"meta,omitempty"`
	Related     []RelatedEntity `json:"related,omitempty"`
}

// RecordMeta holds the loosely-typed metadata mapping of a record.
type RecordMeta struct {
	Synonyms              any `json:"synonyms,omitempty"`
	Refs                  any `json:"refs,omitempty"`
	Country               any `json:"country,omitempty"`
	TargetedSector        any `json:"targeted-sector,omitempty"`
	AttributionConfidence any `json:"attribution-confidence,omitempty"`
}

// RelatedEntity is a link stub pointing at another galaxy entry.
type RelatedEntity struct {
	DestUUID string `json:"dest-uuid"`
	Type     string `json:"type"`
}

// ThreatActor is the STIX 2.0 threat-actor object derived from one record.
type ThreatActor struct {
	Type               string              `json:"type"`
	ID                 string              `json:"id"`
	Name               string              `json:"name"`
	Description        string              `json:"description"`
	Aliases            []string            `json:"aliases,omitempty"`
	Labels             []string            `json:"labels,omitempty"`
	ExternalReferences []ExternalReference `json:"external_references,omitempty"`
	Confidence         int                 `json:"confidence"`
}

// ExternalReference points back at the source intelligence.
type ExternalReference struct {
	SourceName string `json:"source_name"`
	URL        string `json:"url,omitempty"`
}

// Relationship is a STIX 2.0 edge between two actor identifiers. The
// target may reference an actor outside this bundle.
type Relationship struct {
	Type             string `json:"type"`
	ID               string `json:"id"`
	RelationshipType string `json:"relationship_type"`
	SourceRef        string `json:"source_ref"`
	TargetRef        string `json:"target_ref"`
	Description      string `json:"description"`
	Confidence       int    `json:"confidence"`
}

// Bundle is the output container for one conversion run.
type Bundle struct {
	Type        string `json:"type"`
	ID          string `json:"id"`
	SpecVersion string `json:"spec_version"`
	Objects     []any  `json:"objects"`
}

// ActorStats provides analytics over the stored actor collection.
type ActorStats struct {
	TotalActors        int            `json:"total_actors"`
	TotalRelationships int            `json:"total_relationships"`
	TotalBundles       int            `json:"total_bundles"`
	LabelFrequency     map[string]int `json:"label_frequency"`
	AvgConfidence      float64        `json:"avg_confidence"`
}

// APISearchResult is a single search hit returned by the search API.
type APISearchResult struct {
	ID    string  `json:"id"`
	Name  string  `json:"name,omitempty"`
	Score float64 `json:"score"`
}

// SkipError marks a record or relation stub that failed validation and
// was intentionally omitted from the output. It is expected data-quality
// noise, not a fatal condition.
type SkipError struct {
	Reason string
}

func (e *SkipError) Error() string {
	return fmt.Sprintf("skipped: %s", e.Reason)
}
