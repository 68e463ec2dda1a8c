package stixcore

import (
	"strconv"
	"strings"
)

const (
	// DefaultConfidence is used when attribution-confidence is absent or unparsable.
	DefaultConfidence = 50

	// DefaultDescription fills in for records without a description field.
	DefaultDescription = "No description available."

	// ReferenceSource tags every external reference with its origin feed.
	ReferenceSource = "MISP"
)

// NormalizeStringList coerces a loosely-typed meta field into a list of
// strings. Absent values yield an empty list, a scalar string yields a
// single-element list, and a sequence keeps its string elements. It
// never fails; entries it cannot use are dropped.
func NormalizeStringList(value any) []string {
	switch v := value.(type) {
	case nil:
		return nil
	case string:
		return []string{v}
	case []string:
		return v
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	default:
		return nil
	}
}

// BuildLabels derives human-readable labels from country and
// targeted-sector metadata, country first.
func BuildLabels(meta RecordMeta) []string {
	var labels []string
	if country := asString(meta.Country); country != "" {
		labels = append(labels, "Country: "+country)
	}
	if sector := asString(meta.TargetedSector); sector != "" {
		labels = append(labels, "Targeted Sector: "+sector)
	}
	return labels
}

// BuildExternalReferences maps each reference URL to a tagged external
// reference entry, dropping non-string entries.
func BuildExternalReferences(refs any) []ExternalReference {
	urls := NormalizeStringList(refs)
	if len(urls) == 0 {
		return nil
	}
	out := make([]ExternalReference, 0, len(urls))
	for _, url := range urls {
		out = append(out, ExternalReference{SourceName: ReferenceSource, URL: url})
	}
	return out
}

// ParseConfidence coerces an attribution-confidence value to an integer
// score, defaulting when absent or unparsable and clamping to 0-100.
func ParseConfidence(value any) int {
	score := DefaultConfidence
	switch v := value.(type) {
	case float64:
		score = int(v)
	case int:
		score = v
	case string:
		if n, err := strconv.Atoi(strings.TrimSpace(v)); err == nil {
			score = n
		}
	}
	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}
	return score
}

// asString returns the string form of a scalar meta value, or "" when
// the value is absent or not a string.
func asString(value any) string {
	s, _ := value.(string)
	return s
}
