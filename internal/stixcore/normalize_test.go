package stixcore

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNormalizeStringList(t *testing.T) {
	require.Empty(t, NormalizeStringList(nil))
	require.Equal(t, []string{"Foo"}, NormalizeStringList("Foo"))
	require.Equal(t, []string{"a", "b"}, NormalizeStringList([]any{"a", "b"}))
	require.Equal(t, []string{"a", "b"}, NormalizeStringList([]string{"a", "b"}))

	// Non-string entries are dropped, never an error.
	require.Equal(t, []string{"a"}, NormalizeStringList([]any{"a", 42, nil, true}))
	require.Empty(t, NormalizeStringList(42.0))
}

func TestBuildLabels(t *testing.T) {
	labels := BuildLabels(RecordMeta{Country: "RU", TargetedSector: "Finance"})
	require.Equal(t, []string{"Country: RU", "Targeted Sector: Finance"}, labels)

	require.Equal(t, []string{"Country: RU"}, BuildLabels(RecordMeta{Country: "RU"}))
	require.Equal(t, []string{"Targeted Sector: Energy"}, BuildLabels(RecordMeta{TargetedSector: "Energy"}))
	require.Empty(t, BuildLabels(RecordMeta{}))

	// Non-string metadata contributes nothing.
	require.Empty(t, BuildLabels(RecordMeta{Country: 7.0}))
}

func TestBuildExternalReferences(t *testing.T) {
	refs := BuildExternalReferences([]any{"https://example.com/report", 42, "https://example.org"})
	require.Equal(t, []ExternalReference{
		{SourceName: "MISP", URL: "https://example.com/report"},
		{SourceName: "MISP", URL: "https://example.org"},
	}, refs)

	require.Empty(t, BuildExternalReferences(nil))

	// A scalar ref is treated as a one-element list.
	refs = BuildExternalReferences("https://example.com")
	require.Len(t, refs, 1)
	require.Equal(t, "https://example.com", refs[0].URL)
}

func TestParseConfidence(t *testing.T) {
	require.Equal(t, 50, ParseConfidence(nil))
	require.Equal(t, 90, ParseConfidence(90.0))
	require.Equal(t, 90, ParseConfidence("90"))
	require.Equal(t, 90, ParseConfidence(" 90 "))

	// Unparsable values default instead of failing the record.
	require.Equal(t, 50, ParseConfidence("high"))
	require.Equal(t, 50, ParseConfidence(true))

	// Scores are clamped to the 0-100 range.
	require.Equal(t, 100, ParseConfidence(250.0))
	require.Equal(t, 0, ParseConfidence("-10"))
}
