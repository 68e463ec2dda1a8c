package stixcore

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBuildThreatActor(t *testing.T) {
	record := &MISPRecord{
		UUID:        "a1",
		Value:       "APT-X",
		Description: "An actor.",
		Meta: RecordMeta{
			Synonyms:              []any{"Foo", "Bar"},
			Refs:                  []any{"https://example.com/aptx"},
			Country:               "RU",
			TargetedSector:        "Finance",
			AttributionConfidence: "90",
		},
	}

	actor, err := BuildThreatActor(record)
	require.NoError(t, err)
	require.Equal(t, "threat-actor", actor.Type)
	require.Equal(t, "threat-actor--a1", actor.ID)
	require.Equal(t, "APT-X", actor.Name)
	require.Equal(t, "An actor.", actor.Description)
	require.Equal(t, []string{"Foo", "Bar"}, actor.Aliases)
	require.Equal(t, []string{"Country: RU", "Targeted Sector: Finance"}, actor.Labels)
	require.Equal(t, []ExternalReference{{SourceName: "MISP", URL: "https://example.com/aptx"}}, actor.ExternalReferences)
	require.Equal(t, 90, actor.Confidence)
}

func TestBuildThreatActorDeterministicID(t *testing.T) {
	a, err := BuildThreatActor(&MISPRecord{UUID: "u-1", Value: "One"})
	require.NoError(t, err)
	b, err := BuildThreatActor(&MISPRecord{UUID: "u-1", Value: "One", Description: "changed"})
	require.NoError(t, err)
	require.Equal(t, a.ID, b.ID)
}

func TestBuildThreatActorDefaults(t *testing.T) {
	actor, err := BuildThreatActor(&MISPRecord{UUID: "a1", Value: "APT-X"})
	require.NoError(t, err)
	require.Equal(t, "No description available.", actor.Description)
	require.Equal(t, 50, actor.Confidence)
	require.Empty(t, actor.Aliases)
	require.Empty(t, actor.Labels)
	require.Empty(t, actor.ExternalReferences)
}

func TestBuildThreatActorSkipsInvalid(t *testing.T) {
	for _, record := range []*MISPRecord{
		{Value: "no uuid"},
		{UUID: "no-value"},
		{},
	} {
		actor, err := BuildThreatActor(record)
		require.Nil(t, actor)

		var skip *SkipError
		require.True(t, errors.As(err, &skip), "expected SkipError, got %v", err)
	}
}
