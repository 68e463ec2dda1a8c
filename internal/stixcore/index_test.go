package stixcore

import (
	"path/filepath"
	"testing"

	"github.com/blevesearch/bleve/v2"
	"github.com/stretchr/testify/require"
)

func TestOpenActorIndexCreatesAndReopens(t *testing.T) {
	indexPath := filepath.Join(t.TempDir(), "actors.bleve")

	index, err := OpenActorIndex(indexPath)
	require.NoError(t, err)
	require.NoError(t, index.Close())

	// Reopening an existing index must not fail.
	index, err = OpenActorIndex(indexPath)
	require.NoError(t, err)
	require.NoError(t, index.Close())
}

func TestIndexActors(t *testing.T) {
	index, err := OpenActorIndex(filepath.Join(t.TempDir(), "actors.bleve"))
	require.NoError(t, err)
	defer index.Close()

	actors := []*ThreatActor{
		{ID: "threat-actor--a1", Name: "lazarus", Description: "North Korean intrusion set.", Labels: []string{"Country: KP"}},
		{ID: "threat-actor--a2", Name: "sandworm", Description: "Destructive operations against energy."},
	}
	require.NoError(t, IndexActors(index, actors))

	count, err := index.DocCount()
	require.NoError(t, err)
	require.Equal(t, uint64(2), count)

	query := bleve.NewMatchQuery("energy")
	results, err := index.Search(bleve.NewSearchRequest(query))
	require.NoError(t, err)
	require.Equal(t, uint64(1), results.Total)
	require.Equal(t, "threat-actor--a2", results.Hits[0].ID)
}
