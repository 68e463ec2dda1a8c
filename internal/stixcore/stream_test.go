package stixcore

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestProcessMessage(t *testing.T) {
	store := newTestStore(t)
	stream := NewStreamConverter(store, nil, "", "")

	record := MISPRecord{
		UUID:  "a1",
		Value: "APT-X",
		Related: []RelatedEntity{
			{DestUUID: "b2", Type: "uses"},
		},
	}
	data, err := json.Marshal(record)
	require.NoError(t, err)

	actorID, err := stream.ProcessMessage(data)
	require.NoError(t, err)
	require.Equal(t, "threat-actor--a1", actorID)

	stored, err := store.GetActor("threat-actor--a1")
	require.NoError(t, err)
	require.Equal(t, "APT-X", stored.Name)

	stats, err := store.Stats()
	require.NoError(t, err)
	require.Equal(t, 1, stats.TotalActors)
	require.Equal(t, 1, stats.TotalRelationships)
}

func TestProcessMessageBadPayload(t *testing.T) {
	stream := NewStreamConverter(newTestStore(t), nil, "", "")

	_, err := stream.ProcessMessage([]byte("not json"))
	require.Error(t, err)

	var skip *SkipError
	require.False(t, errors.As(err, &skip), "decode failure is not a validation skip")
}

func TestProcessMessageSkipsInvalidRecord(t *testing.T) {
	store := newTestStore(t)
	stream := NewStreamConverter(store, nil, "", "")

	_, err := stream.ProcessMessage([]byte(`{"uuid": "a1"}`))

	var skip *SkipError
	require.True(t, errors.As(err, &skip))

	stats, err := store.Stats()
	require.NoError(t, err)
	require.Zero(t, stats.TotalActors)
}
