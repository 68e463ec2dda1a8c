package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	require.Equal(t, "misp_data.json", cfg.Input)
	require.Equal(t, "stix_output_2_0.json", cfg.Output)
	require.Equal(t, "localhost:9092", cfg.Kafka.Broker)
	require.Equal(t, "misp-records", cfg.Kafka.Topic)
}

func TestLoadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	yaml := `
input: feeds/threat-actor.json
output: out/bundle.json
kafka:
  broker: kafka:9092
  topic: custom-topic
store:
  path: data/store.db
`
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, "feeds/threat-actor.json", cfg.Input)
	require.Equal(t, "out/bundle.json", cfg.Output)
	require.Equal(t, "kafka:9092", cfg.Kafka.Broker)
	require.Equal(t, "custom-topic", cfg.Kafka.Topic)
	require.Equal(t, "data/store.db", cfg.Store.Path)
	// Unset sections keep their defaults.
	require.Equal(t, "actors.bleve", cfg.Index.Path)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("MISP_INPUT", "env-input.json")
	t.Setenv("KAFKA_BROKER", "broker:9092")

	cfg := FromEnv()
	require.Equal(t, "env-input.json", cfg.Input)
	require.Equal(t, "broker:9092", cfg.Kafka.Broker)
	require.Equal(t, "stix_output_2_0.json", cfg.Output)
}
