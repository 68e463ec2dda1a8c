package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds the file paths and service endpoints the stixbridge
// commands share. All values have working defaults; a YAML file and
// environment variables can override them.
type Config struct {
	Input  string `yaml:"input"`
	Output string `yaml:"output"`
	Kafka  struct {
		Broker string `yaml:"broker"`
		Topic  string `yaml:"topic"`
	} `yaml:"kafka"`
	Store struct {
		Path string `yaml:"path"`
	} `yaml:"store"`
	Index struct {
		Path string `yaml:"path"`
	} `yaml:"index"`
}

// Default returns the built-in configuration.
func Default() *Config {
	cfg := &Config{
		Input:  "misp_data.json",
		Output: "stix_output_2_0.json",
	}
	cfg.Kafka.Broker = "localhost:9092"
	cfg.Kafka.Topic = "misp-records"
	cfg.Store.Path = "stixbridge.db"
	cfg.Index.Path = "actors.bleve"
	return cfg
}

// Load reads a YAML configuration file and applies environment
// overrides on top of the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		buf, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to load configuration file %s: %w", path, err)
		}
		if err := yaml.Unmarshal(buf, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse configuration file %s: %w", path, err)
		}
	}

	cfg.applyEnv()
	return cfg, nil
}

// FromEnv returns the defaults with environment overrides applied,
// for commands run without a configuration file.
func FromEnv() *Config {
	cfg := Default()
	cfg.applyEnv()
	return cfg
}

func (c *Config) applyEnv() {
	if v := os.Getenv("MISP_INPUT"); v != "" {
		c.Input = v
	}
	if v := os.Getenv("STIX_OUTPUT"); v != "" {
		c.Output = v
	}
	if v := os.Getenv("KAFKA_BROKER"); v != "" {
		c.Kafka.Broker = v
	}
	if v := os.Getenv("KAFKA_TOPIC"); v != "" {
		c.Kafka.Topic = v
	}
	if v := os.Getenv("DB_PATH"); v != "" {
		c.Store.Path = v
	}
	if v := os.Getenv("INDEX_PATH"); v != "" {
		c.Index.Path = v
	}
}
