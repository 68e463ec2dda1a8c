package stixcore

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
)

// Converter runs a single MISP-to-STIX conversion pass: load the feed,
// build the bundle, write it out. It keeps no state across runs.
type Converter struct {
	InputPath  string
	OutputPath string

	// NewID supplies identifier suffixes for relationships and the
	// bundle itself. Defaults to a random UUID source.
	NewID IDFunc
}

// NewConverter creates a converter for the given input and output paths.
func NewConverter(inputPath, outputPath string) *Converter {
	return &Converter{
		InputPath:  inputPath,
		OutputPath: outputPath,
		NewID:      NewID,
	}
}

// LoadFeed reads and validates the MISP feed file. The top level must
// be a JSON object carrying a "values" key; anything else is fatal.
func (c *Converter) LoadFeed() (*MISPFeed, error) {
	log.Printf("Loading MISP feed from %s", c.InputPath)

	data, err := os.ReadFile(c.InputPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read feed file %s: %w", c.InputPath, err)
	}

	var doc map[string]json.RawMessage
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse feed JSON: %w", err)
	}

	rawValues, ok := doc["values"]
	if !ok {
		return nil, errors.New(`invalid MISP JSON format: missing "values" key`)
	}

	var feed MISPFeed
	if err := json.Unmarshal(rawValues, &feed.Values); err != nil {
		return nil, fmt.Errorf(`failed to parse "values": %w`, err)
	}

	log.Printf("Loaded %d MISP records", len(feed.Values))
	return &feed, nil
}

// BuildBundle converts every record in order, accumulating each actor
// followed by its relationships. Invalid records are logged and
// skipped; a run that produces zero objects fails.
func (c *Converter) BuildBundle(values []json.RawMessage) (*Bundle, error) {
	newID := c.NewID
	if newID == nil {
		newID = NewID
	}

	var objects []any
	for _, raw := range values {
		var record MISPRecord
		if err := json.Unmarshal(raw, &record); err != nil {
			log.Printf("Error creating threat actor %s: %v", recordName(raw), err)
			continue
		}

		actor, err := BuildThreatActor(&record)
		if err != nil {
			var skip *SkipError
			if errors.As(err, &skip) {
				log.Printf("Warning: skipping invalid record: %s", skip.Reason)
			} else {
				log.Printf("Error creating threat actor %s: %v", recordName(raw), err)
			}
			continue
		}
		objects = append(objects, actor)

		if len(record.Related) > 0 {
			for _, relationship := range BuildRelationships(actor.ID, record.Related, newID) {
				objects = append(objects, relationship)
			}
		}
	}

	if len(objects) == 0 {
		return nil, errors.New("no valid STIX objects created")
	}

	return &Bundle{
		Type:        "bundle",
		ID:          "bundle--" + newID(),
		SpecVersion: "2.0",
		Objects:     objects,
	}, nil
}

// Convert performs the full conversion and writes the pretty-printed
// bundle to the output path.
func (c *Converter) Convert() error {
	feed, err := c.LoadFeed()
	if err != nil {
		log.Printf("Conversion failed: %v", err)
		return err
	}

	bundle, err := c.BuildBundle(feed.Values)
	if err != nil {
		log.Printf("Conversion failed: %v", err)
		return err
	}

	data, err := json.MarshalIndent(bundle, "", "    ")
	if err != nil {
		return fmt.Errorf("failed to marshal bundle: %w", err)
	}

	if err := os.WriteFile(c.OutputPath, data, 0o644); err != nil {
		return fmt.Errorf("failed to write bundle to %s: %w", c.OutputPath, err)
	}

	log.Printf("STIX 2.0 bundle with %d objects saved to %s", len(bundle.Objects), c.OutputPath)
	return nil
}

// recordName extracts a record's display value for log messages,
// falling back to "Unknown" when even that is missing.
func recordName(raw json.RawMessage) string {
	var probe struct {
		Value string `json:"value"`
	}
	if err := json.Unmarshal(raw, &probe); err == nil && probe.Value != "" {
		return probe.Value
	}
	return "Unknown"
}
