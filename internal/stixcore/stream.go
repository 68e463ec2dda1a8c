package stixcore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/blevesearch/bleve/v2"
	"github.com/segmentio/kafka-go"
)

// StreamConverter consumes MISP records from a Kafka topic, converts
// each into STIX objects and persists them to the store and index.
type StreamConverter struct {
	store       *BundleStore
	index       bleve.Index
	kafkaReader *kafka.Reader
	newID       IDFunc
}

// NewStreamConverter wires a consumer to an existing store and index.
func NewStreamConverter(store *BundleStore, index bleve.Index, kafkaBroker, kafkaTopic string) *StreamConverter {
	sc := &StreamConverter{
		store: store,
		index: index,
		newID: NewID,
	}

	if kafkaBroker != "" {
		sc.kafkaReader = kafka.NewReader(kafka.ReaderConfig{
			Brokers:     []string{kafkaBroker},
			Topic:       kafkaTopic,
			GroupID:     "stixbridge-builder-group",
			MinBytes:    10e3, // 10KB
			MaxBytes:    10e6, // 10MB
			MaxAttempts: 10,
			Dialer: &kafka.Dialer{
				Timeout:   10 * time.Second,
				DualStack: true,
			},
		})
	}

	return sc
}

// StartConsumer reads MISP records from Kafka until the context is
// cancelled. Bad messages are logged and skipped.
func (sc *StreamConverter) StartConsumer(ctx context.Context) {
	log.Printf("Starting Kafka consumer for topic %s on broker %s",
		sc.kafkaReader.Config().Topic, sc.kafkaReader.Config().Brokers[0])

	for {
		select {
		case <-ctx.Done():
			log.Println("Kafka consumer stopped.")
			return
		default:
			m, err := sc.kafkaReader.ReadMessage(ctx)
			if err != nil {
				log.Printf("Error reading message from Kafka: %v", err)
				continue
			}

			actorID, err := sc.ProcessMessage(m.Value)
			if err != nil {
				var skip *SkipError
				if errors.As(err, &skip) {
					log.Printf("Warning: skipping record from offset %d: %s", m.Offset, skip.Reason)
				} else {
					log.Printf("Failed to process record from offset %d: %v", m.Offset, err)
				}
				continue
			}
			log.Printf("Successfully converted and stored %s from Kafka message", actorID)
		}
	}
}

// ProcessMessage converts one serialized MISP record into STIX objects
// and persists them. Returns the stored actor's identifier.
func (sc *StreamConverter) ProcessMessage(value []byte) (string, error) {
	var record MISPRecord
	if err := json.Unmarshal(value, &record); err != nil {
		return "", fmt.Errorf("failed to unmarshal MISP record: %w", err)
	}

	actor, err := BuildThreatActor(&record)
	if err != nil {
		return "", err
	}

	if err := sc.store.SaveActor(actor); err != nil {
		return "", err
	}

	if len(record.Related) > 0 {
		relationships := BuildRelationships(actor.ID, record.Related, sc.newID)
		if err := sc.store.SaveRelationships(relationships); err != nil {
			return "", err
		}
	}

	if sc.index != nil {
		if err := IndexActors(sc.index, []*ThreatActor{actor}); err != nil {
			return "", fmt.Errorf("failed to index actor %s: %w", actor.ID, err)
		}
	}

	return actor.ID, nil
}

// Close closes the Kafka reader if one was configured.
func (sc *StreamConverter) Close() error {
	if sc.kafkaReader != nil {
		if err := sc.kafkaReader.Close(); err != nil {
			log.Printf("Error closing Kafka reader: %v", err)
		}
	}
	return nil
}
