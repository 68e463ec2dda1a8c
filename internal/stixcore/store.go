package stixcore

import (
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/boltdb/bolt"
)

const (
	ActorBucket        = "actors"
	RelationshipBucket = "relationships"
	BundleBucket       = "bundles"
)

// BundleStore persists converted STIX objects in BoltDB so that the
// indexer and search API can work from them without re-converting.
type BundleStore struct {
	db *bolt.DB
}

// NewBundleStore opens (or creates) the store at the given path.
func NewBundleStore(dbPath string) (*BundleStore, error) {
	db, err := bolt.Open(dbPath, 0600, &bolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Initialize buckets
	err = db.Update(func(tx *bolt.Tx) error {
		buckets := []string{ActorBucket, RelationshipBucket, BundleBucket}
		for _, bucket := range buckets {
			if _, err := tx.CreateBucketIfNotExists([]byte(bucket)); err != nil {
				return fmt.Errorf("failed to create bucket %s: %w", bucket, err)
			}
		}
		return nil
	})
	if err != nil {
		db.Close()
		return nil, err
	}

	return &BundleStore{db: db}, nil
}

// SaveActor stores one threat actor keyed by its STIX identifier.
func (bs *BundleStore) SaveActor(actor *ThreatActor) error {
	data, err := json.Marshal(actor)
	if err != nil {
		return fmt.Errorf("failed to marshal actor: %w", err)
	}

	return bs.db.Update(func(tx *bolt.Tx) error {
		bucket := tx.Bucket([]byte(ActorBucket))
		if bucket == nil {
			return fmt.Errorf("actor bucket not found")
		}
		if err := bucket.Put([]byte(actor.ID), data); err != nil {
			return fmt.Errorf("failed to save actor: %w", err)
		}
		return nil
	})
}

// SaveRelationships stores the edges derived for one record.
func (bs *BundleStore) SaveRelationships(relationships []*Relationship) error {
	return bs.db.Update(func(tx *bolt.Tx) error {
		bucket := tx.Bucket([]byte(RelationshipBucket))
		if bucket == nil {
			return fmt.Errorf("relationship bucket not found")
		}
		for _, relationship := range relationships {
			data, err := json.Marshal(relationship)
			if err != nil {
				return fmt.Errorf("failed to marshal relationship: %w", err)
			}
			if err := bucket.Put([]byte(relationship.ID), data); err != nil {
				return fmt.Errorf("failed to save relationship: %w", err)
			}
		}
		return nil
	})
}

// SaveBundle records a completed bundle envelope (id, version and
// object count) so conversion runs can be audited later.
func (bs *BundleStore) SaveBundle(bundle *Bundle) error {
	manifest := map[string]any{
		"id":           bundle.ID,
		"spec_version": bundle.SpecVersion,
		"object_count": len(bundle.Objects),
		"saved_at":     time.Now().UTC(),
	}
	data, err := json.Marshal(manifest)
	if err != nil {
		return fmt.Errorf("failed to marshal bundle manifest: %w", err)
	}

	return bs.db.Update(func(tx *bolt.Tx) error {
		bucket := tx.Bucket([]byte(BundleBucket))
		if bucket == nil {
			return fmt.Errorf("bundle bucket not found")
		}
		if err := bucket.Put([]byte(bundle.ID), data); err != nil {
			return fmt.Errorf("failed to save bundle manifest: %w", err)
		}
		log.Printf("Saved bundle %s to database", bundle.ID)
		return nil
	})
}

// GetActor retrieves an actor by STIX identifier.
func (bs *BundleStore) GetActor(id string) (*ThreatActor, error) {
	var actor ThreatActor

	err := bs.db.View(func(tx *bolt.Tx) error {
		bucket := tx.Bucket([]byte(ActorBucket))
		if bucket == nil {
			return fmt.Errorf("actor bucket not found")
		}
		data := bucket.Get([]byte(id))
		if data == nil {
			return fmt.Errorf("actor %s not found", id)
		}
		return json.Unmarshal(data, &actor)
	})

	return &actor, err
}

// ListActors returns stored actors with optional name filtering.
func (bs *BundleStore) ListActors(name string, limit int) ([]*ThreatActor, error) {
	var actors []*ThreatActor
	count := 0

	err := bs.db.View(func(tx *bolt.Tx) error {
		bucket := tx.Bucket([]byte(ActorBucket))
		if bucket == nil {
			return fmt.Errorf("actor bucket not found")
		}

		cursor := bucket.Cursor()
		for key, value := cursor.First(); key != nil; key, value = cursor.Next() {
			if limit > 0 && count >= limit {
				break
			}

			var actor ThreatActor
			if err := json.Unmarshal(value, &actor); err != nil {
				log.Printf("Warning: failed to unmarshal actor %s: %v", string(key), err)
				continue
			}

			if name != "" && !strings.Contains(strings.ToLower(actor.Name), strings.ToLower(name)) {
				continue
			}

			actors = append(actors, &actor)
			count++
		}

		return nil
	})

	return actors, err
}

// Stats computes aggregate statistics over the stored collection.
func (bs *BundleStore) Stats() (*ActorStats, error) {
	stats := &ActorStats{
		LabelFrequency: make(map[string]int),
	}
	totalConfidence := 0

	err := bs.db.View(func(tx *bolt.Tx) error {
		actors := tx.Bucket([]byte(ActorBucket))
		if actors == nil {
			return fmt.Errorf("actor bucket not found")
		}

		cursor := actors.Cursor()
		for key, value := cursor.First(); key != nil; key, value = cursor.Next() {
			var actor ThreatActor
			if err := json.Unmarshal(value, &actor); err != nil {
				continue
			}
			stats.TotalActors++
			totalConfidence += actor.Confidence
			for _, label := range actor.Labels {
				stats.LabelFrequency[label]++
			}
		}

		if relationships := tx.Bucket([]byte(RelationshipBucket)); relationships != nil {
			stats.TotalRelationships = relationships.Stats().KeyN
		}
		if bundles := tx.Bucket([]byte(BundleBucket)); bundles != nil {
			stats.TotalBundles = bundles.Stats().KeyN
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	if stats.TotalActors > 0 {
		stats.AvgConfidence = float64(totalConfidence) / float64(stats.TotalActors)
	}

	return stats, nil
}

// Close closes the underlying BoltDB handle.
func (bs *BundleStore) Close() error {
	if bs.db != nil {
		return bs.db.Close()
	}
	return nil
}
