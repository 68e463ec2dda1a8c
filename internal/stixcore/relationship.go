package stixcore

import (
	"log"

	"github.com/google/uuid"
)

// RelationshipIDPrefix is prepended to a fresh UUID to form an edge identifier.
const RelationshipIDPrefix = "relationship--"

// RelationshipConfidence is the fixed score assigned to every derived edge.
const RelationshipConfidence = 80

// IDFunc supplies fresh unique identifier suffixes. Injected so tests
// can substitute a deterministic source.
type IDFunc func() string

// NewID is the default identifier source.
func NewID() string {
	return uuid.NewString()
}

// BuildRelationships produces one related-to edge per valid relation
// stub, connecting the source actor to each destination UUID. A stub
// missing its required fields is logged and skipped; the rest of the
// list is still processed. Dangling targets are permitted.
func BuildRelationships(sourceID string, related []RelatedEntity, newID IDFunc) []*Relationship {
	if newID == nil {
		newID = NewID
	}

	relationships := make([]*Relationship, 0, len(related))
	for _, relation := range related {
		if relation.DestUUID == "" || relation.Type == "" {
			log.Printf("Warning: skipping invalid relationship %+v for %s", relation, sourceID)
			continue
		}

		relationships = append(relationships, &Relationship{
			Type:             "relationship",
			ID:               RelationshipIDPrefix + newID(),
			RelationshipType: "related-to",
			SourceRef:        sourceID,
			TargetRef:        ActorIDPrefix + relation.DestUUID,
			Description:      "Relationship type: " + relation.Type,
			Confidence:       RelationshipConfidence,
		})
	}

	return relationships
}
