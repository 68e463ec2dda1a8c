package stixcore

import (
	"log"

	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/mapping"
)

// ActorDocument is the document shape stored in the Bleve index.
type ActorDocument struct {
	Name        string   `json:"name"`
	Aliases     []string `json:"aliases"`
	Labels      []string `json:"labels"`
	Description string   `json:"description"`
	Confidence  int      `json:"confidence"`
	Type        string   `json:"type"`
}

// CreateActorIndexMapping builds the index mapping for actor documents.
func CreateActorIndexMapping() *mapping.IndexMappingImpl {
	keywordFieldMapping := bleve.NewKeywordFieldMapping()
	textFieldMapping := bleve.NewTextFieldMapping()

	docMapping := bleve.NewDocumentMapping()
	docMapping.AddFieldMappingsAt("name", keywordFieldMapping)
	docMapping.AddFieldMappingsAt("aliases", keywordFieldMapping)
	docMapping.AddFieldMappingsAt("labels", keywordFieldMapping)
	docMapping.AddFieldMappingsAt("description", textFieldMapping)

	indexMapping := bleve.NewIndexMapping()
	indexMapping.AddDocumentMapping("threat-actor", docMapping)

	return indexMapping
}

// OpenActorIndex opens the index at the given path, creating it with
// the actor mapping when it does not yet exist.
func OpenActorIndex(indexPath string) (bleve.Index, error) {
	index, err := bleve.Open(indexPath)
	if err == bleve.ErrorIndexPathDoesNotExist {
		log.Printf("Creating new Bleve index at %s...", indexPath)
		return bleve.New(indexPath, CreateActorIndexMapping())
	}
	return index, err
}

// IndexActors indexes the given actors in batches.
func IndexActors(index bleve.Index, actors []*ThreatActor) error {
	batch := index.NewBatch()
	count := 0

	for _, actor := range actors {
		doc := ActorDocument{
			Name:        actor.Name,
			Aliases:     actor.Aliases,
			Labels:      actor.Labels,
			Description: actor.Description,
			Confidence:  actor.Confidence,
			Type:        "threat-actor",
		}

		if err := batch.Index(actor.ID, doc); err != nil {
			return err
		}
		count++

		if count%10 == 0 {
			if err := index.Batch(batch); err != nil {
				log.Printf("Failed to index batch: %v", err)
			}
			batch = index.NewBatch()
		}
	}

	if batch.Size() > 0 {
		if err := index.Batch(batch); err != nil {
			log.Printf("Failed to index final batch: %v", err)
		}
	}

	log.Printf("Successfully indexed %d actors.", count)
	return nil
}
