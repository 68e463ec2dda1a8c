package stixcore

import (
	"fmt"
	"log"
)

// ActorIDPrefix is prepended to a record's UUID to form its STIX identifier.
const ActorIDPrefix = "threat-actor--"

// BuildThreatActor maps one MISP record to a STIX threat actor. The
// identifier is a pure function of the record's UUID, so re-converting
// the same feed yields the same actor IDs. A record missing its
// required identity fields returns a *SkipError, never a fatal error.
func BuildThreatActor(record *MISPRecord) (*ThreatActor, error) {
	if record.UUID == "" || record.Value == "" {
		return nil, &SkipError{Reason: fmt.Sprintf("record %q missing uuid or value", record.Value)}
	}

	description := record.Description
	if description == "" {
		description = DefaultDescription
	}

	actor := &ThreatActor{
		Type:               "threat-actor",
		ID:                 ActorIDPrefix + record.UUID,
		Name:               record.Value,
		Description:        description,
		Aliases:            NormalizeStringList(record.Meta.Synonyms),
		Labels:             BuildLabels(record.Meta),
		ExternalReferences: BuildExternalReferences(record.Meta.Refs),
		Confidence:         ParseConfidence(record.Meta.AttributionConfidence),
	}

	log.Printf("Created threat actor: %s", actor.Name)
	return actor, nil
}
