package main

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/segmentio/kafka-go"

	"stixbridge/internal/config"
	"stixbridge/internal/stixcore"
)

func main() {
	log.Println("Starting StixBridge Producer")

	cfg := config.FromEnv()
	log.Printf("Using Kafka broker %s, topic %s", cfg.Kafka.Broker, cfg.Kafka.Topic)

	writer := &kafka.Writer{
		Addr:         kafka.TCP(cfg.Kafka.Broker),
		Topic:        cfg.Kafka.Topic,
		Balancer:     &kafka.LeastBytes{},
		BatchTimeout: 10 * time.Millisecond,
		RequiredAcks: kafka.RequireOne,
	}
	defer writer.Close()

	log.Printf("Publishing MISP feed %s to Kafka...", cfg.Input)
	publishFeed(writer, cfg.Input)
}

func publishFeed(writer *kafka.Writer, inputPath string) {
	converter := stixcore.NewConverter(inputPath, "")
	feed, err := converter.LoadFeed()
	if err != nil {
		log.Fatalf("Failed to load MISP feed: %v", err)
	}

	log.Printf("🎉 Loaded %d records. Publishing to Kafka...", len(feed.Values))
	published := 0
	for _, raw := range feed.Values {
		var record stixcore.MISPRecord
		if err := json.Unmarshal(raw, &record); err != nil {
			log.Printf("❌ Error parsing record, skipping: %v", err)
			continue
		}

		msg := kafka.Message{
			Key:   []byte(record.UUID),
			Value: raw,
		}
		if err := writer.WriteMessages(context.Background(), msg); err != nil {
			log.Printf("❌ Error publishing record %s to Kafka: %v", record.UUID, err)
			continue
		}
		published++
	}
	log.Printf("✅ Finished publishing %d records.", published)
}
