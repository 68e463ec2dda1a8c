package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"stixbridge/internal/config"
	"stixbridge/internal/stixcore"
)

func main() {
	log.Println("Starting StixBridge Builder")

	cfg := config.FromEnv()
	log.Printf("Using Kafka broker %s, topic %s", cfg.Kafka.Broker, cfg.Kafka.Topic)

	store, err := stixcore.NewBundleStore(cfg.Store.Path)
	if err != nil {
		log.Fatalf("Failed to open bundle store: %v", err)
	}
	defer store.Close()

	index, err := stixcore.OpenActorIndex(cfg.Index.Path)
	if err != nil {
		log.Fatalf("Failed to open actor index: %v", err)
	}
	defer index.Close()

	stream := stixcore.NewStreamConverter(store, index, cfg.Kafka.Broker, cfg.Kafka.Topic)
	defer stream.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		sigs := make(chan os.Signal, 1)
		signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
		<-sigs
		log.Println("Shutting down...")
		cancel()
	}()

	stream.StartConsumer(ctx)
	log.Println("StixBridge Builder stopped.")
}
