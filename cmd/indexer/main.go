package main

import (
	"flag"
	"log"
	"time"

	"stixbridge/internal/config"
	"stixbridge/internal/stixcore"
)

func main() {
	flag.Parse()

	cfg := config.FromEnv()

	index, err := stixcore.OpenActorIndex(cfg.Index.Path)
	if err != nil {
		log.Fatalf("Failed to open Bleve index: %v", err)
	}
	defer index.Close()

	// Retry opening the store for a while; the builder may still hold the lock.
	const maxRetries = 10
	const retryDelay = 5 * time.Second

	var store *stixcore.BundleStore
	log.Printf("Attempting to open store at %s...", cfg.Store.Path)
	for i := 0; i < maxRetries; i++ {
		store, err = stixcore.NewBundleStore(cfg.Store.Path)
		if err == nil {
			log.Println("Successfully opened store.")
			break
		}
		log.Printf("Failed to open store (attempt %d/%d): %v. Retrying in %v...", i+1, maxRetries, err, retryDelay)
		time.Sleep(retryDelay)
	}
	if err != nil {
		log.Fatalf("Failed to open store after %d retries: %v", maxRetries, err)
	}
	defer store.Close()

	log.Println("Loading actors from store...")
	actors, err := store.ListActors("", 0)
	if err != nil {
		log.Fatalf("Failed to list actors: %v", err)
	}
	log.Printf("Loaded %d actors from store.", len(actors))

	log.Println("Indexing documents...")
	if err := stixcore.IndexActors(index, actors); err != nil {
		log.Fatalf("Indexing failed: %v", err)
	}

	log.Println("Indexing complete.")
}
