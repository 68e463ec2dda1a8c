package main

import (
	"flag"
	"log"

	"stixbridge/internal/config"
	"stixbridge/internal/stixcore"
)

func main() {
	input := flag.String("input", "", "Path to the MISP JSON feed file.")
	output := flag.String("output", "", "Path for the STIX 2.0 bundle output.")
	configPath := flag.String("config", "", "Optional YAML configuration file.")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if *input != "" {
		cfg.Input = *input
	}
	if *output != "" {
		cfg.Output = *output
	}

	log.Println("Starting StixBridge Converter")

	converter := stixcore.NewConverter(cfg.Input, cfg.Output)
	if err := converter.Convert(); err != nil {
		log.Fatalf("Conversion failed: %v", err)
	}

	log.Println("✅ Conversion complete.")
}
