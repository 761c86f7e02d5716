package main

import (
	"flag"
	"log"
	"os"

	"Tickfunds/internal/di"
	"Tickfunds/pkg/config"
)

func main() {
	configPath := flag.String("config", "config/config.yaml", "config file path")
	flag.Parse()

	cfg, err := config.LoadWithEnv(*configPath)
	if err != nil {
		log.Fatalf("config load failed: %v", err)
	}

	log.Printf("env=%s cache=%s activity=%s", cfg.Environment, cfg.Cache.Driver, cfg.Activity.Backend)

	app, cleanup, err := di.InitializeApp(cfg)
	if err != nil {
		log.Fatalf("app initialization failed: %v", err)
	}

	runErr := app.Run()
	cleanup()
	if runErr != nil {
		log.Printf("app error: %v", runErr)
		os.Exit(1)
	}
}
