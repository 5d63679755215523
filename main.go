package main

import (
	"errors"
	"flag"
	"log"
	"net/http"
	"os"

	"yashubustudio/moodrank/internal/api"
	"yashubustudio/moodrank/places"
	"yashubustudio/moodrank/recommend"
)

func main() {
	var (
		configPath = flag.String("config", "", "Path to config.json (default: ./config.json)")
		addr       = flag.String("addr", "", "Listen address (overrides config)")
	)
	flag.Parse()

	logger := log.New(os.Stdout, "", log.LstdFlags)

	cfg, err := recommend.LoadConfig(*configPath)
	if err != nil {
		logger.Fatalf("load config: %v", err)
	}
	if key := os.Getenv("GOOGLE_PLACES_API_KEY"); key != "" {
		cfg.Places.APIKey = key
	}
	if *addr != "" {
		cfg.ListenAddr = *addr
	}

	client, err := places.NewClient(places.Config{
		APIKey:   cfg.Places.APIKey,
		BaseURL:  cfg.Places.BaseURL,
		CacheTTL: cfg.Places.CacheTTL(),
	})
	if err != nil {
		logger.Fatalf("init places client: %v", err)
	}

	var clf recommend.Classifier
	ort, err := recommend.NewOrtClassifier(cfg.Classifier, cfg.Moods)
	switch {
	case err == nil:
		clf = ort
		logger.Printf("classifier loaded from %s", cfg.Classifier.ModelPath)
	case errors.Is(err, recommend.ErrVocabulary):
		logger.Fatalf("init classifier: %v", err)
	default:
		logger.Printf("classifier unavailable, scoring with keywords: %v", err)
	}

	svc, err := recommend.NewService(client, client, clf, cfg, logger)
	if err != nil {
		logger.Fatalf("init service: %v", err)
	}
	defer svc.Close()

	server := api.NewServer(svc, logger)
	logger.Printf("listening on %s (scoring mode: %s)", cfg.ListenAddr, svc.Mode())
	if err := http.ListenAndServe(cfg.ListenAddr, server.Routes()); err != nil {
		logger.Fatalf("serve: %v", err)
	}
}
