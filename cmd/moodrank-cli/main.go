package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/schollz/progressbar/v2"

	"yashubustudio/moodrank/places"
	"yashubustudio/moodrank/recommend"
)

type cliOptions struct {
	configPath string
	lat        float64
	lng        float64
	mood       string
	radius     int
	maxResults int
	apiKey     string
}

func main() {
	opts, err := parseFlags()
	if err != nil {
		log.Fatalf("moodrank-cli: %v", err)
	}
	if err := run(opts); err != nil {
		log.Fatalf("moodrank-cli: %v", err)
	}
}

func parseFlags() (cliOptions, error) {
	var opts cliOptions
	flag.StringVar(&opts.configPath, "config", "", "Path to config.json (default: ./config.json)")
	flag.Float64Var(&opts.lat, "lat", 0, "Latitude of the search center")
	flag.Float64Var(&opts.lng, "lng", 0, "Longitude of the search center")
	flag.StringVar(&opts.mood, "mood", "", "Mood to rank for (celebration, date, quick_bite, budget)")
	flag.IntVar(&opts.radius, "radius", 0, "Search radius in meters (default from config)")
	flag.IntVar(&opts.maxResults, "max", 0, "Maximum results to print (default from config)")
	flag.StringVar(&opts.apiKey, "key", os.Getenv("GOOGLE_PLACES_API_KEY"), "Google Places API key (default: GOOGLE_PLACES_API_KEY)")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage: %s --lat LAT --lng LNG --mood MOOD [options]\n\n", filepath.Base(os.Args[0]))
		flag.PrintDefaults()
	}
	flag.Parse()

	opts.mood = strings.TrimSpace(opts.mood)
	if opts.mood == "" {
		flag.Usage()
		return opts, errors.New("missing required --mood")
	}
	if opts.apiKey == "" {
		flag.Usage()
		return opts, errors.New("missing API key (--key or GOOGLE_PLACES_API_KEY)")
	}
	return opts, nil
}

func run(opts cliOptions) error {
	cfg, err := recommend.LoadConfig(opts.configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	cfg.Places.APIKey = opts.apiKey

	client, err := places.NewClient(places.Config{
		APIKey:   cfg.Places.APIKey,
		BaseURL:  cfg.Places.BaseURL,
		CacheTTL: cfg.Places.CacheTTL(),
	})
	if err != nil {
		return fmt.Errorf("init places client: %w", err)
	}

	logger := log.New(os.Stderr, "", log.LstdFlags)
	var clf recommend.Classifier
	ort, err := recommend.NewOrtClassifier(cfg.Classifier, cfg.Moods)
	switch {
	case err == nil:
		clf = ort
	case errors.Is(err, recommend.ErrVocabulary):
		return fmt.Errorf("init classifier: %w", err)
	default:
		logger.Printf("classifier unavailable, scoring with keywords: %v", err)
	}

	service, err := recommend.NewService(client, client, clf, cfg, logger)
	if err != nil {
		return fmt.Errorf("init service: %w", err)
	}
	defer service.Close()

	var bar *progressbar.ProgressBar
	res, err := service.RecommendWithProgress(context.Background(), recommend.Query{
		Lat:          opts.lat,
		Lng:          opts.lng,
		Mood:         opts.mood,
		RadiusMeters: opts.radius,
		MaxResults:   opts.maxResults,
	}, func(done, total int) {
		if bar == nil {
			bar = progressbar.New(total)
		}
		_ = bar.Add(1)
	})
	if bar != nil {
		fmt.Fprintln(os.Stderr)
	}
	if err != nil {
		return err
	}

	if len(res.Restaurants) == 0 {
		fmt.Println(res.Status)
		return nil
	}
	fmt.Printf("Top %s picks (%d scored):\n\n", res.Mood, res.TotalFound)
	for i, r := range res.Restaurants {
		fmt.Printf("%2d. %s (%.2f/10)\n", i+1, r.Name, r.MoodScore)
		fmt.Printf("    %.1f stars, %d ratings\n", r.Rating, r.RatingCount)
		if r.Address != "" {
			fmt.Printf("    %s\n", r.Address)
		}
		if r.MapsURL != "" {
			fmt.Printf("    %s\n", r.MapsURL)
		}
	}
	return nil
}
