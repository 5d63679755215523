package recommend

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

const defaultConfigFile = "config.json"

// FilterConfig holds the candidate quality thresholds. Rating and count
// comparisons are strict (>), matching the place source semantics.
type FilterConfig struct {
	MinRating      float64 `json:"minRating"`
	MinRatingCount int     `json:"minRatingCount"`
	MaxCandidates  int     `json:"maxCandidates"`
}

// ReviewConfig controls which reviews are informative enough to score.
type ReviewConfig struct {
	MinReviewLength int `json:"minReviewLength"`
	MinReviewCount  int `json:"minReviewCount"`
}

// ClassifierConfig wraps the configuration for the ONNX classifier.
type ClassifierConfig struct {
	OrtDLL        string `json:"ortDll"`
	ModelPath     string `json:"modelPath"`
	TokenizerPath string `json:"tokenizerPath"`
	MaxSeqLen     int    `json:"maxSeqLen"`
}

// PlacesConfig configures the place/review source. The API key may also
// arrive via the GOOGLE_PLACES_API_KEY environment variable.
type PlacesConfig struct {
	APIKey      string `json:"apiKey"`
	BaseURL     string `json:"baseUrl,omitempty"`
	CacheTTLSec int    `json:"cacheTtlSec"`
}

// CacheTTL returns the cache lifetime as a duration.
func (p PlacesConfig) CacheTTL() time.Duration {
	return time.Duration(p.CacheTTLSec) * time.Second
}

// Config aggregates runtime settings persisted to config.json.
type Config struct {
	Moods        []string         `json:"moods"`
	Filter       FilterConfig     `json:"filter"`
	Reviews      ReviewConfig     `json:"reviews"`
	MaxResults   int              `json:"maxResults"`
	RadiusMeters int              `json:"radiusMeters"`
	Concurrency  int              `json:"concurrency"`
	TimeoutSec   int              `json:"timeoutSec"`
	Classifier   ClassifierConfig `json:"classifier"`
	Places       PlacesConfig     `json:"places"`
	ListenAddr   string           `json:"listenAddr"`
}

// DefaultMoods returns the production mood vocabulary. Order matters: it
// must match the classifier's output labels by position.
func DefaultMoods() []string {
	return []string{"celebration", "date", "quick_bite", "budget"}
}

// Clone creates a deep copy of the configuration so callers can mutate
// safely. Moods is the only reference field; everything else copies by
// value.
func (c Config) Clone() Config {
	out := c
	out.Moods = append([]string(nil), c.Moods...)
	return out
}

// ApplyDefaults populates zero values with the production defaults.
func (c *Config) ApplyDefaults() {
	if len(c.Moods) == 0 {
		c.Moods = DefaultMoods()
	}
	if c.Filter.MinRating == 0 {
		c.Filter.MinRating = 3.9
	}
	if c.Filter.MinRatingCount == 0 {
		c.Filter.MinRatingCount = 10
	}
	if c.Filter.MaxCandidates == 0 {
		c.Filter.MaxCandidates = 15
	}
	if c.Reviews.MinReviewLength == 0 {
		c.Reviews.MinReviewLength = 20
	}
	if c.Reviews.MinReviewCount == 0 {
		c.Reviews.MinReviewCount = 3
	}
	if c.MaxResults <= 0 {
		c.MaxResults = 10
	}
	if c.RadiusMeters <= 0 {
		c.RadiusMeters = 3000
	}
	if c.Concurrency <= 0 {
		c.Concurrency = 4
	}
	if c.TimeoutSec <= 0 {
		c.TimeoutSec = 30
	}
	if c.Classifier.ModelPath == "" {
		c.Classifier.ModelPath = "./models/distilbert-mood/model.onnx"
	}
	if c.Classifier.TokenizerPath == "" {
		c.Classifier.TokenizerPath = "./models/distilbert-mood/tokenizer.json"
	}
	if c.Classifier.MaxSeqLen == 0 {
		c.Classifier.MaxSeqLen = 128
	}
	if c.Places.CacheTTLSec == 0 {
		c.Places.CacheTTLSec = 300
	}
	if c.ListenAddr == "" {
		c.ListenAddr = ":8080"
	}
}

// LoadConfig loads configuration from the given path or the default
// config.json. A missing file yields the defaults, not an error.
func LoadConfig(path string) (Config, error) {
	if path == "" {
		path = defaultConfigFile
	}
	var cfg Config
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			cfg.ApplyDefaults()
			return cfg, nil
		}
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := json.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("decode config: %w", err)
	}
	cfg.ApplyDefaults()
	return cfg, nil
}

// SaveConfig persists configuration to disk.
func SaveConfig(path string, cfg Config) error {
	if path == "" {
		path = defaultConfigFile
	}
	tmp := path + ".tmp"
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	cfg.ApplyDefaults()
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write temp config: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("rename config: %w", err)
	}
	return nil
}
