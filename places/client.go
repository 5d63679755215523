// Package places is a thin Google Places client serving as the
// pipeline's place and review source.
package places

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"yashubustudio/moodrank/recommend"
)

const defaultBaseURL = "https://maps.googleapis.com/maps/api/place"

// Config for the client. CacheTTL bounds how long identical nearby and
// review lookups are served from memory, which keeps repeated queries
// within a short window stable.
type Config struct {
	APIKey      string
	BaseURL     string
	CacheTTL    time.Duration
	HTTPTimeout time.Duration
}

// Client implements recommend.PlaceSource and recommend.ReviewSource.
type Client struct {
	cfg   Config
	http  *http.Client
	cache *gocache.Cache
}

// NewClient validates the configuration and prepares the cache.
func NewClient(cfg Config) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("places: API key is required")
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultBaseURL
	}
	if cfg.CacheTTL <= 0 {
		cfg.CacheTTL = 5 * time.Minute
	}
	if cfg.HTTPTimeout <= 0 {
		cfg.HTTPTimeout = 10 * time.Second
	}
	return &Client{
		cfg:   cfg,
		http:  &http.Client{Timeout: cfg.HTTPTimeout},
		cache: gocache.New(cfg.CacheTTL, 2*cfg.CacheTTL),
	}, nil
}

type nearbyResponse struct {
	Status       string         `json:"status"`
	ErrorMessage string         `json:"error_message"`
	Results      []nearbyResult `json:"results"`
}

type nearbyResult struct {
	PlaceID          string   `json:"place_id"`
	Name             string   `json:"name"`
	Rating           float64  `json:"rating"`
	UserRatingsTotal int      `json:"user_ratings_total"`
	Vicinity         string   `json:"vicinity"`
	Types            []string `json:"types"`
	Geometry         struct {
		Location struct {
			Lat float64 `json:"lat"`
			Lng float64 `json:"lng"`
		} `json:"location"`
	} `json:"geometry"`
}

type detailsResponse struct {
	Status       string `json:"status"`
	ErrorMessage string `json:"error_message"`
	Result       struct {
		Reviews []reviewResult `json:"reviews"`
	} `json:"result"`
}

type reviewResult struct {
	Text       string  `json:"text"`
	Rating     float64 `json:"rating"`
	AuthorName string  `json:"author_name"`
	Time       int64   `json:"time"`
}

// Nearby performs a nearby search for restaurants around the coordinate.
func (c *Client) Nearby(ctx context.Context, lat, lng float64, radiusMeters int) ([]recommend.PlaceCandidate, error) {
	key := fmt.Sprintf("nearby|%.6f|%.6f|%d", lat, lng, radiusMeters)
	if v, ok := c.cache.Get(key); ok {
		return append([]recommend.PlaceCandidate(nil), v.([]recommend.PlaceCandidate)...), nil
	}

	q := url.Values{}
	q.Set("location", fmt.Sprintf("%f,%f", lat, lng))
	q.Set("radius", strconv.Itoa(radiusMeters))
	q.Set("type", "restaurant")
	q.Set("key", c.cfg.APIKey)

	var resp nearbyResponse
	if err := c.getJSON(ctx, "/nearbysearch/json", q, &resp); err != nil {
		return nil, err
	}
	if resp.Status != "OK" && resp.Status != "ZERO_RESULTS" {
		return nil, apiError(resp.Status, resp.ErrorMessage)
	}

	cands := make([]recommend.PlaceCandidate, 0, len(resp.Results))
	for _, r := range resp.Results {
		cands = append(cands, recommend.PlaceCandidate{
			ID:          r.PlaceID,
			Name:        r.Name,
			Lat:         r.Geometry.Location.Lat,
			Lng:         r.Geometry.Location.Lng,
			Rating:      r.Rating,
			RatingCount: r.UserRatingsTotal,
			Address:     r.Vicinity,
			Types:       r.Types,
		})
	}
	c.cache.Set(key, cands, gocache.DefaultExpiration)
	return append([]recommend.PlaceCandidate(nil), cands...), nil
}

// Reviews fetches the reviews for one place.
func (c *Client) Reviews(ctx context.Context, placeID string) ([]recommend.Review, error) {
	key := "reviews|" + placeID
	if v, ok := c.cache.Get(key); ok {
		return append([]recommend.Review(nil), v.([]recommend.Review)...), nil
	}

	q := url.Values{}
	q.Set("place_id", placeID)
	q.Set("fields", "reviews")
	q.Set("key", c.cfg.APIKey)

	var resp detailsResponse
	if err := c.getJSON(ctx, "/details/json", q, &resp); err != nil {
		return nil, err
	}
	if resp.Status != "OK" {
		return nil, apiError(resp.Status, resp.ErrorMessage)
	}

	reviews := make([]recommend.Review, 0, len(resp.Result.Reviews))
	for _, r := range resp.Result.Reviews {
		rev := recommend.Review{
			Text:   r.Text,
			Rating: r.Rating,
			Author: r.AuthorName,
		}
		if r.Time > 0 {
			rev.Time = time.Unix(r.Time, 0).UTC()
		}
		reviews = append(reviews, rev)
	}
	c.cache.Set(key, reviews, gocache.DefaultExpiration)
	return append([]recommend.Review(nil), reviews...), nil
}

func (c *Client) getJSON(ctx context.Context, path string, q url.Values, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.cfg.BaseURL+path+"?"+q.Encode(), nil)
	if err != nil {
		return fmt.Errorf("build places request: %w", err)
	}
	res, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("places request: %w", err)
	}
	defer res.Body.Close()
	if res.StatusCode != http.StatusOK {
		return fmt.Errorf("places api http %d", res.StatusCode)
	}
	if err := json.NewDecoder(res.Body).Decode(out); err != nil {
		return fmt.Errorf("decode places response: %w", err)
	}
	return nil
}

func apiError(status, message string) error {
	if message == "" {
		return fmt.Errorf("places api status %s", status)
	}
	return fmt.Errorf("places api status %s: %s", status, message)
}
