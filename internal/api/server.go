// Package api is the HTTP front end over the recommendation pipeline.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"yashubustudio/moodrank/recommend"
)

// Recommender is the slice of the pipeline the API needs.
type Recommender interface {
	Recommend(ctx context.Context, q recommend.Query) (recommend.RankedResult, error)
	Mode() recommend.ScoringMode
}

// Server holds the route handlers.
type Server struct {
	svc    Recommender
	logger *log.Logger
}

func NewServer(svc Recommender, logger *log.Logger) *Server {
	return &Server{svc: svc, logger: logger}
}

func (s *Server) Routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/", s.handleRoot)
	mux.HandleFunc("/health", s.handleHealth)
	mux.HandleFunc("/recommend", s.handleRecommend)
	return mux
}

// RecommendRequest mirrors the pipeline query. Radius and max_results
// are optional and fall back to the configured defaults.
type RecommendRequest struct {
	Latitude   float64 `json:"latitude"`
	Longitude  float64 `json:"longitude"`
	Mood       string  `json:"mood"`
	Radius     int     `json:"radius"`
	MaxResults int     `json:"max_results"`
}

type Restaurant struct {
	PlaceID          string   `json:"place_id"`
	Name             string   `json:"name"`
	MoodScore        float64  `json:"mood_score"`
	Rating           float64  `json:"rating"`
	UserRatingsTotal int      `json:"user_ratings_total"`
	Address          string   `json:"address"`
	Types            []string `json:"types,omitempty"`
	MapsURL          string   `json:"maps_url,omitempty"`
}

type RecommendResponse struct {
	Mood        string       `json:"mood"`
	Restaurants []Restaurant `json:"restaurants"`
	TotalFound  int          `json:"total_found"`
	Status      string       `json:"status"`
}

func (s *Server) handleRecommend(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	var req RecommendRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON"})
		return
	}

	res, err := s.svc.Recommend(r.Context(), recommend.Query{
		Lat:          req.Latitude,
		Lng:          req.Longitude,
		Mood:         req.Mood,
		RadiusMeters: req.Radius,
		MaxResults:   req.MaxResults,
	})
	if err != nil {
		status := http.StatusInternalServerError
		switch {
		case errors.Is(err, recommend.ErrInvalidInput):
			status = http.StatusBadRequest
		case errors.Is(err, context.DeadlineExceeded):
			status = http.StatusGatewayTimeout
		case errors.Is(err, recommend.ErrUpstream):
			status = http.StatusBadGateway
		}
		if s.logger != nil && status != http.StatusBadRequest {
			s.logger.Printf("recommend failed: %v", err)
		}
		writeJSON(w, status, map[string]string{"error": err.Error()})
		return
	}

	restaurants := make([]Restaurant, 0, len(res.Restaurants))
	for _, rest := range res.Restaurants {
		restaurants = append(restaurants, Restaurant{
			PlaceID:          rest.ID,
			Name:             rest.Name,
			MoodScore:        rest.MoodScore,
			Rating:           rest.Rating,
			UserRatingsTotal: rest.RatingCount,
			Address:          rest.Address,
			Types:            rest.Types,
			MapsURL:          rest.MapsURL,
		})
	}
	writeJSON(w, http.StatusOK, RecommendResponse{
		Mood:        res.Mood,
		Restaurants: restaurants,
		TotalFound:  res.TotalFound,
		Status:      res.Status,
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":       "healthy",
		"scoring_mode": string(s.svc.Mode()),
	})
}

func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{
		"message":      "mood-based restaurant recommender",
		"status":       "healthy",
		"scoring_mode": string(s.svc.Mode()),
	})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
