package recommend

import "time"

// PlaceCandidate is a restaurant returned by the place search, prior to
// filtering. It is sourced entirely from the place source and never
// mutated by the pipeline. Source order carries the search relevance.
type PlaceCandidate struct {
	ID          string   `json:"place_id"`
	Name        string   `json:"name"`
	Lat         float64  `json:"lat,omitempty"`
	Lng         float64  `json:"lng,omitempty"`
	Rating      float64  `json:"rating"`
	RatingCount int      `json:"user_ratings_total"`
	Address     string   `json:"address"`
	Types       []string `json:"types,omitempty"`
}

// Review is a single raw review for a candidate. Only Text participates
// in scoring; the remaining fields are optional source metadata.
type Review struct {
	Text   string    `json:"text"`
	Rating float64   `json:"rating,omitempty"`
	Author string    `json:"author,omitempty"`
	Time   time.Time `json:"time,omitempty"`
}

// MoodProbs maps every mood label to an independent probability in [0,1]
// for one review. Labels may co-occur, so values need not sum to one.
type MoodProbs map[string]float64

// ScoredRestaurant is a candidate annotated with its mood score for the
// one requested mood. Valid for the lifetime of a single request.
type ScoredRestaurant struct {
	PlaceCandidate
	MoodScore float64 `json:"mood_score"`
	MapsURL   string  `json:"maps_url,omitempty"`
}

// Result statuses. Empty results are legitimate terminal states, not
// errors, and the two empty cases are reported distinctly.
const (
	StatusOK           = "ok"
	StatusNoCandidates = "no restaurants found matching criteria in this area"
	StatusNoScoreable  = "found restaurants but not enough reviews to score"
)

// RankedResult is the ordered outcome of one recommendation request.
// TotalFound counts every restaurant that produced a valid score, not
// just the truncated head. Fallbacks counts candidates scored by the
// keyword heuristic instead of the model; it is diagnostic only and is
// not part of the response shape.
type RankedResult struct {
	Mood        string             `json:"mood"`
	Restaurants []ScoredRestaurant `json:"restaurants"`
	TotalFound  int                `json:"total_found"`
	Status      string             `json:"status"`
	Fallbacks   int                `json:"-"`
}

// Query is a single recommendation request. Zero Radius and MaxResults
// fall back to the configured defaults.
type Query struct {
	Lat          float64
	Lng          float64
	Mood         string
	RadiusMeters int
	MaxResults   int
}
