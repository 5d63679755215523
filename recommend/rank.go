package recommend

import (
	"fmt"
	"net/url"
	"sort"
)

// Rank sorts scored restaurants by mood score descending and truncates
// to maxResults. The sort is stable: candidates tying at the 0.01
// rounding granularity keep their relative input order. candidateCount
// is the number of candidates that entered scoring; it distinguishes
// the two empty outcomes.
func Rank(scored []ScoredRestaurant, maxResults, candidateCount int) RankedResult {
	if maxResults <= 0 {
		maxResults = 10
	}
	out := make([]ScoredRestaurant, len(scored))
	copy(out, scored)
	sort.SliceStable(out, func(i, j int) bool { return out[i].MoodScore > out[j].MoodScore })

	total := len(out)
	if len(out) > maxResults {
		out = out[:maxResults]
	}

	status := StatusOK
	if total == 0 {
		if candidateCount == 0 {
			status = StatusNoCandidates
		} else {
			status = StatusNoScoreable
		}
	}
	return RankedResult{
		Restaurants: out,
		TotalFound:  total,
		Status:      status,
	}
}

// MapsURL derives a map link from the place identifier and coordinates.
func MapsURL(c PlaceCandidate) string {
	if c.ID == "" {
		return ""
	}
	q := url.Values{}
	q.Set("api", "1")
	q.Set("query", fmt.Sprintf("%f,%f", c.Lat, c.Lng))
	q.Set("query_place_id", c.ID)
	return "https://www.google.com/maps/search/?" + q.Encode()
}
