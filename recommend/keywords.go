package recommend

import "strings"

// moodKeywords backs the deterministic fallback scorer used when the
// model is unavailable. One entry per production mood label.
var moodKeywords = map[string][]string{
	"celebration": {"special", "birthday", "celebration", "fancy", "upscale", "anniversary", "occasion"},
	"date":        {"romantic", "intimate", "ambiance", "cozy", "date", "candles", "dim"},
	"quick_bite":  {"fast", "quick", "casual", "grab", "counter", "takeout", "to-go"},
	"budget":      {"cheap", "affordable", "value", "inexpensive", "budget", "reasonable", "deal"},
}

// KeywordScore is the deterministic fallback for ScoreReviews: it counts
// mood-keyword occurrences across the reviews (each keyword at most once
// per review) and normalizes to the 0..10 scale, rounded to 2 decimal
// places. When no keywords apply it returns the neutral 5.0.
func KeywordScore(texts []string, mood string) float64 {
	keywords := moodKeywords[mood]
	maxPossible := len(texts) * len(keywords)
	if maxPossible == 0 {
		return 5.0
	}
	var hits int
	for _, t := range texts {
		lower := strings.ToLower(t)
		for _, kw := range keywords {
			if strings.Contains(lower, kw) {
				hits++
			}
		}
	}
	return round2(float64(hits) / float64(maxPossible) * 10)
}
