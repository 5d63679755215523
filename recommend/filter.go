package recommend

import "unicode/utf8"

// FilterCandidates keeps candidates whose rating strictly exceeds
// MinRating and whose rating count strictly exceeds MinRatingCount,
// truncated to MaxCandidates. Source order is preserved: the place
// search's own relevance order is assumed meaningful and not re-sorted
// here. Empty input yields empty output.
func FilterCandidates(cands []PlaceCandidate, cfg FilterConfig) []PlaceCandidate {
	out := make([]PlaceCandidate, 0, len(cands))
	for _, c := range cands {
		if c.Rating <= cfg.MinRating {
			continue
		}
		if c.RatingCount <= cfg.MinRatingCount {
			continue
		}
		out = append(out, c)
		if cfg.MaxCandidates > 0 && len(out) >= cfg.MaxCandidates {
			break
		}
	}
	return out
}

// FilterReviews keeps reviews whose text strictly exceeds
// MinReviewLength characters. The second return value reports whether
// enough reviews survive to score the candidate; when false the
// candidate is unscoreable and contributes nothing to the ranking.
func FilterReviews(reviews []Review, cfg ReviewConfig) ([]Review, bool) {
	out := make([]Review, 0, len(reviews))
	for _, r := range reviews {
		if utf8.RuneCountInString(r.Text) <= cfg.MinReviewLength {
			continue
		}
		out = append(out, r)
	}
	return out, len(out) >= cfg.MinReviewCount
}
