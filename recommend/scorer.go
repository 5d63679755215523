package recommend

import (
	"context"
	"fmt"
	"math"
)

// ScoreReviews classifies the whole review batch in a single call and
// aggregates the target-mood probabilities into one score on the 0..10
// scale, rounded to 2 decimal places. Review order is preserved between
// input and classification since score attribution is positional. An
// empty batch scores 0.0 without invoking the classifier.
func ScoreReviews(ctx context.Context, clf Classifier, texts []string, mood string) (float64, error) {
	if len(texts) == 0 {
		return 0.0, nil
	}
	probs, err := clf.Predict(ctx, texts)
	if err != nil {
		return 0, fmt.Errorf("classify reviews: %w", err)
	}
	if len(probs) != len(texts) {
		return 0, fmt.Errorf("classifier returned %d vectors for %d texts", len(probs), len(texts))
	}
	var sum float64
	for _, p := range probs {
		sum += p[mood]
	}
	avg := sum / float64(len(texts))
	return round2(avg * 10), nil
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
