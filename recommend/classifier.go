package recommend

import "context"

// Classifier exposes the minimal surface the pipeline needs from the
// pretrained mood model: given N texts, return N probability vectors
// over a fixed label set, in input order.
type Classifier interface {
	Predict(ctx context.Context, texts []string) ([]MoodProbs, error)
	Labels() []string
	Close() error
}

func validMood(moods []string, mood string) bool {
	for _, m := range moods {
		if m == mood {
			return true
		}
	}
	return false
}

// sameVocabulary reports whether two label sets match by position and name.
func sameVocabulary(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
