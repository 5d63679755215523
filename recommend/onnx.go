package recommend

import (
	"context"
	"errors"
	"fmt"

	"yashubustudio/moodrank/cls"
)

// OrtClassifier implements Classifier on top of the ONNX encoder with
// the configured mood vocabulary.
type OrtClassifier struct {
	enc    *cls.Encoder
	labels []string
}

// NewOrtClassifier initializes the model and runs a single probe
// inference so that a vocabulary/model dimensionality mismatch fails at
// startup rather than on the first request.
func NewOrtClassifier(cfg ClassifierConfig, moods []string) (*OrtClassifier, error) {
	if len(moods) == 0 {
		moods = DefaultMoods()
	}
	enc := &cls.Encoder{}
	if err := enc.Init(cls.Config{
		OrtDLL:        cfg.OrtDLL,
		ModelPath:     cfg.ModelPath,
		TokenizerPath: cfg.TokenizerPath,
		MaxSeqLen:     cfg.MaxSeqLen,
		NumLabels:     len(moods),
	}); err != nil {
		return nil, err
	}
	c := &OrtClassifier{
		enc:    enc,
		labels: append([]string(nil), moods...),
	}
	if _, err := c.Predict(context.Background(), []string{"warmup"}); err != nil {
		enc.Close()
		return nil, fmt.Errorf("%w: probe inference: %v", ErrVocabulary, err)
	}
	return c, nil
}

// Predict classifies the batch and maps probabilities onto the
// vocabulary by position.
func (c *OrtClassifier) Predict(_ context.Context, texts []string) ([]MoodProbs, error) {
	if c == nil || c.enc == nil {
		return nil, errors.New("classifier is not initialized")
	}
	rows, err := c.enc.Predict(texts)
	if err != nil {
		return nil, err
	}
	out := make([]MoodProbs, len(rows))
	for i, row := range rows {
		if len(row) != len(c.labels) {
			return nil, fmt.Errorf("model returned %d probabilities per text, vocabulary has %d labels", len(row), len(c.labels))
		}
		probs := make(MoodProbs, len(c.labels))
		for j, label := range c.labels {
			probs[label] = float64(row[j])
		}
		out[i] = probs
	}
	return out, nil
}

// Labels returns a copy of the vocabulary, in model output order.
func (c *OrtClassifier) Labels() []string {
	return append([]string(nil), c.labels...)
}

// Close releases model resources.
func (c *OrtClassifier) Close() error {
	if c == nil {
		return nil
	}
	if c.enc != nil {
		c.enc.Close()
		c.enc = nil
	}
	return nil
}
