package recommend

import "errors"

// Sentinel errors for the request-level failure taxonomy. Callers match
// with errors.Is; per-candidate failures are absorbed by the pipeline
// and never surface through these.
var (
	// ErrInvalidInput marks malformed coordinates or an unrecognized
	// mood label. Raised before any external call is made.
	ErrInvalidInput = errors.New("invalid input")

	// ErrUpstream marks a place-source failure at the candidate-fetch
	// stage, or expiry of the overall request budget.
	ErrUpstream = errors.New("upstream unavailable")

	// ErrVocabulary marks a mismatch between the configured mood
	// vocabulary and the classifier's label set. This is a fatal
	// configuration error, never a reason to fall back.
	ErrVocabulary = errors.New("mood vocabulary mismatch")
)
