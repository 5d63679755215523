package recommend

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"
)

// PlaceSource returns candidate places around a coordinate. External
// collaborator; the pipeline treats its output as immutable.
type PlaceSource interface {
	Nearby(ctx context.Context, lat, lng float64, radiusMeters int) ([]PlaceCandidate, error)
}

// ReviewSource returns the raw reviews for one place.
type ReviewSource interface {
	Reviews(ctx context.Context, placeID string) ([]Review, error)
}

// ScoringMode reports how restaurant scores are produced.
type ScoringMode string

const (
	// ScoringModeModel means scores come from the pretrained classifier.
	ScoringModeModel ScoringMode = "model"
	// ScoringModeKeyword means the deterministic keyword heuristic is in
	// use, either because no classifier was provided or because it
	// failed to load.
	ScoringModeKeyword ScoringMode = "keyword"
)

// Service orchestrates the recommendation pipeline: fetch candidates,
// filter, fetch and filter reviews per candidate, score against the
// requested mood, rank.
type Service struct {
	places  PlaceSource
	reviews ReviewSource
	clf     Classifier // nil in keyword mode
	mode    ScoringMode

	cfgMu sync.RWMutex
	cfg   Config

	logger *log.Logger
}

// NewService constructs a service with the given sources and
// configuration. clf may be nil, which puts the service in keyword
// scoring mode explicitly. A non-nil classifier whose label set does not
// match the configured mood vocabulary (by position and name) is a fatal
// configuration error.
func NewService(places PlaceSource, reviews ReviewSource, clf Classifier, cfg Config, logger *log.Logger) (*Service, error) {
	if places == nil {
		return nil, errors.New("place source is required")
	}
	if reviews == nil {
		return nil, errors.New("review source is required")
	}
	cfg.ApplyDefaults()

	mode := ScoringModeKeyword
	if clf != nil {
		if !sameVocabulary(cfg.Moods, clf.Labels()) {
			return nil, fmt.Errorf("%w: config %v, classifier %v", ErrVocabulary, cfg.Moods, clf.Labels())
		}
		mode = ScoringModeModel
	}
	return &Service{
		places:  places,
		reviews: reviews,
		clf:     clf,
		mode:    mode,
		cfg:     cfg,
		logger:  logger,
	}, nil
}

// Close releases classifier resources.
func (s *Service) Close() error {
	if s.clf != nil {
		return s.clf.Close()
	}
	return nil
}

// Config returns a copy of the current configuration.
func (s *Service) Config() Config {
	s.cfgMu.RLock()
	defer s.cfgMu.RUnlock()
	return s.cfg.Clone()
}

// UpdateConfig replaces the threshold configuration. The mood vocabulary
// is fixed at construction and kept as-is.
func (s *Service) UpdateConfig(cfg Config) {
	cfg.ApplyDefaults()
	s.cfgMu.Lock()
	cfg.Moods = s.cfg.Moods
	s.cfg = cfg
	s.cfgMu.Unlock()
}

// Mode reports whether scores come from the model or the keyword
// heuristic.
func (s *Service) Mode() ScoringMode {
	return s.mode
}

// Recommend runs the full pipeline for one query.
func (s *Service) Recommend(ctx context.Context, q Query) (RankedResult, error) {
	return s.recommend(ctx, q, nil)
}

// RecommendWithProgress is Recommend with a per-candidate completion
// callback for interactive front ends. progress may be nil.
func (s *Service) RecommendWithProgress(ctx context.Context, q Query, progress func(done, total int)) (RankedResult, error) {
	return s.recommend(ctx, q, progress)
}

func (s *Service) recommend(ctx context.Context, q Query, progress func(done, total int)) (RankedResult, error) {
	cfg := s.Config()

	// Validation happens before any external call.
	if !validMood(cfg.Moods, q.Mood) {
		return RankedResult{}, fmt.Errorf("%w: unknown mood %q", ErrInvalidInput, q.Mood)
	}
	if q.Lat < -90 || q.Lat > 90 || q.Lng < -180 || q.Lng > 180 {
		return RankedResult{}, fmt.Errorf("%w: coordinates out of range (%f, %f)", ErrInvalidInput, q.Lat, q.Lng)
	}
	radius := q.RadiusMeters
	if radius <= 0 {
		radius = cfg.RadiusMeters
	}
	maxResults := q.MaxResults
	if maxResults <= 0 {
		maxResults = cfg.MaxResults
	}
	if cfg.TimeoutSec > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, time.Duration(cfg.TimeoutSec)*time.Second)
		defer cancel()
	}

	// A failure here is fatal for the whole request.
	raw, err := s.places.Nearby(ctx, q.Lat, q.Lng, radius)
	if err != nil {
		return RankedResult{}, fmt.Errorf("%w: fetch nearby restaurants: %w", ErrUpstream, err)
	}
	cands := FilterCandidates(raw, cfg.Filter)
	if len(cands) == 0 {
		res := Rank(nil, maxResults, 0)
		res.Mood = q.Mood
		return res, nil
	}

	// Each worker owns its candidate exclusively and publishes a single
	// fully-resolved outcome into its slot, so the ranker never sees
	// partial writes and collection order stays the candidate order
	// regardless of completion order.
	outcomes := make([]candidateOutcome, len(cands))
	sem := make(chan struct{}, cfg.Concurrency)
	var wg sync.WaitGroup
	var progressMu sync.Mutex
	done := 0
	for i := range cands {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()
			outcomes[i] = s.scoreCandidate(ctx, cands[i], q.Mood, cfg)
			if progress != nil {
				progressMu.Lock()
				done++
				progress(done, len(cands))
				progressMu.Unlock()
			}
		}(i)
	}
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return RankedResult{}, fmt.Errorf("%w: request timed out: %w", ErrUpstream, err)
	}

	scored := make([]ScoredRestaurant, 0, len(outcomes))
	fallbacks := 0
	for _, oc := range outcomes {
		if !oc.ok {
			continue
		}
		scored = append(scored, oc.rest)
		if oc.fallback {
			fallbacks++
		}
	}

	res := Rank(scored, maxResults, len(cands))
	res.Mood = q.Mood
	res.Fallbacks = fallbacks
	return res, nil
}

type candidateOutcome struct {
	rest     ScoredRestaurant
	ok       bool
	fallback bool
}

// scoreCandidate resolves one candidate end to end. A review-fetch
// failure or an insufficient review set drops the candidate; a
// classifier failure degrades to the keyword score instead.
func (s *Service) scoreCandidate(ctx context.Context, cand PlaceCandidate, mood string, cfg Config) candidateOutcome {
	reviews, err := s.reviews.Reviews(ctx, cand.ID)
	if err != nil {
		s.logf("skip %s: fetch reviews: %v", cand.Name, err)
		return candidateOutcome{}
	}
	kept, enough := FilterReviews(reviews, cfg.Reviews)
	if !enough {
		s.logf("skip %s: %d usable reviews, need %d", cand.Name, len(kept), cfg.Reviews.MinReviewCount)
		return candidateOutcome{}
	}
	texts := make([]string, len(kept))
	for i, r := range kept {
		texts[i] = r.Text
	}
	texts = NormalizeAll(texts)

	var score float64
	var fallback bool
	if s.clf == nil {
		score = KeywordScore(texts, mood)
	} else {
		score, err = ScoreReviews(ctx, s.clf, texts, mood)
		if err != nil {
			s.logf("keyword fallback for %s: %v", cand.Name, err)
			score = KeywordScore(texts, mood)
			fallback = true
		}
	}
	return candidateOutcome{
		rest: ScoredRestaurant{
			PlaceCandidate: cand,
			MoodScore:      score,
			MapsURL:        MapsURL(cand),
		},
		ok:       true,
		fallback: fallback,
	}
}

func (s *Service) logf(format string, args ...any) {
	if s.logger != nil {
		s.logger.Printf(format, args...)
	}
}
