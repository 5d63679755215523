package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"yashubustudio/moodrank/recommend"
)

type stubRecommender struct {
	res  recommend.RankedResult
	err  error
	mode recommend.ScoringMode
	got  recommend.Query
}

func (s *stubRecommender) Recommend(_ context.Context, q recommend.Query) (recommend.RankedResult, error) {
	s.got = q
	return s.res, s.err
}

func (s *stubRecommender) Mode() recommend.ScoringMode {
	if s.mode == "" {
		return recommend.ScoringModeModel
	}
	return s.mode
}

func postRecommend(t *testing.T, h http.Handler, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/recommend", bytes.NewBufferString(body))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestRecommendEndpoint(t *testing.T) {
	stub := &stubRecommender{res: recommend.RankedResult{
		Mood: "date",
		Restaurants: []recommend.ScoredRestaurant{
			{
				PlaceCandidate: recommend.PlaceCandidate{
					ID: "p1", Name: "Trattoria Uno", Rating: 4.6, RatingCount: 210, Address: "1 Main St",
				},
				MoodScore: 8.25,
				MapsURL:   "https://maps.example/p1",
			},
		},
		TotalFound: 1,
		Status:     recommend.StatusOK,
	}}
	h := NewServer(stub, nil).Routes()

	rec := postRecommend(t, h, `{"latitude":35.0,"longitude":139.0,"mood":"date","radius":2000}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Fatalf("unexpected content type %q", ct)
	}

	var res RecommendResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &res); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if res.Mood != "date" || res.TotalFound != 1 || res.Status != recommend.StatusOK {
		t.Fatalf("unexpected response meta: %+v", res)
	}
	if len(res.Restaurants) != 1 {
		t.Fatalf("expected 1 restaurant, got %d", len(res.Restaurants))
	}
	r := res.Restaurants[0]
	if r.PlaceID != "p1" || r.MoodScore != 8.25 || r.UserRatingsTotal != 210 {
		t.Fatalf("unexpected restaurant payload: %+v", r)
	}

	if stub.got.Mood != "date" || stub.got.RadiusMeters != 2000 {
		t.Fatalf("query not forwarded: %+v", stub.got)
	}
}

func TestRecommendMethodNotAllowed(t *testing.T) {
	h := NewServer(&stubRecommender{}, nil).Routes()
	req := httptest.NewRequest(http.MethodGet, "/recommend", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("expected 405, got %d", rec.Code)
	}
}

func TestRecommendBadJSON(t *testing.T) {
	h := NewServer(&stubRecommender{}, nil).Routes()
	rec := postRecommend(t, h, `{not json`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestRecommendErrorMapping(t *testing.T) {
	cases := []struct {
		err  error
		code int
	}{
		{fmt.Errorf("%w: unknown mood", recommend.ErrInvalidInput), http.StatusBadRequest},
		{fmt.Errorf("%w: places api down", recommend.ErrUpstream), http.StatusBadGateway},
		{errors.New("boom"), http.StatusInternalServerError},
	}
	for _, c := range cases {
		h := NewServer(&stubRecommender{err: c.err}, nil).Routes()
		rec := postRecommend(t, h, `{"latitude":35,"longitude":139,"mood":"date"}`)
		if rec.Code != c.code {
			t.Fatalf("error %v: expected %d, got %d", c.err, c.code, rec.Code)
		}
	}
}

// stallingReviews holds every review fetch until the request deadline
// so the handler sees a real pipeline timeout, not an injected error.
type stallingReviews struct{}

func (stallingReviews) Reviews(ctx context.Context, placeID string) ([]recommend.Review, error) {
	<-ctx.Done()
	return nil, ctx.Err()
}

type singlePlace struct{}

func (singlePlace) Nearby(_ context.Context, lat, lng float64, radiusMeters int) ([]recommend.PlaceCandidate, error) {
	return []recommend.PlaceCandidate{{ID: "a", Name: "A", Rating: 4.5, RatingCount: 100}}, nil
}

func TestRecommendTimeoutMapsToGatewayTimeout(t *testing.T) {
	svc, err := recommend.NewService(singlePlace{}, stallingReviews{}, nil, recommend.Config{TimeoutSec: 1}, nil)
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}
	h := NewServer(svc, nil).Routes()
	rec := postRecommend(t, h, `{"latitude":35,"longitude":139,"mood":"date"}`)
	if rec.Code != http.StatusGatewayTimeout {
		t.Fatalf("expected 504 on pipeline timeout, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestHealthReportsScoringMode(t *testing.T) {
	h := NewServer(&stubRecommender{mode: recommend.ScoringModeKeyword}, nil).Routes()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode health body: %v", err)
	}
	if body["status"] != "healthy" || body["scoring_mode"] != "keyword" {
		t.Fatalf("unexpected health body: %v", body)
	}
}

func TestRootUnknownPath(t *testing.T) {
	h := NewServer(&stubRecommender{}, nil).Routes()
	req := httptest.NewRequest(http.MethodGet, "/nope", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}
