package recommend

import (
	"strings"
	"testing"
)

func TestRankStableTies(t *testing.T) {
	scored := []ScoredRestaurant{
		{PlaceCandidate: PlaceCandidate{ID: "a"}, MoodScore: 7.5},
		{PlaceCandidate: PlaceCandidate{ID: "b"}, MoodScore: 7.5},
		{PlaceCandidate: PlaceCandidate{ID: "c"}, MoodScore: 9.0},
	}
	res := Rank(scored, 10, 3)
	want := []string{"c", "a", "b"}
	for i, id := range want {
		if res.Restaurants[i].ID != id {
			t.Fatalf("position %d: expected %q, got %q", i, id, res.Restaurants[i].ID)
		}
	}
	if res.TotalFound != 3 || res.Status != StatusOK {
		t.Fatalf("unexpected result meta: total=%d status=%q", res.TotalFound, res.Status)
	}
}

func TestRankTruncation(t *testing.T) {
	var scored []ScoredRestaurant
	for i := 0; i < 12; i++ {
		scored = append(scored, ScoredRestaurant{
			PlaceCandidate: PlaceCandidate{ID: string(rune('a' + i))},
			MoodScore:      float64(i),
		})
	}
	res := Rank(scored, 10, 12)
	if len(res.Restaurants) != 10 {
		t.Fatalf("expected 10 results, got %d", len(res.Restaurants))
	}
	if res.TotalFound != 12 {
		t.Fatalf("TotalFound should count pre-truncation, got %d", res.TotalFound)
	}
	if res.Restaurants[0].MoodScore != 11 {
		t.Fatalf("expected highest score first, got %v", res.Restaurants[0].MoodScore)
	}
}

func TestRankDoesNotMutateInput(t *testing.T) {
	scored := []ScoredRestaurant{
		{PlaceCandidate: PlaceCandidate{ID: "low"}, MoodScore: 1},
		{PlaceCandidate: PlaceCandidate{ID: "high"}, MoodScore: 9},
	}
	_ = Rank(scored, 10, 2)
	if scored[0].ID != "low" {
		t.Fatalf("input slice was reordered")
	}
}

func TestRankEmptyStatuses(t *testing.T) {
	res := Rank(nil, 10, 0)
	if res.Status != StatusNoCandidates {
		t.Fatalf("expected no-candidates status, got %q", res.Status)
	}
	if res.Restaurants == nil || len(res.Restaurants) != 0 {
		t.Fatalf("expected empty non-nil restaurant list")
	}

	res = Rank(nil, 10, 5)
	if res.Status != StatusNoScoreable {
		t.Fatalf("expected no-scoreable status, got %q", res.Status)
	}
}

func TestMapsURL(t *testing.T) {
	c := PlaceCandidate{ID: "abc123", Lat: 35.68, Lng: 139.76}
	u := MapsURL(c)
	if !strings.HasPrefix(u, "https://www.google.com/maps/search/?") {
		t.Fatalf("unexpected URL: %q", u)
	}
	if !strings.Contains(u, "query_place_id=abc123") {
		t.Fatalf("URL missing place id: %q", u)
	}
	if MapsURL(PlaceCandidate{}) != "" {
		t.Fatalf("missing place id should yield empty URL")
	}
}
