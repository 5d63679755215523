package recommend

import "testing"

func TestKeywordScoreCounts(t *testing.T) {
	texts := []string{
		"we had a special birthday dinner here",
		"nice place with friendly staff",
	}
	// 2 hits out of 2 texts * 7 celebration keywords.
	got := KeywordScore(texts, "celebration")
	want := round2(2.0 / 14.0 * 10)
	if got != want {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestKeywordScoreCaseInsensitive(t *testing.T) {
	a := KeywordScore([]string{"ROMANTIC and COZY spot"}, "date")
	b := KeywordScore([]string{"romantic and cozy spot"}, "date")
	if a != b {
		t.Fatalf("case should not affect the score: %v vs %v", a, b)
	}
	if a == 0 {
		t.Fatalf("expected keyword hits, got 0")
	}
}

func TestKeywordScoreUnknownMood(t *testing.T) {
	if got := KeywordScore([]string{"anything"}, "nonexistent"); got != 5.0 {
		t.Fatalf("unknown mood should score neutral 5.0, got %v", got)
	}
}

func TestKeywordScoreEmptyTexts(t *testing.T) {
	if got := KeywordScore(nil, "budget"); got != 5.0 {
		t.Fatalf("empty input should score neutral 5.0, got %v", got)
	}
}

func TestKeywordScoreKeywordOncePerReview(t *testing.T) {
	// "cheap" repeats within one review but counts once.
	got := KeywordScore([]string{"cheap cheap cheap"}, "budget")
	want := round2(1.0 / 7.0 * 10)
	if got != want {
		t.Fatalf("expected %v, got %v", want, got)
	}
}
