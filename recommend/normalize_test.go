package recommend

import "testing"

func TestNormalizeText(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"  plain text  ", "plain text"},
		{"ｆｕｌｌｗｉｄｔｈ", "fullwidth"}, // NFKC folds fullwidth forms
		{"doubled  spaces   everywhere", "doubled spaces everywhere"},
		{"line\nbreaks\tand tabs", "line breaks and tabs"},
		{"bell\x07rings", "bell rings"},
		{"", ""},
	}
	for _, c := range cases {
		if got := NormalizeText(c.in); got != c.want {
			t.Fatalf("NormalizeText(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestNormalizeAllPreservesOrder(t *testing.T) {
	got := NormalizeAll([]string{" b ", " a "})
	if len(got) != 2 || got[0] != "b" || got[1] != "a" {
		t.Fatalf("unexpected result: %v", got)
	}
}
