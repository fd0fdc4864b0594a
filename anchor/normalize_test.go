package anchor

import "testing"

func TestNormalizeCollapsesWhitespace(t *testing.T) {
	got := Normalize("  Hello \t world\n")
	if got != "Hello world" {
		t.Errorf("Normalize() = %q, want %q", got, "Hello world")
	}
}

func TestNormalizeLoose(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Hello, World!", "hello world"},
		{"a-b c.d", "ab cd"},
		{"Name|Date", "namedate"},
		{"  plain  text ", "plain text"},
	}
	for _, tt := range tests {
		if got := NormalizeLoose(tt.in); got != tt.want {
			t.Errorf("NormalizeLoose(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestScoreIdentity(t *testing.T) {
	for _, s := range []string{"a", "Hello world", "Annual Report 2024"} {
		if got := Score(s, s); got != 100 {
			t.Errorf("Score(%q, %q) = %d, want 100", s, s, got)
		}
	}
}

func TestScoreSubstring(t *testing.T) {
	// 13 runes inside 18 runes: round(13/18*95) = 69.
	if got := Score("Annual Report", "Annual Report 2024"); got != 69 {
		t.Errorf("Score() = %d, want 69", got)
	}
	// Reverse containment uses the 90 weight: round(13/18*90) = 65.
	if got := Score("Annual Report 2024", "Annual Report"); got != 65 {
		t.Errorf("Score() = %d, want 65", got)
	}
}

func TestScoreBelowThresholdForPartialLine(t *testing.T) {
	if got := Score("Annual Report", "Annual Report 2024"); got >= 80 {
		t.Errorf("Score() = %d, want below the 80 acceptance threshold", got)
	}
}

func TestScoreJaccard(t *testing.T) {
	// Intersection {b, c}, union {a, b, c, d}: round(2/4*85) = 43.
	if got := Score("a b c", "b c d"); got != 43 {
		t.Errorf("Score() = %d, want 43", got)
	}
}

func TestScoreEmpty(t *testing.T) {
	if got := Score("", "x"); got != 0 {
		t.Errorf("Score(\"\", \"x\") = %d, want 0", got)
	}
	if got := Score("x", ""); got != 0 {
		t.Errorf("Score(\"x\", \"\") = %d, want 0", got)
	}
}

func TestJaccardEmptySets(t *testing.T) {
	if got := Jaccard(WordSet(""), WordSet("")); got != 0 {
		t.Errorf("Jaccard of empty sets = %g, want 0", got)
	}
}
