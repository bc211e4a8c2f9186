package normalize

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func TestCleanSummaryStripsMarkup(t *testing.T) {
	result := CleanSummary("<p>Hello world</p>", 220)

	if result != "Hello world" {
		t.Errorf("CleanSummary = %q, want %q", result, "Hello world")
	}
}

func TestCleanSummaryCollapsesWhitespace(t *testing.T) {
	raw := "first\n\nsecond\t\tthird    fourth"
	result := CleanSummary(raw, 220)

	if result != "first second third fourth" {
		t.Errorf("Whitespace not collapsed: %q", result)
	}
}

func TestCleanSummaryUnescapesEntities(t *testing.T) {
	result := CleanSummary("Tips &amp; tricks &lt;fast&gt;", 220)

	if result != "Tips & tricks <fast>" {
		t.Errorf("Entities not unescaped: %q", result)
	}
}

func TestCleanSummaryDropsMediumSuffix(t *testing.T) {
	result := CleanSummary("<p>Great article.</p>Continue reading on Medium »", 220)

	if strings.Contains(result, "Medium") {
		t.Errorf("Medium boilerplate not removed: %q", result)
	}
	if result != "Great article." {
		t.Errorf("CleanSummary = %q, want %q", result, "Great article.")
	}
}

func TestCleanSummaryTruncates(t *testing.T) {
	raw := strings.Repeat("a", 300)
	result := CleanSummary(raw, 220)

	if utf8.RuneCountInString(result) != 220 {
		t.Errorf("Truncated length = %d runes, want 220", utf8.RuneCountInString(result))
	}
	if !strings.HasSuffix(result, "…") {
		t.Errorf("Truncated summary should end with …")
	}
}

func TestCleanSummaryIdempotent(t *testing.T) {
	once := CleanSummary("<p>Short  and <b>clean</b></p>", 220)
	twice := CleanSummary(once, 220)

	if once != twice {
		t.Errorf("CleanSummary not idempotent: %q vs %q", once, twice)
	}
}

func TestEscapePipes(t *testing.T) {
	result := EscapePipes("a | b | c")

	if result != "a \\| b \\| c" {
		t.Errorf("EscapePipes = %q", result)
	}

	if EscapePipes("no pipes") != "no pipes" {
		t.Errorf("EscapePipes should leave plain text untouched")
	}
}
