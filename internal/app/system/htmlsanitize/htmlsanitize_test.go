package htmlsanitize_test

import (
	"strings"
	"testing"

	"github.com/STRONGAYA/Vantage6-data-managment-portal/internal/app/system/htmlsanitize"
)

func TestLabel_Empty(t *testing.T) {
	if got := htmlsanitize.Label(""); got != "" {
		t.Errorf("expected empty string, got %q", got)
	}
}

func TestLabel_PlainText(t *testing.T) {
	if got := htmlsanitize.Label("Princess Máxima Center"); got != "Princess Máxima Center" {
		t.Errorf("expected plain text unchanged, got %q", got)
	}
}

func TestLabel_StripsMarkup(t *testing.T) {
	got := htmlsanitize.Label("<b>Org</b> One")
	if got != "Org One" {
		t.Errorf("expected markup stripped, got %q", got)
	}
}

func TestLabel_RemovesScript(t *testing.T) {
	got := htmlsanitize.Label("Org<script>alert('xss')</script>")
	if strings.Contains(got, "script") || strings.Contains(got, "alert") {
		t.Errorf("expected script removed, got %q", got)
	}
	if !strings.Contains(got, "Org") {
		t.Errorf("expected text preserved, got %q", got)
	}
}

func TestLabel_EscapesAmpersand(t *testing.T) {
	got := htmlsanitize.Label("A & B")
	if got != "A &amp; B" {
		t.Errorf("expected ampersand escaped, got %q", got)
	}
}

func TestLabel_EscapesStrayAngleBracket(t *testing.T) {
	got := htmlsanitize.Label("5 < 10")
	if got != "5 &lt; 10" {
		t.Errorf("expected angle bracket escaped, got %q", got)
	}
}

func TestLabel_EscapesQuotes(t *testing.T) {
	got := htmlsanitize.Label(`St "Joan's"`)
	if strings.ContainsAny(got, `"'`) {
		t.Errorf("expected quotes escaped, got %q", got)
	}
	if !strings.Contains(got, "Joan") {
		t.Errorf("expected text preserved, got %q", got)
	}
}
