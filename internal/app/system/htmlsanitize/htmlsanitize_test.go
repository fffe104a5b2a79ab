package htmlsanitize_test

import (
	"strings"
	"testing"

	"github.com/pathlabhq/pathlab/internal/app/system/htmlsanitize"
)

func TestSanitize_Empty(t *testing.T) {
	if got := htmlsanitize.Sanitize(""); got != "" {
		t.Errorf("expected empty string, got %q", got)
	}
}

func TestSanitize_PlainText(t *testing.T) {
	if got := htmlsanitize.Sanitize("Dr. A. Rao, MD Pathology"); got != "Dr. A. Rao, MD Pathology" {
		t.Errorf("expected plain text unchanged, got %q", got)
	}
}

func TestSanitize_SafeHTML(t *testing.T) {
	input := "<p><strong>City Diagnostics</strong> <em>NABL accredited</em></p>"
	if got := htmlsanitize.Sanitize(input); got != input {
		t.Errorf("expected safe HTML preserved, got %q", got)
	}
}

func TestSanitize_StripsScript(t *testing.T) {
	got := htmlsanitize.Sanitize(`<p>header</p><script>alert("x")</script>`)
	if strings.Contains(got, "script") || strings.Contains(got, "alert") {
		t.Errorf("script content survived: %q", got)
	}
	if !strings.Contains(got, "header") {
		t.Errorf("legitimate content lost: %q", got)
	}
}

func TestSanitize_StripsEventHandlers(t *testing.T) {
	got := htmlsanitize.Sanitize(`<img src="logo.png" onerror="steal()">`)
	if strings.Contains(got, "onerror") {
		t.Errorf("event handler survived: %q", got)
	}
}

func TestSanitize_StripsJavascriptURL(t *testing.T) {
	got := htmlsanitize.Sanitize(`<a href="javascript:alert(1)">results</a>`)
	if strings.Contains(got, "javascript:") {
		t.Errorf("javascript URL survived: %q", got)
	}
}

func TestStripTags_RemovesAllHTML(t *testing.T) {
	got := htmlsanitize.StripTags("<p>Hemoglobin <strong>low</strong></p>")
	if strings.ContainsAny(got, "<>") {
		t.Errorf("tags survived: %q", got)
	}
	if !strings.Contains(got, "Hemoglobin") || !strings.Contains(got, "low") {
		t.Errorf("text content lost: %q", got)
	}
}

func TestStripTags_PlainTextUnchanged(t *testing.T) {
	if got := htmlsanitize.StripTags("sample recollected at 9am"); got != "sample recollected at 9am" {
		t.Errorf("expected plain text unchanged, got %q", got)
	}
}
