package md2img

import (
	"strings"
	"testing"
)

func TestBuildDocument(t *testing.T) {
	t.Parallel()

	t.Run("auto-fit width bounds", func(t *testing.T) {
		t.Parallel()

		doc := buildDocument("<p>hi</p>", RenderRequest{MinWidth: 400})

		wantContains := []string{
			"min-width: 400px;",
			"max-width: 1500px;",
			"display: inline-block;",
			"<p>hi</p>",
		}
		for _, want := range wantContains {
			if !strings.Contains(doc, want) {
				t.Errorf("document should contain %q", want)
			}
		}
		if strings.Contains(doc, "box-sizing: border-box") {
			t.Error("auto-fit variant should not pin a fixed width")
		}
	})

	t.Run("fixed width variant", func(t *testing.T) {
		t.Parallel()

		doc := buildDocument("<p>hi</p>", RenderRequest{MinWidth: 400, FixedWidth: 600})

		if !strings.Contains(doc, "width: 600px; box-sizing: border-box;") {
			t.Error("fixed variant should pin width with border-box sizing")
		}
		if strings.Contains(doc, "min-width: 400px") {
			t.Error("fixed width overrides the auto-fit bounds")
		}
	})

	t.Run("zero min width falls back to default", func(t *testing.T) {
		t.Parallel()

		doc := buildDocument("<p>hi</p>", RenderRequest{})
		if !strings.Contains(doc, "min-width: 300px;") {
			t.Error("expected default min-width")
		}
	})

	t.Run("math typesetting configuration", func(t *testing.T) {
		t.Parallel()

		doc := buildDocument("", RenderRequest{})

		wantContains := []string{
			"skipStartupTypeset: true",
			`[['$','$'], ['\\(','\\)']]`,
			`[['$$','$$'], ['\\[','\\]']]`,
			"mathjax/2.7.7/MathJax.js",
		}
		for _, want := range wantContains {
			if !strings.Contains(doc, want) {
				t.Errorf("document should contain %q", want)
			}
		}
	})

	t.Run("placeholders fully substituted", func(t *testing.T) {
		t.Parallel()

		doc := buildDocument("<p>content</p>", RenderRequest{})
		if strings.Contains(doc, "{{") {
			t.Errorf("unsubstituted template token in document:\n%s", doc)
		}
	})
}
