package md2img

import (
	"context"
	"strings"
	"testing"
	"time"
)

func TestGoldmarkConverter_ToHTML(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		input        string
		wantContains []string
		wantNot      []string
	}{
		{
			name:         "basic heading",
			input:        "# Hello World",
			wantContains: []string{"<h1", "Hello World", "</h1>"},
		},
		{
			name:         "GFM table",
			input:        "| A | B |\n|---|---|\n| 1 | 2 |",
			wantContains: []string{"<table>", "<thead>", "<th>", "<td>"},
		},
		{
			name:         "GFM strikethrough",
			input:        "~~deleted~~",
			wantContains: []string{"<del>", "deleted"},
		},
		{
			name:         "GFM task list",
			input:        "- [x] Done\n- [ ] Todo",
			wantContains: []string{"<input", "checked", `type="checkbox"`},
		},
		{
			name:         "GFM autolink",
			input:        "Visit https://example.com for more",
			wantContains: []string{`<a href="https://example.com"`},
		},
		{
			name:         "hard wraps",
			input:        "Line one\nLine two",
			wantContains: []string{"<br", "Line one", "Line two"},
		},
		{
			name:         "code block is highlighted",
			input:        "```go\nfunc main() {}\n```",
			wantContains: []string{"<pre", "func"},
		},
		{
			name:         "inline math preserved verbatim",
			input:        "value $x^2 + y_1$ here",
			wantContains: []string{"$x^2 + y_1$"},
			wantNot:      []string{"@@MATH", "<em>"},
		},
		{
			name:         "display math with commands preserved",
			input:        "$$\n\\int_0^\\infty e^{-x^2} dx = \\frac{\\sqrt{\\pi}}{2}\n$$",
			wantContains: []string{`\int_0^\infty`, `\frac{\sqrt{\pi}}{2}`},
			wantNot:      []string{"@@MATH"},
		},
		{
			name:         "bracket delimiters preserved",
			input:        `inline \(a+b\) and display \[c=d\]`,
			wantContains: []string{`\(a+b\)`, `\[c=d\]`},
			wantNot:      []string{"@@MATH"},
		},
		{
			name:         "math angle brackets are escaped not parsed",
			input:        "$a < b > c$",
			wantContains: []string{"$a &lt; b &gt; c$"},
		},
		{
			name:         "underscores inside math not emphasized",
			input:        "$x_1 x_2 x_3$",
			wantContains: []string{"$x_1 x_2 x_3$"},
			wantNot:      []string{"<em>"},
		},
		{
			name:         "raw HTML is dropped",
			input:        "<script>alert('xss')</script>",
			wantContains: []string{"<!-- raw HTML omitted -->"},
			wantNot:      []string{"<script>"},
		},
		{
			name:         "unicode content",
			input:        "# 日本語\n\nBonjour",
			wantContains: []string{"日本語", "Bonjour"},
		},
	}

	converter := newGoldmarkConverter()
	ctx := context.Background()

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			result, err := converter.ToHTML(ctx, tt.input)
			if err != nil {
				t.Fatalf("ToHTML() unexpected error: %v", err)
			}

			for _, want := range tt.wantContains {
				if !strings.Contains(result, want) {
					t.Errorf("ToHTML() result should contain %q\nGot:\n%s", want, result)
				}
			}
			for _, notWant := range tt.wantNot {
				if strings.Contains(result, notWant) {
					t.Errorf("ToHTML() result should NOT contain %q\nGot:\n%s", notWant, result)
				}
			}
		})
	}
}

func TestGoldmarkConverter_ContextCancellation(t *testing.T) {
	t.Parallel()

	converter := newGoldmarkConverter()

	t.Run("cancelled context returns error", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := converter.ToHTML(ctx, "# Test")
		if err != context.Canceled {
			t.Errorf("expected context.Canceled, got %v", err)
		}
	})

	t.Run("expired deadline returns error", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithDeadline(context.Background(), time.Now().Add(-time.Second))
		defer cancel()

		_, err := converter.ToHTML(ctx, "# Test")
		if err != context.DeadlineExceeded {
			t.Errorf("expected context.DeadlineExceeded, got %v", err)
		}
	})
}

func TestProtectMath_RoundTrip(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		spans int
	}{
		{"single inline", "$x$", 1},
		{"display and inline", "$$a$$ then $b$", 2},
		{"bracket forms", `\(a\) and \[b\]`, 2},
		{"no math", "plain text", 0},
		{"all four forms", `\[d\] \(i\) $$D$$ $i$`, 4},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			guarded, spans := protectMath(tt.input)
			if len(spans) != tt.spans {
				t.Fatalf("protectMath extracted %d spans, want %d", len(spans), tt.spans)
			}
			if tt.spans > 0 && strings.Contains(guarded, "$") {
				t.Errorf("guarded text still contains a delimiter: %q", guarded)
			}
			restored := restoreMath(guarded, spans)
			if restored != tt.input {
				// restoreMath escapes HTML specials; for these inputs
				// there are none, so the round trip must be exact.
				t.Errorf("round trip = %q, want %q", restored, tt.input)
			}
		})
	}
}
