package md2img

import (
	"bytes"
	"context"
	"fmt"
	"html"
	"regexp"
	"strings"

	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/extension"
	goldmarkhtml "github.com/yuin/goldmark/renderer/html"
)

// htmlConverter abstracts Markdown to HTML fragment conversion.
type htmlConverter interface {
	ToHTML(ctx context.Context, content string) (string, error)
}

// Math span patterns, longest delimiter forms first so \[...\] and
// $$...$$ are claimed before their inline cousins.
var mathSpanPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?s)\\\[.*?\\\]`),
	regexp.MustCompile(`(?s)\\\(.*?\\\)`),
	regexp.MustCompile(`(?s)\$\$.*?\$\$`),
	regexp.MustCompile(`\$[^$\n]+?\$`),
}

// mathPlaceholder tokens are plain alphanumeric text so Goldmark carries
// them through conversion untouched.
func mathPlaceholder(i int) string {
	return fmt.Sprintf("@@MATH%d@@", i)
}

// protectMath swaps math spans for placeholder tokens before Markdown
// conversion, returning the guarded text and the extracted spans.
// Without this, Goldmark treats LaTeX backslash sequences as escapes and
// underscores as emphasis markers.
func protectMath(content string) (string, []string) {
	var spans []string
	for _, re := range mathSpanPatterns {
		content = re.ReplaceAllStringFunc(content, func(m string) string {
			spans = append(spans, m)
			return mathPlaceholder(len(spans) - 1)
		})
	}
	return content, spans
}

// restoreMath substitutes the extracted spans back into the converted
// HTML. Span content is HTML-escaped; MathJax typesets from the DOM text,
// so the delimiters and LaTeX survive escaping.
func restoreMath(htmlContent string, spans []string) string {
	for i, span := range spans {
		htmlContent = strings.ReplaceAll(htmlContent, mathPlaceholder(i), html.EscapeString(span))
	}
	return htmlContent
}

// goldmarkConverter converts Markdown to an HTML fragment using goldmark.
type goldmarkConverter struct {
	md goldmark.Markdown
}

// newGoldmarkConverter creates a goldmarkConverter with GFM extensions
// and syntax highlighting.
func newGoldmarkConverter() *goldmarkConverter {
	md := goldmark.New(
		goldmark.WithExtensions(
			extension.GFM, // Tables, strikethrough, autolinks, task lists
			highlighting.NewHighlighting(
				highlighting.WithStyle("github"),
				highlighting.WithFormatOptions(
					chromahtml.WithLineNumbers(false),
				),
			),
		),
		goldmark.WithRendererOptions(
			goldmarkhtml.WithHardWraps(), // Treat newlines as <br>
			goldmarkhtml.WithXHTML(),     // Self-closing tags
			// Note: WithUnsafe() intentionally NOT used. Raw HTML in
			// model output is dropped; math travels via placeholders.
		),
	)
	return &goldmarkConverter{md: md}
}

// ToHTML converts Markdown content to an HTML fragment with math spans
// preserved verbatim. Supports context cancellation via goroutine +
// select since Goldmark doesn't natively support context.
func (c *goldmarkConverter) ToHTML(ctx context.Context, content string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	guarded, spans := protectMath(content)

	type result struct {
		html string
		err  error
	}

	done := make(chan result, 1)

	go func() {
		var buf bytes.Buffer
		if err := c.md.Convert([]byte(guarded), &buf); err != nil {
			done <- result{err: fmt.Errorf("%w: %v", ErrHTMLConversion, err)}
			return
		}
		done <- result{html: restoreMath(buf.String(), spans)}
	}()

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case r := <-done:
		return r.html, r.err
	}
}
