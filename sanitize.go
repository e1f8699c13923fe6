package md2img

import "regexp"

// Precompiled markup-stripping patterns. Each pass is independent; the
// order matters because later passes must not re-introduce tokens that
// earlier passes consumed (e.g. bold before italic so a leftover single
// asterisk pair is unambiguous).
var (
	// Fenced code block with optional language tag; body kept.
	fencedBlock = regexp.MustCompile("(?s)```[^\n`]*\n?(.*?)```")

	// Inline code span.
	inlineCode = regexp.MustCompile("`([^`]+)`")

	// Bold markers.
	boldStars       = regexp.MustCompile(`\*\*(.+?)\*\*`)
	boldUnderscores = regexp.MustCompile(`__(.+?)__`)

	// Italic markers. The match may not be adjacent to another marker
	// character and may not surround bare whitespace, so legitimate
	// asterisks and intra-word underscores survive. Underscores are word
	// characters, so \b rejects markers embedded in identifiers like
	// snake_case_name.
	italicStar       = regexp.MustCompile(`\*([^\s*](?:[^*]*[^\s*])?)\*`)
	italicUnderscore = regexp.MustCompile(`\b_([^\s_](?:[^_]*[^\s_])?)_\b`)

	// Heading markers, at line start or after whitespace.
	headingMarker = regexp.MustCompile(`(?m)(^|\s)#{1,6}\s+`)

	// Block-quote marker at line start.
	quoteMarker = regexp.MustCompile(`(?m)^>\s?`)

	// Link syntax [text](url); text kept.
	linkSyntax = regexp.MustCompile(`\[([^\]]*)\]\([^)]*\)`)

	// List bullet at line start, indentation preserved.
	bulletMarker = regexp.MustCompile(`(?m)^(\s*)[-*]\s+`)
)

// SanitizeMarkup strips common lightweight-markup syntax from literal
// text while preserving the human-readable payload. Pure and
// deterministic; it never fails.
//
// Deployments that want literal passthrough skip this entirely (see
// WithKeepLiteralMarkup).
func SanitizeMarkup(s string) string {
	s = fencedBlock.ReplaceAllString(s, "$1")
	s = inlineCode.ReplaceAllString(s, "$1")
	s = boldStars.ReplaceAllString(s, "$1")
	s = boldUnderscores.ReplaceAllString(s, "$1")
	s = italicStar.ReplaceAllString(s, "$1")
	s = italicUnderscore.ReplaceAllString(s, "$1")
	s = headingMarker.ReplaceAllString(s, "$1")
	s = quoteMarker.ReplaceAllString(s, "")
	s = linkSyntax.ReplaceAllString(s, "$1")
	s = bulletMarker.ReplaceAllString(s, "$1")
	return s
}
