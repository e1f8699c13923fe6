package md2img

import "regexp"

// Precompiled repair patterns. Upstream text producers routinely
// over-escape math delimiters; these are deterministic pattern repairs,
// not LaTeX parsing. Malformed or nested delimiter sequences get no
// guarantee.
var (
	// Escaped inline-math delimiters: \$ and \\$ both mean a bare $.
	// The whole backslash run collapses at once; consuming a fixed
	// count would leave a fresh \$ behind on deeper escapes.
	escapedDollar = regexp.MustCompile(`\\+\$`)

	// Escaped underscores: \_ means _.
	escapedUnderscore = regexp.MustCompile(`\\_`)

	// Whitespace between an opening $ and a backslash-command token.
	spaceBeforeCommand = regexp.MustCompile(`\$\s+\\`)

	// Whitespace just inside a balanced inline delimiter pair.
	spaceInsideDelims = regexp.MustCompile(`\$\s*([^$]*?)\s*\$`)
)

// NormalizeMath repairs known math-escaping artifacts in renderable
// segment content before rendering. The transform is idempotent:
// NormalizeMath(NormalizeMath(s)) == NormalizeMath(s).
func NormalizeMath(s string) string {
	s = escapedDollar.ReplaceAllString(s, "$$")
	s = escapedUnderscore.ReplaceAllString(s, "_")
	s = spaceBeforeCommand.ReplaceAllString(s, `$$\`)
	s = spaceInsideDelims.ReplaceAllString(s, "$$${1}$$")
	return s
}
