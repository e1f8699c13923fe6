package md2img

import (
	"fmt"
	"strings"
)

// documentTemplate embeds a converted HTML fragment in a complete
// document. MathJax is configured for both dollar and bracket delimiter
// forms with startup typesetting disabled, so the render pipeline decides
// exactly when typesetting runs and can poll for its completion.
const documentTemplate = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>Markdown Render</title>
<style>
body {
  {{WIDTH_STYLE}}
  font-family: -apple-system, BlinkMacSystemFont, "Segoe UI", Helvetica, Arial, sans-serif, "Apple Color Emoji", "Segoe UI Emoji";
  padding: 25px;
  display: inline-block;
  font-size: 16px;
  -webkit-font-smoothing: antialiased;
  -moz-osx-font-smoothing: grayscale;
  text-rendering: optimizeLegibility;
}
pre {
  background-color: #f6f8fa;
  border-radius: 6px;
  padding: 16px;
  overflow: auto;
  font-size: 85%;
  line-height: 1.45;
}
code {
  font-family: "SFMono-Regular", Consolas, "Liberation Mono", Menlo, monospace;
}
table {
  border-collapse: collapse;
  margin: 8px 0;
}
th, td {
  border: 1px solid #d0d7de;
  padding: 6px 13px;
}
th {
  background-color: #f6f8fa;
}
blockquote {
  border-left: 4px solid #d0d7de;
  margin: 0;
  padding: 0 1em;
  color: #57606a;
}
</style>
<script type="text/x-mathjax-config">
MathJax.Hub.Config({
  skipStartupTypeset: true,
  tex2jax: {
    inlineMath: [['$','$'], ['\\(','\\)']],
    displayMath: [['$$','$$'], ['\\[','\\]']]
  },
  "HTML-CSS": {
    scale: 100,
    linebreaks: { automatic: true }
  },
  SVG: { linebreaks: { automatic: true } }
});
</script>
<script type="text/javascript" async
  src="https://cdnjs.cloudflare.com/ajax/libs/mathjax/2.7.7/MathJax.js?config=TeX-MML-AM_CHTML">
</script>
</head>
<body>
{{CONTENT}}
</body>
</html>`

// buildDocument wraps an HTML fragment in the document template with the
// body sizing rule for the request: auto-fit bounded by
// [MinWidth, MaxBodyWidth], or a caller-specified fixed width with
// box-sizing that includes the padding.
func buildDocument(fragment string, req RenderRequest) string {
	var widthStyle string
	if req.FixedWidth > 0 {
		widthStyle = fmt.Sprintf("width: %dpx; box-sizing: border-box;", req.FixedWidth)
	} else {
		minWidth := req.MinWidth
		if minWidth <= 0 {
			minWidth = DefaultMinWidth
		}
		widthStyle = fmt.Sprintf("min-width: %dpx; max-width: %dpx;", minWidth, MaxBodyWidth)
	}

	doc := strings.ReplaceAll(documentTemplate, "{{WIDTH_STYLE}}", widthStyle)
	return strings.ReplaceAll(doc, "{{CONTENT}}", fragment)
}
