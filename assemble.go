package md2img

import (
	"context"
	"strings"

	"go.uber.org/zap"
)

// renderFailedMarker prefixes the fallback text emitted when a
// renderable segment could not be imaged. The user-visible text is the
// same for every failure cause; causes are distinguished only in logs.
const renderFailedMarker = "--- render failed ---\n"

// Assembler walks a segment sequence and emits the final ordered output
// items: sanitized (or passthrough) text for literal segments, rendered
// images for renderable segments, and annotated fallback text when a
// render fails. Rendering failures never abort sibling segments.
type Assembler struct {
	renderer          documentRenderer
	keepLiteralMarkup bool
	scale             int
	minWidth          int
	fixedWidth        int
	logger            *zap.Logger
}

// Assemble maps segments 1:1 to output items, preserving input order.
// Blank literal segments are dropped. A failed render yields a single
// annotated text item carrying the original content; it is not re-split.
func (a *Assembler) Assemble(ctx context.Context, segments []Segment) []OutputItem {
	items := make([]OutputItem, 0, len(segments))

	for _, seg := range segments {
		switch seg.Kind {
		case Renderable:
			items = append(items, a.renderSegment(ctx, seg))
		default:
			text := seg.Text
			if !a.keepLiteralMarkup {
				text = SanitizeMarkup(text)
			}
			if strings.TrimSpace(text) == "" {
				continue
			}
			items = append(items, TextItem(text))
		}
	}

	return items
}

// renderSegment normalizes and renders one segment, falling back to
// annotated text on any failure.
func (a *Assembler) renderSegment(ctx context.Context, seg Segment) OutputItem {
	res := a.renderer.Render(ctx, RenderRequest{
		Content:    NormalizeMath(seg.Text),
		Scale:      a.scale,
		MinWidth:   a.minWidth,
		FixedWidth: a.fixedWidth,
	})

	if res.OK() {
		return ImageItem(res.ImagePath)
	}

	a.logger.Warn("falling back to text for renderable segment",
		zap.Error(res.Err))
	return TextItem(renderFailedMarker + seg.Text)
}
