package md2img

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/seiji-k/go-md2img/internal/fileutil"
)

// documentRenderer abstracts content-to-image rendering so the assembler
// can be tested without a browser.
type documentRenderer interface {
	Render(ctx context.Context, req RenderRequest) RenderResult
}

// Compile-time interface check
var _ documentRenderer = (*Renderer)(nil)

// Renderer turns normalized content into a cropped PNG through the
// three-stage pipeline: Markdown -> styled document -> rendered surface
// -> cropped bitmap.
type Renderer struct {
	conv     htmlConverter
	session  *Session
	cacheDir string
	logger   *zap.Logger
}

// newRenderer wires a Renderer to a session and cache directory.
func newRenderer(session *Session, cacheDir string, logger *zap.Logger) *Renderer {
	return &Renderer{
		conv:     newGoldmarkConverter(),
		session:  session,
		cacheDir: cacheDir,
		logger:   logger,
	}
}

// Render produces an explicit RenderResult: an image path, or the
// failure cause with the original content preserved. Every failure path
// is logged; none is silent.
func (r *Renderer) Render(ctx context.Context, req RenderRequest) RenderResult {
	fail := func(err error) RenderResult {
		r.logger.Warn("render failed",
			zap.Error(err),
			zap.Int("content_len", len(req.Content)))
		return RenderResult{Err: err, Content: req.Content}
	}

	if req.Content == "" {
		return fail(ErrEmptyContent)
	}
	if req.Scale < 1 {
		return fail(fmt.Errorf("%w: %d", ErrInvalidScale, req.Scale))
	}
	if req.MinWidth < 0 || req.FixedWidth < 0 {
		return fail(fmt.Errorf("%w: min=%d fixed=%d", ErrInvalidWidth, req.MinWidth, req.FixedWidth))
	}

	fragment, err := r.conv.ToHTML(ctx, req.Content)
	if err != nil {
		return fail(err)
	}
	doc := buildDocument(fragment, req)

	surf, err := r.session.acquire(ctx, req.Scale)
	if err != nil {
		return fail(err)
	}
	defer func() {
		if closeErr := surf.Close(); closeErr != nil {
			r.logger.Debug("surface close failed", zap.Error(closeErr))
		}
	}()

	outPath, err := fileutil.NewImagePath(r.cacheDir)
	if err != nil {
		return fail(err)
	}

	if err := surf.Capture(ctx, doc, "body", outPath); err != nil {
		return fail(err)
	}

	if !fileutil.FileExists(outPath) {
		return fail(fmt.Errorf("%w: %s missing after capture", ErrImageWrite, outPath))
	}

	r.logger.Debug("render complete", zap.String("image", outPath))
	return RenderResult{ImagePath: outPath, Content: req.Content}
}
