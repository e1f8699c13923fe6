package md2img

import (
	"context"
	"os"
	"path/filepath"

	"go.uber.org/zap"
)

// Service orchestrates the split-render-assemble pipeline. One Service
// owns one render session; create it at plugin start and Close it at
// plugin stop.
type Service struct {
	cfg       serviceConfig
	splitter  *Splitter
	session   *Session
	renderer  documentRenderer
	assembler *Assembler
}

// New creates a Service with default configuration. Use options to
// customize behavior (e.g. WithTag, WithCacheDir, WithLogger).
func New(opts ...Option) *Service {
	s := &Service{
		cfg: serviceConfig{
			tag:           DefaultTag,
			cacheDir:      filepath.Join(os.TempDir(), "md2img"),
			scale:         DefaultScale,
			minWidth:      DefaultMinWidth,
			settleTimeout: defaultSettleTimeout,
		},
	}

	for _, opt := range opts {
		opt(s)
	}

	if s.cfg.logger == nil {
		s.cfg.logger = zap.NewNop()
	}

	s.splitter = NewSplitter(s.cfg.tag)

	// Session and renderer may be injected by tests before this point.
	if s.session == nil {
		s.session = newSession(engineConfig{
			browserBin:    s.cfg.browserBin,
			sandbox:       s.cfg.sandbox,
			settleTimeout: s.cfg.settleTimeout,
			logger:        s.cfg.logger,
		}, nil)
	}
	if s.renderer == nil {
		s.renderer = newRenderer(s.session, s.cfg.cacheDir, s.cfg.logger)
	}

	s.assembler = &Assembler{
		renderer:          s.renderer,
		keepLiteralMarkup: s.cfg.keepLiteralMarkup,
		scale:             s.cfg.scale,
		minWidth:          s.cfg.minWidth,
		fixedWidth:        s.cfg.fixedWidth,
		logger:            s.cfg.logger,
	}

	return s
}

// Process splits raw model output into segments and assembles the final
// ordered output items, rendering tagged spans as images. Render
// failures degrade to annotated text; Process itself fails only on a
// cancelled context.
func (s *Service) Process(ctx context.Context, text string) ([]OutputItem, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	segments := s.splitter.Split(text)
	return s.assembler.Assemble(ctx, segments), nil
}

// ExpandParts expands each plain-text chain item through the pipeline
// and passes every other item through untouched, preserving order.
func (s *Service) ExpandParts(ctx context.Context, parts []MessagePart) ([]MessagePart, error) {
	out := make([]MessagePart, 0, len(parts))
	for _, part := range parts {
		if part.Kind != PartText {
			out = append(out, part)
			continue
		}
		items, err := s.Process(ctx, part.Text)
		if err != nil {
			return nil, err
		}
		for _, item := range items {
			out = append(out, partFromItem(item))
		}
	}
	return out, nil
}

// RenderOnce renders a single content string as an image, bypassing the
// splitter. Used by the CLI and by callers that already hold renderable
// content.
func (s *Service) RenderOnce(ctx context.Context, content string) RenderResult {
	return s.renderer.Render(ctx, RenderRequest{
		Content:    NormalizeMath(content),
		Scale:      s.cfg.scale,
		MinWidth:   s.cfg.minWidth,
		FixedWidth: s.cfg.fixedWidth,
	})
}

// PromptInstructions returns the tag-grammar instruction block for this
// service's configured tag.
func (s *Service) PromptInstructions() string {
	return PromptInstructions(s.cfg.tag)
}

// Open launches the render engine eagerly. Optional; the first render
// launches it on demand.
func (s *Service) Open() error {
	return s.session.Open()
}

// Close releases the render session. Idempotent.
func (s *Service) Close() error {
	if s.session != nil {
		return s.session.Close()
	}
	return nil
}
