package md2img

import (
	"time"

	"go.uber.org/zap"
)

// SegmentKind classifies a span of source text.
type SegmentKind int

const (
	// Literal text is passed through (optionally sanitized), never rendered.
	Literal SegmentKind = iota
	// Renderable text is destined for image rendering.
	Renderable
)

// String returns the kind name for logs and test output.
func (k SegmentKind) String() string {
	switch k {
	case Literal:
		return "literal"
	case Renderable:
		return "renderable"
	}
	return "unknown"
}

// Segment is a contiguous span of source text produced by splitting.
// Segments are immutable once created; their order in the slice matches
// their order in the source and must be preserved end-to-end.
type Segment struct {
	Kind SegmentKind
	Text string
}

// RenderRequest describes one renderable segment's trip through the
// renderer. Created per segment, consumed once.
type RenderRequest struct {
	Content string
	// Scale is the device-scale factor (pixel density multiplier).
	// Values above 1 sharpen the output. Must be >= 1.
	Scale int
	// MinWidth bounds the auto-fit body width from below, in CSS pixels.
	MinWidth int
	// FixedWidth, when positive, pins the body to an exact width with
	// box-sizing that includes padding. Overrides MinWidth.
	FixedWidth int
}

// RenderResult is the renderer's explicit outcome: an image path on
// success, or the failure cause alongside the original content so the
// caller can fall back to text. No errors cross the renderer/assembler
// boundary any other way.
type RenderResult struct {
	// ImagePath is the rendered PNG location. Empty on failure.
	ImagePath string
	// Err is the failure cause. Nil on success.
	Err error
	// Content is the original (pre-normalization) segment text,
	// preserved for the fallback output item.
	Content string
}

// OK reports whether the render produced an image.
func (r RenderResult) OK() bool {
	return r.Err == nil && r.ImagePath != ""
}

// OutputKind classifies a final message payload unit.
type OutputKind int

const (
	// OutputText is a plain-text payload.
	OutputText OutputKind = iota
	// OutputImage is a rendered image referenced by file path.
	OutputImage
)

// OutputItem is one unit of the assembled outgoing message.
type OutputItem struct {
	Kind      OutputKind
	Text      string
	ImagePath string
}

// TextItem builds a text output item.
func TextItem(s string) OutputItem {
	return OutputItem{Kind: OutputText, Text: s}
}

// ImageItem builds an image output item.
func ImageItem(path string) OutputItem {
	return OutputItem{Kind: OutputImage, ImagePath: path}
}

// Rendering defaults.
const (
	// DefaultTag is the tag name delimiting renderable spans.
	DefaultTag = "md"
	// LegacyTag is the tag name used by earlier plugin variants.
	LegacyTag = "render"

	DefaultScale    = 2
	DefaultMinWidth = 300
	// MaxBodyWidth caps the auto-fit body width in CSS pixels.
	MaxBodyWidth = 1500

	// Viewport dimensions in logical pixels. Sized generously so wide
	// content is not force-wrapped before the body auto-fits.
	viewportWidth  = 1600
	viewportHeight = 1200

	// defaultSettleTimeout bounds the wait for MathJax typesetting.
	defaultSettleTimeout = 10 * time.Second
	// settleFallbackDelay is used when typeset completion cannot be
	// observed (e.g. the CDN script never loaded).
	settleFallbackDelay = 300 * time.Millisecond
)

// serviceConfig holds internal configuration for Service.
type serviceConfig struct {
	tag               string
	cacheDir          string
	scale             int
	minWidth          int
	fixedWidth        int
	keepLiteralMarkup bool
	browserBin        string
	sandbox           bool
	settleTimeout     time.Duration
	logger            *zap.Logger
}

// Option configures a Service.
type Option func(*Service)

// WithTag sets the tag name delimiting renderable spans ("md" by default,
// "render" for legacy deployments).
func WithTag(name string) Option {
	return func(s *Service) { s.cfg.tag = name }
}

// WithCacheDir sets the directory where rendered images are written.
func WithCacheDir(dir string) Option {
	return func(s *Service) { s.cfg.cacheDir = dir }
}

// WithScale sets the device-scale factor applied during capture.
// Panics if scale < 1 (programmer error, similar to time.NewTicker).
func WithScale(scale int) Option {
	if scale < 1 {
		panic("md2img: WithScale factor must be >= 1")
	}
	return func(s *Service) { s.cfg.scale = scale }
}

// WithMinWidth sets the lower bound for the auto-fit body width.
func WithMinWidth(px int) Option {
	return func(s *Service) { s.cfg.minWidth = px }
}

// WithFixedWidth pins rendered images to an exact content width instead
// of auto-fitting. Zero disables the constraint.
func WithFixedWidth(px int) Option {
	return func(s *Service) { s.cfg.fixedWidth = px }
}

// WithKeepLiteralMarkup disables the plain-text sanitizer, passing
// literal segments through unchanged (the behavior of older plugin
// variants).
func WithKeepLiteralMarkup() Option {
	return func(s *Service) { s.cfg.keepLiteralMarkup = true }
}

// WithBrowserBin points the engine at a pre-installed browser binary
// instead of letting it download one.
func WithBrowserBin(path string) Option {
	return func(s *Service) { s.cfg.browserBin = path }
}

// WithSandbox re-enables the browser sandbox. Disabled by default because
// the plugin typically runs in a container.
func WithSandbox() Option {
	return func(s *Service) { s.cfg.sandbox = true }
}

// WithSettleTimeout bounds the wait for math typesetting to complete.
// Panics if d <= 0.
func WithSettleTimeout(d time.Duration) Option {
	if d <= 0 {
		panic("md2img: WithSettleTimeout duration must be positive")
	}
	return func(s *Service) { s.cfg.settleTimeout = d }
}

// WithLogger sets the structured logger. Defaults to a no-op logger.
func WithLogger(l *zap.Logger) Option {
	return func(s *Service) { s.cfg.logger = l }
}
