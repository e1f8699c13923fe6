package md2img

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
	"go.uber.org/zap"
)

// Compile-time interface checks
var (
	_ engine  = (*rodEngine)(nil)
	_ surface = (*rodSurface)(nil)
)

// rodEngine implements engine over a headless Chrome instance driven by
// go-rod.
type rodEngine struct {
	browser *rod.Browser
	cfg     engineConfig
}

// newRodEngine launches headless Chrome. Browser binary resolution:
// explicit config, then ROD_BROWSER_BIN, then a best-effort download.
// A failed download is logged and left to rod's own lookup; only the
// launch itself is fatal.
func newRodEngine(cfg engineConfig) (engine, error) {
	l := launcher.New().Headless(true)

	bin := cfg.browserBin
	if bin == "" {
		bin = os.Getenv("ROD_BROWSER_BIN")
	}
	if bin == "" {
		path, err := launcher.NewBrowser().Get()
		if err != nil {
			cfg.logger.Warn("browser download failed, falling back to system lookup",
				zap.Error(err))
		} else {
			bin = path
		}
	}
	if bin != "" {
		l = l.Bin(bin)
	}

	// Sandboxing off for containerized hosts unless explicitly enabled.
	if !cfg.sandbox {
		l = l.NoSandbox(true)
	}

	u, err := l.Launch()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEngineConnect, err)
	}

	browser := rod.New().ControlURL(u)
	if err := browser.Connect(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEngineConnect, err)
	}

	return &rodEngine{browser: browser, cfg: cfg}, nil
}

// Ping checks liveness by querying the browser version over the control
// connection.
func (e *rodEngine) Ping() error {
	_, err := e.browser.Version()
	return err
}

// NewSurface creates an incognito browser context and one page in it,
// with the viewport sized generously so wide content is not force-wrapped
// before the body auto-fits.
func (e *rodEngine) NewSurface(ctx context.Context, scale int) (surface, error) {
	inc, err := e.browser.Incognito()
	if err != nil {
		return nil, err
	}

	page, err := inc.Page(proto.TargetCreateTarget{})
	if err != nil {
		disposeContext(inc)
		return nil, err
	}

	if err := page.SetViewport(&proto.EmulationSetDeviceMetricsOverride{
		Width:             viewportWidth,
		Height:            viewportHeight,
		DeviceScaleFactor: float64(scale),
		Mobile:            false,
	}); err != nil {
		_ = page.Close()
		disposeContext(inc)
		return nil, err
	}

	return &rodSurface{
		browser: inc,
		page:    page.Context(ctx),
		settle:  e.cfg.settleTimeout,
		logger:  e.cfg.logger,
	}, nil
}

// Close shuts down the browser and its driver process.
func (e *rodEngine) Close() error {
	return e.browser.Close()
}

// disposeContext releases an incognito browser context.
func disposeContext(b *rod.Browser) {
	_ = proto.TargetDisposeBrowserContext{
		BrowserContextID: b.BrowserContextID,
	}.Call(b)
}

// Typesetting scripts. The document template disables typeset-on-load, so
// the pipeline triggers it here and can observe completion through the
// queue counter.
const (
	typesetJS = `() => {
		if (typeof MathJax === "undefined") {
			throw new Error("MathJax not loaded");
		}
		MathJax.Hub.Queue(["Typeset", MathJax.Hub]);
	}`

	typesetSettledJS = `() =>
		typeof MathJax.Hub.Queue.running === "undefined" ||
		MathJax.Hub.Queue.running === 0`
)

// rodSurface is a request-scoped incognito context plus page.
type rodSurface struct {
	browser *rod.Browser
	page    *rod.Page
	settle  time.Duration
	logger  *zap.Logger
}

// Capture runs steps 3-6 of the render pipeline: load the document, wait
// for load completion, settle math typesetting, locate the content root,
// and screenshot it to outPath.
func (s *rodSurface) Capture(ctx context.Context, html, selector, outPath string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if err := s.page.SetDocumentContent(html); err != nil {
		return fmt.Errorf("%w: %v", ErrPageLoad, err)
	}
	if err := s.page.Timeout(s.settle).WaitLoad(); err != nil {
		return fmt.Errorf("%w: %v", ErrPageLoad, err)
	}

	// Trigger typesetting and poll the queue. If MathJax never loaded
	// (CDN unreachable) or the poll times out, fall back to a fixed
	// settle delay so plain content still renders.
	if _, err := s.page.Eval(typesetJS); err != nil {
		s.logger.Debug("math typeset trigger failed", zap.Error(err))
		time.Sleep(settleFallbackDelay)
	} else if err := s.page.Timeout(s.settle).Wait(rod.Eval(typesetSettledJS)); err != nil {
		s.logger.Debug("math typeset settle poll failed", zap.Error(err))
		time.Sleep(settleFallbackDelay)
	}

	el, err := s.page.Element(selector)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrEmptyDocument, err)
	}

	img, err := el.Screenshot(proto.PageCaptureScreenshotFormatPng, 0)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrScreenshot, err)
	}

	if err := os.WriteFile(outPath, img, 0o644); err != nil {
		return fmt.Errorf("%w: %v", ErrImageWrite, err)
	}
	return nil
}

// Close releases the page and its incognito context.
func (s *rodSurface) Close() error {
	err := s.page.Close()
	disposeContext(s.browser)
	return err
}
