// Package md2img renders tag-delimited Markdown spans from chat-bot output
// as styled PNG images using headless Chrome.
//
// Incoming text is split into literal and renderable segments by a paired
// tag grammar (<md>...</md> by default). Renderable segments are repaired
// for common math-escaping artifacts, converted to HTML with MathJax-ready
// math spans, rendered in an isolated browser context, and captured as a
// cropped screenshot of the document body. Literal segments are optionally
// stripped of Markdown syntax. The assembled output preserves the original
// segment order, substituting images for renderable spans and falling back
// to annotated plain text when rendering fails.
//
// Basic usage:
//
//	svc := md2img.New(md2img.WithCacheDir("/tmp/md2img"))
//	defer svc.Close()
//
//	items, err := svc.Process(ctx, reply)
//
// The browser instance is shared across requests and reconnected lazily if
// it dies; each render gets its own incognito context and page.
package md2img
