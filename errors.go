package md2img

import "errors"

// Sentinel errors for library operations.
var (
	ErrEmptyContent   = errors.New("render content cannot be empty")
	ErrHTMLConversion = errors.New("HTML conversion failed")

	// Engine lifecycle errors.
	ErrEngineUnavailable = errors.New("render engine unavailable")
	ErrEngineConnect     = errors.New("failed to connect to render engine")
	ErrSurfaceCreate     = errors.New("failed to create rendering surface")
	ErrPageLoad          = errors.New("failed to load document")

	// Capture errors.
	ErrEmptyDocument = errors.New("document has no content root to capture")
	ErrScreenshot    = errors.New("element screenshot failed")
	ErrImageWrite    = errors.New("failed to write image file")

	// Request validation errors.
	ErrInvalidScale = errors.New("invalid device scale factor")
	ErrInvalidWidth = errors.New("invalid width")
)
