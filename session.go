package md2img

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"
)

// surface is one isolated rendering context plus page, scoped to a single
// render request. Never reused; released with Close on every exit path.
type surface interface {
	// Capture loads the document, triggers math typesetting and waits for
	// it to settle, then writes a cropped screenshot of the element
	// matching selector to outPath.
	Capture(ctx context.Context, html, selector, outPath string) error
	Close() error
}

// engine is the persistent headless rendering engine handle. One per
// Session; reused across requests until detected dead.
type engine interface {
	// Ping reports whether the engine handle is still live.
	Ping() error
	// NewSurface creates an isolated context and page at the given
	// device-scale factor.
	NewSurface(ctx context.Context, scale int) (surface, error)
	Close() error
}

// engineConfig carries launch settings to the engine factory.
type engineConfig struct {
	browserBin    string
	sandbox       bool
	settleTimeout time.Duration
	logger        *zap.Logger
}

// engineFactory launches a fresh engine. Swapped out in tests.
type engineFactory func(cfg engineConfig) (engine, error)

// Session owns the persistent engine handle and its lifecycle:
// Uninitialized -> Ready -> (Ready|Dead) -> Closed. The engine is
// launched lazily, checked for liveness before each use, and relaunched
// synchronously (once per call) when found dead.
//
// The mutex guards only the handle swap during init, liveness check, and
// teardown. Concurrent renders share the live handle without locking;
// the engine supports concurrent contexts. If the engine dies mid-use,
// concurrent requests may fail until the next liveness check relaunches
// it; recovery is best-effort, not transactional.
type Session struct {
	cfg       engineConfig
	newEngine engineFactory

	mu     sync.Mutex
	eng    engine
	closed bool
}

// newSession creates a Session without launching the engine.
func newSession(cfg engineConfig, factory engineFactory) *Session {
	if factory == nil {
		factory = newRodEngine
	}
	if cfg.settleTimeout <= 0 {
		cfg.settleTimeout = defaultSettleTimeout
	}
	if cfg.logger == nil {
		cfg.logger = zap.NewNop()
	}
	return &Session{cfg: cfg, newEngine: factory}
}

// Open launches the engine eagerly. Optional: the first render launches
// it on demand. A launch failure is logged and returned, but the session
// stays usable; subsequent renders retry initialization.
func (s *Session) Open() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrEngineUnavailable
	}
	if s.eng != nil {
		return nil
	}
	return s.launchLocked()
}

// acquire returns a request-scoped surface, relaunching a dead engine
// exactly once beforehand. The caller must Close the surface.
func (s *Session) acquire(ctx context.Context, scale int) (surface, error) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil, ErrEngineUnavailable
	}

	if s.eng != nil {
		if err := s.eng.Ping(); err != nil {
			s.cfg.logger.Warn("render engine dead, relaunching",
				zap.Error(err))
			_ = s.eng.Close()
			s.eng = nil
		}
	}

	if s.eng == nil {
		if err := s.launchLocked(); err != nil {
			s.mu.Unlock()
			return nil, fmt.Errorf("%w: %v", ErrEngineUnavailable, err)
		}
	}

	eng := s.eng
	s.mu.Unlock()

	surf, err := eng.NewSurface(ctx, scale)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSurfaceCreate, err)
	}
	return surf, nil
}

// launchLocked runs the engine factory. Caller holds s.mu.
func (s *Session) launchLocked() error {
	eng, err := s.newEngine(s.cfg)
	if err != nil {
		s.cfg.logger.Error("render engine launch failed", zap.Error(err))
		return err
	}
	s.eng = eng
	s.cfg.logger.Info("render engine ready")
	return nil
}

// Close tears down the persistent engine. Idempotent; safe to call when
// the engine was never launched.
func (s *Session) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	s.closed = true
	if s.eng == nil {
		return nil
	}
	err := s.eng.Close()
	s.eng = nil
	return err
}
