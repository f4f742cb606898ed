package sigtrap

import (
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"runtime/debug"
	"sync"
	"sync/atomic"
	"syscall"

	"github.com/google/uuid"

	"github.com/crashtrap/crashtrap/report"
)

// Callback receives the serialized crash report. It is invoked exactly
// once per captured crash, synchronously from the handling path, with
// the process about to terminate; its execution time and safety are
// the registrant's responsibility.
type Callback func(report string)

// Handler is the crash capture engine. The zero value is not usable;
// construct with New. A Handler owns process-wide signal dispositions
// between Initialize and Shutdown, so at most one should be armed at a
// time.
type Handler struct {
	mu          sync.Mutex
	initialized bool

	log       *slog.Logger
	maxFrames int
	bufSize   int

	callback  Callback
	sessionID string
	module    string

	arena    *arena
	resolver *report.Resolver

	notify chan os.Signal
	done   chan struct{}

	// previous holds each signal's saved disposition, captured before
	// install, read back at shutdown or crash-time delegation.
	previous map[syscall.Signal]disposition

	// tripped is the reentrancy guard. Once set it is never cleared,
	// not even by Shutdown: only the first crash observed in the
	// process produces a report.
	tripped atomic.Bool

	// raise re-delivers the signal after restoration. Swapped out in
	// tests; real crashes go through reRaise.
	raise func(sig syscall.Signal)
}

// Option configures a Handler at construction.
type Option func(*Handler)

// WithLogger sets the diagnostics sink. Diagnostics never become part
// of a report.
func WithLogger(l *slog.Logger) Option {
	return func(h *Handler) { h.log = l }
}

// WithMaxFrames bounds the captured call chain. Clamped to a sane
// range.
func WithMaxFrames(n int) Option {
	return func(h *Handler) { h.maxFrames = clamp(n, minMaxFrames, maxMaxFrames) }
}

// WithBufferSize sets the report buffer capacity. Clamped to a sane
// range.
func WithBufferSize(n int) Option {
	return func(h *Handler) { h.bufSize = clamp(n, minBufferSize, maxBufferSize) }
}

func New(opts ...Option) *Handler {
	h := &Handler{
		log:       slog.Default(),
		maxFrames: DefaultMaxFrames,
		bufSize:   DefaultBufferSize,
	}
	for _, opt := range opts {
		opt(h)
	}
	h.raise = h.reRaise
	return h
}

// Initialize installs the handler for every signal in set and
// registers cb. Each signal's previous disposition is saved before it
// is overwritten. Installation failures are per-signal: a failure is
// logged and the remaining signals are still installed. Idempotent;
// calling it on an armed Handler logs and changes nothing.
func (h *Handler) Initialize(set []syscall.Signal, cb Callback) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.initialized {
		h.log.Info("crash handler already initialized")
		return
	}

	h.callback = cb
	h.sessionID = uuid.NewString()
	h.module = executableName()
	h.arena = newArena(h.maxFrames, h.bufSize)
	h.resolver = report.NewResolver(h.module)
	h.notify = make(chan os.Signal, 1)
	h.done = make(chan struct{})
	h.previous = make(map[syscall.Signal]disposition, len(set))

	installed := 0
	for _, sig := range set {
		if err := h.install(sig); err != nil {
			h.log.Error("failed to install handler",
				"signal", int(sig), "name", Describe(sig).Name, "error", err)
			continue
		}
		installed++
	}

	// Convert synchronous faults (nil-pointer writes, wild addresses)
	// into recoverable panics so the Recover bridge can capture them.
	debug.SetPanicOnFault(true)

	go h.dispatch(h.notify, h.done)

	h.initialized = true
	h.log.Info("crash handler initialized",
		"signals", installed, "session", h.sessionID)
}

// Shutdown restores every saved disposition and clears registered
// state. Idempotent; calling it when not initialized is a safe no-op.
// The reentrancy guard is deliberately left as-is.
func (h *Handler) Shutdown() {
	h.mu.Lock()
	defer h.mu.Unlock()

	if !h.initialized {
		h.log.Info("crash handler not initialized, nothing to shut down")
		return
	}

	signal.Stop(h.notify)
	for sig := range h.previous {
		h.restore(sig)
	}
	close(h.done)

	h.previous = nil
	h.callback = nil
	h.initialized = false
	h.log.Info("crash handler shut down")
}

// IsInitialized reports whether the handler is armed. No side effects.
func (h *Handler) IsInitialized() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.initialized
}

// SessionID identifies this process run in emitted reports. Empty
// before Initialize.
func (h *Handler) SessionID() string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.sessionID
}

func executableName() string {
	exe, err := os.Executable()
	if err != nil {
		return ""
	}
	return filepath.Base(exe)
}
