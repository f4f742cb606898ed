package sigtrap

import (
	"bytes"
	"log/slog"
	"syscall"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestHandler returns a handler whose diagnostics land in the
// returned buffer and whose re-raise is stubbed out, so no test ever
// re-delivers a real signal.
func newTestHandler(t *testing.T, opts ...Option) (*Handler, *bytes.Buffer) {
	t.Helper()
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	h := New(append(opts, WithLogger(logger))...)
	h.raise = func(syscall.Signal) {}
	t.Cleanup(h.Shutdown)
	return h, &buf
}

func TestInitialize_Idempotent(t *testing.T) {
	h, buf := newTestHandler(t)

	h.Initialize([]syscall.Signal{syscall.SIGTERM}, nil)
	require.True(t, h.IsInitialized())
	session := h.SessionID()
	require.NotEmpty(t, session)
	require.Len(t, h.previous, 1)

	h.Initialize([]syscall.Signal{syscall.SIGSEGV}, nil)

	assert.Contains(t, buf.String(), "already initialized")
	assert.Equal(t, session, h.SessionID(), "session must not be regenerated")
	assert.Len(t, h.previous, 1, "saved dispositions must be untouched")
	_, installed := h.previous[syscall.SIGSEGV]
	assert.False(t, installed, "no second installation may happen")
}

func TestShutdown_WhenNeverInitialized(t *testing.T) {
	h, buf := newTestHandler(t)

	h.Shutdown()

	assert.False(t, h.IsInitialized())
	assert.Contains(t, buf.String(), "not initialized")
}

func TestShutdown_Idempotent(t *testing.T) {
	h, _ := newTestHandler(t)

	h.Initialize([]syscall.Signal{syscall.SIGTERM}, nil)
	h.Shutdown()
	require.False(t, h.IsInitialized())
	assert.Nil(t, h.previous)

	h.Shutdown()
	assert.False(t, h.IsInitialized())
}

func TestInitialize_PartialInstall(t *testing.T) {
	h, buf := newTestHandler(t)

	h.Initialize([]syscall.Signal{
		syscall.SIGKILL,   // uncatchable
		syscall.Signal(0), // invalid number
		syscall.SIGTERM,
	}, nil)

	assert.True(t, h.IsInitialized(), "partial success still counts as initialized")
	assert.Contains(t, buf.String(), "failed to install handler")
	assert.Len(t, h.previous, 1)
	_, ok := h.previous[syscall.SIGTERM]
	assert.True(t, ok, "healthy signals must still be installed")
}

func TestInitialize_DuplicateSignals(t *testing.T) {
	h, _ := newTestHandler(t)

	h.Initialize([]syscall.Signal{syscall.SIGTERM, syscall.SIGTERM}, nil)

	assert.Len(t, h.previous, 1)
}

func TestOptions_Clamped(t *testing.T) {
	h := New(WithMaxFrames(1), WithBufferSize(1))
	assert.Equal(t, minMaxFrames, h.maxFrames)
	assert.Equal(t, minBufferSize, h.bufSize)

	h = New(WithMaxFrames(1<<20), WithBufferSize(1<<30))
	assert.Equal(t, maxMaxFrames, h.maxFrames)
	assert.Equal(t, maxBufferSize, h.bufSize)
}
