package sigtrap

import (
	"strconv"
	"strings"
	"syscall"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var zero int // defeats constant folding in the divide-by-zero fault

//go:noinline
func faultNilWrite() {
	var p *int
	*p = 42
}

//go:noinline
func faultDivide(n int) int {
	return n / zero
}

//go:noinline
func faultAfterRecursing(depth int) {
	if depth == 0 {
		faultNilWrite()
		return
	}
	faultAfterRecursing(depth - 1)
}

// trip runs f under the handler's fault bridge and returns the value
// the bridge rethrew.
func trip(t *testing.T, h *Handler, f func()) (rethrown any) {
	t.Helper()
	defer func() { rethrown = recover() }()
	defer h.Recover()
	f()
	return nil
}

func TestRecover_NilPointerWrite(t *testing.T) {
	h, _ := newTestHandler(t)

	var got string
	h.Initialize(DefaultSignals, func(r string) { got = r })

	rethrown := trip(t, h, faultNilWrite)
	require.NotNil(t, rethrown, "the original panic must keep propagating")

	require.NotEmpty(t, got, "callback fires exactly once with the document")
	dec := decode(t, got)
	assert.Equal(t, int(syscall.SIGSEGV), dec.Signal)
	assert.Equal(t, "SIGSEGV", dec.SignalName)
	assert.NotEmpty(t, dec.Frames)
	assert.True(t, hasSymbol(dec.Frames, "faultNilWrite"),
		"the faulting function must appear in the frame list")

	addr, err := strconv.ParseUint(strings.TrimPrefix(dec.FaultAddress, "0x"), 16, 64)
	require.NoError(t, err)
	assert.Less(t, addr, uint64(0x1000), "a nil write faults in the zero page")
}

func TestRecover_DivideByZero(t *testing.T) {
	h, _ := newTestHandler(t)

	var got string
	h.Initialize(DefaultSignals, func(r string) { got = r })

	rethrown := trip(t, h, func() { _ = faultDivide(1) })
	require.NotNil(t, rethrown)

	dec := decode(t, got)
	assert.Equal(t, int(syscall.SIGFPE), dec.Signal)
	assert.Equal(t, "SIGFPE", dec.SignalName)
}

func TestRecover_FrameCountCappedAtMaximum(t *testing.T) {
	h, _ := newTestHandler(t, WithMaxFrames(16))

	var got string
	h.Initialize(DefaultSignals, func(r string) { got = r })

	rethrown := trip(t, h, func() { faultAfterRecursing(64) })
	require.NotNil(t, rethrown)

	dec := decode(t, got)
	assert.Len(t, dec.Frames, 16, "frame count equals the maximum, never more")
}

func TestRecover_OnlyFirstCrashReported(t *testing.T) {
	h, _ := newTestHandler(t)

	calls := 0
	h.Initialize(DefaultSignals, func(string) { calls++ })

	require.NotNil(t, trip(t, h, faultNilWrite))
	require.NotNil(t, trip(t, h, faultNilWrite))

	assert.Equal(t, 1, calls)
}

func TestRecover_AfterShutdown(t *testing.T) {
	h, _ := newTestHandler(t)

	calls := 0
	h.Initialize(DefaultSignals, func(string) { calls++ })
	h.Shutdown()

	require.NotNil(t, trip(t, h, faultNilWrite), "the fault still propagates")
	assert.Zero(t, calls, "no capture after shutdown")
}

func TestRecover_OrdinaryPanicPassesThrough(t *testing.T) {
	h, _ := newTestHandler(t)

	calls := 0
	h.Initialize(DefaultSignals, func(string) { calls++ })

	rethrown := trip(t, h, func() { panic("boom") })

	assert.Equal(t, "boom", rethrown)
	assert.Zero(t, calls, "non-fault panics are not this engine's business")
	assert.False(t, h.tripped.Load(), "the guard must not trip for a pass-through")
}

func TestRecover_NoPanic(t *testing.T) {
	h, _ := newTestHandler(t)
	h.Initialize(DefaultSignals, func(string) { t.Fatal("must not fire") })

	func() {
		defer h.Recover()
	}()
}
