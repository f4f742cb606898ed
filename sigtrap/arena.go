package sigtrap

import (
	"runtime"

	"github.com/crashtrap/crashtrap/report"
)

const (
	// DefaultMaxFrames matches the deepest call chain a report carries.
	DefaultMaxFrames = 128

	// DefaultBufferSize is the capacity of the serialized report
	// buffer. Generous: a full 128-frame report fits with room to
	// spare.
	DefaultBufferSize = 32 << 10

	minMaxFrames  = 8
	maxMaxFrames  = 512
	minBufferSize = 4 << 10
	maxBufferSize = 1 << 20
)

// arena is the preallocated storage the capture pipeline writes into.
// The Go runtime already runs signal code on its own alternate stack;
// what this engine must guarantee is that nothing on the capture path
// allocates, so every buffer it touches is reserved here at
// initialization and held for the process lifetime.
type arena struct {
	pcs    []uintptr
	frames []report.Frame
	buf    []byte
}

func newArena(maxFrames, bufSize int) *arena {
	return &arena{
		pcs:    make([]uintptr, maxFrames),
		frames: make([]report.Frame, 0, maxFrames),
		buf:    make([]byte, 0, bufSize),
	}
}

// unwind records the active call chain into the arena's PC buffer,
// innermost frame first, stopping at the top of the stack or when the
// buffer is full. skip counts frames to drop, with 1 identifying the
// caller of unwind. Returns the filled prefix; no symbolic information
// is attached at this stage.
func (a *arena) unwind(skip int) []uintptr {
	n := runtime.Callers(skip+1, a.pcs)
	return a.pcs[:n]
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
