// Package report builds the structured crash document: best-effort
// symbolization of raw program counters and a bounded JSON rendering
// that never grows its buffer.
package report

// Frame is one entry of a captured call chain, innermost first. PC is
// always present; the symbolic fields are best-effort and carry the
// Unknown sentinel when resolution found nothing.
type Frame struct {
	PC     uintptr
	Module string
	Symbol string
	Offset uintptr
	Known  bool
}

// Report holds everything rendered into the crash document. It exists
// only for the duration of a single capture; Frames aliases
// caller-owned storage.
type Report struct {
	Signal      int
	Name        string
	Description string
	FaultAddr   uintptr
	ThreadID    uint64
	Code        int
	SessionID   string
	CapturedAt  int64
	Frames      []Frame
}
