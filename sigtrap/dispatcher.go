package sigtrap

import (
	"os"
	"syscall"
	"time"

	"github.com/crashtrap/crashtrap/report"
)

// dispatch drains the notify channel until shutdown. It runs on its
// own goroutine for the lifetime of one Initialize/Shutdown cycle; the
// channel and done are passed in so a stale goroutine from a previous
// cycle can never touch a re-initialized Handler's channels.
func (h *Handler) dispatch(notify <-chan os.Signal, done <-chan struct{}) {
	for {
		select {
		case <-done:
			return
		case s := <-notify:
			sig, ok := s.(syscall.Signal)
			if !ok {
				continue
			}
			h.handleSignal(sig)
		}
	}
}

// handleSignal is the Armed→Handling→Delegating path for a delivered
// signal: capture the report, hand it to the callback, then restore
// the saved disposition and re-raise so default termination (and any
// platform crash reporting chained behind this engine) proceeds
// untouched. If the guard is already tripped the event falls straight
// through to whatever disposition is currently installed.
func (h *Handler) handleSignal(sig syscall.Signal) {
	if !h.capture(Describe(sig), 0, 0, 2) {
		return
	}
	h.delegate(sig)
}

// capture runs the Handling stage: guard check, unwind, symbolize,
// serialize, callback. Returns false when the guard was already
// tripped and no report was built. skip counts stack frames to drop,
// with 1 identifying capture's caller.
//
// Everything written here lives in the arena; the only allocation is
// the string handed to the callback, which happens in ordinary
// goroutine context, not inside an OS signal frame.
func (h *Handler) capture(desc SignalDescriptor, faultAddr uintptr, code int, skip int) bool {
	if !h.tripped.CompareAndSwap(false, true) {
		return false
	}

	h.log.Error("caught fatal signal",
		"signal", int(desc.Signal), "name", desc.Name)

	r := report.Report{
		Signal:      int(desc.Signal),
		Name:        desc.Name,
		Description: desc.Description,
		FaultAddr:   faultAddr,
		ThreadID:    threadID(),
		Code:        code,
		SessionID:   h.sessionID,
		CapturedAt:  time.Now().Unix(),
	}

	pcs := h.arena.unwind(skip + 1)
	frames := h.arena.frames[:0]
	for _, pc := range pcs {
		frames = append(frames, h.resolver.Resolve(pc))
	}
	r.Frames = frames

	out := report.Append(h.arena.buf[:0], &r)
	if h.callback != nil {
		h.callback(string(out))
	}
	return true
}

// delegate is terminal for the invocation: original disposition back
// in place, same signal re-delivered. Termination is the platform's
// decision from here, never this engine's.
func (h *Handler) delegate(sig syscall.Signal) {
	h.restore(sig)
	h.raise(sig)
}
