package sigtrap

import (
	"errors"
	"fmt"
	"os/signal"
	"syscall"
)

// maxSignal bounds acceptable signal numbers.
const maxSignal = 64

var errUncatchable = errors.New("signal cannot be caught")

// disposition is the observable previous handling state of a signal,
// captured before this engine installs itself. Go cannot read a
// foreign sigaction, so the saved state is the ignored/default bit the
// runtime exposes; restore reinstates exactly that.
type disposition struct {
	ignored bool
}

// install saves sig's current disposition and routes sig to the
// dispatch channel. Callers hold h.mu.
func (h *Handler) install(sig syscall.Signal) error {
	if sig <= 0 || int(sig) > maxSignal {
		return fmt.Errorf("invalid signal number %d", int(sig))
	}
	if uncatchable(sig) {
		return errUncatchable
	}
	if _, ok := h.previous[sig]; ok {
		// Duplicate in the set; first capture wins.
		return nil
	}
	h.previous[sig] = disposition{ignored: signal.Ignored(sig)}
	signal.Notify(h.notify, sig)
	return nil
}

// restore reinstates sig's saved disposition. Safe for signals that
// were never installed: those fall back to the platform default.
func (h *Handler) restore(sig syscall.Signal) {
	prev, ok := h.previous[sig]
	if ok && prev.ignored {
		signal.Ignore(sig)
		return
	}
	signal.Reset(sig)
}
