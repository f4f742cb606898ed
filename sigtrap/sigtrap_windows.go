//go:build windows

package sigtrap

import (
	"os"
	"syscall"
)

func uncatchable(sig syscall.Signal) bool {
	return sig == syscall.SIGKILL
}

// reRaise approximates Unix re-delivery: Windows has no kill, so exit
// with the conventional fatal-signal status.
func (h *Handler) reRaise(sig syscall.Signal) {
	os.Exit(128 + int(sig))
}
