//go:build unix

package sigtrap

import (
	"syscall"

	"golang.org/x/sys/unix"
)

func uncatchable(sig syscall.Signal) bool {
	return sig == unix.SIGKILL || sig == unix.SIGSTOP
}

// reRaise re-delivers sig to the process after the saved disposition
// has been restored.
func (h *Handler) reRaise(sig syscall.Signal) {
	unix.Kill(unix.Getpid(), sig)
}
