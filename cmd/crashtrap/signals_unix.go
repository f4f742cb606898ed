//go:build !windows

package main

import (
	"os"
	"syscall"
)

// getNotifySignals returns Unix-compatible shutdown signals.
func getNotifySignals() []os.Signal {
	return []os.Signal{os.Interrupt, syscall.SIGTERM}
}
