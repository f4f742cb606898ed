//go:build windows

package main

import "os"

// getNotifySignals returns Windows-compatible shutdown signals.
func getNotifySignals() []os.Signal {
	return []os.Signal{os.Interrupt}
}
