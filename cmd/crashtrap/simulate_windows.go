//go:build windows

package main

import "log/slog"

func raiseAbort() {
	slog.Error("abort simulation is not supported on windows")
}
