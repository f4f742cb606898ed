package main

import (
	"fmt"
	"log/slog"
	"unsafe"

	"github.com/spf13/cobra"

	"github.com/crashtrap/crashtrap/sigtrap"
)

// simulateCmd is the debug fault-injection hook: it arms the handler
// against the default signal set and then crashes on purpose, printing
// the captured report to stderr on the way down. Not part of the
// production contract.
var simulateCmd = &cobra.Command{
	Use:       "simulate {nilderef|abort|wildaddr}",
	Short:     "Trigger a known fault to validate capture",
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{"nilderef", "abort", "wildaddr"},
	RunE: func(cmd *cobra.Command, args []string) error {
		h := sigtrap.New()
		h.Initialize(sigtrap.DefaultSignals, func(report string) {
			fmt.Fprintln(cmd.ErrOrStderr(), report)
		})

		slog.Info("simulating crash", "type", args[0])

		defer h.Recover()
		switch args[0] {
		case "nilderef":
			crashNilDeref()
		case "abort":
			raiseAbort()
		case "wildaddr":
			crashWildAddress()
		default:
			return fmt.Errorf("unknown crash type: %s", args[0])
		}
		return nil
	},
}

//go:noinline
func crashNilDeref() {
	var p *int
	*p = 42
}

//go:noinline
func crashWildAddress() {
	p := (*byte)(unsafe.Pointer(uintptr(1)))
	*p = 42
}
