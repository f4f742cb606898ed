package main

import (
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/crashtrap/crashtrap/sigtrap"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Arm the crash handler and wait",
	Long:  `Install handlers for the configured signal set and block until interrupted. Any captured crash report is written to the report directory before the process terminates.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := LoadConfig(configDir())
		if err != nil {
			return err
		}
		set, err := cfg.SignalSet()
		if err != nil {
			return err
		}

		h := sigtrap.New(
			sigtrap.WithMaxFrames(cfg.MaxFrames),
			sigtrap.WithBufferSize(cfg.BufferSize),
		)
		h.Initialize(set, func(report string) {
			writeReport(cfg.ReportDir, report)
		})
		defer h.Shutdown()

		slog.Info("armed",
			"signals", len(set),
			"buffer", humanize.Bytes(uint64(cfg.BufferSize)),
			"reports", cfg.ReportDir)

		interrupt := make(chan os.Signal, 1)
		signal.Notify(interrupt, getNotifySignals()...)
		<-interrupt
		return nil
	},
}

// writeReport is the bridging layer: the engine hands over the
// document and this side owns persistence. Best effort on purpose; the
// process is already going down.
func writeReport(dir, report string) {
	fmt.Fprintln(os.Stderr, report)

	if dir == "" {
		return
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		slog.Error("failed to create report directory", "dir", dir, "error", err)
		return
	}
	name := fmt.Sprintf("crash-%d.json", time.Now().UnixNano())
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(report), 0644); err != nil {
		slog.Error("failed to write report", "path", path, "error", err)
		return
	}
	slog.Info("crash report written",
		"path", path, "size", humanize.Bytes(uint64(len(report))))
}
