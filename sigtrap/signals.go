// Package sigtrap captures fatal signals delivered to the process,
// builds a bounded crash report and hands it to a registered callback
// before restoring the prior disposition and re-delivering the signal,
// so default termination proceeds as if the handler were never
// installed.
package sigtrap

import "syscall"

// SignalDescriptor pairs a signal number with its human-readable
// identity. The table is static and known at build time.
type SignalDescriptor struct {
	Signal      syscall.Signal
	Name        string
	Description string
}

// DefaultSignals is the fatal set most callers want: every signal a
// native crash on a POSIX system is expected to arrive as.
var DefaultSignals = []syscall.Signal{
	syscall.SIGABRT,
	syscall.SIGBUS,
	syscall.SIGFPE,
	syscall.SIGILL,
	syscall.SIGSEGV,
	syscall.SIGTRAP,
	syscall.SIGPIPE,
}

var descriptors = []SignalDescriptor{
	{syscall.SIGABRT, "SIGABRT", "Abort signal"},
	{syscall.SIGBUS, "SIGBUS", "Bus error (bad memory access)"},
	{syscall.SIGFPE, "SIGFPE", "Floating-point exception"},
	{syscall.SIGILL, "SIGILL", "Illegal instruction"},
	{syscall.SIGSEGV, "SIGSEGV", "Segmentation fault (invalid memory reference)"},
	{syscall.SIGTRAP, "SIGTRAP", "Trace/breakpoint trap"},
	{syscall.SIGPIPE, "SIGPIPE", "Broken pipe"},
}

// Describe returns the descriptor for sig. Signals outside the table
// get a placeholder descriptor rather than an error; naming must never
// fail during capture.
func Describe(sig syscall.Signal) SignalDescriptor {
	for _, d := range descriptors {
		if d.Signal == sig {
			return d
		}
	}
	return SignalDescriptor{Signal: sig, Name: "UNKNOWN", Description: "Unknown signal"}
}

// SignalByName maps a name like "SIGSEGV" back to its signal number.
func SignalByName(name string) (syscall.Signal, bool) {
	for _, d := range descriptors {
		if d.Name == name {
			return d.Signal, true
		}
	}
	return 0, false
}

// Signals returns a copy of the descriptor table.
func Signals() []SignalDescriptor {
	out := make([]SignalDescriptor, len(descriptors))
	copy(out, descriptors)
	return out
}
