package sigtrap

import (
	"runtime"
	"strconv"
	"strings"
	"syscall"
)

// Recover is the synchronous-fault bridge. Go surfaces faults raised
// by the program's own execution (nil-pointer writes, wild address
// accesses, integer division by zero) as runtime panics rather than
// catchable signals; deferred near the top of a goroutine, Recover
// classifies such a fault as its equivalent signal, runs the same
// capture pipeline as a delivered signal, and rethrows so the runtime's
// fatal handling proceeds as if this engine were absent. Panics that
// are not machine faults pass through untouched.
func (h *Handler) Recover() {
	r := recover()
	if r == nil {
		return
	}
	if h.IsInitialized() {
		if desc, addr, ok := classifyFault(r); ok {
			// Skip to the panicking frame; the faulting function sits
			// right behind the runtime's panic machinery.
			h.capture(desc, addr, 0, 2)
		}
	}
	panic(r)
}

// classifyFault maps a recovered panic value to the signal a native
// crash of the same kind would have raised. Only runtime machine
// faults classify; ordinary panics do not.
func classifyFault(r any) (SignalDescriptor, uintptr, bool) {
	err, ok := r.(runtime.Error)
	if !ok {
		return SignalDescriptor{}, 0, false
	}
	msg := err.Error()
	switch {
	case strings.Contains(msg, "nil pointer dereference"),
		strings.Contains(msg, "invalid memory address"):
		return Describe(syscall.SIGSEGV), faultAddress(msg), true
	case strings.Contains(msg, "unexpected fault address"):
		addr := faultAddress(msg)
		if addr < 0x1000 {
			// Faults in the zero page are segmentation violations;
			// anything else is reported the way a misaligned or
			// unmapped access would arrive natively.
			return Describe(syscall.SIGSEGV), addr, true
		}
		return Describe(syscall.SIGBUS), addr, true
	case strings.Contains(msg, "integer divide by zero"):
		return Describe(syscall.SIGFPE), 0, true
	case strings.Contains(msg, "floating point error"):
		return Describe(syscall.SIGFPE), 0, true
	}
	return SignalDescriptor{}, 0, false
}

// faultAddress extracts a trailing "0x..." address from a runtime
// fault message, 0 when absent.
func faultAddress(msg string) uintptr {
	i := strings.LastIndex(msg, "0x")
	if i < 0 {
		return 0
	}
	v, err := strconv.ParseUint(msg[i+2:], 16, 64)
	if err != nil {
		return 0
	}
	return uintptr(v)
}
