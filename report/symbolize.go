package report

import "runtime"

// Unknown is the sentinel for symbolic fields the resolver could not
// fill in. Missing symbol information is valid output, not a failure.
const Unknown = "???"

// Resolver maps raw program counters to symbol information using the
// runtime's own function table. Lookup never fails and never touches
// storage outside the returned Frame, so it is usable on the capture
// path.
type Resolver struct {
	module string
}

// NewResolver returns a resolver that reports module for every PC the
// runtime knows about. module is normally the base name of the running
// binary, computed once by the caller ahead of any crash.
func NewResolver(module string) *Resolver {
	if module == "" {
		module = Unknown
	}
	return &Resolver{module: module}
}

// Resolve annotates pc. PCs the runtime has no entry for (cgo frames,
// corrupted stacks, garbage values) come back with sentinel fields and
// Known false; resolution of other frames is unaffected.
func (r *Resolver) Resolve(pc uintptr) Frame {
	f := Frame{PC: pc, Module: Unknown, Symbol: Unknown}
	fn := runtime.FuncForPC(pc)
	if fn == nil {
		return f
	}
	f.Module = r.module
	f.Symbol = fn.Name()
	f.Offset = pc - fn.Entry()
	f.Known = true
	return f
}
