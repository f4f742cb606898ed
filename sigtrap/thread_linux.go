//go:build linux

package sigtrap

import "golang.org/x/sys/unix"

// threadID returns the kernel thread id of the handling goroutine's
// current thread; best-effort, the handling goroutine is the one that
// observed the crash.
func threadID() uint64 {
	return uint64(unix.Gettid())
}
