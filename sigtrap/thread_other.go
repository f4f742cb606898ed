//go:build !linux

package sigtrap

// threadID is only retrievable cheaply on Linux; elsewhere the field
// is reported as 0.
func threadID() uint64 {
	return 0
}
