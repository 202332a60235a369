//go:build darwin

package sysinfo

import "golang.org/x/sys/unix"

// memoryBytes returns total system memory in bytes using sysctl.
func memoryBytes() uint64 {
	memsize, err := unix.SysctlUint64("hw.memsize")
	if err != nil {
		return 0
	}
	return memsize
}
