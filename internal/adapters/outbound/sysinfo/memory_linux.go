//go:build linux

package sysinfo

import "golang.org/x/sys/unix"

// memoryBytes returns total system memory in bytes using sysinfo(2).
func memoryBytes() uint64 {
	var si unix.Sysinfo_t
	if err := unix.Sysinfo(&si); err == nil {
		return uint64(si.Totalram) * uint64(si.Unit)
	}
	return 0
}
