//go:build windows

package main

import (
	"syscall"
	"unsafe"
)

// MEMORYSTATUSEX
type memoryStatus struct {
	length               uint32
	memoryLoad           uint32
	totalPhys            uint64
	availPhys            uint64
	totalPageFile        uint64
	availPageFile        uint64
	totalVirtual         uint64
	availVirtual         uint64
	availExtendedVirtual uint64
}

var procGlobalMemoryStatusEx = syscall.NewLazyDLL("kernel32.dll").NewProc("GlobalMemoryStatusEx")

// totalSystemMemory returns physical RAM in bytes (Windows)
func totalSystemMemory() (uint64, error) {
	var status memoryStatus
	status.length = uint32(unsafe.Sizeof(status))

	if ret, _, err := procGlobalMemoryStatusEx.Call(uintptr(unsafe.Pointer(&status))); ret == 0 {
		return 0, err
	}
	return status.totalPhys, nil
}
