//go:build !linux && !darwin && !windows

package main

import "errors"

func totalSystemMemory() (uint64, error) {
	return 0, errors.New("memory size not available on this platform")
}
