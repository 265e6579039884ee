//go:build !unix

package flock

import (
	"os"
)

// Lock is a no-op where flock(2) is not available.
func Lock(file *os.File) error {
	return nil
}

func Unlock(file *os.File) error {
	return nil
}
