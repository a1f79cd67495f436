package platform

import (
	"fmt"
	"os"
	"runtime"
)

// ownerWrite is the permission bit os.Chmod maps to the read-only attribute on Windows.
const ownerWrite os.FileMode = 0200

// Chmod sets file permissions. On Windows this is a no-op because Windows
// does not support Unix-style permission bits.
func Chmod(path string, mode os.FileMode) error {
	if runtime.GOOS == "windows" {
		return nil
	}
	return os.Chmod(path, mode)
}

// MakeWritable clears read-only protection on path so it can be overwritten
// or deleted. Other permission bits are left untouched.
func MakeWritable(path string) error {
	info, err := os.Lstat(path)
	if err != nil {
		return err
	}
	mode := info.Mode().Perm()
	if mode&ownerWrite != 0 {
		return nil
	}
	if err := os.Chmod(path, mode|ownerWrite); err != nil {
		return fmt.Errorf("clearing read-only flag on %s: %w", path, err)
	}
	return nil
}

// IsReadOnly reports whether path lacks the owner-write bit.
func IsReadOnly(path string) (bool, error) {
	info, err := os.Lstat(path)
	if err != nil {
		return false, err
	}
	return info.Mode().Perm()&ownerWrite == 0, nil
}
