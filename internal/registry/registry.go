package registry

import (
	"errors"
	"fmt"
	"strings"
)

// RootLocalMachine is the only supported root key.
const RootLocalMachine = "HKLM"

var (
	// ErrUnavailable indicates the registry subsystem does not exist on this platform.
	ErrUnavailable = errors.New("registry subsystem unavailable")
	// ErrUnsupportedRoot indicates a key outside HKLM.
	ErrUnsupportedRoot = errors.New("unsupported registry root")
)

// Reader reads a single registry value.
type Reader interface {
	// Get returns the string data of value under key. found is false when the
	// key or value does not exist; err is reserved for environment defects.
	Get(key, value string) (data string, found bool, err error)
}

// ConfigurationError reports that the registry cannot be queried at all.
type ConfigurationError struct {
	Platform string
	Err      error
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("registry not usable on %s: %v", e.Platform, e.Err)
}

func (e *ConfigurationError) Unwrap() error { return e.Err }

// SplitKey splits `HKLM\SOFTWARE\...` into its root and subkey.
func SplitKey(key string) (root, subkey string, err error) {
	root, subkey, ok := strings.Cut(key, `\`)
	if !ok || subkey == "" {
		return "", "", fmt.Errorf("registry key %q has no subkey", key)
	}
	if !strings.EqualFold(root, RootLocalMachine) {
		return "", "", fmt.Errorf("%w %q in %q: only %s is supported", ErrUnsupportedRoot, root, key, RootLocalMachine)
	}
	return RootLocalMachine, subkey, nil
}
