//go:build !windows

package registry

import "runtime"

type unsupportedReader struct{}

// New returns a Reader that always fails: there is no registry on this platform.
func New() Reader {
	return unsupportedReader{}
}

func (unsupportedReader) Get(key, _ string) (string, bool, error) {
	if _, _, err := SplitKey(key); err != nil {
		return "", false, err
	}
	return "", false, &ConfigurationError{Platform: runtime.GOOS, Err: ErrUnavailable}
}
