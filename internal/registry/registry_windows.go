//go:build windows

package registry

import (
	"errors"
	"fmt"

	winreg "golang.org/x/sys/windows/registry"
)

type windowsReader struct{}

// New returns a Reader backed by the Windows registry.
func New() Reader {
	return windowsReader{}
}

func (windowsReader) Get(key, value string) (string, bool, error) {
	_, subkey, err := SplitKey(key)
	if err != nil {
		return "", false, err
	}

	k, err := winreg.OpenKey(winreg.LOCAL_MACHINE, subkey, winreg.QUERY_VALUE)
	if err != nil {
		if errors.Is(err, winreg.ErrNotExist) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("opening %s: %w", key, err)
	}
	defer k.Close()

	data, _, err := k.GetStringValue(value)
	if err != nil {
		if errors.Is(err, winreg.ErrNotExist) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("reading %s\\%s: %w", key, value, err)
	}
	return data, true, nil
}
