package redist

import "fmt"

// MissingRedistributablesError is returned when the SDK redistributable
// directory holds no API-set shim DLLs.
type MissingRedistributablesError struct {
	Dir     string
	Pattern string
}

func (e *MissingRedistributablesError) Error() string {
	return fmt.Sprintf("no files matching %s found in %s", e.Pattern, e.Dir)
}

// Hint implements the remediation hint printed by the CLI.
func (e *MissingRedistributablesError) Hint() string {
	return "repair the Windows 10 SDK installation so that it includes the Universal CRT redistributables"
}

// DebugHelperMissingError is returned when the SDK lacks the symbolication helper.
type DebugHelperMissingError struct {
	Name    string
	Path    string
	Feature string
}

func (e *DebugHelperMissingError) Error() string {
	return fmt.Sprintf("%s not found in %q", e.Name, e.Path)
}

// Hint implements the remediation hint printed by the CLI.
func (e *DebugHelperMissingError) Hint() string {
	return fmt.Sprintf("You must install the %q feature from the Windows 10 SDK.", e.Feature)
}
