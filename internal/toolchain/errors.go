package toolchain

import (
	"fmt"
	"strings"

	"github.com/polonite/vstoolchain/internal/branding"
	"github.com/polonite/vstoolchain/internal/config"
)

// UnsupportedVersionError is returned for a toolchain version label with no
// known install layout.
type UnsupportedVersionError struct {
	Version   string
	Supported []string
}

func (e *UnsupportedVersionError) Error() string {
	return fmt.Sprintf("unsupported Visual Studio version %q (from GN_MSVS_VERSION); supported: %s",
		e.Version, strings.Join(e.Supported, ", "))
}

// ToolchainNotFoundError is returned when no candidate install location exists.
type ToolchainNotFoundError struct {
	Version string
	Tried   []string
}

func (e *ToolchainNotFoundError) Error() string {
	return fmt.Sprintf("Visual Studio version %s (from GN_MSVS_VERSION) not found; tried: %s",
		e.Version, strings.Join(e.Tried, ", "))
}

// Hint implements the remediation hint printed by the CLI.
func (e *ToolchainNotFoundError) Hint() string {
	return "set vs2017_install to the Visual Studio installation directory"
}

// SdkNotFoundError is returned when neither WINDOWSSDKDIR nor the default SDK
// location is available.
type SdkNotFoundError struct {
	Default string
}

func (e *SdkNotFoundError) Error() string {
	return fmt.Sprintf("Windows SDK not found: WINDOWSSDKDIR is not set and %s does not exist", e.Default)
}

// Hint implements the remediation hint printed by the CLI.
func (e *SdkNotFoundError) Hint() string {
	return "install the Windows 10 SDK or set WINDOWSSDKDIR"
}

// ToolsDirNotFoundError is returned when no versioned MSVC tools directory matches.
type ToolsDirNotFoundError struct {
	Dir        string
	Constraint string
}

func (e *ToolsDirNotFoundError) Error() string {
	if e.Constraint != "" {
		return fmt.Sprintf("unable to find a VC tools directory matching %q in %s", e.Constraint, e.Dir)
	}
	return fmt.Sprintf("unable to find the VC tools directory in %s", e.Dir)
}

// AmbiguousToolsDirError is returned when several versioned MSVC tools
// directories match and nothing selects one of them.
type AmbiguousToolsDirError struct {
	Dir     string
	Matches []string
}

func (e *AmbiguousToolsDirError) Error() string {
	return fmt.Sprintf("found %d VC tools directories in %s: %s",
		len(e.Matches), e.Dir, strings.Join(e.Matches, ", "))
}

// Hint implements the remediation hint printed by the CLI.
func (e *AmbiguousToolsDirError) Hint() string {
	return "set " + branding.EnvVar(config.KeyToolsVersion) + " to the version to use, e.g. " + e.Matches[len(e.Matches)-1]
}
