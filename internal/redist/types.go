package redist

import "fmt"

// Arch is a target CPU label.
type Arch string

// Supported target architectures.
const (
	ArchX86 Arch = "x86"
	ArchX64 Arch = "x64"
)

// ParseArch validates a target CPU label.
func ParseArch(s string) (Arch, error) {
	switch Arch(s) {
	case ArchX86, ArchX64:
		return Arch(s), nil
	default:
		return "", fmt.Errorf("unknown target cpu %q: expected %q or %q", s, ArchX86, ArchX64)
	}
}

// Configuration is a build configuration label.
type Configuration string

// Supported build configurations.
const (
	Debug   Configuration = "Debug"
	Release Configuration = "Release"
)

// ParseConfiguration validates a build configuration label.
func ParseConfiguration(s string) (Configuration, error) {
	switch Configuration(s) {
	case Debug, Release:
		return Configuration(s), nil
	default:
		return "", fmt.Errorf("unknown configuration %q: expected %q or %q", s, Debug, Release)
	}
}
