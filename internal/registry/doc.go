// Package registry reads single values from the Windows registry behind the
// Reader capability interface. Only the HKLM root is supported. On platforms
// without a registry, New returns a Reader whose calls fail with a
// *ConfigurationError, which callers must not confuse with "value not found".
package registry
