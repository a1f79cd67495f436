package manifest

// Runtime is the parsed runtime file manifest.
type Runtime struct {
	// Libraries are the base names of the versioned MSVC runtime DLLs.
	Libraries      []string `yaml:"libraries"`
	RuntimeVersion string   `yaml:"runtime_version"`
	// BaseRuntime is the UCRT base library, copied with a configuration suffix.
	BaseRuntime      string           `yaml:"base_runtime"`
	DebugSuffix      string           `yaml:"debug_suffix"`
	Extension        string           `yaml:"extension"`
	Redistributables Redistributables `yaml:"redistributables"`
	DebugHelper      DebugHelper      `yaml:"debug_helper"`
}

// Redistributables locates the API-set shim DLLs inside the SDK.
type Redistributables struct {
	// Dir is relative to the SDK root; the target architecture is appended.
	Dir     []string `yaml:"dir"`
	Pattern string   `yaml:"pattern"`
}

// DebugHelper locates the symbolication helper inside the SDK.
type DebugHelper struct {
	Name string `yaml:"name"`
	// Dir is relative to the SDK root; the target architecture is appended.
	Dir []string `yaml:"dir"`
	// Feature names the SDK component that installs the helper.
	Feature string `yaml:"feature"`
}

// LibraryFile returns the file name of a versioned runtime library, e.g.
// "msvcp140.dll" or "msvcp140d.dll" for debug.
func (r *Runtime) LibraryFile(base string, debug bool) string {
	return base + r.RuntimeVersion + r.suffix(debug)
}

// BaseRuntimeFile returns "ucrtbase.dll" or "ucrtbased.dll" for debug.
func (r *Runtime) BaseRuntimeFile(debug bool) string {
	return r.BaseRuntime + r.suffix(debug)
}

func (r *Runtime) suffix(debug bool) string {
	if debug {
		return r.DebugSuffix + r.Extension
	}
	return r.Extension
}
