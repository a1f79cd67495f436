package toolchain

import (
	"fmt"
	"io"
	"strings"
)

// windowsListSeparator joins runtime_dirs; the generator always runs on Windows.
const windowsListSeparator = ";"

// Report is the set of locations handed to the GN build generator.
type Report struct {
	VSPath      string `json:"vs_path" toml:"vs_path"`
	SDKPath     string `json:"sdk_path" toml:"sdk_path"`
	VSVersion   string `json:"vs_version" toml:"vs_version"`
	WDKDir      string `json:"wdk_dir" toml:"wdk_dir"`
	RuntimeDirs string `json:"runtime_dirs" toml:"runtime_dirs"`
}

// Report resolves the toolchain and SDK and assembles the generator report.
func (s *Session) Report() (*Report, error) {
	vsPath, err := s.LocateToolchain()
	if err != nil {
		return nil, err
	}
	sdkPath, err := s.LocateSDK()
	if err != nil {
		return nil, err
	}

	runtimeDirs := "None"
	if dirs := s.RuntimeDirs(); len(dirs) > 0 {
		runtimeDirs = strings.Join(dirs, windowsListSeparator)
	}

	return &Report{
		VSPath:      NormalizePath(vsPath),
		SDKPath:     sdkPath,
		VSVersion:   s.Version(),
		WDKDir:      strings.TrimRight(s.cfg.WDKDir, `\/`),
		RuntimeDirs: runtimeDirs,
	}, nil
}

// WriteGN writes the report as GN-style `key = "value"` assignments.
func (r *Report) WriteGN(w io.Writer) error {
	_, err := fmt.Fprintf(w, "vs_path = \"%s\"\nsdk_path = \"%s\"\nvs_version = \"%s\"\nwdk_dir = \"%s\"\nruntime_dirs = \"%s\"\n",
		r.VSPath, r.SDKPath, r.VSVersion, r.WDKDir, r.RuntimeDirs)
	return err
}
