package redist

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/polonite/vstoolchain/internal/filesync"
	"github.com/polonite/vstoolchain/internal/manifest"
	"github.com/polonite/vstoolchain/internal/toolchain"
)

// Copier syncs the runtime file set for one session.
type Copier struct {
	session  *toolchain.Session
	syncer   *filesync.Syncer
	manifest *manifest.Runtime
}

// New creates a Copier using the embedded runtime manifest.
func New(session *toolchain.Session, syncer *filesync.Syncer) (*Copier, error) {
	m, err := manifest.Load()
	if err != nil {
		return nil, fmt.Errorf("loading runtime manifest: %w", err)
	}
	if syncer == nil {
		syncer = &filesync.Syncer{}
	}
	return &Copier{session: session, syncer: syncer, manifest: m}, nil
}

// CopyDLLs copies the runtime DLLs for cfg and arch into targetDir. Debug
// builds get both the release and the debug runtime. It is a no-op on hosts
// without Windows runtime directories.
func (c *Copier) CopyDLLs(targetDir string, cfg Configuration, arch Arch) error {
	dirs := c.session.RuntimeDirs()
	if len(dirs) == 0 {
		return nil
	}

	x64Runtime, x86Runtime := dirs[0], dirs[1]
	runtimeDir := x86Runtime
	if arch == ArchX64 {
		runtimeDir = x64Runtime
	}

	if err := c.CopyRuntimeSet(targetDir, runtimeDir, arch, false); err != nil {
		return err
	}
	if cfg == Debug {
		if err := c.CopyRuntimeSet(targetDir, runtimeDir, arch, true); err != nil {
			return err
		}
	}
	return c.CopyDebugHelper(targetDir, arch)
}

// CopyRuntimeSet syncs the MSVC runtime libraries and ucrtbase from sourceDir
// and the API-set shims from the SDK into targetDir.
func (c *Copier) CopyRuntimeSet(targetDir, sourceDir string, arch Arch, debug bool) error {
	if _, err := c.session.LocateToolchain(); err != nil {
		return err
	}

	for _, lib := range c.manifest.Libraries {
		name := c.manifest.LibraryFile(lib, debug)
		if err := c.sync(targetDir, filepath.Join(sourceDir, name), true); err != nil {
			return err
		}
	}

	shims, err := c.Redistributables(arch)
	if err != nil {
		return err
	}
	for _, shim := range shims {
		if err := c.sync(targetDir, shim, false); err != nil {
			return err
		}
	}

	return c.sync(targetDir, filepath.Join(sourceDir, c.manifest.BaseRuntimeFile(debug)), true)
}

// CopyDebugHelper syncs dbghelp.dll for arch from the SDK into targetDir.
func (c *Copier) CopyDebugHelper(targetDir string, arch Arch) error {
	src, err := c.DebugHelper(arch)
	if err != nil {
		return err
	}
	return c.sync(targetDir, src, true)
}

// Redistributables lists the API-set shim DLLs the SDK ships for arch. It
// fails with *MissingRedistributablesError when there are none.
func (c *Copier) Redistributables(arch Arch) ([]string, error) {
	sdk, err := c.session.LocateSDK()
	if err != nil {
		return nil, err
	}
	redist := c.manifest.Redistributables
	dir := sdkPath(sdk, redist.Dir, string(arch))
	shims, err := filepath.Glob(filepath.Join(dir, redist.Pattern))
	if err != nil {
		return nil, fmt.Errorf("listing %s: %w", dir, err)
	}
	if len(shims) == 0 {
		return nil, &MissingRedistributablesError{Dir: dir, Pattern: redist.Pattern}
	}
	return shims, nil
}

// DebugHelper returns the path of dbghelp.dll for arch inside the SDK. It
// fails with *DebugHelperMissingError when the file is absent.
func (c *Copier) DebugHelper(arch Arch) (string, error) {
	sdk, err := c.session.LocateSDK()
	if err != nil {
		return "", err
	}
	helper := c.manifest.DebugHelper
	src := filepath.Join(sdkPath(sdk, helper.Dir, string(arch)), helper.Name)
	if _, err := os.Stat(src); err != nil {
		return "", &DebugHelperMissingError{Name: helper.Name, Path: src, Feature: helper.Feature}
	}
	return src, nil
}

func sdkPath(sdk string, rel []string, arch string) string {
	parts := make([]string, 0, len(rel)+2)
	parts = append(parts, sdk)
	parts = append(parts, rel...)
	return filepath.Join(append(parts, arch)...)
}

func (c *Copier) sync(targetDir, src string, verbose bool) error {
	dst := filepath.Join(targetDir, filepath.Base(src))
	if _, err := c.syncer.Sync(dst, src, verbose); err != nil {
		return err
	}
	return nil
}
