package redist

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/polonite/vstoolchain/internal/config"
	"github.com/polonite/vstoolchain/internal/filesync"
	"github.com/polonite/vstoolchain/internal/toolchain"
)

var (
	sourceTime = time.Date(2017, 6, 1, 9, 30, 0, 0, time.UTC)
	staleTime  = time.Date(2009, 1, 1, 0, 0, 0, 0, time.UTC)
)

// fixture is a fake Windows host: a SystemRoot with runtime DLLs, a Visual
// Studio root and a Windows SDK root.
type fixture struct {
	systemRoot string
	vs         string
	sdk        string
	out        string
}

func writeFile(t *testing.T, path, content string, mtime time.Time) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.Chtimes(path, mtime, mtime); err != nil {
		t.Fatal(err)
	}
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	tmp := t.TempDir()
	f := &fixture{
		systemRoot: filepath.Join(tmp, "Windows"),
		vs:         filepath.Join(tmp, "VS2017"),
		sdk:        filepath.Join(tmp, "Windows Kits", "10"),
		out:        filepath.Join(tmp, "out", "Release"),
	}

	for _, dir := range []string{"System32", "SysWOW64"} {
		for _, name := range []string{
			"msvcp140.dll", "vccorlib140.dll", "vcruntime140.dll", "ucrtbase.dll",
			"msvcp140d.dll", "vccorlib140d.dll", "vcruntime140d.dll", "ucrtbased.dll",
		} {
			writeFile(t, filepath.Join(f.systemRoot, dir, name), dir+"/"+name, sourceTime)
		}
	}
	for _, arch := range []string{"x86", "x64"} {
		for _, name := range []string{"api-ms-win-core-file-l1-2-0.dll", "api-ms-win-crt-runtime-l1-1-0.dll"} {
			writeFile(t, filepath.Join(f.sdk, "Redist", "ucrt", "DLLs", arch, name), arch+"/"+name, sourceTime)
		}
		writeFile(t, filepath.Join(f.sdk, "Debuggers", arch, "dbghelp.dll"), arch+"/dbghelp.dll", sourceTime)
	}
	if err := os.MkdirAll(f.vs, 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.MkdirAll(f.out, 0755); err != nil {
		t.Fatal(err)
	}
	return f
}

func (f *fixture) copier(t *testing.T, goos string) *Copier {
	t.Helper()
	session := toolchain.NewSession(&config.Config{
		InstallOverride: f.vs,
		SDKDir:          f.sdk,
		SystemRoot:      f.systemRoot,
	}, toolchain.WithHost(goos, "amd64"), toolchain.WithInstallCandidates("2017"))
	c, err := New(session, filesync.New(nil))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return c
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	return string(data)
}

func assertFiles(t *testing.T, dir string, want ...string) {
	t.Helper()
	for _, name := range want {
		if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
			t.Errorf("expected %s in output: %v", name, err)
		}
	}
}

func TestCopyRuntimeSetRelease(t *testing.T) {
	f := newFixture(t)
	c := f.copier(t, "windows")

	if err := c.CopyRuntimeSet(f.out, filepath.Join(f.systemRoot, "System32"), ArchX64, false); err != nil {
		t.Fatalf("CopyRuntimeSet: %v", err)
	}

	assertFiles(t, f.out,
		"msvcp140.dll", "vccorlib140.dll", "vcruntime140.dll", "ucrtbase.dll",
		"api-ms-win-core-file-l1-2-0.dll", "api-ms-win-crt-runtime-l1-1-0.dll")
	if _, err := os.Stat(filepath.Join(f.out, "msvcp140d.dll")); !os.IsNotExist(err) {
		t.Error("release copy should not include debug runtime")
	}
	if got := readFile(t, filepath.Join(f.out, "api-ms-win-core-file-l1-2-0.dll")); got != "x64/api-ms-win-core-file-l1-2-0.dll" {
		t.Errorf("shim copied from wrong architecture: %q", got)
	}
}

func TestCopyRuntimeSetDebug(t *testing.T) {
	f := newFixture(t)
	c := f.copier(t, "windows")

	if err := c.CopyRuntimeSet(f.out, filepath.Join(f.systemRoot, "SysWOW64"), ArchX86, true); err != nil {
		t.Fatalf("CopyRuntimeSet: %v", err)
	}
	assertFiles(t, f.out, "msvcp140d.dll", "vccorlib140d.dll", "vcruntime140d.dll", "ucrtbased.dll")
}

func TestCopyRuntimeSetMissingRedistributables(t *testing.T) {
	f := newFixture(t)
	if err := os.RemoveAll(filepath.Join(f.sdk, "Redist", "ucrt", "DLLs", "x64")); err != nil {
		t.Fatal(err)
	}
	c := f.copier(t, "windows")

	err := c.CopyRuntimeSet(f.out, filepath.Join(f.systemRoot, "System32"), ArchX64, false)
	var missing *MissingRedistributablesError
	if !errors.As(err, &missing) {
		t.Fatalf("error = %v, want *MissingRedistributablesError", err)
	}
	if missing.Pattern != "api-ms-win-*.dll" {
		t.Errorf("Pattern = %q", missing.Pattern)
	}
}

func TestCopyRuntimeSetRequiresToolchain(t *testing.T) {
	f := newFixture(t)
	session := toolchain.NewSession(&config.Config{
		InstallOverride: filepath.Join(f.vs, "missing"),
		SDKDir:          f.sdk,
	}, toolchain.WithHost("windows", "amd64"), toolchain.WithInstallCandidates("2017"))
	c, err := New(session, nil)
	if err != nil {
		t.Fatal(err)
	}

	err = c.CopyRuntimeSet(f.out, filepath.Join(f.systemRoot, "System32"), ArchX64, false)
	var notFound *toolchain.ToolchainNotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("error = %v, want *toolchain.ToolchainNotFoundError", err)
	}
}

func TestCopyRuntimeSetOnlyReplacesStale(t *testing.T) {
	f := newFixture(t)
	c := f.copier(t, "windows")
	system32 := filepath.Join(f.systemRoot, "System32")

	stale := filepath.Join(f.out, "msvcp140.dll")
	fresh := filepath.Join(f.out, "vccorlib140.dll")
	writeFile(t, stale, "old msvcp", staleTime)
	writeFile(t, fresh, "local vccorlib", sourceTime)

	if err := c.CopyRuntimeSet(f.out, system32, ArchX64, false); err != nil {
		t.Fatalf("CopyRuntimeSet: %v", err)
	}

	if got := readFile(t, stale); got != "System32/msvcp140.dll" {
		t.Errorf("stale file content = %q, want replaced", got)
	}
	info, err := os.Stat(stale)
	if err != nil {
		t.Fatal(err)
	}
	if !info.ModTime().Equal(sourceTime) {
		t.Errorf("stale file mtime = %v, want %v", info.ModTime(), sourceTime)
	}

	if got := readFile(t, fresh); got != "local vccorlib" {
		t.Errorf("fresh file content = %q, want untouched", got)
	}
	info, err = os.Stat(fresh)
	if err != nil {
		t.Fatal(err)
	}
	if !info.ModTime().Equal(sourceTime) {
		t.Errorf("fresh file mtime = %v, want %v", info.ModTime(), sourceTime)
	}
}

func TestCopyDebugHelper(t *testing.T) {
	f := newFixture(t)
	c := f.copier(t, "windows")

	if err := c.CopyDebugHelper(f.out, ArchX86); err != nil {
		t.Fatalf("CopyDebugHelper: %v", err)
	}
	if got := readFile(t, filepath.Join(f.out, "dbghelp.dll")); got != "x86/dbghelp.dll" {
		t.Errorf("dbghelp.dll content = %q", got)
	}
}

func TestCopyDebugHelperMissing(t *testing.T) {
	f := newFixture(t)
	if err := os.Remove(filepath.Join(f.sdk, "Debuggers", "x64", "dbghelp.dll")); err != nil {
		t.Fatal(err)
	}
	c := f.copier(t, "windows")

	err := c.CopyDebugHelper(f.out, ArchX64)
	var missing *DebugHelperMissingError
	if !errors.As(err, &missing) {
		t.Fatalf("error = %v, want *DebugHelperMissingError", err)
	}
	if missing.Feature != "Debugging Tools for Windows" {
		t.Errorf("Feature = %q", missing.Feature)
	}
	if missing.Hint() == "" {
		t.Error("expected remediation hint")
	}
}

func TestCopyDLLsDebugGetsBothRuntimes(t *testing.T) {
	f := newFixture(t)
	c := f.copier(t, "windows")

	if err := c.CopyDLLs(f.out, Debug, ArchX86); err != nil {
		t.Fatalf("CopyDLLs: %v", err)
	}
	assertFiles(t, f.out,
		"msvcp140.dll", "msvcp140d.dll", "ucrtbase.dll", "ucrtbased.dll", "dbghelp.dll")
	if got := readFile(t, filepath.Join(f.out, "msvcp140.dll")); got != "SysWOW64/msvcp140.dll" {
		t.Errorf("x86 runtime copied from %q, want SysWOW64", got)
	}
}

func TestCopyDLLsReleaseX64(t *testing.T) {
	f := newFixture(t)
	c := f.copier(t, "windows")

	if err := c.CopyDLLs(f.out, Release, ArchX64); err != nil {
		t.Fatalf("CopyDLLs: %v", err)
	}
	if got := readFile(t, filepath.Join(f.out, "vcruntime140.dll")); got != "System32/vcruntime140.dll" {
		t.Errorf("x64 runtime copied from %q, want System32", got)
	}
	if _, err := os.Stat(filepath.Join(f.out, "vcruntime140d.dll")); !os.IsNotExist(err) {
		t.Error("release build should not get the debug runtime")
	}
}

func TestCopyDLLsNonWindowsIsNoop(t *testing.T) {
	f := newFixture(t)
	c := f.copier(t, "linux")

	if err := c.CopyDLLs(f.out, Debug, ArchX64); err != nil {
		t.Fatalf("CopyDLLs: %v", err)
	}
	entries, err := os.ReadDir(f.out)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 0 {
		t.Errorf("expected empty output on non-Windows host, got %d entries", len(entries))
	}
}

func TestCopyDLLsMissingOutputDirIsNoop(t *testing.T) {
	f := newFixture(t)
	c := f.copier(t, "windows")

	missing := filepath.Join(f.out, "not-generated")
	if err := c.CopyDLLs(missing, Release, ArchX64); err != nil {
		t.Fatalf("CopyDLLs: %v", err)
	}
	if _, err := os.Stat(missing); !os.IsNotExist(err) {
		t.Error("CopyDLLs created the output directory")
	}
}

func TestParseLabels(t *testing.T) {
	if a, err := ParseArch("x64"); err != nil || a != ArchX64 {
		t.Errorf("ParseArch(x64) = %q, %v", a, err)
	}
	if _, err := ParseArch("arm64"); err == nil {
		t.Error("ParseArch(arm64) expected error")
	}
	if c, err := ParseConfiguration("Debug"); err != nil || c != Debug {
		t.Errorf("ParseConfiguration(Debug) = %q, %v", c, err)
	}
	if _, err := ParseConfiguration("debug"); err == nil {
		t.Error("ParseConfiguration(debug) expected error")
	}
}
