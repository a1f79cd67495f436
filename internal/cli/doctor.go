package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/polonite/vstoolchain/internal/redist"
	"github.com/polonite/vstoolchain/internal/registry"
	"github.com/polonite/vstoolchain/internal/toolchain"
	"github.com/spf13/cobra"
)

// Installed Roots key written by the Windows 10 SDK installer.
const (
	kitsRootKey   = `HKLM\SOFTWARE\Microsoft\Windows Kits\Installed Roots`
	kitsRootValue = "KitsRoot10"
)

// doctor prints one status line per check and counts failures.
type doctor struct {
	out      io.Writer
	failures int

	okStyle   lipgloss.Style
	infoStyle lipgloss.Style
	warnStyle lipgloss.Style
	failStyle lipgloss.Style
	hintStyle lipgloss.Style
}

// newDoctor colours status tags only when out is a terminal.
func newDoctor(out io.Writer) *doctor {
	r := lipgloss.NewRenderer(out)
	return &doctor{
		out:       out,
		okStyle:   r.NewStyle().Bold(true).Foreground(lipgloss.Color("42")),
		infoStyle: r.NewStyle().Foreground(lipgloss.Color("39")),
		warnStyle: r.NewStyle().Bold(true).Foreground(lipgloss.Color("214")),
		failStyle: r.NewStyle().Bold(true).Foreground(lipgloss.Color("196")),
		hintStyle: r.NewStyle().Foreground(lipgloss.Color("242")),
	}
}

func (d *doctor) line(tag lipgloss.Style, label, format string, args ...any) {
	fmt.Fprintf(d.out, "  %s %s\n", tag.Render(label), fmt.Sprintf(format, args...))
}

func (d *doctor) ok(format string, args ...any) {
	d.line(d.okStyle, "[ OK ]", format, args...)
}

func (d *doctor) info(format string, args ...any) {
	d.line(d.infoStyle, "[INFO]", format, args...)
}

func (d *doctor) warn(format string, args ...any) {
	d.line(d.warnStyle, "[WARN]", format, args...)
}

func (d *doctor) fail(err error) {
	d.failures++
	d.line(d.failStyle, "[FAIL]", "%v", err)
	var h hinter
	if errors.As(err, &h) && h.Hint() != "" {
		fmt.Fprintf(d.out, "         %s\n", d.hintStyle.Render(h.Hint()))
	}
}

func newDoctorCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Check the toolchain, SDK and runtime file sources",
		Long:  `Run diagnostic checks over every location copy-dlls and get-toolchain-dir depend on.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			d := newDoctor(cmd.OutOrStdout())
			runDoctor(d, a, registry.New())
			if d.failures > 0 {
				return fmt.Errorf("%d check(s) failed", d.failures)
			}
			return nil
		},
	}
}

func runDoctor(d *doctor, a *app, reg registry.Reader) {
	s := a.session

	fmt.Fprintln(d.out, "Toolchain check:")
	if root, err := s.LocateToolchain(); err != nil {
		d.fail(err)
	} else {
		d.ok("Visual Studio %s found at %s", s.Version(), root)
		if dir, err := toolchain.LocateToolsDir(root, s.Config().ToolsVersion); err != nil {
			d.fail(err)
		} else {
			d.ok("MSVC tools at %s", dir)
		}
	}

	fmt.Fprintln(d.out, "SDK check:")
	sdk, sdkErr := s.LocateSDK()
	if sdkErr != nil {
		d.fail(sdkErr)
	} else {
		d.ok("Windows SDK found at %s", sdk)
		checkRegistry(d, reg, sdk)
		checkSDKFiles(d, a)
	}

	fmt.Fprintln(d.out, "Runtime check:")
	dirs := s.RuntimeDirs()
	if len(dirs) == 0 {
		d.info("no system runtime directories on %s", s.Host().OS)
	}
	for _, dir := range dirs {
		if info, err := os.Stat(dir); err != nil || !info.IsDir() {
			d.warn("runtime directory %s not found", dir)
			continue
		}
		d.ok("runtime directory %s", dir)
	}
}

func checkRegistry(d *doctor, reg registry.Reader, sdk string) {
	root, found, err := reg.Get(kitsRootKey, kitsRootValue)
	var cfgErr *registry.ConfigurationError
	switch {
	case errors.As(err, &cfgErr):
		d.info("registry cross-check skipped: %v", err)
	case err != nil:
		d.fail(err)
	case !found:
		d.warn("%s\\%s is not set; the SDK may not be registered", kitsRootKey, kitsRootValue)
	case !strings.EqualFold(toolchain.NormalizePath(root), sdk):
		d.warn("registry %s is %s but %s is in use", kitsRootValue, toolchain.NormalizePath(root), sdk)
	default:
		d.ok("registry %s matches", kitsRootValue)
	}
}

func checkSDKFiles(d *doctor, a *app) {
	copier, err := redist.New(a.session, nil)
	if err != nil {
		d.fail(err)
		return
	}
	for _, arch := range []redist.Arch{redist.ArchX86, redist.ArchX64} {
		if shims, err := copier.Redistributables(arch); err != nil {
			d.fail(err)
		} else {
			d.ok("%d UCRT redistributable(s) for %s", len(shims), arch)
		}
		if path, err := copier.DebugHelper(arch); err != nil {
			d.fail(err)
		} else {
			d.ok("debug helper %s", path)
		}
	}
}
