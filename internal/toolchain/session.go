package toolchain

import (
	"io"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/polonite/vstoolchain/internal/config"
)

// DefaultSDKDir is probed when WINDOWSSDKDIR is not set.
const DefaultSDKDir = `C:\Program Files (x86)\Windows Kits\10`

// installCandidates lists the conventional install locations per version label.
var installCandidates = map[string][]string{
	"2017": {
		`C:\Program Files (x86)\Microsoft Visual Studio\2017\Professional`,
		`C:\Program Files (x86)\Microsoft Visual Studio\2017\Community`,
	},
}

// SupportedVersions returns the accepted toolchain version labels.
func SupportedVersions() []string {
	versions := make([]string, 0, len(installCandidates))
	for v := range installCandidates {
		versions = append(versions, v)
	}
	sort.Strings(versions)
	return versions
}

// Host identifies the platform the session resolves paths for.
type Host struct {
	OS   string
	Arch string
}

// IsWindows reports whether the host is Windows.
func (h Host) IsWindows() bool { return h.OS == "windows" }

// Is64Bit reports whether the host process is 64-bit.
func (h Host) Is64Bit() bool { return strings.HasSuffix(h.Arch, "64") }

// Option configures a Session.
type Option func(*Session)

// WithHost overrides the detected GOOS/GOARCH.
func WithHost(goos, goarch string) Option {
	return func(s *Session) { s.host = Host{OS: goos, Arch: goarch} }
}

// WithLogger sets the logger used for discovery messages.
func WithLogger(logger *log.Logger) Option {
	return func(s *Session) { s.logger = logger }
}

// WithInstallCandidates replaces the conventional install locations for version.
func WithInstallCandidates(version string, paths ...string) Option {
	return func(s *Session) { s.installCandidates[version] = paths }
}

// WithDefaultSDKDir replaces the SDK location probed when no override is set.
func WithDefaultSDKDir(path string) Option {
	return func(s *Session) { s.defaultSDKDir = path }
}

// Session resolves toolchain locations for one invocation.
type Session struct {
	cfg               *config.Config
	host              Host
	logger            *log.Logger
	installCandidates map[string][]string
	defaultSDKDir     string

	toolchainRoot string
	sdkRoot       string
}

// NewSession creates a Session for cfg.
func NewSession(cfg *config.Config, opts ...Option) *Session {
	if cfg == nil {
		cfg = &config.Config{}
	}
	s := &Session{
		cfg:               cfg,
		host:              Host{OS: runtime.GOOS, Arch: runtime.GOARCH},
		logger:            log.New(io.Discard),
		installCandidates: make(map[string][]string, len(installCandidates)),
		defaultSDKDir:     DefaultSDKDir,
	}
	for v, paths := range installCandidates {
		s.installCandidates[v] = paths
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Config returns the configuration the session was created with.
func (s *Session) Config() *config.Config { return s.cfg }

// Host returns the platform the session resolves paths for.
func (s *Session) Host() Host { return s.host }

// Version returns the configured toolchain version label.
func (s *Session) Version() string {
	if s.cfg.ToolchainVersion == "" {
		return config.DefaultToolchainVersion
	}
	return s.cfg.ToolchainVersion
}

// LocateToolchain returns the toolchain root. It tries, in order, a root
// pre-resolved by the caller (GN_MSVS_OVERRIDE_PATH), the vs2017_install
// override and the conventional install locations, using the first path that
// exists. The result is memoized for the session.
func (s *Session) LocateToolchain() (string, error) {
	version := s.Version()
	candidates, ok := s.installCandidates[version]
	if !ok {
		return "", &UnsupportedVersionError{Version: version, Supported: SupportedVersions()}
	}
	if s.toolchainRoot != "" {
		return s.toolchainRoot, nil
	}

	ordered := append([]string{s.cfg.ToolchainPath, s.cfg.InstallOverride}, candidates...)
	var tried []string
	for _, path := range ordered {
		if path == "" {
			continue
		}
		tried = append(tried, path)
		if exists(path) {
			s.logger.Debug("found Visual Studio", "version", version, "path", path)
			s.toolchainRoot = path
			return path, nil
		}
		s.logger.Debug("Visual Studio candidate missing", "path", path)
	}
	return "", &ToolchainNotFoundError{Version: version, Tried: tried}
}

// LocateSDK returns the Windows SDK root with trailing separators removed.
// WINDOWSSDKDIR is used as given; otherwise the default location is adopted
// if it is a directory. The result is memoized for the session.
func (s *Session) LocateSDK() (string, error) {
	if s.sdkRoot != "" {
		return s.sdkRoot, nil
	}

	dir := s.cfg.SDKDir
	if dir == "" {
		if !isDir(s.defaultSDKDir) {
			return "", &SdkNotFoundError{Default: s.defaultSDKDir}
		}
		s.logger.Debug("using default Windows SDK", "path", s.defaultSDKDir)
		dir = s.defaultSDKDir
	}
	s.sdkRoot = NormalizePath(dir)
	return s.sdkRoot, nil
}

// RuntimeDirs returns the system directories holding the 64-bit and 32-bit
// runtime DLLs, in that order, or nil when the host is not Windows. A 32-bit
// process reaches the 64-bit System32 through Sysnative.
func (s *Session) RuntimeDirs() []string {
	if !s.host.IsWindows() {
		return nil
	}
	root := s.cfg.SystemRoot
	if root == "" {
		root = config.DefaultSystemRoot
	}
	x64 := "System32"
	if !s.host.Is64Bit() {
		x64 = "Sysnative"
	}
	return []string{filepath.Join(root, x64), filepath.Join(root, "SysWOW64")}
}

// NormalizePath strips trailing path separators of either flavour.
func NormalizePath(path string) string {
	trimmed := strings.TrimRight(path, `\/`)
	if trimmed == "" && path != "" {
		return path[:1]
	}
	return trimmed
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
