package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/polonite/vstoolchain/internal/branding"
	"github.com/spf13/viper"
)

const (
	fileName = "config"
	fileType = "yaml"
)

// Environment variables shared with the GN build generator. These keep their
// historical names and are not prefixed.
const (
	EnvToolchainPath    = "GN_MSVS_OVERRIDE_PATH"
	EnvToolchainVersion = "GN_MSVS_VERSION"
	EnvInstallOverride  = "vs2017_install"
	EnvSDKDir           = "WINDOWSSDKDIR"
	EnvWDKDir           = "WDK_DIR"
	EnvSystemRoot       = "SystemRoot"
)

// Config keys.
const (
	KeyToolchainPath    = "toolchain_path"
	KeyToolchainVersion = "toolchain_version"
	KeyInstallOverride  = "install_override"
	KeySDKDir           = "sdk_dir"
	KeyWDKDir           = "wdk_dir"
	KeySystemRoot       = "system_root"
	KeyToolsVersion     = "msvc_tools_version"
	KeyVerbose          = "verbose"
	KeyLogLevel         = "log_level"
)

// Defaults.
const (
	DefaultToolchainVersion = "2017"
	DefaultSystemRoot       = `C:\Windows`
	DefaultLogLevel         = "info"
)

// Config holds the resolved settings for one invocation.
type Config struct {
	// ToolchainPath is a toolchain root already resolved by the caller.
	ToolchainPath string
	// ToolchainVersion is the version label, e.g. "2017".
	ToolchainVersion string
	// InstallOverride is checked before the conventional install locations.
	InstallOverride string
	// SDKDir overrides the Windows SDK root.
	SDKDir string
	// WDKDir is passed through to the report untouched.
	WDKDir string
	// SystemRoot is the Windows directory holding System32 and SysWOW64.
	SystemRoot string
	// ToolsVersion pins the VC/Tools/MSVC/<version> directory when several are installed.
	ToolsVersion string

	Verbose  bool
	LogLevel string
}

// LoadOptions defines explicit configuration loading inputs.
type LoadOptions struct {
	// ConfigFile forces loading from a specific file. A missing file is an error.
	ConfigFile string
}

// Dir returns the path to the config directory (~/.vstoolchain/).
func Dir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", branding.HomeDir())
	}
	return filepath.Join(home, branding.HomeDir())
}

// FilePath returns the full path to the default config file.
func FilePath() string {
	return filepath.Join(Dir(), fileName+"."+fileType)
}

// Load reads the config file (if any) and the environment into a Config.
// Environment values take precedence over the file.
func Load(opts LoadOptions) (*Config, error) {
	v, err := newViper(opts)
	if err != nil {
		return nil, err
	}
	return fromViper(v), nil
}

func newViper(opts LoadOptions) (*viper.Viper, error) {
	v := viper.New()
	v.SetConfigType(fileType)
	v.SetEnvPrefix(branding.EnvPrefix())
	v.AutomaticEnv()

	bindings := map[string]string{
		KeyToolchainPath:    EnvToolchainPath,
		KeyToolchainVersion: EnvToolchainVersion,
		KeyInstallOverride:  EnvInstallOverride,
		KeySDKDir:           EnvSDKDir,
		KeyWDKDir:           EnvWDKDir,
		KeySystemRoot:       EnvSystemRoot,
	}
	for key, env := range bindings {
		if err := v.BindEnv(key, env); err != nil {
			return nil, fmt.Errorf("binding %s to %s: %w", key, env, err)
		}
	}

	v.SetDefault(KeyToolchainVersion, DefaultToolchainVersion)
	v.SetDefault(KeySystemRoot, DefaultSystemRoot)
	v.SetDefault(KeyLogLevel, DefaultLogLevel)

	path := opts.ConfigFile
	explicit := path != ""
	if !explicit {
		path = FilePath()
	}
	v.SetConfigFile(path)

	if err := v.ReadInConfig(); err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			return v, nil
		}
		return nil, fmt.Errorf("reading config file %s: %w", path, err)
	}
	return v, nil
}

func fromViper(v *viper.Viper) *Config {
	return &Config{
		ToolchainPath:    v.GetString(KeyToolchainPath),
		ToolchainVersion: v.GetString(KeyToolchainVersion),
		InstallOverride:  v.GetString(KeyInstallOverride),
		SDKDir:           v.GetString(KeySDKDir),
		WDKDir:           v.GetString(KeyWDKDir),
		SystemRoot:       v.GetString(KeySystemRoot),
		ToolsVersion:     v.GetString(KeyToolsVersion),
		Verbose:          v.GetBool(KeyVerbose),
		LogLevel:         v.GetString(KeyLogLevel),
	}
}
