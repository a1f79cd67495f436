package cli

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/polonite/vstoolchain/internal/branding"
	"github.com/polonite/vstoolchain/internal/config"
	"github.com/polonite/vstoolchain/internal/filesync"
	"github.com/polonite/vstoolchain/internal/toolchain"
	"github.com/spf13/cobra"
)

type buildInfo struct {
	Version string
	Commit  string
	Date    string
}

// app holds the state shared by the commands of one invocation.
type app struct {
	build       buildInfo
	sessionOpts []toolchain.Option

	configFile string
	verbose    bool
	logLevel   string

	logger  *log.Logger
	session *toolchain.Session
}

// hinter is implemented by errors that carry a remediation hint.
type hinter interface {
	Hint() string
}

// Execute runs the root command with build info injected via ldflags.
// Errors are printed to stderr before being returned.
func Execute(version, commit, date string) error {
	cmd := newRootCmd(buildInfo{Version: version, Commit: commit, Date: date})
	err := cmd.Execute()
	if err != nil {
		printError(cmd.ErrOrStderr(), err)
	}
	return err
}

func newRootCmd(build buildInfo, opts ...toolchain.Option) *cobra.Command {
	a := &app{build: build, sessionOpts: opts}

	root := &cobra.Command{
		Use:   branding.CLIName(),
		Short: branding.Description(),
		Long: branding.DisplayName() + ` locates the installed Visual Studio toolchain and Windows SDK
and copies the runtime DLLs a build needs into its output directory.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return errors.New("expected one of: get-toolchain-dir, copy-dlls, tools-dir, doctor, version")
		},
	}

	root.PersistentFlags().StringVar(&a.configFile, "config", "", "Config file (default ~/"+branding.HomeDir()+"/config.yaml)")
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "Log every discovery step and copy")
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "Log level (debug, info, warn, error)")

	root.AddCommand(
		newReportCmd(a),
		newCopyDLLsCmd(a),
		newToolsDirCmd(a),
		newDoctorCmd(a),
		newVersionCmd(a),
	)
	return root
}

// setup loads configuration and builds the logger and session.
func (a *app) setup(cmd *cobra.Command) error {
	cfg, err := config.Load(config.LoadOptions{ConfigFile: a.configFile})
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("verbose") {
		cfg.Verbose = a.verbose
	}
	if a.logLevel != "" {
		cfg.LogLevel = a.logLevel
	}

	level, err := log.ParseLevel(cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("invalid log level %q: %w", cfg.LogLevel, err)
	}
	if cfg.Verbose {
		level = log.DebugLevel
	}

	a.logger = log.NewWithOptions(cmd.ErrOrStderr(), log.Options{
		Prefix: branding.CLIName(),
		Level:  level,
	})
	opts := append([]toolchain.Option{toolchain.WithLogger(a.logger)}, a.sessionOpts...)
	a.session = toolchain.NewSession(cfg, opts...)
	return nil
}

func (a *app) syncer() *filesync.Syncer {
	return filesync.New(a.logger)
}

func printError(w io.Writer, err error) {
	if w == nil {
		w = os.Stderr
	}
	fmt.Fprintf(w, "Error: %v\n", err)
	var h hinter
	if errors.As(err, &h) {
		if hint := h.Hint(); hint != "" {
			fmt.Fprintf(w, "  • %s\n", hint)
		}
	}
}
