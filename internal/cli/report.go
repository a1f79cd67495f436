package cli

import (
	"encoding/json"
	"fmt"

	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"
)

// Report output formats.
const (
	formatGN   = "gn"
	formatJSON = "json"
	formatTOML = "toml"
)

func newReportCmd(a *app) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:     "get-toolchain-dir",
		Aliases: []string{"get_toolchain_dir"},
		Short:   "Print the discovered toolchain locations",
		Long: `Print the Visual Studio, Windows SDK and runtime locations for the GN build
generator as key = "value" lines. Use --format to emit JSON or TOML instead.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			report, err := a.session.Report()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			switch format {
			case formatGN:
				return report.WriteGN(out)
			case formatJSON:
				data, err := json.MarshalIndent(report, "", "  ")
				if err != nil {
					return fmt.Errorf("marshaling report: %w", err)
				}
				_, err = fmt.Fprintln(out, string(data))
				return err
			case formatTOML:
				if err := toml.NewEncoder(out).Encode(report); err != nil {
					return fmt.Errorf("encoding report: %w", err)
				}
				return nil
			default:
				return fmt.Errorf("unknown format %q: expected %s, %s or %s", format, formatGN, formatJSON, formatTOML)
			}
		},
	}

	cmd.Flags().StringVar(&format, "format", formatGN, "Output format (gn, json, toml)")
	return cmd
}
