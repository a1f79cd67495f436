package cli

import (
	"fmt"

	"github.com/polonite/vstoolchain/internal/toolchain"
	"github.com/spf13/cobra"
)

func newToolsDirCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "tools-dir",
		Short: "Print the versioned MSVC tools bin directory",
		Long: `Print <toolchain>/VC/Tools/MSVC/<14.x.y>/bin. When several tool versions are
installed, pick one with VSTOOLCHAIN_MSVC_TOOLS_VERSION (a semver constraint).`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			root, err := a.session.LocateToolchain()
			if err != nil {
				return err
			}
			dir, err := toolchain.LocateToolsDir(root, a.session.Config().ToolsVersion)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), dir)
			return nil
		},
	}
}
