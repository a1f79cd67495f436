package cli

import (
	"github.com/polonite/vstoolchain/internal/redist"
	"github.com/spf13/cobra"
)

func newCopyDLLsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "copy-dlls <target_dir> <Debug|Release> <x86|x64>",
		Aliases: []string{"copy_dlls"},
		Short:   "Copy the runtime DLLs into a build output directory",
		Long: `Copy the MSVC runtime, the UCRT API-set shims and dbghelp.dll into target_dir
when they are missing or out of date. Debug builds get both the release and the
debug runtime. Nothing is copied if target_dir does not exist.`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			targetDir := args[0]
			configuration, err := redist.ParseConfiguration(args[1])
			if err != nil {
				return err
			}
			arch, err := redist.ParseArch(args[2])
			if err != nil {
				return err
			}

			copier, err := redist.New(a.session, a.syncer())
			if err != nil {
				return err
			}
			return copier.CopyDLLs(targetDir, configuration, arch)
		},
	}
}
