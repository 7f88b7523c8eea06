package main

import (
	"fmt"

	"github.com/arthur-debert/dotkit/pkg/executor"
	"github.com/arthur-debert/dotkit/pkg/linker"
	"github.com/spf13/cobra"
)

var uninstallDryRun bool

var uninstallCmd = &cobra.Command{
	Use:   "uninstall [packages...]",
	Short: "Remove dotkit-owned symlinks",
	Long: `Uninstall removes the links a package deployed. Only symlinks that
point into the dotfiles tree are touched; foreign files at declared
targets are left alone.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := newRuntime()
		if err != nil {
			return err
		}

		pkgs, err := rt.discover(args)
		if err != nil {
			return err
		}

		plan := linker.New(rt.fs, rt.paths, rt.cfg).PlanUninstall(pkgs)
		rt.print(fmt.Sprintf("%d links to remove", plan.Changes()))

		return executor.New(rt.fs, uninstallDryRun).Execute(plan.Operations)
	},
}

func init() {
	uninstallCmd.Flags().BoolVar(&uninstallDryRun, "dry-run", false, "Preview changes without executing them")
}
