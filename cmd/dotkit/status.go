package main

import (
	"github.com/arthur-debert/dotkit/pkg/linker"
	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status [packages...]",
	Short: "Show the deployment state of every link",
	Long: `Status lists each declared link pair and what install would do with
it. It never mutates the filesystem.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := newRuntime()
		if err != nil {
			return err
		}

		pkgs, err := rt.discover(args)
		if err != nil {
			return err
		}

		// Repair planning is read-only and computes exactly the
		// per-pair state/action breakdown we want to show
		plan := linker.New(rt.fs, rt.paths, rt.cfg).PlanRepair(pkgs)
		rt.print(rt.renderer.RenderPlan(plan))

		return nil
	},
}
