package main

import (
	"github.com/arthur-debert/dotkit/pkg/executor"
	"github.com/arthur-debert/dotkit/pkg/linker"
	"github.com/spf13/cobra"
)

var repairCmd = &cobra.Command{
	Use:   "repair [packages...]",
	Short: "Restore missing or broken symlinks",
	Long: `Repair recreates links that have gone missing or point at the wrong
place, through the exact same path as a fresh install, so the restored
link is identical to the original. Correct links are untouched and
foreign content is reported as a conflict, never replaced.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := newRuntime()
		if err != nil {
			return err
		}

		pkgs, err := rt.discover(args)
		if err != nil {
			return err
		}

		plan := linker.New(rt.fs, rt.paths, rt.cfg).PlanRepair(pkgs)
		rt.print(rt.renderer.RenderPlan(plan))

		if err := executor.New(rt.fs, false).Execute(plan.Operations); err != nil {
			return err
		}

		return plan.Err()
	},
}
