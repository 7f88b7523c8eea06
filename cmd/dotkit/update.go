package main

import (
	"fmt"

	"github.com/arthur-debert/dotkit/pkg/doctor"
	"github.com/arthur-debert/dotkit/pkg/executor"
	"github.com/arthur-debert/dotkit/pkg/gitsync"
	"github.com/arthur-debert/dotkit/pkg/inject"
	"github.com/arthur-debert/dotkit/pkg/linker"
	"github.com/arthur-debert/dotkit/pkg/types"
	"github.com/arthur-debert/dotkit/pkg/update"
	"github.com/spf13/cobra"
)

var (
	updateForce  bool
	updateBackup bool
)

var updateCmd = &cobra.Command{
	Use:   "update",
	Short: "Sync the repository and redeploy everything",
	Long: `Update runs the full pipeline in strict sequence: repository sync,
link installation, template injection and validation. The pipeline
halts at the first failing stage and reports it; completed stages are
not rolled back, so re-running update after fixing the cause is the
recovery path.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := newRuntime()
		if err != nil {
			return err
		}

		// Discovered after sync so freshly pulled files are included
		var pkgs []types.Package

		mode := linker.ModeDefault
		if updateForce {
			mode = linker.ModeForce
		}

		pipeline := update.NewPipeline().
			Add(update.StageSync, func() error {
				result, err := gitsync.Sync(rt.paths.DotfilesRoot())
				if err != nil {
					return err
				}
				if result.Skipped {
					rt.print("sync skipped: " + result.Reason)
				}
				return nil
			}).
			Add(update.StageInstall, func() error {
				pkgs, err = rt.discover(nil)
				if err != nil {
					return err
				}
				plan := linker.New(rt.fs, rt.paths, rt.cfg).
					PlanInstall(pkgs, linker.Options{Mode: mode, Backup: updateBackup})
				if err := executor.New(rt.fs, false).Execute(plan.Operations); err != nil {
					return err
				}
				return plan.Err()
			}).
			Add(update.StageInject, func() error {
				changed, err := inject.New(rt.fs, rt.resolver()).InjectAll(pkgs)
				if err != nil {
					return err
				}
				rt.print(fmt.Sprintf("%d templates rendered", changed))
				return nil
			}).
			Add(update.StageValidate, func() error {
				report := doctor.NewRunner(
					&doctor.SymlinkCheck{Linker: linker.New(rt.fs, rt.paths, rt.cfg), Packages: pkgs},
					&doctor.SyntaxCheck{FS: rt.fs, Packages: pkgs},
					&doctor.ToolsCheck{Tools: rt.cfg.Doctor.Tools},
					&doctor.SecretsCheck{FS: rt.fs, Resolver: rt.resolver(), Packages: pkgs},
				).Run()
				rt.print(rt.renderer.RenderReport(report))
				if report.HasFailures() {
					return fmt.Errorf("validation reported failures")
				}
				return nil
			})

		if failure := pipeline.Run(); failure != nil {
			return failure
		}

		rt.print("update complete")
		return nil
	},
}

func init() {
	updateCmd.Flags().BoolVar(&updateForce, "force", false, "Replace foreign targets instead of reporting conflicts")
	updateCmd.Flags().BoolVar(&updateBackup, "backup", false, "Back up foreign targets before replacing them")
}
