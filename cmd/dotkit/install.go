package main

import (
	"github.com/arthur-debert/dotkit/pkg/executor"
	"github.com/arthur-debert/dotkit/pkg/linker"
	"github.com/spf13/cobra"
)

var (
	installAdopt  bool
	installForce  bool
	installBackup bool
	installDryRun bool
)

var installCmd = &cobra.Command{
	Use:   "install [packages...]",
	Short: "Create symlinks for packages",
	Long: `Install walks the declared packages and links their files into the
home directory or XDG config directory, reporting a conflict for any
target already occupied by content dotkit does not manage.

If no packages are specified, all packages under the dotfiles root are
installed. Re-running install is a no-op for links that are already
correct.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := newRuntime()
		if err != nil {
			return err
		}

		pkgs, err := rt.discover(args)
		if err != nil {
			return err
		}

		mode := linker.ModeDefault
		switch {
		case installAdopt:
			mode = linker.ModeAdopt
		case installForce:
			mode = linker.ModeForce
		}

		plan := linker.New(rt.fs, rt.paths, rt.cfg).
			PlanInstall(pkgs, linker.Options{Mode: mode, Backup: installBackup})

		rt.print(rt.renderer.RenderPlan(plan))

		if err := executor.New(rt.fs, installDryRun).Execute(plan.Operations); err != nil {
			return err
		}

		// Conflicted pairs fail the call even though the rest linked
		return plan.Err()
	},
}

func init() {
	installCmd.Flags().BoolVar(&installAdopt, "adopt", false, "Preserve foreign target content by adopting it into the package, then link")
	installCmd.Flags().BoolVar(&installForce, "force", false, "Discard foreign target content and link")
	installCmd.Flags().BoolVar(&installBackup, "backup", false, "Back up foreign targets before replacing them (with --force)")
	installCmd.Flags().BoolVar(&installDryRun, "dry-run", false, "Preview changes without executing them")
	installCmd.MarkFlagsMutuallyExclusive("adopt", "force")
}
