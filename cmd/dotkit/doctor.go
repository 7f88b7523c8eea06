package main

import (
	"fmt"

	"github.com/arthur-debert/dotkit/pkg/doctor"
	"github.com/arthur-debert/dotkit/pkg/linker"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var doctorForce bool

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Validate the deployed configuration",
	Long: `Doctor runs an ordered list of independent checks: symlink
integrity, config file syntax, tool availability and secret
reachability. A failing check does not stop the remaining checks;
the command exits non-zero if any check failed.

Runs are throttled by the configured interval so scheduled
invocations stay cheap; --force always runs.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := newRuntime()
		if err != nil {
			return err
		}

		throttle := &doctor.Throttle{Path: rt.paths.LastCheckPath()}
		if !doctorForce && !throttle.ShouldRun(rt.cfg.CheckInterval()) {
			rt.print("checked recently, skipping (use --force to run anyway)")
			return nil
		}

		pkgs, err := rt.discover(nil)
		if err != nil {
			return err
		}

		report := doctor.NewRunner(
			&doctor.SymlinkCheck{Linker: linker.New(rt.fs, rt.paths, rt.cfg), Packages: pkgs},
			&doctor.SyntaxCheck{FS: rt.fs, Packages: pkgs},
			&doctor.ToolsCheck{Tools: rt.cfg.Doctor.Tools},
			&doctor.SecretsCheck{FS: rt.fs, Resolver: rt.resolver(), Packages: pkgs},
		).Run()

		rt.print(rt.renderer.RenderReport(report))

		if err := throttle.Touch(); err != nil {
			log.Warn().Err(err).Msg("Failed to record last check time")
		}

		if report.HasFailures() {
			_, failed, _ := report.Counts()
			return fmt.Errorf("%d checks failed", failed)
		}
		return nil
	},
}

func init() {
	doctorCmd.Flags().BoolVar(&doctorForce, "force", false, "Run even if checked recently")
}
