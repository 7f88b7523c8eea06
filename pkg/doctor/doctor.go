// Package doctor validates a deployed configuration: symlink
// integrity, config file syntax, tool availability and secret
// reachability. Checks are independent; one failing check never
// prevents the others from running.
package doctor

import (
	"github.com/arthur-debert/dotkit/pkg/logging"
	"github.com/arthur-debert/dotkit/pkg/types"
	"github.com/rs/zerolog"
)

// Check is a single named validation producing one or more results
type Check interface {
	Name() string
	Run() []types.ValidationResult
}

// Runner executes an ordered list of independent checks
type Runner struct {
	checks []Check
	logger zerolog.Logger
}

// NewRunner creates a Runner
func NewRunner(checks ...Check) *Runner {
	return &Runner{
		checks: checks,
		logger: logging.GetLogger("doctor"),
	}
}

// Run executes every check and aggregates the results. No retries;
// the report carries warn rather than fail for transient external
// problems so network blips do not read as broken configs.
func (r *Runner) Run() *types.Report {
	report := &types.Report{}

	for _, check := range r.checks {
		done := logging.LogOperationStart(r.logger, check.Name())
		results := check.Run()
		done()

		for _, result := range results {
			r.logger.Debug().
				Str("check", check.Name()).
				Str("name", result.Name).
				Str("status", string(result.Status)).
				Msg("Check result")
			report.Add(result)
		}
	}

	return report
}
