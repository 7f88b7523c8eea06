// Package update sequences the stages of an update run: repository
// sync, link installation, template injection and validation.
package update

import (
	"fmt"

	"github.com/arthur-debert/dotkit/pkg/logging"
	"github.com/rs/zerolog"
)

// Stage names an update pipeline stage
type Stage string

const (
	StageSync     Stage = "sync"
	StageInstall  Stage = "install"
	StageInject   Stage = "inject"
	StageValidate Stage = "validate"
)

// StageFunc runs one stage. Each stage is idempotent; re-running a
// half-finished update is the supported recovery path.
type StageFunc func() error

// StageFailure reports which stage halted the pipeline
type StageFailure struct {
	Stage Stage
	Err   error
}

// Error implements the error interface
func (f *StageFailure) Error() string {
	return fmt.Sprintf("stage %s failed: %v", f.Stage, f.Err)
}

// Unwrap implements errors.Unwrap
func (f *StageFailure) Unwrap() error {
	return f.Err
}

// Pipeline runs stages in strict sequence, halting on the first
// failure. Completed stages are not rolled back.
type Pipeline struct {
	stages []stageEntry
	logger zerolog.Logger
}

type stageEntry struct {
	name Stage
	run  StageFunc
}

// NewPipeline creates an empty pipeline
func NewPipeline() *Pipeline {
	return &Pipeline{
		logger: logging.GetLogger("update"),
	}
}

// Add appends a stage
func (p *Pipeline) Add(name Stage, run StageFunc) *Pipeline {
	p.stages = append(p.stages, stageEntry{name: name, run: run})
	return p
}

// Run executes the pipeline. It returns a *StageFailure identifying
// the first failing stage, or nil when every stage succeeded.
func (p *Pipeline) Run() *StageFailure {
	for _, stage := range p.stages {
		done := logging.LogOperationStart(p.logger, string(stage.name))
		err := stage.run()
		done()

		if err != nil {
			p.logger.Error().
				Err(err).
				Str("stage", string(stage.name)).
				Msg("Stage failed, halting update")
			return &StageFailure{Stage: stage.name, Err: err}
		}

		p.logger.Info().Str("stage", string(stage.name)).Msg("Stage completed")
	}

	return nil
}
