// Package linker plans symlink deployment for packages: install,
// repair and uninstall. Planning is read-only; the resulting
// operations are applied by pkg/executor.
package linker

import (
	"io/fs"
	"path/filepath"
	"strings"
	"time"

	"github.com/arthur-debert/dotkit/pkg/config"
	"github.com/arthur-debert/dotkit/pkg/errors"
	"github.com/arthur-debert/dotkit/pkg/logging"
	"github.com/arthur-debert/dotkit/pkg/paths"
	"github.com/arthur-debert/dotkit/pkg/types"
	"github.com/rs/zerolog"
)

// Mode controls how foreign targets are handled
type Mode int

const (
	// ModeDefault fails a pair whose target is foreign content
	ModeDefault Mode = iota

	// ModeAdopt preserves the foreign content by copying it over the
	// package source, then links
	ModeAdopt

	// ModeForce discards the foreign content and links
	ModeForce
)

// PairState classifies the current target of a link pair
type PairState string

const (
	// StateMissing means the target does not exist
	StateMissing PairState = "missing"

	// StateLinked means the target is already the correct symlink
	StateLinked PairState = "linked"

	// StateBroken means the target is a dotkit-owned symlink that is
	// dangling or points at the wrong source
	StateBroken PairState = "broken"

	// StateForeign means the target is occupied by content dotkit
	// does not own
	StateForeign PairState = "foreign"
)

// Action is what the plan decided to do with a pair
type Action string

const (
	ActionLink     Action = "link"
	ActionNone     Action = "none"
	ActionRelink   Action = "relink"
	ActionAdopt    Action = "adopt"
	ActionReplace  Action = "replace"
	ActionConflict Action = "conflict"
	ActionUnlink   Action = "unlink"
)

// PairResult is the per-pair outcome of planning
type PairResult struct {
	Package string
	Pair    types.LinkPair
	State   PairState
	Action  Action
	Err     error
}

// Plan holds planned operations plus per-pair results. The overall
// plan fails only if any pair failed.
type Plan struct {
	Operations []types.Operation
	Results    []PairResult
}

// Changes counts pairs that require filesystem mutation
func (p *Plan) Changes() int {
	n := 0
	for _, r := range p.Results {
		switch r.Action {
		case ActionLink, ActionRelink, ActionAdopt, ActionReplace, ActionUnlink:
			n++
		}
	}
	return n
}

// Err returns the first pair failure, or nil
func (p *Plan) Err() error {
	for _, r := range p.Results {
		if r.Err != nil {
			return r.Err
		}
	}
	return nil
}

// Options control planning behavior
type Options struct {
	Mode Mode

	// Backup copies a foreign target into the backups directory
	// before it is replaced in force mode
	Backup bool
}

// Linker plans link deployment for packages
type Linker struct {
	fs     types.FS
	paths  paths.Paths
	cfg    *config.Config
	logger zerolog.Logger
}

// New creates a Linker
func New(filesystem types.FS, p paths.Paths, cfg *config.Config) *Linker {
	return &Linker{
		fs:     filesystem,
		paths:  p,
		cfg:    cfg,
		logger: logging.GetLogger("linker"),
	}
}

// PlanInstall plans installation of the given packages. Re-planning
// after a successful install yields zero changes.
func (l *Linker) PlanInstall(pkgs []types.Package, opts Options) *Plan {
	plan := &Plan{}
	stamp := time.Now().Format("20060102-150405")

	for _, pkg := range pkgs {
		for _, pair := range pkg.Pairs {
			result := l.planPair(pkg.Name, pair, opts, stamp, plan)
			plan.Results = append(plan.Results, result)
		}
	}

	return plan
}

// PlanRepair is install planning in default mode: missing and broken
// links are restored through the exact same path as a fresh install,
// correct links are untouched.
func (l *Linker) PlanRepair(pkgs []types.Package) *Plan {
	return l.PlanInstall(pkgs, Options{Mode: ModeDefault})
}

// PlanUninstall removes dotkit-owned links for the given packages.
// Foreign targets are left alone.
func (l *Linker) PlanUninstall(pkgs []types.Package) *Plan {
	plan := &Plan{}

	for _, pkg := range pkgs {
		for _, pair := range pkg.Pairs {
			state := l.Classify(pair)
			result := PairResult{Package: pkg.Name, Pair: pair, State: state, Action: ActionNone}

			switch state {
			case StateLinked, StateBroken:
				result.Action = ActionUnlink
				plan.Operations = append(plan.Operations, types.Operation{
					Type:        types.OperationDeleteFile,
					Target:      pair.Target,
					Status:      types.StatusReady,
					Package:     pkg.Name,
					Description: "remove link " + pair.Target,
				})
			}

			plan.Results = append(plan.Results, result)
		}
	}

	return plan
}

// Classify inspects the current state of a pair's target
func (l *Linker) Classify(pair types.LinkPair) PairState {
	info, err := l.fs.Lstat(pair.Target)
	if err != nil {
		return StateMissing
	}

	if info.Mode()&fs.ModeSymlink == 0 {
		return StateForeign
	}

	dest, err := l.fs.Readlink(pair.Target)
	if err != nil {
		return StateForeign
	}
	if !filepath.IsAbs(dest) {
		dest = filepath.Join(filepath.Dir(pair.Target), dest)
	}
	dest = filepath.Clean(dest)

	if dest == filepath.Clean(pair.Source) {
		// Correct link, but the source itself may have gone away
		if _, err := l.fs.Stat(pair.Target); err != nil {
			return StateBroken
		}
		return StateLinked
	}

	// A link into the dotfiles tree is ours; anything else is foreign
	if inDotfiles, _ := l.paths.IsInDotfiles(dest); inDotfiles {
		return StateBroken
	}

	return StateForeign
}

// planPair decides what to do with one pair and appends its operations
func (l *Linker) planPair(pkgName string, pair types.LinkPair, opts Options, stamp string, plan *Plan) PairResult {
	result := PairResult{Package: pkgName, Pair: pair}

	if rel := l.homeRel(pair.Target); rel != "" && l.cfg.IsProtectedPath(rel) {
		result.State = l.Classify(pair)
		result.Action = ActionConflict
		result.Err = errors.Newf(errors.ErrPermission,
			"target %s is a protected path", pair.Target)
		return result
	}

	result.State = l.Classify(pair)

	switch result.State {
	case StateLinked:
		result.Action = ActionNone

	case StateMissing:
		result.Action = ActionLink
		l.appendLinkOps(plan, pkgName, pair, false)

	case StateBroken:
		result.Action = ActionRelink
		l.appendLinkOps(plan, pkgName, pair, true)

	case StateForeign:
		switch opts.Mode {
		case ModeAdopt:
			result.Action = ActionAdopt
			// Foreign bytes become the package source's bytes
			plan.Operations = append(plan.Operations, types.Operation{
				Type:        types.OperationCopyFile,
				Source:      pair.Target,
				Target:      pair.Source,
				Status:      types.StatusReady,
				Package:     pkgName,
				Description: "adopt " + pair.Target + " into " + pair.Source,
			})
			l.appendLinkOps(plan, pkgName, pair, true)

		case ModeForce:
			result.Action = ActionReplace
			if opts.Backup {
				backup := filepath.Join(l.paths.BackupsDir(), stamp, filepath.Base(pair.Target))
				plan.Operations = append(plan.Operations, types.Operation{
					Type:        types.OperationBackupFile,
					Source:      pair.Target,
					Target:      backup,
					Status:      types.StatusReady,
					Package:     pkgName,
					Description: "back up " + pair.Target + " to " + backup,
				})
			}
			l.appendLinkOps(plan, pkgName, pair, true)

		default:
			result.Action = ActionConflict
			result.Err = errors.Newf(errors.ErrConflict,
				"target %s already exists and is not managed by dotkit", pair.Target).
				WithDetail("package", pkgName).
				WithDetail("target", pair.Target)
			plan.Operations = append(plan.Operations, types.Operation{
				Type:        types.OperationCreateSymlink,
				Source:      pair.Source,
				Target:      pair.Target,
				Status:      types.StatusConflict,
				Package:     pkgName,
				Description: "conflict at " + pair.Target,
			})
		}
	}

	l.logger.Debug().
		Str("package", pkgName).
		Str("target", pair.Target).
		Str("state", string(result.State)).
		Str("action", string(result.Action)).
		Msg("Pair planned")

	return result
}

// appendLinkOps emits the operations to create one link, including
// the parent directory when missing and the removal of the occupied
// target when replacing.
func (l *Linker) appendLinkOps(plan *Plan, pkgName string, pair types.LinkPair, removeExisting bool) {
	if removeExisting {
		plan.Operations = append(plan.Operations, types.Operation{
			Type:        types.OperationDeleteFile,
			Target:      pair.Target,
			Status:      types.StatusReady,
			Package:     pkgName,
			Description: "remove " + pair.Target,
		})
	}

	parent := filepath.Dir(pair.Target)
	if _, err := l.fs.Lstat(parent); err != nil {
		plan.Operations = append(plan.Operations, types.Operation{
			Type:        types.OperationCreateDir,
			Target:      parent,
			Status:      types.StatusReady,
			Package:     pkgName,
			Description: "create directory " + parent,
		})
	}

	plan.Operations = append(plan.Operations, types.Operation{
		Type:        types.OperationCreateSymlink,
		Source:      pair.Source,
		Target:      pair.Target,
		Status:      types.StatusReady,
		Package:     pkgName,
		Description: "link " + pair.Target + " -> " + pair.Source,
	})
}

// homeRel returns the target path relative to the home directory, or
// "" when the target is outside it
func (l *Linker) homeRel(target string) string {
	rel, err := filepath.Rel(l.paths.HomeDir(), target)
	if err != nil || strings.HasPrefix(rel, "..") {
		return ""
	}
	return rel
}
