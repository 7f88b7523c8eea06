// Package executor applies planned operations to the filesystem
// through a synthfs pipeline.
package executor

import (
	"context"
	"fmt"
	"io/fs"
	"path/filepath"
	"time"

	"github.com/arthur-debert/dotkit/pkg/errors"
	"github.com/arthur-debert/dotkit/pkg/logging"
	"github.com/arthur-debert/dotkit/pkg/types"
	"github.com/arthur-debert/synthfs/pkg/synthfs"
	"github.com/arthur-debert/synthfs/pkg/synthfs/core"
	"github.com/arthur-debert/synthfs/pkg/synthfs/filesystem"
	"github.com/arthur-debert/synthfs/pkg/synthfs/operations"
	"github.com/rs/zerolog"
)

// Executor executes dotkit operations using synthfs
type Executor struct {
	logger     zerolog.Logger
	dryRun     bool
	fs         types.FS
	filesystem synthfs.FileSystem
}

// New creates a new synthfs-based executor. The types.FS is used for
// the removals and copies that must happen before the pipeline runs;
// synthfs validates creation ops against the pre-existing tree.
func New(filesystemIface types.FS, dryRun bool) *Executor {
	return &Executor{
		logger:     logging.GetLogger("executor"),
		dryRun:     dryRun,
		fs:         filesystemIface,
		filesystem: filesystem.NewOSFileSystem("/"),
	}
}

// Execute applies a list of operations. Operations whose status is
// not ready are skipped. Backups, adoption copies and removals run
// first, in plan order; directory and symlink creation runs through
// the synthfs pipeline.
func (e *Executor) Execute(ops []types.Operation) error {
	if e.dryRun {
		e.logger.Info().Msg("Dry run mode - operations would be executed:")
		for _, op := range ops {
			if op.Status == types.StatusReady {
				e.logOperation(op)
			}
		}
		return nil
	}

	var creates []types.Operation
	for _, op := range ops {
		if op.Status != types.StatusReady {
			e.logger.Debug().
				Str("type", string(op.Type)).
				Str("target", op.Target).
				Str("status", string(op.Status)).
				Msg("Skipping operation with non-ready status")
			continue
		}

		switch op.Type {
		case types.OperationCopyFile, types.OperationBackupFile:
			if err := e.copyFile(op); err != nil {
				return err
			}
		case types.OperationDeleteFile:
			if err := e.fs.Remove(op.Target); err != nil {
				return errors.Wrapf(err, errors.ErrLinkExecute,
					"failed to remove %s", op.Target)
			}
		default:
			creates = append(creates, op)
		}
	}

	return e.runPipeline(creates)
}

// copyFile copies op.Source to op.Target, creating parent directories
func (e *Executor) copyFile(op types.Operation) error {
	data, err := e.fs.ReadFile(op.Source)
	if err != nil {
		return errors.Wrapf(err, errors.ErrFileAccess,
			"failed to read %s", op.Source)
	}
	if err := e.fs.MkdirAll(filepath.Dir(op.Target), 0755); err != nil {
		return errors.Wrapf(err, errors.ErrDirCreate,
			"failed to create %s", filepath.Dir(op.Target))
	}
	if err := e.fs.WriteFile(op.Target, data, 0644); err != nil {
		return errors.Wrapf(err, errors.ErrFileWrite,
			"failed to write %s", op.Target)
	}

	e.logger.Debug().
		Str("source", op.Source).
		Str("target", op.Target).
		Msg("Copied file")
	return nil
}

// runPipeline executes creation operations through synthfs
func (e *Executor) runPipeline(ops []types.Operation) error {
	synthOps := make([]synthfs.Operation, 0, len(ops))
	for _, op := range ops {
		synthOp, err := e.convert(op)
		if err != nil {
			return errors.Wrapf(err, errors.ErrLinkExecute,
				"failed to convert operation: %s", op.Description)
		}
		synthOps = append(synthOps, synthOp)
	}

	if len(synthOps) == 0 {
		e.logger.Debug().Msg("No creation operations to execute")
		return nil
	}

	pipeline := synthfs.NewMemPipeline()
	for _, op := range synthOps {
		if err := pipeline.Add(op); err != nil {
			return errors.Wrapf(err, errors.ErrLinkExecute,
				"failed to add operation to pipeline")
		}
	}

	ctx := context.Background()
	runner := synthfs.NewExecutor()

	e.logger.Info().Int("operationCount", len(synthOps)).Msg("Executing operations")

	result := runner.Run(ctx, pipeline, e.filesystem)
	if result.GetError() != nil {
		e.logger.Error().Err(result.GetError()).Msg("Pipeline execution failed")
		return errors.Wrapf(result.GetError(), errors.ErrLinkExecute,
			"failed to execute operations")
	}

	return nil
}

// convert turns a dotkit creation operation into a synthfs operation
func (e *Executor) convert(op types.Operation) (synthfs.Operation, error) {
	switch op.Type {
	case types.OperationCreateDir:
		return e.convertCreateDir(op)
	case types.OperationCreateSymlink:
		return e.convertCreateSymlink(op)
	default:
		return nil, errors.Newf(errors.ErrInvalidInput,
			"unsupported operation type: %s", op.Type)
	}
}

func (e *Executor) convertCreateDir(op types.Operation) (synthfs.Operation, error) {
	if op.Target == "" {
		return nil, errors.New(errors.ErrInvalidInput,
			"create directory operation requires target")
	}

	mode := fs.FileMode(0755)
	if op.Mode != nil {
		mode = fs.FileMode(*op.Mode)
	}

	// synthfs works with paths relative to its root
	relPath, err := filepath.Rel("/", op.Target)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrInvalidInput,
			"failed to convert path: %s", op.Target)
	}

	opID := core.OperationID(fmt.Sprintf("create-dir-%s", op.Target))
	createOp := operations.NewCreateDirectoryOperation(opID, relPath)
	createOp.SetItem(&directoryItem{
		path: relPath,
		mode: mode,
	})

	return synthfs.NewOperationsPackageAdapter(createOp), nil
}

func (e *Executor) convertCreateSymlink(op types.Operation) (synthfs.Operation, error) {
	if op.Source == "" || op.Target == "" {
		return nil, errors.New(errors.ErrInvalidInput,
			"symlink operation requires source and target")
	}

	relPath, err := filepath.Rel("/", op.Target)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrInvalidInput,
			"failed to convert path: %s", op.Target)
	}

	// synthfs joins the destination with its root ("/") and rejects
	// absolute paths, so convert; the written link stays absolute and
	// survives relocation of the working directory
	relSource, err := filepath.Rel("/", op.Source)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrInvalidInput,
			"failed to convert path: %s", op.Source)
	}

	opID := core.OperationID(fmt.Sprintf("symlink-%s", op.Target))
	symlinkOp := operations.NewCreateSymlinkOperation(opID, relPath)

	symlinkOp.SetDescriptionDetail("target", relSource)
	symlinkOp.SetItem(&symlinkItem{
		path:   relPath,
		target: relSource,
	})

	return synthfs.NewOperationsPackageAdapter(symlinkOp), nil
}

// logOperation logs details about an operation in dry-run mode
func (e *Executor) logOperation(op types.Operation) {
	logger := e.logger.With().
		Str("type", string(op.Type)).
		Str("description", op.Description).
		Logger()

	switch op.Type {
	case types.OperationCreateSymlink:
		logger.Info().
			Str("source", op.Source).
			Str("target", op.Target).
			Msg("Would create symlink")
	case types.OperationCreateDir:
		logger.Info().
			Str("target", op.Target).
			Msg("Would create directory")
	case types.OperationCopyFile, types.OperationBackupFile:
		logger.Info().
			Str("source", op.Source).
			Str("target", op.Target).
			Msg("Would copy file")
	case types.OperationDeleteFile:
		logger.Info().
			Str("target", op.Target).
			Msg("Would delete file")
	default:
		logger.Info().Msg("Would execute operation")
	}
}

// Item types for synthfs operations

type directoryItem struct {
	path string
	mode fs.FileMode
}

func (d *directoryItem) Path() string       { return d.path }
func (d *directoryItem) Type() string       { return "directory" }
func (d *directoryItem) Mode() fs.FileMode  { return d.mode }
func (d *directoryItem) IsDir() bool        { return true }
func (d *directoryItem) ModTime() time.Time { return time.Now() }
func (d *directoryItem) Size() int64        { return 0 }

type symlinkItem struct {
	path   string
	target string
}

func (s *symlinkItem) Path() string   { return s.path }
func (s *symlinkItem) Type() string   { return "symlink" }
func (s *symlinkItem) Target() string { return s.target }
