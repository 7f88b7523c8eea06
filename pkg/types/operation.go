package types

// OperationType identifies the kind of filesystem mutation
type OperationType string

const (
	OperationCreateDir     OperationType = "create_dir"
	OperationCreateSymlink OperationType = "create_symlink"
	OperationCopyFile      OperationType = "copy_file"
	OperationDeleteFile    OperationType = "delete_file"
	OperationBackupFile    OperationType = "backup_file"
)

// OperationStatus tracks whether an operation should run
type OperationStatus string

const (
	StatusReady    OperationStatus = "ready"
	StatusSkipped  OperationStatus = "skipped"
	StatusConflict OperationStatus = "conflict"
)

// Operation is a single planned filesystem mutation. Operations are
// produced by planning and consumed by the executor; planning never
// touches the filesystem.
type Operation struct {
	Type        OperationType
	Source      string
	Target      string
	Mode        *uint32
	Status      OperationStatus
	Package     string
	Description string
}
