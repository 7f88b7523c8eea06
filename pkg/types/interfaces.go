package types

import (
	"io/fs"
)

// FS is the filesystem interface required for dotkit operations
type FS interface {
	// File operations
	Stat(name string) (fs.FileInfo, error)
	ReadFile(name string) ([]byte, error)
	WriteFile(name string, data []byte, perm fs.FileMode) error

	// Directory operations
	MkdirAll(path string, perm fs.FileMode) error
	ReadDir(name string) ([]fs.DirEntry, error)

	// Symlink operations
	Symlink(oldname, newname string) error
	Readlink(name string) (string, error)
	Lstat(name string) (fs.FileInfo, error)

	// Other operations
	Remove(name string) error
	Rename(oldpath, newpath string) error
}

// Pather provides paths for dotkit operations
type Pather interface {
	// DotfilesRoot returns the root directory for dotfiles
	DotfilesRoot() string

	// HomeDir returns the target home directory
	HomeDir() string

	// XDGConfigDir returns the target XDG config directory
	XDGConfigDir() string

	// DataDir returns the XDG data directory for dotkit
	DataDir() string

	// StateDir returns the XDG state directory for dotkit
	StateDir() string

	// BackupsDir returns the directory foreign files are backed up into
	BackupsDir() string
}
