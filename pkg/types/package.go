package types

import (
	"path/filepath"
)

// TargetRoot selects where a package's files are deployed.
type TargetRoot string

const (
	// TargetAuto maps top-level files to $HOME and subdirectories to
	// XDG_CONFIG_HOME.
	TargetAuto TargetRoot = ""

	// TargetHome deploys every file under $HOME with a dot prefix on
	// the first path segment.
	TargetHome TargetRoot = "home"

	// TargetXDG deploys every file under XDG_CONFIG_HOME, preserving
	// the package-relative path.
	TargetXDG TargetRoot = "xdg"
)

// LinkPair is a single (source file, target link) mapping.
// Both paths are absolute.
type LinkPair struct {
	Source string
	Target string
}

// Package represents a named directory of files to be deployed.
// Packages are declared statically by the repository tree and are
// never mutated by dotkit itself.
type Package struct {
	// Name is the package name (the directory name)
	Name string

	// Path is the absolute path to the package directory
	Path string

	// Root selects the target root for this package's files
	Root TargetRoot

	// Pairs lists every (source, target) link this package deploys
	Pairs []LinkPair

	// Templates lists template files found in this package
	Templates []Template
}

// GetFilePath returns the full path to a file within the package
func (p *Package) GetFilePath(filename string) string {
	return filepath.Join(p.Path, filename)
}

// Template is a file containing {{VARIABLE}} placeholder tokens.
// It is resolved once per injection run and regenerated whenever the
// template or its variable values change.
type Template struct {
	// Name identifies the template in results (package-relative path)
	Name string

	// Source is the absolute path to the template file
	Source string

	// Output is the absolute path the rendered file is written to
	Output string
}
