// Package paths provides centralized path handling for dotkit.
// It implements XDG Base Directory specification compliance and
// provides a consistent API for all path operations in the codebase.
package paths

import (
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/arthur-debert/dotkit/pkg/errors"
	"github.com/arthur-debert/dotkit/pkg/types"
)

// Environment variable names
const (
	// EnvDotfilesRoot is the primary environment variable for dotfiles location
	EnvDotfilesRoot = "DOTFILES_ROOT"

	// EnvDotkitDataDir overrides the XDG data directory for dotkit
	EnvDotkitDataDir = "DOTKIT_DATA_DIR"

	// EnvHome is the standard home directory variable
	EnvHome = "HOME"
)

// Default directories and files. These define dotkit's internal
// structure and are not user-configurable.
const (
	// DotkitDirName is the directory name for dotkit-specific files
	DotkitDirName = "dotkit"

	// RootConfigFile is the name of the repository configuration file
	RootConfigFile = "dotkit.toml"

	// PackageConfigFile is the name of the per-package configuration file
	PackageConfigFile = ".dotkit.toml"

	// IgnoreFile is the name of the per-directory ignore file
	IgnoreFile = ".dotkitignore"

	// BackupsDirName is the subdirectory foreign files are backed up into
	BackupsDirName = "backups"

	// LastCheckFileName records when doctor last ran
	LastCheckFileName = "last-check"

	// TemplateSuffix marks files that go through the injector
	TemplateSuffix = ".tmpl"
)

// Paths provides centralized path management for dotkit
type Paths interface {
	types.Pather

	UsedFallback() bool
	PackagePath(name string) string
	PackageConfigPath(name string) string
	RootConfigPath() string
	LastCheckPath() string
	LogFilePath() string
	MapPackageFile(root types.TargetRoot, relPath string) string
	NormalizePath(path string) (string, error)
	IsInDotfiles(path string) (bool, error)
}

type paths struct {
	dotfilesRoot string
	homeDir      string
	xdgConfig    string
	xdgData      string
	xdgState     string

	// usedFallback indicates if we fell back to cwd (for warning display)
	usedFallback bool
}

// New creates a new Paths instance with the given dotfiles root.
// If dotfilesRoot is empty, it will be determined from environment
// variables, the enclosing git repository, or the current directory.
func New(dotfilesRoot string) (Paths, error) {
	p := &paths{}

	if dotfilesRoot == "" {
		root, usedFallback, err := findDotfilesRoot()
		if err != nil {
			return nil, err
		}
		p.dotfilesRoot = root
		p.usedFallback = usedFallback
	} else {
		p.dotfilesRoot = expandHome(dotfilesRoot)
	}

	absRoot, err := filepath.Abs(p.dotfilesRoot)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrFileAccess, "failed to get absolute path for dotfiles root")
	}
	p.dotfilesRoot = absRoot

	homeDir, err := GetHomeDirectory()
	if err != nil {
		return nil, err
	}
	p.homeDir = homeDir

	p.setupXDGDirs()

	return p, nil
}

// setupXDGDirs initializes XDG directories, respecting environment overrides
func (p *paths) setupXDGDirs() {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		p.xdgConfig = expandHome(configHome)
	} else {
		p.xdgConfig = filepath.Join(p.homeDir, ".config")
	}

	if dataDir := os.Getenv(EnvDotkitDataDir); dataDir != "" {
		p.xdgData = expandHome(dataDir)
	} else {
		p.xdgData = filepath.Join(xdg.DataHome, DotkitDirName)
	}

	// XDG state lives outside the xdg library's core set
	if stateDir := os.Getenv("XDG_STATE_HOME"); stateDir != "" {
		p.xdgState = filepath.Join(expandHome(stateDir), DotkitDirName)
	} else {
		p.xdgState = filepath.Join(p.homeDir, ".local", "state", DotkitDirName)
	}
}

// findDotfilesRoot determines the dotfiles root using the following priority:
// 1. DOTFILES_ROOT environment variable
// 2. Git repository root (via 'git rev-parse --show-toplevel')
// 3. Current working directory (fallback, with warning)
func findDotfilesRoot() (string, bool, error) {
	if root := os.Getenv(EnvDotfilesRoot); root != "" {
		return expandHome(root), false, nil
	}

	gitRoot, err := findGitRoot()
	if err == nil && gitRoot != "" {
		return gitRoot, false, nil
	}

	cwd, err := os.Getwd()
	if err != nil {
		return "", false, errors.Wrapf(err, errors.ErrFileAccess, "failed to get current directory")
	}

	return cwd, true, nil
}

// findGitRoot attempts to find the root of the current git repository
func findGitRoot() (string, error) {
	cmd := exec.Command("git", "rev-parse", "--show-toplevel")
	output, err := cmd.Output()
	if err != nil {
		// Not in a git repo or git not installed
		return "", err
	}

	gitRoot := strings.TrimSpace(string(output))
	if gitRoot == "" {
		return "", errors.New(errors.ErrNotFound, "git root is empty")
	}

	return gitRoot, nil
}

// expandHome expands ~ to the home directory
func expandHome(path string) string {
	if path == "" {
		return path
	}

	if path[0] == '~' {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			homeDir = os.Getenv(EnvHome)
			if homeDir == "" {
				return path
			}
		}

		if len(path) == 1 {
			return homeDir
		}

		if path[1] == '/' || path[1] == filepath.Separator {
			return filepath.Join(homeDir, path[2:])
		}

		// ~something (not the user's home)
		return path
	}

	return path
}

// ExpandHome is a utility function that expands ~ in paths
func ExpandHome(path string) string {
	return expandHome(path)
}

// GetHomeDirectory returns the user's home directory with proper error handling
func GetHomeDirectory() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		if home := os.Getenv(EnvHome); home != "" {
			return home, nil
		}
		return "", errors.Wrapf(err, errors.ErrFileAccess, "failed to get home directory")
	}
	return homeDir, nil
}

func (p *paths) DotfilesRoot() string { return p.dotfilesRoot }
func (p *paths) HomeDir() string      { return p.homeDir }
func (p *paths) XDGConfigDir() string { return p.xdgConfig }
func (p *paths) DataDir() string      { return p.xdgData }
func (p *paths) StateDir() string     { return p.xdgState }

// UsedFallback returns true if the current working directory was used as fallback
func (p *paths) UsedFallback() bool { return p.usedFallback }

// BackupsDir returns the directory foreign files are backed up into
func (p *paths) BackupsDir() string {
	return filepath.Join(p.xdgData, BackupsDirName)
}

// PackagePath returns the path to a specific package
func (p *paths) PackagePath(name string) string {
	return filepath.Join(p.dotfilesRoot, name)
}

// PackageConfigPath returns the path to a package's configuration file
func (p *paths) PackageConfigPath(name string) string {
	return filepath.Join(p.PackagePath(name), PackageConfigFile)
}

// RootConfigPath returns the path to the repository configuration file
func (p *paths) RootConfigPath() string {
	return filepath.Join(p.dotfilesRoot, RootConfigFile)
}

// LastCheckPath returns the path to the doctor throttle timestamp file
func (p *paths) LastCheckPath() string {
	return filepath.Join(p.xdgState, LastCheckFileName)
}

// LogFilePath returns the path to the dotkit log file
func (p *paths) LogFilePath() string {
	return filepath.Join(p.xdgState, "dotkit.log")
}

// NormalizePath normalizes a path by expanding home, making it absolute,
// and cleaning it
func (p *paths) NormalizePath(path string) (string, error) {
	if path == "" {
		return "", errors.New(errors.ErrInvalidInput, "empty path")
	}

	expanded := expandHome(path)
	abs, err := filepath.Abs(expanded)
	if err != nil {
		return "", errors.Wrapf(err, errors.ErrFileAccess, "failed to get absolute path")
	}

	return filepath.Clean(abs), nil
}

// IsInDotfiles checks if a path is within the dotfiles root
func (p *paths) IsInDotfiles(path string) (bool, error) {
	normalized, err := p.NormalizePath(path)
	if err != nil {
		return false, err
	}

	rel, err := filepath.Rel(p.dotfilesRoot, normalized)
	if err != nil {
		return false, nil
	}

	return !strings.HasPrefix(rel, ".."), nil
}

// isTopLevel checks if a file is at the package root (no directory separators)
func isTopLevel(relPath string) bool {
	return !strings.Contains(relPath, string(filepath.Separator))
}

// dotPrefix adds a leading dot to a path segment if not already present
func dotPrefix(segment string) string {
	if strings.HasPrefix(segment, ".") {
		return segment
	}
	return "." + segment
}

// MapPackageFile maps a package-relative file to its deployment target.
//
// TargetHome: every file goes under $HOME with a dot prefix on the
// first path segment (zsh/zshrc -> ~/.zsh/zshrc, vimrc -> ~/.vimrc).
//
// TargetXDG: every file goes under XDG_CONFIG_HOME preserving the
// package-relative path (nvim/init.lua -> ~/.config/nvim/init.lua).
//
// TargetAuto: top-level files map like TargetHome, files in
// subdirectories map like TargetXDG. A leading config/ or .config/
// segment is stripped to avoid ~/.config/config nesting.
func (p *paths) MapPackageFile(root types.TargetRoot, relPath string) string {
	switch root {
	case types.TargetHome:
		parts := strings.Split(relPath, string(filepath.Separator))
		parts[0] = dotPrefix(parts[0])
		return filepath.Join(p.homeDir, filepath.Join(parts...))

	case types.TargetXDG:
		return filepath.Join(p.xdgConfig, relPath)

	default:
		if isTopLevel(relPath) {
			return filepath.Join(p.homeDir, dotPrefix(relPath))
		}

		relPath = strings.TrimPrefix(relPath, ".config/")
		relPath = strings.TrimPrefix(relPath, "config/")
		return filepath.Join(p.xdgConfig, relPath)
	}
}
