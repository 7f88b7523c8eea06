// Package testutil provides isolated test environments: a temp
// directory holding a dotfiles tree and a fake home, with the relevant
// environment variables pointed at it for the duration of the test.
package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/arthur-debert/dotkit/pkg/config"
	"github.com/arthur-debert/dotkit/pkg/filesystem"
	"github.com/arthur-debert/dotkit/pkg/packs"
	"github.com/arthur-debert/dotkit/pkg/paths"
	"github.com/arthur-debert/dotkit/pkg/types"
)

// Env is an isolated test environment on the real filesystem
type Env struct {
	DotfilesRoot string
	HomeDir      string
	XDGConfig    string

	FS     types.FS
	Paths  paths.Paths
	Config *config.Config

	t *testing.T
}

// NewEnv creates an isolated environment under t.TempDir. HOME,
// DOTFILES_ROOT and the XDG variables are redirected so nothing
// touches the real user directories.
func NewEnv(t *testing.T) *Env {
	t.Helper()

	tmp := t.TempDir()
	env := &Env{
		DotfilesRoot: filepath.Join(tmp, "dotfiles"),
		HomeDir:      filepath.Join(tmp, "home"),
		XDGConfig:    filepath.Join(tmp, "home", ".config"),
		FS:           filesystem.NewOS(),
		Config:       config.Default(),
		t:            t,
	}

	t.Setenv("HOME", env.HomeDir)
	t.Setenv(paths.EnvDotfilesRoot, env.DotfilesRoot)
	t.Setenv("XDG_CONFIG_HOME", env.XDGConfig)
	t.Setenv("XDG_STATE_HOME", filepath.Join(env.HomeDir, ".local", "state"))
	t.Setenv(paths.EnvDotkitDataDir, filepath.Join(env.HomeDir, ".local", "share", "dotkit"))

	for _, dir := range []string{env.DotfilesRoot, env.HomeDir, env.XDGConfig} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			t.Fatalf("failed to create %s: %v", dir, err)
		}
	}

	p, err := paths.New(env.DotfilesRoot)
	if err != nil {
		t.Fatalf("failed to create paths: %v", err)
	}
	env.Paths = p

	return env
}

// WriteFile writes a file at an absolute path, creating parents
func (e *Env) WriteFile(path, content string) {
	e.t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		e.t.Fatalf("failed to create %s: %v", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		e.t.Fatalf("failed to write %s: %v", path, err)
	}
}

// WritePackageFile writes a file inside a package directory
func (e *Env) WritePackageFile(pkg, rel, content string) {
	e.t.Helper()
	e.WriteFile(filepath.Join(e.DotfilesRoot, pkg, rel), content)
}

// WriteHomeFile writes a file inside the fake home directory
func (e *Env) WriteHomeFile(rel, content string) {
	e.t.Helper()
	e.WriteFile(filepath.Join(e.HomeDir, rel), content)
}

// HomePath returns an absolute path inside the fake home
func (e *Env) HomePath(rel string) string {
	return filepath.Join(e.HomeDir, rel)
}

// PackagePath returns an absolute path inside a package directory
func (e *Env) PackagePath(pkg, rel string) string {
	return filepath.Join(e.DotfilesRoot, pkg, rel)
}

// Symlink creates a symlink, creating the parent directory
func (e *Env) Symlink(source, target string) {
	e.t.Helper()
	if err := os.MkdirAll(filepath.Dir(target), 0755); err != nil {
		e.t.Fatalf("failed to create %s: %v", filepath.Dir(target), err)
	}
	if err := os.Symlink(source, target); err != nil {
		e.t.Fatalf("failed to link %s: %v", target, err)
	}
}

// Discover runs package discovery against the environment
func (e *Env) Discover(names ...string) []types.Package {
	e.t.Helper()
	pkgs, err := packs.Discover(e.FS, e.Paths, e.Config, names)
	if err != nil {
		e.t.Fatalf("discovery failed: %v", err)
	}
	return pkgs
}
