package packs_test

import (
	"path/filepath"
	"testing"

	"github.com/arthur-debert/dotkit/pkg/errors"
	"github.com/arthur-debert/dotkit/pkg/packs"
	"github.com/arthur-debert/dotkit/pkg/testutil"
	"github.com/arthur-debert/dotkit/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiscover_FindsPackages(t *testing.T) {
	env := testutil.NewEnv(t)
	env.WritePackageFile("git", "gitconfig", "[user]\n")
	env.WritePackageFile("zsh", "zshrc", "export EDITOR=vim\n")

	pkgs := env.Discover()
	require.Len(t, pkgs, 2)

	// Deterministic order regardless of directory listing
	assert.Equal(t, "git", pkgs[0].Name)
	assert.Equal(t, "zsh", pkgs[1].Name)
}

func TestDiscover_SkipsHiddenAndIgnoredDirs(t *testing.T) {
	env := testutil.NewEnv(t)
	env.WritePackageFile("git", "gitconfig", "")
	env.WritePackageFile(".git", "HEAD", "ref: refs/heads/main")
	env.WritePackageFile("docs", "readme.txt", "")

	pkgs := env.Discover()
	require.Len(t, pkgs, 1)
	assert.Equal(t, "git", pkgs[0].Name)
}

func TestDiscover_UnknownNameFails(t *testing.T) {
	env := testutil.NewEnv(t)
	env.WritePackageFile("git", "gitconfig", "")

	_, err := packs.Discover(env.FS, env.Paths, env.Config, []string{"nope"})
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrPackageNotFound))
}

func TestDiscover_SelectsNamedPackages(t *testing.T) {
	env := testutil.NewEnv(t)
	env.WritePackageFile("git", "gitconfig", "")
	env.WritePackageFile("zsh", "zshrc", "")

	pkgs := env.Discover("zsh")
	require.Len(t, pkgs, 1)
	assert.Equal(t, "zsh", pkgs[0].Name)
}

func TestDiscover_MapsPairsAndTemplates(t *testing.T) {
	env := testutil.NewEnv(t)
	env.WritePackageFile("git", "gitconfig", "[user]\n")
	env.WritePackageFile("git", "config/gh/hosts.yml", "github.com:\n")
	env.WritePackageFile("git", "gitconfig.local.tmpl", "token = {{GITHUB_TOKEN}}\n")

	pkgs := env.Discover("git")
	require.Len(t, pkgs, 1)
	pkg := pkgs[0]

	require.Len(t, pkg.Pairs, 2)
	assert.Equal(t, env.PackagePath("git", "config/gh/hosts.yml"), pkg.Pairs[0].Source)
	assert.Equal(t, filepath.Join(env.XDGConfig, "gh", "hosts.yml"), pkg.Pairs[0].Target)
	assert.Equal(t, env.PackagePath("git", "gitconfig"), pkg.Pairs[1].Source)
	assert.Equal(t, env.HomePath(".gitconfig"), pkg.Pairs[1].Target)

	require.Len(t, pkg.Templates, 1)
	assert.Equal(t, "gitconfig.local.tmpl", pkg.Templates[0].Name)
	assert.Equal(t, env.PackagePath("git", "gitconfig.local.tmpl"), pkg.Templates[0].Source)
	assert.Equal(t, env.HomePath(".gitconfig.local"), pkg.Templates[0].Output)
}

func TestDiscover_PackageRootOverride(t *testing.T) {
	env := testutil.NewEnv(t)
	env.WritePackageFile("kitty", ".dotkit.toml", `root = "xdg"`)
	env.WritePackageFile("kitty", "kitty.conf", "font_size 12\n")

	pkgs := env.Discover("kitty")
	require.Len(t, pkgs, 1)
	require.Len(t, pkgs[0].Pairs, 1)

	assert.Equal(t, types.TargetXDG, pkgs[0].Root)
	assert.Equal(t, filepath.Join(env.XDGConfig, "kitty.conf"), pkgs[0].Pairs[0].Target)
}

func TestDiscover_ConfigFilesNeverDeployed(t *testing.T) {
	env := testutil.NewEnv(t)
	env.WritePackageFile("git", ".dotkit.toml", `root = "home"`)
	env.WritePackageFile("git", ".dotkitignore", "*.md\n")
	env.WritePackageFile("git", "gitconfig", "")

	pkgs := env.Discover("git")
	require.Len(t, pkgs, 1)
	require.Len(t, pkgs[0].Pairs, 1)
	assert.Equal(t, env.PackagePath("git", "gitconfig"), pkgs[0].Pairs[0].Source)
}

func TestDiscover_IgnorePatterns(t *testing.T) {
	env := testutil.NewEnv(t)
	env.WritePackageFile("zsh", ".dotkitignore", "*.md\nnotes/\n")
	env.WritePackageFile("zsh", "zshrc", "")
	env.WritePackageFile("zsh", "README.md", "docs")
	env.WritePackageFile("zsh", "notes/scratch.txt", "")

	pkgs := env.Discover("zsh")
	require.Len(t, pkgs, 1)
	require.Len(t, pkgs[0].Pairs, 1)
	assert.Equal(t, env.PackagePath("zsh", "zshrc"), pkgs[0].Pairs[0].Source)
}

func TestDiscover_ConfigIgnorePatterns(t *testing.T) {
	env := testutil.NewEnv(t)
	env.WritePackageFile("zsh", ".dotkit.toml", `ignore = ["*.bak"]`)
	env.WritePackageFile("zsh", "zshrc", "")
	env.WritePackageFile("zsh", "zshrc.bak", "")

	pkgs := env.Discover("zsh")
	require.Len(t, pkgs, 1)
	require.Len(t, pkgs[0].Pairs, 1)
	assert.Equal(t, env.PackagePath("zsh", "zshrc"), pkgs[0].Pairs[0].Source)
}
