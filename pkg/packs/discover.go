// Package packs discovers deployable packages under the dotfiles root
// and expands each one into its (source, target) link pairs.
package packs

import (
	"path/filepath"
	"sort"
	"strings"

	"github.com/arthur-debert/dotkit/pkg/config"
	"github.com/arthur-debert/dotkit/pkg/errors"
	"github.com/arthur-debert/dotkit/pkg/logging"
	"github.com/arthur-debert/dotkit/pkg/paths"
	"github.com/arthur-debert/dotkit/pkg/types"
	ignore "github.com/sabhiram/go-gitignore"
)

// Discover finds packages under the dotfiles root. If names is
// non-empty, only those packages are returned; an unknown name is an
// error. Discovery never mutates the filesystem.
func Discover(fs types.FS, p paths.Paths, cfg *config.Config, names []string) ([]types.Package, error) {
	logger := logging.GetLogger("packs.discover")

	entries, err := fs.ReadDir(p.DotfilesRoot())
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrFileAccess,
			"failed to read dotfiles root %s", p.DotfilesRoot())
	}

	ignored := make(map[string]bool, len(cfg.Packages.Ignore))
	for _, name := range cfg.Packages.Ignore {
		ignored[name] = true
	}

	available := make(map[string]bool)
	var candidates []string
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		name := entry.Name()
		if strings.HasPrefix(name, ".") || ignored[name] {
			continue
		}
		available[name] = true
		candidates = append(candidates, name)
	}

	selected := candidates
	if len(names) > 0 {
		selected = nil
		for _, name := range names {
			if !available[name] {
				return nil, errors.Newf(errors.ErrPackageNotFound,
					"package %q not found under %s", name, p.DotfilesRoot())
			}
			selected = append(selected, name)
		}
	}
	sort.Strings(selected)

	pkgs := make([]types.Package, 0, len(selected))
	for _, name := range selected {
		pkg, err := load(fs, p, name)
		if err != nil {
			return nil, err
		}
		logger.Debug().
			Str("package", pkg.Name).
			Int("pairs", len(pkg.Pairs)).
			Int("templates", len(pkg.Templates)).
			Msg("Package discovered")
		pkgs = append(pkgs, *pkg)
	}

	return pkgs, nil
}

// load expands a single package directory into link pairs and templates
func load(fs types.FS, p paths.Paths, name string) (*types.Package, error) {
	pkgPath := p.PackagePath(name)

	pkgCfg, err := config.LoadPackageConfig(p.PackageConfigPath(name))
	if err != nil {
		return nil, err
	}

	pkg := &types.Package{
		Name: name,
		Path: pkgPath,
		Root: types.TargetRoot(pkgCfg.Root),
	}

	matcher := ignoreMatcher(fs, pkgPath, pkgCfg.Ignore)

	files, err := walk(fs, pkgPath, "")
	if err != nil {
		return nil, err
	}
	sort.Strings(files)

	for _, rel := range files {
		base := filepath.Base(rel)
		if base == paths.PackageConfigFile || base == paths.IgnoreFile {
			continue
		}
		if matcher != nil && matcher.MatchesPath(rel) {
			continue
		}

		source := filepath.Join(pkgPath, rel)
		if strings.HasSuffix(rel, paths.TemplateSuffix) {
			outRel := strings.TrimSuffix(rel, paths.TemplateSuffix)
			pkg.Templates = append(pkg.Templates, types.Template{
				Name:   rel,
				Source: source,
				Output: p.MapPackageFile(pkg.Root, outRel),
			})
			continue
		}

		pkg.Pairs = append(pkg.Pairs, types.LinkPair{
			Source: source,
			Target: p.MapPackageFile(pkg.Root, rel),
		})
	}

	return pkg, nil
}

// ignoreMatcher compiles .dotkitignore plus config patterns.
// A malformed ignore file is skipped rather than failing discovery.
func ignoreMatcher(fs types.FS, pkgPath string, extra []string) *ignore.GitIgnore {
	var lines []string
	if data, err := fs.ReadFile(filepath.Join(pkgPath, paths.IgnoreFile)); err == nil {
		lines = append(lines, strings.Split(string(data), "\n")...)
	}
	lines = append(lines, extra...)
	if len(lines) == 0 {
		return nil
	}
	return ignore.CompileIgnoreLines(lines...)
}

// walk lists regular files under dir, returning package-relative paths
func walk(fs types.FS, dir, rel string) ([]string, error) {
	entries, err := fs.ReadDir(dir)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrFileAccess, "failed to read directory %s", dir)
	}

	var files []string
	for _, entry := range entries {
		entryRel := filepath.Join(rel, entry.Name())
		if entry.IsDir() {
			sub, err := walk(fs, filepath.Join(dir, entry.Name()), entryRel)
			if err != nil {
				return nil, err
			}
			files = append(files, sub...)
			continue
		}
		files = append(files, entryRel)
	}

	return files, nil
}
