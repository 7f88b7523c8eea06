// Package inject renders template files by substituting {{VARIABLE}}
// placeholder tokens with externally resolved values. Rendering is
// all-or-nothing per template and writes are atomic.
package inject

import (
	"bytes"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/arthur-debert/dotkit/pkg/errors"
	"github.com/arthur-debert/dotkit/pkg/logging"
	"github.com/arthur-debert/dotkit/pkg/secrets"
	"github.com/arthur-debert/dotkit/pkg/types"
	"github.com/rs/zerolog"
)

// tokenPattern matches {{VARIABLE_NAME}} placeholders. Names are
// case-sensitive upper-snake, matching the documented template syntax.
var tokenPattern = regexp.MustCompile(`\{\{([A-Z][A-Z0-9_]*)\}\}`)

// Scan returns the unique variable names referenced by content, in
// order of first appearance.
func Scan(content []byte) []string {
	var names []string
	seen := make(map[string]bool)
	for _, match := range tokenPattern.FindAllSubmatch(content, -1) {
		name := string(match[1])
		if !seen[name] {
			seen[name] = true
			names = append(names, name)
		}
	}
	return names
}

// Render substitutes every placeholder in content. All variables are
// resolved before any substitution happens; if any name cannot be
// resolved the whole render fails with MissingVariable and no output
// is produced.
func Render(content []byte, resolver secrets.Resolver) ([]byte, error) {
	names := Scan(content)

	values := make(map[string]string, len(names))
	var missing []string
	for _, name := range names {
		value, err := resolver.Resolve(name)
		if err != nil {
			if errors.IsErrorCode(err, errors.ErrExternalUnavailable) {
				// Incomplete output is worse than no output
				return nil, errors.Wrapf(err, errors.ErrExternalUnavailable,
					"cannot resolve %s", name)
			}
			missing = append(missing, name)
			continue
		}
		values[name] = value
	}

	if len(missing) > 0 {
		sort.Strings(missing)
		return nil, errors.Newf(errors.ErrMissingVariable,
			"unresolved variables: %s", strings.Join(missing, ", "))
	}

	rendered := tokenPattern.ReplaceAllFunc(content, func(token []byte) []byte {
		name := string(tokenPattern.FindSubmatch(token)[1])
		return []byte(values[name])
	})

	return rendered, nil
}

// Injector renders templates to their output paths
type Injector struct {
	fs       types.FS
	resolver secrets.Resolver
	logger   zerolog.Logger
}

// New creates an Injector
func New(fs types.FS, resolver secrets.Resolver) *Injector {
	return &Injector{
		fs:       fs,
		resolver: resolver,
		logger:   logging.GetLogger("inject"),
	}
}

// Inject renders a single template. It returns whether the output
// file changed. Identical inputs produce byte-identical output; an
// unchanged output file is not rewritten.
func (i *Injector) Inject(tmpl types.Template) (bool, error) {
	content, err := i.fs.ReadFile(tmpl.Source)
	if err != nil {
		return false, errors.Wrapf(err, errors.ErrTemplateRead,
			"failed to read template %s", tmpl.Source).
			WithDetail("template", tmpl.Name)
	}

	rendered, err := Render(content, i.resolver)
	if err != nil {
		var dotkitErr *errors.DotkitError
		if e, ok := err.(*errors.DotkitError); ok {
			dotkitErr = e.WithDetail("template", tmpl.Name)
		} else {
			dotkitErr = errors.Wrap(err, errors.ErrInternal, "render failed")
		}
		return false, dotkitErr
	}

	if existing, err := i.fs.ReadFile(tmpl.Output); err == nil && bytes.Equal(existing, rendered) {
		i.logger.Debug().Str("template", tmpl.Name).Msg("Output unchanged, skipping write")
		return false, nil
	}

	if err := i.writeAtomic(tmpl.Output, rendered); err != nil {
		return false, err
	}

	i.logger.Info().
		Str("template", tmpl.Name).
		Str("output", tmpl.Output).
		Msg("Template rendered")

	return true, nil
}

// InjectAll renders every template of every package, stopping at the
// first failure so no further output depends on a broken state.
func (i *Injector) InjectAll(pkgs []types.Package) (changed int, err error) {
	for _, pkg := range pkgs {
		for _, tmpl := range pkg.Templates {
			didChange, err := i.Inject(tmpl)
			if err != nil {
				return changed, err
			}
			if didChange {
				changed++
			}
		}
	}
	return changed, nil
}

// writeAtomic writes data to a temporary file in the destination
// directory and renames it into place, so concurrently running shells
// never observe a partially written config.
func (i *Injector) writeAtomic(dest string, data []byte) error {
	dir := filepath.Dir(dest)
	if err := i.fs.MkdirAll(dir, 0755); err != nil {
		return errors.Wrapf(err, errors.ErrDirCreate,
			"failed to create %s", dir)
	}

	tmp := filepath.Join(dir, "."+filepath.Base(dest)+".dotkit.tmp")
	if err := i.fs.WriteFile(tmp, data, 0600); err != nil {
		return errors.Wrapf(err, errors.ErrFileWrite,
			"failed to write %s", tmp)
	}

	if err := i.fs.Rename(tmp, dest); err != nil {
		// Best effort cleanup of the temp file
		_ = i.fs.Remove(tmp)
		return errors.Wrapf(err, errors.ErrFileWrite,
			"failed to rename %s into place", dest)
	}

	return nil
}
