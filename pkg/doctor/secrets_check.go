package doctor

import (
	"fmt"
	"sort"

	"github.com/arthur-debert/dotkit/pkg/errors"
	"github.com/arthur-debert/dotkit/pkg/inject"
	"github.com/arthur-debert/dotkit/pkg/secrets"
	"github.com/arthur-debert/dotkit/pkg/types"
)

// SecretsCheck probes resolution of every variable referenced by the
// packages' templates. An unreachable secret store is a warning, not
// a failure: a network blip must not read as a broken setup.
type SecretsCheck struct {
	FS       types.FS
	Resolver secrets.Resolver
	Packages []types.Package
}

// Name implements Check
func (c *SecretsCheck) Name() string { return "secret-reachability" }

// Run implements Check
func (c *SecretsCheck) Run() []types.ValidationResult {
	names := c.collectVariables()
	if len(names) == 0 {
		return []types.ValidationResult{{
			Name:    c.Name(),
			Status:  types.CheckPass,
			Message: "no template variables declared",
		}}
	}

	var results []types.ValidationResult
	resolved := 0

	for _, name := range names {
		_, err := c.Resolver.Resolve(name)
		switch {
		case err == nil:
			resolved++
		case errors.IsErrorCode(err, errors.ErrExternalUnavailable):
			results = append(results, types.ValidationResult{
				Name:    c.Name(),
				Status:  types.CheckWarn,
				Message: fmt.Sprintf("secret store unreachable while resolving %s", name),
			})
		default:
			results = append(results, types.ValidationResult{
				Name:    c.Name(),
				Status:  types.CheckFail,
				Message: fmt.Sprintf("variable %s cannot be resolved", name),
			})
		}
	}

	if len(results) == 0 {
		results = append(results, types.ValidationResult{
			Name:    c.Name(),
			Status:  types.CheckPass,
			Message: fmt.Sprintf("%d variables resolvable", resolved),
		})
	}

	return results
}

// collectVariables scans every template for placeholder names
func (c *SecretsCheck) collectVariables() []string {
	seen := make(map[string]bool)
	for _, pkg := range c.Packages {
		for _, tmpl := range pkg.Templates {
			content, err := c.FS.ReadFile(tmpl.Source)
			if err != nil {
				continue
			}
			for _, name := range inject.Scan(content) {
				seen[name] = true
			}
		}
	}

	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
