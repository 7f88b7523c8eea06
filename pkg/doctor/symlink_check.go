package doctor

import (
	"fmt"

	"github.com/arthur-debert/dotkit/pkg/linker"
	"github.com/arthur-debert/dotkit/pkg/types"
)

// SymlinkCheck verifies that every declared link pair is deployed and
// points into the dotfiles tree. Missing or dangling links are
// repairable and reported as warnings; foreign content is a failure
// because repair will not touch it.
type SymlinkCheck struct {
	Linker   *linker.Linker
	Packages []types.Package
}

// Name implements Check
func (c *SymlinkCheck) Name() string { return "symlink-integrity" }

// Run implements Check
func (c *SymlinkCheck) Run() []types.ValidationResult {
	var results []types.ValidationResult
	ok := 0

	for _, pkg := range c.Packages {
		for _, pair := range pkg.Pairs {
			switch c.Linker.Classify(pair) {
			case linker.StateLinked:
				ok++
			case linker.StateMissing:
				results = append(results, types.ValidationResult{
					Name:    c.Name(),
					Status:  types.CheckWarn,
					Message: fmt.Sprintf("missing symlink %s (package %s), run repair", pair.Target, pkg.Name),
				})
			case linker.StateBroken:
				results = append(results, types.ValidationResult{
					Name:    c.Name(),
					Status:  types.CheckWarn,
					Message: fmt.Sprintf("broken symlink %s (package %s), run repair", pair.Target, pkg.Name),
				})
			case linker.StateForeign:
				results = append(results, types.ValidationResult{
					Name:    c.Name(),
					Status:  types.CheckFail,
					Message: fmt.Sprintf("conflict at %s (package %s): not managed by dotkit", pair.Target, pkg.Name),
				})
			}
		}
	}

	if len(results) == 0 {
		results = append(results, types.ValidationResult{
			Name:    c.Name(),
			Status:  types.CheckPass,
			Message: fmt.Sprintf("%d links verified", ok),
		})
	}

	return results
}
