package doctor

import (
	"fmt"
	"os/exec"
	"strings"

	"github.com/arthur-debert/dotkit/pkg/types"
)

// ToolsCheck verifies that the executables declared in dotkit.toml
// are on PATH.
type ToolsCheck struct {
	Tools []string
}

// Name implements Check
func (c *ToolsCheck) Name() string { return "tool-versions" }

// Run implements Check
func (c *ToolsCheck) Run() []types.ValidationResult {
	var results []types.ValidationResult

	for _, tool := range c.Tools {
		path, err := exec.LookPath(tool)
		if err != nil {
			results = append(results, types.ValidationResult{
				Name:    c.Name(),
				Status:  types.CheckFail,
				Message: fmt.Sprintf("%s not found on PATH", tool),
			})
			continue
		}

		message := fmt.Sprintf("%s at %s", tool, path)
		if version := toolVersion(tool); version != "" {
			message = fmt.Sprintf("%s (%s)", message, version)
		}
		results = append(results, types.ValidationResult{
			Name:    c.Name(),
			Status:  types.CheckPass,
			Message: message,
		})
	}

	if len(results) == 0 {
		results = append(results, types.ValidationResult{
			Name:    c.Name(),
			Status:  types.CheckPass,
			Message: "no tools declared",
		})
	}

	return results
}

// toolVersion asks the tool for its version, best effort
func toolVersion(tool string) string {
	output, err := exec.Command(tool, "--version").Output()
	if err != nil {
		return ""
	}
	line := strings.SplitN(strings.TrimSpace(string(output)), "\n", 2)[0]
	if len(line) > 60 {
		line = line[:60]
	}
	return line
}
