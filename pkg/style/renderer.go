package style

import (
	"fmt"
	"strings"

	"github.com/arthur-debert/dotkit/pkg/linker"
	"github.com/arthur-debert/dotkit/pkg/types"
	"github.com/pterm/pterm"
)

// Renderer defines the interface for rendering command output
type Renderer interface {
	RenderPlan(plan *linker.Plan) string
	RenderReport(report *types.Report) string
	RenderError(err error) string
}

// NewRenderer picks a renderer for the detected format
func NewRenderer(format Format) Renderer {
	if format == FormatTerminal {
		return &TerminalRenderer{}
	}
	return &PlainRenderer{}
}

// TerminalRenderer implements Renderer with rich terminal output
type TerminalRenderer struct{}

// RenderPlan renders per-pair plan results
func (r *TerminalRenderer) RenderPlan(plan *linker.Plan) string {
	if len(plan.Results) == 0 {
		return MutedStyle.Render("No packages to deploy")
	}

	var result strings.Builder
	result.WriteString(TitleStyle.Render("Links") + "\n\n")

	for _, pr := range plan.Results {
		result.WriteString(r.renderPair(pr) + "\n")
	}

	return strings.TrimRight(result.String(), "\n")
}

// renderPair renders a single pair result
func (r *TerminalRenderer) renderPair(pr linker.PairResult) string {
	var indicator string
	switch pr.Action {
	case linker.ActionNone:
		indicator = SuccessIndicator
	case linker.ActionConflict:
		indicator = ErrorIndicator
	case linker.ActionAdopt, linker.ActionReplace:
		indicator = WarningIndicator
	default:
		indicator = PendingIndicator
	}

	desc := fmt.Sprintf("%s → %s",
		PathStyle.Render(pr.Pair.Target),
		PathStyle.Render(pr.Pair.Source))

	action := pterm.NewStyle(pterm.FgCyan).Sprintf("%-8s", string(pr.Action))

	line := fmt.Sprintf("%s %s %s", indicator, action, desc)
	if pr.Err != nil {
		line += "\n" + Indent(ErrorStyle.Render(pr.Err.Error()), 1)
	}
	return line
}

// RenderReport renders a doctor report
func (r *TerminalRenderer) RenderReport(report *types.Report) string {
	var result strings.Builder
	result.WriteString(TitleStyle.Render("Doctor") + "\n\n")

	for _, res := range report.Results {
		var indicator string
		switch res.Status {
		case types.CheckPass:
			indicator = SuccessIndicator
		case types.CheckFail:
			indicator = ErrorIndicator
		case types.CheckWarn:
			indicator = WarningIndicator
		}
		name := pterm.NewStyle(pterm.FgCyan).Sprintf("%-20s", res.Name)
		result.WriteString(fmt.Sprintf("%s %s %s\n", indicator, name, res.Message))
	}

	passed, failed, warned := report.Counts()
	summary := fmt.Sprintf("\n%d passed, %d failed, %d warnings", passed, failed, warned)
	if failed > 0 {
		result.WriteString(ErrorStyle.Render(summary))
	} else if warned > 0 {
		result.WriteString(WarningStyle.Render(summary))
	} else {
		result.WriteString(SuccessStyle.Render(summary))
	}

	return result.String()
}

// RenderError renders an error message
func (r *TerminalRenderer) RenderError(err error) string {
	if err == nil {
		return ""
	}
	return fmt.Sprintf("%s %s", pterm.Error.Prefix.Text,
		pterm.Error.MessageStyle.Sprint(err.Error()))
}

// PlainRenderer implements Renderer with plain text output
type PlainRenderer struct{}

// RenderPlan renders plan results without styling
func (r *PlainRenderer) RenderPlan(plan *linker.Plan) string {
	if len(plan.Results) == 0 {
		return "No packages to deploy"
	}

	var result strings.Builder
	for _, pr := range plan.Results {
		result.WriteString(fmt.Sprintf("%-8s %s -> %s\n",
			string(pr.Action), pr.Pair.Target, pr.Pair.Source))
		if pr.Err != nil {
			result.WriteString("  " + pr.Err.Error() + "\n")
		}
	}

	return strings.TrimRight(result.String(), "\n")
}

// RenderReport renders a plain doctor report
func (r *PlainRenderer) RenderReport(report *types.Report) string {
	var result strings.Builder
	for _, res := range report.Results {
		result.WriteString(fmt.Sprintf("%-4s %-20s %s\n",
			string(res.Status), res.Name, res.Message))
	}

	passed, failed, warned := report.Counts()
	result.WriteString(fmt.Sprintf("%d passed, %d failed, %d warnings", passed, failed, warned))

	return result.String()
}

// RenderError renders a plain error message
func (r *PlainRenderer) RenderError(err error) string {
	if err == nil {
		return ""
	}
	return "Error: " + err.Error()
}
