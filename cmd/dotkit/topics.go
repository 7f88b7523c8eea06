package main

import (
	"embed"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"
)

//go:embed topics/*.md
var topicsFS embed.FS

var topicsCmd = &cobra.Command{
	Use:   "topics [name]",
	Short: "Read the built-in runbooks",
	Long: `Topics renders the built-in documentation in the terminal. Without
arguments it lists the available topics.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		names, err := topicNames()
		if err != nil {
			return err
		}

		if len(args) == 0 {
			fmt.Println("Available topics:")
			for _, name := range names {
				fmt.Println("  " + name)
			}
			return nil
		}

		name := args[0]
		content, err := topicsFS.ReadFile("topics/" + name + ".md")
		if err != nil {
			return fmt.Errorf("unknown topic %q (try: %s)", name, strings.Join(names, ", "))
		}

		fmt.Print(renderMarkdown(string(content)))
		return nil
	},
}

// topicNames lists the embedded topic files
func topicNames() ([]string, error) {
	entries, err := topicsFS.ReadDir("topics")
	if err != nil {
		return nil, err
	}

	var names []string
	for _, entry := range entries {
		names = append(names, strings.TrimSuffix(entry.Name(), ".md"))
	}
	sort.Strings(names)
	return names, nil
}

// renderMarkdown converts markdown to terminal output, falling back
// to the raw text when rendering is not possible
func renderMarkdown(content string) string {
	var options []glamour.TermRendererOption
	options = append(options, glamour.WithAutoStyle())

	if os.Getenv("NO_COLOR") != "" {
		options = []glamour.TermRendererOption{glamour.WithStandardStyle("notty")}
	}

	renderer, err := glamour.NewTermRenderer(options...)
	if err != nil {
		return content
	}

	rendered, err := renderer.Render(content)
	if err != nil {
		return content
	}

	return rendered
}
