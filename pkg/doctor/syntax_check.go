package doctor

import (
	"bytes"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/arthur-debert/dotkit/pkg/types"
	"github.com/beevik/etree"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
	"mvdan.cc/sh/v3/syntax"
)

// SyntaxCheck parses every deployable source file whose extension it
// recognizes. A malformed config is a failure: it would be deployed
// as-is and break the consuming tool.
type SyntaxCheck struct {
	FS       types.FS
	Packages []types.Package
}

// Name implements Check
func (c *SyntaxCheck) Name() string { return "config-syntax" }

// Run implements Check
func (c *SyntaxCheck) Run() []types.ValidationResult {
	var results []types.ValidationResult
	checked := 0

	for _, pkg := range c.Packages {
		for _, pair := range pkg.Pairs {
			parse := parserFor(pair.Source)
			if parse == nil {
				continue
			}

			data, err := c.FS.ReadFile(pair.Source)
			if err != nil {
				results = append(results, types.ValidationResult{
					Name:    c.Name(),
					Status:  types.CheckFail,
					Message: fmt.Sprintf("cannot read %s: %v", pair.Source, err),
				})
				continue
			}

			checked++
			if err := parse(pair.Source, data); err != nil {
				results = append(results, types.ValidationResult{
					Name:    c.Name(),
					Status:  types.CheckFail,
					Message: fmt.Sprintf("syntax error in %s: %v", pair.Source, err),
				})
			}
		}
	}

	if len(results) == 0 {
		results = append(results, types.ValidationResult{
			Name:    c.Name(),
			Status:  types.CheckPass,
			Message: fmt.Sprintf("%d files parsed", checked),
		})
	}

	return results
}

type parseFunc func(name string, data []byte) error

// parserFor picks a parser by file extension, or nil for files the
// check does not cover
func parserFor(path string) parseFunc {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".sh", ".bash", ".zsh":
		return parseShell
	case ".toml":
		return parseTOML
	case ".yaml", ".yml":
		return parseYAML
	case ".json":
		return parseJSON
	case ".xml":
		return parseXML
	default:
		return nil
	}
}

func parseShell(name string, data []byte) error {
	// zsh files are parsed as bash, close enough to catch the usual
	// quoting and block errors
	parser := syntax.NewParser(syntax.Variant(syntax.LangBash))
	_, err := parser.Parse(bytes.NewReader(data), name)
	return err
}

func parseTOML(name string, data []byte) error {
	var v map[string]interface{}
	return toml.Unmarshal(data, &v)
}

func parseYAML(name string, data []byte) error {
	var v interface{}
	return yaml.Unmarshal(data, &v)
}

func parseJSON(name string, data []byte) error {
	if !json.Valid(data) {
		return fmt.Errorf("invalid JSON")
	}
	return nil
}

func parseXML(name string, data []byte) error {
	doc := etree.NewDocument()
	return doc.ReadFromBytes(data)
}
