package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"gopkg.in/yaml.v3"

	"github.com/agent-smit/breach-checker/internal/finding"
)

// Output formats.
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// RenderFindings writes findings in the requested format. JSON keeps the
// wire shape of the HTTP API.
func RenderFindings(w io.Writer, format string, findings []finding.Finding) error {
	if findings == nil {
		findings = []finding.Finding{}
	}
	switch format {
	case FormatJSON:
		return writeJSON(w, struct {
			Breaches []finding.Finding `json:"breaches"`
		}{findings})
	case FormatYAML:
		return writeYAML(w, struct {
			Breaches []finding.Finding `yaml:"breaches"`
		}{findings})
	}

	if len(findings) == 0 {
		_, err := fmt.Fprintln(w, "No issues found.")
		return err
	}

	p := message.NewPrinter(language.English)
	if _, err := p.Fprintf(w, "Found %d issue(s):\n", len(findings)); err != nil {
		return err
	}
	for _, f := range findings {
		if _, err := p.Fprintf(w, "\n  %s\n    date: %s  occurrences: %d\n", f.Name, f.DetectedDate, f.OccurrenceCount); err != nil {
			return err
		}
		if f.Description != "" {
			if _, err := fmt.Fprintf(w, "    %s\n", f.Description); err != nil {
				return err
			}
		}
	}
	return nil
}

// RenderGenerated writes a generated password in the requested format.
func RenderGenerated(w io.Writer, format string, g Generated) error {
	switch format {
	case FormatJSON:
		return writeJSON(w, g)
	case FormatYAML:
		return writeYAML(w, g)
	}
	_, err := fmt.Fprintf(w, "%s\nstrength: %d/4, entropy: %.1f bits, crack time: %s\n",
		g.Password, g.Strength.Score, g.Strength.Entropy, g.Strength.CrackTime)
	return err
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func writeYAML(w io.Writer, v any) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return err
	}
	return enc.Close()
}
