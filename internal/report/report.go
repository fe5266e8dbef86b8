// Package report renders validation banners and analysis results.
package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/tidwall/sjson"
	"gopkg.in/yaml.v3"

	"github.com/cory-johannsen/abilitydata/internal/analysis"
)

// Format selects how analysis results are written.
type Format string

const (
	FormatText Format = "text"
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// ParseFormat converts a configuration value into a Format.
func ParseFormat(s string) (Format, error) {
	switch f := Format(s); f {
	case FormatText, FormatYAML, FormatJSON:
		return f, nil
	}
	return "", fmt.Errorf("unknown report format %q", s)
}

// Printer writes report output to w.
type Printer struct {
	w      io.Writer
	format Format
	pass   *color.Color
	fail   *color.Color
	info   *color.Color
}

// NewPrinter constructs a Printer. Colour is applied to banners only when
// colorize is true.
//
// Postcondition: returns a non-nil Printer.
func NewPrinter(w io.Writer, format Format, colorize bool) *Printer {
	p := &Printer{
		w:      w,
		format: format,
		pass:   color.New(color.FgGreen),
		fail:   color.New(color.FgRed, color.Bold),
		info:   color.New(color.FgCyan),
	}
	for _, c := range []*color.Color{p.pass, p.fail, p.info} {
		if colorize {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}

// ValidationStarted announces the document about to be walked.
func (p *Printer) ValidationStarted(name string) error {
	_, err := p.info.Fprintln(p.w, fmt.Sprintf("🔍 Validating %s...", name))
	return err
}

// ValidationPassed prints the success banner.
func (p *Printer) ValidationPassed() error {
	_, err := p.pass.Fprintln(p.w, "✅ Schema validation PASSED.")
	return err
}

// ValidationFailed prints the single diagnostic line for a failed run.
func (p *Printer) ValidationFailed(cause error) error {
	_, err := p.fail.Fprintln(p.w, "❌ VALIDATION ERROR: "+cause.Error())
	return err
}

// Plain writes msg followed by a newline without decoration.
func (p *Printer) Plain(msg string) error {
	_, err := fmt.Fprintln(p.w, msg)
	return err
}

// Conditions writes the distinct condition strings.
func (p *Printer) Conditions(conds []string) error {
	switch p.format {
	case FormatYAML:
		return p.yaml(struct {
			Conditions []string `yaml:"conditions"`
		}{Conditions: nonNil(conds)})
	case FormatJSON:
		out, err := sjson.Set(`{}`, "conditions", nonNil(conds))
		if err != nil {
			return fmt.Errorf("encoding conditions: %w", err)
		}
		return p.Plain(out)
	}

	var b strings.Builder
	b.WriteString("Unique conditions:\n")
	for _, c := range conds {
		b.WriteString(c)
		b.WriteByte('\n')
	}
	_, err := io.WriteString(p.w, b.String())
	return err
}

// Features writes one block per feature summary.
func (p *Printer) Features(summaries []analysis.FeatureSummary) error {
	switch p.format {
	case FormatYAML:
		if summaries == nil {
			summaries = []analysis.FeatureSummary{}
		}
		return p.yaml(struct {
			Features []analysis.FeatureSummary `yaml:"features"`
		}{Features: summaries})
	case FormatJSON:
		out, err := featuresJSON(summaries)
		if err != nil {
			return err
		}
		return p.Plain(out)
	}

	var b strings.Builder
	b.WriteString("Feature analysis:\n")
	for _, s := range summaries {
		fmt.Fprintf(&b, "%s: %d occurrences\n", s.Name, s.Count)
		for _, shape := range s.Shapes {
			fmt.Fprintf(&b, "  Keys: %s\n", KeyList(shape))
		}
	}
	_, err := io.WriteString(p.w, b.String())
	return err
}

func featuresJSON(summaries []analysis.FeatureSummary) (string, error) {
	out := `{"features":[]}`
	for _, s := range summaries {
		item, err := sjson.Set(`{}`, "name", s.Name)
		if err == nil {
			item, err = sjson.Set(item, "count", s.Count)
		}
		if err == nil {
			item, err = sjson.Set(item, "shapes", s.Shapes)
		}
		if err == nil {
			out, err = sjson.SetRaw(out, "features.-1", item)
		}
		if err != nil {
			return "", fmt.Errorf("encoding feature %q: %w", s.Name, err)
		}
	}
	return out, nil
}

func (p *Printer) yaml(v any) error {
	enc := yaml.NewEncoder(p.w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encoding yaml: %w", err)
	}
	return enc.Close()
}

// KeyList renders a sorted key list as a bracketed, single-quoted sequence,
// e.g. ['name', 'range'].
func KeyList(keys []string) string {
	quoted := make([]string, len(keys))
	for i, k := range keys {
		quoted[i] = quote(k)
	}
	return "[" + strings.Join(quoted, ", ") + "]"
}

// quote prefers single quotes and falls back to double quotes when the key
// contains a single quote but no double quote.
func quote(s string) string {
	q := byte('\'')
	if strings.ContainsRune(s, '\'') && !strings.ContainsRune(s, '"') {
		q = '"'
	}
	var b strings.Builder
	b.WriteByte(q)
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c == '\\':
			b.WriteString(`\\`)
		case c == q:
			b.WriteByte('\\')
			b.WriteByte(c)
		case c == '\n':
			b.WriteString(`\n`)
		case c == '\t':
			b.WriteString(`\t`)
		case c == '\r':
			b.WriteString(`\r`)
		default:
			b.WriteByte(c)
		}
	}
	b.WriteByte(q)
	return b.String()
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
