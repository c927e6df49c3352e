package summarizer

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// Formatter defines the interface for formatting a Summary.
type Formatter interface {
	// Format converts a Summary to a formatted string.
	Format(summary *Summary) string
}

// FormatFunc is a function adapter for the Formatter interface.
type FormatFunc func(summary *Summary) string

// Format implements the Formatter interface.
func (f FormatFunc) Format(summary *Summary) string {
	return f(summary)
}

// YAMLFormatter renders a Summary as a YAML document.
func YAMLFormatter() Formatter {
	return FormatFunc(func(summary *Summary) string {
		out, err := yaml.Marshal(summary)
		if err != nil {
			return fmt.Sprintf("# %v\n", err)
		}
		return string(out)
	})
}

// FormatterFor returns the formatter for a file extension.
// ".yaml" and ".yml" select YAML; anything else is Markdown.
func FormatterFor(ext string, opts ...MarkdownOption) Formatter {
	switch ext {
	case ".yaml", ".yml":
		return YAMLFormatter()
	}
	return NewMarkdownFormatter(opts...)
}
