// Package output renders command results for terminals, pipes and machines.
//
// A Renderer resolves ModeAuto to ModeText on a terminal and to
// ModeMarkdown otherwise, so piped output stays free of escape codes.
package output

import "strings"

// OutputMode selects how results are rendered.
type OutputMode string

// Output modes.
const (
	ModeAuto     OutputMode = "auto"
	ModeText     OutputMode = "text"
	ModeMarkdown OutputMode = "markdown"
	ModeJSON     OutputMode = "json"
	ModeYAML     OutputMode = "yaml"
)

// Modes lists every accepted mode name, for flag completion and validation.
func Modes() []string {
	return []string{
		string(ModeAuto), string(ModeText), string(ModeMarkdown), string(ModeJSON), string(ModeYAML),
	}
}

// Mode converts a configured name into an OutputMode. Unknown or empty
// names become ModeAuto; "md" and "yml" are accepted as aliases.
func Mode(name string) OutputMode {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "text":
		return ModeText
	case "markdown", "md":
		return ModeMarkdown
	case "json":
		return ModeJSON
	case "yaml", "yml":
		return ModeYAML
	default:
		return ModeAuto
	}
}

// IsValidMode reports whether name is an accepted mode name or alias.
func IsValidMode(name string) bool {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "auto", "text", "markdown", "md", "json", "yaml", "yml":
		return true
	default:
		return false
	}
}

// IsStructured reports whether the mode emits machine-readable data.
func (m OutputMode) IsStructured() bool {
	return m == ModeJSON || m == ModeYAML
}
