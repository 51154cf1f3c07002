package output

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Title title-cases a heading, leaving already capitalized words alone.
// A Caser is stateful, so each call builds its own.
func Title(s string) string {
	return cases.Title(language.English, cases.NoLower).String(s)
}

// FormatHeader returns a markdown header of the given level.
func FormatHeader(level int, text string) string {
	if level < 1 {
		level = 1
	}
	return strings.Repeat("#", level) + " " + Title(text)
}

// FormatKeyValue returns a markdown list item with a bold key.
func FormatKeyValue(key, value string) string {
	return "- **" + key + "**: " + value
}

// FormatCode wraps s in a markdown code span.
func FormatCode(s string) string {
	if strings.Contains(s, "`") {
		return "`` " + s + " ``"
	}
	return "`" + s + "`"
}
