package menu

import (
	"fmt"
	"strings"
)

// maxHintFields caps the field names listed in a section hint.
const maxHintFields = 3

// humanize turns a snake_case or kebab-case value into lower-case words.
func humanize(value string) string {
	words := strings.FieldsFunc(value, func(r rune) bool {
		return r == '_' || r == '-'
	})
	return strings.ToLower(strings.Join(words, " "))
}

// fieldSummary lists the first few field names of a section, noting how
// many more there are.
func fieldSummary(fields []string) string {
	shown := fields
	if len(shown) > maxHintFields {
		shown = shown[:maxHintFields]
	}
	words := make([]string, len(shown))
	for i, name := range shown {
		words[i] = humanize(name)
	}
	out := strings.Join(words, ", ")
	if extra := len(fields) - len(shown); extra > 0 {
		out += fmt.Sprintf(" +%d", extra)
	}
	return out
}
