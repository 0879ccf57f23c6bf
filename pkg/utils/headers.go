package utils

import (
	"errors"
	"strings"
)

// ParseHeaders parses HTTP headers in "Name: value" form, separated by
// literal \n sequences, semicolons, or newlines. This is the format the
// --headers flag accepts.
func ParseHeaders(input string) ([]string, error) {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		return nil, nil
	}

	var headers []string
	for _, part := range splitHeaderInput(trimmed) {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		name, value, ok := strings.Cut(part, ":")
		if !ok || strings.TrimSpace(name) == "" {
			return nil, errors.New("invalid header: " + part)
		}
		headers = append(headers, strings.TrimSpace(name)+": "+strings.TrimSpace(value))
	}
	return headers, nil
}

// FormatHeaders joins headers with literal \n separators, the form sqlmap
// expects inside a single --headers value.
func FormatHeaders(headers []string) string {
	return strings.Join(headers, `\n`)
}

func splitHeaderInput(input string) []string {
	input = strings.ReplaceAll(input, `\n`, "\n")
	return strings.FieldsFunc(input, func(r rune) bool {
		switch r {
		case ';', '\n':
			return true
		default:
			return false
		}
	})
}
