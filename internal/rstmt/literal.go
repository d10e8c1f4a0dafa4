package rstmt

import (
	"strings"

	"github.com/jbearak/rlsp/internal/textlit"
)

// StringLiteral reports whether raw is a single- or double-quoted string
// literal, returning its unescaped value.
func StringLiteral(raw string) (string, bool) {
	raw = strings.TrimSpace(raw)
	if len(raw) < 2 {
		return "", false
	}
	if !(strings.HasPrefix(raw, `"`) && strings.HasSuffix(raw, `"`)) &&
		!(strings.HasPrefix(raw, `'`) && strings.HasSuffix(raw, `'`)) {
		return "", false
	}
	val, err := textlit.ConvertString(raw)
	if err != nil {
		return "", false
	}
	return val, true
}

// BoolLiteral reports whether raw is a literal TRUE/FALSE/T/F token (not
// a dynamically computed expression), returning its value.
func BoolLiteral(raw string) (bool, bool) {
	switch strings.TrimSpace(raw) {
	case "TRUE", "T":
		return true, true
	case "FALSE", "F":
		return false, true
	default:
		return false, false
	}
}

// StringListLiteral reports whether raw is a c(...) call whose every
// argument is a string literal, as used by rm(list = c("x", "y")).
// Returns the literal names in order.
func StringListLiteral(raw string) ([]string, bool) {
	call, ok := ParseCall(strings.TrimSpace(raw))
	if !ok || call.Name != "c" {
		return nil, false
	}
	names := make([]string, 0, len(call.Args))
	for _, a := range call.Args {
		if a.Name != "" {
			return nil, false
		}
		name, ok := StringLiteral(a.Raw)
		if !ok {
			return nil, false
		}
		names = append(names, name)
	}
	return names, true
}
