package config

import (
	"encoding/json"
	"fmt"

	"github.com/tidwall/jsonc"
)

// Parse decodes raw JSON (or JSONC, with // and /* */ comments and
// trailing commas tolerated, the same preprocessing the teacher's JSON
// adapter applies via tidwall/jsonc) into Options, starting from
// Default() so any key the input omits keeps its documented default.
func Parse(raw []byte) (Options, error) {
	opts := Default()
	if len(raw) == 0 {
		return opts, nil
	}
	clean := jsonc.ToJSON(raw)
	if err := json.Unmarshal(clean, &opts); err != nil {
		return Options{}, fmt.Errorf("config: %w", err)
	}
	return opts, nil
}

// FromInitializationOptions decodes the LSP InitializeParams.
// InitializationOptions value (an untyped any, per the LSP spec's
// LSPAny) into Options. A nil value (the client sent no
// initializationOptions at all) returns Default() unchanged.
func FromInitializationOptions(raw any) (Options, error) {
	if raw == nil {
		return Default(), nil
	}
	encoded, err := json.Marshal(raw)
	if err != nil {
		return Options{}, fmt.Errorf("config: re-encoding initializationOptions: %w", err)
	}
	return Parse(encoded)
}
