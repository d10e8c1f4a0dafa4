// Package config decodes the rlsp configuration table from spec.md §6
// (the crossFile.*, diagnostics.*, and packages.* keys) out of the
// LSP InitializeParams.InitializationOptions payload
// (FromInitializationOptions) or from raw JSON/JSONC bytes (Parse). It
// reads no configuration file from disk.
//
// Parsing follows the same two-step shape as the teacher's JSON adapter
// (adapter/json/parse.go): run github.com/tidwall/jsonc.ToJSON over the
// raw bytes to tolerate comments and trailing commas, then decode with
// encoding/json onto a struct pre-populated with Default(), so a client
// that only overrides a handful of keys still gets the rest of the
// documented defaults.
package config
