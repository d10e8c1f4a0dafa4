package config

import "github.com/jbearak/rlsp/diag"

// OnDemandIndexing holds crossFile.onDemandIndexing.* (spec.md §6).
type OnDemandIndexing struct {
	Enabled            bool `json:"enabled"`
	MaxTransitiveDepth int  `json:"maxTransitiveDepth"`
	MaxQueueSize       int  `json:"maxQueueSize"`
}

// CrossFile holds the crossFile.* keys that govern path resolution,
// traversal depth, revalidation pacing, and diagnostic severities for
// the cross-file scope engine (components A-J).
type CrossFile struct {
	MaxBackwardDepth           int    `json:"maxBackwardDepth"`
	MaxForwardDepth            int    `json:"maxForwardDepth"`
	MaxChainDepth              int    `json:"maxChainDepth"`
	AssumeCallSite             string `json:"assumeCallSite"`
	IndexWorkspace             bool   `json:"indexWorkspace"`
	MaxRevalidationsPerTrigger int    `json:"maxRevalidationsPerTrigger"`
	RevalidationDebounceMs     int    `json:"revalidationDebounceMs"`

	MissingFileSeverity         string `json:"missingFileSeverity"`
	CircularDependencySeverity  string `json:"circularDependencySeverity"`
	OutOfScopeSeverity          string `json:"outOfScopeSeverity"`
	AmbiguousParentSeverity     string `json:"ambiguousParentSeverity"`
	MaxChainDepthSeverity       string `json:"maxChainDepthSeverity"`

	OnDemandIndexing OnDemandIndexing `json:"onDemandIndexing"`
}

// Diagnostics holds the diagnostics.* keys.
type Diagnostics struct {
	UndefinedVariables bool `json:"undefinedVariables"`
}

// Packages holds the packages.* keys governing package-export awareness.
type Packages struct {
	Enabled                bool     `json:"enabled"`
	AdditionalLibraryPaths []string `json:"additionalLibraryPaths"`
	RPath                  string   `json:"rPath"`
	MissingPackageSeverity string   `json:"missingPackageSeverity"`
}

// Options is the fully decoded configuration tree, matching spec.md §6's
// configuration table exactly in key path and default value.
type Options struct {
	CrossFile   CrossFile   `json:"crossFile"`
	Diagnostics Diagnostics `json:"diagnostics"`
	Packages    Packages    `json:"packages"`
}

// Default returns the configuration table's documented defaults.
// packages.rPath defaults to "auto", resolved to an actual executable
// path by the packages component, not here.
func Default() Options {
	return Options{
		CrossFile: CrossFile{
			MaxBackwardDepth:           10,
			MaxForwardDepth:            10,
			MaxChainDepth:              20,
			AssumeCallSite:             "end",
			IndexWorkspace:             true,
			MaxRevalidationsPerTrigger: 10,
			RevalidationDebounceMs:     200,

			MissingFileSeverity:        "warning",
			CircularDependencySeverity: "error",
			OutOfScopeSeverity:         "warning",
			AmbiguousParentSeverity:    "warning",
			MaxChainDepthSeverity:      "warning",

			OnDemandIndexing: OnDemandIndexing{
				Enabled:            true,
				MaxTransitiveDepth: 10,
				MaxQueueSize:       1024,
			},
		},
		Diagnostics: Diagnostics{
			UndefinedVariables: true,
		},
		Packages: Packages{
			Enabled:                true,
			AdditionalLibraryPaths: nil,
			RPath:                  "auto",
			MissingPackageSeverity: "warning",
		},
	}
}

// MissingFileSeverity parses CrossFile.MissingFileSeverity, falling back
// to diag.Warning on an unrecognized value.
func (o Options) MissingFileSeverity() diag.Severity { return severityOr(o.CrossFile.MissingFileSeverity, diag.Warning) }

// CircularDependencySeverity parses CrossFile.CircularDependencySeverity,
// falling back to diag.Error on an unrecognized value.
func (o Options) CircularDependencySeverity() diag.Severity {
	return severityOr(o.CrossFile.CircularDependencySeverity, diag.Error)
}

// OutOfScopeSeverity parses CrossFile.OutOfScopeSeverity, falling back to
// diag.Warning on an unrecognized value.
func (o Options) OutOfScopeSeverity() diag.Severity {
	return severityOr(o.CrossFile.OutOfScopeSeverity, diag.Warning)
}

// AmbiguousParentSeverity parses CrossFile.AmbiguousParentSeverity,
// falling back to diag.Warning on an unrecognized value.
func (o Options) AmbiguousParentSeverity() diag.Severity {
	return severityOr(o.CrossFile.AmbiguousParentSeverity, diag.Warning)
}

// MaxChainDepthSeverity parses CrossFile.MaxChainDepthSeverity, falling
// back to diag.Warning on an unrecognized value.
func (o Options) MaxChainDepthSeverity() diag.Severity {
	return severityOr(o.CrossFile.MaxChainDepthSeverity, diag.Warning)
}

// MissingPackageSeverity parses Packages.MissingPackageSeverity, falling
// back to diag.Warning on an unrecognized value.
func (o Options) MissingPackageSeverity() diag.Severity {
	return severityOr(o.Packages.MissingPackageSeverity, diag.Warning)
}

func severityOr(raw string, fallback diag.Severity) diag.Severity {
	sev, err := diag.ParseSeverity(raw)
	if err != nil {
		return fallback
	}
	return sev
}
