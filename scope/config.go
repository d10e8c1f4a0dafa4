package scope

// Config carries the subset of the crossFile.* initialization options
// (spec.md §6) the Scope Resolver itself consumes.
type Config struct {
	// MaxChainDepth bounds the total SourceCall recursion depth
	// (crossFile.maxChainDepth, default 20). Exceeding it stops further
	// recursion at that branch and reports a ChainDepthExceeded
	// diagnostic rather than failing the whole query.
	MaxChainDepth int

	// BasePackages seeds the accumulator before any event is processed.
	// Empty means "unavailable"; DefaultConfig falls back to
	// defaultBasePackages per spec.md §4.E point 2.
	BasePackages []string

	// MetaPackages expands a configured name (tidyverse, tidymodels, ...)
	// to its member packages when it appears in a LibraryLoad event.
	MetaPackages map[string][]string
}

// DefaultConfig returns the configuration matching spec.md §6's documented
// defaults, with the base package list and the two named meta-packages
// resolved to their fixed fallback sets.
func DefaultConfig() Config {
	metaPackages := make(map[string][]string, len(defaultMetaPackages))
	for k, v := range defaultMetaPackages {
		metaPackages[k] = append([]string(nil), v...)
	}
	return Config{
		MaxChainDepth: 20,
		BasePackages:  append([]string(nil), defaultBasePackages...),
		MetaPackages:  metaPackages,
	}
}
