package revalidate

import "time"

// Config holds the tunables spec.md §6's configuration table names for
// the revalidation engine.
type Config struct {
	// MaxRevalidationsPerTrigger caps how many affected files are
	// scheduled per change event; the remainder are put on an overflow
	// queue that only Engine.DrainOverflow schedules.
	MaxRevalidationsPerTrigger int

	// RevalidationDebounceMs is the delay between scheduling a
	// diagnostic recomputation and running it, per file.
	RevalidationDebounceMs int

	// MaxChainDepth bounds depgraph.TransitiveUpstream's traversal when
	// computing the downstream-consumer set, matching crossFile.maxChainDepth.
	MaxChainDepth int
}

// DefaultConfig mirrors the defaults in spec.md §6's configuration table.
func DefaultConfig() Config {
	return Config{
		MaxRevalidationsPerTrigger: 10,
		RevalidationDebounceMs:     200,
		MaxChainDepth:              20,
	}
}

func (c Config) debounceDelay() time.Duration {
	return time.Duration(c.RevalidationDebounceMs) * time.Millisecond
}
