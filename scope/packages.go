package scope

// defaultBasePackages is the fixed fallback search path used when the
// configured default search path (normally supplied by the external R
// installation via component H's package-export service) is unavailable —
// the packages R attaches by default on startup.
var defaultBasePackages = []string{
	"base", "methods", "datasets", "utils", "grDevices", "graphics", "stats",
}

// defaultMetaPackages expands the two meta-package names spec.md §4.E
// names explicitly — tidyverse and tidymodels — to their member packages.
// Both lists are the umbrella package's own documented "core" member set;
// an unknown name is not expanded at all (see [ExpandMetaPackage]).
var defaultMetaPackages = map[string][]string{
	"tidyverse": {
		"ggplot2", "dplyr", "tidyr", "readr", "purrr", "tibble", "stringr", "forcats", "lubridate",
	},
	"tidymodels": {
		"rsample", "parsnip", "recipes", "workflows", "tune", "yardstick", "broom", "dials", "infer",
	},
}

// ExpandMetaPackage returns name's member packages if name is a known
// meta-package (tidyverse, tidymodels, or any additional ones configured
// via Config.MetaPackages), and false otherwise — an unrecognized package
// name is loaded as itself, unexpanded.
func (cfg Config) ExpandMetaPackage(name string) ([]string, bool) {
	members, ok := cfg.MetaPackages[name]
	return members, ok
}
