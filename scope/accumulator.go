package scope

import "sort"

// accumulator is the mutable name -> Symbol / available-package-set state
// the Resolver folds timeline events into. It is never shared between
// concurrent queries; each ScopeAt call owns its own accumulator.
type accumulator struct {
	symbols  map[string]Symbol
	packages map[string]struct{}
}

func newAccumulator() *accumulator {
	return &accumulator{
		symbols:  make(map[string]Symbol),
		packages: make(map[string]struct{}),
	}
}

// define installs sym under name, overriding whatever was there — the
// "later event overrides an earlier one by the same name" rule (spec.md
// §4.E point 4) falls out of simply calling define in textual order.
func (a *accumulator) define(name string, sym Symbol) {
	a.symbols[name] = sym
}

func (a *accumulator) remove(name string) {
	delete(a.symbols, name)
}

func (a *accumulator) addPackage(name string) {
	a.packages[name] = struct{}{}
}

// mergeFrom folds child's full resolved state into a, name by name, per
// spec.md §4.E point 4's later-wins rule applied in the merging file's
// SourceCall position (the caller is responsible for calling mergeFrom at
// the right point in its own event iteration).
func (a *accumulator) mergeFrom(child *accumulator) {
	for name, sym := range child.symbols {
		a.symbols[name] = sym
	}
	for pkg := range child.packages {
		a.packages[pkg] = struct{}{}
	}
}

func (a *accumulator) result() (map[string]Symbol, []string) {
	var symbols map[string]Symbol
	if len(a.symbols) > 0 {
		symbols = make(map[string]Symbol, len(a.symbols))
		for k, v := range a.symbols {
			symbols[k] = v
		}
	}

	packages := make([]string, 0, len(a.packages))
	for p := range a.packages {
		packages = append(packages, p)
	}
	sort.Strings(packages)

	return symbols, packages
}
