// Package indicators provides the concrete behavioral indicators built
// on the grouping engine, plus standalone temporal and relationship
// analyzers that operate outside the grouped cross-product.
package indicators

import (
	"fmt"
	"sort"

	"cdr-mcp/internal/grouping"
)

var registry = make(map[string]grouping.Indicator)

func register(ind grouping.Indicator) grouping.Indicator {
	if _, ok := registry[ind.Name]; ok {
		panic(fmt.Sprintf("duplicate indicator %q", ind.Name))
	}
	registry[ind.Name] = ind
	return ind
}

// Lookup returns the registered indicator with the given name.
func Lookup(name string) (grouping.Indicator, bool) {
	ind, ok := registry[name]
	return ind, ok
}

// Names returns all registered indicator names, sorted.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// All returns the registered indicators in name order.
func All() []grouping.Indicator {
	inds := make([]grouping.Indicator, 0, len(registry))
	for _, name := range Names() {
		inds = append(inds, registry[name])
	}
	return inds
}
