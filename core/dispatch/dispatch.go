package dispatch

import (
	"context"

	"auction-courier/core/gateway"
)

// Strategy reconciles one delivered auction document against remote state.
// Process never panics and never returns: every invocation completes, at
// worst as a logged no-op.
type Strategy interface {
	Name() string
	Process(ctx context.Context, auction gateway.Auction)
}

// Family is one lot-handling family with the type-tag aliases declared for
// it in configuration.
type Family struct {
	Name     string
	Aliases  []string
	Strategy Strategy
}

// Table maps type tags to strategies. It is built once during initialization
// and immutable afterwards.
type Table struct {
	routes   map[string]Strategy
	families map[string][]string
}

// NewTable builds the dispatch table from the configured families. A later
// family registering an alias already taken overrides it, matching
// registration order.
func NewTable(families ...Family) *Table {
	t := &Table{
		routes:   make(map[string]Strategy),
		families: make(map[string][]string),
	}
	for _, f := range families {
		t.families[f.Name] = append(t.families[f.Name], f.Aliases...)
		for _, alias := range f.Aliases {
			t.routes[alias] = f.Strategy
		}
	}
	return t
}

// Route returns the strategy registered for the type tag. An unsupported tag
// can never become supported without a restart, so callers drop such events
// without retry.
func (t *Table) Route(typeTag string) (Strategy, bool) {
	s, ok := t.routes[typeTag]
	return s, ok
}

// Aliases returns the alias list declared for a family name.
func (t *Table) Aliases(family string) []string {
	return t.families[family]
}
