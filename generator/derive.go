package generator

import (
	"fmt"

	"golang.org/x/exp/slices"
	"gonum.org/v1/gonum/graph/simple"
	"gonum.org/v1/gonum/graph/topo"

	"omibyte.io/nvic/svd"
)

// resolve fills in the description and group of derived peripherals from
// their bases. Bases are visited before everything derived from them.
func resolve(periphs svd.PeripheralsElement) ([]svd.PeripheralElement, error) {
	g := simple.NewDirectedGraph()
	bases := make([]int, len(periphs.Elements))
	for i, periph := range periphs.Elements {
		g.AddNode(simple.Node(i))
		if len(periph.DerivedFrom) == 0 {
			continue
		}
		base, ok := periphs.Find(periph.DerivedFrom)
		if !ok {
			return nil, fmt.Errorf("%w: %s from %s", ErrUnknownBase, periph.Name, periph.DerivedFrom)
		}
		bases[i] = base
	}

	for i, periph := range periphs.Elements {
		if len(periph.DerivedFrom) == 0 {
			continue
		}
		base := bases[i]
		if base == i {
			return nil, fmt.Errorf("%w: %s derives from itself", ErrDerivationCycle, periph.Name)
		}
		g.SetEdge(g.NewEdge(simple.Node(base), simple.Node(i)))
	}

	order, err := topo.Sort(g)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDerivationCycle, err)
	}

	resolved := slices.Clone(periphs.Elements)
	for _, n := range order {
		periph := &resolved[n.ID()]
		if len(periph.DerivedFrom) == 0 {
			continue
		}
		base := resolved[bases[n.ID()]]
		if len(periph.Description) == 0 {
			periph.Description = base.Description
		}
		if len(periph.Group) == 0 {
			periph.Group = base.Group
		}
	}
	return resolved, nil
}
