package foresttesting

import (
	"github.com/forestrie/go-meshforest/forest"
	"github.com/forestrie/go-meshforest/scheme"
)

// Decisions for tests. They read nothing but their arguments and are safe
// for concurrent trees.

func KeepAll(_, _ *forest.Forest, _, _ int, _ scheme.Scheme, _ []scheme.Element) forest.Action {
	return forest.Keep
}

func RefineAll(_, _ *forest.Forest, _, _ int, _ scheme.Scheme, _ []scheme.Element) forest.Action {
	return forest.Refine
}

// CoarsenFamilies coarsens every family and keeps single elements.
func CoarsenFamilies(_, _ *forest.Forest, _, _ int, _ scheme.Scheme, es []scheme.Element) forest.Action {
	if len(es) > 1 {
		return forest.Coarsen
	}
	return forest.Keep
}

// RefineBelow refines every element coarser than level.
func RefineBelow(level int) forest.AdaptFunc {
	return func(_, _ *forest.Forest, _, _ int, _ scheme.Scheme, es []scheme.Element) forest.Action {
		if int(es[0].Level) < level {
			return forest.Refine
		}
		return forest.Keep
	}
}

// CoarsenAbove coarsens every family finer than level.
func CoarsenAbove(level int) forest.AdaptFunc {
	return func(_, _ *forest.Forest, _, _ int, _ scheme.Scheme, es []scheme.Element) forest.Action {
		if len(es) > 1 && int(es[0].Level) > level {
			return forest.Coarsen
		}
		return forest.Keep
	}
}

// RemoveChildIDs removes single elements, and the first member of
// families, whose child id is listed.
func RemoveChildIDs(ids ...int) forest.AdaptFunc {
	return func(_, _ *forest.Forest, _, _ int, s scheme.Scheme, es []scheme.Element) forest.Action {
		for _, id := range ids {
			if s.ChildID(es[0]) == id {
				return forest.Remove
			}
		}
		return forest.Keep
	}
}
