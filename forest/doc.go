/*
Package forest manages forests of adaptively refined trees.

A forest is a list of trees, each an elements.Array of one shape in linear
order. Forests are immutable once committed. A new forest is obtained from
a committed one by adaptation:

	next := forest.New(log)
	if err := next.SetAdapt(prev, fn, true); err != nil { ... }
	if err := next.Commit(ctx); err != nil { ... }

# Adaptation

Adapt walks each tree of the source once, front to back, and builds the new
array as it goes. At every position it first looks for a family: the
complete set of children of one parent, in order, starting at the current
element. After REMOVE decisions a family may also be incomplete, a run of
at least two siblings at one level with nothing else of their parent
before or among them. The adapt function sees the family, or the single
element when there is none, and answers:

  - refine: the first element is replaced by its children. Refinement at
    the maximum level is refused and treated as keep.
  - keep: the first element is copied.
  - coarsen: the family is replaced by its parent and all its members are
    consumed. Coarsening a single element is a contract violation and
    panics.
  - remove: the first element is dropped, leaving a gap in the tree.

With recursion enabled, children from a refinement go on a stack and are
offered one at a time until no longer refined, so the output stays in
linear order without intermediate levels. After a keep or coarsen the tail
of the output is checked for a complete family ending at the newest element.
Such a family is offered again and, while the answer is coarsen, replaced by
its parent. The lookback never reaches into output produced by a recursive
refinement, which keeps refine and coarsen from undoing each other.

Trees are independent. They are adapted in parallel, bounded by
Config.Workers, and only the per tree counts are combined, after all trees
finish.
*/
package forest
