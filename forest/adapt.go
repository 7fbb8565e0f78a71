package forest

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/forestrie/go-meshforest/elements"
	"github.com/forestrie/go-meshforest/scheme"
)

// Action is an adapt function's decision. Any positive value refines, zero
// keeps, Remove removes and any other negative value coarsens.
type Action int

const (
	Coarsen Action = -1
	Keep    Action = 0
	Refine  Action = 1
	Remove  Action = -2
)

func (a Action) String() string {
	switch {
	case a == Remove:
		return "remove"
	case a > 0:
		return "refine"
	case a < 0:
		return "coarsen"
	}
	return "keep"
}

// AdaptFunc decides the fate of one element, or of a family. elements holds
// a single element, the complete family starting at it, or an incomplete
// family of two or more siblings whose other members were removed earlier.
// Only a family may be coarsened. Refine, Keep and Remove apply to
// elements[0] alone. elementIndex is the index in from's tree of
// elements[0], or of the element whose refinement or coarsening produced it.
//
// The slice is scratch space owned by the engine, valid for the duration of
// the call. Adapt functions run concurrently for different trees.
type AdaptFunc func(forest, from *Forest, treeIndex, elementIndex int, s scheme.Scheme, elements []scheme.Element) Action

// Adapt builds the trees of forest from those of from, one tree per worker,
// asking fn about every element. With recursive set, refined elements are
// offered again until fn stops refining them, and families completed by
// coarsening are offered again until fn stops coarsening them.
//
// forest must be uncommitted and empty. It is left uncommitted.
func Adapt(ctx context.Context, forest, from *Forest, fn AdaptFunc, recursive bool) (Stats, error) {
	switch {
	case forest.committed:
		return Stats{}, ErrAlreadyCommitted
	case len(forest.trees) != 0:
		return Stats{}, ErrNotEmpty
	case from == nil:
		return Stats{}, ErrNoSource
	case !from.committed:
		return Stats{}, fmt.Errorf("%w: source %s", ErrNotCommitted, from.ID)
	case fn == nil:
		return Stats{}, ErrNoAdaptFunc
	}
	start := time.Now()
	forest.log.Infof("forest %s: adapting %d trees, %d elements, from %s recursive=%v",
		forest.ID, from.NumTrees(), from.NumElements(), from.ID, recursive)

	trees := make([]*elements.Array, from.NumTrees())
	stats := make([]Stats, from.NumTrees())
	panics := make([]any, from.NumTrees())

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(forest.opts.workers())
	for i := range trees {
		g.Go(func() (err error) {
			// A contract violation is re-raised on the caller's goroutine
			// once the other trees have stopped.
			defer func() {
				if r := recover(); r != nil {
					panics[i] = r
					err = errTreePanicked
				}
			}()
			ta := treeAdapter{
				forest:    forest,
				from:      from,
				tree:      i,
				s:         from.trees[i].Scheme(),
				fn:        fn,
				recursive: recursive,
				maxLevel:  forest.maxLevel(from.trees[i].Scheme()),
				old:       from.trees[i].Elements(),
			}
			trees[i], stats[i], err = ta.run(gctx)
			if err != nil {
				return err
			}
			forest.log.Debugf("forest %s: tree %d %s", forest.ID, i, stats[i])
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		for _, r := range panics {
			if r != nil {
				panic(r)
			}
		}
		return Stats{}, err
	}

	var total Stats
	for _, s := range stats {
		total.Add(s)
	}
	forest.trees = trees
	forest.setOffsets()
	forest.source = from
	forest.stats = total
	forest.opts.Metrics.observe(total, time.Since(start))
	forest.log.Infof("forest %s: adapted, %s", forest.ID, total)
	return total, nil
}

const ctxCheckInterval = 1 << 12

var errTreePanicked = errors.New("tree adaptation panicked")

var scratchPool = sync.Pool{
	New: func() any {
		buf := make([]scheme.Element, 0, scheme.MaxChildren)
		return &buf
	},
}

// treeAdapter runs the adaptation of a single tree.
type treeAdapter struct {
	forest, from *Forest
	tree         int
	s            scheme.Scheme
	fn           AdaptFunc
	recursive    bool
	maxLevel     int

	old []scheme.Element
	out *elements.Array
	// elCoarsen is the first output position that lookback coarsening may
	// touch. Output of a recursive refinement is never coarsened again.
	elCoarsen int
	// fam is the scratch window handed to the adapt function.
	fam []scheme.Element
	// pending holds refined elements awaiting a decision, the next one
	// last.
	pending []scheme.Element
	stats   Stats
}

func violation(format string, args ...any) {
	panic(fmt.Sprintf("forest: contract violation: "+format, args...))
}

func (ta *treeAdapter) run(ctx context.Context) (*elements.Array, Stats, error) {
	buf := scratchPool.Get().(*[]scheme.Element)
	defer func() {
		*buf = ta.fam[:0]
		scratchPool.Put(buf)
	}()
	ta.fam = (*buf)[:0]

	ta.out = elements.New(ta.s, len(ta.old))
	ta.stats.ElementsIn = uint64(len(ta.old))

	// Steps consume a varying number of elements, so they are counted
	// apart from the position.
	for i, steps := 0, 0; i < len(ta.old); steps++ {
		if steps%ctxCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return nil, Stats{}, err
			}
		}
		i = ta.step(i)
	}
	ta.stats.ElementsOut = uint64(ta.out.Len())
	return ta.out, ta.stats, nil
}

// decide copies members into the scratch window and asks the adapt function.
func (ta *treeAdapter) decide(elementIndex int, members []scheme.Element) Action {
	ta.fam = append(ta.fam[:0], members...)
	return ta.fn(ta.forest, ta.from, ta.tree, elementIndex, ta.s, ta.fam)
}

// step handles the element, or family, at old[i] and returns the index of
// the next unconsumed element.
func (ta *treeAdapter) step(i int) int {
	e := ta.old[i]
	n := ta.familySize(i)
	action := ta.decide(i, ta.old[i:i+n])

	if action > 0 && int(e.Level) >= ta.maxLevel {
		ta.stats.Vetoed++
		action = Keep
	}

	switch {
	case action > 0:
		if ta.recursive {
			ta.refineRecursive(i, e)
		} else {
			ta.appendChildren(e)
			ta.stats.Refined++
		}
		return i + 1

	case action == Keep:
		ta.out.Append(e)
		ta.stats.Kept++
		if ta.recursive {
			ta.lookback(i)
		}
		return i + 1

	case action == Remove:
		ta.stats.Removed++
		return i + 1
	}

	if n < 2 {
		violation("tree %d element %d: coarsen of a single element %s", ta.tree, i, e)
	}
	ta.out.Append(ta.parent(e))
	ta.stats.Coarsened++
	if ta.recursive {
		ta.lookback(i)
	}
	return i + n
}

func (ta *treeAdapter) parent(e scheme.Element) scheme.Element {
	p, err := ta.s.Parent(e)
	if err != nil {
		violation("tree %d: %v", ta.tree, err)
	}
	return p
}

func (ta *treeAdapter) appendChildren(e scheme.Element) {
	n := ta.s.NumChildren(e)
	ta.out.Grow(n)
	for c := 0; c < n; c++ {
		child, err := ta.s.Child(e, c)
		if err != nil {
			violation("tree %d: %v", ta.tree, err)
		}
		ta.out.Append(child)
	}
}

// pushChildren pushes the children of e so that child 0 is popped first.
func (ta *treeAdapter) pushChildren(e scheme.Element) {
	for c := ta.s.NumChildren(e) - 1; c >= 0; c-- {
		child, err := ta.s.Child(e, c)
		if err != nil {
			violation("tree %d: %v", ta.tree, err)
		}
		ta.pending = append(ta.pending, child)
	}
}

// refineRecursive refines e and keeps asking about the new elements, one
// at a time, until the adapt function stops refining them.
func (ta *treeAdapter) refineRecursive(i int, e scheme.Element) {
	ta.pushChildren(e)
	ta.stats.Refined++
	for len(ta.pending) > 0 {
		c := ta.pending[len(ta.pending)-1]
		ta.pending = ta.pending[:len(ta.pending)-1]

		one := [1]scheme.Element{c}
		action := ta.decide(i, one[:])
		if action > 0 && int(c.Level) >= ta.maxLevel {
			ta.stats.Vetoed++
			action = Keep
		}
		switch {
		case action > 0:
			ta.pushChildren(c)
			ta.stats.Refined++
		case action == Keep:
			ta.out.Append(c)
			ta.stats.Kept++
		case action == Remove:
			ta.stats.Removed++
		default:
			violation("tree %d element %d: coarsen of a single refined element %s", ta.tree, i, c)
		}
	}
	ta.elCoarsen = ta.out.Len()
}

// lookback offers families completed at the end of the output to the adapt
// function and replaces them with their parent for as long as it coarsens.
func (ta *treeAdapter) lookback(elementIndex int) {
	for ta.out.Len() > 0 {
		last := ta.out.Last()
		if last.Level == 0 {
			return
		}
		n := ta.s.NumSiblings(last)
		if ta.s.ChildID(last) != n-1 {
			return
		}
		pos := ta.out.Len() - n
		if pos < ta.elCoarsen {
			return
		}
		members := ta.out.Slice(pos, ta.out.Len())
		if !ta.s.IsFamily(members) {
			return
		}
		action := ta.decide(elementIndex, members)
		if action >= 0 || action == Remove {
			return
		}
		parent := ta.parent(members[0])
		ta.out.Truncate(pos)
		ta.out.Append(parent)
		ta.stats.Coarsened++
	}
}

// familySize returns how many elements starting at old[i] form the family
// offered to the adapt function, 1 when old[i] stands alone.
//
// A complete family is recognised by the scheme. An incomplete family is a
// run of two or more elements at old[i]'s level sharing its parent, with no
// other element of that parent before or within the run. Such runs appear
// once siblings have been removed.
func (ta *treeAdapter) familySize(i int) int {
	e := ta.old[i]
	if e.Level == 0 {
		return 1
	}
	n := ta.s.NumSiblings(e)
	if i+n <= len(ta.old) && ta.s.IsFamily(ta.old[i:i+n]) {
		return n
	}
	parent := ta.parent(e)
	if i > 0 && ta.s.IsAncestor(parent, ta.old[i-1]) {
		return 1
	}
	run := 1
	for j := i + 1; j < len(ta.old) && run < n; j++ {
		c := ta.old[j]
		if !ta.s.IsAncestor(parent, c) {
			break
		}
		if c.Level != e.Level {
			return 1
		}
		run++
	}
	if run < 2 {
		return 1
	}
	return run
}
