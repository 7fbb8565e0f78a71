package forest

import (
	"context"
	"fmt"
	"sort"

	"github.com/datatrails/go-datatrails-common/logger"
	"github.com/google/uuid"

	"github.com/forestrie/go-meshforest/elements"
	"github.com/forestrie/go-meshforest/scheme"
)

// Forest is a set of trees, each an ordered array of elements of one shape.
// A forest is built, committed and from then on only read. Committed
// forests are safe for concurrent readers and serve as the source of the
// next adaptation.
type Forest struct {
	ID uuid.UUID

	log  logger.Logger
	opts Options

	trees []*elements.Array
	// offsets[i] is the global index of the first element of tree i, the
	// final entry is the total.
	offsets []uint64

	source    *Forest
	adapt     AdaptFunc
	recursive bool

	committed bool
	stats     Stats
}

// New returns an empty forest waiting to be populated by adaptation.
func New(log logger.Logger, opts ...Option) *Forest {
	return &Forest{
		ID:      uuid.New(),
		log:     log,
		opts:    NewOptions(opts...),
		offsets: []uint64{0},
	}
}

// NewUniform returns a committed forest with one tree per shape, each
// refined uniformly to level.
func NewUniform(log logger.Logger, shapes []scheme.Shape, level int, opts ...Option) (*Forest, error) {
	f := New(log, opts...)
	for _, shape := range shapes {
		s, err := scheme.New(shape)
		if err != nil {
			return nil, err
		}
		if level < 0 || level > f.maxLevel(s) {
			return nil, fmt.Errorf("%w: %d for %s", ErrLevelOutOfRange, level, shape)
		}
		f.trees = append(f.trees, uniformTree(s, level))
	}
	f.setOffsets()
	f.committed = true
	f.log.Debugf("forest %s: uniform level %d, %d trees, %d elements", f.ID, level, f.NumTrees(), f.NumElements())
	return f, nil
}

func uniformTree(s scheme.Scheme, level int) *elements.Array {
	cur := []scheme.Element{s.Root()}
	for l := 0; l < level; l++ {
		next := make([]scheme.Element, 0, len(cur)*s.NumChildren(cur[0]))
		for _, e := range cur {
			// Levels below the forest maximum always have children.
			next, _ = s.Children(e, next)
		}
		cur = next
	}
	return elements.FromSlice(s, cur)
}

func (f *Forest) setOffsets() {
	f.offsets = make([]uint64, len(f.trees)+1)
	for i, t := range f.trees {
		f.offsets[i+1] = f.offsets[i] + uint64(t.Len())
	}
}

// maxLevel is the finest level elements of tree shape s may reach.
func (f *Forest) maxLevel(s scheme.Scheme) int {
	if f.opts.MaxLevel >= 0 && f.opts.MaxLevel < s.MaxLevel() {
		return f.opts.MaxLevel
	}
	return s.MaxLevel()
}

// SetAdapt prepares f to be built from the committed forest from when f is
// committed.
func (f *Forest) SetAdapt(from *Forest, fn AdaptFunc, recursive bool) error {
	if f.committed {
		return ErrAlreadyCommitted
	}
	if from == nil {
		return ErrNoSource
	}
	if !from.committed {
		return fmt.Errorf("%w: source %s", ErrNotCommitted, from.ID)
	}
	if fn == nil {
		return ErrNoAdaptFunc
	}
	f.source = from
	f.adapt = fn
	f.recursive = recursive
	return nil
}

// Commit runs the pending adaptation, if any, and freezes the forest.
func (f *Forest) Commit(ctx context.Context) error {
	if f.committed {
		return ErrAlreadyCommitted
	}
	if f.adapt != nil {
		if _, err := Adapt(ctx, f, f.source, f.adapt, f.recursive); err != nil {
			return err
		}
	} else if len(f.trees) == 0 {
		return ErrNoSource
	}
	f.committed = true
	f.log.Infof("forest %s: committed, %d trees, %d elements", f.ID, f.NumTrees(), f.NumElements())
	return nil
}

func (f *Forest) IsCommitted() bool { return f.committed }

// Source returns the forest f was adapted from, or nil.
func (f *Forest) Source() *Forest { return f.source }

// Stats returns the counts of the adaptation that built f.
func (f *Forest) Stats() Stats { return f.stats }

func (f *Forest) Options() Options { return f.opts }

func (f *Forest) NumTrees() int { return len(f.trees) }

func (f *Forest) NumElements() uint64 { return f.offsets[len(f.offsets)-1] }

func (f *Forest) checkTree(i int) error {
	if i < 0 || i >= len(f.trees) {
		return fmt.Errorf("%w: %d of %d", ErrTreeIndex, i, len(f.trees))
	}
	return nil
}

// Tree returns the element array of tree i. Callers must not modify it.
func (f *Forest) Tree(i int) (*elements.Array, error) {
	if err := f.checkTree(i); err != nil {
		return nil, err
	}
	return f.trees[i], nil
}

func (f *Forest) TreeShape(i int) (scheme.Shape, error) {
	if err := f.checkTree(i); err != nil {
		return scheme.ShapeInvalid, err
	}
	return f.trees[i].Scheme().Shape(), nil
}

func (f *Forest) Scheme(i int) (scheme.Scheme, error) {
	if err := f.checkTree(i); err != nil {
		return scheme.Scheme{}, err
	}
	return f.trees[i].Scheme(), nil
}

// TreeElements returns the elements of tree i as a read only window.
func (f *Forest) TreeElements(i int) ([]scheme.Element, error) {
	if err := f.checkTree(i); err != nil {
		return nil, err
	}
	return f.trees[i].Elements(), nil
}

// TreeOffset returns the global index of the first element of tree i.
func (f *Forest) TreeOffset(i int) (uint64, error) {
	if err := f.checkTree(i); err != nil {
		return 0, err
	}
	return f.offsets[i], nil
}

// MaxLevel returns the finest level tree i may be refined to.
func (f *Forest) MaxLevel(i int) (int, error) {
	if err := f.checkTree(i); err != nil {
		return 0, err
	}
	return f.maxLevel(f.trees[i].Scheme()), nil
}

// Element returns the element at a forest wide index together with its
// tree.
func (f *Forest) Element(global uint64) (int, scheme.Element, error) {
	if global >= f.NumElements() {
		return 0, scheme.Element{}, fmt.Errorf("%w: %d of %d", ErrElementIndex, global, f.NumElements())
	}
	// The first tree whose end lies beyond global. Empty trees share their
	// offset with the next tree and are skipped by the strict comparison.
	i := sort.Search(len(f.trees), func(i int) bool { return f.offsets[i+1] > global })
	return i, f.trees[i].At(int(global - f.offsets[i])), nil
}

// FindElement returns the position of e in tree i.
func (f *Forest) FindElement(i int, e scheme.Element) (int, bool, error) {
	if err := f.checkTree(i); err != nil {
		return 0, false, err
	}
	pos, ok := f.trees[i].Search(e)
	return pos, ok, nil
}
