package forest_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/forestrie/go-meshforest/forest"
	"github.com/forestrie/go-meshforest/foresttesting"
	"github.com/forestrie/go-meshforest/scheme"
)

func TestNewUniform(t *testing.T) {
	tc := newTestContext(t)
	tests := []struct {
		name    string
		shapes  []scheme.Shape
		level   int
		opts    []forest.Option
		want    uint64
		wantErr error
	}{
		{"quad and hex", []scheme.Shape{scheme.Quad, scheme.Hex}, 2, nil, 16 + 64, nil},
		{"pyramid", []scheme.Shape{scheme.Pyramid}, 2, nil, 2*64 - 36, nil},
		{"simplices", []scheme.Shape{scheme.Triangle, scheme.Tet}, 1, nil, 4 + 8, nil},
		{"no trees", nil, 3, nil, 0, nil},
		{"negative level", []scheme.Shape{scheme.Quad}, -1, nil, 0, forest.ErrLevelOutOfRange},
		{"beyond shape", []scheme.Shape{scheme.Hex}, 22, nil, 0, forest.ErrLevelOutOfRange},
		{"beyond forest", []scheme.Shape{scheme.Quad}, 3, []forest.Option{forest.WithMaxLevel(2)}, 0, forest.ErrLevelOutOfRange},
		{"bad shape", []scheme.Shape{scheme.Shape(42)}, 0, nil, 0, scheme.ErrUnknownShape},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := forest.NewUniform(tc.Log, tt.shapes, tt.level, tt.opts...)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.True(t, f.IsCommitted())
			assert.Nil(t, f.Source())
			assert.Equal(t, len(tt.shapes), f.NumTrees())
			assert.Equal(t, tt.want, f.NumElements())
			tc.RequireSorted(f)
		})
	}
}

func TestLifecycle(t *testing.T) {
	tc := newTestContext(t)
	src := tc.Uniform(1, []scheme.Shape{scheme.Quad})
	ctx := context.Background()

	t.Run("commit without source", func(t *testing.T) {
		assert.ErrorIs(t, forest.New(tc.Log).Commit(ctx), forest.ErrNoSource)
	})
	t.Run("set adapt", func(t *testing.T) {
		f := forest.New(tc.Log)
		assert.ErrorIs(t, f.SetAdapt(nil, foresttesting.KeepAll, false), forest.ErrNoSource)
		assert.ErrorIs(t, f.SetAdapt(src, nil, false), forest.ErrNoAdaptFunc)
		assert.ErrorIs(t, f.SetAdapt(forest.New(tc.Log), foresttesting.KeepAll, false), forest.ErrNotCommitted)
		assert.ErrorIs(t, src.SetAdapt(src, foresttesting.KeepAll, false), forest.ErrAlreadyCommitted)
	})
	t.Run("commit twice", func(t *testing.T) {
		f := forest.New(tc.Log)
		require.NoError(t, f.SetAdapt(src, foresttesting.KeepAll, false))
		require.NoError(t, f.Commit(ctx))
		assert.ErrorIs(t, f.Commit(ctx), forest.ErrAlreadyCommitted)
	})
	t.Run("adapt preconditions", func(t *testing.T) {
		_, err := forest.Adapt(ctx, src, src, foresttesting.KeepAll, false)
		assert.ErrorIs(t, err, forest.ErrAlreadyCommitted)

		_, err = forest.Adapt(ctx, forest.New(tc.Log), nil, foresttesting.KeepAll, false)
		assert.ErrorIs(t, err, forest.ErrNoSource)

		_, err = forest.Adapt(ctx, forest.New(tc.Log), src, nil, false)
		assert.ErrorIs(t, err, forest.ErrNoAdaptFunc)

		f := forest.New(tc.Log)
		_, err = forest.Adapt(ctx, f, src, foresttesting.KeepAll, false)
		require.NoError(t, err)
		assert.False(t, f.IsCommitted())
		_, err = forest.Adapt(ctx, f, src, foresttesting.KeepAll, false)
		assert.ErrorIs(t, err, forest.ErrNotEmpty)
		require.NoError(t, f.Commit(ctx))
	})
}

func TestAccessors(t *testing.T) {
	tc := newTestContext(t)
	f := tc.Uniform(1, []scheme.Shape{scheme.Quad, scheme.Triangle, scheme.Hex}, forest.WithMaxLevel(5))

	shape, err := f.TreeShape(1)
	require.NoError(t, err)
	assert.Equal(t, scheme.Triangle, shape)

	level, err := f.MaxLevel(2)
	require.NoError(t, err)
	assert.Equal(t, 5, level)

	offsets := []uint64{0, 4, 8}
	for i, want := range offsets {
		got, err := f.TreeOffset(i)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
	assert.Equal(t, uint64(16), f.NumElements())

	for global := uint64(0); global < f.NumElements(); global++ {
		tree, e, err := f.Element(global)
		require.NoError(t, err)
		assert.Equal(t, tc.Elements(f, tree)[global-offsets[tree]], e)

		pos, ok, err := f.FindElement(tree, e)
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, int(global-offsets[tree]), pos)
	}

	_, _, err = f.Element(f.NumElements())
	assert.ErrorIs(t, err, forest.ErrElementIndex)
	for _, i := range []int{-1, 3} {
		_, err = f.Tree(i)
		assert.ErrorIs(t, err, forest.ErrTreeIndex)
		_, err = f.Scheme(i)
		assert.ErrorIs(t, err, forest.ErrTreeIndex)
		_, _, err = f.FindElement(i, scheme.Element{})
		assert.ErrorIs(t, err, forest.ErrTreeIndex)
	}

	root := scheme.Must(scheme.Quad).Root()
	_, ok, err := f.FindElement(0, root)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestElementSkipsEmptyTrees(t *testing.T) {
	tc := newTestContext(t)
	src := tc.Uniform(0, []scheme.Shape{scheme.Quad, scheme.Hex, scheme.Tet})
	f := tc.Adapt(src, func(_, _ *forest.Forest, tree, _ int, _ scheme.Scheme, _ []scheme.Element) forest.Action {
		if tree == 1 {
			return forest.Remove
		}
		return forest.Keep
	}, false)

	require.Equal(t, uint64(2), f.NumElements())
	tree, e, err := f.Element(1)
	require.NoError(t, err)
	assert.Equal(t, 2, tree)
	assert.Equal(t, scheme.Must(scheme.Tet).Root(), e)
}
