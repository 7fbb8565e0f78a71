package forest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/forestrie/go-meshforest/scheme"
)

func TestFamilySize(t *testing.T) {
	s := scheme.Must(scheme.Quad)
	c := func(path ...int) scheme.Element {
		e := s.Root()
		for _, i := range path {
			var err error
			e, err = s.Child(e, i)
			require.NoError(t, err)
		}
		return e
	}

	tests := []struct {
		name string
		old  []scheme.Element
		i    int
		want int
	}{
		{"root", []scheme.Element{c()}, 0, 1},
		{"complete", []scheme.Element{c(0), c(1), c(2), c(3)}, 0, 4},
		{"complete later", []scheme.Element{c(0, 0), c(1), c(2), c(3)}, 0, 1},
		{"tail of complete", []scheme.Element{c(0), c(1), c(2), c(3)}, 1, 1},
		{"incomplete", []scheme.Element{c(1), c(2), c(3)}, 0, 3},
		{"incomplete pair", []scheme.Element{c(0), c(3)}, 0, 2},
		{"run ends at next parent", []scheme.Element{c(0, 2), c(0, 3), c(1, 0)}, 0, 2},
		{"single", []scheme.Element{c(0, 3), c(1, 0)}, 0, 1},
		{"look behind", []scheme.Element{c(0, 0, 1), c(0, 1), c(0, 2)}, 1, 1},
		{"finer member", []scheme.Element{c(0, 1), c(0, 2), c(0, 3, 0)}, 0, 1},
		{"unrelated predecessor", []scheme.Element{c(0, 3), c(1, 1), c(1, 2)}, 1, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ta := treeAdapter{s: s, old: tt.old}
			assert.Equal(t, tt.want, ta.familySize(tt.i))
		})
	}
}

func TestFamilySizePyramid(t *testing.T) {
	s := scheme.Must(scheme.Pyramid)
	kids, err := s.Children(s.Root(), nil)
	require.NoError(t, err)
	require.Len(t, kids, 10)

	ta := treeAdapter{s: s, old: kids}
	assert.Equal(t, 10, ta.familySize(0))

	// A tetrahedral child of the pyramid has the pyramid's nine siblings.
	ta.old = kids[1:]
	assert.Equal(t, 9, ta.familySize(0))
}

func TestAction(t *testing.T) {
	tests := []struct {
		a    Action
		want string
	}{
		{Refine, "refine"},
		{Action(7), "refine"},
		{Keep, "keep"},
		{Coarsen, "coarsen"},
		{Action(-5), "coarsen"},
		{Remove, "remove"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.a.String())
	}
}
