package pyra

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/forestrie/go-meshforest/morton"
)

// levels builds the tree breadth first. Each level lists its elements in
// linear order because children are emitted in order, parent by parent.
func levels(depth int) [][]Pyra {
	ls := [][]Pyra{{Root()}}
	for l := 1; l <= depth; l++ {
		var next []Pyra
		for _, p := range ls[l-1] {
			next = p.Children(next)
		}
		ls = append(ls, next)
	}
	return ls
}

var axes = [6][3]int{{0, 2, 1}, {0, 1, 2}, {1, 0, 2}, {1, 2, 0}, {2, 1, 0}, {2, 0, 1}}

// contains is the geometric oracle for the regions of both shapes.
func contains(p Pyra, pt [3]float64) bool {
	l := float64(p.Len())
	a := [3]int32{p.X, p.Y, p.Z}
	var r [3]float64
	for i := range r {
		r[i] = (pt[i] - float64(a[i])) / l
		if r[i] < 0 || r[i] >= 1 {
			return false
		}
	}
	switch p.Type {
	case TypeBaseDown:
		return r[2] <= r[0] && r[2] <= r[1]
	case TypeBaseUp:
		return r[2] >= r[0] && r[2] >= r[1]
	}
	o := axes[p.Type]
	return r[o[0]] >= r[o[1]] && r[o[1]] >= r[o[2]]
}

func samples(p Pyra, depth int) [][3]float64 {
	offsets := [][3]float64{{0.13, 0.57, 0.89}, {0.89, 0.13, 0.57}, {0.57, 0.89, 0.13}, {0.21, 0.77, 0.45}, {0.45, 0.21, 0.77}}
	step := float64(Len(int(p.Level) + depth))
	n := 1 << depth
	var ps [][3]float64
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			for k := 0; k < n; k++ {
				for _, o := range offsets {
					ps = append(ps, [3]float64{
						float64(p.X) + step*(float64(i)+o[0]),
						float64(p.Y) + step*(float64(j)+o[1]),
						float64(p.Z) + step*(float64(k)+o[2]),
					})
				}
			}
		}
	}
	return ps
}

func TestChildrenTileParent(t *testing.T) {
	for _, parent := range []Pyra{Root(), Root().Child(8), Root().Child(1)} {
		cs := parent.Children(nil)
		require.Len(t, cs, parent.NumChildren())
		for _, pt := range samples(parent, 2) {
			if !contains(parent, pt) {
				continue
			}
			n := 0
			for _, c := range cs {
				if contains(c, pt) {
					n++
				}
			}
			require.Equal(t, 1, n, "parent %+v point %v", parent, pt)
		}
	}
}

func TestChildOrder(t *testing.T) {
	for _, parent := range []Pyra{Root(), Root().Child(8)} {
		require.Equal(t, TypeBaseUp, Root().Child(8).Type)
		prev := -1
		for i, c := range parent.Children(nil) {
			key := c.CubeID()*NumTypes + int(c.Type)
			assert.Greater(t, key, prev)
			prev = key
			assert.Equal(t, i, c.ChildID())
			assert.Equal(t, parent, c.Parent())
		}
	}
}

func TestParentChildInverse(t *testing.T) {
	ls := levels(3)
	for l := 1; l < len(ls); l++ {
		for _, p := range ls[l-1] {
			for i, c := range p.Children(nil) {
				require.Equal(t, p, c.Parent(), "child %+v", c)
				require.Equal(t, i, c.ChildID())
				require.Equal(t, c, c.Sibling(i))
				require.Equal(t, p.NumChildren(), c.NumSiblings())
				require.True(t, p.IsAncestor(c))
				require.True(t, c.IsValid())
			}
		}
	}
}

func TestNumDescendants(t *testing.T) {
	ls := levels(3)
	for l, es := range ls {
		assert.Equal(t, NumDescendants(l), uint64(len(es)))
	}
	assert.Equal(t, uint64(10), NumDescendants(1))
	assert.Equal(t, uint64(92), NumDescendants(2))
	assert.Equal(t, uint64(64), Root().Child(1).NumDescendants(2))
	// The level 21 count of the root wraps to the true value.
	assert.Equal(t, -morton.Pow(6, 21), NumDescendants(21))
}

func TestLinearID(t *testing.T) {
	ls := levels(3)
	for l, es := range ls {
		for i, p := range es {
			require.Equal(t, uint64(i), p.LinearID(l), "level %d", l)
			require.Equal(t, p, FromLinearID(l, uint64(i)))
			if i > 0 {
				require.Negative(t, Compare(es[i-1], p))
				require.Equal(t, p, es[i-1].Successor(l))
			}
		}
	}
}

func TestLinearIDAcrossLevels(t *testing.T) {
	ls := levels(3)
	for _, p := range ls[2] {
		first := p.FirstDescendant(3)
		last := p.LastDescendant(3)
		require.Equal(t, p.LinearID(3), first.LinearID(3))
		require.Equal(t, p.LinearID(3)+p.NumDescendants(1)-1, last.LinearID(3))
		require.Equal(t, p, first.Ancestor(2))
		require.Equal(t, p, last.Ancestor(2))
		require.Zero(t, Compare(p, p))
		require.Negative(t, Compare(p, first))
		require.Positive(t, Compare(last, p))
	}
}

func TestSuccessorCrossesParents(t *testing.T) {
	ls := levels(2)
	last := Root().Child(0).LastDescendant(2)
	assert.Equal(t, Root().Child(1).FirstDescendant(2), last.Successor(2))
	assert.Equal(t, ls[2][len(ls[2])-1], Root().LastDescendant(2))
	assert.Panics(t, func() { Root().LastDescendant(2).Successor(2) })
}

func TestSignificantPointParent(t *testing.T) {
	// A pyramid grandchild of the root sitting on the significant point of
	// its parent resolves to that pyramid, not to its Bey parent.
	pyramid := Root().Child(2)
	require.True(t, pyramid.IsPyramid())
	grandchild := pyramid.Child(1)
	require.False(t, grandchild.IsPyramid())
	_, hit := significantPoint(grandchild.tet())
	require.True(t, hit)
	assert.Equal(t, pyramid, grandchild.Parent())
	assert.NotEqual(t, fromTet(grandchild.tet().Parent()), grandchild.Parent())
}

func TestSignificantPointNeedsPyramidAncestry(t *testing.T) {
	misses := 0
	for _, p := range levels(3)[3] {
		if p.IsPyramid() {
			continue
		}
		if _, hit := significantPoint(p.tet()); hit && !p.Parent().IsPyramid() {
			misses++
			assert.Equal(t, fromTet(p.tet().Parent()), p.Parent())
		}
	}
	assert.Positive(t, misses)
}

func TestIsValid(t *testing.T) {
	h := Len(1)
	tests := []struct {
		name string
		p    Pyra
		want bool
	}{
		{"root", Root(), true},
		{"root of the other type", Pyra{Type: TypeBaseUp}, false},
		{"tet at level 0", Pyra{Type: 0}, false},
		{"pyramid child", Pyra{X: h, Level: 1, Type: TypeBaseDown}, true},
		{"no such pyramid child", Pyra{Y: h, Level: 1, Type: TypeBaseUp}, false},
		{"tet covered by a pyramid", Pyra{Level: 1, Type: 1}, false},
		{"tet child", Pyra{X: h, Level: 1, Type: 3}, true},
		{"bad type", Pyra{Level: 1, Type: 8}, false},
		{"unaligned", Pyra{X: 3, Level: 2, Type: TypeBaseDown}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.p.IsValid())
		})
	}
}

func TestIsFamily(t *testing.T) {
	cs := Root().Child(7).Children(nil)
	assert.True(t, IsFamily(cs))
	assert.False(t, IsFamily(cs[:9]))
	tets := Root().Child(6).Children(nil)
	assert.True(t, IsFamily(tets))
	mixed := append([]Pyra{}, cs...)
	mixed[1], mixed[2] = mixed[2], mixed[1]
	assert.False(t, IsFamily(mixed))
	assert.False(t, IsFamily([]Pyra{Root()}))
}
