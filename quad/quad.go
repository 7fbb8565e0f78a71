// Package quad implements the lattice codec for two dimensional cells.
//
// Quads refine into four quads of half the side length. Children, and the
// linear id, follow Morton (z) order. The functions here carry the usual
// burden of knowledge: asking a level 0 quad for its parent, or a child index
// of 4, yields nonsense rather than an error. The scheme package validates.
package quad

import (
	"github.com/forestrie/go-meshforest/morton"
)

const (
	Dim         = 2
	MaxLevel    = 29
	NumChildren = 4
)

// Quad is a cell identified by its lower left anchor and its level.
type Quad struct {
	X, Y  int32
	Level int8
}

// Root returns the level 0 quad covering the whole tree.
func Root() Quad { return Quad{} }

// Len returns the side length of quads at level.
func Len(level int) int32 { return morton.Len(MaxLevel, level) }

// Len returns the side length of q.
func (q Quad) Len() int32 { return Len(int(q.Level)) }

// ChildID returns the position of q among its siblings.
func (q Quad) ChildID() int {
	return morton.CubeID2(q.X, q.Y, MaxLevel, int(q.Level))
}

// Child returns the i'th child of q in Morton order.
func (q Quad) Child(i int) Quad {
	h := Len(int(q.Level) + 1)
	c := Quad{X: q.X, Y: q.Y, Level: q.Level + 1}
	if i&0x01 != 0 {
		c.X |= h
	}
	if i&0x02 != 0 {
		c.Y |= h
	}
	return c
}

// Children returns all children of q in order.
func (q Quad) Children() [NumChildren]Quad {
	var cs [NumChildren]Quad
	for i := range cs {
		cs[i] = q.Child(i)
	}
	return cs
}

// Parent returns the quad one level up containing q.
func (q Quad) Parent() Quad {
	h := q.Len()
	return Quad{X: q.X &^ h, Y: q.Y &^ h, Level: q.Level - 1}
}

// Sibling returns the i'th child of q's parent.
func (q Quad) Sibling(i int) Quad {
	h := q.Len()
	s := Quad{X: q.X &^ h, Y: q.Y &^ h, Level: q.Level}
	if i&0x01 != 0 {
		s.X |= h
	}
	if i&0x02 != 0 {
		s.Y |= h
	}
	return s
}

// Ancestor returns the quad at the coarser level containing q.
func (q Quad) Ancestor(level int) Quad {
	mask := ^(Len(level) - 1)
	return Quad{X: q.X & mask, Y: q.Y & mask, Level: int8(level)}
}

// IsAncestor reports whether d is a strict descendant of q.
func (q Quad) IsAncestor(d Quad) bool {
	return d.Level > q.Level && d.Ancestor(int(q.Level)) == q
}

// NCA returns the finest quad containing both a and b.
func NCA(a, b Quad) Quad {
	l := min(int(a.Level), int(b.Level), morton.CommonLevel(MaxLevel, a.X^b.X, a.Y^b.Y))
	return a.Ancestor(l)
}

// LinearID returns the Morton index of q among all quads at level. For a
// level finer than q this is the index of q's first descendant.
func (q Quad) LinearID(level int) uint64 {
	return morton.Interleave2(q.X, q.Y, MaxLevel, level)
}

// FromLinearID returns the quad at level with the given Morton index.
func FromLinearID(level int, id uint64) Quad {
	x, y := morton.Deinterleave2(id, MaxLevel, level)
	return Quad{X: x, Y: y, Level: int8(level)}
}

// FirstDescendant returns the first quad at the finer level inside q.
func (q Quad) FirstDescendant(level int) Quad {
	return Quad{X: q.X, Y: q.Y, Level: int8(level)}
}

// LastDescendant returns the last quad at the finer level inside q.
func (q Quad) LastDescendant(level int) Quad {
	off := q.Len() - Len(level)
	return Quad{X: q.X | off, Y: q.Y | off, Level: int8(level)}
}

// Successor returns the quad following q's level ancestor (or q itself) in
// Morton order. q must not be the last quad at that level.
func (q Quad) Successor(level int) Quad {
	return FromLinearID(level, q.LinearID(level)+1)
}

// NumDescendants returns the number of quads levelDiff levels below any quad.
func NumDescendants(levelDiff int) uint64 {
	return uint64(1) << (Dim * levelDiff)
}

// Compare orders quads by their linear id at the finer of the two levels,
// ancestors before descendants.
func Compare(a, b Quad) int {
	level := max(int(a.Level), int(b.Level))
	ida, idb := a.LinearID(level), b.LinearID(level)
	if ida == idb {
		return int(a.Level) - int(b.Level)
	}
	if ida < idb {
		return -1
	}
	return 1
}

// IsFamily reports whether fam holds exactly the children of one quad, in order.
func IsFamily(fam []Quad) bool {
	if len(fam) != NumChildren || fam[0].Level == 0 {
		return false
	}
	parent := fam[0].Parent()
	for i, q := range fam {
		if q.Level != fam[0].Level || q.Parent() != parent || q.ChildID() != i {
			return false
		}
	}
	return true
}

// IsValid reports whether q is aligned to its level inside the root.
func (q Quad) IsValid() bool {
	if q.Level < 0 || q.Level > MaxLevel {
		return false
	}
	l := int(q.Level)
	return morton.InRoot(q.X, MaxLevel) && morton.InRoot(q.Y, MaxLevel) &&
		morton.IsAligned(q.X, MaxLevel, l) && morton.IsAligned(q.Y, MaxLevel, l)
}
