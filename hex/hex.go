// Package hex implements the lattice codec for three dimensional cells.
//
// A hex refines into eight hexes of half the side length, ordered and
// numbered in Morton order with x varying fastest.
package hex

import (
	"github.com/forestrie/go-meshforest/morton"
)

const (
	Dim         = 3
	MaxLevel    = 21
	NumChildren = 8
)

type Hex struct {
	X, Y, Z int32
	Level   int8
}

func Root() Hex { return Hex{} }

func Len(level int) int32 { return morton.Len(MaxLevel, level) }

func (h Hex) Len() int32 { return Len(int(h.Level)) }

func (h Hex) ChildID() int {
	return morton.CubeID3(h.X, h.Y, h.Z, MaxLevel, int(h.Level))
}

// place sets the level bits of h's anchor to the cube id cid.
func (h Hex) place(cid int) Hex {
	l := h.Len()
	h.X, h.Y, h.Z = h.X&^l, h.Y&^l, h.Z&^l
	if cid&0x01 != 0 {
		h.X |= l
	}
	if cid&0x02 != 0 {
		h.Y |= l
	}
	if cid&0x04 != 0 {
		h.Z |= l
	}
	return h
}

func (h Hex) Child(i int) Hex {
	c := Hex{X: h.X, Y: h.Y, Z: h.Z, Level: h.Level + 1}
	return c.place(i)
}

func (h Hex) Children() [NumChildren]Hex {
	var cs [NumChildren]Hex
	for i := range cs {
		cs[i] = h.Child(i)
	}
	return cs
}

func (h Hex) Parent() Hex {
	l := h.Len()
	return Hex{X: h.X &^ l, Y: h.Y &^ l, Z: h.Z &^ l, Level: h.Level - 1}
}

func (h Hex) Sibling(i int) Hex { return h.place(i) }

func (h Hex) Ancestor(level int) Hex {
	mask := ^(Len(level) - 1)
	return Hex{X: h.X & mask, Y: h.Y & mask, Z: h.Z & mask, Level: int8(level)}
}

// IsAncestor reports whether d is a strict descendant of h.
func (h Hex) IsAncestor(d Hex) bool {
	return d.Level > h.Level && d.Ancestor(int(h.Level)) == h
}

// NCA returns the finest hexahedron containing both a and b.
func NCA(a, b Hex) Hex {
	l := min(int(a.Level), int(b.Level), morton.CommonLevel(MaxLevel, a.X^b.X, a.Y^b.Y, a.Z^b.Z))
	return a.Ancestor(l)
}

func (h Hex) LinearID(level int) uint64 {
	return morton.Interleave3(h.X, h.Y, h.Z, MaxLevel, level)
}

func FromLinearID(level int, id uint64) Hex {
	x, y, z := morton.Deinterleave3(id, MaxLevel, level)
	return Hex{X: x, Y: y, Z: z, Level: int8(level)}
}

func (h Hex) FirstDescendant(level int) Hex {
	return Hex{X: h.X, Y: h.Y, Z: h.Z, Level: int8(level)}
}

func (h Hex) LastDescendant(level int) Hex {
	off := h.Len() - Len(level)
	return Hex{X: h.X | off, Y: h.Y | off, Z: h.Z | off, Level: int8(level)}
}

// Successor returns the hex after h's level ancestor in Morton order.
func (h Hex) Successor(level int) Hex {
	return FromLinearID(level, h.LinearID(level)+1)
}

func NumDescendants(levelDiff int) uint64 {
	return uint64(1) << (Dim * levelDiff)
}

func Compare(a, b Hex) int {
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

func IsFamily(fam []Hex) bool {
	if len(fam) != NumChildren || fam[0].Level == 0 {
		return false
	}
	parent := fam[0].Parent()
	for i, h := range fam {
		if h.Level != fam[0].Level || h.Parent() != parent || h.ChildID() != i {
			return false
		}
	}
	return true
}

func (h Hex) IsValid() bool {
	if h.Level < 0 || h.Level > MaxLevel {
		return false
	}
	l := int(h.Level)
	for _, c := range [3]int32{h.X, h.Y, h.Z} {
		if !morton.InRoot(c, MaxLevel) || !morton.IsAligned(c, MaxLevel, l) {
			return false
		}
	}
	return true
}
