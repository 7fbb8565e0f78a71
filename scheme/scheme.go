// Package scheme gives the element codecs a single face.
//
// A Scheme is a small value naming the shape of a tree. Every operation
// switches on that shape and hands the element to the matching codec, so
// callers such as the adaptation engine never branch on shape themselves.
// Operations with preconditions check them and return sentinel errors; the
// codecs underneath assume their inputs are valid. ChildID, IsAncestor,
// Compare and IsFamily run in the adaptation loop and trust elements taken
// from a tree.
package scheme

import (
	"fmt"

	"github.com/forestrie/go-meshforest/hex"
	"github.com/forestrie/go-meshforest/pyra"
	"github.com/forestrie/go-meshforest/quad"
	"github.com/forestrie/go-meshforest/tet"
	"github.com/forestrie/go-meshforest/tri"
)

// MaxChildren bounds the size of any family.
const MaxChildren = pyra.NumPyraChildren

type Scheme struct {
	shape Shape
}

func New(shape Shape) (Scheme, error) {
	if !shape.IsValid() {
		return Scheme{}, fmt.Errorf("%w: %d", ErrUnknownShape, shape)
	}
	return Scheme{shape: shape}, nil
}

// Must is New for shapes known to be valid. It panics otherwise.
func Must(shape Shape) Scheme {
	s, err := New(shape)
	if err != nil {
		panic(err)
	}
	return s
}

func (s Scheme) Shape() Shape  { return s.shape }
func (s Scheme) Dim() int      { return s.shape.Dim() }
func (s Scheme) MaxLevel() int { return s.shape.MaxLevel() }

func (s Scheme) Root() Element {
	switch s.shape {
	case Quad:
		return fromQuad(quad.Root())
	case Triangle:
		return fromTri(tri.Root())
	case Hex:
		return fromHex(hex.Root())
	case Tet:
		return fromTet(tet.Root())
	case Pyramid:
		return fromPyra(pyra.Root())
	}
	return Element{}
}

func (s Scheme) Level(e Element) int { return int(e.Level) }

func (s Scheme) NumChildren(e Element) int {
	switch s.shape {
	case Quad, Triangle:
		return quad.NumChildren
	case Hex, Tet:
		return hex.NumChildren
	case Pyramid:
		return e.pyra().NumChildren()
	}
	return 0
}

// NumSiblings returns the size of the family e belongs to, 1 for a root.
func (s Scheme) NumSiblings(e Element) int {
	if e.Level == 0 {
		return 1
	}
	if s.shape == Pyramid {
		return e.pyra().NumSiblings()
	}
	return s.NumChildren(e)
}

// NumDescendants returns the number of elements levelDiff levels below the
// root.
func (s Scheme) NumDescendants(levelDiff int) uint64 {
	switch s.shape {
	case Quad:
		return quad.NumDescendants(levelDiff)
	case Triangle:
		return tri.NumDescendants(levelDiff)
	case Hex:
		return hex.NumDescendants(levelDiff)
	case Tet:
		return tet.NumDescendants(levelDiff)
	case Pyramid:
		return pyra.NumDescendants(levelDiff)
	}
	return 0
}

func (s Scheme) ChildID(e Element) int {
	switch s.shape {
	case Quad:
		return e.quad().ChildID()
	case Triangle:
		return e.tri().ChildID()
	case Hex:
		return e.hex().ChildID()
	case Tet:
		return e.tet().ChildID()
	case Pyramid:
		return e.pyra().ChildID()
	}
	return 0
}

func (s Scheme) checkLevel(level int) error {
	if level < 0 || level > s.MaxLevel() {
		return fmt.Errorf("%w: %d not in [0, %d]", ErrLevelOutOfRange, level, s.MaxLevel())
	}
	return nil
}

// checkElement rejects elements whose own level is out of range before
// any codec shifts by it.
func (s Scheme) checkElement(es ...Element) error {
	for _, e := range es {
		if err := s.checkLevel(int(e.Level)); err != nil {
			return err
		}
	}
	return nil
}

func (s Scheme) child(e Element, i int) Element {
	switch s.shape {
	case Quad:
		return fromQuad(e.quad().Child(i))
	case Triangle:
		return fromTri(e.tri().Child(i))
	case Hex:
		return fromHex(e.hex().Child(i))
	case Tet:
		return fromTet(e.tet().Child(i))
	case Pyramid:
		return fromPyra(e.pyra().Child(i))
	}
	return Element{}
}

func (s Scheme) Child(e Element, i int) (Element, error) {
	if err := s.checkElement(e); err != nil {
		return Element{}, err
	}
	if err := s.checkLevel(int(e.Level) + 1); err != nil {
		return Element{}, err
	}
	if i < 0 || i >= s.NumChildren(e) {
		return Element{}, fmt.Errorf("%w: %d", ErrChildIndexOutOfRange, i)
	}
	return s.child(e, i), nil
}

// Children appends all children of e to dst.
func (s Scheme) Children(e Element, dst []Element) ([]Element, error) {
	if err := s.checkElement(e); err != nil {
		return dst, err
	}
	if err := s.checkLevel(int(e.Level) + 1); err != nil {
		return dst, err
	}
	for i := 0; i < s.NumChildren(e); i++ {
		dst = append(dst, s.child(e, i))
	}
	return dst, nil
}

func (s Scheme) parent(e Element) Element {
	switch s.shape {
	case Quad:
		return fromQuad(e.quad().Parent())
	case Triangle:
		return fromTri(e.tri().Parent())
	case Hex:
		return fromHex(e.hex().Parent())
	case Tet:
		return fromTet(e.tet().Parent())
	case Pyramid:
		return fromPyra(e.pyra().Parent())
	}
	return Element{}
}

func (s Scheme) Parent(e Element) (Element, error) {
	if err := s.checkElement(e); err != nil {
		return Element{}, err
	}
	if e.Level == 0 {
		return Element{}, ErrRootHasNoParent
	}
	return s.parent(e), nil
}

func (s Scheme) Sibling(e Element, i int) (Element, error) {
	if err := s.checkElement(e); err != nil {
		return Element{}, err
	}
	if e.Level == 0 {
		return Element{}, ErrRootHasNoParent
	}
	if i < 0 || i >= s.NumSiblings(e) {
		return Element{}, fmt.Errorf("%w: %d", ErrChildIndexOutOfRange, i)
	}
	return s.child(s.parent(e), i), nil
}

func (s Scheme) Ancestor(e Element, level int) (Element, error) {
	if err := s.checkElement(e); err != nil {
		return Element{}, err
	}
	if level < 0 || level > int(e.Level) {
		return Element{}, fmt.Errorf("%w: %d above %d", ErrAncestorLevel, level, e.Level)
	}
	switch s.shape {
	case Quad:
		return fromQuad(e.quad().Ancestor(level)), nil
	case Triangle:
		return fromTri(e.tri().Ancestor(level)), nil
	case Hex:
		return fromHex(e.hex().Ancestor(level)), nil
	case Tet:
		return fromTet(e.tet().Ancestor(level)), nil
	case Pyramid:
		return fromPyra(e.pyra().Ancestor(level)), nil
	}
	return Element{}, ErrUnknownShape
}

// IsAncestor reports whether d is a strict descendant of a.
func (s Scheme) IsAncestor(a, d Element) bool {
	switch s.shape {
	case Quad:
		return a.quad().IsAncestor(d.quad())
	case Triangle:
		return a.tri().IsAncestor(d.tri())
	case Hex:
		return a.hex().IsAncestor(d.hex())
	case Tet:
		return a.tet().IsAncestor(d.tet())
	case Pyramid:
		return a.pyra().IsAncestor(d.pyra())
	}
	return false
}

// NCA returns the nearest common ancestor of a and b, the finest element
// containing both. It is a or b itself when one contains the other.
func (s Scheme) NCA(a, b Element) (Element, error) {
	if err := s.checkElement(a, b); err != nil {
		return Element{}, err
	}
	switch s.shape {
	case Quad:
		return fromQuad(quad.NCA(a.quad(), b.quad())), nil
	case Triangle:
		return fromTri(tri.NCA(a.tri(), b.tri())), nil
	case Hex:
		return fromHex(hex.NCA(a.hex(), b.hex())), nil
	case Tet:
		return fromTet(tet.NCA(a.tet(), b.tet())), nil
	case Pyramid:
		return fromPyra(pyra.NCA(a.pyra(), b.pyra())), nil
	}
	return Element{}, ErrUnknownShape
}

func (s Scheme) linearID(e Element, level int) uint64 {
	switch s.shape {
	case Quad:
		return e.quad().LinearID(level)
	case Triangle:
		return e.tri().LinearID(level)
	case Hex:
		return e.hex().LinearID(level)
	case Tet:
		return e.tet().LinearID(level)
	case Pyramid:
		return e.pyra().LinearID(level)
	}
	return 0
}

// LinearID returns the position along the space filling curve of e's
// ancestor at level, or of its first descendant when level is finer.
func (s Scheme) LinearID(e Element, level int) (uint64, error) {
	if err := s.checkElement(e); err != nil {
		return 0, err
	}
	if err := s.checkLevel(level); err != nil {
		return 0, err
	}
	return s.linearID(e, level), nil
}

func (s Scheme) FromLinearID(level int, id uint64) (Element, error) {
	if err := s.checkLevel(level); err != nil {
		return Element{}, err
	}
	// The pyramid count at the maximum level wraps to its true value, so
	// the comparison holds for every shape.
	if id >= s.NumDescendants(level) {
		return Element{}, fmt.Errorf("%w: %d at level %d", ErrLinearIDOutOfRange, id, level)
	}
	switch s.shape {
	case Quad:
		return fromQuad(quad.FromLinearID(level, id)), nil
	case Triangle:
		return fromTri(tri.FromLinearID(level, id)), nil
	case Hex:
		return fromHex(hex.FromLinearID(level, id)), nil
	case Tet:
		return fromTet(tet.FromLinearID(level, id)), nil
	case Pyramid:
		return fromPyra(pyra.FromLinearID(level, id)), nil
	}
	return Element{}, ErrUnknownShape
}

func (s Scheme) checkDescendantLevel(e Element, level int) error {
	if err := s.checkElement(e); err != nil {
		return err
	}
	if level < int(e.Level) || level > s.MaxLevel() {
		return fmt.Errorf("%w: %d not in [%d, %d]", ErrLevelOutOfRange, level, e.Level, s.MaxLevel())
	}
	return nil
}

func (s Scheme) FirstDescendant(e Element, level int) (Element, error) {
	if err := s.checkDescendantLevel(e, level); err != nil {
		return Element{}, err
	}
	switch s.shape {
	case Quad:
		return fromQuad(e.quad().FirstDescendant(level)), nil
	case Triangle:
		return fromTri(e.tri().FirstDescendant(level)), nil
	case Hex:
		return fromHex(e.hex().FirstDescendant(level)), nil
	case Tet:
		return fromTet(e.tet().FirstDescendant(level)), nil
	case Pyramid:
		return fromPyra(e.pyra().FirstDescendant(level)), nil
	}
	return Element{}, ErrUnknownShape
}

func (s Scheme) LastDescendant(e Element, level int) (Element, error) {
	if err := s.checkDescendantLevel(e, level); err != nil {
		return Element{}, err
	}
	switch s.shape {
	case Quad:
		return fromQuad(e.quad().LastDescendant(level)), nil
	case Triangle:
		return fromTri(e.tri().LastDescendant(level)), nil
	case Hex:
		return fromHex(e.hex().LastDescendant(level)), nil
	case Tet:
		return fromTet(e.tet().LastDescendant(level)), nil
	case Pyramid:
		return fromPyra(e.pyra().LastDescendant(level)), nil
	}
	return Element{}, ErrUnknownShape
}

// Successor returns the element following e's level ancestor in linear
// order.
func (s Scheme) Successor(e Element, level int) (Element, error) {
	if err := s.checkElement(e); err != nil {
		return Element{}, err
	}
	if err := s.checkLevel(level); err != nil {
		return Element{}, err
	}
	if s.linearID(e, level) == s.NumDescendants(level)-1 {
		return Element{}, ErrNoSuccessor
	}
	switch s.shape {
	case Quad:
		return fromQuad(e.quad().Successor(level)), nil
	case Triangle:
		return fromTri(e.tri().Successor(level)), nil
	case Hex:
		return fromHex(e.hex().Successor(level)), nil
	case Tet:
		return fromTet(e.tet().Successor(level)), nil
	case Pyramid:
		return fromPyra(e.pyra().Successor(level)), nil
	}
	return Element{}, ErrUnknownShape
}

// Compare orders elements along the space filling curve at the finer of
// their levels. Equal ids order the ancestor first.
func (s Scheme) Compare(a, b Element) int {
	switch s.shape {
	case Quad:
		return quad.Compare(a.quad(), b.quad())
	case Triangle:
		return tri.Compare(a.tri(), b.tri())
	case Hex:
		return hex.Compare(a.hex(), b.hex())
	case Tet:
		return tet.Compare(a.tet(), b.tet())
	case Pyramid:
		return pyra.Compare(a.pyra(), b.pyra())
	}
	return 0
}

func (s Scheme) Equal(a, b Element) bool { return a == b }

// IsFamily reports whether fam holds, in order, exactly the children of one
// parent.
func (s Scheme) IsFamily(fam []Element) bool {
	if len(fam) == 0 || len(fam) > MaxChildren {
		return false
	}
	switch s.shape {
	case Quad:
		var qs [quad.NumChildren]quad.Quad
		if len(fam) != len(qs) {
			return false
		}
		for i, e := range fam {
			qs[i] = e.quad()
		}
		return quad.IsFamily(qs[:])
	case Triangle:
		var ts [tri.NumChildren]tri.Tri
		if len(fam) != len(ts) {
			return false
		}
		for i, e := range fam {
			ts[i] = e.tri()
		}
		return tri.IsFamily(ts[:])
	case Hex:
		var hs [hex.NumChildren]hex.Hex
		if len(fam) != len(hs) {
			return false
		}
		for i, e := range fam {
			hs[i] = e.hex()
		}
		return hex.IsFamily(hs[:])
	case Tet:
		var ts [tet.NumChildren]tet.Tet
		if len(fam) != len(ts) {
			return false
		}
		for i, e := range fam {
			ts[i] = e.tet()
		}
		return tet.IsFamily(ts[:])
	case Pyramid:
		var ps [pyra.NumPyraChildren]pyra.Pyra
		for i, e := range fam {
			ps[i] = e.pyra()
		}
		return pyra.IsFamily(ps[:len(fam)])
	}
	return false
}

// Validate reports why e is not an element of a tree of this shape, or nil.
func (s Scheme) Validate(e Element) error {
	if !s.shape.IsValid() {
		return ErrUnknownShape
	}
	if err := s.checkLevel(int(e.Level)); err != nil {
		return err
	}
	if e.Type < 0 || int(e.Type) >= s.shape.NumTypes() {
		return fmt.Errorf("%w: %d for %s", ErrInvalidType, e.Type, s.shape)
	}
	var ok bool
	switch s.shape {
	case Quad:
		ok = e.Z == 0 && e.quad().IsValid()
	case Triangle:
		ok = e.Z == 0 && e.tri().IsValid()
	case Hex:
		ok = e.hex().IsValid()
	case Tet:
		ok = e.tet().IsValid()
	case Pyramid:
		ok = e.pyra().IsValid()
	}
	if !ok {
		return fmt.Errorf("%w: %s", ErrInvalidElement, e)
	}
	return nil
}
