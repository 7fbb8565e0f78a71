// Package elements holds the ordered element array of one tree.
package elements

import (
	"errors"
	"fmt"
	"slices"

	"github.com/forestrie/go-meshforest/scheme"
)

var (
	ErrRecordsLength = errors.New("the data is not a whole number of element records")
	ErrMixedShapes   = errors.New("the records do not all have the shape of the array")
)

// Array is a tree's elements in ascending linear order. Elements are only
// appended or truncated, never moved.
type Array struct {
	s     scheme.Scheme
	elems []scheme.Element
}

func New(s scheme.Scheme, capacity int) *Array {
	return &Array{s: s, elems: make([]scheme.Element, 0, capacity)}
}

// FromSlice returns an array owning es.
func FromSlice(s scheme.Scheme, es []scheme.Element) *Array {
	return &Array{s: s, elems: es}
}

func (a *Array) Scheme() scheme.Scheme { return a.s }

func (a *Array) Len() int { return len(a.elems) }

func (a *Array) At(i int) scheme.Element { return a.elems[i] }

// Last panics when the array is empty.
func (a *Array) Last() scheme.Element { return a.elems[len(a.elems)-1] }

func (a *Array) Append(e scheme.Element) { a.elems = append(a.elems, e) }

func (a *Array) AppendSlice(es []scheme.Element) { a.elems = append(a.elems, es...) }

// Grow makes room for n more elements without reallocating.
func (a *Array) Grow(n int) { a.elems = slices.Grow(a.elems, n) }

// Truncate shrinks the array to n elements in place.
func (a *Array) Truncate(n int) {
	if n < 0 || n > len(a.elems) {
		panic(fmt.Sprintf("elements: truncate to %d of %d", n, len(a.elems)))
	}
	a.elems = a.elems[:n]
}

// Slice returns the window [i, j). It aliases the array and is only valid
// until the next append or truncate.
func (a *Array) Slice(i, j int) []scheme.Element { return a.elems[i:j:j] }

// Elements returns the whole array as a read only window.
func (a *Array) Elements() []scheme.Element { return a.Slice(0, len(a.elems)) }

// CopyTo copies as many elements as fit into dst and returns the count.
func (a *Array) CopyTo(dst []scheme.Element) int { return copy(dst, a.elems) }

func (a *Array) Clone() *Array {
	return &Array{s: a.s, elems: slices.Clone(a.elems)}
}

// IsSorted reports whether the elements are strictly ascending, which also
// rules out duplicates and an element next to its own descendant.
func (a *Array) IsSorted() bool {
	for i := 1; i < len(a.elems); i++ {
		if a.s.Compare(a.elems[i-1], a.elems[i]) >= 0 {
			return false
		}
		if a.s.IsAncestor(a.elems[i-1], a.elems[i]) {
			return false
		}
	}
	return true
}

// Search finds e by binary search. It returns the position of e, or where
// it would be inserted, and whether it was found.
func (a *Array) Search(e scheme.Element) (int, bool) {
	return slices.BinarySearchFunc(a.elems, e, a.s.Compare)
}

// Equal reports whether both arrays hold the same elements of the same
// shape.
func (a *Array) Equal(b *Array) bool {
	return a.s == b.s && slices.Equal(a.elems, b.elems)
}

// MarshalBinary encodes the array as a sequence of element records.
func (a *Array) MarshalBinary() ([]byte, error) {
	b := make([]byte, 0, len(a.elems)*scheme.RecordSize)
	for _, e := range a.elems {
		b = a.s.AppendElement(b, e)
	}
	return b, nil
}

// UnmarshalBinary replaces the contents of a with the records in b. An
// array without a scheme takes the shape of the first record.
func (a *Array) UnmarshalBinary(b []byte) error {
	if len(b)%scheme.RecordSize != 0 {
		return fmt.Errorf("%w: %d bytes", ErrRecordsLength, len(b))
	}
	n := len(b) / scheme.RecordSize
	if n > 0 && !a.s.Shape().IsValid() {
		shape, _, err := scheme.DecodeRecord(b)
		if err != nil {
			return err
		}
		if a.s, err = scheme.New(shape); err != nil {
			return err
		}
	}
	elems := make([]scheme.Element, 0, n)
	for i := 0; i < n; i++ {
		e, err := a.s.DecodeElement(b[i*scheme.RecordSize:])
		if errors.Is(err, scheme.ErrShapeMismatch) {
			return fmt.Errorf("%w: record %d", ErrMixedShapes, i)
		}
		if err != nil {
			return fmt.Errorf("record %d: %w", i, err)
		}
		elems = append(elems, e)
	}
	a.elems = elems
	return nil
}
