package scheme

import (
	"github.com/forestrie/go-meshforest/hex"
	"github.com/forestrie/go-meshforest/pyra"
	"github.com/forestrie/go-meshforest/quad"
	"github.com/forestrie/go-meshforest/tet"
	"github.com/forestrie/go-meshforest/tri"
)

// Shape identifies the codec of a tree. The zero value is not a shape.
type Shape uint8

const (
	ShapeInvalid Shape = iota
	Quad
	Triangle
	Hex
	Tet
	Pyramid
	shapeMax
)

var shapeNames = [shapeMax]string{
	ShapeInvalid: "invalid",
	Quad:         "quad",
	Triangle:     "triangle",
	Hex:          "hex",
	Tet:          "tet",
	Pyramid:      "pyramid",
}

func (s Shape) IsValid() bool { return s > ShapeInvalid && s < shapeMax }

func (s Shape) String() string {
	if s >= shapeMax {
		return "unknown"
	}
	return shapeNames[s]
}

// ParseShape returns the shape with the given name.
func ParseShape(name string) (Shape, error) {
	for s := Quad; s < shapeMax; s++ {
		if shapeNames[s] == name {
			return s, nil
		}
	}
	return ShapeInvalid, ErrUnknownShape
}

// MarshalText allows shapes to appear by name in configuration files.
func (s Shape) MarshalText() ([]byte, error) {
	if !s.IsValid() {
		return nil, ErrUnknownShape
	}
	return []byte(s.String()), nil
}

func (s *Shape) UnmarshalText(b []byte) error {
	v, err := ParseShape(string(b))
	if err != nil {
		return err
	}
	*s = v
	return nil
}

func (s Shape) Dim() int {
	switch s {
	case Quad, Triangle:
		return 2
	case Hex, Tet, Pyramid:
		return 3
	}
	return 0
}

func (s Shape) MaxLevel() int {
	switch s {
	case Quad:
		return quad.MaxLevel
	case Triangle:
		return tri.MaxLevel
	case Hex:
		return hex.MaxLevel
	case Tet:
		return tet.MaxLevel
	case Pyramid:
		return pyra.MaxLevel
	}
	return -1
}

// NumTypes is the number of values the Type field of an element may take.
func (s Shape) NumTypes() int {
	switch s {
	case Quad, Hex:
		return 1
	case Triangle:
		return tri.NumTypes
	case Tet:
		return tet.NumTypes
	case Pyramid:
		return pyra.NumTypes
	}
	return 0
}
