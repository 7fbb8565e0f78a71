package scheme

import (
	"encoding/binary"
)

const (
	// Element record layout
	//
	// .         | x   | y   | z    | level | type | shape | version |
	// .         | 0-3 | 4-7 | 8-11 |  12   |  13  |  14   |   15    |
	// bytes     | 4   | 4   | 4    |   1   |  1   |   1   |    1    |
	//
	// Coordinates are big endian. A record is self describing, the shape
	// byte names the codec the coordinates belong to.

	RecordXFirstByte     = 0
	RecordYFirstByte     = 4
	RecordZFirstByte     = 8
	RecordLevelByte      = 12
	RecordTypeByte       = 13
	RecordShapeByte      = 14
	RecordVersionByte    = 15
	RecordSize           = 16
	RecordCoordSize      = 4
	RecordCurrentVersion = uint8(0)
)

// AppendElement appends the record for e to dst.
func (s Scheme) AppendElement(dst []byte, e Element) []byte {
	var r [RecordSize]byte
	binary.BigEndian.PutUint32(r[RecordXFirstByte:RecordXFirstByte+RecordCoordSize], uint32(e.X))
	binary.BigEndian.PutUint32(r[RecordYFirstByte:RecordYFirstByte+RecordCoordSize], uint32(e.Y))
	binary.BigEndian.PutUint32(r[RecordZFirstByte:RecordZFirstByte+RecordCoordSize], uint32(e.Z))
	r[RecordLevelByte] = uint8(e.Level)
	r[RecordTypeByte] = uint8(e.Type)
	r[RecordShapeByte] = uint8(s.shape)
	r[RecordVersionByte] = RecordCurrentVersion
	return append(dst, r[:]...)
}

func (s Scheme) EncodeElement(e Element) []byte {
	return s.AppendElement(make([]byte, 0, RecordSize), e)
}

// DecodeRecord reads the shape and element from the first record in b
// without validating the element.
func DecodeRecord(b []byte) (Shape, Element, error) {
	if len(b) < RecordSize {
		return ShapeInvalid, Element{}, ErrRecordSize
	}
	if b[RecordVersionByte] != RecordCurrentVersion {
		return ShapeInvalid, Element{}, ErrRecordVersion
	}
	e := Element{
		X:     int32(binary.BigEndian.Uint32(b[RecordXFirstByte : RecordXFirstByte+RecordCoordSize])),
		Y:     int32(binary.BigEndian.Uint32(b[RecordYFirstByte : RecordYFirstByte+RecordCoordSize])),
		Z:     int32(binary.BigEndian.Uint32(b[RecordZFirstByte : RecordZFirstByte+RecordCoordSize])),
		Level: int8(b[RecordLevelByte]),
		Type:  int8(b[RecordTypeByte]),
	}
	return Shape(b[RecordShapeByte]), e, nil
}

// DecodeElement reads the first record in b and checks it holds a valid
// element of this scheme's shape.
func (s Scheme) DecodeElement(b []byte) (Element, error) {
	shape, e, err := DecodeRecord(b)
	if err != nil {
		return Element{}, err
	}
	if shape != s.shape {
		return Element{}, ErrShapeMismatch
	}
	if err := s.Validate(e); err != nil {
		return Element{}, err
	}
	return e, nil
}
