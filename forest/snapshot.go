package forest

import (
	"fmt"

	dtcbor "github.com/datatrails/go-datatrails-common/cbor"
	"github.com/datatrails/go-datatrails-common/logger"
	"github.com/fxamacker/cbor/v2"
	"github.com/google/uuid"

	"github.com/forestrie/go-meshforest/elements"
	"github.com/forestrie/go-meshforest/scheme"
)

const (
	// SnapshotTag marks a CBOR item as a forest snapshot.
	SnapshotTag = uint64(0x6d666f72)

	SnapshotCurrentVersion = uint16(0)
)

// snapshot is the CBOR form of a committed forest. Each tree is stored as
// its element records, the same bytes elements.Array marshals to.
type snapshot struct {
	Version  uint16         `cbor:"1,keyasint"`
	ID       []byte         `cbor:"2,keyasint"`
	MaxLevel int            `cbor:"3,keyasint"`
	NumTrees int            `cbor:"4,keyasint"`
	Trees    []treeSnapshot `cbor:"5,keyasint"`
}

type treeSnapshot struct {
	Shape    uint8  `cbor:"1,keyasint"`
	Elements []byte `cbor:"2,keyasint"`
}

// NewSnapshotCodec returns a codec with deterministic encoding, so equal
// forests produce identical snapshots.
func NewSnapshotCodec() (dtcbor.CBORCodec, error) {
	codec, err := dtcbor.NewCBORCodec(
		dtcbor.NewDeterministicEncOpts(),
		dtcbor.NewDeterministicDecOpts(),
	)
	if err != nil {
		return dtcbor.CBORCodec{}, err
	}
	return codec, nil
}

func EncodeSnapshot(codec dtcbor.CBORCodec, f *Forest) ([]byte, error) {
	if !f.committed {
		return nil, ErrNotCommitted
	}
	id, err := f.ID.MarshalBinary()
	if err != nil {
		return nil, err
	}
	snap := snapshot{
		Version:  SnapshotCurrentVersion,
		ID:       id,
		MaxLevel: f.opts.MaxLevel,
		NumTrees: len(f.trees),
		Trees:    make([]treeSnapshot, 0, len(f.trees)),
	}
	for _, t := range f.trees {
		records, err := t.MarshalBinary()
		if err != nil {
			return nil, err
		}
		snap.Trees = append(snap.Trees, treeSnapshot{Shape: uint8(t.Scheme().Shape()), Elements: records})
	}
	return codec.MarshalCBOR(cbor.Tag{Number: SnapshotTag, Content: snap})
}

// DecodeSnapshot returns the committed forest held in data. The snapshot's
// maximum level applies unless opts override it.
func DecodeSnapshot(log logger.Logger, codec dtcbor.CBORCodec, data []byte, opts ...Option) (*Forest, error) {
	var tag cbor.RawTag
	if err := codec.UnmarshalInto(data, &tag); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSnapshotInvalid, err)
	}
	if tag.Number != SnapshotTag {
		return nil, fmt.Errorf("%w: tag %d", ErrSnapshotInvalid, tag.Number)
	}
	var snap snapshot
	if err := codec.UnmarshalInto(tag.Content, &snap); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSnapshotInvalid, err)
	}
	if snap.Version != SnapshotCurrentVersion {
		return nil, fmt.Errorf("%w: version %d", ErrSnapshotInvalid, snap.Version)
	}
	if snap.NumTrees != len(snap.Trees) {
		return nil, fmt.Errorf("%w: %w: %d recorded, %d present",
			ErrSnapshotInvalid, ErrTreeCountMismatch, snap.NumTrees, len(snap.Trees))
	}
	id, err := uuid.FromBytes(snap.ID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSnapshotInvalid, err)
	}

	f := New(log, append([]Option{WithMaxLevel(snap.MaxLevel)}, opts...)...)
	f.ID = id
	for i, ts := range snap.Trees {
		s, err := scheme.New(scheme.Shape(ts.Shape))
		if err != nil {
			return nil, fmt.Errorf("%w: tree %d: %w", ErrSnapshotInvalid, i, err)
		}
		t := elements.New(s, 0)
		if err := t.UnmarshalBinary(ts.Elements); err != nil {
			return nil, fmt.Errorf("%w: tree %d: %w", ErrSnapshotInvalid, i, err)
		}
		if !t.IsSorted() {
			return nil, fmt.Errorf("%w: tree %d is not in linear order", ErrSnapshotInvalid, i)
		}
		f.trees = append(f.trees, t)
	}
	f.setOffsets()
	f.committed = true
	return f, nil
}
