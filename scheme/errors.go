package scheme

import "errors"

var (
	ErrUnknownShape         = errors.New("the element shape is not known")
	ErrLevelOutOfRange      = errors.New("the level is outside the range supported by the shape")
	ErrChildIndexOutOfRange = errors.New("the child index is outside the range of children of the element")
	ErrAncestorLevel        = errors.New("the ancestor level exceeds the level of the element")
	ErrRootHasNoParent      = errors.New("the root element has no parent")
	ErrInvalidType          = errors.New("the element type is not valid for the shape")
	ErrInvalidElement       = errors.New("the element is not part of the tree")
	ErrNoSuccessor          = errors.New("the element is the last at its level")
	ErrLinearIDOutOfRange   = errors.New("the linear id exceeds the number of elements at the level")
)

var (
	ErrRecordSize    = errors.New("the element record is too short")
	ErrRecordVersion = errors.New("the element record version is not supported")
	ErrShapeMismatch = errors.New("the element record shape does not match the scheme")
)
