package forest

import "errors"

var (
	ErrNotCommitted      = errors.New("the forest has not been committed")
	ErrAlreadyCommitted  = errors.New("the forest is committed and can not change")
	ErrNoSource          = errors.New("a source forest was required but not provided")
	ErrNoAdaptFunc       = errors.New("an adapt function was required but not provided")
	ErrNotEmpty          = errors.New("the forest already holds trees")
	ErrLevelOutOfRange   = errors.New("the level is outside the range supported by the forest")
	ErrTreeCountMismatch = errors.New("the number of trees does not match")
	ErrTreeIndex         = errors.New("the tree index is out of range")
	ErrElementIndex      = errors.New("the element index is out of range")
)

var (
	ErrSnapshotInvalid = errors.New("the snapshot is not a valid forest snapshot")
	ErrConfigInvalid   = errors.New("the forest configuration is invalid")
)
