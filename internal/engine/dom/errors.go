package dom

import "errors"

// Errors returned by document operations.
var (
	// ErrInvalidNode indicates a NodeID that does not refer to a node.
	ErrInvalidNode = errors.New("invalid node")

	// ErrNotText indicates a text-only operation was applied to a non-text node.
	ErrNotText = errors.New("node is not a text node")

	// ErrOffsetOutOfRange indicates a point offset outside its container.
	ErrOffsetOutOfRange = errors.New("offset out of range")

	// ErrHierarchy indicates an insertion that would create a cycle or
	// move the root.
	ErrHierarchy = errors.New("invalid hierarchy change")

	// ErrCrossesBlocks indicates a range whose ends sit in different block
	// containers and cannot be extracted as one inline fragment.
	ErrCrossesBlocks = errors.New("range crosses block boundaries")

	// ErrEmptyRange indicates a range that covers no content.
	ErrEmptyRange = errors.New("range is empty")
)
