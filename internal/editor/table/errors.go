package table

import "errors"

// Common errors for table operations.
var (
	ErrInvalidSize = errors.New("table must have at least one row and one column")
	ErrLastRow     = errors.New("cannot delete the last row")
	ErrLastColumn  = errors.New("cannot delete the last column")
	ErrNotInTable  = errors.New("node is not inside a table cell")
)
