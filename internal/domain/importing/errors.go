package importing

import (
	"errors"
	"fmt"
)

var (
	ErrEmptyFile            = errors.New("import file has no data rows")
	ErrRowShape             = errors.New("column count mismatch")
	ErrUnsupportedFormat    = errors.New("unsupported file format")
	ErrReferenceLookup      = errors.New("reference data lookup failed")
	ErrReconciliationLookup = errors.New("existing record lookup failed")
	ErrCommit               = errors.New("commit failed")
)

type RowError struct {
	RowIndex int
	Err      error
}

func (e RowError) Error() string {
	return fmt.Sprintf("row %d: %v", e.RowIndex, e.Err)
}

func (e RowError) Unwrap() error {
	return e.Err
}
