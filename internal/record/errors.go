package record

import (
	"errors"
	"fmt"
)

// ErrMissingIdentifier is matched by every MissingIdentifierError.
var ErrMissingIdentifier = errors.New("no citation key found")

// MissingIdentifierError reports a document that has no usable citation key.
// It is the only condition under which Parse fails.
type MissingIdentifierError struct {
	ControlNumber int    // INSPIRE record id, 0 if the document has none
	Title         string // first title, if any, for diagnostics
}

func (e *MissingIdentifierError) Error() string {
	switch {
	case e.ControlNumber != 0:
		return fmt.Sprintf("%v in record %d", ErrMissingIdentifier, e.ControlNumber)
	case e.Title != "":
		return fmt.Sprintf("%v in record %q", ErrMissingIdentifier, e.Title)
	default:
		return ErrMissingIdentifier.Error()
	}
}

func (e *MissingIdentifierError) Unwrap() error {
	return ErrMissingIdentifier
}

// IsMissingIdentifier returns true if err is (or wraps) a MissingIdentifierError.
func IsMissingIdentifier(err error) bool {
	return errors.Is(err, ErrMissingIdentifier)
}
