package parser

import (
	"errors"
	"fmt"
)

var (
	// ErrMissingPages is matched by a StructuralError for an export without
	// a pages list.
	ErrMissingPages = errors.New("pages not found")

	// ErrMissingID is the rejection reason for a page without an id.
	ErrMissingID = errors.New("missing id")
)

// StructuralError reports an export document whose shape is unusable. It
// aborts the whole run.
type StructuralError struct {
	Path string
}

func (e *StructuralError) Error() string {
	if e.Path == "" {
		return "invalid JSON"
	}
	return fmt.Sprintf("the element '%s' is not found in the JSON file", e.Path)
}

// Is makes errors.Is(err, ErrMissingPages) hold for a missing .pages element.
func (e *StructuralError) Is(target error) bool {
	return target == ErrMissingPages && e.Path == ".pages"
}
