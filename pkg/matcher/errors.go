package matcher

import (
	"errors"
	"fmt"
)

// ErrNilFilter is returned by Remove and RemoveBlacklist when the filter
// callback is nil.
var ErrNilFilter = errors.New("matcher: nil leaf filter")

// PatternError reports a regular-expression criterion that failed to
// compile. NewLeaf returns it so a bad pattern is never silently treated as
// "matches nothing".
type PatternError struct {
	Field   string
	Pattern string
	Err     error
}

func (e *PatternError) Error() string {
	return fmt.Sprintf("matcher: bad %s pattern %q: %v", e.Field, e.Pattern, e.Err)
}

func (e *PatternError) Unwrap() error { return e.Err }
