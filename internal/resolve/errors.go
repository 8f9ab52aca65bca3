package resolve

import (
	"errors"
	"fmt"
	"reflect"
)

var (
	ErrNoAlternative = errors.New("variant: no alternative accepts the value")
	ErrAmbiguous     = errors.New("variant: value converts equally well to more than one alternative")
	ErrNotUnique     = errors.New("variant: type does not occur exactly once among the alternatives")
	ErrNotAssignable = errors.New("variant: value cannot initialise the selected alternative")
	ErrIndexRange    = errors.New("variant: alternative index out of range")
	ErrNilReference  = errors.New("variant: reference alternative cannot bind nil")
)

// ResolutionError reports why a source type could not be mapped to a single
// alternative.
type ResolutionError struct {
	Op         string
	From       reflect.Type
	Candidates []int
	Err        error
}

func (e *ResolutionError) Error() string {
	from := "<nil>"
	if e.From != nil {
		from = e.From.String()
	}
	if len(e.Candidates) > 0 {
		return fmt.Sprintf("%s: %s from %s (candidates %v)", e.Op, e.Err, from, e.Candidates)
	}
	return fmt.Sprintf("%s: %s from %s", e.Op, e.Err, from)
}

func (e *ResolutionError) Unwrap() error {
	return e.Err
}
