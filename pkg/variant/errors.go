package variant

import (
	"errors"

	"github.com/clockworklabs/SpacetimeDB/crates/variant-go/internal/resolve"
)

var (
	ErrNoAlternative = resolve.ErrNoAlternative
	ErrAmbiguous     = resolve.ErrAmbiguous
	ErrNotUnique     = resolve.ErrNotUnique
	ErrNotAssignable = resolve.ErrNotAssignable
	ErrIndexRange    = resolve.ErrIndexRange
	ErrNilReference  = resolve.ErrNilReference
)

// ResolutionError carries the source type and candidate alternatives of a
// failed selection. It unwraps to one of the Err values above.
type ResolutionError = resolve.ResolutionError

func withOp(err error, op string) error {
	var rerr *ResolutionError
	if errors.As(err, &rerr) {
		cp := *rerr
		cp.Op = op
		return &cp
	}
	return err
}
