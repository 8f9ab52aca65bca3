package variant

import (
	"github.com/clockworklabs/SpacetimeDB/crates/variant-go/internal/failure"
)

// Violation is the value a failure Handler receives, and the value the
// default handler panics with.
type Violation = failure.Violation

// Handler receives precondition violations. It must not return normally.
type Handler = failure.Handler

// Config configures failure reporting for the whole process.
type Config = failure.Config

// DefaultConfig returns a no-op zap logger and a handler that panics.
func DefaultConfig() Config {
	return failure.DefaultConfig()
}

// Configure installs cfg. Nil fields fall back to DefaultConfig.
func Configure(cfg Config) {
	failure.Configure(cfg)
}

// SetHandler installs h and returns the previous handler.
func SetHandler(h Handler) Handler {
	return failure.SetHandler(h)
}

// AsViolation returns the violation carried by a recovered panic value, or
// nil.
func AsViolation(r interface{}) *Violation {
	return failure.Recover(r)
}

// Code identifies the kind of a Violation.
type Code = failure.Code

const (
	CodeWrongAlternative = failure.CodeWrongAlternative
	CodeWrongSlotType    = failure.CodeWrongSlotType
	CodeIndexRange       = failure.CodeIndexRange
	CodeNoDefault        = failure.CodeNoDefault
	CodeConstructFailed  = failure.CodeConstructFailed
	CodeRelocateFailed   = failure.CodeRelocateFailed
	CodeUnordered        = failure.CodeUnordered
	CodeUnresolved       = failure.CodeUnresolved
	CodeNilReference     = failure.CodeNilReference
	CodePinned           = failure.CodePinned
)
