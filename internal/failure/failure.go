// Package failure is the process-global precondition reporting facility used
// by the variant containers. A handler installed here must not return
// normally; Report panics on its behalf if it does.
package failure

import (
	"fmt"
	"sync/atomic"

	"go.uber.org/zap"
)

// Code identifies the kind of violation.
type Code uint16

const (
	CodeWrongAlternative Code = 0x0001
	CodeWrongSlotType    Code = 0x0002
	CodeIndexRange       Code = 0x0003
	CodeNoDefault        Code = 0x0004
	CodeConstructFailed  Code = 0x0005
	CodeRelocateFailed   Code = 0x0006
	CodeUnordered        Code = 0x0007
	CodeUnresolved       Code = 0x0008
	CodeNilReference     Code = 0x0009
	CodePinned           Code = 0x000A
)

// String returns the human readable description of the code.
func (c Code) String() string {
	switch c {
	case CodeWrongAlternative:
		return "alternative not active"
	case CodeWrongSlotType:
		return "storage slot type mismatch"
	case CodeIndexRange:
		return "alternative index out of range"
	case CodeNoDefault:
		return "first alternative has no default value"
	case CodeConstructFailed:
		return "in-place construction failed"
	case CodeRelocateFailed:
		return "relocation into storage failed"
	case CodeUnordered:
		return "alternative is not ordered"
	case CodeUnresolved:
		return "no unique alternative for value"
	case CodeNilReference:
		return "nil reference"
	case CodePinned:
		return "pinned alternative cannot be moved"
	default:
		return "unknown violation"
	}
}

// Violation describes a precondition violation.
type Violation struct {
	Code   Code
	Op     string
	Detail string
}

func (v *Violation) Error() string {
	if v.Detail == "" {
		return fmt.Sprintf("variant: %s: %s", v.Op, v.Code)
	}
	return fmt.Sprintf("variant: %s: %s: %s", v.Op, v.Code, v.Detail)
}

// Handler receives violations. It must not return normally.
type Handler func(*Violation)

// Config is the process-wide facility configuration.
type Config struct {
	Logger  *zap.Logger
	Handler Handler
}

// DefaultConfig returns a silent logger and the panicking handler.
func DefaultConfig() Config {
	return Config{
		Logger:  zap.NewNop(),
		Handler: Panic,
	}
}

var (
	handler atomic.Pointer[Handler]
	logger  atomic.Pointer[zap.Logger]
)

func init() {
	Configure(DefaultConfig())
}

// Configure installs cfg. Nil fields keep their defaults.
func Configure(cfg Config) {
	def := DefaultConfig()
	if cfg.Logger == nil {
		cfg.Logger = def.Logger
	}
	if cfg.Handler == nil {
		cfg.Handler = def.Handler
	}
	logger.Store(cfg.Logger)
	h := cfg.Handler
	handler.Store(&h)
}

// SetHandler installs h and returns the previous handler.
func SetHandler(h Handler) Handler {
	if h == nil {
		h = Panic
	}
	prev := handler.Swap(&h)
	return *prev
}

// SetLogger installs l and returns the previous logger.
func SetLogger(l *zap.Logger) *zap.Logger {
	if l == nil {
		l = zap.NewNop()
	}
	return logger.Swap(l)
}

// Logger returns the current logger.
func Logger() *zap.Logger {
	return logger.Load()
}

// Panic is the default handler: it panics with the violation.
func Panic(v *Violation) {
	panic(v)
}

// Report logs the violation and passes it to the installed handler.
func Report(code Code, op string, format string, args ...interface{}) {
	v := &Violation{Code: code, Op: op}
	if format != "" {
		v.Detail = fmt.Sprintf(format, args...)
	}
	Logger().Error("variant precondition violated",
		zap.Uint16("code", uint16(code)),
		zap.String("op", op),
		zap.String("detail", v.Detail))

	(*handler.Load())(v)

	// A handler that returns leaves the caller with nothing sensible to do.
	panic(v)
}

// Recover converts a recovered panic value back into a violation. It returns
// nil when r is not one.
func Recover(r interface{}) *Violation {
	v, _ := r.(*Violation)
	return v
}
