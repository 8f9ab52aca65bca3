package failure

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestCodeString(t *testing.T) {
	tests := []struct {
		code Code
		want string
	}{
		{CodeWrongAlternative, "alternative not active"},
		{CodeWrongSlotType, "storage slot type mismatch"},
		{CodeIndexRange, "alternative index out of range"},
		{CodeNoDefault, "first alternative has no default value"},
		{CodeConstructFailed, "in-place construction failed"},
		{CodeRelocateFailed, "relocation into storage failed"},
		{CodeUnordered, "alternative is not ordered"},
		{CodeUnresolved, "no unique alternative for value"},
		{CodeNilReference, "nil reference"},
		{CodePinned, "pinned alternative cannot be moved"},
		{Code(0xFFFF), "unknown violation"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.code.String())
		})
	}
}

func TestViolationError(t *testing.T) {
	v := &Violation{Code: CodeIndexRange, Op: "index.U8Of"}
	assert.Equal(t, "variant: index.U8Of: alternative index out of range", v.Error())

	v.Detail = "300"
	assert.Equal(t, "variant: index.U8Of: alternative index out of range: 300", v.Error())
}

func TestReportDefaultPanics(t *testing.T) {
	defer Configure(DefaultConfig())
	Configure(DefaultConfig())

	defer func() {
		v := Recover(recover())
		require.NotNil(t, v)
		assert.Equal(t, CodeWrongAlternative, v.Code)
		assert.Equal(t, "Get0", v.Op)
		assert.Equal(t, "active 1", v.Detail)
	}()

	Report(CodeWrongAlternative, "Get0", "active %d", 1)
	t.Fatal("Report returned")
}

func TestReportHandlerThatReturnsStillPanics(t *testing.T) {
	var seen []*Violation
	prev := SetHandler(func(v *Violation) { seen = append(seen, v) })
	defer SetHandler(prev)

	assert.Panics(t, func() {
		Report(CodeUnordered, "Compare", "")
	})
	require.Len(t, seen, 1)
	assert.Equal(t, CodeUnordered, seen[0].Code)
	assert.Empty(t, seen[0].Detail)
}

func TestReportLogs(t *testing.T) {
	core, logs := observer.New(zapcore.ErrorLevel)
	prev := SetLogger(zap.New(core))
	defer SetLogger(prev)

	assert.Panics(t, func() {
		Report(CodeNilReference, "Ref.Bind", "")
	})

	entries := logs.All()
	require.Len(t, entries, 1)
	assert.Equal(t, "variant precondition violated", entries[0].Message)
	fields := entries[0].ContextMap()
	assert.Equal(t, uint16(CodeNilReference), fields["code"])
	assert.Equal(t, "Ref.Bind", fields["op"])
}

func TestConfigureNilFieldsKeepDefaults(t *testing.T) {
	defer Configure(DefaultConfig())

	Configure(Config{})
	assert.NotNil(t, Logger())
	assert.Panics(t, func() {
		Report(CodeNoDefault, "New", "")
	})
}

func TestRecoverIgnoresOtherPanics(t *testing.T) {
	assert.Nil(t, Recover("boom"))
	assert.Nil(t, Recover(nil))
}
