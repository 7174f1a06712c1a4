// internal/fault/fault_test.go
package fault

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestError_Message(t *testing.T) {
	err := Fatalf("interface missing")
	assert.Equal(t, "interface missing", err.Error())

	wrapped := Wrap(err, KindFatal, "sample")
	assert.Equal(t, "sample: interface missing", wrapped.Error())
}

func TestWrap_Nil(t *testing.T) {
	assert.NoError(t, Wrap(nil, KindFatal, "x"))
	assert.NoError(t, Wrapf(nil, KindFatal, "x %d", 1))
	assert.NoError(t, Attr(nil, "k", "v"))
}

func TestGetKind(t *testing.T) {
	base := errors.New("connection timed out")

	assert.Equal(t, KindTransient, GetKind(Wrap(base, KindTransient, "dial")))
	assert.Equal(t, KindFatal, GetKind(Fatalf("no entry for %q", "eth0")))
	assert.Equal(t, KindUnknown, GetKind(base))

	// outermost classification wins
	outer := Wrap(Wrap(base, KindTransient, "dial"), KindFatal, "reset")
	assert.Equal(t, KindFatal, GetKind(outer))
	assert.True(t, IsFatal(outer))
	assert.True(t, errors.Is(outer, base))
}

func TestFields(t *testing.T) {
	err := Attr(Fatalf("open failed"), "path", "/proc/net/dev")
	err = Wrap(err, KindFatal, "sample")
	err = Attr(err, "interface", "eth0")

	fields := Fields(err)
	require.Len(t, fields, 4)

	got := map[any]any{fields[0]: fields[1], fields[2]: fields[3]}
	assert.Equal(t, "eth0", got["interface"])
	assert.Equal(t, "/proc/net/dev", got["path"])
}

func TestAttr_PlainErrorKeepsMessage(t *testing.T) {
	base := errors.New("boom")

	err := Attr(base, "k", "v")
	assert.Equal(t, "boom", err.Error())
	assert.True(t, errors.Is(err, base))
	assert.Equal(t, []any{"k", "v"}, Fields(err))
}

func TestAttr_KeepsInnerKind(t *testing.T) {
	inner := Wrap(errors.New("refused"), KindFatal, "dial")
	err := Attr(fmt.Errorf("reset: %w", inner), "modem", "192.168.100.1:80")

	assert.True(t, IsFatal(err))
	assert.Equal(t, "reset: dial: refused", err.Error())
}

func TestAttr_DoesNotMutateShared(t *testing.T) {
	sentinel := Fatalf("interface missing")

	a := Attr(sentinel, "interface", "eth0")
	b := Attr(sentinel, "interface", "wan0")

	assert.Empty(t, Fields(sentinel))
	assert.Equal(t, []any{"interface", "eth0"}, Fields(a))
	assert.Equal(t, []any{"interface", "wan0"}, Fields(b))
	assert.Equal(t, "interface missing", a.Error())
}

func TestKind_String(t *testing.T) {
	assert.Equal(t, "fatal", KindFatal.String())
	assert.Equal(t, "transient", KindTransient.String())
	assert.Equal(t, "unknown", Kind(42).String())
}
