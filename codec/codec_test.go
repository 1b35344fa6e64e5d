package codec

import (
	"testing"

	"github.com/iov-one/savingbank/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type shape interface {
	Corners() int
}

type square struct {
	Side uint64
}

func (square) Corners() int { return 4 }

type envelope struct {
	Shape shape
	Note  string
}

func init() {
	RegisterInterface((*shape)(nil))
	RegisterConcrete(&square{}, "test/square")
}

func TestMarshalInterface(t *testing.T) {
	in := envelope{Shape: &square{Side: 7}, Note: "hello"}
	bz, err := Marshal(in)
	require.NoError(t, err)

	var out envelope
	require.NoError(t, Unmarshal(bz, &out))
	assert.Equal(t, "hello", out.Note)
	require.NotNil(t, out.Shape)
	assert.Equal(t, 4, out.Shape.Corners())
	assert.Equal(t, &square{Side: 7}, out.Shape)
}

func TestUnmarshalGarbage(t *testing.T) {
	var out envelope
	err := Unmarshal([]byte{0xff, 0xff, 0xff}, &out)
	assert.True(t, errors.ErrInput.Is(err))
}

func TestJSON(t *testing.T) {
	bz, err := MarshalJSON(envelope{Shape: &square{Side: 3}})
	require.NoError(t, err)
	assert.Contains(t, string(bz), "test/square")

	var out envelope
	require.NoError(t, UnmarshalJSON(bz, &out))
	assert.Equal(t, &square{Side: 3}, out.Shape)
}
