package uintarray

import (
	"testing"

	"github.com/zeebo/assert"
)

func TestMarshal(t *testing.T) {
	t.Run("Basic", func(t *testing.T) {
		a := must(New(8, 32))
		a = must(a.Extend(1, 2, 200))

		data, err := a.MarshalBinary()
		assert.NoError(t, err)
		assert.DeepEqual(t, data, []byte{8, 32, 3, 0, 1, 2, 200, 0})

		var b Array
		assert.NoError(t, b.UnmarshalBinary(data))
		assert.That(t, a.Equal(b))
		assert.Equal(t, b.Cap(), 4)
	})

	t.Run("Width", func(t *testing.T) {
		a := must(New(4, 12))
		a = must(a.Extend(0xf, 0, 0xa))

		data, err := a.MarshalBinary()
		assert.NoError(t, err)
		assert.DeepEqual(t, data, []byte{4, 12, 3, 0, 0x0f, 0x0a})
	})

	t.Run("Append", func(t *testing.T) {
		a := must(New(1, 1))
		a = must(a.Append(1))

		data, err := a.AppendBinary([]byte("prefix"))
		assert.NoError(t, err)
		assert.DeepEqual(t, data, append([]byte("prefix"), 1, 1, 1, 0, 1))
	})

	t.Run("Zero", func(t *testing.T) {
		_, err := Array{}.MarshalBinary()
		assert.That(t, EncodingError.Has(err))
	})

	t.Run("Invalid", func(t *testing.T) {
		for _, data := range [][]byte{
			nil,
			{8, 32, 0},
			{8, 32, 0, 1, 0, 0, 0, 0},    // reserved byte
			{0, 32, 0, 0, 0, 0, 0, 0},    // no element width
			{8, 32, 5, 0, 0, 0, 0, 0},    // too long
			{8, 32, 1, 0, 0, 0, 0},       // short word
			{8, 32, 1, 0, 0, 0, 0, 0, 0}, // long word
			{8, 32, 1, 0, 1, 2, 0, 0},    // bits past the end
			{8, 12, 1, 0, 1, 0x10},       // bits past the backing width
		} {
			var a Array
			assert.That(t, EncodingError.Has(a.UnmarshalBinary(data)))
			assert.That(t, a.Equal(Array{}))
		}
	})

	t.Run("Fuzz", func(t *testing.T) {
		for i := 0; i < 1000; i++ {
			size, width := randomWidths()
			a := randomArray(size, width)

			data, err := a.MarshalBinary()
			assert.NoError(t, err)
			assert.Equal(t, len(data), headerSize+wordSize(width))

			var b Array
			assert.NoError(t, b.UnmarshalBinary(data))
			assert.That(t, a.Equal(b))
			assert.Equal(t, a, b)
		}
	})
}
