package uintarray

import (
	"math"
	"testing"

	num "github.com/shabbyrobe/go-num"
	"github.com/zeebo/assert"
	"github.com/zeebo/pcg"
)

func TestBits(t *testing.T) {
	t.Run("Basic", func(t *testing.T) {
		var w num.U128
		w = putField(w, 0, 5, 1)
		w = putField(w, 1, 5, 2)
		w = putField(w, 2, 5, 3)

		assert.Equal(t, getField(w, 0, 5), uint64(1))
		assert.Equal(t, getField(w, 1, 5), uint64(2))
		assert.Equal(t, getField(w, 2, 5), uint64(3))
		assert.Equal(t, w.AsUint64(), uint64(1|2<<5|3<<10))
	})

	t.Run("Mask", func(t *testing.T) {
		assert.That(t, fieldMask(0).IsZero())
		assert.That(t, fieldMask(1).Equal(num.U128From64(1)))
		assert.That(t, fieldMask(64).Equal(num.U128From64(math.MaxUint64)))
		assert.That(t, fieldMask(65).Equal(num.U128FromRaw(1, math.MaxUint64)))
		assert.That(t, fieldMask(128).Equal(num.MaxU128))
	})

	t.Run("Straddle", func(t *testing.T) {
		// a 24 bit field at index 2 covers bits 48 through 71
		w := putField(num.U128{}, 2, 24, 0xabcdef)
		hi, lo := w.Raw()
		assert.Equal(t, hi, uint64(0xab))
		assert.Equal(t, lo, uint64(0xcdef)<<48)
		assert.Equal(t, getField(w, 2, 24), uint64(0xabcdef))
	})

	t.Run("Discard", func(t *testing.T) {
		w := putField(num.U128{}, 1, 4, 0xff)
		assert.Equal(t, getField(w, 0, 4), uint64(0))
		assert.Equal(t, getField(w, 1, 4), uint64(0xf))
		assert.Equal(t, getField(w, 2, 4), uint64(0))
	})

	t.Run("Open", func(t *testing.T) {
		var w num.U128
		w = putField(w, 0, 5, 1)
		w = putField(w, 1, 5, 2)
		w = putField(w, 2, 5, 3)

		w = openField(w, 1, 5)
		assert.Equal(t, getField(w, 0, 5), uint64(1))
		assert.Equal(t, getField(w, 1, 5), uint64(0))
		assert.Equal(t, getField(w, 2, 5), uint64(2))
		assert.Equal(t, getField(w, 3, 5), uint64(3))
	})

	t.Run("Close", func(t *testing.T) {
		var w num.U128
		w = putField(w, 0, 5, 1)
		w = putField(w, 1, 5, 2)
		w = putField(w, 2, 5, 3)

		w = closeField(w, 1, 5)
		assert.Equal(t, getField(w, 0, 5), uint64(1))
		assert.Equal(t, getField(w, 1, 5), uint64(3))
		assert.Equal(t, getField(w, 2, 5), uint64(0))
	})

	t.Run("Top", func(t *testing.T) {
		w := putField(num.MaxU128, 0, 64, 7)
		w = closeField(w, 0, 64)
		assert.Equal(t, getField(w, 0, 64), uint64(math.MaxUint64))
		assert.Equal(t, getField(w, 1, 64), uint64(0))
	})

	t.Run("Fuzz", func(t *testing.T) {
		for bits := uint(1); bits <= 64; bits++ {
			n := 128 / bits
			exp := make([]uint64, n)
			var w num.U128
			check := func() {
				t.Helper()
				for i := uint(0); i < n; i++ {
					assert.Equal(t, exp[i], getField(w, i, bits))
				}
			}

			for j := 0; j < 100; j++ {
				i, v := uint(pcg.Uint32n(uint32(n))), pcg.Uint64()&(1<<bits-1)
				w = putField(w, i, bits, v)
				exp[i] = v
				check()
			}
		}
	})
}

func BenchmarkBits(b *testing.B) {
	b.Run("Get", func(b *testing.B) {
		w := num.MaxU128
		for i := 0; i < b.N; i++ {
			getField(w, uint(pcg.Uint32n(128/11)), 11)
		}
	})

	b.Run("Put", func(b *testing.B) {
		var w num.U128
		for i := 0; i < b.N; i++ {
			w = putField(w, uint(pcg.Uint32n(128/11)), 11, 0)
		}
	})
}
