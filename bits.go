package uintarray

import (
	num "github.com/shabbyrobe/go-num"
)

// the backing word is always a U128. narrower backing widths only ever have
// their low bits set, so the same arithmetic serves every width. fields are
// little endian: field 0 lives in the lowest order bits.

var one = num.U128From64(1)

// fieldMask returns 1<<n - 1. n may be the full 128 bits, in which case the
// shift wraps to zero and the decrement wraps to all ones.
func fieldMask(n uint) num.U128 { return one.Lsh(n).Dec() }

// andNot returns w with the bits of m cleared.
func andNot(w, m num.U128) num.U128 { return w.And(m.Xor(num.MaxU128)) }

// getField reads the idx'th field of size bits out of w.
func getField(w num.U128, idx, size uint) uint64 {
	return w.Rsh(idx * size).And(fieldMask(size)).AsUint64()
}

// putField returns w with the idx'th field of size bits replaced by val. Bits
// of val above size are discarded.
func putField(w num.U128, idx, size uint, val uint64) num.U128 {
	o, m := idx*size, fieldMask(size)
	w = andNot(w, m.Lsh(o))
	return w.Or(num.U128From64(val).And(m).Lsh(o))
}

// openField returns w with a zeroed field of size bits opened at idx. Fields
// at and above idx move up one slot, and anything pushed past 128 bits is lost.
func openField(w num.U128, idx, size uint) num.U128 {
	low := fieldMask(idx * size)
	return w.And(low).Or(andNot(w, low).Lsh(size))
}

// closeField returns w with the field at idx removed. Fields above idx move
// down one slot and the top slot is zero filled.
func closeField(w num.U128, idx, size uint) num.U128 {
	o := idx * size
	return w.And(fieldMask(o)).Or(w.Rsh(o + size).Lsh(o))
}
