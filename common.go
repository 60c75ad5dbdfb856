package uintarray

import (
	"encoding/binary"

	num "github.com/shabbyrobe/go-num"
)

// u128 backed by an array that's always little endian

type u128 [16]byte

func toU128(v num.U128) (f u128) {
	hi, lo := v.Raw()
	binary.LittleEndian.PutUint64(f[0:8], lo)
	binary.LittleEndian.PutUint64(f[8:16], hi)
	return f
}

func (f u128) value() num.U128 {
	return num.U128FromRaw(
		binary.LittleEndian.Uint64(f[8:16]),
		binary.LittleEndian.Uint64(f[0:8]))
}

// readU128 decodes up to 16 little endian bytes from buf, zero filling the
// missing high order bytes.
func readU128(buf []byte) num.U128 {
	var f u128
	copy(f[:], buf)
	return f.value()
}
