package uintarray

import (
	"encoding/binary"
)

const headerSize = 4

func wordSize(width uint) int { return int(width+7) / 8 }

// AppendBinary appends the binary encoding of the Array to b. The encoding
// is a 4 byte little endian header holding the widths and length followed
// by the low bytes of the backing word, also little endian.
func (a Array) AppendBinary(b []byte) ([]byte, error) {
	if err := checkWidths(uint(a.size), uint(a.width)); err != nil {
		return b, EncodingError.Wrap(err)
	}
	b = binary.LittleEndian.AppendUint32(b, uint32(newHeader(uint(a.size), uint(a.width), a.Len())))
	w := toU128(a.word)
	return append(b, w[:wordSize(uint(a.width))]...), nil
}

// MarshalBinary implements encoding.BinaryMarshaler.
func (a Array) MarshalBinary() ([]byte, error) {
	return a.AppendBinary(make([]byte, 0, headerSize+wordSize(uint(a.width))))
}

// UnmarshalBinary implements encoding.BinaryUnmarshaler. The encoding must be
// exactly the size MarshalBinary produces and have no bits set past the last
// element.
func (a *Array) UnmarshalBinary(data []byte) error {
	if len(data) < headerSize {
		return EncodingError.New("short header: %d bytes", len(data))
	}
	h := header(binary.LittleEndian.Uint32(data))
	if err := h.Check(); err != nil {
		return err
	}
	if exp := headerSize + wordSize(h.BackingBits()); len(data) != exp {
		return EncodingError.New("encoding is %d bytes, expected %d", len(data), exp)
	}

	word := readU128(data[headerSize:])
	dec, err := FromWord(word, h.ElementBits(), h.BackingBits(), h.Len())
	if err != nil {
		return EncodingError.Wrap(err)
	}
	if !dec.word.Equal(word) {
		return EncodingError.New("bits set past element %d", h.Len())
	}

	*a = dec
	return nil
}
