package uintarray

// header describes an encoded array. the low byte is the element width, the
// next is the backing width, then the length. the high byte is reserved and
// always zero.
type header uint32

func newHeader(size, width uint, length int) header {
	return header(size&0xff) | header(width&0xff)<<8 | header(length&0xff)<<16
}

func (h header) ElementBits() uint { return uint(h & 0xff) }
func (h header) BackingBits() uint { return uint(h >> 8 & 0xff) }
func (h header) Len() int          { return int(h >> 16 & 0xff) }
func (h header) Reserved() uint8   { return uint8(h >> 24) }

// Check returns an error if the header could not have come from a valid array.
func (h header) Check() error {
	if h.Reserved() != 0 {
		return EncodingError.New("reserved header bits set: %#08x", uint32(h))
	}
	if err := checkWidths(h.ElementBits(), h.BackingBits()); err != nil {
		return EncodingError.Wrap(err)
	}
	if c := capacity(h.ElementBits(), h.BackingBits()); h.Len() > c {
		return EncodingError.Wrap(CapacityExceededError.New(
			"length %d exceeds capacity %d", h.Len(), c))
	}
	return nil
}
