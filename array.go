// Package uintarray packs short sequences of small unsigned integers into a
// single fixed width word.
package uintarray

import (
	"math/bits"
	"strconv"
	"strings"

	num "github.com/shabbyrobe/go-num"
	"golang.org/x/exp/constraints"
)

const (
	maxElementBits = 64  // values are uint64s
	maxBackingBits = 128 // the backing word is a num.U128
)

// Array is an immutable sequence of unsigned integers packed into a single
// backing word. Every method that changes the sequence returns a new Array
// and leaves the receiver alone, so Arrays may be copied and shared freely.
//
// The zero Array has no capacity. Use New, For or FromWord to make one.
type Array struct {
	word  num.U128
	size  uint8 // bits per element
	width uint8 // bits in the backing word
	len   uint8
}

func capacity(size, width uint) int { return int(width / size) }

func checkWidths(size, width uint) error {
	switch {
	case size == 0:
		return CapacityError.New("element width must be positive")
	case width > maxBackingBits:
		return CapacityError.New("backing width %d exceeds %d bits", width, maxBackingBits)
	case size > maxElementBits:
		return CapacityError.New("element width %d exceeds %d bits", size, maxElementBits)
	case size > width:
		return CapacityError.New("element width %d exceeds backing width %d", size, width)
	}
	return nil
}

// New returns an empty Array holding elementBits wide values in a
// backingBits wide word. It has room for backingBits/elementBits elements.
func New(elementBits, backingBits uint) (Array, error) {
	if err := checkWidths(elementBits, backingBits); err != nil {
		return Array{}, err
	}
	return Array{size: uint8(elementBits), width: uint8(backingBits)}, nil
}

// For returns an empty Array holding values of type E packed into a word the
// size of W. For example, For[uint8, uint32]() holds 4 bytes.
func For[E, W constraints.Unsigned]() (Array, error) {
	return New(typeBits[E](), typeBits[W]())
}

func typeBits[T constraints.Unsigned]() uint { return uint(bits.Len64(uint64(^T(0)))) }

// FromWord returns an Array that adopts word as its backing word with the
// first length elements present. Bits of word past the last element are
// discarded.
func FromWord(word num.U128, elementBits, backingBits uint, length int) (Array, error) {
	a, err := New(elementBits, backingBits)
	if err != nil {
		return Array{}, err
	}
	if length < 0 || length > a.Cap() {
		return Array{}, CapacityExceededError.New("length %d outside capacity %d", length, a.Cap())
	}
	a.word = word.And(fieldMask(uint(length) * elementBits))
	a.len = uint8(length)
	return a, nil
}

func (a Array) Len() int          { return int(a.len) }
func (a Array) IsEmpty() bool     { return a.len == 0 }
func (a Array) IsFull() bool      { return a.Len() == a.Cap() }
func (a Array) ElementBits() uint { return uint(a.size) }
func (a Array) BackingBits() uint { return uint(a.width) }

// Word returns the backing word. Bits past the last element are zero.
func (a Array) Word() num.U128 { return a.word }

// Cap returns the number of elements the Array can hold.
func (a Array) Cap() int {
	if a.size == 0 {
		return 0
	}
	return capacity(uint(a.size), uint(a.width))
}

func (a Array) at(i int) uint64 { return getField(a.word, uint(i), uint(a.size)) }

func (a Array) checkValue(v uint64) error {
	if lim := uint64(1)<<a.size - 1; v > lim {
		return ValueTooLargeError.New("value %d does not fit in %d bits", v, a.size)
	}
	return nil
}

func checkIndex(i, n int) error {
	if i < 0 || i >= n {
		return IndexOutOfRangeError.New("index %d not in [0, %d)", i, n)
	}
	return nil
}

// Append returns a new Array with v added to the end.
func (a Array) Append(v uint64) (Array, error) {
	if a.IsFull() {
		return Array{}, CapacityExceededError.New("append to full array of capacity %d", a.Cap())
	}
	if err := a.checkValue(v); err != nil {
		return Array{}, err
	}
	a.word = putField(a.word, uint(a.len), uint(a.size), v)
	a.len++
	return a, nil
}

// Get returns the element at index i.
func (a Array) Get(i int) (uint64, error) {
	if err := checkIndex(i, a.Len()); err != nil {
		return 0, err
	}
	return a.at(i), nil
}

// Set returns a new Array with the element at index i replaced by v.
func (a Array) Set(i int, v uint64) (Array, error) {
	if err := checkIndex(i, a.Len()); err != nil {
		return Array{}, err
	}
	if err := a.checkValue(v); err != nil {
		return Array{}, err
	}
	a.word = putField(a.word, uint(i), uint(a.size), v)
	return a, nil
}

// Insert returns a new Array with v placed at index i and the elements from
// i onward moved up by one. Inserting at Len appends.
func (a Array) Insert(i int, v uint64) (Array, error) {
	if err := checkIndex(i, a.Len()+1); err != nil {
		return Array{}, err
	}
	if a.IsFull() {
		return Array{}, CapacityExceededError.New("insert into full array of capacity %d", a.Cap())
	}
	if err := a.checkValue(v); err != nil {
		return Array{}, err
	}
	a.word = putField(openField(a.word, uint(i), uint(a.size)), uint(i), uint(a.size), v)
	a.len++
	return a, nil
}

// Remove returns a new Array without the element at index i. Later elements
// keep their order.
func (a Array) Remove(i int) (Array, error) {
	b, _, err := a.Pop(i)
	return b, err
}

// Pop is like Remove but also returns the removed element.
func (a Array) Pop(i int) (Array, uint64, error) {
	if err := checkIndex(i, a.Len()); err != nil {
		return Array{}, 0, err
	}
	v := a.at(i)
	a.word = closeField(a.word, uint(i), uint(a.size))
	a.len--
	return a, v, nil
}

// Extend returns a new Array with every value in vs appended. Either all of
// them fit or an error is returned.
func (a Array) Extend(vs ...uint64) (Array, error) {
	if free := a.Cap() - a.Len(); len(vs) > free {
		return Array{}, CapacityExceededError.New("extend by %d with room for %d", len(vs), free)
	}
	for _, v := range vs {
		if err := a.checkValue(v); err != nil {
			return Array{}, err
		}
	}
	for _, v := range vs {
		a.word = putField(a.word, uint(a.len), uint(a.size), v)
		a.len++
	}
	return a, nil
}

// Clear returns an empty Array with the same widths.
func (a Array) Clear() Array {
	return Array{size: a.size, width: a.width}
}

// Index returns the index of the first element equal to v.
func (a Array) Index(v uint64) (int, bool) {
	for i := 0; i < a.Len(); i++ {
		if a.at(i) == v {
			return i, true
		}
	}
	return 0, false
}

// RemoveValue returns a new Array without the first element equal to v. If
// there is no such element the Array is returned as is.
func (a Array) RemoveValue(v uint64) Array {
	i, ok := a.Index(v)
	if !ok {
		return a
	}
	a.word = closeField(a.word, uint(i), uint(a.size))
	a.len--
	return a
}

// Count returns how many elements are equal to v.
func (a Array) Count(v uint64) (n int) {
	for i := 0; i < a.Len(); i++ {
		if a.at(i) == v {
			n++
		}
	}
	return n
}

// Aggregate returns the sum of fn applied to every element.
func (a Array) Aggregate(fn func(uint64) uint64) (n uint64) {
	for i := 0; i < a.Len(); i++ {
		n += fn(a.at(i))
	}
	return n
}

// Equal reports whether both Arrays have the same widths and hold the same
// elements in the same order.
func (a Array) Equal(b Array) bool {
	if a.size != b.size || a.width != b.width || a.len != b.len {
		return false
	}
	m := fieldMask(uint(a.len) * uint(a.size))
	return a.word.And(m).Equal(b.word.And(m))
}

// String formats the elements like a slice, e.g. "[0 1 2]".
func (a Array) String() string {
	var b strings.Builder
	b.WriteByte('[')
	for i := 0; i < a.Len(); i++ {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(strconv.FormatUint(a.at(i), 10))
	}
	b.WriteByte(']')
	return b.String()
}

// Dump renders the backing word in binary, most significant bit first, with
// a space between elements and a newline after every 32 bits.
func (a Array) Dump() string {
	var b strings.Builder
	hi, lo := a.word.Raw()
	for i := int(a.width) - 1; i >= 0; i-- {
		w := lo
		if i >= 64 {
			w = hi
		}
		b.WriteByte('0' + byte(w>>(uint(i)%64)&1))

		switch {
		case i%32 == 0:
			b.WriteByte('\n')
		case a.size > 0 && i%int(a.size) == 0:
			b.WriteByte(' ')
		}
	}
	return b.String()
}
