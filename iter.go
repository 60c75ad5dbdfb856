package uintarray

import "iter"

// ArrayIter walks the elements of an Array in index order. It holds its own
// copy of the Array, so it never observes later changes made elsewhere.
type ArrayIter struct {
	a   Array
	idx int
	val uint64
}

// Iter returns an iterator positioned before the first element. Every call
// starts a fresh pass over the elements.
func (a Array) Iter() ArrayIter { return ArrayIter{a: a, idx: -1} }

// Next advances to the next element and reports whether there was one.
func (it *ArrayIter) Next() bool {
	if it.idx+1 >= it.a.Len() {
		return false
	}
	it.idx++
	it.val = it.a.at(it.idx)
	return true
}

func (it *ArrayIter) Index() int    { return it.idx }
func (it *ArrayIter) Value() uint64 { return it.val }

// All returns a sequence of the index and value of every element.
func (a Array) All() iter.Seq2[int, uint64] {
	return func(yield func(int, uint64) bool) {
		for i := 0; i < a.Len(); i++ {
			if !yield(i, a.at(i)) {
				return
			}
		}
	}
}

// Values returns a sequence of every element.
func (a Array) Values() iter.Seq[uint64] {
	return func(yield func(uint64) bool) {
		for i := 0; i < a.Len(); i++ {
			if !yield(a.at(i)) {
				return
			}
		}
	}
}
