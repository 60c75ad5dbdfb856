package uintarray

import (
	"github.com/zeebo/errs"
)

var (
	// CapacityError is returned when the element and backing widths leave
	// room for no elements, or fall outside the supported range.
	CapacityError = errs.Class("capacity")

	// ValueTooLargeError is returned when a value does not fit in the
	// element width.
	ValueTooLargeError = errs.Class("value too large")

	// CapacityExceededError is returned when an array would hold more
	// elements than its capacity.
	CapacityExceededError = errs.Class("capacity exceeded")

	// IndexOutOfRangeError is returned for indexes outside of the array.
	IndexOutOfRangeError = errs.Class("index out of range")

	// EncodingError is returned for malformed binary encodings.
	EncodingError = errs.Class("encoding")

	// TableError is returned for problems with a table file.
	TableError = errs.Class("table")
)
