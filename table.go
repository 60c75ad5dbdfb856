package uintarray

import (
	"encoding/binary"
	"os"

	"github.com/zeebo/errs"
	"github.com/zeebo/mon"
	"golang.org/x/sys/unix"
)

//
// the layout of a table file is
//
// | 64 bit record count       |
// | 32 bit header | 128 bits  | * count
//
// each record is an Array in its binary encoding, zero padded to the full
// 128 bits of word so every record has the same size regardless of width.
//

const (
	tableHeaderSize = 8
	recordSize      = headerSize + 16
)

// Table is a file of Arrays that all share the same widths, mapped into
// memory. A Table is not safe for concurrent use.
type Table struct {
	fh          *os.File
	buf         []byte // current mapping. nil until the file has any size.
	size, width uint
	len         int
}

// OpenTable maps the table stored in fh, or prepares a new one if fh is
// empty. The caller keeps ownership of fh and must call Close on the Table
// before closing it.
func OpenTable(fh *os.File, elementBits, backingBits uint) (_ *Table, err error) {
	defer mon.Start().Stop(&err)

	if err := checkWidths(elementBits, backingBits); err != nil {
		return nil, err
	}

	t := &Table{
		fh:    fh,
		size:  elementBits,
		width: backingBits,
	}

	fi, err := fh.Stat()
	if err != nil {
		return nil, errs.Wrap(err)
	}

	switch size := fi.Size(); {
	case size == 0:
		return t, nil
	case size < tableHeaderSize:
		return nil, TableError.New("file is %d bytes, too small for a header", size)
	default:
		if err := t.remap(size); err != nil {
			return nil, err
		}
	}

	count := binary.LittleEndian.Uint64(t.buf)
	if room := uint64(len(t.buf)-tableHeaderSize) / recordSize; count > room {
		_ = t.Close()
		return nil, TableError.New("record count %d exceeds room for %d", count, room)
	}
	t.len = int(count)

	return t, nil
}

func (t *Table) Len() int          { return t.len }
func (t *Table) ElementBits() uint { return t.size }
func (t *Table) BackingBits() uint { return t.width }

// remap replaces the current mapping with one covering the first size bytes
// of the file.
func (t *Table) remap(size int64) error {
	if t.buf != nil {
		if err := unix.Munmap(t.buf); err != nil {
			return errs.Wrap(err)
		}
		t.buf = nil
	}

	buf, err := unix.Mmap(int(t.fh.Fd()), 0, int(size),
		unix.PROT_WRITE|unix.PROT_READ, unix.MAP_SHARED)
	if err != nil {
		return errs.Wrap(err)
	}

	t.buf = buf
	return nil
}

// grow truncates the backing file to be large enough to hold n records,
// rounded up to the next page, and maps it.
func (t *Table) grow(n int) (err error) {
	defer mon.Start().Stop(&err)

	pageSize := int64(unix.Getpagesize())
	size := int64(tableHeaderSize + n*recordSize)
	size = (size + pageSize - 1) / pageSize * pageSize

	if err := t.fh.Truncate(size); err != nil {
		return errs.Wrap(err)
	}
	return t.remap(size)
}

func (t *Table) record(i int) []byte {
	off := tableHeaderSize + i*recordSize
	return t.buf[off : off+recordSize : off+recordSize]
}

func (t *Table) checkArray(a Array) error {
	if a.ElementBits() != t.size || a.BackingBits() != t.width {
		return TableError.New("array widths %d/%d do not match table widths %d/%d",
			a.ElementBits(), a.BackingBits(), t.size, t.width)
	}
	return nil
}

func (t *Table) put(i int, a Array) error {
	rec := t.record(i)
	clear(rec)
	_, err := a.AppendBinary(rec[:0])
	return err
}

var appendThunk mon.Thunk

// Append stores a at the end of the table and returns its index.
func (t *Table) Append(a Array) (_ int, err error) {
	timer := appendThunk.Start()
	defer timer.Stop(&err)

	if err := t.checkArray(a); err != nil {
		return 0, err
	}

	if tableHeaderSize+(t.len+1)*recordSize > len(t.buf) {
		if err := t.grow(2*t.len + 1); err != nil {
			return 0, err
		}
	}

	if err := t.put(t.len, a); err != nil {
		return 0, err
	}
	t.len++
	binary.LittleEndian.PutUint64(t.buf, uint64(t.len))

	return t.len - 1, nil
}

var getThunk mon.Thunk

// Get returns the Array stored at index i.
func (t *Table) Get(i int) (_ Array, err error) {
	timer := getThunk.Start()
	defer timer.Stop(&err)

	if err := checkIndex(i, t.len); err != nil {
		return Array{}, err
	}

	rec := t.record(i)
	var a Array
	if err := a.UnmarshalBinary(rec[:headerSize+wordSize(t.width)]); err != nil {
		return Array{}, err
	}
	if err := t.checkArray(a); err != nil {
		return Array{}, err
	}

	return a, nil
}

var setThunk mon.Thunk

// Set replaces the Array stored at index i.
func (t *Table) Set(i int, a Array) (err error) {
	timer := setThunk.Start()
	defer timer.Stop(&err)

	if err := checkIndex(i, t.len); err != nil {
		return err
	}
	if err := t.checkArray(a); err != nil {
		return err
	}
	return t.put(i, a)
}

// Sync flushes the mapping to the file.
func (t *Table) Sync() (err error) {
	defer mon.Start().Stop(&err)

	if t.buf == nil {
		return nil
	}
	return errs.Wrap(unix.Msync(t.buf, unix.MS_SYNC))
}

// Close releases the mapping. It does not close the file.
func (t *Table) Close() error {
	if t.buf == nil {
		return nil
	}
	err := unix.Munmap(t.buf)
	t.buf = nil
	return errs.Wrap(err)
}
