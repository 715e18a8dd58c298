package reader

import (
	"io"

	"github.com/parquet-go/parquet-go"
)

// FileColumnIterator walks a single column across all row groups of a
// file, constructing one ColumnChunkReader per row group on demand and
// dropping it once exhausted.
type FileColumnIterator struct {
	rowGroups []parquet.RowGroup
	column    int
	name      string

	current   *ColumnChunkReader
	nextGroup int
	cursor    int64 // rows consumed from the current row group
	size      int64 // row count of the current row group
}

// NewFileColumnIterator iterates the column described by desc. Row groups
// load lazily, so constructing an iterator over a file with no row groups
// is valid and yields no rows.
func NewFileColumnIterator(f *parquet.File, desc ColumnDescriptor) *FileColumnIterator {
	return &FileColumnIterator{
		rowGroups: f.RowGroups(),
		column:    desc.Index,
		name:      desc.Name,
	}
}

// Name returns the column's leaf name.
func (it *FileColumnIterator) Name() string {
	return it.name
}

// Next returns the next row's value, crossing row group boundaries
// transparently. Reading past the file's last row returns io.EOF.
func (it *FileColumnIterator) Next() (parquet.Value, error) {
	for it.cursor >= it.size {
		if err := it.loadNextRowGroup(); err != nil {
			return parquet.Value{}, err
		}
	}
	it.cursor++
	return it.current.Next()
}

// SkipRows advances by n rows. Row groups that are skipped entirely are
// opened but none of their pages are read.
func (it *FileColumnIterator) SkipRows(n int64) error {
	for n > it.size-it.cursor {
		n -= it.size - it.cursor
		if err := it.loadNextRowGroup(); err != nil {
			return err
		}
	}
	if n == 0 {
		return nil
	}
	if n == it.size-it.cursor {
		// The skip ends exactly on the row group boundary; the next read
		// opens the next group, so the current reader's pages can stay
		// untouched.
		it.cursor = it.size
		return nil
	}
	if err := it.current.SkipRows(n); err != nil {
		return err
	}
	it.cursor += n
	return nil
}

func (it *FileColumnIterator) loadNextRowGroup() error {
	if it.current != nil {
		it.current.Close()
		it.current = nil
	}
	if it.nextGroup >= len(it.rowGroups) {
		return io.EOF
	}

	rowGroup := it.rowGroups[it.nextGroup]
	it.nextGroup++
	it.current = NewColumnChunkReader(rowGroup.ColumnChunks()[it.column])
	it.cursor = 0
	it.size = rowGroup.NumRows()
	return nil
}

// Close releases the current chunk reader, if any.
func (it *FileColumnIterator) Close() error {
	if it.current == nil {
		return nil
	}
	current := it.current
	it.current = nil
	return current.Close()
}
