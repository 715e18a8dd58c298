package reader

import (
	"io"

	"github.com/parquet-go/parquet-go"
)

// batchSize determines RAM usage and I/O frequency. A lower value means
// more page-values reads; a higher value means a larger resident buffer
// per column. These tools stream over the network, so time-to-first-byte
// and a small footprint win over raw throughput.
const batchSize = 30

// ColumnChunkReader reads one column chunk (a single row group's worth of
// one column) as a flat sequence of values.
//
// Values carry their definition levels, so null rows appear inline as
// null values: with MaxDefinitionLevel <= 1 and no repetition, one value
// is exactly one row. Dictionary pages are resolved by the codec before
// values surface here.
type ColumnChunkReader struct {
	pages  parquet.Pages
	page   parquet.Page
	values parquet.ValueReader

	batch  [batchSize]parquet.Value
	length int
	cursor int
	// fetched counts rows pulled out of the page stream, so the next
	// unread row in the chunk is fetched - (length - cursor).
	fetched int64
}

// NewColumnChunkReader starts reading chunk from its first row.
func NewColumnChunkReader(chunk parquet.ColumnChunk) *ColumnChunkReader {
	return &ColumnChunkReader{pages: chunk.Pages()}
}

// Next returns the next row's value, which is null for a null row.
// Reading past the last row returns io.EOF.
func (r *ColumnChunkReader) Next() (parquet.Value, error) {
	if r.cursor >= r.length {
		if err := r.rebuffer(); err != nil {
			return parquet.Value{}, err
		}
	}
	value := r.batch[r.cursor]
	r.cursor++
	return value, nil
}

// SkipRows advances by n rows without decoding their text form. Rows
// still buffered are consumed in place; the remainder seeks the page
// stream.
func (r *ColumnChunkReader) SkipRows(n int64) error {
	buffered := int64(r.length - r.cursor)
	if n <= buffered {
		r.cursor += int(n)
		return nil
	}

	target := r.fetched + n - buffered
	if err := r.pages.SeekToRow(target); err != nil {
		return err
	}
	r.releasePage()
	r.fetched = target
	r.length = 0
	r.cursor = 0
	return nil
}

func (r *ColumnChunkReader) rebuffer() error {
	for {
		if r.values == nil {
			page, err := r.pages.ReadPage()
			if err != nil {
				return err
			}
			r.page = page
			r.values = page.Values()
		}

		n, err := r.values.ReadValues(r.batch[:])
		if n > 0 {
			r.fetched += int64(n)
			r.length = n
			r.cursor = 0
			return nil
		}
		if err != nil && err != io.EOF {
			return err
		}

		// Page exhausted; move on to the next one.
		r.releasePage()
	}
}

func (r *ColumnChunkReader) releasePage() {
	if r.page != nil {
		parquet.Release(r.page)
		r.page = nil
	}
	r.values = nil
}

// Close releases the current page and closes the page stream.
func (r *ColumnChunkReader) Close() error {
	r.releasePage()
	if r.pages == nil {
		return nil
	}
	pages := r.pages
	r.pages = nil
	return pages.Close()
}
