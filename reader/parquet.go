// Package reader provides streaming access to the columns of an Apache
// Parquet file.
//
// It uses the parquet-go library for page decoding and exposes the file
// one column at a time: a ColumnChunkReader walks a single row group's
// column chunk in small batches, and a FileColumnIterator chains those
// readers across row groups. Values arrive with their definition levels
// intact, so callers see nulls inline, and dictionary-encoded pages are
// decoded transparently by the codec.
package reader

import (
	"fmt"
	"os"

	"github.com/parquet-go/parquet-go"
)

// Reader owns the OS file handle and the Parquet file handle for one file.
//
// It maintains both so resources can be released together.
type Reader struct {
	file   *os.File
	pqFile *parquet.File
}

// NewReader opens and validates the Parquet file at path.
//
// Returns an error if the file doesn't exist or is not a valid parquet
// file.
func NewReader(path string) (*Reader, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}

	stat, err := file.Stat()
	if err != nil {
		file.Close()
		return nil, fmt.Errorf("failed to stat file: %w", err)
	}

	pqFile, err := parquet.OpenFile(file, stat.Size())
	if err != nil {
		file.Close()
		return nil, fmt.Errorf("failed to open parquet file: %w", err)
	}

	return &Reader{
		file:   file,
		pqFile: pqFile,
	}, nil
}

// File returns the underlying parquet file handle.
func (r *Reader) File() *parquet.File {
	return r.pqFile
}

// Schema returns the parquet file schema.
func (r *Reader) Schema() *parquet.Schema {
	return r.pqFile.Schema()
}

// NumRows returns the total row count across all row groups.
func (r *Reader) NumRows() int64 {
	return r.pqFile.Metadata().NumRows
}

// Close closes the reader and releases associated resources. It is safe
// to call Close multiple times.
func (r *Reader) Close() error {
	if r.file != nil {
		file := r.file
		r.file = nil
		return file.Close()
	}
	return nil
}
