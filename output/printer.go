// Package output provides streaming printers that render decoded Parquet
// values as CSV or JSON text.
//
// Both printers implement the same Printer protocol: file framing, record
// framing, field separators, and one write method per printable type. The
// driver calls them strictly in row-major order, so a printer holds no
// per-record state: only a fixed-size bufio.Writer and a scratch buffer for
// the value it is currently writing.
//
// Numbers print identically in both formats: integers in decimal, floats in
// their shortest ECMAScript round-trip form. Non-finite floats have no text
// form and render as null. Timestamps render as short ISO-8601 UTC and
// dates as YYYY-MM-DD; JSON wraps both in quotes.
package output

import (
	"bufio"
	"io"
	"strconv"
)

// Printer is the protocol shared by the CSV and JSON printers.
//
// Write methods do not return errors; the underlying bufio.Writer keeps the
// first error sticky and Flush reports it once the stream is complete.
type Printer interface {
	// WriteFileHeader writes bytes that precede all records (JSON "[").
	WriteFileHeader()
	// WriteFileFooter writes bytes that follow all records (JSON "]").
	WriteFileFooter()
	// WriteRecordStart begins the record at rowIndex, counted from the
	// first emitted record.
	WriteRecordStart(rowIndex int64)
	// WriteRecordStop ends the current record (JSON "}").
	WriteRecordStop()
	// WriteFieldStart begins the field at columnIndex, counted from the
	// first emitted column.
	WriteFieldStart(columnIndex int, name string)
	// WriteHeaderField writes one header-row field (CSV only).
	WriteHeaderField(columnIndex int, name string)

	WriteNull()
	WriteString(value []byte)
	WriteInt32(value int32)
	WriteInt64(value int64)
	WriteUint32(value uint32)
	WriteUint64(value uint64)
	WriteFloat32(value float32)
	WriteFloat64(value float64)
	WriteDate(daysSinceEpoch int32)
	WriteTimestampMillis(value int64)
	WriteTimestampMicros(value int64)
	WriteTimestampNanos(value int64)

	// Flush drains buffered bytes and reports the first write error.
	Flush() error
}

// sink carries the buffered writer and a scratch buffer shared by both
// printers. Integer rendering is identical in CSV and JSON, so it lives
// here.
type sink struct {
	w   *bufio.Writer
	buf []byte
}

func newSink(w io.Writer) sink {
	return sink{w: bufio.NewWriter(w), buf: make([]byte, 0, 64)}
}

func (s *sink) WriteInt32(value int32) {
	s.buf = strconv.AppendInt(s.buf[:0], int64(value), 10)
	s.w.Write(s.buf)
}

func (s *sink) WriteInt64(value int64) {
	s.buf = strconv.AppendInt(s.buf[:0], value, 10)
	s.w.Write(s.buf)
}

func (s *sink) WriteUint32(value uint32) {
	s.buf = strconv.AppendUint(s.buf[:0], uint64(value), 10)
	s.w.Write(s.buf)
}

func (s *sink) WriteUint64(value uint64) {
	s.buf = strconv.AppendUint(s.buf[:0], value, 10)
	s.w.Write(s.buf)
}

func (s *sink) Flush() error {
	return s.w.Flush()
}
