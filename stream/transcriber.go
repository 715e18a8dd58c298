// Package stream interleaves per-column Parquet readers into row-major
// CSV or JSON text.
//
// One Transcriber is built per selected column before any output is
// emitted; each binds a file-column iterator to the printer through a
// write routine chosen from the column's physical and logical types. The
// driver then asks every transcriber for one field per record, so bytes
// leave in strict row-major, column-ascending order while each column
// holds only a small decode buffer.
package stream

import (
	"fmt"

	"github.com/parquet-go/parquet-go"

	"github.com/vegasq/pqtools/output"
	"github.com/vegasq/pqtools/reader"
)

// writeValue renders one non-null decoded value on the printer.
type writeValue func(p output.Printer, v parquet.Value)

// Transcriber copies one column of a Parquet file to the printer.
type Transcriber struct {
	iter  *reader.FileColumnIterator
	p     output.Printer
	write writeValue
}

// NewTranscriber selects the value-write routine for the column described
// by desc and binds it to a fresh column iterator. Nested columns and
// unsupported type combinations fail here, before any output is written.
func NewTranscriber(f *parquet.File, desc reader.ColumnDescriptor, p output.Printer) (*Transcriber, error) {
	if desc.MaxDefinitionLevel > 1 || desc.MaxRepetitionLevel > 0 {
		return nil, fmt.Errorf(
			"column %q is nested (max definition level %d, max repetition level %d); nested columns are not supported",
			desc.Name, desc.MaxDefinitionLevel, desc.MaxRepetitionLevel)
	}

	write, err := writeRoutineFor(desc)
	if err != nil {
		return nil, err
	}

	return &Transcriber{
		iter:  reader.NewFileColumnIterator(f, desc),
		p:     p,
		write: write,
	}, nil
}

// SkipRows advances the column by n rows without printing them.
func (t *Transcriber) SkipRows(n int64) error {
	if err := t.iter.SkipRows(n); err != nil {
		return fmt.Errorf("skipping %d rows in column %q: %w", n, t.iter.Name(), err)
	}
	return nil
}

// PrintNext writes the field separator for outputColumnIndex followed by
// the column's next value.
func (t *Transcriber) PrintNext(outputColumnIndex int) error {
	t.p.WriteFieldStart(outputColumnIndex, t.iter.Name())

	value, err := t.iter.Next()
	if err != nil {
		return fmt.Errorf("reading column %q: %w", t.iter.Name(), err)
	}
	if value.IsNull() {
		t.p.WriteNull()
	} else {
		t.write(t.p, value)
	}
	return nil
}

// PrintHeaderField writes the column's header-row field (CSV only).
func (t *Transcriber) PrintHeaderField(outputColumnIndex int) {
	t.p.WriteHeaderField(outputColumnIndex, t.iter.Name())
}

// Close releases the column's reader.
func (t *Transcriber) Close() error {
	return t.iter.Close()
}

func writeRoutineFor(desc reader.ColumnDescriptor) (writeValue, error) {
	switch desc.Kind {
	case parquet.Int32:
		return int32Routine(desc)
	case parquet.Int64:
		return int64Routine(desc)
	case parquet.Float:
		return func(p output.Printer, v parquet.Value) { p.WriteFloat32(v.Float()) }, nil
	case parquet.Double:
		return func(p output.Printer, v parquet.Value) { p.WriteFloat64(v.Double()) }, nil
	case parquet.ByteArray:
		return byteArrayRoutine(desc)
	default:
		return nil, fmt.Errorf("cannot read physical type %s of column %q", desc.Kind, desc.Name)
	}
}

func int32Routine(desc reader.ColumnDescriptor) (writeValue, error) {
	logical := desc.Logical
	switch {
	// No annotation means signed.
	case logical == nil || logical.Integer != nil:
		if logical != nil && !logical.Integer.IsSigned {
			return func(p output.Printer, v parquet.Value) { p.WriteUint32(uint32(v.Int32())) }, nil
		}
		return func(p output.Printer, v parquet.Value) { p.WriteInt32(v.Int32()) }, nil
	case logical.Date != nil:
		return func(p output.Printer, v parquet.Value) { p.WriteDate(v.Int32()) }, nil
	default:
		return nil, fmt.Errorf("for INT32, only INT and DATE logical types are handled; column %q has %s",
			desc.Name, reader.LogicalTypeString(logical))
	}
}

func int64Routine(desc reader.ColumnDescriptor) (writeValue, error) {
	logical := desc.Logical
	switch {
	// No annotation means signed.
	case logical == nil || logical.Integer != nil:
		if logical != nil && !logical.Integer.IsSigned {
			return func(p output.Printer, v parquet.Value) { p.WriteUint64(uint64(v.Int64())) }, nil
		}
		return func(p output.Printer, v parquet.Value) { p.WriteInt64(v.Int64()) }, nil
	case logical.Timestamp != nil:
		unit := logical.Timestamp.Unit
		switch {
		case unit.Millis != nil:
			return func(p output.Printer, v parquet.Value) { p.WriteTimestampMillis(v.Int64()) }, nil
		case unit.Micros != nil:
			return func(p output.Printer, v parquet.Value) { p.WriteTimestampMicros(v.Int64()) }, nil
		case unit.Nanos != nil:
			return func(p output.Printer, v parquet.Value) { p.WriteTimestampNanos(v.Int64()) }, nil
		default:
			return nil, fmt.Errorf("unknown time unit in TIMESTAMP column %q", desc.Name)
		}
	default:
		return nil, fmt.Errorf("for INT64, only INT and TIMESTAMP logical types are handled; column %q has %s",
			desc.Name, reader.LogicalTypeString(logical))
	}
}

func byteArrayRoutine(desc reader.ColumnDescriptor) (writeValue, error) {
	logical := desc.Logical
	if logical != nil && logical.UTF8 != nil {
		return func(p output.Printer, v parquet.Value) { p.WriteString(v.ByteArray()) }, nil
	}
	return nil, fmt.Errorf("for BYTE_ARRAY, only the STRING logical type is handled; column %q has %s",
		desc.Name, reader.LogicalTypeString(logical))
}
