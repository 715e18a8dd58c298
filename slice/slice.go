// Package slice materializes a bounded rectangle of a Parquet file as an
// Arrow IPC file holding a single record batch.
//
// The slice is meant to be small: every selected value is resident while
// the record is built. Dictionary-encoded columns come out decoded to
// their value type, since a slice of a few hundred rows should not drag a
// huge dictionary along with it. The output schema is built from the
// decoded column types with no file-level metadata copied over, and a
// field is nullable only when its slice actually contains a null.
package slice

import (
	"fmt"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/memory"
	"github.com/parquet-go/parquet-go"

	"github.com/vegasq/pqtools/ranges"
	"github.com/vegasq/pqtools/reader"
)

// appendValue appends one non-null decoded value to the column's builder.
type appendValue func(b array.Builder, v parquet.Value)

// Read clips columnRange and rowRange to f's extents and reads the
// resulting rectangle into an Arrow record. The caller releases the
// record.
func Read(f *parquet.File, columnRange, rowRange ranges.Range) (arrow.Record, error) {
	leaves := reader.Leaves(f)
	columns := columnRange.Clip(uint64(len(leaves)))
	rows := rowRange.Clip(uint64(f.Metadata().NumRows))

	mem := memory.NewGoAllocator()
	fields := make([]arrow.Field, 0, columns.Size())
	arrays := make([]arrow.Array, 0, columns.Size())
	defer func() {
		for _, a := range arrays {
			a.Release()
		}
	}()

	for i := columns.Start; i < columns.Stop; i++ {
		desc := leaves[i]
		arr, typ, err := readColumn(f, desc, rows, mem)
		if err != nil {
			return nil, err
		}
		arrays = append(arrays, arr)
		fields = append(fields, arrow.Field{
			Name:     desc.Name,
			Type:     typ,
			Nullable: arr.NullN() > 0,
		})
	}

	schema := arrow.NewSchema(fields, nil)
	return array.NewRecord(schema, arrays, int64(rows.Size())), nil
}

func readColumn(f *parquet.File, desc reader.ColumnDescriptor, rows ranges.Range, mem memory.Allocator) (arrow.Array, arrow.DataType, error) {
	if desc.MaxDefinitionLevel > 1 || desc.MaxRepetitionLevel > 0 {
		return nil, nil, fmt.Errorf(
			"column %q is nested (max definition level %d, max repetition level %d); nested columns are not supported",
			desc.Name, desc.MaxDefinitionLevel, desc.MaxRepetitionLevel)
	}

	typ, appendFn, err := columnType(desc)
	if err != nil {
		return nil, nil, err
	}

	it := reader.NewFileColumnIterator(f, desc)
	defer it.Close()
	if err := it.SkipRows(int64(rows.Start)); err != nil {
		return nil, nil, fmt.Errorf("skipping to row %d in column %q: %w", rows.Start, desc.Name, err)
	}

	builder := array.NewBuilder(mem, typ)
	defer builder.Release()
	builder.Reserve(int(rows.Size()))

	for n := rows.Size(); n > 0; n-- {
		value, err := it.Next()
		if err != nil {
			return nil, nil, fmt.Errorf("reading column %q: %w", desc.Name, err)
		}
		if value.IsNull() {
			builder.AppendNull()
		} else {
			appendFn(builder, value)
		}
	}

	return builder.NewArray(), typ, nil
}

func columnType(desc reader.ColumnDescriptor) (arrow.DataType, appendValue, error) {
	logical := desc.Logical
	switch desc.Kind {
	case parquet.Int32:
		switch {
		case logical == nil || logical.Integer != nil:
			if logical != nil && !logical.Integer.IsSigned {
				return arrow.PrimitiveTypes.Uint32, func(b array.Builder, v parquet.Value) {
					b.(*array.Uint32Builder).Append(uint32(v.Int32()))
				}, nil
			}
			return arrow.PrimitiveTypes.Int32, func(b array.Builder, v parquet.Value) {
				b.(*array.Int32Builder).Append(v.Int32())
			}, nil
		case logical.Date != nil:
			return arrow.FixedWidthTypes.Date32, func(b array.Builder, v parquet.Value) {
				b.(*array.Date32Builder).Append(arrow.Date32(v.Int32()))
			}, nil
		}
	case parquet.Int64:
		switch {
		case logical == nil || logical.Integer != nil:
			if logical != nil && !logical.Integer.IsSigned {
				return arrow.PrimitiveTypes.Uint64, func(b array.Builder, v parquet.Value) {
					b.(*array.Uint64Builder).Append(uint64(v.Int64()))
				}, nil
			}
			return arrow.PrimitiveTypes.Int64, func(b array.Builder, v parquet.Value) {
				b.(*array.Int64Builder).Append(v.Int64())
			}, nil
		case logical.Timestamp != nil:
			typ, err := timestampType(desc)
			if err != nil {
				return nil, nil, err
			}
			return typ, func(b array.Builder, v parquet.Value) {
				b.(*array.TimestampBuilder).Append(arrow.Timestamp(v.Int64()))
			}, nil
		}
	case parquet.Float:
		return arrow.PrimitiveTypes.Float32, func(b array.Builder, v parquet.Value) {
			b.(*array.Float32Builder).Append(v.Float())
		}, nil
	case parquet.Double:
		return arrow.PrimitiveTypes.Float64, func(b array.Builder, v parquet.Value) {
			b.(*array.Float64Builder).Append(v.Double())
		}, nil
	case parquet.ByteArray:
		if logical != nil && logical.UTF8 != nil {
			return arrow.BinaryTypes.String, func(b array.Builder, v parquet.Value) {
				b.(*array.StringBuilder).Append(string(v.ByteArray()))
			}, nil
		}
	}
	return nil, nil, fmt.Errorf("cannot slice column %q (physical type %s, logical type %s)",
		desc.Name, desc.Kind, reader.LogicalTypeString(logical))
}

func timestampType(desc reader.ColumnDescriptor) (arrow.DataType, error) {
	unit := desc.Logical.Timestamp.Unit
	switch {
	case unit.Millis != nil:
		return arrow.FixedWidthTypes.Timestamp_ms, nil
	case unit.Micros != nil:
		return arrow.FixedWidthTypes.Timestamp_us, nil
	case unit.Nanos != nil:
		return arrow.FixedWidthTypes.Timestamp_ns, nil
	default:
		return nil, fmt.Errorf("unknown time unit in TIMESTAMP column %q", desc.Name)
	}
}
