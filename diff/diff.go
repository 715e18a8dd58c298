// Package diff compares two Parquet files for logical equivalence.
//
// Equivalence is strict on schema (same column names, physical types and
// logical types at each index, same row-group shape) and loose on
// encoding: values are compared after decoding, so a dictionary-encoded
// column chunk equals a plain one holding the same values.
//
// The first difference found is written in a short unified-diff style
// block naming its location, and the comparison stops there.
package diff

import (
	"bytes"
	"fmt"
	"io"
	"math"
	"reflect"
	"strconv"

	"github.com/parquet-go/parquet-go"
	"github.com/parquet-go/parquet-go/format"

	"github.com/vegasq/pqtools/output"
	"github.com/vegasq/pqtools/reader"
)

// Comparison outcomes, used as process exit codes by parquet-diff.
const (
	Equivalent  = 0
	Different   = 1
	Unsupported = 2
)

// Files compares two Parquet files. The first difference is written to w
// and the returned code tells them apart: Equivalent, Different, or
// Unsupported when a file uses columns the comparison cannot read. The
// error is non-nil only for decode failures.
func Files(a, b *parquet.File, w io.Writer) (int, error) {
	leavesA := reader.Leaves(a)
	leavesB := reader.Leaves(b)

	if code := diffSchema(leavesA, leavesB, w); code != Equivalent {
		return code, nil
	}

	groupsA := a.RowGroups()
	groupsB := b.RowGroups()
	if len(groupsA) != len(groupsB) {
		fmt.Fprintf(w, "Number of row groups:\n-%d\n+%d\n", len(groupsA), len(groupsB))
		return Different, nil
	}

	for i := range groupsA {
		code, err := diffRowGroup(i, groupsA[i], groupsB[i], leavesA, w)
		if err != nil || code != Equivalent {
			return code, err
		}
	}
	return Equivalent, nil
}

func diffSchema(leavesA, leavesB []reader.ColumnDescriptor, w io.Writer) int {
	if len(leavesA) != len(leavesB) {
		fmt.Fprintf(w, "Number of columns:\n-%d\n+%d\n", len(leavesA), len(leavesB))
		return Different
	}
	for i := range leavesA {
		if code := diffColumn(i, leavesA[i], leavesB[i], w); code != Equivalent {
			return code
		}
	}
	return Equivalent
}

func diffColumn(columnNumber int, a, b reader.ColumnDescriptor, w io.Writer) int {
	if a.Name != b.Name {
		fmt.Fprintf(w, "Column %d name:\n-%s\n+%s\n", columnNumber, a.Name, b.Name)
		return Different
	}

	if a.Kind != b.Kind {
		fmt.Fprintf(w, "Column %d (%s) physical type:\n-%s\n+%s\n",
			columnNumber, a.Name, a.Kind, b.Kind)
		return Different
	}

	if !logicalEqual(a.Logical, b.Logical) {
		fmt.Fprintf(w, "Column %d (%s) logical type:\n-%s\n+%s\n",
			columnNumber, a.Name,
			reader.LogicalTypeString(a.Logical), reader.LogicalTypeString(b.Logical))
		return Different
	}

	// Definition and repetition levels beyond flat-with-nulls are out of
	// scope for value comparison.
	if a.MaxDefinitionLevel > 1 {
		fmt.Fprintf(w, "Column %d (%s) uses unsupported max_definition_level %d\n",
			columnNumber, a.Name, a.MaxDefinitionLevel)
		return Unsupported
	}
	if a.MaxRepetitionLevel > 0 {
		fmt.Fprintf(w, "Column %d (%s) uses unsupported max_repetition_level %d\n",
			columnNumber, a.Name, a.MaxRepetitionLevel)
		return Unsupported
	}

	switch a.Kind {
	case parquet.Int32, parquet.Int64, parquet.Float, parquet.Double, parquet.ByteArray:
	default:
		fmt.Fprintf(w, "Column %d (%s) uses unsupported physical type %s\n",
			columnNumber, a.Name, a.Kind)
		return Unsupported
	}

	return Equivalent
}

func logicalEqual(a, b *format.LogicalType) bool {
	if a == nil || b == nil {
		return a == b
	}
	return reflect.DeepEqual(a, b)
}

func diffRowGroup(groupNumber int, a, b parquet.RowGroup, leaves []reader.ColumnDescriptor, w io.Writer) (int, error) {
	numRows := a.NumRows()
	if b.NumRows() != numRows {
		fmt.Fprintf(w, "RowGroup %d number of rows:\n-%d\n+%d\n", groupNumber, numRows, b.NumRows())
		return Different, nil
	}

	for i, leaf := range leaves {
		code, err := diffColumnChunk(groupNumber, i, a.ColumnChunks()[i], b.ColumnChunks()[i], numRows, leaf.Kind, w)
		if err != nil || code != Equivalent {
			return code, err
		}
	}
	return Equivalent, nil
}

func diffColumnChunk(groupNumber, columnNumber int, a, b parquet.ColumnChunk, numRows int64, kind parquet.Kind, w io.Writer) (int, error) {
	readerA := reader.NewColumnChunkReader(a)
	defer readerA.Close()
	readerB := reader.NewColumnChunkReader(b)
	defer readerB.Close()

	for row := int64(0); row < numRows; row++ {
		valueA, err := readerA.Next()
		if err != nil {
			return Different, fmt.Errorf("reading row group %d, column %d, row %d from first file: %w",
				groupNumber, columnNumber, row, err)
		}
		valueB, err := readerB.Next()
		if err != nil {
			return Different, fmt.Errorf("reading row group %d, column %d, row %d from second file: %w",
				groupNumber, columnNumber, row, err)
		}

		if valueA.IsNull() && valueB.IsNull() {
			continue
		}
		if valueA.IsNull() != valueB.IsNull() || !valuesEqual(kind, valueA, valueB) {
			fmt.Fprintf(w, "RowGroup %d, Column %d, Row %d:\n-%s\n+%s\n",
				groupNumber, columnNumber, row, valueString(kind, valueA), valueString(kind, valueB))
			return Different, nil
		}
	}
	return Equivalent, nil
}

// valuesEqual compares two non-null values of the same physical type:
// exact bits for integers and byte arrays, IEEE == for floats (so NaN
// differs from everything, including itself).
func valuesEqual(kind parquet.Kind, a, b parquet.Value) bool {
	switch kind {
	case parquet.Int32:
		return a.Int32() == b.Int32()
	case parquet.Int64:
		return a.Int64() == b.Int64()
	case parquet.Float:
		return a.Float() == b.Float()
	case parquet.Double:
		return a.Double() == b.Double()
	case parquet.ByteArray:
		return bytes.Equal(a.ByteArray(), b.ByteArray())
	default:
		panic(fmt.Sprintf("unreachable: comparing unsupported physical type %s", kind))
	}
}

func valueString(kind parquet.Kind, v parquet.Value) string {
	if v.IsNull() {
		return "(null)"
	}
	switch kind {
	case parquet.Int32:
		return strconv.FormatInt(int64(v.Int32()), 10)
	case parquet.Int64:
		return strconv.FormatInt(v.Int64(), 10)
	case parquet.Float:
		return floatString(float64(v.Float()), 32)
	case parquet.Double:
		return floatString(v.Double(), 64)
	case parquet.ByteArray:
		return string(v.ByteArray())
	default:
		panic(fmt.Sprintf("unreachable: rendering unsupported physical type %s", kind))
	}
}

func floatString(v float64, bits int) string {
	switch {
	case math.IsNaN(v):
		return "NaN"
	case math.IsInf(v, 1):
		return "Infinity"
	case math.IsInf(v, -1):
		return "-Infinity"
	case bits == 32:
		return string(output.AppendFloat32(nil, float32(v)))
	default:
		return string(output.AppendFloat64(nil, v))
	}
}
