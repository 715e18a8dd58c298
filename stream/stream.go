package stream

import (
	"github.com/parquet-go/parquet-go"

	"github.com/vegasq/pqtools/output"
	"github.com/vegasq/pqtools/ranges"
	"github.com/vegasq/pqtools/reader"
)

// Stream writes the selected window of f's rows and columns to p in
// row-major order: file header, then (CSV) one header row, then one
// record per selected row, then the file footer. When the column window
// selects no columns, only the file header and footer are written.
//
// The ranges are clipped to the file's extents, so out-of-bounds windows
// simply produce fewer records or fields.
func Stream(f *parquet.File, p output.Printer, columnRange, rowRange ranges.Range) error {
	leaves := reader.Leaves(f)
	columns := columnRange.Clip(uint64(len(leaves)))
	rows := rowRange.Clip(uint64(f.Metadata().NumRows))

	transcribers := make([]*Transcriber, 0, columns.Size())
	defer func() {
		for _, t := range transcribers {
			t.Close()
		}
	}()

	for i := columns.Start; i < columns.Stop; i++ {
		t, err := NewTranscriber(f, leaves[i], p)
		if err != nil {
			return err
		}
		transcribers = append(transcribers, t)
		if err := t.SkipRows(int64(rows.Start)); err != nil {
			return err
		}
	}

	p.WriteFileHeader()
	if len(transcribers) > 0 {
		for i, t := range transcribers {
			t.PrintHeaderField(i)
		}

		for rowIndex := rows.Start; rowIndex < rows.Stop; rowIndex++ {
			p.WriteRecordStart(int64(rowIndex - rows.Start))
			for i, t := range transcribers {
				if err := t.PrintNext(i); err != nil {
					return err
				}
			}
			p.WriteRecordStop()
		}
	}
	p.WriteFileFooter()

	return p.Flush()
}
