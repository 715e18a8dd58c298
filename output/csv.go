package output

import (
	"io"
	"math"
)

// CSVPrinter writes records as RFC-4180 CSV: CRLF record separators, comma
// field separators, and quoting only where the value demands it. Nulls are
// empty fields.
type CSVPrinter struct {
	sink
}

// NewCSVPrinter creates a CSV printer writing to w.
func NewCSVPrinter(w io.Writer) *CSVPrinter {
	return &CSVPrinter{sink: newSink(w)}
}

// WriteFileHeader writes nothing; CSV has no file framing.
func (p *CSVPrinter) WriteFileHeader() {}

// WriteFileFooter writes nothing; CSV has no file framing.
func (p *CSVPrinter) WriteFileFooter() {}

// WriteRecordStart separates the new record from the header row or the
// previous record.
func (p *CSVPrinter) WriteRecordStart(rowIndex int64) {
	p.w.WriteString("\r\n")
}

// WriteRecordStop writes nothing; the next record separator ends a record.
func (p *CSVPrinter) WriteRecordStop() {}

func (p *CSVPrinter) WriteFieldStart(columnIndex int, name string) {
	if columnIndex > 0 {
		p.w.WriteByte(',')
	}
}

func (p *CSVPrinter) WriteHeaderField(columnIndex int, name string) {
	p.WriteFieldStart(columnIndex, name)
	p.writeEscaped(name)
}

// WriteNull writes nothing: a CSV null is an empty field.
func (p *CSVPrinter) WriteNull() {}

func (p *CSVPrinter) WriteString(value []byte) {
	if !csvNeedsQuote(value) {
		p.w.Write(value)
		return
	}
	p.w.WriteByte('"')
	for _, c := range value {
		if c == '"' {
			p.w.WriteString(`""`)
		} else {
			p.w.WriteByte(c)
		}
	}
	p.w.WriteByte('"')
}

// writeEscaped is WriteString for header names, which arrive as strings.
func (p *CSVPrinter) writeEscaped(value string) {
	p.buf = append(p.buf[:0], value...)
	p.WriteString(p.buf)
}

func (p *CSVPrinter) WriteFloat32(value float32) {
	if math.IsNaN(float64(value)) || math.IsInf(float64(value), 0) {
		p.WriteNull()
		return
	}
	p.buf = appendFloat32(p.buf[:0], value)
	p.w.Write(p.buf)
}

func (p *CSVPrinter) WriteFloat64(value float64) {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		p.WriteNull()
		return
	}
	p.buf = appendFloat64(p.buf[:0], value)
	p.w.Write(p.buf)
}

func (p *CSVPrinter) WriteDate(daysSinceEpoch int32) {
	p.buf = appendDate(p.buf[:0], int64(daysSinceEpoch))
	p.w.Write(p.buf)
}

func (p *CSVPrinter) WriteTimestampMillis(value int64) { p.writeTimestamp(value, 3) }
func (p *CSVPrinter) WriteTimestampMicros(value int64) { p.writeTimestamp(value, 6) }
func (p *CSVPrinter) WriteTimestampNanos(value int64)  { p.writeTimestamp(value, 9) }

func (p *CSVPrinter) writeTimestamp(value int64, fractionDigits int) {
	p.buf = appendShortTimestamp(p.buf[:0], value, fractionDigits)
	p.w.Write(p.buf)
}

// csvNeedsQuote reports whether value must be quoted. Only ASCII bytes
// trigger quoting, so byte comparison is safe on UTF-8 input.
func csvNeedsQuote(value []byte) bool {
	for _, c := range value {
		if c == '"' || c == ',' || c == '\n' || c == '\r' {
			return true
		}
	}
	return false
}
