package reader

import (
	"github.com/parquet-go/parquet-go"
	"github.com/parquet-go/parquet-go/format"
)

// ColumnDescriptor describes one leaf column of a Parquet file.
type ColumnDescriptor struct {
	// Index is the leaf column index, matching the order of
	// RowGroup.ColumnChunks.
	Index int
	// Name is the leaf field's own name.
	Name string
	// Kind is the physical type of the stored values.
	Kind parquet.Kind
	// Logical is the column's logical type annotation, nil when the
	// column has none.
	Logical *format.LogicalType
	// MaxDefinitionLevel and MaxRepetitionLevel describe nesting. The
	// tools only accept MaxDefinitionLevel <= 1 and
	// MaxRepetitionLevel == 0; enforcement happens at dispatch time so
	// each tool reports the violation its own way.
	MaxDefinitionLevel int
	MaxRepetitionLevel int
}

// Leaves returns descriptors for the file's leaf columns in column-chunk
// order.
func Leaves(f *parquet.File) []ColumnDescriptor {
	var leaves []ColumnDescriptor
	for _, child := range f.Root().Columns() {
		walkLeaves(child, 0, 0, &leaves)
	}
	return leaves
}

func walkLeaves(col *parquet.Column, defLevel, repLevel int, out *[]ColumnDescriptor) {
	if col.Optional() {
		defLevel++
	}
	if col.Repeated() {
		defLevel++
		repLevel++
	}

	if col.Leaf() {
		*out = append(*out, ColumnDescriptor{
			Index:              len(*out),
			Name:               col.Name(),
			Kind:               col.Type().Kind(),
			Logical:            col.Type().LogicalType(),
			MaxDefinitionLevel: defLevel,
			MaxRepetitionLevel: repLevel,
		})
		return
	}
	for _, child := range col.Columns() {
		walkLeaves(child, defLevel, repLevel, out)
	}
}

// SchemaInfo represents metadata about a single leaf column, flattened for
// display. Nested fields use dot notation (e.g. "address.street").
type SchemaInfo struct {
	Name         string
	Type         string
	PhysicalType string
	LogicalType  string
	Repetition   string
}

// ExtractSchemaInfo extracts display metadata about each leaf column of
// the Parquet file at path.
func ExtractSchemaInfo(path string) ([]SchemaInfo, error) {
	reader, err := NewReader(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = reader.Close() }()

	var infos []SchemaInfo
	for _, col := range reader.File().Root().Columns() {
		infos = append(infos, schemaInfoOf(col, "", false)...)
	}
	return infos, nil
}

func schemaInfoOf(col *parquet.Column, prefix string, parentRepeated bool) []SchemaInfo {
	name := col.Name()
	if prefix != "" {
		name = prefix + "." + name
	}
	repeated := parentRepeated || col.Repeated()

	if !col.Leaf() {
		var infos []SchemaInfo
		for _, child := range col.Columns() {
			infos = append(infos, schemaInfoOf(child, name, repeated)...)
		}
		return infos
	}

	repetition := "required"
	switch {
	case repeated:
		repetition = "repeated"
	case col.Optional():
		repetition = "optional"
	}

	return []SchemaInfo{{
		Name:         name,
		Type:         friendlyType(col),
		PhysicalType: col.Type().Kind().String(),
		LogicalType:  LogicalTypeString(col.Type().LogicalType()),
		Repetition:   repetition,
	}}
}

// LogicalTypeString renders a logical type annotation, "NONE" when absent.
func LogicalTypeString(logical *format.LogicalType) string {
	if logical == nil {
		return "NONE"
	}
	return logical.String()
}

// friendlyType converts a column's physical and logical types into a
// simpler name for end users.
func friendlyType(col *parquet.Column) string {
	if logical := col.Type().LogicalType(); logical != nil {
		switch {
		case logical.UTF8 != nil:
			return "STRING"
		case logical.Date != nil:
			return "DATE"
		case logical.Timestamp != nil:
			return "TIMESTAMP"
		case logical.Integer != nil:
			if logical.Integer.IsSigned {
				return col.Type().Kind().String()
			}
			if col.Type().Kind() == parquet.Int64 {
				return "UINT64"
			}
			return "UINT32"
		}
	}

	switch col.Type().Kind() {
	case parquet.Float:
		return "FLOAT32"
	case parquet.Double:
		return "FLOAT64"
	default:
		return col.Type().Kind().String()
	}
}
