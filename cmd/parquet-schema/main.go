// parquet-schema prints the schema of a Parquet file, and optionally
// per-row-group storage statistics.
package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/olekukonko/tablewriter"

	"github.com/vegasq/pqtools/output"
	"github.com/vegasq/pqtools/reader"
)

var (
	formatFlag = flag.String("f", "table", "Output format: table, csv, json")
	groupsFlag = flag.Bool("groups", false, "Also print per-row-group column statistics")
)

func main() {
	flag.Usage = usage
	flag.Parse()

	if flag.NArg() != 1 {
		usage()
		os.Exit(1)
	}
	path := flag.Arg(0)

	infos, err := reader.ExtractSchemaInfo(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	switch *formatFlag {
	case "table":
		printTable(infos)
	case "csv":
		printWithPrinter(output.NewCSVPrinter(os.Stdout), infos)
	case "json":
		printWithPrinter(output.NewJSONPrinter(os.Stdout), infos)
	default:
		fmt.Fprintf(os.Stderr, "Error: unsupported format '%s'\n", *formatFlag)
		fmt.Fprintf(os.Stderr, "Supported formats: table, csv, json\n")
		os.Exit(1)
	}

	if *groupsFlag {
		if err := printRowGroups(path); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	}
}

func printTable(infos []reader.SchemaInfo) {
	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Name", "Type", "Physical", "Logical", "Repetition"})
	for _, info := range infos {
		table.Append([]string{info.Name, info.Type, info.PhysicalType, info.LogicalType, info.Repetition})
	}
	table.Render()
}

var schemaColumns = []string{"name", "type", "physical_type", "logical_type", "repetition"}

func printWithPrinter(p output.Printer, infos []reader.SchemaInfo) {
	p.WriteFileHeader()
	for i, name := range schemaColumns {
		p.WriteHeaderField(i, name)
	}
	for row, info := range infos {
		fields := []string{info.Name, info.Type, info.PhysicalType, info.LogicalType, info.Repetition}
		p.WriteRecordStart(int64(row))
		for i, value := range fields {
			p.WriteFieldStart(i, schemaColumns[i])
			p.WriteString([]byte(value))
		}
		p.WriteRecordStop()
	}
	p.WriteFileFooter()
	if err := p.Flush(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func printRowGroups(path string) error {
	r, err := reader.NewReader(path)
	if err != nil {
		return err
	}
	defer r.Close()

	meta := r.File().Metadata()
	fmt.Printf("Num Rows: %d\n", meta.NumRows)
	for i, rowGroup := range meta.RowGroups {
		fmt.Printf("Row group %d: %d rows, %s\n",
			i, rowGroup.NumRows, humanize.Bytes(uint64(rowGroup.TotalByteSize)))

		table := tablewriter.NewWriter(os.Stdout)
		table.SetHeader([]string{"Col", "Type", "NumVal", "Compressed", "Uncompressed"})
		for _, col := range rowGroup.Columns {
			table.Append([]string{
				strings.Join(col.MetaData.PathInSchema, "/"),
				col.MetaData.Type.String(),
				fmt.Sprintf("%d", col.MetaData.NumValues),
				humanize.Bytes(uint64(col.MetaData.TotalCompressedSize)),
				humanize.Bytes(uint64(col.MetaData.TotalUncompressedSize)),
			})
		}
		table.Render()
	}
	return nil
}

func usage() {
	fmt.Fprintf(os.Stderr, "Usage: %s [options] <PARQUET_FILENAME>\n\n", os.Args[0])
	fmt.Fprintf(os.Stderr, "Print schema information for a Parquet file.\n\n")
	fmt.Fprintf(os.Stderr, "Options:\n")
	flag.PrintDefaults()
	fmt.Fprintf(os.Stderr, "\nExamples:\n")
	fmt.Fprintf(os.Stderr, "  %s data.parquet\n", os.Args[0])
	fmt.Fprintf(os.Stderr, "  %s -f csv -groups data.parquet\n", os.Args[0])
}
