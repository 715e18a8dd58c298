// parquet-to-text-stream streams a Parquet file to stdout as CSV or JSON,
// optionally windowed by row and column ranges.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/vegasq/pqtools/output"
	"github.com/vegasq/pqtools/ranges"
	"github.com/vegasq/pqtools/reader"
	"github.com/vegasq/pqtools/stream"
)

var (
	rowRangeFlag    = flag.String("row-range", "", "[start, end) range of rows to include (e.g. 0-100)")
	columnRangeFlag = flag.String("column-range", "", "[start, end) range of columns to include (e.g. 0-16)")
)

func main() {
	flag.Usage = usage
	flag.Parse()

	if flag.NArg() != 2 {
		usage()
		os.Exit(1)
	}
	path := flag.Arg(0)
	format := flag.Arg(1)

	rowRange, err := parseRangeFlag("row-range", *rowRangeFlag)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		usage()
		os.Exit(1)
	}
	columnRange, err := parseRangeFlag("column-range", *columnRangeFlag)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		usage()
		os.Exit(1)
	}

	var printer output.Printer
	switch format {
	case "csv":
		printer = output.NewCSVPrinter(os.Stdout)
	case "json":
		printer = output.NewJSONPrinter(os.Stdout)
	default:
		fmt.Fprintln(os.Stderr, "<FORMAT> must be either 'csv' or 'json'")
		usage()
		os.Exit(1)
	}

	r, err := reader.NewReader(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer r.Close()

	if err := stream.Stream(r.File(), printer, columnRange, rowRange); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func parseRangeFlag(name, value string) (ranges.Range, error) {
	if value == "" {
		return ranges.Unbounded(), nil
	}
	r, err := ranges.Parse(value)
	if err != nil {
		return ranges.Range{}, fmt.Errorf("-%s does not look like '123-234': %v", name, err)
	}
	return r, nil
}

func usage() {
	fmt.Fprintf(os.Stderr, "Usage: %s [options] <PARQUET_FILENAME> <FORMAT>\n\n", os.Args[0])
	fmt.Fprintf(os.Stderr, "Stream a Parquet file to stdout as text.\n\n")
	fmt.Fprintf(os.Stderr, "FORMAT is either 'csv' or 'json'.\n\n")
	fmt.Fprintf(os.Stderr, "Options:\n")
	flag.PrintDefaults()
	fmt.Fprintf(os.Stderr, "\nExamples:\n")
	fmt.Fprintf(os.Stderr, "  %s data.parquet csv\n", os.Args[0])
	fmt.Fprintf(os.Stderr, "  %s --row-range=200-400 --column-range=0-16 data.parquet json\n", os.Args[0])
}
