// parquet-to-arrow-slice copies a rectangle of a Parquet file into an
// Arrow IPC file holding one record batch.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/vegasq/pqtools/ranges"
	"github.com/vegasq/pqtools/reader"
	"github.com/vegasq/pqtools/slice"
)

func main() {
	flag.Usage = usage
	flag.Parse()

	if flag.NArg() != 4 {
		usage()
		os.Exit(1)
	}
	parquetPath := flag.Arg(0)
	arrowPath := flag.Arg(3)

	columnRange, err := ranges.Parse(flag.Arg(1))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: column range %q: %v\n", flag.Arg(1), err)
		os.Exit(1)
	}
	rowRange, err := ranges.Parse(flag.Arg(2))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: row range %q: %v\n", flag.Arg(2), err)
		os.Exit(1)
	}

	r, err := reader.NewReader(parquetPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer r.Close()

	record, err := slice.Read(r.File(), columnRange, rowRange)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer record.Release()

	if err := slice.WriteFile(record, arrowPath); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintf(os.Stderr, "Usage: %s <PARQUET_FILENAME> <COL0-COLN> <ROW0-ROWN> <ARROW_FILENAME>\n\n", os.Args[0])
	fmt.Fprintf(os.Stderr, "For instance: %s table.parquet 0-16 200-400 table.arrow\n", os.Args[0])
	fmt.Fprintf(os.Stderr, "Rows and columns are numbered like C arrays. Out-of-bounds indices are ignored.\n")
}
