// parquet-diff compares two Parquet files for logical equivalence.
//
// Exit status: 0 when the files are equivalent, 1 when they differ (the
// first difference is printed to stdout), 2 when a file uses columns the
// comparison does not support.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/vegasq/pqtools/diff"
	"github.com/vegasq/pqtools/reader"
)

func main() {
	flag.Usage = usage
	flag.Parse()

	if flag.NArg() != 2 {
		usage()
		os.Exit(1)
	}

	r1, err := reader.NewReader(flag.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer r1.Close()

	r2, err := reader.NewReader(flag.Arg(1))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer r2.Close()

	code, err := diff.Files(r1.File(), r2.File(), os.Stdout)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	os.Exit(code)
}

func usage() {
	fmt.Fprintf(os.Stderr, "Usage: %s <PARQUET_FILENAME_1> <PARQUET_FILENAME_2>\n\n", os.Args[0])
	fmt.Fprintf(os.Stderr, "Compare two Parquet files, ignoring encoding differences.\n")
	fmt.Fprintf(os.Stderr, "Exits 0 if equivalent, 1 if different, 2 if a file is unsupported.\n")
}
