package diff

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/parquet-go/parquet-go"
	"github.com/stretchr/testify/require"

	"github.com/vegasq/pqtools/reader"
)

func writeParquet[T any](t *testing.T, batches ...[]T) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "test.parquet")
	file, err := os.Create(path)
	require.NoError(t, err)
	defer file.Close()

	writer := parquet.NewGenericWriter[T](file)
	for _, batch := range batches {
		_, err := writer.Write(batch)
		require.NoError(t, err)
		require.NoError(t, writer.Flush())
	}
	require.NoError(t, writer.Close())
	return path
}

func diffPaths(t *testing.T, path1, path2 string) (int, string) {
	t.Helper()

	r1, err := reader.NewReader(path1)
	require.NoError(t, err)
	defer r1.Close()
	r2, err := reader.NewReader(path2)
	require.NoError(t, err)
	defer r2.Close()

	var buf bytes.Buffer
	code, err := Files(r1.File(), r2.File(), &buf)
	require.NoError(t, err)
	return code, buf.String()
}

type stringRow struct {
	C string `parquet:"c"`
}

type dictStringRow struct {
	C string `parquet:"c,dict"`
}

type plainStringRow struct {
	C string `parquet:"c,plain"`
}

func TestDiffIdenticalFile(t *testing.T) {
	type row struct {
		A *int64   `parquet:"a,optional"`
		B *string  `parquet:"b,optional"`
		F *float64 `parquet:"f,optional"`
	}
	i64 := func(v int64) *int64 { return &v }
	str := func(v string) *string { return &v }
	f64 := func(v float64) *float64 { return &v }

	rows := []row{
		{A: i64(1), B: str("x"), F: f64(0.5)},
		{A: nil, B: str("y"), F: nil},
		{A: i64(3), B: nil, F: f64(-1)},
	}
	path1 := writeParquet(t, rows)
	path2 := writeParquet(t, rows)

	code, out := diffPaths(t, path1, path2)
	require.Equal(t, Equivalent, code)
	require.Empty(t, out)
}

func TestDiffEquivalentAcrossEncodings(t *testing.T) {
	values := []string{"a", "a", "b"}

	var dict []dictStringRow
	var plain []plainStringRow
	for _, v := range values {
		dict = append(dict, dictStringRow{C: v})
		plain = append(plain, plainStringRow{C: v})
	}

	path1 := writeParquet(t, dict)
	path2 := writeParquet(t, plain)

	code, out := diffPaths(t, path1, path2)
	require.Equal(t, Equivalent, code)
	require.Empty(t, out)
}

func TestDiffColumnCount(t *testing.T) {
	type one struct {
		A int64 `parquet:"a"`
	}
	type two struct {
		A int64 `parquet:"a"`
		B int64 `parquet:"b"`
	}
	path1 := writeParquet(t, []one{{A: 1}})
	path2 := writeParquet(t, []two{{A: 1, B: 2}})

	code, out := diffPaths(t, path1, path2)
	require.Equal(t, Different, code)
	require.Equal(t, "Number of columns:\n-1\n+2\n", out)
}

func TestDiffColumnName(t *testing.T) {
	type left struct {
		A int64 `parquet:"a"`
		B int64 `parquet:"b"`
	}
	type right struct {
		A int64 `parquet:"a"`
		B int64 `parquet:"b2"`
	}
	path1 := writeParquet(t, []left{{A: 1, B: 2}})
	path2 := writeParquet(t, []right{{A: 1, B: 2}})

	code, out := diffPaths(t, path1, path2)
	require.Equal(t, Different, code)
	require.Equal(t, "Column 1 name:\n-b\n+b2\n", out)
}

func TestDiffPhysicalType(t *testing.T) {
	type left struct {
		C int32 `parquet:"c"`
	}
	type right struct {
		C int64 `parquet:"c"`
	}
	path1 := writeParquet(t, []left{{C: 7}})
	path2 := writeParquet(t, []right{{C: 7}})

	code, out := diffPaths(t, path1, path2)
	require.Equal(t, Different, code)
	require.Equal(t, "Column 0 (c) physical type:\n-INT32\n+INT64\n", out)
}

func TestDiffLogicalType(t *testing.T) {
	type left struct {
		C int64 `parquet:"c"`
	}
	type right struct {
		C int64 `parquet:"c,timestamp(millisecond)"`
	}
	path1 := writeParquet(t, []left{{C: 7}})
	path2 := writeParquet(t, []right{{C: 7}})

	code, out := diffPaths(t, path1, path2)
	require.Equal(t, Different, code)
	require.Contains(t, out, "Column 0 (c) logical type:\n")
}

func TestDiffValueDifference(t *testing.T) {
	path1 := writeParquet(t, []stringRow{{C: "a"}, {C: "b"}})
	path2 := writeParquet(t, []stringRow{{C: "a"}, {C: "x"}})

	code, out := diffPaths(t, path1, path2)
	require.Equal(t, Different, code)
	require.Equal(t, "RowGroup 0, Column 0, Row 1:\n-b\n+x\n", out)
}

func TestDiffNullVersusValue(t *testing.T) {
	type row struct {
		C *string `parquet:"c,optional"`
	}
	str := func(v string) *string { return &v }

	path1 := writeParquet(t, []row{{C: str("a")}, {C: nil}})
	path2 := writeParquet(t, []row{{C: str("a")}, {C: str("b")}})

	code, out := diffPaths(t, path1, path2)
	require.Equal(t, Different, code)
	require.Equal(t, "RowGroup 0, Column 0, Row 1:\n-(null)\n+b\n", out)
}

func TestDiffSymmetry(t *testing.T) {
	path1 := writeParquet(t, []stringRow{{C: "a"}})
	path2 := writeParquet(t, []stringRow{{C: "z"}})

	code12, out12 := diffPaths(t, path1, path2)
	code21, out21 := diffPaths(t, path2, path1)
	require.Equal(t, Different, code12)
	require.Equal(t, Different, code21)
	require.Equal(t, "RowGroup 0, Column 0, Row 0:\n-a\n+z\n", out12)
	require.Equal(t, "RowGroup 0, Column 0, Row 0:\n-z\n+a\n", out21)
}

func TestDiffRowGroupShape(t *testing.T) {
	// Same rows split into different row-group boundaries.
	rows := []stringRow{{C: "a"}, {C: "b"}}
	path1 := writeParquet(t, rows)
	path2 := writeParquet(t, rows[:1], rows[1:])

	code, out := diffPaths(t, path1, path2)
	require.Equal(t, Different, code)
	require.Equal(t, "Number of row groups:\n-1\n+2\n", out)
}

func TestDiffRowGroupRowCounts(t *testing.T) {
	rows := []stringRow{{C: "a"}, {C: "b"}, {C: "c"}}
	path1 := writeParquet(t, rows[:1], rows[1:])
	path2 := writeParquet(t, rows[:2], rows[2:])

	code, out := diffPaths(t, path1, path2)
	require.Equal(t, Different, code)
	require.Equal(t, "RowGroup 0 number of rows:\n-1\n+2\n", out)
}

func TestDiffFloatValues(t *testing.T) {
	type row struct {
		F float64 `parquet:"f"`
	}
	path1 := writeParquet(t, []row{{F: 0.1}})
	path2 := writeParquet(t, []row{{F: 0.2}})

	code, out := diffPaths(t, path1, path2)
	require.Equal(t, Different, code)
	require.Equal(t, "RowGroup 0, Column 0, Row 0:\n-0.1\n+0.2\n", out)
}

func TestDiffUnsupportedPhysicalType(t *testing.T) {
	type row struct {
		B bool `parquet:"b"`
	}
	path1 := writeParquet(t, []row{{B: true}})
	path2 := writeParquet(t, []row{{B: true}})

	code, out := diffPaths(t, path1, path2)
	require.Equal(t, Unsupported, code)
	require.Contains(t, out, "unsupported physical type BOOLEAN")
}

func TestDiffUnsupportedNestedColumn(t *testing.T) {
	type row struct {
		Vals []int64 `parquet:"vals,list"`
	}
	path1 := writeParquet(t, []row{{Vals: []int64{1}}})
	path2 := writeParquet(t, []row{{Vals: []int64{1}}})

	code, out := diffPaths(t, path1, path2)
	require.Equal(t, Unsupported, code)
	require.Contains(t, out, "unsupported max_")
}
