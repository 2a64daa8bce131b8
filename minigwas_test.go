package minigwas

import (
	"bufio"
	"bytes"
	"compress/gzip"
	"compress/zlib"
	"io"
	"os"
	"os/user"
	"path/filepath"
	"strings"
	"testing"
)

const table = "IID\tldl\tage\np1\t1.5\t40\np2\t2.25\t51\np3\t0.75\t38\n"

func TestSniffDelimiter(t *testing.T) {
	for want, input := range map[rune]string{
		'\t': table,
		',':  strings.ReplaceAll(table, "\t", ","),
	} {
		br := bufio.NewReader(strings.NewReader(input))
		if got := SniffDelimiter(br); got != want {
			t.Errorf("Expected %q, saw %q", want, got)
		}

		// Sniffing must not consume the input
		rest, err := io.ReadAll(br)
		if err != nil {
			t.Fatal(err)
		}
		if string(rest) != input {
			t.Errorf("Sniffing consumed input")
		}
	}
}

func TestNewRowReader(t *testing.T) {
	for name, input := range map[string]string{
		"tab":    table,
		"comma":  strings.ReplaceAll(table, "\t", ","),
		"spaces": strings.ReplaceAll(table, "\t", "   "),
	} {
		rr := NewRowReader(strings.NewReader(input), '#')

		rows := 0
		for {
			row, err := rr.Read()
			if err == io.EOF {
				break
			} else if err != nil {
				t.Fatalf("%s: %v", name, err)
			}

			if len(row) != 3 {
				t.Fatalf("%s: expected 3 fields, saw %q", name, row)
			}
			if rows == 0 && row[1] != "ldl" {
				t.Fatalf("%s: unexpected header %q", name, row)
			}
			rows++
		}

		if rows != 4 {
			t.Errorf("%s: expected 4 rows, saw %d", name, rows)
		}
	}
}

func TestDetectDataType(t *testing.T) {
	var gz bytes.Buffer
	zw := gzip.NewWriter(&gz)
	zw.Write([]byte(table))
	zw.Close()

	for want, input := range map[DataType][]byte{
		DataTypeGzip:          gz.Bytes(),
		DataTypeNoCompression: []byte(table),
	} {
		got, err := DetectDataType(bytes.NewReader(input))
		if err != nil {
			t.Fatal(err)
		}
		if got != want {
			t.Errorf("Expected data type %d, saw %d", want, got)
		}
	}

	// Inputs shorter than the longest signature are not an error
	if got, err := DetectDataType(strings.NewReader("a\n")); err != nil || got != DataTypeNoCompression {
		t.Errorf("Short input: %d, %v", got, err)
	}
}

func writeTemp(t *testing.T, name string, write func(io.Writer) io.Closer) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}

	if closer := write(f); closer != nil {
		if err := closer.Close(); err != nil {
			t.Fatal(err)
		}
	}

	if err := f.Close(); err != nil {
		t.Fatal(err)
	}

	return path
}

func TestOpenInput(t *testing.T) {
	paths := map[string]string{
		"plain": writeTemp(t, "plain.tsv", func(w io.Writer) io.Closer {
			io.WriteString(w, table)
			return nil
		}),
		"gzip": writeTemp(t, "table.tsv.gz", func(w io.Writer) io.Closer {
			zw := gzip.NewWriter(w)
			io.WriteString(zw, table)
			return zw
		}),
		"zlib": writeTemp(t, "table.tsv.z", func(w io.Writer) io.Closer {
			zw := zlib.NewWriter(w)
			io.WriteString(zw, table)
			return zw
		}),
	}

	for name, path := range paths {
		rc, err := OpenInput(path, nil)
		if err != nil {
			t.Fatalf("%s: %v", name, err)
		}

		got, err := io.ReadAll(rc)
		if err != nil {
			t.Fatalf("%s: %v", name, err)
		}
		if err := rc.Close(); err != nil {
			t.Errorf("%s: %v", name, err)
		}

		if string(got) != table {
			t.Errorf("%s: read %q", name, got)
		}
	}
}

func TestOpenInputGoogleStorageNeedsClient(t *testing.T) {
	if _, err := OpenInput("gs://bucket/pheno.tsv", nil); err == nil {
		t.Fatalf("Expected an error without a storage client")
	}
}

func TestExpandHome(t *testing.T) {
	usr, err := user.Current()
	if err != nil {
		t.Skip(err)
	}

	for input, want := range map[string]string{
		"~":              usr.HomeDir,
		"~/data/x.tsv":   filepath.Join(usr.HomeDir, "data/x.tsv"),
		"/abs/~/x.tsv":   "/abs/~/x.tsv",
		"relative/x.tsv": "relative/x.tsv",
	} {
		got, err := ExpandHome(input)
		if err != nil {
			t.Fatal(err)
		}
		if got != want {
			t.Errorf("ExpandHome(%q) = %q, want %q", input, got, want)
		}
	}
}
