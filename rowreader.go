package minigwas

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"io"
	"strings"
)

// maxLineBytes bounds one row of a whitespace-delimited table. Genotype rows
// carry one field per marker, so they can be long.
const maxLineBytes = 256 * 1024 * 1024

// RowReader yields one split row per call and io.EOF at the end. Both
// *csv.Reader and the reader returned by NewFieldsReader satisfy it.
type RowReader interface {
	Read() ([]string, error)
}

// NewRowReader detects how r is delimited. A table whose first row holds
// none of the detected delimiter but does hold spaces or tabs (PLINK style,
// column-aligned) is split on runs of whitespace; anything else is read as
// CSV with the detected delimiter. Lines starting with comment are skipped.
func NewRowReader(r io.Reader, comment rune) RowReader {
	br := bufio.NewReader(r)
	delim := SniffDelimiter(br)

	head, _ := br.Peek(sniffBytes)
	if first := firstRow(head, comment); !strings.ContainsRune(first, delim) && strings.ContainsAny(first, " \t") {
		return NewFieldsReader(br, comment)
	}

	cr := csv.NewReader(br)
	cr.Comma = delim
	cr.Comment = comment
	cr.TrimLeadingSpace = true

	return cr
}

// firstRow returns the first line of head that is neither blank nor a
// comment, trimmed of surrounding whitespace.
func firstRow(head []byte, comment rune) string {
	for _, line := range bytes.Split(head, []byte{'\n'}) {
		text := strings.TrimSpace(string(line))
		if text == "" || (comment != 0 && strings.HasPrefix(text, string(comment))) {
			continue
		}
		return text
	}

	return ""
}

type fieldsReader struct {
	scanner *bufio.Scanner
	comment rune
}

// NewFieldsReader splits each line of r on runs of spaces and tabs. Blank
// lines and lines starting with comment are skipped.
func NewFieldsReader(r io.Reader, comment rune) RowReader {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineBytes)

	return &fieldsReader{scanner: scanner, comment: comment}
}

func (f *fieldsReader) Read() ([]string, error) {
	for f.scanner.Scan() {
		text := f.scanner.Text()
		if strings.TrimSpace(text) == "" {
			continue
		}
		if f.comment != 0 && strings.HasPrefix(text, string(f.comment)) {
			continue
		}
		return strings.Fields(text), nil
	}

	if err := f.scanner.Err(); err != nil {
		return nil, err
	}

	return nil, io.EOF
}
