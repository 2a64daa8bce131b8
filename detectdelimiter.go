package minigwas

import (
	"bufio"
	"bytes"
	"io"

	"github.com/csimplestring/go-csv/detector"
)

// sniffBytes is how much of a table is inspected when guessing its delimiter.
const sniffBytes = 64 * 1024

// DetermineDelimiter returns the single most likely rune that would delimit the
// values in the reader, assuming a CSV-like file.
func DetermineDelimiter(r io.Reader) rune {
	d := detector.New()
	delimiters := d.DetectDelimiter(r, '"')

	if len(delimiters) > 0 && len(delimiters[0]) > 0 {
		return rune(delimiters[0][0])
	}

	return ','
}

// SniffDelimiter guesses the delimiter of a buffered table without consuming
// any of it, so the same reader can then be handed to a csv.Reader.
func SniffDelimiter(br *bufio.Reader) rune {
	head, _ := br.Peek(sniffBytes)

	// Only whole lines are useful to the detector
	if i := bytes.LastIndexByte(head, '\n'); i > 0 {
		head = head[:i+1]
	}

	return DetermineDelimiter(bytes.NewReader(head))
}
