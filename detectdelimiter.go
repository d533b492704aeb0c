package cladesum

import (
	"bufio"
	"bytes"
	"io"

	"github.com/csimplestring/go-csv/detector"
)

// SniffBytes bounds how much of a table is handed to the delimiter detector.
// Readers passed to SniffDelimiter should buffer at least this much.
const SniffBytes = 64 * 1024

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

// SniffDelimiter detects the delimiter of br from its first few kilobytes
// without consuming them, so br can still be read from the start.
func SniffDelimiter(br *bufio.Reader) rune {
	head, _ := br.Peek(SniffBytes)

	// Only hand complete lines to the detector
	if i := bytes.LastIndexByte(head, '\n'); i >= 0 {
		head = head[:i+1]
	}

	return DetermineDelimiter(bytes.NewReader(head))
}
