package smd

import (
	"bufio"
	"io"
	"strings"
)

// maxLineSize bounds a single line; real files stay far below it.
const maxLineSize = 1 << 20

// lineReader yields trimmed lines with comments and blank lines removed.
type lineReader struct {
	sc  *bufio.Scanner
	err error
}

func newLineReader(r io.Reader) *lineReader {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	return &lineReader{sc: sc}
}

// next returns the next content line, or false at end of input.
func (lr *lineReader) next() (string, bool) {
	for lr.sc.Scan() {
		l := strings.TrimSpace(lr.sc.Text())
		if l == "" || l[0] == '#' || l[0] == ';' {
			continue
		}
		return l, true
	}
	if lr.err == nil {
		lr.err = lr.sc.Err()
	}
	return "", false
}

// nextBlockLine is next, but also stops at an "end" line. The "end" line
// itself is consumed.
func (lr *lineReader) nextBlockLine() (string, bool) {
	l, ok := lr.next()
	if !ok || strings.EqualFold(l, "end") {
		return "", false
	}
	return l, true
}
