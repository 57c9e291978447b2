package agent

import (
	"bufio"
	"bytes"
	"io"
)

// MaxLineBytes is the longest input line handled as written. Longer lines are
// cut to this length and the remainder up to the next newline is discarded.
const MaxLineBytes = 1 << 20

// NewLineScanner returns a line scanner for operator input that never fails
// with bufio.ErrTooLong.
func NewLineScanner(r io.Reader) *bufio.Scanner {
	s := bufio.NewScanner(r)
	s.Buffer(make([]byte, 0, 64*1024), MaxLineBytes)
	s.Split(truncatingLines())
	return s
}

func truncatingLines() bufio.SplitFunc {
	discarding := false
	return func(data []byte, atEOF bool) (int, []byte, error) {
		if discarding {
			i := bytes.IndexByte(data, '\n')
			if i < 0 {
				return len(data), nil, nil
			}
			discarding = false
			return i + 1, nil, nil
		}

		advance, token, err := bufio.ScanLines(data, atEOF)
		if advance == 0 && token == nil && err == nil && len(data) >= MaxLineBytes {
			discarding = true
			return len(data), data[:MaxLineBytes], nil
		}
		return advance, token, err
	}
}
