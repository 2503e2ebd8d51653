package process

import (
	"bufio"
	"io"
	"strings"
	"unicode/utf8"
)

// ReadLines reads r until end of data and calls onLine for each line, in
// order, without its line terminator. A final line with no trailing newline
// is still delivered. Invalid UTF-8 is replaced with U+FFFD. Read errors end
// the loop quietly; they are expected when the producer is killed. Returns
// the number of lines delivered.
func ReadLines(r io.Reader, onLine func(string)) int {
	br := bufio.NewReaderSize(r, 64*1024)
	n := 0
	for {
		line, err := br.ReadString('\n')
		if len(line) > 0 {
			line = strings.TrimSuffix(line, "\n")
			line = strings.TrimSuffix(line, "\r")
			if !utf8.ValidString(line) {
				line = strings.ToValidUTF8(line, "\uFFFD")
			}
			onLine(line)
			n++
		}
		if err != nil {
			return n
		}
	}
}
