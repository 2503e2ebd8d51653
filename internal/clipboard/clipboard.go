// Package clipboard copies run transcripts to the system clipboard.
package clipboard

import (
	"encoding/base64"
	"io"
	"os"
	"strings"

	"github.com/atotto/clipboard"
)

// writeNative is swapped out in tests.
var writeNative = clipboard.WriteAll

// Copy puts text on the native clipboard (pbcopy, xclip, wl-copy, ...). When
// none is available it writes an OSC 52 sequence to term instead, which most
// terminals honour over SSH.
func Copy(text string, term io.Writer) error {
	if err := writeNative(text); err == nil {
		return nil
	}
	_, err := io.WriteString(term, Sequence(text, os.Getenv("TMUX") != ""))
	return err
}

// Sequence returns the OSC 52 escape for text. Inside tmux the sequence is
// wrapped in a DCS passthrough.
func Sequence(text string, tmux bool) string {
	seq := "\x1b]52;c;" + base64.StdEncoding.EncodeToString([]byte(text)) + "\x07"
	if !tmux {
		return seq
	}
	return "\x1bPtmux;" + strings.ReplaceAll(seq, "\x1b", "\x1b\x1b") + "\x1b\\"
}
