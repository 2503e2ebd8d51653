// Package output classifies toolchain output lines into tagged events.
package output

// Stream identifies which pipe a line was read from.
type Stream string

const (
	Stdout Stream = "stdout"
	Stderr Stream = "stderr"
)

type Kind string

const (
	KindPlain Kind = "plain"
	KindError Kind = "error"
)

// Event is one classified line of output.
type Event struct {
	Stream   Stream
	Kind     Kind
	Text     string
	Location *Location // first script location in Text, if any
}

func (e Event) IsError() bool { return e.Kind == KindError }

// Markup returns Text wrapped in the error delimiters for error events, and
// Text unchanged otherwise.
func (e Event) Markup() string {
	if e.Kind == KindError {
		return Wrap(e.Text)
	}
	return e.Text
}
