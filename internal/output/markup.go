package output

import "strings"

// Delimiters around error-tagged lines. Renderers hide them and style the
// enclosed text instead.
const (
	ErrOpen  = "<ERR>"
	ErrClose = "</ERR>"
)

func Wrap(s string) string {
	return ErrOpen + s + ErrClose
}

// Segment is a run of marked-up text with a single classification.
type Segment struct {
	Text  string
	Error bool
}

// Segments splits marked-up text into plain and error runs, dropping the
// delimiters. An unterminated ErrOpen is treated as literal text.
func Segments(s string) []Segment {
	var segs []Segment
	for s != "" {
		i := strings.Index(s, ErrOpen)
		if i < 0 {
			break
		}
		j := strings.Index(s[i+len(ErrOpen):], ErrClose)
		if j < 0 {
			break
		}
		if i > 0 {
			segs = append(segs, Segment{Text: s[:i]})
		}
		inner := s[i+len(ErrOpen) : i+len(ErrOpen)+j]
		segs = append(segs, Segment{Text: inner, Error: true})
		s = s[i+len(ErrOpen)+j+len(ErrClose):]
	}
	if s != "" {
		segs = append(segs, Segment{Text: s})
	}
	return segs
}

// StripMarkup removes every matched delimiter pair, leaving the text a user
// should see.
func StripMarkup(s string) string {
	var b strings.Builder
	for _, seg := range Segments(s) {
		b.WriteString(seg.Text)
	}
	return b.String()
}
