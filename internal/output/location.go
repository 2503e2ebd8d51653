package output

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Location is a reference to a position in the script, as printed by the
// toolchain (e.g. "script.kts:12:5").
type Location struct {
	File   string
	Line   int
	Column int

	// Byte offsets of the whole reference within the line. Both are zero
	// when the line carries escape sequences.
	Start int
	End   int
}

func (l Location) String() string {
	return fmt.Sprintf("%d:%d", l.Line, l.Column)
}

func locationPattern(ext string) (*regexp.Regexp, error) {
	ext = strings.TrimPrefix(ext, ".")
	return regexp.Compile(`((?:[a-zA-Z]:)?[^:\s]+\.` + regexp.QuoteMeta(ext) + `):(\d+)(?::(\d+))?`)
}

// FindLocations returns every script location in text for scripts with the
// given extension. Column defaults to 1 when absent.
func FindLocations(text, ext string) []Location {
	re, err := locationPattern(ext)
	if err != nil {
		return nil
	}
	return findLocations(re, text)
}

func findLocations(re *regexp.Regexp, text string) []Location {
	var locs []Location
	for _, m := range re.FindAllStringSubmatchIndex(text, -1) {
		line, err := strconv.Atoi(text[m[4]:m[5]])
		if err != nil {
			continue
		}
		col := 1
		if m[6] >= 0 {
			if c, err := strconv.Atoi(text[m[6]:m[7]]); err == nil {
				col = c
			}
		}
		locs = append(locs, Location{
			File:   text[m[2]:m[3]],
			Line:   line,
			Column: col,
			Start:  m[0],
			End:    m[1],
		})
	}
	return locs
}
