package output

import (
	"fmt"
	"path/filepath"
	"regexp"

	"github.com/charmbracelet/x/ansi"
	"github.com/justinpbarnett/scriptrun/internal/config"
)

// Rules configures a Classifier.
type Rules struct {
	NoisePatterns []string
	ErrorPatterns []string
	ScriptExt     string
}

// RulesFromConfig derives classification rules from the output config and the
// script file name.
func RulesFromConfig(out config.OutputConfig, scriptName string) Rules {
	return Rules{
		NoisePatterns: out.NoisePatterns,
		ErrorPatterns: out.ErrorPatterns,
		ScriptExt:     filepath.Ext(scriptName),
	}
}

// Classifier tags raw output lines. Matching is purely textual; it is not a
// diagnostic parser.
type Classifier struct {
	noise    []*regexp.Regexp
	failure  []*regexp.Regexp
	location *regexp.Regexp
}

func NewClassifier(r Rules) (*Classifier, error) {
	c := &Classifier{}
	for _, p := range r.NoisePatterns {
		re, err := regexp.Compile(p)
		if err != nil {
			return nil, fmt.Errorf("noise pattern %q: %w", p, err)
		}
		c.noise = append(c.noise, re)
	}
	for _, p := range r.ErrorPatterns {
		re, err := regexp.Compile(p)
		if err != nil {
			return nil, fmt.Errorf("error pattern %q: %w", p, err)
		}
		c.failure = append(c.failure, re)
	}
	if r.ScriptExt != "" {
		re, err := locationPattern(r.ScriptExt)
		if err != nil {
			return nil, fmt.Errorf("location pattern: %w", err)
		}
		c.location = re
	}
	return c, nil
}

// Classify turns a raw line into an Event. The boolean is false when the
// line is known noise and must not be shown. Matching ignores terminal
// escape sequences; the delivered Text is the line exactly as read.
func (c *Classifier) Classify(line string, stream Stream) (Event, bool) {
	plain := ansi.Strip(line)

	if matchAny(c.noise, plain) {
		return Event{}, false
	}

	ev := Event{Stream: stream, Kind: KindPlain, Text: line}
	if stream == Stderr || matchAny(c.failure, plain) {
		ev.Kind = KindError
	}

	if c.location != nil {
		if locs := findLocations(c.location, plain); len(locs) > 0 {
			loc := locs[0]
			if plain != line {
				// Offsets refer to the stripped text, not to Text.
				loc.Start, loc.End = 0, 0
			}
			ev.Location = &loc
		}
	}
	return ev, true
}

// Locations returns every script location in an event's text.
func (c *Classifier) Locations(text string) []Location {
	if c.location == nil {
		return nil
	}
	return findLocations(c.location, text)
}

func matchAny(res []*regexp.Regexp, s string) bool {
	for _, re := range res {
		if re.MatchString(s) {
			return true
		}
	}
	return false
}
