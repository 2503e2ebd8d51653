package output

import (
	"testing"

	"github.com/justinpbarnett/scriptrun/internal/config"
)

const javaNotice = "Picked up JAVA_TOOL_OPTIONS: -Dfile.encoding=UTF-8"

func defaultClassifier(t *testing.T) *Classifier {
	t.Helper()
	cfg := config.DefaultConfig()
	c, err := NewClassifier(RulesFromConfig(cfg.Output, cfg.Runner.ScriptName))
	if err != nil {
		t.Fatalf("NewClassifier() error: %v", err)
	}
	return c
}

func TestClassifyTagging(t *testing.T) {
	c := defaultClassifier(t)

	tests := []struct {
		name   string
		line   string
		stream Stream
		want   Kind
	}{
		{"stderr always error", "warning: deprecated API", Stderr, KindError},
		{"stderr empty line", "", Stderr, KindError},
		{"stdout plain", "hello", Stdout, KindPlain},
		{"stdout exception", "Exception in thread \"main\" java.lang.IllegalStateException: boom", Stdout, KindError},
		{"stdout exception substring", "kotlin.NotImplementedError: An operation is not implementedException", Stdout, KindError},
		{"stdout compiler error", "script.kts:3:1: error: unresolved reference: foo", Stdout, KindError},
		{"stdout leading error", "error: could not find or load main class", Stdout, KindError},
		{"stdout word error mid-line", "no errors found", Stdout, KindPlain},
		{"stdout location only", "see script.kts:4", Stdout, KindPlain},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ev, ok := c.Classify(tt.line, tt.stream)
			if !ok {
				t.Fatalf("line %q unexpectedly suppressed", tt.line)
			}
			if ev.Kind != tt.want {
				t.Errorf("Classify(%q, %s) kind = %s, want %s", tt.line, tt.stream, ev.Kind, tt.want)
			}
			if ev.Stream != tt.stream {
				t.Errorf("expected stream %s, got %s", tt.stream, ev.Stream)
			}
			if ev.Text != tt.line {
				t.Errorf("expected text preserved, got %q", ev.Text)
			}
		})
	}
}

func TestClassifySuppressesNoise(t *testing.T) {
	c := defaultClassifier(t)

	for _, stream := range []Stream{Stdout, Stderr} {
		if _, ok := c.Classify(javaNotice, stream); ok {
			t.Errorf("expected notice suppressed on %s", stream)
		}
	}
}

func TestClassifyKeepsEscapesInText(t *testing.T) {
	c := defaultClassifier(t)

	line := "\x1b[31mscript.kts:2:7: error: type mismatch\x1b[0m"
	ev, ok := c.Classify(line, Stdout)
	if !ok {
		t.Fatal("unexpectedly suppressed")
	}
	if ev.Text != line {
		t.Errorf("expected the line unmodified, got %q", ev.Text)
	}
	if ev.Kind != KindError {
		t.Errorf("expected error kind, got %s", ev.Kind)
	}
	if ev.Location == nil || ev.Location.Line != 2 || ev.Location.Column != 7 || ev.Location.File != "script.kts" {
		t.Fatalf("expected location 2:7 in script.kts, got %+v", ev.Location)
	}
	if ev.Location.Start != 0 || ev.Location.End != 0 {
		t.Errorf("expected no offsets for an escaped line, got %d-%d", ev.Location.Start, ev.Location.End)
	}
}

func TestClassifyPlainLineUnmodified(t *testing.T) {
	c := defaultClassifier(t)

	for _, line := range []string{"  indented\tand tabbed  ", "trailing space ", ""} {
		ev, ok := c.Classify(line, Stdout)
		if !ok || ev.Text != line || ev.Kind != KindPlain {
			t.Errorf("expected %q passed through as plain, got %+v (%v)", line, ev, ok)
		}
	}
}

func TestClassifyEscapedNoise(t *testing.T) {
	c := defaultClassifier(t)
	if _, ok := c.Classify("\x1b[2m"+javaNotice+"\x1b[0m", Stderr); ok {
		t.Error("expected escaped notice suppressed")
	}
}

func TestClassifyLocation(t *testing.T) {
	c := defaultClassifier(t)

	tests := []struct {
		line     string
		wantLine int
		wantCol  int
	}{
		{"script.kts:12:5: error: expecting ')'", 12, 5},
		{"at Script.main(script.kts:9)", 9, 1},
		{"/tmp/scriptrun-1234/script.kts:1:14: warning: unused", 1, 14},
		{`C:\Users\me\AppData\Local\Temp\scriptrun-1\script.kts:7:2: error: x`, 7, 2},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			ev, _ := c.Classify(tt.line, Stderr)
			if ev.Location == nil {
				t.Fatalf("expected location in %q", tt.line)
			}
			if ev.Location.Line != tt.wantLine || ev.Location.Column != tt.wantCol {
				t.Errorf("expected %d:%d, got %s", tt.wantLine, tt.wantCol, ev.Location)
			}
			got := tt.line[ev.Location.Start:ev.Location.End]
			if got == "" || got[len(got)-1] < '0' || got[len(got)-1] > '9' {
				t.Errorf("expected range to cover the reference, got %q", got)
			}
		})
	}
}

func TestClassifyNoLocationForOtherExtensions(t *testing.T) {
	c := defaultClassifier(t)

	ev, _ := c.Classify("at Main.main(Main.java:10)", Stdout)
	if ev.Location != nil {
		t.Errorf("expected no location for .java reference, got %+v", ev.Location)
	}
}

func TestFindLocationsMultiple(t *testing.T) {
	locs := FindLocations("script.kts:1:2 and script.kts:30", "kts")
	if len(locs) != 2 {
		t.Fatalf("expected 2 locations, got %d", len(locs))
	}
	if locs[0].String() != "1:2" || locs[1].String() != "30:1" {
		t.Errorf("unexpected locations %s, %s", locs[0], locs[1])
	}
	if locs[0].File != "script.kts" {
		t.Errorf("expected file script.kts, got %q", locs[0].File)
	}
}

func TestFindLocationsCustomExtension(t *testing.T) {
	locs := FindLocations("main.py:4:1 in script.kts:2", ".py")
	if len(locs) != 1 || locs[0].Line != 4 {
		t.Fatalf("expected one .py location at line 4, got %+v", locs)
	}
}

func TestNewClassifierBadPattern(t *testing.T) {
	if _, err := NewClassifier(Rules{ErrorPatterns: []string{"("}}); err == nil {
		t.Error("expected error for invalid error pattern")
	}
	if _, err := NewClassifier(Rules{NoisePatterns: []string{"["}}); err == nil {
		t.Error("expected error for invalid noise pattern")
	}
}
