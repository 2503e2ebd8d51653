package process

import (
	"errors"
	"io"
	"strings"
	"testing"
)

func collectLines(r io.Reader) ([]string, int) {
	var lines []string
	n := ReadLines(r, func(line string) {
		lines = append(lines, line)
	})
	return lines, n
}

func TestReadLinesPreservesOrder(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"empty", "", nil},
		{"single with newline", "a\n", []string{"a"}},
		{"single without newline", "a", []string{"a"}},
		{"several with trailing newline", "one\ntwo\nthree\n", []string{"one", "two", "three"}},
		{"several without trailing newline", "one\ntwo\nthree", []string{"one", "two", "three"}},
		{"blank lines kept", "a\n\nb\n", []string{"a", "", "b"}},
		{"crlf", "a\r\nb\r\n", []string{"a", "b"}},
		{"utf8", "héllo\n日本語", []string{"héllo", "日本語"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, n := collectLines(strings.NewReader(tt.input))
			if n != len(tt.want) {
				t.Fatalf("expected %d lines, got %d (%q)", len(tt.want), n, got)
			}
			for i := range tt.want {
				if got[i] != tt.want[i] {
					t.Errorf("line %d: expected %q, got %q", i, tt.want[i], got[i])
				}
			}
		})
	}
}

func TestReadLinesManyLines(t *testing.T) {
	for _, trailing := range []bool{true, false} {
		var b strings.Builder
		const n = 5000
		for i := 0; i < n; i++ {
			b.WriteString("line ")
			b.WriteString(strings.Repeat("x", i%97))
			if i < n-1 || trailing {
				b.WriteByte('\n')
			}
		}
		got, count := collectLines(strings.NewReader(b.String()))
		if count != n || len(got) != n {
			t.Fatalf("trailing=%v: expected %d lines, got %d", trailing, n, count)
		}
		if got[96] != "line "+strings.Repeat("x", 96) {
			t.Errorf("trailing=%v: line 96 out of order: %q", trailing, got[96])
		}
	}
}

func TestReadLinesLongLine(t *testing.T) {
	long := strings.Repeat("z", 3*1024*1024)
	got, n := collectLines(strings.NewReader(long + "\nend"))
	if n != 2 {
		t.Fatalf("expected 2 lines, got %d", n)
	}
	if len(got[0]) != len(long) {
		t.Errorf("expected long line of %d bytes, got %d", len(long), len(got[0]))
	}
}

func TestReadLinesInvalidUTF8(t *testing.T) {
	got, _ := collectLines(strings.NewReader("ok\xff\xfe\n"))
	if got[0] != "ok\uFFFD" {
		t.Errorf("expected invalid bytes replaced, got %q", got[0])
	}
}

type failingReader struct {
	data string
	done bool
}

func (r *failingReader) Read(p []byte) (int, error) {
	if r.done {
		return 0, errors.New("read |0: file already closed")
	}
	r.done = true
	return copy(p, r.data), nil
}

func TestReadLinesSwallowsReadError(t *testing.T) {
	got, n := collectLines(&failingReader{data: "first\npartial"})
	if n != 2 {
		t.Fatalf("expected 2 lines before the error, got %d (%q)", n, got)
	}
	if got[1] != "partial" {
		t.Errorf("expected partial line delivered, got %q", got[1])
	}
}

func TestReadLinesClosedPipe(t *testing.T) {
	pr, pw := io.Pipe()
	go func() {
		pw.Write([]byte("before close\n"))
		pw.CloseWithError(errors.New("killed"))
	}()

	got, n := collectLines(pr)
	if n != 1 || got[0] != "before close" {
		t.Errorf("expected one line before close, got %q", got)
	}
}
