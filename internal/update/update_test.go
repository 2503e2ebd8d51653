package update

import (
	"context"
	"errors"
	"testing"
)

func TestCompareVersions(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{"v0.1.0", "v0.2.0", -1},
		{"v1.0.0", "1.0.0", 0},
		{"v2.0.0", "v1.9.9", 1},
		{"0.3.0-2-g1a2b3c", "0.3.0", -1},
		{"0.4.0", "0.3.0-2-g1a2b3c", 1},
		{"dev", "v1.0.0", -1},
		{"v1.0.0", "dev", 1},
		{"dev", "", 0},
	}
	for _, tt := range tests {
		t.Run(tt.a+"_"+tt.b, func(t *testing.T) {
			if got := CompareVersions(tt.a, tt.b); got != tt.want {
				t.Errorf("CompareVersions(%q, %q) = %d, want %d", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestCheckSkipsDevBuilds(t *testing.T) {
	for _, v := range []string{"", "dev", "not-a-version"} {
		rel, err := Check(context.Background(), v, Repo)
		if err != nil || rel != nil {
			t.Errorf("Check(%q) = %+v, %v; want nil, nil", v, rel, err)
		}
	}
}

func TestApplyRejectsDevBuild(t *testing.T) {
	_, err := Apply(context.Background(), "dev", Repo)
	if !errors.Is(err, ErrDevBuild) {
		t.Errorf("expected ErrDevBuild, got %v", err)
	}
}
