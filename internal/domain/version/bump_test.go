package version

import (
	"errors"
	"testing"
)

func TestBump(t *testing.T) {
	tests := []struct {
		name    string
		current string
		bump    BumpType
		want    string
	}{
		{"major", "1.2.3", BumpMajor, "2.0.0"},
		{"minor", "1.2.3", BumpMinor, "1.3.0"},
		{"patch", "2.0.0", BumpPatch, "2.0.1"},
		{"major from zero", "0.4.0", BumpMajor, "1.0.0"},
		{"minor drops prerelease", "1.2.3-rc.1", BumpMinor, "1.3.0"},
		{"patch drops prerelease", "1.2.3-rc.1", BumpPatch, "1.2.4"},
		{"major drops metadata", "1.2.3+build.5", BumpMajor, "2.0.0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Bump(mustParse(t, tt.current), tt.bump)
			if err != nil {
				t.Fatalf("Bump() error = %v", err)
			}
			if got.String() != tt.want {
				t.Errorf("Bump(%s, %s) = %s, want %s", tt.current, tt.bump, got, tt.want)
			}
		})
	}
}

func TestBump_MajorAlwaysGreater(t *testing.T) {
	for _, s := range []string{"0.0.0", "0.0.1", "1.9.9", "2.0.0-alpha", "10.20.30+meta"} {
		v := mustParse(t, s)
		next, err := Bump(v, BumpMajor)
		if err != nil {
			t.Fatalf("Bump(%s) error = %v", s, err)
		}
		if !next.GreaterThan(v) {
			t.Errorf("Bump(%s, major) = %s, not greater", s, next)
		}
		if next.Minor() != 0 || next.Patch() != 0 {
			t.Errorf("Bump(%s, major) = %s, minor/patch not reset", s, next)
		}
	}
}

func TestBump_InvalidType(t *testing.T) {
	v := mustParse(t, "1.0.0")
	got, err := Bump(v, "none")
	if !errors.Is(err, ErrInvalidBumpType) {
		t.Errorf("Bump(none) error = %v, want ErrInvalidBumpType", err)
	}
	if got.Compare(v) != 0 {
		t.Errorf("Bump(none) = %s, want unchanged %s", got, v)
	}
}
