package format

import (
	"errors"
	"testing"
)

func TestParse(t *testing.T) {
	tests := map[string]Format{
		"zip":     Zip,
		"ZIP":     Zip,
		".tar":    Tar,
		"gz":      Gzip,
		"gzip":    Gzip,
		"bz2":     Bzip2,
		"bzip2":   Bzip2,
		"tar.gz":  TarGzip,
		"tgz":     TarGzip,
		"targz":   TarGzip,
		"tar.bz2": TarBzip2,
		"tbz2":    TarBzip2,
		" tarbz2": TarBzip2,
	}
	for name, want := range tests {
		got, err := Parse(name)
		if err != nil {
			t.Errorf("Parse(%q) failed: %v", name, err)
			continue
		}
		if got != want {
			t.Errorf("Parse(%q) = %v, want %v", name, got, want)
		}
	}

	if _, err := Parse("rar"); !errors.Is(err, ErrUnknownName) {
		t.Errorf("Expected ErrUnknownName, got %v", err)
	}
}

func TestParseRoundTripsString(t *testing.T) {
	for _, f := range All {
		got, err := Parse(f.String())
		if err != nil || got != f {
			t.Errorf("Parse(%q) = %v, %v", f.String(), got, err)
		}
	}
}

func TestIsContainer(t *testing.T) {
	containers := map[Format]bool{
		Zip: true, Tar: true, TarGzip: true, TarBzip2: true,
		Gzip: false, Bzip2: false, Unknown: false,
	}
	for f, want := range containers {
		if f.IsContainer() != want {
			t.Errorf("%v.IsContainer() = %v, want %v", f, !want, want)
		}
	}
}

func TestValid(t *testing.T) {
	for _, f := range All {
		if !f.Valid() {
			t.Errorf("%v should be valid", f)
		}
	}
	if Unknown.Valid() || Format(42).Valid() {
		t.Error("Unknown and out-of-range values must not be valid")
	}
	if Format(42).String() != "unknown" {
		t.Errorf("Unexpected name for out-of-range value: %s", Format(42))
	}
}
