// pkg/format/format.go
package format

import (
	"fmt"
	"strings"
)

// Format identifies one of the supported container/compression kinds
type Format int

const (
	// Unknown is the zero value, never a valid format
	Unknown Format = iota
	Zip
	Tar
	Gzip
	Bzip2
	TarGzip
	TarBzip2
)

// All lists every supported format in declaration order
var All = []Format{Zip, Tar, Gzip, Bzip2, TarGzip, TarBzip2}

// String returns the canonical name, which is also the file extension
func (f Format) String() string {
	switch f {
	case Zip:
		return "zip"
	case Tar:
		return "tar"
	case Gzip:
		return "gz"
	case Bzip2:
		return "bz2"
	case TarGzip:
		return "tar.gz"
	case TarBzip2:
		return "tar.bz2"
	default:
		return "unknown"
	}
}

// Extension returns the file extension (without leading dot) for generated output names
func (f Format) Extension() string {
	return f.String()
}

// IsContainer reports whether the format holds many named entries
func (f Format) IsContainer() bool {
	switch f {
	case Zip, Tar, TarGzip, TarBzip2:
		return true
	}
	return false
}

// Valid reports whether f is a member of the supported set
func (f Format) Valid() bool {
	return f >= Zip && f <= TarBzip2
}

var aliases = map[string]Format{
	"zip":     Zip,
	"tar":     Tar,
	"gz":      Gzip,
	"gzip":    Gzip,
	"bz2":     Bzip2,
	"bzip2":   Bzip2,
	"tar.gz":  TarGzip,
	"targz":   TarGzip,
	"tgz":     TarGzip,
	"tar.bz2": TarBzip2,
	"tarbz2":  TarBzip2,
	"tbz2":    TarBzip2,
	"tbz":     TarBzip2,
}

// Parse resolves a user supplied format name (case-insensitive, leading dot allowed)
func Parse(name string) (Format, error) {
	key := strings.TrimPrefix(strings.ToLower(strings.TrimSpace(name)), ".")
	if f, ok := aliases[key]; ok {
		return f, nil
	}
	return Unknown, fmt.Errorf("%w: %q", ErrUnknownName, name)
}

// Names returns the canonical names of all formats, for help text
func Names() []string {
	names := make([]string, 0, len(All))
	for _, f := range All {
		names = append(names, f.String())
	}
	return names
}
