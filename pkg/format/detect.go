// pkg/format/detect.go
package format

import (
	"bytes"
	"fmt"
	"io"
	"os"
)

// Detect classifies the file at path from its content. The file name is
// never consulted. Files too short for any signature, directories and
// files matching nothing all return an error wrapping ErrUnsupportedFormat.
func Detect(path string) (Format, error) {
	f, err := os.Open(path)
	if err != nil {
		return Unknown, fmt.Errorf("open for detection: %w", err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return Unknown, fmt.Errorf("stat for detection: %w", err)
	}
	if info.IsDir() {
		return Unknown, fmt.Errorf("%w: %s is a directory", ErrUnsupportedFormat, path)
	}

	probe := make([]byte, ProbeSize)
	n, err := io.ReadFull(f, probe)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		return Unknown, fmt.Errorf("read probe: %w", err)
	}
	if n < MinProbeSize {
		return Unknown, fmt.Errorf("%w: %s is %d bytes, need at least %d", ErrUnsupportedFormat, path, n, MinProbeSize)
	}

	if found := MatchPrefix(probe[:n]); found != Unknown {
		return found, nil
	}

	// Re-read from the start; the scan covers the whole file
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return Unknown, fmt.Errorf("seek to start: %w", err)
	}
	content, err := io.ReadAll(f)
	if err != nil {
		return Unknown, fmt.Errorf("read for scan: %w", err)
	}
	if found := MatchContains(content); found != Unknown {
		return found, nil
	}

	return Unknown, fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
}

// DetectBytes applies the same rules as Detect to an in-memory buffer
func DetectBytes(content []byte) (Format, error) {
	if len(content) < MinProbeSize {
		return Unknown, fmt.Errorf("%w: %d bytes, need at least %d", ErrUnsupportedFormat, len(content), MinProbeSize)
	}
	if found := MatchPrefix(content); found != Unknown {
		return found, nil
	}
	if found := MatchContains(content); found != Unknown {
		return found, nil
	}
	return Unknown, ErrUnsupportedFormat
}

// MatchPrefix returns the first prefix signature matching the leading bytes
func MatchPrefix(probe []byte) Format {
	for _, sig := range prefixSignatures {
		if bytes.HasPrefix(probe, sig.Pattern) {
			return sig.Format
		}
	}
	return Unknown
}

// MatchContains returns the first scan signature found anywhere in content
func MatchContains(content []byte) Format {
	for _, sig := range scanSignatures {
		if bytes.Contains(content, sig.Pattern) {
			return sig.Format
		}
	}
	return Unknown
}
