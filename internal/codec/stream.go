// internal/codec/stream.go
package codec

import (
	"io"

	"github.com/dsnet/compress/bzip2"
	"github.com/klauspost/compress/gzip"
)

// stream wraps/unwraps a single byte stream. Tar variants differ only by
// the stream under the tar writer/reader.
type stream struct {
	name   string
	wrap   func(w io.Writer, level int) (io.WriteCloser, error)
	unwrap func(r io.Reader) (io.ReadCloser, error)
}

var plainStream = stream{
	name: "tar",
	wrap: func(w io.Writer, _ int) (io.WriteCloser, error) {
		return nopWriteCloser{w}, nil
	},
	unwrap: func(r io.Reader) (io.ReadCloser, error) {
		return io.NopCloser(r), nil
	},
}

var gzipStream = stream{
	name: "gzip",
	wrap: func(w io.Writer, level int) (io.WriteCloser, error) {
		return gzip.NewWriterLevel(w, level)
	},
	unwrap: func(r io.Reader) (io.ReadCloser, error) {
		return gzip.NewReader(r)
	},
}

var bzip2Stream = stream{
	name: "bzip2",
	wrap: func(w io.Writer, level int) (io.WriteCloser, error) {
		return bzip2.NewWriter(w, &bzip2.WriterConfig{Level: level})
	},
	unwrap: func(r io.Reader) (io.ReadCloser, error) {
		return bzip2.NewReader(r, nil)
	},
}

type nopWriteCloser struct {
	io.Writer
}

func (nopWriteCloser) Close() error { return nil }
