// internal/codec/dispatch.go
package codec

import (
	"fmt"

	"github.com/creativeyann17/magic-pack/pkg/format"
)

// Pack writes src to the archive dst in format f. Containers accept a file
// or directory source; single-stream formats accept a regular file only.
func Pack(f format.Format, src, dst string, env *Env) error {
	switch f {
	case format.Zip:
		return packZip(src, dst, env)
	case format.Tar:
		return packTar(src, dst, plainStream, env)
	case format.TarGzip:
		return packTar(src, dst, gzipStream, env)
	case format.TarBzip2:
		return packTar(src, dst, bzip2Stream, env)
	case format.Gzip:
		return packStream(src, dst, gzipStream, env)
	case format.Bzip2:
		return packStream(src, dst, bzip2Stream, env)
	}
	return fmt.Errorf("%w: cannot pack as %s", format.ErrUnsupportedFormat, f)
}

// Unpack reverses Pack. Containers extract into the directory dst; single
// streams decode into the file dst.
func Unpack(f format.Format, src, dst string, env *Env) error {
	switch f {
	case format.Zip:
		return unpackZip(src, dst, env)
	case format.Tar:
		return unpackTar(src, dst, plainStream, env)
	case format.TarGzip:
		return unpackTar(src, dst, gzipStream, env)
	case format.TarBzip2:
		return unpackTar(src, dst, bzip2Stream, env)
	case format.Gzip:
		return unpackStream(src, dst, gzipStream, env)
	case format.Bzip2:
		return unpackStream(src, dst, bzip2Stream, env)
	}
	return fmt.Errorf("%w: cannot unpack %s", format.ErrUnsupportedFormat, f)
}
