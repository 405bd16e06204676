package layers_test

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/creativeyann17/magic-pack/internal/codec"
	"github.com/creativeyann17/magic-pack/internal/layers"
	"github.com/creativeyann17/magic-pack/pkg/format"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("Failed to create directory: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to create test file %s: %v", path, err)
	}
}

func TestPeelTarGzip(t *testing.T) {
	src := filepath.Join(t.TempDir(), "root")
	writeFile(t, filepath.Join(src, "a.txt"), "alpha")
	writeFile(t, filepath.Join(src, "sub", "b.txt"), "bravo")
	archive := filepath.Join(t.TempDir(), "root.tar.gz")
	if err := codec.Pack(format.TarGzip, src, archive, &codec.Env{}); err != nil {
		t.Fatalf("Pack failed: %v", err)
	}

	out := t.TempDir()
	trace, err := layers.Peel(archive, out, layers.DefaultMaxLayers, &codec.Env{})
	if err != nil {
		t.Fatalf("Peel failed: %v", err)
	}

	if diff := cmp.Diff([]format.Format{format.Gzip, format.Tar}, trace.Layers); diff != "" {
		t.Errorf("Layers mismatch (-want +got):\n%s", diff)
	}
	if !trace.Container || trace.Output != out {
		t.Errorf("Trace = %+v, want container output %s", trace, out)
	}
	got, err := os.ReadFile(filepath.Join(out, "root", "sub", "b.txt"))
	if err != nil {
		t.Fatalf("Failed to read extracted file: %v", err)
	}
	if string(got) != "bravo" {
		t.Errorf("b.txt = %q, want %q", got, "bravo")
	}

	// The temp layer directory is gone
	entries, err := os.ReadDir(out)
	if err != nil {
		t.Fatalf("Failed to list output: %v", err)
	}
	if len(entries) != 1 || entries[0].Name() != "root" {
		var names []string
		for _, e := range entries {
			names = append(names, e.Name())
		}
		t.Errorf("Output entries = %v, want [root]", names)
	}
}

func TestPeelNestedStreams(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(t.TempDir(), "bundle")
	writeFile(t, filepath.Join(src, "readme.md"), "# nested")

	tarPath := filepath.Join(dir, "bundle.tar")
	gzPath := tarPath + ".gz"
	bzPath := gzPath + ".bz2"
	if err := codec.Pack(format.Tar, src, tarPath, &codec.Env{}); err != nil {
		t.Fatalf("Pack tar failed: %v", err)
	}
	if err := codec.Pack(format.Gzip, tarPath, gzPath, &codec.Env{}); err != nil {
		t.Fatalf("Pack gzip failed: %v", err)
	}
	if err := codec.Pack(format.Bzip2, gzPath, bzPath, &codec.Env{}); err != nil {
		t.Fatalf("Pack bzip2 failed: %v", err)
	}

	out := filepath.Join(t.TempDir(), "out")
	trace, err := layers.Peel(bzPath, out, layers.DefaultMaxLayers, &codec.Env{})
	if err != nil {
		t.Fatalf("Peel failed: %v", err)
	}
	want := []format.Format{format.Bzip2, format.Gzip, format.Tar}
	if diff := cmp.Diff(want, trace.Layers); diff != "" {
		t.Errorf("Layers mismatch (-want +got):\n%s", diff)
	}
	got, err := os.ReadFile(filepath.Join(out, "bundle", "readme.md"))
	if err != nil {
		t.Fatalf("Failed to read extracted file: %v", err)
	}
	if string(got) != "# nested" {
		t.Errorf("readme.md = %q", got)
	}
}

func TestPeelLayerLimit(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(t.TempDir(), "bundle")
	writeFile(t, filepath.Join(src, "x.txt"), "x")
	tarPath := filepath.Join(dir, "bundle.tar")
	gzPath := tarPath + ".gz"
	if err := codec.Pack(format.Tar, src, tarPath, &codec.Env{}); err != nil {
		t.Fatalf("Pack tar failed: %v", err)
	}
	if err := codec.Pack(format.Gzip, tarPath, gzPath, &codec.Env{}); err != nil {
		t.Fatalf("Pack gzip failed: %v", err)
	}

	out := t.TempDir()
	trace, err := layers.Peel(gzPath, out, 1, &codec.Env{})
	if err != nil {
		t.Fatalf("Peel failed: %v", err)
	}
	if trace.Container {
		t.Error("Peel went past the layer limit")
	}
	if trace.Output != filepath.Join(out, "bundle.tar") {
		t.Errorf("Output = %s, want bundle.tar in %s", trace.Output, out)
	}
	detected, err := format.Detect(trace.Output)
	if err != nil || detected != format.Tar {
		t.Errorf("Payload detected as %s (%v), want tar", detected, err)
	}

	if _, err := layers.Peel(gzPath, out, 0, &codec.Env{}); err == nil {
		t.Error("Expected error for zero max layers")
	}
}

func TestPeelPlainPayload(t *testing.T) {
	dir := t.TempDir()
	plain := filepath.Join(dir, "report.csv")
	content := bytes.Repeat([]byte("id,value\n1,2\n"), 100)
	if err := os.WriteFile(plain, content, 0644); err != nil {
		t.Fatalf("Failed to create test file: %v", err)
	}
	archive := filepath.Join(dir, "report.csv.gz")
	if err := codec.Pack(format.Gzip, plain, archive, &codec.Env{}); err != nil {
		t.Fatalf("Pack failed: %v", err)
	}

	out := filepath.Join(dir, "out")
	trace, err := layers.Peel(archive, out, layers.DefaultMaxLayers, &codec.Env{})
	if err != nil {
		t.Fatalf("Peel failed: %v", err)
	}
	if diff := cmp.Diff([]format.Format{format.Gzip}, trace.Layers); diff != "" {
		t.Errorf("Layers mismatch (-want +got):\n%s", diff)
	}
	got, err := os.ReadFile(filepath.Join(out, "report.csv"))
	if err != nil {
		t.Fatalf("Failed to read payload: %v", err)
	}
	if !bytes.Equal(got, content) {
		t.Error("Payload content differs")
	}

	// Second run collides with the payload already in place
	_, err = layers.Peel(archive, out, layers.DefaultMaxLayers, &codec.Env{})
	if !errors.Is(err, codec.ErrFileExists) {
		t.Errorf("Expected ErrFileExists, got %v", err)
	}
	if _, err := layers.Peel(archive, out, layers.DefaultMaxLayers, &codec.Env{Overwrite: true}); err != nil {
		t.Errorf("Peel with overwrite failed: %v", err)
	}
}

func TestPeelUnsupportedInput(t *testing.T) {
	dir := t.TempDir()
	plain := filepath.Join(dir, "notes.txt")
	if err := os.WriteFile(plain, []byte("nothing to see here"), 0644); err != nil {
		t.Fatalf("Failed to create test file: %v", err)
	}

	_, err := layers.Peel(plain, filepath.Join(dir, "out"), layers.DefaultMaxLayers, &codec.Env{})
	if !errors.Is(err, format.ErrUnsupportedFormat) {
		t.Errorf("Expected ErrUnsupportedFormat, got %v", err)
	}
}

func TestPeelDryRun(t *testing.T) {
	src := filepath.Join(t.TempDir(), "root")
	writeFile(t, filepath.Join(src, "a.txt"), "alpha")
	archive := filepath.Join(t.TempDir(), "root.tar.bz2")
	if err := codec.Pack(format.TarBzip2, src, archive, &codec.Env{}); err != nil {
		t.Fatalf("Pack failed: %v", err)
	}

	out := t.TempDir()
	env := &codec.Env{DryRun: true}
	trace, err := layers.Peel(archive, out, layers.DefaultMaxLayers, env)
	if err != nil {
		t.Fatalf("Dry-run peel failed: %v", err)
	}
	if len(trace.Layers) != 2 {
		t.Errorf("Layers = %v, want bz2 then tar", trace.Layers)
	}
	if env.Stats.Files != 1 {
		t.Errorf("Files = %d, want 1", env.Stats.Files)
	}
	if env.Stats.OutputBytes != uint64(len("alpha")) {
		t.Errorf("OutputBytes = %d, want %d", env.Stats.OutputBytes, len("alpha"))
	}
	if _, err := os.Stat(filepath.Join(out, "root")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("Dry run extracted entries (stat err = %v)", err)
	}
}

func TestStripExtension(t *testing.T) {
	cases := map[string]string{
		"a.tar.gz":  "a.tar",
		"a.tgz":     "a.tar",
		"A.TBZ2":    "A.tar",
		"a.tbz":     "a.tar",
		"x.bin":     "x",
		"noext":     "noext",
		".gz":       "payload",
		"data.json": "data",
	}
	for in, want := range cases {
		if got := layers.StripExtension(in); got != want {
			t.Errorf("StripExtension(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestPeelPayloadMentioningUstar(t *testing.T) {
	dir := t.TempDir()
	plain := filepath.Join(dir, "notes.txt")
	content := "remember the ustar magic lives at offset 257\n"
	writeFile(t, plain, content)
	archive := filepath.Join(dir, "notes.txt.gz")
	if err := codec.Pack(format.Gzip, plain, archive, &codec.Env{}); err != nil {
		t.Fatalf("Pack failed: %v", err)
	}

	out := filepath.Join(dir, "out")
	trace, err := layers.Peel(archive, out, layers.DefaultMaxLayers, &codec.Env{})
	if err != nil {
		t.Fatalf("Peel failed: %v", err)
	}
	if diff := cmp.Diff([]format.Format{format.Gzip}, trace.Layers); diff != "" {
		t.Errorf("Layers mismatch (-want +got):\n%s", diff)
	}
	if trace.Container {
		t.Error("Payload was treated as a container")
	}
	got, err := os.ReadFile(filepath.Join(out, "notes.txt"))
	if err != nil {
		t.Fatalf("Failed to read payload: %v", err)
	}
	if string(got) != content {
		t.Errorf("Payload = %q, want %q", got, content)
	}
}

func TestPeelRefusesToReplaceInput(t *testing.T) {
	dir := t.TempDir()
	plain := filepath.Join(t.TempDir(), "blob")
	writeFile(t, plain, "hello world")
	blob := filepath.Join(dir, "blob")
	if err := codec.Pack(format.Gzip, plain, blob, &codec.Env{}); err != nil {
		t.Fatalf("Pack failed: %v", err)
	}

	_, err := layers.Peel(blob, dir, layers.DefaultMaxLayers, &codec.Env{Overwrite: true})
	if !errors.Is(err, codec.ErrFileExists) {
		t.Fatalf("Expected ErrFileExists, got %v", err)
	}
	if f, err := format.Detect(blob); err != nil || f != format.Gzip {
		t.Errorf("Input was replaced: Detect = %v, %v", f, err)
	}
}
