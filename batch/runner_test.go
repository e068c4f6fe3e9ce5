package batch

import (
	"bytes"
	"context"
	"errors"
	stdimage "image"
	"image/color"
	"os"
	"path/filepath"
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-imsto/imresize/image"
	"github.com/go-imsto/imresize/image/exif"
	"github.com/go-imsto/imresize/meta"
)

const testDoc = `
project:
  name: Manual A4
  version: "2.1"
parameters:
  format: PNG
  dpi: 300
contact:
  author: Equipe Docs
`

func newBase(t *testing.T, at time.Time) *meta.Base {
	t.Helper()
	b, err := meta.New([]byte(testDoc), meta.WithClock(func() time.Time { return at }))
	require.NoError(t, err)
	return b
}

func newRunner(t *testing.T, base *meta.Base, opts ...Option) (*Runner, *bytes.Buffer, *bytes.Buffer) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	opts = append([]Option{
		WithOutputDir(filepath.Join(t.TempDir(), "resized_images")),
		WithWidth(945),
		WithOutput(&stdout, &stderr),
	}, opts...)
	r, err := New(base, opts...)
	require.NoError(t, err)
	return r, &stdout, &stderr
}

func writeImage(t *testing.T, dir, name string, w, h int) string {
	t.Helper()
	m := stdimage.NewRGBA(stdimage.Rect(0, 0, w, h))
	for y := 0; y < h; y += 7 {
		for x := 0; x < w; x++ {
			m.Set(x, y, color.RGBA{uint8(x), 90, uint8(y), 255})
		}
	}
	fn := filepath.Join(dir, name)
	_, err := image.SaveFile(fn, m, image.WriteOption{})
	require.NoError(t, err)
	return fn
}

func listDir(t *testing.T, dir string) []string {
	t.Helper()
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	var names []string
	for _, e := range entries {
		names = append(names, e.Name())
	}
	sort.Strings(names)
	return names
}

func readSidecar(t *testing.T, path string) *meta.Record {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	rec, err := meta.Parse(data)
	require.NoError(t, err)
	return rec
}

func TestNewRunner(t *testing.T) {
	_, err := New(nil, WithWidth(10))
	assert.ErrorIs(t, err, ErrNoBase)
	_, err = New(newBase(t, time.Now()))
	assert.ErrorIs(t, err, ErrNoWidth)

	r, err := New(newBase(t, time.Now()), WithWidth(10))
	require.NoError(t, err)
	assert.Equal(t, DefaultOutputDir, r.OutputDir())
}

func TestRunSingleJPEG(t *testing.T) {
	src := writeImage(t, t.TempDir(), "photo.jpg", 2000, 1000)
	r, stdout, _ := newRunner(t, newBase(t, time.Now()))

	sum, err := r.Run(src)
	require.NoError(t, err)
	assert.Equal(t, 1, sum.Processed)
	assert.Empty(t, sum.Failures)
	assert.Equal(t, "saved: "+filepath.Join(r.OutputDir(), "photo.jpg")+" 945x472\n", stdout.String())

	out := filepath.Join(r.OutputDir(), "photo.jpg")
	assert.Equal(t, []string{"photo.jpg", "photo_metadata.jpg.yaml"}, listDir(t, r.OutputDir()))

	ia, err := image.Stat(out)
	require.NoError(t, err)
	assert.Equal(t, [2]int{945, 472}, ia.Dimensions())

	sidecar := filepath.Join(r.OutputDir(), "photo_metadata.jpg.yaml")
	rec := readSidecar(t, sidecar)
	require.NotNil(t, rec.Image)
	assert.Equal(t, "PNG", rec.Image.Processed.Format)
	assert.Equal(t, [2]int{945, 472}, rec.Image.Processed.Dimensions)
	assert.Equal(t, [2]int{2000, 1000}, rec.Image.Original.Dimensions)
	assert.Equal(t, image.FormatJPEG, rec.Image.Original.Format)
	assert.Equal(t, src, rec.Image.Original.Path)
	assert.Equal(t, "2.1", rec.Processing.SoftwareVersion)

	f, err := os.Open(out)
	require.NoError(t, err)
	defer f.Close()
	comment, err := exif.UserComment(f)
	require.NoError(t, err)
	doc, err := os.ReadFile(sidecar)
	require.NoError(t, err)
	assert.Equal(t, string(doc), string(comment))
}

func TestRunDirectory(t *testing.T) {
	in := t.TempDir()
	writeImage(t, in, "a.png", 200, 100)
	writeImage(t, in, "b.JPG", 100, 100)
	require.NoError(t, os.WriteFile(filepath.Join(in, "notes.txt"), []byte("hello"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(in, "empty.jpg"), nil, 0644))
	require.NoError(t, os.WriteFile(filepath.Join(in, "broken.png"), []byte("garbage"), 0644))
	require.NoError(t, os.Mkdir(filepath.Join(in, "sub.png"), 0755))
	writeImage(t, filepath.Join(in, "nested"), "c.png", 50, 50)

	r, _, stderr := newRunner(t, newBase(t, time.Now()))
	sum, err := r.Run(in)
	require.NoError(t, err)
	assert.Equal(t, 2, sum.Processed)
	assert.Equal(t, 1, sum.Skipped)
	assert.Equal(t, 2, sum.Failed())
	assert.Equal(t, 0, sum.Partial)

	var failed []string
	for _, f := range sum.Failures {
		failed = append(failed, filepath.Base(f.Path))
		var de *image.DecodeError
		assert.True(t, errors.As(f.Err, &de), f.Path)
	}
	assert.ElementsMatch(t, []string{"empty.jpg", "broken.png"}, failed)
	assert.Contains(t, stderr.String(), "empty.jpg")

	assert.Equal(t, []string{
		"a.png", "a_metadata.png.yaml",
		"b.JPG", "b_metadata.JPG.yaml",
	}, listDir(t, r.OutputDir()))

	ia, err := image.Stat(filepath.Join(r.OutputDir(), "a.png"))
	require.NoError(t, err)
	assert.Equal(t, [2]int{945, 472}, ia.Dimensions())
}

type fakeReporter struct {
	tags []map[string]string
}

func (f *fakeReporter) Report(err error, tags map[string]string) {
	f.tags = append(f.tags, tags)
}

func TestRunPartial(t *testing.T) {
	in := t.TempDir()
	writeImage(t, in, "scan.bmp", 100, 50)
	rp := &fakeReporter{}

	r, stdout, _ := newRunner(t, newBase(t, time.Now()), WithReporter(rp))
	sum, err := r.Run(in)
	require.NoError(t, err)
	assert.Equal(t, 0, sum.Processed)
	assert.Equal(t, 1, sum.Partial)
	assert.Equal(t, 0, sum.Failed())
	require.Len(t, sum.Failures, 1)
	assert.True(t, sum.Failures[0].Partial)
	assert.ErrorIs(t, sum.Failures[0].Err, exif.ErrUnsupported)
	assert.Contains(t, stdout.String(), "metadata only in")

	assert.Equal(t, []string{"scan.bmp", "scan_metadata.bmp.yaml"}, listDir(t, r.OutputDir()))
	require.Len(t, rp.tags, 1)
	assert.Equal(t, "true", rp.tags[0]["partial"])
}

func TestRunInvalidPath(t *testing.T) {
	r, _, _ := newRunner(t, newBase(t, time.Now()))
	_, err := r.Run(filepath.Join(t.TempDir(), "missing"))
	var ie *InvalidPathError
	require.True(t, errors.As(err, &ie))
	assert.NoDirExists(t, r.OutputDir())
}

func TestRunSameDir(t *testing.T) {
	dir := t.TempDir()
	writeImage(t, dir, "a.png", 20, 20)
	r, _, _ := newRunner(t, newBase(t, time.Now()), WithOutputDir(dir))
	_, err := r.Run(dir)
	assert.ErrorIs(t, err, ErrSameDir)
}

func TestRunFileInOutputDir(t *testing.T) {
	r, stdout, _ := newRunner(t, newBase(t, time.Now()))
	require.NoError(t, os.MkdirAll(r.OutputDir(), 0755))
	src := writeImage(t, r.OutputDir(), "photo.png", 2000, 1000)

	_, err := r.Run(src)
	var ie *InvalidPathError
	require.True(t, errors.As(err, &ie))
	assert.ErrorIs(t, err, ErrSameDir)
	assert.Empty(t, stdout.String())

	ia, err := image.Stat(src)
	require.NoError(t, err)
	assert.Equal(t, [2]int{2000, 1000}, ia.Dimensions())
	assert.Equal(t, []string{"photo.png"}, listDir(t, r.OutputDir()))
}

func TestRunTwice(t *testing.T) {
	in := t.TempDir()
	writeImage(t, in, "photo.png", 300, 200)

	var sidecars [2]*meta.Record
	for i, at := range []time.Time{
		time.Date(2026, 1, 1, 8, 0, 0, 0, time.UTC),
		time.Date(2026, 2, 1, 8, 0, 0, 0, time.UTC),
	} {
		r, _, _ := newRunner(t, newBase(t, at))
		_, err := r.Run(in)
		require.NoError(t, err)
		sidecars[i] = readSidecar(t, filepath.Join(r.OutputDir(), "photo_metadata.png.yaml"))
	}

	assert.NotEqual(t, sidecars[0].Processing.Timestamp, sidecars[1].Processing.Timestamp)
	sidecars[1].Processing.Timestamp = sidecars[0].Processing.Timestamp
	assert.Equal(t, sidecars[0], sidecars[1])
}

func TestRunSharedTimestamp(t *testing.T) {
	in := t.TempDir()
	writeImage(t, in, "a.png", 40, 20)
	writeImage(t, in, "b.png", 20, 40)

	r, _, _ := newRunner(t, newBase(t, time.Now()))
	_, err := r.Run(in)
	require.NoError(t, err)

	a := readSidecar(t, filepath.Join(r.OutputDir(), "a_metadata.png.yaml"))
	b := readSidecar(t, filepath.Join(r.OutputDir(), "b_metadata.png.yaml"))
	assert.Equal(t, a.Processing.Timestamp, b.Processing.Timestamp)
	assert.Equal(t, [2]int{40, 20}, a.Image.Original.Dimensions)
	assert.Equal(t, [2]int{20, 40}, b.Image.Original.Dimensions)
}

func TestWatch(t *testing.T) {
	in := t.TempDir()
	writeImage(t, in, "first.png", 60, 30)

	r, _, _ := newRunner(t, newBase(t, time.Now()), WithDebounce(20*time.Millisecond))
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	type result struct {
		sum *Summary
		err error
	}
	done := make(chan result, 1)
	go func() {
		sum, err := r.Watch(ctx, in)
		done <- result{sum, err}
	}()

	first := filepath.Join(r.OutputDir(), "first.png")
	require.Eventually(t, func() bool {
		_, err := os.Stat(first)
		return err == nil
	}, 5*time.Second, 20*time.Millisecond)

	second := filepath.Join(r.OutputDir(), "second.png")
	src := filepath.Join(t.TempDir(), "second.png")
	writeImage(t, filepath.Dir(src), "second.png", 90, 30)
	data, err := os.ReadFile(src)
	require.NoError(t, err)

	require.Eventually(t, func() bool {
		if _, err := os.Stat(meta.SidecarPath(second)); err == nil {
			return true
		}
		// rewrite until the watcher has seen it
		_ = os.WriteFile(filepath.Join(in, "second.png"), data, 0644)
		return false
	}, 5*time.Second, 100*time.Millisecond)

	cancel()
	res := <-done
	require.NoError(t, res.err)
	assert.GreaterOrEqual(t, res.sum.Processed, 2)

	ia, err := image.Stat(second)
	require.NoError(t, err)
	assert.Equal(t, [2]int{945, 315}, ia.Dimensions())
}
