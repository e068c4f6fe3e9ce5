// Package batch runs resize and metadata reporting over a file or a
// directory of images, one file at a time.
package batch

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-imsto/imresize/image"
	"github.com/go-imsto/imresize/meta"
	"github.com/go-imsto/imresize/utils"
)

// DefaultOutputDir ...
const DefaultOutputDir = "resized_images"

// Exts is the allow-list applied to directory entries
var Exts = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".tif":  true,
	".tiff": true,
	".bmp":  true,
	".webp": true,
}

// Supported reports whether name has an allowed extension
func Supported(name string) bool {
	return Exts[strings.ToLower(filepath.Ext(name))]
}

// Reporter receives per file failures, eg: a remote error tracker
type Reporter interface {
	Report(err error, tags map[string]string)
}

// Option ...
type Option func(*Runner)

// WithOutputDir ...
func WithOutputDir(dir string) Option {
	return func(r *Runner) {
		if dir != "" {
			r.outDir = dir
		}
	}
}

// WithWidth ...
func WithWidth(width uint) Option {
	return func(r *Runner) {
		r.width = width
	}
}

// WithQuality sets jpeg and webp quality
func WithQuality(q int) Option {
	return func(r *Runner) {
		r.wopt.Quality = q
	}
}

// WithReporter ...
func WithReporter(rp Reporter) Option {
	return func(r *Runner) {
		r.reporter = rp
	}
}

// WithOutput sets writers of progress and error lines
func WithOutput(stdout, stderr io.Writer) Option {
	return func(r *Runner) {
		if stdout != nil {
			r.stdout = stdout
		}
		if stderr != nil {
			r.stderr = stderr
		}
	}
}

// WithDebounce sets the quiet period of watched files before processing
func WithDebounce(d time.Duration) Option {
	return func(r *Runner) {
		if d > 0 {
			r.debounce = d
		}
	}
}

// Runner ...
type Runner struct {
	base     *meta.Base
	outDir   string
	width    uint
	wopt     image.WriteOption
	reporter Reporter
	stdout   io.Writer
	stderr   io.Writer
	debounce time.Duration
}

// New ...
func New(base *meta.Base, opts ...Option) (*Runner, error) {
	if base == nil {
		return nil, ErrNoBase
	}
	r := &Runner{
		base:     base,
		outDir:   DefaultOutputDir,
		stdout:   os.Stdout,
		stderr:   os.Stderr,
		debounce: 500 * time.Millisecond,
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.width == 0 {
		return nil, ErrNoWidth
	}
	return r, nil
}

// OutputDir ...
func (r *Runner) OutputDir() string {
	return r.outDir
}

// Result of one processed file
type Result struct {
	Source  string
	Output  string
	Sidecar string
	Attr    *image.Attr
}

// Failure ...
type Failure struct {
	Path    string
	Err     error
	Partial bool // sidecar written, embedding failed
}

// Summary of a run
type Summary struct {
	Processed int
	Partial   int
	Skipped   int
	Failures  []Failure
}

// Failed counts files without any output
func (s *Summary) Failed() int {
	return len(s.Failures) - s.Partial
}

func (s Summary) String() string {
	return fmt.Sprintf("processed: %d, partial: %d, failed: %d, skipped: %d",
		s.Processed, s.Partial, s.Failed(), s.Skipped)
}

// Run processes input, a single image file or a directory of images.
// Only setup failures are returned, per file failures go to the summary.
func (r *Runner) Run(input string) (*Summary, error) {
	files, skipped, err := r.collect(input)
	if err != nil {
		return nil, err
	}
	if err = os.MkdirAll(r.outDir, os.FileMode(0755)); err != nil {
		return nil, fmt.Errorf("create output dir: %w", err)
	}

	sum := &Summary{Skipped: skipped}
	for _, src := range files {
		r.handle(src, sum)
	}
	logger().Infow("run done", "input", input, "summary", sum.String())
	return sum, nil
}

func (r *Runner) collect(input string) (files []string, skipped int, err error) {
	if utils.IsRegular(input) {
		// the output keeps the base name, so a source already in outDir would be overwritten
		if same, _ := samePath(input, filepath.Join(r.outDir, filepath.Base(input))); same {
			return nil, 0, &InvalidPathError{Path: input, Err: ErrSameDir}
		}
		return []string{input}, 0, nil
	}
	if !utils.IsDir(input) {
		return nil, 0, &InvalidPathError{Path: input, Err: ErrNotExists}
	}
	if same, _ := samePath(input, r.outDir); same {
		return nil, 0, &InvalidPathError{Path: input, Err: ErrSameDir}
	}

	entries, err := os.ReadDir(input)
	if err != nil {
		return nil, 0, &InvalidPathError{Path: input, Err: err}
	}
	for _, entry := range entries {
		fp := filepath.Join(input, entry.Name())
		if !utils.IsRegular(fp) {
			continue
		}
		if !Supported(fp) {
			logger().Debugw("skip unsupported", "path", fp)
			skipped++
			continue
		}
		files = append(files, fp)
	}
	return files, skipped, nil
}

func samePath(a, b string) (bool, error) {
	aa, err := filepath.Abs(a)
	if err != nil {
		return false, err
	}
	bb, err := filepath.Abs(b)
	if err != nil {
		return false, err
	}
	return aa == bb, nil
}

func (r *Runner) handle(src string, sum *Summary) {
	res, err := r.ProcessFile(src)
	if err == nil {
		sum.Processed++
		fmt.Fprintf(r.stdout, "saved: %s %dx%d\n", res.Output, res.Attr.Width, res.Attr.Height)
		return
	}

	var ee *meta.EmbedError
	partial := errors.As(err, &ee)
	if partial {
		sum.Partial++
		fmt.Fprintf(r.stdout, "saved: %s %dx%d (metadata only in %s)\n",
			res.Output, res.Attr.Width, res.Attr.Height, res.Sidecar)
	}
	sum.Failures = append(sum.Failures, Failure{Path: src, Err: err, Partial: partial})
	fmt.Fprintf(r.stderr, "error processing %s: %s\n", src, err)
	logger().Warnw("process fail", "path", src, "partial", partial, "err", err)

	if r.reporter != nil {
		r.reporter.Report(err, map[string]string{"path": src, "partial": fmt.Sprint(partial)})
	}
}

// ProcessFile resizes src into the output directory, then writes and
// embeds its metadata. On an *meta.EmbedError the returned result is
// still valid.
func (r *Runner) ProcessFile(src string) (*Result, error) {
	res := &Result{
		Source: src,
		Output: filepath.Join(r.outDir, filepath.Base(src)),
	}

	ia, err := image.Resize(src, res.Output, r.width, r.wopt)
	if err != nil {
		return nil, err
	}
	res.Attr = ia

	rec, err := r.base.Attach(src, ia)
	if err != nil {
		return nil, err
	}

	res.Sidecar, err = rec.Report(res.Output)
	if err != nil {
		var ee *meta.EmbedError
		if errors.As(err, &ee) {
			return res, err
		}
		return nil, err
	}
	return res, nil
}
