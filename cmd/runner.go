package cmd

import (
	"fmt"

	"github.com/go-imsto/imresize/batch"
	"github.com/go-imsto/imresize/config"
	"github.com/go-imsto/imresize/meta"
)

// newRunner loads the metadata configuration, nothing touches an image
// before it succeeds
func newRunner(s config.Settings, outDir string, width uint) (*batch.Runner, error) {
	base, err := meta.Load(s.ConfigFile)
	if err != nil {
		return nil, err
	}
	if width == 0 {
		width = s.Width()
	}
	if outDir == "" {
		outDir = s.OutputDir
	}

	opts := []batch.Option{
		batch.WithOutputDir(outDir),
		batch.WithWidth(width),
		batch.WithQuality(s.JPEGQuality),
	}
	if s.SentryDSN != "" {
		rp, err := newReporter(s.SentryDSN)
		if err != nil {
			logger().Warnw("sentry disabled", "err", err)
		} else {
			opts = append(opts, batch.WithReporter(rp))
		}
	}

	r, err := batch.New(base, opts...)
	if err != nil {
		return nil, err
	}
	fmt.Printf("Target width (%g%% of a %gmm page at %d DPI): %d pixels\n",
		s.WidthRatio*100, s.PageWidthMM, s.DPI, width)
	return r, nil
}
