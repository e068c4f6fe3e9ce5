package config

import (
	"fmt"

	"github.com/kelseyhightower/envconfig"
)

// Version of the tool, overridden at build time
var Version = "0.1.0"

const envPrefix = "imresize"

// Settings 运行参数, loaded from IMRESIZE_* environment variables
type Settings struct {
	ConfigFile  string  `envconfig:"CONFIG" default:"config.yaml"`
	OutputDir   string  `envconfig:"OUTPUT_DIR" default:"resized_images"`
	PageWidthMM float64 `envconfig:"PAGE_WIDTH_MM" default:"210"` // A4
	DPI         uint    `envconfig:"DPI" default:"300"`
	WidthRatio  float64 `envconfig:"WIDTH_RATIO" default:"0.8"`
	TargetWidth uint    `envconfig:"TARGET_WIDTH"` // 0 means derive from page
	JPEGQuality int     `envconfig:"JPEG_QUALITY" default:"90"`
	Develop     bool    `envconfig:"DEVELOP"`
	SentryDSN   string  `envconfig:"SENTRY_DSN"`
}

// Current is the process wide settings, filled by Load
var Current Settings

// Load reads settings from environment
func Load() error {
	var s Settings
	if err := envconfig.Process(envPrefix, &s); err != nil {
		return err
	}
	if err := s.validate(); err != nil {
		return err
	}
	Current = s
	return nil
}

func (s *Settings) validate() error {
	if s.TargetWidth > 0 {
		return nil
	}
	if s.PageWidthMM <= 0 || s.DPI == 0 {
		return fmt.Errorf("invalid page: %gmm at %d dpi", s.PageWidthMM, s.DPI)
	}
	if s.WidthRatio <= 0 || s.WidthRatio > 1 {
		return fmt.Errorf("invalid width ratio: %g", s.WidthRatio)
	}
	return nil
}

// InDevelop ...
func InDevelop() bool {
	return Current.Develop
}

// Width returns the configured target width or the page derived one
func (s Settings) Width() uint {
	if s.TargetWidth > 0 {
		return s.TargetWidth
	}
	return PageWidth(s.PageWidthMM, s.DPI, s.WidthRatio)
}

// PageWidth 页面宽度换算像素, truncating the page width first and the
// scaled width second
func PageWidth(mm float64, dpi uint, ratio float64) uint {
	px := int(mm / 25.4 * float64(dpi))
	return uint(float64(px) * ratio)
}
