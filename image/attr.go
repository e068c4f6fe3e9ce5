package image

import (
	"fmt"
)

type Dimension uint32
type Size uint32

// Attr ...
type Attr struct {
	Width  Dimension `json:"width"`
	Height Dimension `json:"height"`
	Size   Size      `json:"size"`
	Format string    `json:"format"` // decoder name in upper case, eg: JPEG
	Ext    string    `json:"ext,omitempty"`
	Mime   string    `json:"mime,omitempty"`
}

func (a Attr) String() string {
	return fmt.Sprintf("%s %dx%d", a.Format, a.Width, a.Height)
}

// Dimensions returns width and height as a pair
func (a Attr) Dimensions() [2]int {
	return [2]int{int(a.Width), int(a.Height)}
}

// export NewAttr
func NewAttr(w, h uint, format string) *Attr {
	return &Attr{
		Width:  Dimension(w),
		Height: Dimension(h),
		Format: format,
	}
}
