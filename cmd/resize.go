package cmd

import (
	"fmt"

	"github.com/go-imsto/imresize/config"
)

var cmdResize = &Command{
	UsageLine: "resize [-o dir] [-w width] <image-or-directory>",
	Short:     "resize images and attach metadata",
	Long: `
Resize one image, or every supported image of a directory, to the target
width. Each output gets a <name>_metadata<ext>.yaml sidecar and the same
document embedded as EXIF UserComment where the format allows it.
`,
}

var (
	resizeOut   = cmdResize.Flag.String("o", "", "output directory, default from IMRESIZE_OUTPUT_DIR")
	resizeWidth = cmdResize.Flag.Uint("w", 0, "target width in pixels, 0 derives it from the page")
)

func init() {
	cmdResize.Run = runResize
}

func runResize(args []string) bool {
	if len(args) < 1 {
		return false
	}

	r, err := newRunner(config.Current, *resizeOut, *resizeWidth)
	if err != nil {
		errorf("%s", err)
		setExitStatus(1)
		return true
	}

	sum, err := r.Run(args[0])
	if err != nil {
		errorf("%s", err)
		setExitStatus(1)
		return true
	}
	fmt.Println(sum)
	for _, f := range sum.Failures {
		fmt.Printf("  %s: %s\n", f.Path, f.Err)
	}
	return true
}
