package cmd

import (
	"fmt"
	"os"

	"github.com/go-imsto/imresize/image/exif"
)

var cmdInspect = &Command{
	UsageLine: "inspect <image>",
	Short:     "print the metadata embedded in an image",
	Long: `
Print the EXIF UserComment payload written by resize.
`,
}

func init() {
	cmdInspect.Run = runInspect
}

func runInspect(args []string) bool {
	if len(args) < 1 {
		return false
	}

	f, err := os.Open(args[0])
	if err != nil {
		errorf("%s", err)
		setExitStatus(1)
		return true
	}
	defer f.Close()

	comment, err := exif.UserComment(f)
	if err != nil {
		errorf("%s: %s", args[0], err)
		setExitStatus(1)
		return true
	}
	fmt.Print(string(comment))
	return true
}
