package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-imsto/imresize/config"
)

var cmdWatch = &Command{
	UsageLine: "watch [-o dir] [-w width] <directory>",
	Short:     "resize a directory, then every image dropped into it",
	Long: `
Process the directory once, then keep watching it and process supported
images as they are created or rewritten. Stop with Ctrl-C.
`,
}

var (
	watchOut   = cmdWatch.Flag.String("o", "", "output directory, default from IMRESIZE_OUTPUT_DIR")
	watchWidth = cmdWatch.Flag.Uint("w", 0, "target width in pixels, 0 derives it from the page")
)

func init() {
	cmdWatch.Run = runWatch
}

func runWatch(args []string) bool {
	if len(args) < 1 {
		return false
	}

	r, err := newRunner(config.Current, *watchOut, *watchWidth)
	if err != nil {
		errorf("%s", err)
		setExitStatus(1)
		return true
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	fmt.Printf("Watching %s, output to %s\n", args[0], r.OutputDir())
	sum, err := r.Watch(ctx, args[0])
	if err != nil {
		errorf("%s", err)
		setExitStatus(1)
		return true
	}
	fmt.Println(sum)
	return true
}
