package image

import (
	zlog "github.com/go-imsto/imresize/log"
)

func logger() zlog.Logger {
	return zlog.Get()
}
