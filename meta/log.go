package meta

import (
	zlog "github.com/go-imsto/imresize/log"
)

func logger() zlog.Logger {
	return zlog.Get()
}
