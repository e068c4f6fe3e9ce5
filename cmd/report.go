package cmd

import (
	"github.com/getsentry/raven-go"

	"github.com/go-imsto/imresize/config"
)

var (
	packagePrefixes = []string{"github.com/go-imsto"}
)

type sentryReporter struct {
	client *raven.Client
}

func newReporter(dsn string) (*sentryReporter, error) {
	client, err := raven.New(dsn)
	if err != nil {
		return nil, err
	}
	client.SetTagsContext(map[string]string{"service": "imresize", "ver": config.Version})
	atExit(client.Wait)
	return &sentryReporter{client: client}, nil
}

// Report sends err with tags, without waiting
func (s *sentryReporter) Report(err error, tags map[string]string) {
	packet := raven.NewPacket(err.Error(),
		raven.NewException(err, raven.NewStacktrace(1, 3, packagePrefixes)))

	s.client.Capture(packet, tags)
}
