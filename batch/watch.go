package batch

import (
	"context"
	"fmt"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Watch processes dir once, then every supported file created or written
// in it, until ctx is done. Files are handled one at a time on the
// calling goroutine.
func (r *Runner) Watch(ctx context.Context, dir string) (*Summary, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	defer w.Close()

	// watch before the first pass so no file slips between them
	if err = w.Add(dir); err != nil {
		return nil, &InvalidPathError{Path: dir, Err: err}
	}
	sum, err := r.Run(dir)
	if err != nil {
		return nil, err
	}
	logger().Infow("watching", "dir", dir, "debounce", r.debounce)

	pending := make(chan debounced, 16)
	db := newDebouncer(r.debounce, func(d debounced) {
		select {
		case pending <- d:
		case <-ctx.Done():
		}
	})
	defer db.stop()

	for {
		select {
		case <-ctx.Done():
			return sum, nil
		case event, ok := <-w.Events:
			if !ok {
				return sum, nil
			}
			if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) {
				continue
			}
			if !Supported(event.Name) {
				continue
			}
			db.touch(event.Name)
		case d := <-pending:
			if db.take(d) {
				r.handle(d.name, sum)
			}
		case err, ok := <-w.Errors:
			if !ok {
				return sum, nil
			}
			logger().Warnw("watcher error", "err", err)
		}
	}
}

type debounced struct {
	name string
	seq  uint64
}

type debounceTimer struct {
	t   *time.Timer
	seq uint64
}

// debouncer is owned by the watch loop, only fire runs on timer goroutines
type debouncer struct {
	delay  time.Duration
	fire   func(debounced)
	seq    uint64
	timers map[string]debounceTimer
}

func newDebouncer(delay time.Duration, fire func(debounced)) *debouncer {
	return &debouncer{delay: delay, fire: fire, timers: make(map[string]debounceTimer)}
}

// touch restarts the quiet period of name
func (d *debouncer) touch(name string) {
	if t, ok := d.timers[name]; ok {
		t.t.Stop()
	}
	d.seq++
	ev := debounced{name: name, seq: d.seq}
	d.timers[name] = debounceTimer{seq: ev.seq, t: time.AfterFunc(d.delay, func() { d.fire(ev) })}
}

// take reports whether ev is the latest timer of its name and forgets it.
// A timer stopped after it already fired still delivers, seq drops it.
func (d *debouncer) take(ev debounced) bool {
	t, ok := d.timers[ev.name]
	if !ok || t.seq != ev.seq {
		return false
	}
	delete(d.timers, ev.name)
	return true
}

func (d *debouncer) stop() {
	for _, t := range d.timers {
		t.t.Stop()
	}
}
