package batch

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDebouncerDropsStale(t *testing.T) {
	fired := make(chan debounced, 4)
	db := newDebouncer(time.Hour, func(d debounced) { fired <- d })
	defer db.stop()

	db.touch("a.png")
	first := db.timers["a.png"].seq
	db.touch("a.png")
	latest := db.timers["a.png"].seq

	// the first timer may have fired before it was stopped
	assert.False(t, db.take(debounced{name: "a.png", seq: first}))
	assert.True(t, db.take(debounced{name: "a.png", seq: latest}))
	assert.False(t, db.take(debounced{name: "a.png", seq: latest}))
	assert.False(t, db.take(debounced{name: "b.png", seq: latest}))
}

func TestDebouncerFires(t *testing.T) {
	fired := make(chan debounced, 4)
	db := newDebouncer(10*time.Millisecond, func(d debounced) { fired <- d })
	defer db.stop()

	db.touch("a.png")
	db.touch("a.png")

	select {
	case d := <-fired:
		assert.Equal(t, "a.png", d.name)
		assert.True(t, db.take(d))
	case <-time.After(5 * time.Second):
		t.Fatal("debounce timer never fired")
	}
	select {
	case d := <-fired:
		t.Fatalf("stopped timer fired: %+v", d)
	case <-time.After(50 * time.Millisecond):
	}
}
