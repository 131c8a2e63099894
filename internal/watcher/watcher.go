// Package watcher polls a fixed set of files and reports content changes.
package watcher

import (
	"context"
	"time"

	"github.com/discoveregypt/apigen/internal/buildcache"
)

// Op describes what happened to a watched file.
type Op string

const (
	OpCreate Op = "create"
	OpWrite  Op = "write"
	OpRemove Op = "remove"
)

// Event represents a file change event.
type Event struct {
	Path string
	Op   Op
}

// DefaultPollInterval is the default polling interval for file change detection.
const DefaultPollInterval = 500 * time.Millisecond

// Watcher polls files for content changes. A save that leaves the bytes
// unchanged produces no event.
type Watcher struct {
	paths        []string
	debounce     time.Duration
	pollInterval time.Duration
	onChange     func(ctx context.Context, events []Event)
}

// New creates a watcher for paths. onChange runs on the Watch goroutine once
// no further change has been seen for the debounce duration.
func New(paths []string, debounce time.Duration, onChange func(ctx context.Context, events []Event)) *Watcher {
	return &Watcher{
		paths:        paths,
		debounce:     debounce,
		pollInterval: DefaultPollInterval,
		onChange:     onChange,
	}
}

// SetPollInterval sets the polling interval for file change detection.
// Non-positive values are ignored.
func (w *Watcher) SetPollInterval(d time.Duration) {
	if d <= 0 {
		return
	}
	w.pollInterval = d
}

// Watch polls until ctx is done.
func (w *Watcher) Watch(ctx context.Context) error {
	snapshot := w.snapshot()

	ticker := time.NewTicker(w.pollInterval)
	defer ticker.Stop()

	var pending []Event
	var lastChange time.Time
	for {
		select {
		case <-ctx.Done():
			return nil
		case now := <-ticker.C:
			next := w.snapshot()
			if events := diff(snapshot, next); len(events) > 0 {
				pending = merge(pending, events)
				lastChange = now
			}
			snapshot = next

			if len(pending) > 0 && now.Sub(lastChange) >= w.debounce {
				w.onChange(ctx, pending)
				pending = nil
			}
		}
	}
}

// snapshot maps each existing watched path to its content digest.
func (w *Watcher) snapshot() map[string]string {
	snap := make(map[string]string, len(w.paths))
	for _, p := range w.paths {
		if h := buildcache.HashFile(p); h != "" {
			snap[p] = h
		}
	}
	return snap
}

func diff(old, new map[string]string) []Event {
	var events []Event
	for path, h := range new {
		prev, ok := old[path]
		switch {
		case !ok:
			events = append(events, Event{Path: path, Op: OpCreate})
		case prev != h:
			events = append(events, Event{Path: path, Op: OpWrite})
		}
	}
	for path := range old {
		if _, ok := new[path]; !ok {
			events = append(events, Event{Path: path, Op: OpRemove})
		}
	}
	return events
}

// merge keeps the latest event per path, preserving first-seen order.
func merge(pending, events []Event) []Event {
	for _, e := range events {
		replaced := false
		for i := range pending {
			if pending[i].Path == e.Path {
				pending[i] = e
				replaced = true
				break
			}
		}
		if !replaced {
			pending = append(pending, e)
		}
	}
	return pending
}
