// Package editor serializes keystroke-level field edits into debounced
// persistence commits. Each field runs a small state machine: Clean until an
// edit arrives, Dirty while the debounce timer runs, PendingCommit while a
// commit is in flight, then back to Clean on success or Dirty on failure with
// the local value retained. Only the latest value is ever sent.
package editor

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// DefaultDelay is the quiet window restarted on every edit.
const DefaultDelay = 500 * time.Millisecond

type State int

const (
	Clean State = iota
	Dirty
	PendingCommit
)

func (s State) String() string {
	switch s {
	case Dirty:
		return "dirty"
	case PendingCommit:
		return "pending"
	default:
		return "clean"
	}
}

// CommitFunc persists one field value. It is called at most once at a time
// per field.
type CommitFunc func(ctx context.Context, value string) error

type field struct {
	state     State
	value     string // latest local value
	confirmed string // last server-confirmed value
	commit    CommitFunc
	timer     *time.Timer
	inflight  bool
	lastErr   error
}

// Coordinator debounces edits per field key. Fields are fully independent:
// an edit on one never delays a commit for another.
type Coordinator struct {
	mu     sync.Mutex
	delay  time.Duration
	fields map[string]*field
}

func New(delay time.Duration) *Coordinator {
	if delay <= 0 {
		delay = DefaultDelay
	}
	return &Coordinator{
		delay:  delay,
		fields: make(map[string]*field),
	}
}

// Key builds the field key for one editable field of one entity.
func Key(entity string, id uint, name string) string {
	return fmt.Sprintf("%s:%d:%s", entity, id, name)
}

// Edit records a new local value and restarts the debounce timer. The value
// supersedes any earlier unsent edit; if a commit is already in flight the
// new value is sent after that commit resolves, never interleaved.
func (c *Coordinator) Edit(key, value string, commit CommitFunc) {
	c.mu.Lock()
	defer c.mu.Unlock()

	f := c.fields[key]
	if f == nil {
		f = &field{}
		c.fields[key] = f
	}

	f.value = value
	f.commit = commit
	if !f.inflight {
		f.state = Dirty
	}

	if f.timer != nil {
		f.timer.Stop()
	}
	f.timer = time.AfterFunc(c.delay, func() { c.fire(key) })
}

func (c *Coordinator) fire(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	f := c.fields[key]
	if f == nil {
		return
	}
	f.timer = nil
	if f.inflight {
		// The resolve path sends the superseding value.
		return
	}
	c.send(key, f)
}

// send launches the commit for the current value. Caller holds c.mu.
func (c *Coordinator) send(key string, f *field) {
	f.inflight = true
	f.state = PendingCommit
	sent := f.value
	commit := f.commit

	go func() {
		err := commit(context.Background(), sent)

		c.mu.Lock()
		defer c.mu.Unlock()
		f.inflight = false

		if err != nil {
			f.lastErr = err
			if f.value != sent {
				// A newer value arrived while this one was in flight; it
				// still gets its turn regardless of how this one ended.
				c.send(key, f)
				return
			}
			// Keystrokes must not disappear: keep the local value, surface
			// the error, wait for the next edit or an explicit flush.
			f.state = Dirty
			return
		}

		f.lastErr = nil
		f.confirmed = sent
		if f.value != sent {
			// Superseded while in flight; trailing edge.
			c.send(key, f)
			return
		}
		f.state = Clean
	}()
}

// Flush commits the pending value immediately, cancelling the timer. With a
// commit already in flight it returns straight away; the trailing edge
// covers the newer value.
func (c *Coordinator) Flush(ctx context.Context, key string) error {
	c.mu.Lock()
	f := c.fields[key]
	if f == nil || f.state != Dirty || f.inflight {
		c.mu.Unlock()
		return nil
	}
	if f.timer != nil {
		f.timer.Stop()
		f.timer = nil
	}
	f.inflight = true
	f.state = PendingCommit
	sent := f.value
	commit := f.commit
	c.mu.Unlock()

	err := commit(ctx, sent)

	c.mu.Lock()
	defer c.mu.Unlock()
	f.inflight = false
	if err != nil {
		f.lastErr = err
		if f.value != sent {
			c.send(key, f)
		} else {
			f.state = Dirty
		}
		return err
	}
	f.lastErr = nil
	f.confirmed = sent
	if f.value != sent {
		c.send(key, f)
		return nil
	}
	f.state = Clean
	return nil
}

// FlushAll flushes every dirty field with the given key prefix. Used when an
// editor is torn down.
func (c *Coordinator) FlushAll(ctx context.Context, prefix string) error {
	c.mu.Lock()
	keys := make([]string, 0, len(c.fields))
	for k, f := range c.fields {
		if f.state == Dirty && len(k) >= len(prefix) && k[:len(prefix)] == prefix {
			keys = append(keys, k)
		}
	}
	c.mu.Unlock()

	var firstErr error
	for _, k := range keys {
		if err := c.Flush(ctx, k); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// Cancel forfeits a pending edit without committing it.
func (c *Coordinator) Cancel(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	f := c.fields[key]
	if f == nil {
		return
	}
	if f.timer != nil {
		f.timer.Stop()
	}
	delete(c.fields, key)
}

// State reports the field's current state; unknown fields are Clean.
func (c *Coordinator) State(key string) State {
	c.mu.Lock()
	defer c.mu.Unlock()

	if f := c.fields[key]; f != nil {
		return f.state
	}
	return Clean
}

// LastError returns the error of the most recent failed commit, if any.
func (c *Coordinator) LastError(key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if f := c.fields[key]; f != nil {
		return f.lastErr
	}
	return nil
}
