package editor

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testDelay = 20 * time.Millisecond

// recorder is a CommitFunc that tracks every value it was asked to persist.
type recorder struct {
	mu     sync.Mutex
	values []string
	fail   atomic.Bool
}

func (r *recorder) commit(_ context.Context, value string) error {
	if r.fail.Load() {
		return errors.New("database unavailable")
	}
	r.mu.Lock()
	r.values = append(r.values, value)
	r.mu.Unlock()
	return nil
}

func (r *recorder) committed() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, len(r.values))
	copy(out, r.values)
	return out
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(2 * time.Millisecond)
	}
	t.Fatal("condition not reached in time")
}

func TestEditCoalescesToOneCommit(t *testing.T) {
	c := New(testDelay)
	rec := &recorder{}
	key := Key("profile", 1, "bio")

	c.Edit(key, "D", rec.commit)
	c.Edit(key, "Du", rec.commit)
	c.Edit(key, "Dub", rec.commit)
	c.Edit(key, "Dubai", rec.commit)
	assert.Equal(t, Dirty, c.State(key))

	waitFor(t, func() bool { return c.State(key) == Clean })
	assert.Equal(t, []string{"Dubai"}, rec.committed())
}

func TestIndependentFields(t *testing.T) {
	c := New(testDelay)
	rec := &recorder{}

	c.Edit(Key("profile", 1, "bio"), "bio text", rec.commit)
	c.Edit(Key("profile", 1, "location"), "Dubai", rec.commit)

	waitFor(t, func() bool {
		return c.State(Key("profile", 1, "bio")) == Clean &&
			c.State(Key("profile", 1, "location")) == Clean
	})
	assert.ElementsMatch(t, []string{"bio text", "Dubai"}, rec.committed())
}

func TestEditDuringInflightSendsTrailingEdge(t *testing.T) {
	c := New(testDelay)
	key := Key("property", 7, "price")

	started := make(chan struct{})
	release := make(chan struct{})
	var mu sync.Mutex
	var values []string
	first := true

	commit := func(_ context.Context, value string) error {
		mu.Lock()
		blocking := first
		first = false
		values = append(values, value)
		mu.Unlock()
		if blocking {
			close(started)
			<-release
		}
		return nil
	}

	c.Edit(key, "100", commit)
	<-started
	assert.Equal(t, PendingCommit, c.State(key))

	// superseding value arrives while the first commit is in flight
	c.Edit(key, "150000", commit)
	close(release)

	waitFor(t, func() bool { return c.State(key) == Clean })
	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []string{"100", "150000"}, values)
}

func TestFailedCommitStillSendsSupersedingValue(t *testing.T) {
	c := New(testDelay)
	key := Key("profile", 1, "bio")

	started := make(chan struct{})
	release := make(chan struct{})
	var mu sync.Mutex
	var values []string
	first := true

	commit := func(_ context.Context, value string) error {
		mu.Lock()
		blocking := first
		first = false
		mu.Unlock()
		if blocking {
			close(started)
			<-release
			return errors.New("database unavailable")
		}
		mu.Lock()
		values = append(values, value)
		mu.Unlock()
		return nil
	}

	c.Edit(key, "A", commit)
	<-started

	// superseding edit lands while "A" is in flight; its own timer fires
	// into the in-flight commit before "A" fails
	c.Edit(key, "B", commit)
	time.Sleep(3 * testDelay)
	close(release)

	waitFor(t, func() bool { return c.State(key) == Clean })
	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []string{"B"}, values)
}

func TestFailedCommitKeepsValue(t *testing.T) {
	c := New(testDelay)
	rec := &recorder{}
	rec.fail.Store(true)
	key := Key("profile", 1, "full_name")

	c.Edit(key, "Ahmed", rec.commit)
	waitFor(t, func() bool { return c.State(key) == Dirty && c.LastError(key) != nil })

	// no auto-retry: the value sits dirty until the next flush or edit
	time.Sleep(3 * testDelay)
	assert.Equal(t, Dirty, c.State(key))
	assert.Empty(t, rec.committed())

	rec.fail.Store(false)
	require.NoError(t, c.Flush(context.Background(), key))
	assert.Equal(t, Clean, c.State(key))
	assert.Nil(t, c.LastError(key))
	assert.Equal(t, []string{"Ahmed"}, rec.committed())
}

func TestFlushCommitsImmediately(t *testing.T) {
	c := New(time.Minute) // timer would never fire on its own
	rec := &recorder{}
	key := Key("profile", 1, "bio")

	c.Edit(key, "final text", rec.commit)
	require.NoError(t, c.Flush(context.Background(), key))
	assert.Equal(t, Clean, c.State(key))
	assert.Equal(t, []string{"final text"}, rec.committed())
}

func TestFlushCleanFieldIsNoop(t *testing.T) {
	c := New(testDelay)
	require.NoError(t, c.Flush(context.Background(), Key("profile", 1, "bio")))
}

func TestFlushAllByPrefix(t *testing.T) {
	c := New(time.Minute)
	rec := &recorder{}

	c.Edit(Key("property", 3, "price"), "250000", rec.commit)
	c.Edit(Key("property", 3, "location"), "JVC", rec.commit)
	c.Edit(Key("profile", 1, "bio"), "untouched", rec.commit)

	require.NoError(t, c.FlushAll(context.Background(), Key("property", 3, "")))
	assert.ElementsMatch(t, []string{"250000", "JVC"}, rec.committed())
	assert.Equal(t, Dirty, c.State(Key("profile", 1, "bio")))
}

func TestCancelForfeitsEdit(t *testing.T) {
	c := New(testDelay)
	rec := &recorder{}
	key := Key("profile", 1, "bio")

	c.Edit(key, "discarded", rec.commit)
	c.Cancel(key)
	assert.Equal(t, Clean, c.State(key))

	time.Sleep(3 * testDelay)
	assert.Empty(t, rec.committed())
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "clean", Clean.String())
	assert.Equal(t, "dirty", Dirty.String())
	assert.Equal(t, "pending", PendingCommit.String())
}
