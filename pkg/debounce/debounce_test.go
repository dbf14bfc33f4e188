package debounce

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recorder struct {
	mu     sync.Mutex
	values []string
}

func (r *recorder) record(v string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.values = append(r.values, v)
}

func (r *recorder) get() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.values...)
}

func TestDebouncer_DeliversOnlyFinalValue(t *testing.T) {
	rec := &recorder{}
	d := New(30*time.Millisecond, rec.record)

	d.Set("a")
	d.Set("ac")
	d.Set("acm")
	d.Set("acme")
	assert.True(t, d.Pending())

	require.Eventually(t, func() bool { return len(rec.get()) == 1 }, time.Second, 5*time.Millisecond)
	assert.Equal(t, []string{"acme"}, rec.get())
	assert.False(t, d.Pending())

	// nothing else arrives later
	time.Sleep(60 * time.Millisecond)
	assert.Equal(t, []string{"acme"}, rec.get())
}

func TestDebouncer_SeparateBursts(t *testing.T) {
	rec := &recorder{}
	d := New(20*time.Millisecond, rec.record)

	d.Set("x")
	require.Eventually(t, func() bool { return len(rec.get()) == 1 }, time.Second, 5*time.Millisecond)

	d.Set("y")
	d.Set("z")
	require.Eventually(t, func() bool { return len(rec.get()) == 2 }, time.Second, 5*time.Millisecond)
	assert.Equal(t, []string{"x", "z"}, rec.get())
}

func TestDebouncer_ZeroDelayIsSynchronous(t *testing.T) {
	rec := &recorder{}
	d := New(0, rec.record)

	d.Set("now")
	assert.Equal(t, []string{"now"}, rec.get())
	assert.False(t, d.Pending())
}

func TestDebouncer_StopDropsPending(t *testing.T) {
	rec := &recorder{}
	d := New(20*time.Millisecond, rec.record)

	d.Set("never")
	d.Stop()
	assert.False(t, d.Pending())

	time.Sleep(60 * time.Millisecond)
	assert.Empty(t, rec.get())

	// Set after Stop is ignored
	d.Set("ignored")
	time.Sleep(40 * time.Millisecond)
	assert.Empty(t, rec.get())
}
