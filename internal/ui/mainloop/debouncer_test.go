package mainloop_test

import (
	"testing"
	"time"

	"github.com/egdesk/taehwa/internal/testutil/fakeclock"
	"github.com/egdesk/taehwa/internal/ui/mainloop"
	"github.com/stretchr/testify/assert"
)

const delay = 16 * time.Millisecond

func TestDebouncer_BurstRunsLastCallbackOnce(t *testing.T) {
	clk := fakeclock.New()
	d := mainloop.NewDebouncer(delay, clk.AfterFunc)

	var runs []int
	for i := 1; i <= 10; i++ {
		v := i
		d.Trigger(func() { runs = append(runs, v) })
		clk.Advance(time.Millisecond)
	}
	assert.Empty(t, runs, "nothing runs while the burst continues")
	assert.Equal(t, 1, clk.Active(), "each trigger cancels the previous timer")

	clk.Advance(delay)

	assert.Equal(t, []int{10}, runs)
	assert.False(t, d.Pending())
}

func TestDebouncer_QuietPeriodsRunSeparately(t *testing.T) {
	clk := fakeclock.New()
	d := mainloop.NewDebouncer(delay, clk.AfterFunc)

	count := 0
	d.Trigger(func() { count++ })
	clk.Advance(delay)
	d.Trigger(func() { count++ })
	clk.Advance(delay)

	assert.Equal(t, 2, count)
}

func TestDebouncer_Flush(t *testing.T) {
	clk := fakeclock.New()
	d := mainloop.NewDebouncer(delay, clk.AfterFunc)

	count := 0
	d.Trigger(func() { count++ })
	assert.True(t, d.Flush())
	assert.Equal(t, 1, count)

	clk.Advance(delay)
	assert.Equal(t, 1, count, "flushed work does not run again")
	assert.False(t, d.Flush())
}

func TestDebouncer_CancelAndStop(t *testing.T) {
	clk := fakeclock.New()
	d := mainloop.NewDebouncer(delay, clk.AfterFunc)

	count := 0
	d.Trigger(func() { count++ })
	d.Cancel()
	clk.Advance(delay)
	assert.Zero(t, count)

	d.Stop()
	d.Trigger(func() { count++ })
	clk.Advance(delay)
	assert.Zero(t, count)
	assert.False(t, d.Pending())
}

func TestDebouncer_RealTimer(t *testing.T) {
	d := mainloop.NewDebouncer(time.Millisecond, nil)
	done := make(chan struct{})
	d.Trigger(func() { close(done) })

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("debounced callback never ran")
	}
}
