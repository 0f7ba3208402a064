package task

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

const (
	testSchedulerInterval = 10 * time.Millisecond
	testSchedulerTimeout  = 2 * time.Second
)

func TestNewSchedulerDefaultsInterval(testingT *testing.T) {
	scheduler := NewScheduler(0, func(context.Context) {})
	require.Equal(testingT, 30*time.Second, scheduler.Interval())
}

func TestSchedulerRunsOnTrigger(testingT *testing.T) {
	var runCount int64
	runner := func(context.Context) {
		atomic.AddInt64(&runCount, 1)
	}
	scheduler := NewScheduler(time.Hour, runner)
	runtimeContext, cancel := context.WithCancel(context.Background())
	testingT.Cleanup(cancel)

	scheduler.Start(runtimeContext)
	scheduler.Trigger()

	require.Eventually(testingT, func() bool {
		return atomic.LoadInt64(&runCount) > 0
	}, testSchedulerTimeout, testSchedulerInterval)

	scheduler.Stop()
	require.Nil(testingT, scheduler.cancel)
	require.False(testingT, scheduler.Running())
}

func TestSchedulerRunsOnInterval(testingT *testing.T) {
	var runCount int64
	scheduler := NewScheduler(testSchedulerInterval, func(context.Context) {
		atomic.AddInt64(&runCount, 1)
	})
	scheduler.Start(context.Background())
	testingT.Cleanup(scheduler.Stop)

	require.Eventually(testingT, func() bool {
		return atomic.LoadInt64(&runCount) >= 2
	}, testSchedulerTimeout, testSchedulerInterval)
}

func TestSchedulerRunOnStart(testingT *testing.T) {
	var runCount int64
	scheduler := NewScheduler(time.Hour, func(context.Context) {
		atomic.AddInt64(&runCount, 1)
	}, WithRunOnStart())
	scheduler.Start(context.Background())
	testingT.Cleanup(scheduler.Stop)

	require.Eventually(testingT, func() bool {
		return atomic.LoadInt64(&runCount) == 1
	}, testSchedulerTimeout, testSchedulerInterval)
}

func TestSchedulerHandlesNilReceiver(testingT *testing.T) {
	var scheduler *Scheduler
	scheduler.Start(context.Background())
	scheduler.Trigger()
	scheduler.Halt()
	scheduler.Stop()
	require.False(testingT, scheduler.Running())
	require.Zero(testingT, scheduler.Interval())
}

func TestSchedulerSkipsStartWhenRunnerMissing(testingT *testing.T) {
	scheduler := NewScheduler(testSchedulerInterval, nil)
	scheduler.Start(context.Background())
	require.Nil(testingT, scheduler.cancel)
}

func TestSchedulerStartAndStopAreIdempotent(testingT *testing.T) {
	scheduler := NewScheduler(testSchedulerInterval, func(context.Context) {})
	scheduler.Start(context.Background())
	doneAfterStart := scheduler.done
	require.True(testingT, scheduler.Running())
	scheduler.Start(context.Background())
	require.Equal(testingT, doneAfterStart, scheduler.done)
	scheduler.Stop()
	scheduler.Stop()
	require.False(testingT, scheduler.Running())

	scheduler.Start(context.Background())
	require.True(testingT, scheduler.Running())
	scheduler.Stop()
}

func TestSchedulerHaltFromRunner(testingT *testing.T) {
	var runCount int64
	var scheduler *Scheduler
	scheduler = NewScheduler(testSchedulerInterval, func(context.Context) {
		atomic.AddInt64(&runCount, 1)
		scheduler.Halt()
	})
	scheduler.Start(context.Background())

	require.Eventually(testingT, func() bool {
		return !scheduler.Running()
	}, testSchedulerTimeout, testSchedulerInterval)
	time.Sleep(5 * testSchedulerInterval)
	require.Equal(testingT, int64(1), atomic.LoadInt64(&runCount))
}

func TestSchedulerRunNoopWithNilRunner(testingT *testing.T) {
	scheduler := &Scheduler{}
	scheduler.run(context.Background())
}
