package task

import (
	"context"
	"sync"
	"time"
)

const defaultInterval = 30 * time.Second

type RunnerFunc func(context.Context)

// Scheduler runs a RunnerFunc on a fixed interval from a single goroutine.
// Trigger requests an extra run that resets the interval.
type Scheduler struct {
	interval     time.Duration
	runner       RunnerFunc
	runOnStart   bool
	trigger      chan struct{}
	controlMutex sync.Mutex
	cancel       context.CancelFunc
	done         chan struct{}
}

// Option customizes a Scheduler.
type Option func(*Scheduler)

// WithRunOnStart makes every Start perform one run right away instead of
// waiting a full interval.
func WithRunOnStart() Option {
	return func(scheduler *Scheduler) {
		scheduler.runOnStart = true
	}
}

func NewScheduler(interval time.Duration, runner RunnerFunc, options ...Option) *Scheduler {
	if interval <= 0 {
		interval = defaultInterval
	}
	scheduler := &Scheduler{
		interval: interval,
		runner:   runner,
		trigger:  make(chan struct{}, 1),
	}
	for _, option := range options {
		option(scheduler)
	}
	return scheduler
}

func (scheduler *Scheduler) Interval() time.Duration {
	if scheduler == nil {
		return 0
	}
	return scheduler.interval
}

// Start launches the loop. Calling Start on a running scheduler is a no-op.
func (scheduler *Scheduler) Start(ctx context.Context) {
	if scheduler == nil || scheduler.runner == nil {
		return
	}
	scheduler.controlMutex.Lock()
	if scheduler.cancel != nil {
		scheduler.controlMutex.Unlock()
		return
	}
	runtimeCtx, cancel := context.WithCancel(ctx)
	scheduler.cancel = cancel
	done := make(chan struct{})
	scheduler.done = done
	scheduler.controlMutex.Unlock()

	if scheduler.runOnStart {
		scheduler.Trigger()
	}
	go scheduler.loop(runtimeCtx, done)
}

// Running reports whether the loop is active.
func (scheduler *Scheduler) Running() bool {
	if scheduler == nil {
		return false
	}
	scheduler.controlMutex.Lock()
	defer scheduler.controlMutex.Unlock()
	return scheduler.cancel != nil
}

func (scheduler *Scheduler) Trigger() {
	if scheduler == nil {
		return
	}
	select {
	case scheduler.trigger <- struct{}{}:
	default:
	}
}

// Stop cancels the loop and waits for an in-flight run to return. Stopping
// a stopped scheduler is a no-op.
func (scheduler *Scheduler) Stop() {
	if scheduler == nil {
		return
	}
	cancel, done := scheduler.detach()
	if cancel != nil {
		cancel()
	}
	if done != nil {
		<-done
	}
}

// Halt cancels the loop without waiting for it. Unlike Stop it may be called
// from inside the runner.
func (scheduler *Scheduler) Halt() {
	if scheduler == nil {
		return
	}
	cancel, _ := scheduler.detach()
	if cancel != nil {
		cancel()
	}
}

func (scheduler *Scheduler) detach() (context.CancelFunc, chan struct{}) {
	scheduler.controlMutex.Lock()
	defer scheduler.controlMutex.Unlock()
	cancel := scheduler.cancel
	done := scheduler.done
	scheduler.cancel = nil
	scheduler.done = nil
	return cancel, done
}

func (scheduler *Scheduler) loop(ctx context.Context, done chan struct{}) {
	timer := time.NewTimer(scheduler.interval)
	defer func() {
		if !timer.Stop() {
			select {
			case <-timer.C:
			default:
			}
		}
	}()
	defer func() {
		if done != nil {
			close(done)
		}
	}()
	for {
		select {
		case <-ctx.Done():
			return
		case <-scheduler.trigger:
			scheduler.run(ctx)
		case <-timer.C:
			scheduler.run(ctx)
		}
		if !timer.Stop() {
			select {
			case <-timer.C:
			default:
			}
		}
		timer.Reset(scheduler.interval)
	}
}

func (scheduler *Scheduler) run(ctx context.Context) {
	if scheduler.runner == nil || ctx.Err() != nil {
		return
	}
	scheduler.runner(ctx)
}
