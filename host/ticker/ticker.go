// Package ticker drives a motion scheduler from a wall clock on hosts that
// have no hardware timer interrupt.
package ticker

import (
	"context"
	"time"

	"github.com/benbjohnson/clock"
	"go.uber.org/zap"

	"turtlebot/core"
)

// DefaultPeriod is how often Run dispatches due timers. Dispatch catches
// up on every tick that fell due in between.
const DefaultPeriod = time.Millisecond

// Runner feeds elapsed microseconds since Start into a scheduler
type Runner struct {
	sched  *core.Scheduler
	clock  clock.Clock
	period time.Duration
	logger *zap.SugaredLogger

	start   time.Time
	virtual time.Duration
}

// New returns a runner for sched. A nil clock uses the real clock.
func New(sched *core.Scheduler, clk clock.Clock, period time.Duration, logger *zap.SugaredLogger) *Runner {
	if clk == nil {
		clk = clock.New()
	}
	if period <= 0 {
		period = DefaultPeriod
	}
	r := &Runner{
		sched:  sched,
		clock:  clk,
		period: period,
		logger: logger,
	}
	r.Reset()
	return r
}

// Reset makes the current clock reading the scheduler's zero time
func (r *Runner) Reset() {
	r.start = r.clock.Now()
	r.virtual = 0
}

// Elapsed converts a clock reading to scheduler ticks. The value wraps
// after about 71 minutes, which the scheduler tolerates.
func (r *Runner) Elapsed(now time.Time) uint32 {
	us := now.Sub(r.start) / time.Microsecond
	return uint32(int64(us) * (core.TimerFreq / 1000000))
}

// DispatchAt runs every timer due at clock reading now
func (r *Runner) DispatchAt(now time.Time) {
	r.sched.Dispatch(r.Elapsed(now))
}

// Run dispatches on every clock tick until ctx is done
func (r *Runner) Run(ctx context.Context) error {
	t := r.clock.Ticker(r.period)
	defer t.Stop()

	r.logger.Debugw("ticker started", "period", r.period)
	for {
		select {
		case <-ctx.Done():
			r.logger.Debugw("ticker stopped", "reason", ctx.Err())
			return ctx.Err()
		case now := <-t.C:
			r.DispatchAt(now)
		}
	}
}

// Simulate dispatches in period steps of virtual time without waiting,
// until busy reports false or limit has elapsed. Virtual time continues
// from the previous call. It returns the simulated duration.
func (r *Runner) Simulate(busy func() bool, limit time.Duration) time.Duration {
	var elapsed time.Duration
	for busy() && elapsed < limit {
		elapsed += r.period
		r.virtual += r.period
		r.DispatchAt(r.start.Add(r.virtual))
	}
	return elapsed
}
