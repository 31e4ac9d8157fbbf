package engine

import (
	"sync/atomic"
	"time"
)

// searchContext tracks the wall-clock deadline and node count of one search.
// The deadline probe is the search's only cooperative checkpoint: once the
// stop flag is set, every frame unwinds immediately and its partial score is
// discarded by the caller.
type searchContext struct {
	startTime time.Time
	timeLimit time.Duration
	nodes     int64
	stopped   atomic.Bool
}

func newSearchContext(timeLimit time.Duration) *searchContext {
	return &searchContext{
		startTime: time.Now(),
		timeLimit: timeLimit,
	}
}

// fork creates a context sharing the parent's deadline but with its own
// node counter, so parallel workers never write the same counter.
func (ctx *searchContext) fork() *searchContext {
	return &searchContext{
		startTime: ctx.startTime,
		timeLimit: ctx.timeLimit,
	}
}

// checkTimeout latches the stop flag once the deadline has passed. Called
// every checkInterval nodes to keep the time.Now cost off the hot path.
func (ctx *searchContext) checkTimeout() bool {
	if ctx.stopped.Load() {
		return true
	}
	if time.Since(ctx.startTime) >= ctx.timeLimit {
		ctx.stopped.Store(true)
		return true
	}
	return false
}

// expired reports whether the deadline has passed, without latching.
func (ctx *searchContext) expired() bool {
	return time.Since(ctx.startTime) >= ctx.timeLimit
}

// elapsed returns time since the search started.
func (ctx *searchContext) elapsed() time.Duration {
	return time.Since(ctx.startTime)
}

// checkInterval-1 is the node-count mask between deadline probes.
const checkInterval = 1024
