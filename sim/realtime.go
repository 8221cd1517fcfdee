package sim

import (
	"log"
	"time"
)

// RealTimePacer is a hook that holds the engine back so that simulated time
// advances no faster than the wall clock. A scale of 1 maps one simulated
// second to one real second; a scale of 0.5 runs twice as fast.
type RealTimePacer struct {
	scale    float64
	lastTime VTimeInSec
	started  bool
	sleep    func(time.Duration)
}

// NewRealTimePacer creates a RealTimePacer with the given scale.
func NewRealTimePacer(scale float64) *RealTimePacer {
	if scale < 0 {
		log.Panic("real time scale cannot be negative")
	}

	return &RealTimePacer{
		scale: scale,
		sleep: time.Sleep,
	}
}

// Func sleeps before each event for the simulated time elapsed since the
// previous event.
func (p *RealTimePacer) Func(ctx HookCtx) {
	if ctx.Pos != HookPosBeforeEvent {
		return
	}

	evt, ok := ctx.Item.(Event)
	if !ok {
		return
	}

	now := evt.Time()
	if !p.started {
		p.started = true
		p.lastTime = now

		return
	}

	elapsed := float64(now-p.lastTime) * p.scale
	p.lastTime = now

	if elapsed <= 0 {
		return
	}

	p.sleep(time.Duration(elapsed * float64(time.Second)))
}
