package game

import "time"

// startTimerLocked arms the single countdown. Any running timer is cancelled
// first: at most one timer is ever active, and stale ticks are fenced off by
// the generation counter.
func (o *Orchestrator) startTimerLocked(seconds int) {
	o.stopTimerLocked()
	o.timerGen++
	o.timerValue = seconds
	o.timerMax = seconds
	o.timerRunning = true
	o.scheduleTickLocked(o.timerGen)
}

func (o *Orchestrator) stopTimerLocked() {
	o.timerGen++
	o.timerRunning = false
}

func (o *Orchestrator) scheduleTickLocked(gen uint64) {
	time.AfterFunc(o.timing.Tick, func() {
		o.tick(gen)
	})
}

func (o *Orchestrator) tick(gen uint64) {
	o.mu.Lock()
	if gen != o.timerGen || !o.timerRunning {
		o.mu.Unlock()
		return
	}
	if o.timerValue > 0 {
		if o.timerValue <= 6 {
			o.sound.Play(CueTick)
		}
		o.timerValue--
		o.scheduleTickLocked(gen)
		snap := o.snapshotLocked()
		o.mu.Unlock()
		o.publish(snap)
		return
	}
	o.stopTimerLocked()
	o.handleTimeoutLocked()
	snap := o.snapshotLocked()
	o.mu.Unlock()
	o.publish(snap)
}

// StopTimer halts the countdown without resolving anything.
func (o *Orchestrator) StopTimer() {
	o.mu.Lock()
	o.stopTimerLocked()
	snap := o.snapshotLocked()
	o.mu.Unlock()
	o.publish(snap)
}
