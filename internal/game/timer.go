package game

import "time"

// MaxPlaySeconds is where the play timer stops counting.
const MaxPlaySeconds = 99

// PlayTimer measures whole seconds of play between the first opened cell
// and the end of the game.
type PlayTimer struct {
	now     func() time.Time
	started time.Time
	stopped time.Time
	running bool
}

func NewPlayTimer(now func() time.Time) *PlayTimer {
	if now == nil {
		now = time.Now
	}
	return &PlayTimer{now: now}
}

func (t *PlayTimer) Start() {
	if t.running {
		return
	}
	t.started = t.now()
	t.stopped = time.Time{}
	t.running = true
}

func (t *PlayTimer) Stop() {
	if !t.running {
		return
	}
	t.stopped = t.now()
	t.running = false
}

func (t *PlayTimer) Reset() {
	t.started, t.stopped = time.Time{}, time.Time{}
	t.running = false
}

func (t *PlayTimer) Running() bool {
	return t.running
}

func (t *PlayTimer) Seconds() int {
	if t.started.IsZero() {
		return 0
	}
	end := t.stopped
	if t.running {
		end = t.now()
	}
	return min(int(end.Sub(t.started)/time.Second), MaxPlaySeconds)
}
