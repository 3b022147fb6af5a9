package drill

import (
	"sort"
	"time"

	"github.com/verte-zerg/kanadrill/internal/model"
)

type fakeClock struct {
	now    time.Duration
	timers []*fakeTimer
}

type fakeTimer struct {
	at      time.Duration
	seq     int
	f       func()
	stopped bool
	fired   bool
}

func (t *fakeTimer) Stop() bool {
	if t.stopped || t.fired {
		return false
	}
	t.stopped = true
	return true
}

func (c *fakeClock) AfterFunc(d time.Duration, f func()) Timer {
	t := &fakeTimer{at: c.now + d, seq: len(c.timers), f: f}
	c.timers = append(c.timers, t)
	return t
}

// Advance moves time forward, firing due timers in order.
func (c *fakeClock) Advance(d time.Duration) {
	target := c.now + d
	for {
		due := c.due(target)
		if due == nil {
			break
		}
		c.now = due.at
		due.fired = true
		due.f()
	}
	c.now = target
}

func (c *fakeClock) due(limit time.Duration) *fakeTimer {
	var pending []*fakeTimer
	for _, t := range c.timers {
		if !t.stopped && !t.fired && t.at <= limit {
			pending = append(pending, t)
		}
	}
	if len(pending) == 0 {
		return nil
	}
	sort.Slice(pending, func(i, j int) bool {
		if pending[i].at == pending[j].at {
			return pending[i].seq < pending[j].seq
		}
		return pending[i].at < pending[j].at
	})
	return pending[0]
}

func (c *fakeClock) pending() int {
	n := 0
	for _, t := range c.timers {
		if !t.stopped && !t.fired {
			n++
		}
	}
	return n
}

type recorder struct {
	prompts   []string
	verdicts  []Verdict
	feedback  []model.Record
	clears    int
	score     int
	correct   int
	total     int
	pct       float64
	timer     []string
	locked    bool
	lockCalls []bool
	focus     int
	cues      []Cue
}

func (r *recorder) DisplayPrompt(grapheme string, previous Verdict) {
	r.prompts = append(r.prompts, grapheme)
	r.verdicts = append(r.verdicts, previous)
}

func (r *recorder) DisplayFeedback(rec model.Record) {
	r.feedback = append(r.feedback, rec)
}

func (r *recorder) ClearFeedback() {
	r.clears++
	r.feedback = nil
}

func (r *recorder) DisplayScore(score int) { r.score = score }

func (r *recorder) DisplayAccuracy(correct, total int, pct float64) {
	r.correct = correct
	r.total = total
	r.pct = pct
}

func (r *recorder) DisplayTimer(text string) { r.timer = append(r.timer, text) }

func (r *recorder) SetInputLocked(locked bool) {
	r.locked = locked
	r.lockCalls = append(r.lockCalls, locked)
}

func (r *recorder) FocusInput() { r.focus++ }

func (r *recorder) PlayCue(cue Cue) { r.cues = append(r.cues, cue) }

func (r *recorder) lastTimer() string {
	if len(r.timer) == 0 {
		return ""
	}
	return r.timer[len(r.timer)-1]
}

type seqPicker struct {
	i int
}

func (p *seqPicker) Pick(keys []string) string {
	k := keys[p.i%len(keys)]
	p.i++
	return k
}
