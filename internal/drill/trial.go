package drill

import (
	"fmt"
	"time"
)

// DefaultTrialSeconds is used when the configured duration is not positive.
const DefaultTrialSeconds = 60

const (
	prepareDelay  = time.Second
	tickInterval  = time.Second
	countdownFrom = 3
)

// Clock schedules one-shot callbacks.
type Clock interface {
	AfterFunc(d time.Duration, f func()) Timer
}

// Timer is a cancellable handle returned by Clock.
type Timer interface {
	Stop() bool
}

// Phase is the time trial state.
type Phase int

const (
	PhaseIdle Phase = iota
	PhasePreparing
	PhaseCountdown
	PhaseActive
	PhaseExpired
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhasePreparing:
		return "preparing"
	case PhaseCountdown:
		return "countdown"
	case PhaseActive:
		return "active"
	case PhaseExpired:
		return "expired"
	default:
		return fmt.Sprintf("phase(%d)", int(p))
	}
}

// Trial runs a timed drill on top of a Session.
//
// Start locks input and shows "Get ready!". One second later it counts down
// 3, 2, 1 a second apart, and a second after "1..." it unlocks input and shows
// "Type!". The trial clock starts on the first keystroke after that and ticks
// once per second until it reaches zero, when input is locked again.
type Trial struct {
	session  *Session
	clock    Clock
	settings Settings

	phase     Phase
	running   bool
	count     int
	remaining int
	timer     Timer
}

// NewTrial attaches a trial controller to the session. Resetting the session
// cancels the trial.
func NewTrial(s *Session, clock Clock, settings Settings) *Trial {
	t := &Trial{session: s, clock: clock, settings: settings}
	s.trial = t
	return t
}

// Phase returns the current phase.
func (t *Trial) Phase() Phase { return t.phase }

// Running reports whether the trial clock has started.
func (t *Trial) Running() bool { return t.running }

// Remaining returns the seconds left once the trial clock has started.
func (t *Trial) Remaining() int { return t.remaining }

// WaitingForKeystroke reports whether the next keystroke starts the trial clock.
func (t *Trial) WaitingForKeystroke() bool {
	return t.phase == PhaseActive && !t.running
}

// Start begins a new trial, cancelling any trial in progress.
func (t *Trial) Start() {
	t.stopTimer()
	t.session.Reset()
	t.phase = PhasePreparing
	t.session.setInputLocked(true)
	t.session.renderer.DisplayTimer("Get ready!")
	t.arm(prepareDelay, t.beginCountdown)
}

// Keystroke starts the trial clock on the first key typed after "Type!".
// It is ignored in every other state.
func (t *Trial) Keystroke() {
	if !t.WaitingForKeystroke() {
		return
	}
	t.running = true
	t.remaining = t.duration()
	t.displayRemaining()
	t.arm(tickInterval, t.tick)
}

func (t *Trial) beginCountdown() {
	t.phase = PhaseCountdown
	t.count = countdownFrom
	t.session.renderer.DisplayTimer(fmt.Sprintf("%d...", t.count))
	t.arm(tickInterval, t.countdownTick)
}

func (t *Trial) countdownTick() {
	t.count--
	if t.count > 0 {
		t.session.renderer.DisplayTimer(fmt.Sprintf("%d...", t.count))
		t.arm(tickInterval, t.countdownTick)
		return
	}
	t.timer = nil
	t.phase = PhaseActive
	t.session.setInputLocked(false)
	t.session.renderer.FocusInput()
	t.session.renderer.DisplayTimer("Type!")
}

func (t *Trial) tick() {
	t.remaining--
	if t.remaining > 0 {
		t.displayRemaining()
		t.arm(tickInterval, t.tick)
		return
	}
	t.timer = nil
	t.running = false
	t.phase = PhaseExpired
	t.session.setInputLocked(true)
	t.session.renderer.DisplayTimer("Time's up!")
}

func (t *Trial) displayRemaining() {
	t.session.renderer.DisplayTimer(fmt.Sprintf("Time left: %ds", t.remaining))
}

func (t *Trial) duration() int {
	if t.settings == nil {
		return DefaultTrialSeconds
	}
	if d := t.settings.TrialDurationSeconds(); d > 0 {
		return d
	}
	return DefaultTrialSeconds
}

// arm replaces the outstanding timer. A callback whose timer is no longer
// current does nothing.
func (t *Trial) arm(d time.Duration, f func()) {
	t.stopTimer()
	var timer Timer
	timer = t.clock.AfterFunc(d, func() {
		if t.timer != timer {
			return
		}
		f()
	})
	t.timer = timer
}

func (t *Trial) stopTimer() {
	if t.timer != nil {
		t.timer.Stop()
		t.timer = nil
	}
}

// cancel is called by Session.Reset.
func (t *Trial) cancel() {
	t.stopTimer()
	if t.phase != PhaseIdle {
		t.session.renderer.DisplayTimer("")
	}
	t.phase = PhaseIdle
	t.running = false
	t.remaining = 0
	t.count = 0
}
