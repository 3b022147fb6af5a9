package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/verte-zerg/kanadrill/internal/drill"
)

type clockTickMsg struct {
	id int
}

// teaClock implements drill.Clock on top of tea.Tick. Callbacks run inside
// Update when their tick message arrives; ticks of stopped timers are dropped.
type teaClock struct {
	nextID  int
	live    map[int]*teaTimer
	pending []tea.Cmd
}

type teaTimer struct {
	clock *teaClock
	id    int
	f     func()
}

func newTeaClock() *teaClock {
	return &teaClock{live: map[int]*teaTimer{}}
}

// AfterFunc implements drill.Clock.
func (c *teaClock) AfterFunc(d time.Duration, f func()) drill.Timer {
	c.nextID++
	t := &teaTimer{clock: c, id: c.nextID, f: f}
	c.live[t.id] = t
	id := t.id
	c.pending = append(c.pending, tea.Tick(d, func(time.Time) tea.Msg {
		return clockTickMsg{id: id}
	}))
	return t
}

// Stop implements drill.Timer.
func (t *teaTimer) Stop() bool {
	if _, ok := t.clock.live[t.id]; !ok {
		return false
	}
	delete(t.clock.live, t.id)
	return true
}

func (c *teaClock) fire(id int) {
	t, ok := c.live[id]
	if !ok {
		return
	}
	delete(c.live, id)
	t.f()
}

// drain returns the tick commands scheduled since the last call.
func (c *teaClock) drain() []tea.Cmd {
	cmds := c.pending
	c.pending = nil
	return cmds
}

func (c *teaClock) active() int {
	return len(c.live)
}
