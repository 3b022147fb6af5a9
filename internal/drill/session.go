// Package drill implements the kana question/answer session and the time trial.
//
// The engine has no terminal dependency. Output goes through a Renderer and
// time through a Clock, so both can be replaced in tests. All methods must be
// called from a single goroutine; Clock callbacks are expected to run there too.
package drill

import (
	"errors"
	"strings"
	"time"

	"github.com/verte-zerg/kanadrill/internal/kana"
	"github.com/verte-zerg/kanadrill/internal/model"
	"github.com/verte-zerg/kanadrill/internal/stats"
)

// ErrEmptySet is returned when a session is configured without any graphemes.
var ErrEmptySet = errors.New("kana set is empty")

// Verdict is the outcome of the previous answer.
type Verdict int

const (
	VerdictUnknown Verdict = iota
	VerdictCorrect
	VerdictIncorrect
)

// Cue is the audible or visual signal for an answer.
type Cue int

const (
	CueCorrect Cue = iota
	CueIncorrect
)

// Renderer receives every display change the engine makes.
type Renderer interface {
	DisplayPrompt(grapheme string, previous Verdict)
	DisplayFeedback(rec model.Record)
	ClearFeedback()
	DisplayScore(score int)
	DisplayAccuracy(correct, total int, pct float64)
	DisplayTimer(text string)
	SetInputLocked(locked bool)
	FocusInput()
	PlayCue(cue Cue)
}

// Picker selects the next prompt from a non-empty key list.
type Picker interface {
	Pick(keys []string) string
}

// Settings exposes learner configuration.
type Settings interface {
	SelectedSubsets() []kana.Name
	TrialDurationSeconds() int
}

// StaticSettings is a fixed Settings value.
type StaticSettings struct {
	Subsets  []kana.Name
	Duration int
}

// SelectedSubsets implements Settings.
func (s StaticSettings) SelectedSubsets() []kana.Name { return s.Subsets }

// TrialDurationSeconds implements Settings.
func (s StaticSettings) TrialDurationSeconds() int { return s.Duration }

// Session owns all drill state.
type Session struct {
	renderer Renderer
	picker   Picker
	now      func() time.Time

	set    kana.Table
	prompt string

	score   int
	total   int
	correct int
	last    Verdict
	history []model.Record
	locked  bool

	trial *Trial
}

// New creates a session over the given set and poses the first prompt.
func New(set kana.Table, renderer Renderer, picker Picker) (*Session, error) {
	s := &Session{
		renderer: renderer,
		picker:   picker,
		now:      time.Now,
	}
	if err := s.Configure(set); err != nil {
		return nil, err
	}
	return s, nil
}

// Configure replaces the active set and resets the session. An empty set is
// rejected and the current state is kept.
func (s *Session) Configure(set kana.Table) error {
	if set.Len() == 0 {
		return ErrEmptySet
	}
	s.set = set
	s.Reset()
	return nil
}

// ConfigureFrom builds the active set from the selected subsets.
func (s *Session) ConfigureFrom(settings Settings) error {
	return s.Configure(kana.Union(settings.SelectedSubsets()...))
}

// Reset zeroes the counters, clears history, cancels a running trial and
// poses a new prompt.
func (s *Session) Reset() {
	if s.trial != nil {
		s.trial.cancel()
	}
	s.score = 0
	s.total = 0
	s.correct = 0
	s.history = nil
	s.last = VerdictUnknown

	s.renderer.ClearFeedback()
	s.setInputLocked(false)
	s.renderer.DisplayScore(0)
	s.renderer.DisplayAccuracy(0, 0, 0)
	s.NextPrompt()
}

// NextPrompt draws a new prompt uniformly from the active set.
func (s *Session) NextPrompt() string {
	s.prompt = s.picker.Pick(s.set.Graphemes())
	s.renderer.DisplayPrompt(s.prompt, s.last)
	return s.prompt
}

// SubmitAnswer grades the input against the transliteration of the current
// prompt and moves to the next one. It reports false when input is locked.
func (s *Session) SubmitAnswer(raw string) (model.Record, bool) {
	if s.locked {
		return model.Record{}, false
	}
	input := strings.TrimSpace(raw)
	expected, _ := s.set.Lookup(s.prompt)
	rec := model.Record{
		Grapheme:   s.prompt,
		Input:      input,
		Expected:   expected,
		Correct:    input == expected,
		AnsweredAt: s.now(),
	}

	if rec.Correct {
		s.correct++
		s.score++
		s.last = VerdictCorrect
		s.renderer.PlayCue(CueCorrect)
	} else {
		s.last = VerdictIncorrect
		s.renderer.PlayCue(CueIncorrect)
	}
	s.total++
	s.history = append(s.history, rec)

	s.renderer.DisplayFeedback(rec)
	s.renderer.DisplayScore(s.score)
	s.renderer.DisplayAccuracy(s.correct, s.total, s.Accuracy())
	s.NextPrompt()
	return rec, true
}

// ClearHistory empties the answer history. Counters are kept.
func (s *Session) ClearHistory() {
	s.history = nil
	s.renderer.ClearFeedback()
}

// Accuracy is the percentage of correct answers rounded to two decimals.
func (s *Session) Accuracy() float64 {
	return stats.Accuracy(s.correct, s.total)
}

// Prompt returns the grapheme currently shown.
func (s *Session) Prompt() string { return s.prompt }

// Expected returns the transliteration of the current prompt.
func (s *Session) Expected() string {
	v, _ := s.set.Lookup(s.prompt)
	return v
}

// Set returns the active set.
func (s *Session) Set() kana.Table { return s.set }

// Score returns the current score.
func (s *Session) Score() int { return s.score }

// Total returns the number of answered questions.
func (s *Session) Total() int { return s.total }

// Correct returns the number of correct answers.
func (s *Session) Correct() int { return s.correct }

// LastVerdict returns the outcome of the most recent answer.
func (s *Session) LastVerdict() Verdict { return s.last }

// InputLocked reports whether answers are currently refused.
func (s *Session) InputLocked() bool { return s.locked }

// History returns answered questions, most recent first.
func (s *Session) History() []model.Record {
	out := make([]model.Record, len(s.history))
	for i, rec := range s.history {
		out[len(s.history)-1-i] = rec
	}
	return out
}

func (s *Session) setInputLocked(locked bool) {
	s.locked = locked
	s.renderer.SetInputLocked(locked)
}
