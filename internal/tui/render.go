package tui

import (
	"context"
	"fmt"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/kanadrill/internal/drill"
	"github.com/verte-zerg/kanadrill/internal/kana"
	"github.com/verte-zerg/kanadrill/internal/model"
)

var subsetLabels = map[kana.Name]string{
	kana.HiraganaMonographs: "ひらがな",
	kana.HiraganaDigraphs:   "ひらがな+ゃ",
	kana.KatakanaMonographs: "カタカナ",
	kana.KatakanaDigraphs:   "カタカナ+ャ",
	kana.KatakanaTrigraphs:  "カタカナ ext",
}

// DisplayPrompt implements drill.Renderer.
func (m *Model) DisplayPrompt(grapheme string, previous drill.Verdict) {
	m.prompt = grapheme
	m.previous = previous
}

// DisplayFeedback implements drill.Renderer.
func (m *Model) DisplayFeedback(rec model.Record) {
	m.feedback = append([]model.Record{rec}, m.feedback...)
	if m.store != nil {
		id, err := m.store.InsertAnswer(context.Background(), rec)
		if err != nil {
			m.statusMsg = fmt.Sprintf("failed to journal answer: %v", err)
		} else {
			m.lastAnswer = id
		}
		m.refreshWeak()
	}
	m.refreshHistory()
}

// ClearFeedback implements drill.Renderer. The journal keeps its answers;
// the weak-kana footer only counts answers given after the clear.
func (m *Model) ClearFeedback() {
	m.feedback = nil
	m.weak = nil
	m.hasCue = false
	m.weakAfter = m.lastAnswer
	m.refreshHistory()
}

// DisplayScore implements drill.Renderer.
func (m *Model) DisplayScore(score int) {
	m.score = score
}

// DisplayAccuracy implements drill.Renderer. A zero total means the session
// was reset, so the journal is emptied to match the counters.
func (m *Model) DisplayAccuracy(correct, total int, pct float64) {
	m.correct = correct
	m.total = total
	m.pct = pct
	if total == 0 {
		m.clearJournal()
	}
}

func (m *Model) clearJournal() {
	m.lastAnswer = 0
	m.weakAfter = 0
	if m.store == nil {
		return
	}
	if err := m.store.Clear(context.Background()); err != nil {
		m.statusMsg = fmt.Sprintf("failed to clear answer journal: %v", err)
	}
}

// DisplayTimer implements drill.Renderer.
func (m *Model) DisplayTimer(text string) {
	m.timerText = text
}

// SetInputLocked implements drill.Renderer.
func (m *Model) SetInputLocked(locked bool) {
	m.locked = locked
	if locked {
		m.input.Blur()
		m.input.SetValue("")
		return
	}
	m.cmds = append(m.cmds, m.input.Focus())
}

// FocusInput implements drill.Renderer.
func (m *Model) FocusInput() {
	m.cmds = append(m.cmds, m.input.Focus())
}

// PlayCue implements drill.Renderer.
func (m *Model) PlayCue(cue drill.Cue) {
	m.cue = cue
	m.hasCue = true
	if m.bell && cue == drill.CueIncorrect {
		m.cmds = append(m.cmds, bellCmd)
	}
}

func bellCmd() tea.Msg {
	if _, err := os.Stderr.WriteString("\a"); err != nil {
		// Best-effort bell.
		_ = err
	}
	return nil
}

// View implements tea.Model.
func (m *Model) View() string {
	sections := make([]string, 0, 8)
	if m.timerText != "" {
		sections = append(sections, timerStyle.Render(m.timerText))
	}
	sections = append(sections,
		m.renderLabel(),
		m.renderGlyph(),
		m.renderInput(),
		m.renderScore(),
		m.renderSets(),
	)
	if m.showResults {
		sections = append(sections, m.results.View())
	} else {
		sections = append(sections, m.history.View())
	}
	content := lipgloss.JoinVertical(lipgloss.Center, sections...)
	footer := m.renderFooter()
	if m.width == 0 || m.height == 0 {
		return content + "\n" + footer
	}
	if m.height < 3 {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
	}
	body := lipgloss.Place(m.width, m.height-1, lipgloss.Center, lipgloss.Center, content)
	footerLine := lipgloss.Place(m.width, 1, lipgloss.Center, lipgloss.Center, footer)
	return body + "\n" + footerLine
}

func (m *Model) renderLabel() string {
	label := promptLabel(m.previous)
	switch m.previous {
	case drill.VerdictCorrect:
		return correctStyle.Render(label)
	case drill.VerdictIncorrect:
		return incorrectStyle.Render(label)
	default:
		return pendingStyle.Render(label)
	}
}

func (m *Model) renderGlyph() string {
	style := glyphStyle
	if m.hasCue {
		if m.cue == drill.CueCorrect {
			style = style.BorderForeground(correctStyle.GetForeground())
		} else {
			style = style.BorderForeground(incorrectStyle.GetForeground())
		}
	}
	return style.Render(centerGlyph(m.prompt, glyphWidth))
}

func (m *Model) renderInput() string {
	if m.locked {
		return pendingStyle.Render("> ···")
	}
	return m.input.View()
}

func (m *Model) renderScore() string {
	return fmt.Sprintf("Score: %d   %d/%d correct   Accuracy: %.2f%%", m.score, m.correct, m.total, m.pct)
}

func (m *Model) renderSets() string {
	parts := make([]string, 0, len(kana.Names()))
	for i, name := range kana.Names() {
		mark := " "
		if m.selected[name] {
			mark = "x"
		}
		parts = append(parts, fmt.Sprintf("%d[%s]%s", i+1, mark, subsetLabels[name]))
	}
	return footerStyle.Render(strings.Join(parts, " "))
}

func (m *Model) renderFooter() string {
	segments := make([]string, 0, 3)
	if len(m.weak) > 0 {
		segments = append(segments, "Weak: "+strings.Join(m.weak, " "))
	}
	if m.statusMsg != "" {
		segments = append(segments, m.statusMsg)
	}
	segments = append(segments, "enter answer · ctrl+t trial · ctrl+r reset · ctrl+l clear · alt+N sets · tab stats · esc quit")
	return footerStyle.Render(strings.Join(segments, "  "))
}
