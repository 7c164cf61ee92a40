package update

import (
	"fmt"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/YashSadhu/mentme/internal/scheduler"
	"github.com/YashSadhu/mentme/internal/views"
)

func (m Model) Init() tea.Cmd {
	if m.Scheduler != nil {
		return waitForReflectionCmd(m.Scheduler.C())
	}
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch typed := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(typed)

	case spinner.TickMsg:
		if m.MentorChat.Streaming {
			var cmd tea.Cmd
			m.waitSpinner, cmd = m.waitSpinner.Update(typed)
			return m, cmd
		}
		return m, nil

	case SetStatusMsg:
		m.Status = StatusBar{Text: typed.Text, IsError: typed.IsError}
		return m, nil

	case ReflectionDueMsg:
		m.ReflectionLog = append(m.ReflectionLog, typed.Event)
		if len(m.ReflectionLog) > 10 {
			m.ReflectionLog = m.ReflectionLog[len(m.ReflectionLog)-10:]
		}
		m.Status = StatusBar{Text: typed.Event.Prompt}
		if m.Scheduler != nil {
			return m, waitForReflectionCmd(m.Scheduler.C())
		}
		return m, nil

	case mentorStreamMsg:
		return m.handleMentorStream(typed.event)
	}

	return m, nil
}

func (m Model) handleKey(key tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Text-entry phases own the keyboard apart from escape and ctrl+c.
	keyStr := key.String()
	if keyStr == "ctrl+c" {
		m.Quitting = true
		return m, tea.Quit
	}
	if m.capturingInput() && keyStr != "esc" {
		return m.handleCapturedKey(key)
	}

	switch keyStr {
	case "esc":
		return m.cancelCapture(), nil
	case m.Keys.CheckIn:
		m.CurrentView = ViewCheckIn
		return m, nil
	case m.Keys.Today:
		m.CurrentView = ViewToday
		m.refreshToday()
		return m, nil
	case m.Keys.Challenge:
		m.CurrentView = ViewChallenge
		m.refreshChallenge()
		return m, nil
	case m.Keys.Insights:
		m.CurrentView = ViewInsights
		m.refreshInsights()
		return m, nil
	case m.Keys.Mentor:
		m.CurrentView = ViewMentor
		m.chatInput.Focus()
		return m, nil
	case m.Keys.Help:
		m.HelpVisible = !m.HelpVisible
		return m, nil
	case m.Keys.Quit:
		m.Quitting = true
		return m, tea.Quit
	}

	switch m.CurrentView {
	case ViewCheckIn:
		return m.handleCheckInKey(key)
	case ViewToday:
		return m.handleTodayKey(key)
	case ViewChallenge:
		return m.handleChallengeKey(key)
	case ViewMentor:
		return m.handleMentorKey(key)
	}
	return m, nil
}

// capturingInput reports whether a text widget currently owns keystrokes.
func (m Model) capturingInput() bool {
	if m.CurrentView == ViewToday && m.Today.Phase != PhaseIdle {
		return true
	}
	if m.CurrentView == ViewChallenge && m.Challenge.Reflecting {
		return true
	}
	if m.CurrentView == ViewMentor && m.chatInput.Focused() {
		return true
	}
	return false
}

func (m Model) handleCapturedKey(key tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.CurrentView {
	case ViewToday:
		return m.handleTodayKey(key)
	case ViewChallenge:
		return m.handleChallengeKey(key)
	case ViewMentor:
		return m.handleMentorKey(key)
	}
	return m, nil
}

func (m Model) cancelCapture() Model {
	m.Today.Phase = PhaseIdle
	m.Challenge.Reflecting = false
	m.minutesInput.Blur()
	m.minutesInput.SetValue("")
	m.reflectionInput.Blur()
	m.reflectionInput.SetValue("")
	m.chatInput.Blur()
	return m
}

func (m Model) View() string {
	if m.Quitting {
		return "until tomorrow\n"
	}

	var main string
	switch m.CurrentView {
	case ViewCheckIn:
		main = m.checkInPanel()
	case ViewToday:
		main = m.todayPanel()
	case ViewChallenge:
		main = m.challengePanel()
	case ViewInsights:
		main = m.insightsPanel()
	case ViewMentor:
		main = m.mentorPanel()
	}

	side := views.RenderSidePanel(views.SideData{
		Goal:       m.Engine.State().CurrentGoal,
		Difficulty: m.Insights.Difficulty,
		Tier:       string(tierLabel(m.Insights.Difficulty)),
		Reminders:  reflectionPrompts(m.ReflectionLog),
	})

	data := views.AppData{
		Header:     fmt.Sprintf("mentme — %s", m.Persona.Name),
		MainPane:   main,
		SidePane:   side,
		StatusLine: m.Status.Text,
		IsError:    m.Status.IsError,
	}
	if m.HelpVisible {
		data.Footer = views.RenderHelpPanel(views.HelpData{
			Bindings: []string{
				"[1]check-in [2]today [3]challenge [4]insights [5]mentor",
				"[?]help [esc]cancel [q]quit",
			},
		})
	}
	return views.RenderApp(data)
}

func reflectionPrompts(events []scheduler.ReflectionEvent) []string {
	out := make([]string, 0, len(events))
	for _, ev := range events {
		out = append(out, ev.Prompt)
	}
	return out
}

func waitForReflectionCmd(ch <-chan scheduler.ReflectionEvent) tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-ch
		if !ok {
			return nil
		}
		return ReflectionDueMsg{Event: ev}
	}
}
