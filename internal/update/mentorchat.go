package update

import (
	"context"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/YashSadhu/mentme/internal/mentor"
	"github.com/YashSadhu/mentme/internal/views"
)

func (m Model) handleMentorKey(key tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.String() == "enter" && !m.MentorChat.Streaming {
		message := strings.TrimSpace(m.chatInput.Value())
		if message == "" {
			return m, nil
		}
		return m.askMentor(message)
	}
	var cmd tea.Cmd
	m.chatInput, cmd = m.chatInput.Update(key)
	return m, cmd
}

// askMentor starts a streamed turn: chunks arrive as messages and grow the
// last transcript line until the stream finishes.
func (m Model) askMentor(message string) (tea.Model, tea.Cmd) {
	if m.Mentor == nil {
		m.Status = StatusBar{Text: "no mentor endpoint configured", IsError: true}
		return m, nil
	}

	tone := ""
	if state := m.Engine.State(); len(state.MoodEntries) > 0 {
		tone = state.MoodEntries[len(state.MoodEntries)-1].AdaptedTone
	}
	req := mentor.NewRequest(m.Persona, m.Tuning, tone, message)

	m.MentorChat.Transcript = append(m.MentorChat.Transcript,
		ChatLine{Role: RoleMentee, Text: message},
		ChatLine{Role: RoleMentor, Text: ""},
	)
	m.MentorChat.Streaming = true
	m.chatInput.SetValue("")

	ch := make(chan mentorStreamEvent, 16)
	m.streamCh = ch
	return m, tea.Batch(
		m.waitSpinner.Tick,
		streamMentorCmd(m.Mentor, req, ch),
		waitForMentorCmd(ch),
	)
}

func (m Model) handleMentorStream(ev mentorStreamEvent) (tea.Model, tea.Cmd) {
	if ev.done {
		m.MentorChat.Streaming = false
		m.streamCh = nil
		if ev.err != nil {
			m.Status = StatusBar{Text: ev.err.Error(), IsError: true}
		}
		return m, nil
	}

	if n := len(m.MentorChat.Transcript); n > 0 {
		m.MentorChat.Transcript[n-1].Text += ev.chunk
	}
	return m, waitForMentorCmd(m.streamCh)
}

// streamMentorCmd runs the HTTP stream in the background, feeding ch. The
// channel is closed when the stream ends so waiters drain cleanly.
func streamMentorCmd(client *mentor.Client, req mentor.Request, ch chan mentorStreamEvent) tea.Cmd {
	return func() tea.Msg {
		err := client.Stream(context.Background(), req, func(content string) error {
			ch <- mentorStreamEvent{chunk: content}
			return nil
		})
		ch <- mentorStreamEvent{done: true, err: err}
		close(ch)
		return nil
	}
}

func waitForMentorCmd(ch chan mentorStreamEvent) tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-ch
		if !ok {
			return mentorStreamMsg{event: mentorStreamEvent{done: true}}
		}
		return mentorStreamMsg{event: ev}
	}
}

func (m Model) mentorPanel() string {
	lines := make([]views.ChatLineData, len(m.MentorChat.Transcript))
	for i, line := range m.MentorChat.Transcript {
		lines[i] = views.ChatLineData{Role: string(line.Role), Text: line.Text}
	}
	spinnerView := ""
	if m.MentorChat.Streaming {
		spinnerView = m.waitSpinner.View()
	}
	m.chatView.SetContent(views.RenderTranscript(lines))
	return views.RenderMentorPanel(views.MentorData{
		MentorName:     m.Persona.Name,
		TranscriptView: m.chatView.View(),
		InputView:      m.chatInput.View(),
		SpinnerView:    spinnerView,
	})
}
