package update

import (
	"context"
	"errors"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/YashSadhu/mentme/internal/engine"
	"github.com/YashSadhu/mentme/internal/model"
	"github.com/YashSadhu/mentme/internal/views"
)

func (m *Model) refreshChallenge() {
	weekOf := model.DateKey(time.Now())
	challenge, ok := m.Engine.ChallengeForWeek(weekOf)
	if !ok {
		// Fall back to the latest stored challenge so a mid-week restart
		// still shows it.
		state := m.Engine.State()
		if n := len(state.StretchChallenges); n > 0 {
			challenge = state.StretchChallenges[n-1]
			ok = true
		}
	}
	m.Challenge.Challenge = challenge
	m.Challenge.HasChallenge = ok
}

func (m Model) handleChallengeKey(key tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.Challenge.Reflecting {
		if key.String() == "enter" {
			return m.completeChallenge()
		}
		var cmd tea.Cmd
		m.reflectionInput, cmd = m.reflectionInput.Update(key)
		return m, cmd
	}

	switch key.String() {
	case "g":
		return m.generateChallenge()
	case "x":
		if m.Challenge.HasChallenge && !m.Challenge.Challenge.Completed {
			m.Challenge.Reflecting = true
			m.reflectionInput.SetValue("")
			m.reflectionInput.Focus()
		}
		return m, nil
	}
	return m, nil
}

func (m Model) generateChallenge() (tea.Model, tea.Cmd) {
	challenge, err := m.Engine.GenerateStretchChallenge(context.Background())
	switch {
	case errors.Is(err, engine.ErrChallengeExists):
		m.Status = StatusBar{Text: "this week's challenge is already set"}
	case err != nil:
		m.Status = StatusBar{Text: err.Error(), IsError: true}
		return m, nil
	default:
		m.Status = StatusBar{Text: "stretch challenge: " + challenge.Title}
	}
	m.refreshChallenge()
	return m, nil
}

func (m Model) completeChallenge() (tea.Model, tea.Cmd) {
	err := m.Engine.CompleteChallenge(context.Background(), m.Challenge.Challenge.ID, strings.TrimSpace(m.reflectionInput.Value()))
	if err != nil {
		m.Status = StatusBar{Text: err.Error(), IsError: true}
		return m, nil
	}
	m = m.cancelCapture()
	m.refreshChallenge()
	m.Status = StatusBar{Text: "challenge complete — well beyond the comfort zone"}
	return m, nil
}

func (m Model) challengePanel() string {
	data := views.ChallengeData{
		HasChallenge: m.Challenge.HasChallenge,
		Reflecting:   m.Challenge.Reflecting,
		InputView:    m.reflectionInput.View(),
	}
	if m.Challenge.HasChallenge {
		ch := m.Challenge.Challenge
		data.Title = ch.Title
		data.Description = ch.Description
		data.Rationale = ch.Rationale
		data.WeekOf = ch.WeekOf
		data.DifficultyIncrease = ch.DifficultyIncrease
		data.Completed = ch.Completed
	}
	return views.RenderChallengePanel(data)
}
