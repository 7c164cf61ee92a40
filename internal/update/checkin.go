package update

import (
	"context"
	"errors"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/YashSadhu/mentme/internal/engine"
	"github.com/YashSadhu/mentme/internal/model"
	"github.com/YashSadhu/mentme/internal/views"
)

func (m Model) handleCheckInKey(key tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch key.String() {
	case "j", "down":
		m.CheckIn.Cursor = (m.CheckIn.Cursor + 1) % len(model.Moods)
		return m, nil
	case "k", "up":
		m.CheckIn.Cursor = (m.CheckIn.Cursor + len(model.Moods) - 1) % len(model.Moods)
		return m, nil
	case "enter":
		return m.performCheckIn()
	}
	return m, nil
}

// performCheckIn records the mood and generates today's task in one step.
func (m Model) performCheckIn() (tea.Model, tea.Cmd) {
	ctx := context.Background()
	mood := model.Moods[m.CheckIn.Cursor]

	entry, err := m.Engine.AddMoodEntry(ctx, mood)
	if err != nil {
		m.Status = StatusBar{Text: err.Error(), IsError: true}
		return m, nil
	}
	m.CheckIn.LastMood = mood
	m.CheckIn.DoneToday = true

	today := model.DateKey(time.Now())
	task, err := m.Engine.GenerateDailyTask(ctx, today, mood)
	switch {
	case errors.Is(err, engine.ErrTaskExists):
		m.Status = StatusBar{Text: "today's task is already waiting for you"}
	case err != nil:
		m.Status = StatusBar{Text: err.Error(), IsError: true}
		return m, nil
	default:
		m.Status = StatusBar{Text: fmt.Sprintf("today: %s (%s tone)", task.Title, entry.AdaptedTone)}
	}

	m.refreshToday()
	m.CurrentView = ViewToday
	return m, nil
}

func (m Model) checkInPanel() string {
	moods := make([]views.MoodOption, len(model.Moods))
	for i, mood := range model.Moods {
		moods[i] = views.MoodOption{
			Label:    string(mood),
			Selected: i == m.CheckIn.Cursor,
		}
	}
	return views.RenderCheckInPanel(views.CheckInData{
		Moods:     moods,
		DoneToday: m.CheckIn.DoneToday,
		LastMood:  string(m.CheckIn.LastMood),
	})
}
