package update

import (
	"context"
	"strconv"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/YashSadhu/mentme/internal/model"
	"github.com/YashSadhu/mentme/internal/views"
)

func (m *Model) refreshToday() {
	today := model.DateKey(time.Now())
	task, ok := m.Engine.TaskForDate(today)
	m.Today.Task = task
	m.Today.HasTask = ok
	m.Insights.Difficulty = m.Engine.CurrentDifficulty()
}

func (m Model) handleTodayKey(key tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.Today.Phase {
	case PhaseMinutes:
		return m.handleMinutesKey(key)
	case PhaseReflection:
		return m.handleReflectionKey(key)
	}

	switch key.String() {
	case "c":
		if m.Today.HasTask && !m.Today.Task.Completed {
			m.Today.Phase = PhaseMinutes
			m.minutesInput.SetValue("")
			m.minutesInput.Focus()
		}
		return m, nil
	}
	return m, nil
}

func (m Model) handleMinutesKey(key tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.String() == "enter" {
		if _, err := strconv.Atoi(strings.TrimSpace(m.minutesInput.Value())); err != nil {
			m.Status = StatusBar{Text: "enter the minutes as a whole number", IsError: true}
			return m, nil
		}
		m.Today.Phase = PhaseReflection
		m.minutesInput.Blur()
		m.reflectionInput.SetValue("")
		m.reflectionInput.Focus()
		return m, nil
	}
	var cmd tea.Cmd
	m.minutesInput, cmd = m.minutesInput.Update(key)
	return m, cmd
}

func (m Model) handleReflectionKey(key tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.String() == "enter" {
		return m.completeToday()
	}
	var cmd tea.Cmd
	m.reflectionInput, cmd = m.reflectionInput.Update(key)
	return m, cmd
}

// completeToday records the completion and immediately recalculates
// difficulty, the caller-driven step the engine leaves to us.
func (m Model) completeToday() (tea.Model, tea.Cmd) {
	ctx := context.Background()
	minutes, err := strconv.Atoi(strings.TrimSpace(m.minutesInput.Value()))
	if err != nil {
		m.Status = StatusBar{Text: "enter the minutes as a whole number", IsError: true}
		return m, nil
	}

	if err := m.Engine.CompleteTask(ctx, m.Today.Task.ID, minutes, strings.TrimSpace(m.reflectionInput.Value())); err != nil {
		m.Status = StatusBar{Text: err.Error(), IsError: true}
		return m, nil
	}
	m.Engine.AdjustDifficulty(ctx)

	m = m.cancelCapture()
	m.refreshToday()
	m.refreshInsights()
	m.Status = StatusBar{Text: "task complete — difficulty recalculated"}
	return m, nil
}

func (m Model) todayPanel() string {
	data := views.TodayData{
		HasTask:   m.Today.HasTask,
		Phase:     string(m.Today.Phase),
		InputView: m.minutesInput.View(),
	}
	if m.Today.Phase == PhaseReflection {
		data.InputView = m.reflectionInput.View()
	}
	if m.Today.HasTask {
		task := m.Today.Task
		data.Title = task.Title
		data.Description = task.Description
		data.Tier = string(task.Tier)
		data.Type = string(task.Type)
		data.EstimatedMinutes = task.EstimatedMinutes
		data.GoalCategory = task.GoalCategory
		data.Completed = task.Completed
		data.Reflection = task.Reflection
	}
	return views.RenderTodayPanel(data)
}
