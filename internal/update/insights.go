package update

import (
	"github.com/YashSadhu/mentme/internal/engine"
	"github.com/YashSadhu/mentme/internal/model"
	"github.com/YashSadhu/mentme/internal/views"
)

func (m *Model) refreshInsights() {
	m.Insights.Accountability = m.Engine.AccountabilityCheck()
	m.Insights.Themes = m.Engine.RecurringThemes()
	m.Insights.WeeklyPrompt = m.Engine.WeeklySpiritual()
	m.Insights.Difficulty = m.Engine.CurrentDifficulty()
}

func tierLabel(difficulty int) model.Tier {
	return engine.TierFor(difficulty)
}

func (m Model) insightsPanel() string {
	return views.RenderInsightsPanel(views.InsightsData{
		Accountability: m.Insights.Accountability,
		Themes:         m.Insights.Themes,
		WeeklyPrompt:   m.Insights.WeeklyPrompt,
		Difficulty:     m.Insights.Difficulty,
		Tier:           string(tierLabel(m.Insights.Difficulty)),
	})
}
