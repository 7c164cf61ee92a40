package engine

import "strings"

// Accountability messages, keyed off the recent completion rate.
const (
	MsgMissedTasks = "You've missed several tasks lately. Let's ease the load and rebuild the streak one small win at a time."
	MsgExcellent   = "Excellent consistency this week. Reward yourself with something you enjoy — you've earned it."
	MsgSteady      = "Steady progress. Keep showing up and let the routine do its quiet work."
)

const accountabilitySpan = 7

// AccountabilityCheck summarizes the completion rate over the most recent
// tasks (up to 7, by insertion order). A brand-new user with no tasks gets
// the steady-progress message, never an error.
func (e *Engine) AccountabilityCheck() string {
	e.mu.Lock()
	defer e.mu.Unlock()

	tasks := e.state.DailyTasks
	if len(tasks) > accountabilitySpan {
		tasks = tasks[len(tasks)-accountabilitySpan:]
	}
	if len(tasks) == 0 {
		return MsgSteady
	}

	completed := 0
	for _, task := range tasks {
		if task.Completed {
			completed++
		}
	}
	rate := float64(completed) / float64(len(tasks))
	switch {
	case rate < 0.5:
		return MsgMissedTasks
	case rate > 0.8:
		return MsgExcellent
	default:
		return MsgSteady
	}
}

// WeeklySpiritual returns one of the catalog's reflective prompts at random.
func (e *Engine) WeeklySpiritual() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	prompts := e.catalog.WeeklyPrompts
	return prompts[e.selector.Pick(len(prompts))]
}

// RecurringThemes filters the fixed theme vocabulary down to the terms that
// show up in milestone tags or task reflections. The result is always a
// subset of the vocabulary, in vocabulary order.
func (e *Engine) RecurringThemes() []string {
	e.mu.Lock()
	defer e.mu.Unlock()

	pool := make([]string, 0)
	for _, milestone := range e.state.Milestones {
		pool = append(pool, milestone.Tags...)
	}
	for _, task := range e.state.DailyTasks {
		if task.Reflection == "" {
			continue
		}
		pool = append(pool, strings.Fields(strings.ToLower(task.Reflection))...)
	}

	themes := make([]string, 0)
	for _, term := range e.catalog.ThemeVocabulary {
		for _, token := range pool {
			if strings.Contains(token, term) {
				themes = append(themes, term)
				break
			}
		}
	}
	return themes
}
