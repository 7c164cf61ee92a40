package model

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	ErrInvalidTier     = errors.New("model: invalid difficulty tier")
	ErrInvalidTaskType = errors.New("model: invalid task type")
)

// DateLayout is the calendar-day key used for tasks and challenge weeks.
const DateLayout = "2006-01-02"

// DateKey formats t as a calendar-day key.
func DateKey(t time.Time) string {
	return t.Format(DateLayout)
}

type Tier string

const (
	TierEasy   Tier = "easy"
	TierMedium Tier = "medium"
	TierHard   Tier = "hard"
)

func (t Tier) IsValid() bool {
	switch t {
	case TierEasy, TierMedium, TierHard:
		return true
	default:
		return false
	}
}

type TaskType string

const (
	TaskTypeReading    TaskType = "reading"
	TaskTypePractice   TaskType = "practice"
	TaskTypeReflection TaskType = "reflection"
	TaskTypeCreation   TaskType = "creation"
	TaskTypeAnalysis   TaskType = "analysis"
)

func (t TaskType) IsValid() bool {
	switch t {
	case TaskTypeReading, TaskTypePractice, TaskTypeReflection, TaskTypeCreation, TaskTypeAnalysis:
		return true
	default:
		return false
	}
}

// DailyTask is one task assigned for a specific calendar date.
type DailyTask struct {
	ID                string     `json:"id"`
	Date              string     `json:"date"` // YYYY-MM-DD
	Title             string     `json:"title"`
	Description       string     `json:"description"`
	GoalCategory      string     `json:"goal_category"`
	EstimatedMinutes  int        `json:"estimated_minutes"`
	Tier              Tier       `json:"tier"`
	Type              TaskType   `json:"type"`
	Completed         bool       `json:"completed"`
	CompletedAt       *time.Time `json:"completed_at,omitempty"`
	CompletionMinutes int        `json:"completion_minutes,omitempty"`
	Reflection        string     `json:"reflection,omitempty"`
}

func (t DailyTask) Validate() error {
	if strings.TrimSpace(t.ID) == "" {
		return errors.New("model: task id is required")
	}
	if _, err := time.Parse(DateLayout, t.Date); err != nil {
		return fmt.Errorf("model: task date must be YYYY-MM-DD: %q", t.Date)
	}
	if strings.TrimSpace(t.Title) == "" {
		return errors.New("model: task title is required")
	}
	if !t.Tier.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidTier, t.Tier)
	}
	if !t.Type.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidTaskType, t.Type)
	}
	if t.Completed && t.CompletedAt == nil {
		return errors.New("model: completed_at is required when task is completed")
	}
	if !t.Completed && t.CompletedAt != nil {
		return errors.New("model: completed_at must be nil when task is not completed")
	}
	return nil
}
