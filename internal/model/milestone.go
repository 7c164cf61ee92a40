package model

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var ErrInvalidMilestoneType = errors.New("model: invalid milestone type")

type MilestoneType string

const (
	MilestoneDailyTask        MilestoneType = "daily-task"
	MilestoneStretchChallenge MilestoneType = "stretch-challenge"
	MilestoneWeeklyGoal       MilestoneType = "weekly-goal"
	MilestoneMonthlyGoal      MilestoneType = "monthly-goal"
)

func (t MilestoneType) IsValid() bool {
	switch t {
	case MilestoneDailyTask, MilestoneStretchChallenge, MilestoneWeeklyGoal, MilestoneMonthlyGoal:
		return true
	default:
		return false
	}
}

// Milestone is a reflection record tagged to a completed task, challenge or
// goal. Its tags feed recurring-theme extraction.
type Milestone struct {
	ID              string        `json:"id"`
	At              time.Time     `json:"at"`
	Type            MilestoneType `json:"type"`
	Title           string        `json:"title"`
	Reflection      string        `json:"reflection"`
	Learning        string        `json:"learning,omitempty"`
	ImprovementArea string        `json:"improvement_area,omitempty"`
	Tags            []string      `json:"tags,omitempty"`
}

func (m Milestone) Validate() error {
	if strings.TrimSpace(m.ID) == "" {
		return errors.New("model: milestone id is required")
	}
	if m.At.IsZero() {
		return errors.New("model: milestone timestamp is required")
	}
	if !m.Type.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidMilestoneType, m.Type)
	}
	if strings.TrimSpace(m.Title) == "" {
		return errors.New("model: milestone title is required")
	}
	return nil
}
