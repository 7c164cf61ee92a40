package model

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// StretchChallenge is one weekly beyond-comfort-zone challenge.
type StretchChallenge struct {
	ID          string     `json:"id"`
	WeekOf      string     `json:"week_of"` // YYYY-MM-DD identifying the week
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Rationale   string     `json:"rationale"`
	Completed   bool       `json:"completed"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
	Reflection  string     `json:"reflection,omitempty"`
	// DifficultyIncrease is how much harder than baseline, in percent.
	DifficultyIncrease int `json:"difficulty_increase"`
	// NextAdjustment is reserved for future tuning and is not read by any
	// decision path today.
	NextAdjustment int `json:"next_adjustment,omitempty"`
}

func (c StretchChallenge) Validate() error {
	if strings.TrimSpace(c.ID) == "" {
		return errors.New("model: challenge id is required")
	}
	if _, err := time.Parse(DateLayout, c.WeekOf); err != nil {
		return fmt.Errorf("model: challenge week_of must be YYYY-MM-DD: %q", c.WeekOf)
	}
	if strings.TrimSpace(c.Title) == "" {
		return errors.New("model: challenge title is required")
	}
	if c.Completed && c.CompletedAt == nil {
		return errors.New("model: completed_at is required when challenge is completed")
	}
	if !c.Completed && c.CompletedAt != nil {
		return errors.New("model: completed_at must be nil when challenge is not completed")
	}
	return nil
}
