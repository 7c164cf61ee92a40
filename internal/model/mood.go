package model

import (
	"errors"
	"strings"
	"time"
)

var ErrInvalidMood = errors.New("model: invalid mood")

type Mood string

const (
	MoodMotivated   Mood = "motivated"
	MoodAnxious     Mood = "anxious"
	MoodPeaceful    Mood = "peaceful"
	MoodOverwhelmed Mood = "overwhelmed"
	MoodFocused     Mood = "focused"
	MoodTired       Mood = "tired"
)

// Moods lists every known mood in display order.
var Moods = []Mood{MoodMotivated, MoodAnxious, MoodPeaceful, MoodOverwhelmed, MoodFocused, MoodTired}

func (m Mood) IsValid() bool {
	switch m {
	case MoodMotivated, MoodAnxious, MoodPeaceful, MoodOverwhelmed, MoodFocused, MoodTired:
		return true
	default:
		return false
	}
}

// MoodEntry is one mood check-in. Entries are immutable once recorded.
type MoodEntry struct {
	ID              string    `json:"id"`
	At              time.Time `json:"at"`
	Mood            Mood      `json:"mood"`
	AdaptedExercise string    `json:"adapted_exercise,omitempty"` // populated for anxious only
	AdaptedTone     string    `json:"adapted_tone"`
}

func (e MoodEntry) Validate() error {
	if strings.TrimSpace(e.ID) == "" {
		return errors.New("model: mood entry id is required")
	}
	if e.At.IsZero() {
		return errors.New("model: mood entry timestamp is required")
	}
	if strings.TrimSpace(e.AdaptedTone) == "" {
		return errors.New("model: mood entry adapted tone is required")
	}
	return nil
}
