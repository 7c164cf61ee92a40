package model

// PerformanceWindowSize caps the trailing completion-time window used by
// difficulty adjustment. Oldest samples are evicted first.
const PerformanceWindowSize = 7

// DefaultDifficulty is the starting score for a fresh state: mid-band,
// medium tier.
const DefaultDifficulty = 50

// State is the full engine state. It is owned by a single engine instance in
// memory; storage holds a mirror snapshot, rewritten after every mutation.
type State struct {
	CurrentGoal            string             `json:"current_goal"`
	CurrentDifficulty      int                `json:"current_difficulty"`
	WeeklyPerformance      []int              `json:"weekly_performance"`
	ConsecutiveMisses      int                `json:"consecutive_misses"`
	ConsecutiveCompletions int                `json:"consecutive_completions"`
	DailyTasks             []DailyTask        `json:"daily_tasks"`
	StretchChallenges      []StretchChallenge `json:"stretch_challenges"`
	MoodEntries            []MoodEntry        `json:"mood_entries"`
	Milestones             []Milestone        `json:"milestones"`
	VisionReviews          []VisionReview     `json:"vision_reviews"`
	LegacyLetters          []LegacyLetter     `json:"legacy_letters"`
}

// NewState returns the state a brand-new user starts from.
func NewState() State {
	return State{CurrentDifficulty: DefaultDifficulty}
}

// Clone returns a deep copy of the state so callers can read it without
// holding the engine lock.
func (s State) Clone() State {
	out := s
	out.WeeklyPerformance = append([]int(nil), s.WeeklyPerformance...)
	out.DailyTasks = append([]DailyTask(nil), s.DailyTasks...)
	out.StretchChallenges = append([]StretchChallenge(nil), s.StretchChallenges...)
	out.MoodEntries = append([]MoodEntry(nil), s.MoodEntries...)
	out.Milestones = make([]Milestone, len(s.Milestones))
	for i, m := range s.Milestones {
		m.Tags = append([]string(nil), m.Tags...)
		out.Milestones[i] = m
	}
	out.VisionReviews = append([]VisionReview(nil), s.VisionReviews...)
	out.LegacyLetters = append([]LegacyLetter(nil), s.LegacyLetters...)
	return out
}
