// Package engine implements the adaptive daily-task engine: task and
// challenge generation, completion tracking, trailing-window difficulty
// adjustment and mood adaptation. One Engine instance owns the full state;
// storage mirrors it after every mutation.
package engine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/YashSadhu/mentme/internal/catalog"
	"github.com/YashSadhu/mentme/internal/model"
	"github.com/YashSadhu/mentme/internal/scheduler"
	"github.com/YashSadhu/mentme/internal/storage"
)

var (
	ErrTaskExists      = errors.New("engine: uncompleted task already exists for date")
	ErrChallengeExists = errors.New("engine: challenge already exists for this week")
	ErrInvalidDate     = errors.New("engine: date must be YYYY-MM-DD")
)

// BreathingExercise prefixes anxious-day task descriptions and fills the
// adapted exercise on anxious mood check-ins.
const BreathingExercise = "Start with three rounds of slow breathing: in for four counts, hold for four, out for six. "

const (
	escalationStep   = 15
	deEscalationStep = 20
	maxDifficulty    = 100
	minDifficulty    = 10
	fastMeanMinutes  = 10
	missThreshold    = 2

	defaultReflectionHour = 19
	overwhelmedReduction  = 5
	minAdjustedQuantity   = 5
)

var firstNumber = regexp.MustCompile(`\d+`)

// TierFor maps the numeric difficulty score to a tier. 30 and 70 land in the
// next tier up.
func TierFor(difficulty int) model.Tier {
	switch {
	case difficulty < 30:
		return model.TierEasy
	case difficulty < 70:
		return model.TierMedium
	default:
		return model.TierHard
	}
}

type Engine struct {
	mu             sync.Mutex
	state          model.State
	store          storage.Store
	catalog        catalog.Catalog
	selector       Selector
	now            func() time.Time
	sched          *scheduler.Engine
	log            *slog.Logger
	reflectionHour int
}

type Option func(*Engine)

// WithSelector substitutes the random source used for template picks.
func WithSelector(s Selector) Option {
	return func(e *Engine) { e.selector = s }
}

// WithClock substitutes the time source. Test hook.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

// WithScheduler attaches the evening-reflection trigger engine.
func WithScheduler(s *scheduler.Engine) Option {
	return func(e *Engine) { e.sched = s }
}

func WithLogger(log *slog.Logger) Option {
	return func(e *Engine) { e.log = log }
}

// WithReflectionHour sets the local hour evening reflections fire at.
func WithReflectionHour(hour int) Option {
	return func(e *Engine) {
		if hour >= 0 && hour <= 23 {
			e.reflectionHour = hour
		}
	}
}

// New loads the last snapshot from store (or starts fresh) and returns a
// ready engine.
func New(ctx context.Context, store storage.Store, cat catalog.Catalog, opts ...Option) (*Engine, error) {
	if store == nil {
		return nil, errors.New("engine: nil store")
	}
	if err := cat.Validate(); err != nil {
		return nil, err
	}
	e := &Engine{
		store:          store,
		catalog:        cat,
		selector:       NewRandomSelector(),
		now:            time.Now,
		log:            slog.Default(),
		reflectionHour: defaultReflectionHour,
	}
	for _, opt := range opts {
		opt(e)
	}

	state, err := store.Load(ctx)
	switch {
	case errors.Is(err, storage.ErrNotFound):
		state = model.NewState()
	case err != nil:
		return nil, fmt.Errorf("engine: load state: %w", err)
	}
	e.state = state
	return e, nil
}

// GenerateDailyTask creates the task for date, adapted to mood. Mood may be
// empty. Returns ErrTaskExists when an uncompleted task for date is already
// present.
func (e *Engine) GenerateDailyTask(ctx context.Context, date string, mood model.Mood) (model.DailyTask, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if date == "" {
		date = model.DateKey(e.now())
	}
	if _, err := time.Parse(model.DateLayout, date); err != nil {
		return model.DailyTask{}, fmt.Errorf("%w: %q", ErrInvalidDate, date)
	}
	for _, task := range e.state.DailyTasks {
		if task.Date == date && !task.Completed {
			return model.DailyTask{}, fmt.Errorf("%w: %s", ErrTaskExists, date)
		}
	}

	tier := TierFor(e.state.CurrentDifficulty)
	templates := e.catalog.TemplatesFor(tier)
	tpl := templates[e.selector.Pick(len(templates))]

	task := model.DailyTask{
		ID:               uuid.NewString(),
		Date:             date,
		Title:            tpl.Title,
		Description:      adaptDescription(tpl.Description, mood),
		GoalCategory:     tpl.GoalCategory,
		EstimatedMinutes: tpl.EstimatedMinutes,
		Tier:             tier,
		Type:             tpl.Type,
	}
	e.state.DailyTasks = append(e.state.DailyTasks, task)
	e.persist(ctx)
	return task, nil
}

// adaptDescription applies the mood adjustment to a template description.
// The switch is exhaustive over known moods so a new mood is a conscious
// decision here, not a silent fall-through.
func adaptDescription(description string, mood model.Mood) string {
	switch mood {
	case model.MoodAnxious:
		return BreathingExercise + description
	case model.MoodOverwhelmed:
		return reduceFirstQuantity(description)
	case model.MoodMotivated, model.MoodPeaceful, model.MoodFocused, model.MoodTired:
		return description
	default:
		return description
	}
}

// reduceFirstQuantity lowers the first numeric quantity in text by 5,
// flooring at 5. Text without a number is returned unchanged.
func reduceFirstQuantity(text string) string {
	loc := firstNumber.FindStringIndex(text)
	if loc == nil {
		return text
	}
	n, err := strconv.Atoi(text[loc[0]:loc[1]])
	if err != nil {
		return text
	}
	n -= overwhelmedReduction
	if n < minAdjustedQuantity {
		n = minAdjustedQuantity
	}
	return text[:loc[0]] + strconv.Itoa(n) + text[loc[1]:]
}

// CompleteTask marks the task done and records the completion time in the
// trailing performance window. An unknown id is a silent no-op so defensive
// UI calls never break the flow. Difficulty is NOT adjusted here; callers
// invoke AdjustDifficulty as a separate step.
func (e *Engine) CompleteTask(ctx context.Context, taskID string, completionMinutes int, reflection string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	idx := -1
	for i := range e.state.DailyTasks {
		if e.state.DailyTasks[i].ID == taskID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil
	}

	now := e.now()
	task := &e.state.DailyTasks[idx]
	task.Completed = true
	task.CompletedAt = &now
	task.CompletionMinutes = completionMinutes
	task.Reflection = reflection

	e.state.WeeklyPerformance = append(e.state.WeeklyPerformance, completionMinutes)
	if excess := len(e.state.WeeklyPerformance) - model.PerformanceWindowSize; excess > 0 {
		e.state.WeeklyPerformance = e.state.WeeklyPerformance[excess:]
	}
	e.state.ConsecutiveCompletions++
	e.state.ConsecutiveMisses = 0

	e.scheduleReflection(task.ID, task.Title, scheduler.KindEveningReflection)
	e.persist(ctx)
	return nil
}

// AdjustDifficulty recalculates the difficulty score from the trailing
// window and the consecutive-miss counter. Both rules compute from the
// pre-call score; when both fire, the miss penalty wins.
func (e *Engine) AdjustDifficulty(ctx context.Context) {
	e.mu.Lock()
	defer e.mu.Unlock()

	current := e.state.CurrentDifficulty
	next := current

	if len(e.state.WeeklyPerformance) >= model.PerformanceWindowSize {
		sum := 0
		for _, minutes := range e.state.WeeklyPerformance {
			sum += minutes
		}
		mean := float64(sum) / float64(len(e.state.WeeklyPerformance))
		if mean < fastMeanMinutes {
			next = min(current+escalationStep, maxDifficulty)
		}
	}
	if e.state.ConsecutiveMisses >= missThreshold {
		next = max(current-deEscalationStep, minDifficulty)
		e.state.ConsecutiveMisses = 0
	}

	e.state.CurrentDifficulty = next
	e.persist(ctx)
}

// AddMoodEntry records a check-in with the derived response tone.
func (e *Engine) AddMoodEntry(ctx context.Context, mood model.Mood) (model.MoodEntry, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	entry := model.MoodEntry{
		ID:          uuid.NewString(),
		At:          e.now(),
		Mood:        mood,
		AdaptedTone: toneFor(mood),
	}
	if mood == model.MoodAnxious {
		entry.AdaptedExercise = BreathingExercise
	}
	e.state.MoodEntries = append(e.state.MoodEntries, entry)
	e.persist(ctx)
	return entry, nil
}

// toneFor derives the response-styling label for a mood. Unknown moods get
// the balanced default.
func toneFor(mood model.Mood) string {
	switch mood {
	case model.MoodAnxious:
		return "calm and supportive"
	case model.MoodOverwhelmed:
		return "gentle and simplified"
	case model.MoodMotivated:
		return "energetic and challenging"
	case model.MoodPeaceful, model.MoodFocused, model.MoodTired:
		return "balanced"
	default:
		return "balanced"
	}
}

// GenerateStretchChallenge creates this week's challenge from the fixed
// template set. Returns ErrChallengeExists when the week already has one.
func (e *Engine) GenerateStretchChallenge(ctx context.Context) (model.StretchChallenge, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	weekOf := model.DateKey(e.now())
	for _, existing := range e.state.StretchChallenges {
		if existing.WeekOf == weekOf {
			return model.StretchChallenge{}, fmt.Errorf("%w: %s", ErrChallengeExists, weekOf)
		}
	}

	tpl := e.catalog.Challenges[e.selector.Pick(len(e.catalog.Challenges))]
	challenge := model.StretchChallenge{
		ID:                 uuid.NewString(),
		WeekOf:             weekOf,
		Title:              tpl.Title,
		Description:        tpl.Description,
		Rationale:          tpl.Rationale,
		DifficultyIncrease: tpl.DifficultyIncrease,
	}
	e.state.StretchChallenges = append(e.state.StretchChallenges, challenge)
	e.persist(ctx)
	return challenge, nil
}

// CompleteChallenge marks a stretch challenge done. Unknown ids are a no-op.
func (e *Engine) CompleteChallenge(ctx context.Context, challengeID string, reflection string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	for i := range e.state.StretchChallenges {
		if e.state.StretchChallenges[i].ID != challengeID {
			continue
		}
		now := e.now()
		challenge := &e.state.StretchChallenges[i]
		challenge.Completed = true
		challenge.CompletedAt = &now
		challenge.Reflection = reflection
		e.scheduleReflection(challenge.ID, challenge.Title, scheduler.KindChallengeReview)
		e.persist(ctx)
		return nil
	}
	return nil
}

// SetGoal updates the current free-text goal.
func (e *Engine) SetGoal(ctx context.Context, goal string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.state.CurrentGoal = goal
	e.persist(ctx)
}

// AddMilestone records a tagged reflection milestone.
func (e *Engine) AddMilestone(ctx context.Context, m model.Milestone) (model.Milestone, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	if m.At.IsZero() {
		m.At = e.now()
	}
	if err := m.Validate(); err != nil {
		return model.Milestone{}, err
	}
	e.state.Milestones = append(e.state.Milestones, m)
	e.persist(ctx)
	return m, nil
}

// AddVisionReview stores a quarterly review record.
func (e *Engine) AddVisionReview(ctx context.Context, review model.VisionReview) model.VisionReview {
	e.mu.Lock()
	defer e.mu.Unlock()
	if review.ID == "" {
		review.ID = uuid.NewString()
	}
	if review.At.IsZero() {
		review.At = e.now()
	}
	e.state.VisionReviews = append(e.state.VisionReviews, review)
	e.persist(ctx)
	return review
}

// AddLegacyLetter stores an annual letter record.
func (e *Engine) AddLegacyLetter(ctx context.Context, letter model.LegacyLetter) model.LegacyLetter {
	e.mu.Lock()
	defer e.mu.Unlock()
	if letter.ID == "" {
		letter.ID = uuid.NewString()
	}
	if letter.At.IsZero() {
		letter.At = e.now()
	}
	e.state.LegacyLetters = append(e.state.LegacyLetters, letter)
	e.persist(ctx)
	return letter
}

// State returns a deep copy of the current state.
func (e *Engine) State() model.State {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state.Clone()
}

func (e *Engine) CurrentDifficulty() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state.CurrentDifficulty
}

// TaskForDate returns the most recent task generated for date.
func (e *Engine) TaskForDate(date string) (model.DailyTask, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	for i := len(e.state.DailyTasks) - 1; i >= 0; i-- {
		if e.state.DailyTasks[i].Date == date {
			return e.state.DailyTasks[i], true
		}
	}
	return model.DailyTask{}, false
}

// ChallengeForWeek returns the challenge whose WeekOf matches.
func (e *Engine) ChallengeForWeek(weekOf string) (model.StretchChallenge, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	for i := len(e.state.StretchChallenges) - 1; i >= 0; i-- {
		if e.state.StretchChallenges[i].WeekOf == weekOf {
			return e.state.StretchChallenges[i], true
		}
	}
	return model.StretchChallenge{}, false
}

// scheduleReflection queues the fire-and-forget evening prompt. Must be
// called with the engine lock held. Failure never propagates to the caller.
func (e *Engine) scheduleReflection(subjectID, title string, kind scheduler.Kind) {
	if e.sched == nil {
		return
	}
	now := e.now()
	trigger := time.Date(now.Year(), now.Month(), now.Day(), e.reflectionHour, 0, 0, 0, now.Location())
	if !trigger.After(now) {
		trigger = now.Add(time.Minute)
	}
	ev := scheduler.ReflectionEvent{
		ID:        uuid.NewString(),
		SubjectID: subjectID,
		Kind:      kind,
		Prompt:    fmt.Sprintf("How did %q go? Capture one sentence while it's fresh.", title),
		TriggerAt: trigger,
	}
	if err := e.sched.Schedule(ev); err != nil {
		e.log.Warn("evening reflection not scheduled", "subject", subjectID, "error", err)
	}
}

// persist mirrors the state to storage. Save failure is a recoverable
// warning: the in-memory state stays authoritative for the session.
func (e *Engine) persist(ctx context.Context) {
	if err := e.store.Save(ctx, e.state); err != nil {
		e.log.Warn("state save failed, continuing with in-memory state", "error", err)
	}
}
