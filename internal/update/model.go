// Package update holds the bubbletea application model: five screens
// (check-in, today, challenge, insights, mentor) driven by the task engine
// and the mentor chat client.
package update

import (
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"

	"github.com/YashSadhu/mentme/internal/engine"
	"github.com/YashSadhu/mentme/internal/mentor"
	"github.com/YashSadhu/mentme/internal/model"
	"github.com/YashSadhu/mentme/internal/scheduler"
)

type View string

const (
	ViewCheckIn   View = "CheckIn"
	ViewToday     View = "Today"
	ViewChallenge View = "Challenge"
	ViewInsights  View = "Insights"
	ViewMentor    View = "Mentor"
)

type StatusBar struct {
	Text    string
	IsError bool
}

type GlobalKeyMap struct {
	CheckIn   string
	Today     string
	Challenge string
	Insights  string
	Mentor    string
	Help      string
	Quit      string
}

func defaultKeyMap() GlobalKeyMap {
	return GlobalKeyMap{
		CheckIn:   "1",
		Today:     "2",
		Challenge: "3",
		Insights:  "4",
		Mentor:    "5",
		Help:      "?",
		Quit:      "q",
	}
}

type CheckInState struct {
	Cursor    int
	DoneToday bool
	LastMood  model.Mood
}

// TodayPhase tracks the completion flow: idle -> minutes -> reflection.
type TodayPhase string

const (
	PhaseIdle       TodayPhase = "idle"
	PhaseMinutes    TodayPhase = "minutes"
	PhaseReflection TodayPhase = "reflection"
)

type TodayState struct {
	Task    model.DailyTask
	HasTask bool
	Phase   TodayPhase
}

type ChallengeState struct {
	Challenge    model.StretchChallenge
	HasChallenge bool
	Reflecting   bool
}

type InsightsState struct {
	Accountability string
	Themes         []string
	WeeklyPrompt   string
	Difficulty     int
}

type ChatRole string

const (
	RoleMentee ChatRole = "mentee"
	RoleMentor ChatRole = "mentor"
)

type ChatLine struct {
	Role ChatRole
	Text string
}

type MentorChatState struct {
	Transcript []ChatLine
	Streaming  bool
}

type mentorStreamEvent struct {
	chunk string
	done  bool
	err   error
}

type Model struct {
	Engine    *engine.Engine
	Mentor    *mentor.Client
	Persona   mentor.Persona
	Tuning    mentor.Tuning
	Scheduler *scheduler.Engine

	CurrentView View
	Status      StatusBar
	Keys        GlobalKeyMap
	HelpVisible bool
	Quitting    bool

	CheckIn    CheckInState
	Today      TodayState
	Challenge  ChallengeState
	Insights   InsightsState
	MentorChat MentorChatState

	ReflectionLog []scheduler.ReflectionEvent

	minutesInput    textinput.Model
	reflectionInput textarea.Model
	chatInput       textinput.Model
	chatView        viewport.Model
	waitSpinner     spinner.Model

	streamCh chan mentorStreamEvent
}

// Deps wires the model to the rest of the application.
type Deps struct {
	Engine    *engine.Engine
	Mentor    *mentor.Client
	Persona   mentor.Persona
	Tuning    mentor.Tuning
	Scheduler *scheduler.Engine
}

func NewModel(deps Deps) Model {
	minutes := textinput.New()
	minutes.Placeholder = "minutes spent"
	minutes.CharLimit = 4
	minutes.Width = 16

	reflection := textarea.New()
	reflection.Placeholder = "one sentence on how it went"
	reflection.SetHeight(3)
	reflection.SetWidth(54)

	chat := textinput.New()
	chat.Placeholder = "ask your mentor"
	chat.Width = 54

	transcript := viewport.New(54, 12)

	wait := spinner.New()
	wait.Spinner = spinner.Dot

	m := Model{
		Engine:      deps.Engine,
		Mentor:      deps.Mentor,
		Persona:     deps.Persona,
		Tuning:      deps.Tuning,
		Scheduler:   deps.Scheduler,
		CurrentView: ViewCheckIn,
		Keys:        defaultKeyMap(),
		Today:       TodayState{Phase: PhaseIdle},

		minutesInput:    minutes,
		reflectionInput: reflection,
		chatInput:       chat,
		chatView:        transcript,
		waitSpinner:     wait,
	}
	m.refreshToday()
	m.refreshChallenge()
	m.refreshInsights()
	return m
}

// Messages.

type SetStatusMsg struct {
	Text    string
	IsError bool
}

type ReflectionDueMsg struct {
	Event scheduler.ReflectionEvent
}

type mentorStreamMsg struct {
	event mentorStreamEvent
}
