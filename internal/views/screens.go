package views

import (
	"fmt"
	"strings"
)

type MoodOption struct {
	Label    string
	Selected bool
}

type CheckInData struct {
	Moods     []MoodOption
	DoneToday bool
	LastMood  string
}

type TodayData struct {
	HasTask          bool
	Title            string
	Description      string
	Tier             string
	Type             string
	EstimatedMinutes int
	GoalCategory     string
	Completed        bool
	Reflection       string
	Phase            string
	InputView        string
}

type ChallengeData struct {
	HasChallenge       bool
	Title              string
	Description        string
	Rationale          string
	WeekOf             string
	DifficultyIncrease int
	Completed          bool
	Reflecting         bool
	InputView          string
}

type InsightsData struct {
	Accountability string
	Themes         []string
	WeeklyPrompt   string
	Difficulty     int
	Tier           string
}

type ChatLineData struct {
	Role string
	Text string
}

type MentorData struct {
	MentorName     string
	TranscriptView string
	InputView      string
	SpinnerView    string
}

type SideData struct {
	Goal       string
	Difficulty int
	Tier       string
	Reminders  []string
}

type HelpData struct {
	Bindings []string
}

func RenderCheckInPanel(data CheckInData) string {
	var b strings.Builder
	b.WriteString("check-in:\n")
	b.WriteString("how are you arriving today? [j/k]move [enter]choose\n\n")
	for _, mood := range data.Moods {
		cursor := "  "
		label := mood.Label
		if mood.Selected {
			cursor = "> "
			label = cursorStyle.Render(label)
		}
		b.WriteString(cursor + label + "\n")
	}
	if data.DoneToday {
		b.WriteString(dimStyle.Render(fmt.Sprintf("\nchecked in as %s today", data.LastMood)))
	}
	return strings.TrimSpace(b.String())
}

func RenderTodayPanel(data TodayData) string {
	var b strings.Builder
	b.WriteString("today:\n")
	if !data.HasTask {
		b.WriteString("no task yet — check in first ([1])")
		return b.String()
	}

	fmt.Fprintf(&b, "%s  [%s/%s, ~%d min, %s]\n\n", data.Title, data.Tier, data.Type, data.EstimatedMinutes, data.GoalCategory)
	b.WriteString(data.Description + "\n")

	switch {
	case data.Completed:
		b.WriteString("\ndone for today")
		if data.Reflection != "" {
			b.WriteString(" — " + data.Reflection)
		}
	case data.Phase == "minutes":
		b.WriteString("\nhow many minutes did it take?\n" + data.InputView)
	case data.Phase == "reflection":
		b.WriteString("\none line on how it went:\n" + data.InputView)
	default:
		b.WriteString("\nactions: [c]complete")
	}
	return strings.TrimSpace(b.String())
}

func RenderChallengePanel(data ChallengeData) string {
	var b strings.Builder
	b.WriteString("stretch challenge:\n")
	if !data.HasChallenge {
		b.WriteString("no challenge this week — [g]generate")
		return b.String()
	}

	fmt.Fprintf(&b, "%s  (week of %s, +%d%%)\n\n", data.Title, data.WeekOf, data.DifficultyIncrease)
	b.WriteString(data.Description + "\n")
	b.WriteString(dimStyle.Render("why: "+data.Rationale) + "\n")

	switch {
	case data.Completed:
		b.WriteString("\ncompleted")
	case data.Reflecting:
		b.WriteString("\nwhat did it teach you?\n" + data.InputView)
	default:
		b.WriteString("\nactions: [x]complete [g]generate")
	}
	return strings.TrimSpace(b.String())
}

func RenderInsightsPanel(data InsightsData) string {
	var b strings.Builder
	b.WriteString("insights:\n")
	fmt.Fprintf(&b, "difficulty: %d (%s)\n\n", data.Difficulty, data.Tier)
	b.WriteString(data.Accountability + "\n")

	if len(data.Themes) > 0 {
		b.WriteString("\nrecurring themes: " + strings.Join(data.Themes, ", ") + "\n")
	}
	b.WriteString("\n" + RenderMarkdown("*"+data.WeeklyPrompt+"*"))
	return strings.TrimSpace(b.String())
}

func RenderTranscript(lines []ChatLineData) string {
	var b strings.Builder
	for _, line := range lines {
		if line.Role == "mentee" {
			b.WriteString("you: " + line.Text + "\n")
			continue
		}
		b.WriteString(RenderMarkdown(line.Text) + "\n")
	}
	return strings.TrimSpace(b.String())
}

func RenderMentorPanel(data MentorData) string {
	var b strings.Builder
	fmt.Fprintf(&b, "mentor — %s:\n", data.MentorName)
	b.WriteString(data.TranscriptView + "\n")
	if data.SpinnerView != "" {
		b.WriteString(data.SpinnerView + " thinking...\n")
	}
	b.WriteString(data.InputView)
	return strings.TrimSpace(b.String())
}

func RenderSidePanel(data SideData) string {
	var b strings.Builder
	b.WriteString("goal:\n")
	if data.Goal == "" {
		b.WriteString(dimStyle.Render("(not set)") + "\n")
	} else {
		b.WriteString(data.Goal + "\n")
	}
	fmt.Fprintf(&b, "\ndifficulty: %d (%s)\n", data.Difficulty, data.Tier)

	if len(data.Reminders) > 0 {
		b.WriteString("\nreflections due:\n")
		for _, reminder := range data.Reminders {
			b.WriteString("- " + reminder + "\n")
		}
	}
	return strings.TrimSpace(b.String())
}

func RenderHelpPanel(data HelpData) string {
	return strings.Join(data.Bindings, "\n")
}
