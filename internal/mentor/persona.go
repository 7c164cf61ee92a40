// Package mentor talks to the external chat endpoint that produces mentor
// responses. The endpoint is a black box: one POST per conversational turn,
// answered either with a single JSON object or an event-stream of partial
// chunks. This package assembles prompts from persona and tuning and handles
// both response modes.
package mentor

import (
	"fmt"
	"strings"
)

// Persona describes a simulated mentor.
type Persona struct {
	Name       string   `json:"name"`
	Era        string   `json:"era,omitempty"`
	Domain     string   `json:"domain"`
	Style      string   `json:"style"`
	Principles []string `json:"principles,omitempty"`
}

// Tuning holds the fine-tuning sliders, each 0-100.
type Tuning struct {
	Warmth     int `json:"warmth"`
	Directness int `json:"directness"`
	Depth      int `json:"depth"`
}

func clampSlider(v int) int {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

// Normalize clamps every slider into range.
func (t Tuning) Normalize() Tuning {
	return Tuning{
		Warmth:     clampSlider(t.Warmth),
		Directness: clampSlider(t.Directness),
		Depth:      clampSlider(t.Depth),
	}
}

// BuildPrompt assembles the single prompt string sent upstream: persona
// framing, slider guidance, optional tone hint from the latest mood
// check-in, then the user's message.
func BuildPrompt(p Persona, t Tuning, tone, message string) string {
	t = t.Normalize()

	var b strings.Builder
	fmt.Fprintf(&b, "You are %s", p.Name)
	if p.Era != "" {
		fmt.Fprintf(&b, " (%s)", p.Era)
	}
	fmt.Fprintf(&b, ", a mentor in %s. Speak %s.\n", p.Domain, p.Style)
	for _, principle := range p.Principles {
		fmt.Fprintf(&b, "- %s\n", principle)
	}
	fmt.Fprintf(&b, "Warmth %d/100, directness %d/100, depth %d/100.\n", t.Warmth, t.Directness, t.Depth)
	if tone != "" {
		fmt.Fprintf(&b, "Respond in a %s tone.\n", tone)
	}
	b.WriteString("\nMentee: ")
	b.WriteString(message)
	return b.String()
}
