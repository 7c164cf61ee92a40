// Package catalog holds the static template data the engine draws from:
// per-tier daily-task templates, stretch-challenge templates, weekly
// reflective prompts and the recurring-theme vocabulary. The data is
// configuration, not code: defaults are embedded, and a user-supplied YAML
// file swaps the whole set without touching engine logic.
package catalog

import (
	_ "embed"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/YashSadhu/mentme/internal/model"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// TaskTemplate fixes everything about a generated daily task except its date
// and mood adjustment.
type TaskTemplate struct {
	Title            string         `yaml:"title"`
	Description      string         `yaml:"description"`
	Type             model.TaskType `yaml:"type"`
	EstimatedMinutes int            `yaml:"estimated_minutes"`
	GoalCategory     string         `yaml:"goal_category"`
}

// ChallengeTemplate fixes a weekly stretch challenge.
type ChallengeTemplate struct {
	Title              string `yaml:"title"`
	Description        string `yaml:"description"`
	Rationale          string `yaml:"rationale"`
	DifficultyIncrease int    `yaml:"difficulty_increase"`
}

type tierSet struct {
	Easy   []TaskTemplate `yaml:"easy"`
	Medium []TaskTemplate `yaml:"medium"`
	Hard   []TaskTemplate `yaml:"hard"`
}

type Catalog struct {
	Tiers           tierSet             `yaml:"tiers"`
	Challenges      []ChallengeTemplate `yaml:"challenges"`
	WeeklyPrompts   []string            `yaml:"weekly_prompts"`
	ThemeVocabulary []string            `yaml:"theme_vocabulary"`
}

// TemplatesFor returns the task templates for a tier. Unknown tiers fall back
// to medium so a corrupted difficulty score can never strand generation.
func (c Catalog) TemplatesFor(tier model.Tier) []TaskTemplate {
	switch tier {
	case model.TierEasy:
		return c.Tiers.Easy
	case model.TierHard:
		return c.Tiers.Hard
	default:
		return c.Tiers.Medium
	}
}

func (c Catalog) Validate() error {
	if len(c.Tiers.Easy) == 0 || len(c.Tiers.Medium) == 0 || len(c.Tiers.Hard) == 0 {
		return errors.New("catalog: every tier needs at least one task template")
	}
	for _, templates := range [][]TaskTemplate{c.Tiers.Easy, c.Tiers.Medium, c.Tiers.Hard} {
		for _, tpl := range templates {
			if tpl.Title == "" || tpl.Description == "" {
				return fmt.Errorf("catalog: task template %q needs title and description", tpl.Title)
			}
			if !tpl.Type.IsValid() {
				return fmt.Errorf("catalog: task template %q: %w: %q", tpl.Title, model.ErrInvalidTaskType, tpl.Type)
			}
			if tpl.EstimatedMinutes <= 0 {
				return fmt.Errorf("catalog: task template %q needs positive estimated minutes", tpl.Title)
			}
		}
	}
	if len(c.Challenges) == 0 {
		return errors.New("catalog: at least one challenge template is required")
	}
	for _, ch := range c.Challenges {
		if ch.Title == "" || ch.Description == "" || ch.Rationale == "" {
			return fmt.Errorf("catalog: challenge template %q needs title, description and rationale", ch.Title)
		}
	}
	if len(c.WeeklyPrompts) == 0 {
		return errors.New("catalog: at least one weekly prompt is required")
	}
	if len(c.ThemeVocabulary) == 0 {
		return errors.New("catalog: theme vocabulary must not be empty")
	}
	return nil
}

// Default returns the embedded catalog.
func Default() (Catalog, error) {
	return parse(defaultsYAML)
}

// Load reads a catalog from a user-supplied YAML file. An empty path returns
// the embedded defaults.
func Load(path string) (Catalog, error) {
	if path == "" {
		return Default()
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return Catalog{}, fmt.Errorf("catalog: read %s: %w", path, err)
	}
	return parse(raw)
}

func parse(raw []byte) (Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(raw, &c); err != nil {
		return Catalog{}, fmt.Errorf("catalog: parse: %w", err)
	}
	if err := c.Validate(); err != nil {
		return Catalog{}, err
	}
	return c, nil
}
