package catalog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/YashSadhu/mentme/internal/model"
)

func TestDefaultCatalogLoads(t *testing.T) {
	c, err := Default()
	if err != nil {
		t.Fatalf("Default() error: %v", err)
	}
	if len(c.Challenges) != 3 {
		t.Fatalf("default challenge templates = %d, want 3", len(c.Challenges))
	}
	if len(c.WeeklyPrompts) != 7 {
		t.Fatalf("default weekly prompts = %d, want 7", len(c.WeeklyPrompts))
	}
	if len(c.ThemeVocabulary) != 7 {
		t.Fatalf("default theme vocabulary = %d, want 7", len(c.ThemeVocabulary))
	}
	for _, tier := range []model.Tier{model.TierEasy, model.TierMedium, model.TierHard} {
		if len(c.TemplatesFor(tier)) == 0 {
			t.Fatalf("tier %q has no templates", tier)
		}
	}
}

func TestTemplatesForUnknownTierFallsBackToMedium(t *testing.T) {
	c, err := Default()
	if err != nil {
		t.Fatalf("Default() error: %v", err)
	}
	got := c.TemplatesFor(model.Tier("impossible"))
	if len(got) != len(c.Tiers.Medium) {
		t.Fatalf("unknown tier returned %d templates, want medium's %d", len(got), len(c.Tiers.Medium))
	}
}

func TestLoadEmptyPathUsesDefaults(t *testing.T) {
	c, err := Load("")
	if err != nil {
		t.Fatalf("Load(\"\") error: %v", err)
	}
	if len(c.Tiers.Easy) == 0 {
		t.Fatal("expected embedded defaults")
	}
}

func TestLoadUserFileOverridesDefaults(t *testing.T) {
	custom := `
tiers:
  easy:
    - {title: Hum a scale, description: Hum 5 scales slowly., type: practice, estimated_minutes: 5, goal_category: music}
  medium:
    - {title: Record a take, description: Record 10 minutes of playing., type: creation, estimated_minutes: 10, goal_category: music}
  hard:
    - {title: Transcribe a solo, description: Transcribe 16 bars by ear., type: analysis, estimated_minutes: 40, goal_category: music}
challenges:
  - {title: Open mic, description: Play one song in public., rationale: Stage pressure builds tolerance., difficulty_increase: 50}
weekly_prompts:
  - What did the instrument teach you this week?
theme_vocabulary:
  - rhythm
`
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	if err := os.WriteFile(path, []byte(custom), 0o644); err != nil {
		t.Fatalf("write custom catalog: %v", err)
	}

	c, err := Load(path)
	if err != nil {
		t.Fatalf("Load(%s) error: %v", path, err)
	}
	if c.Tiers.Easy[0].Title != "Hum a scale" {
		t.Fatalf("custom easy template not loaded: %+v", c.Tiers.Easy[0])
	}
	if len(c.Challenges) != 1 || c.Challenges[0].DifficultyIncrease != 50 {
		t.Fatalf("custom challenge not loaded: %+v", c.Challenges)
	}
}

func TestLoadRejectsInvalidCatalog(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	if err := os.WriteFile(path, []byte("tiers:\n  easy: []\n"), 0o644); err != nil {
		t.Fatalf("write invalid catalog: %v", err)
	}
	if _, err := Load(path); err == nil {
		t.Fatal("expected validation error for empty tiers")
	}
}

func TestLoadRejectsBadTemplateType(t *testing.T) {
	custom := `
tiers:
  easy:
    - {title: A, description: B, type: levitation, estimated_minutes: 5, goal_category: c}
  medium:
    - {title: A, description: B, type: reading, estimated_minutes: 5, goal_category: c}
  hard:
    - {title: A, description: B, type: reading, estimated_minutes: 5, goal_category: c}
challenges:
  - {title: A, description: B, rationale: C, difficulty_increase: 10}
weekly_prompts: [p]
theme_vocabulary: [t]
`
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	if err := os.WriteFile(path, []byte(custom), 0o644); err != nil {
		t.Fatalf("write catalog: %v", err)
	}
	if _, err := Load(path); err == nil {
		t.Fatal("expected error for invalid task type")
	}
}
