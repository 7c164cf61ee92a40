package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/YashSadhu/mentme/internal/catalog"
	"github.com/YashSadhu/mentme/internal/config"
	"github.com/YashSadhu/mentme/internal/engine"
	"github.com/YashSadhu/mentme/internal/mentor"
	"github.com/YashSadhu/mentme/internal/scheduler"
	"github.com/YashSadhu/mentme/internal/storage"
	"github.com/YashSadhu/mentme/internal/update"
)

var defaultPersona = mentor.Persona{
	Name:   "Marcus Aurelius",
	Era:    "121-180 AD",
	Domain: "stoic practice and self-discipline",
	Style:  "calmly and concretely, in short paragraphs",
	Principles: []string{
		"The impediment to action advances action.",
		"Ask what this day requires, not what it owes you.",
	},
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	cat, err := catalog.Load(cfg.Catalog.Path)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(cfg.Storage.Path), 0o755); err != nil {
		return fmt.Errorf("create storage dir: %w", err)
	}
	store, err := storage.OpenSQLite(cfg.Storage.Path, cfg.Storage.Namespace)
	if err != nil {
		return err
	}
	defer store.Close()

	sched := scheduler.NewEngine(16)
	sched.Start()
	defer sched.Stop()

	eng, err := engine.New(context.Background(), store, cat,
		engine.WithScheduler(sched),
		engine.WithReflectionHour(cfg.Reflection.Hour),
	)
	if err != nil {
		return err
	}

	chat := mentor.NewClient(cfg.Mentor.Endpoint, cfg.Mentor.APIKey,
		mentor.WithHTTPClient(&http.Client{Timeout: time.Duration(cfg.Mentor.TimeoutSeconds) * time.Second}),
	)

	model := update.NewModel(update.Deps{
		Engine:    eng,
		Mentor:    chat,
		Persona:   defaultPersona,
		Tuning:    mentor.Tuning{Warmth: 60, Directness: 70, Depth: 60},
		Scheduler: sched,
	})

	program := tea.NewProgram(model)
	_, err = program.Run()
	return err
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "mentme failed: %v\n", err)
		os.Exit(1)
	}
}
