package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadFromFile(t *testing.T) {
	content := `
storage:
  path: /tmp/custom.db
  namespace: sadhu
mentor:
  endpoint: https://chat.example.com/v1
  timeout_seconds: 30
reflection:
  hour: 21
`
	path := filepath.Join(t.TempDir(), "mentme.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Storage.Path != "/tmp/custom.db" || cfg.Storage.Namespace != "sadhu" {
		t.Fatalf("storage config = %+v", cfg.Storage)
	}
	if cfg.Mentor.Endpoint != "https://chat.example.com/v1" || cfg.Mentor.TimeoutSeconds != 30 {
		t.Fatalf("mentor config = %+v", cfg.Mentor)
	}
	if cfg.Reflection.Hour != 21 {
		t.Fatalf("reflection hour = %d, want 21", cfg.Reflection.Hour)
	}
}

func TestLoadFromFileDefaultsFillGaps(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mentme.yaml")
	if err := os.WriteFile(path, []byte("storage:\n  namespace: solo\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Storage.Namespace != "solo" {
		t.Fatalf("namespace = %q", cfg.Storage.Namespace)
	}
	if cfg.Storage.Path == "" {
		t.Fatal("default storage path missing")
	}
	if cfg.Reflection.Hour != 19 {
		t.Fatalf("default reflection hour = %d, want 19", cfg.Reflection.Hour)
	}
	if cfg.Mentor.TimeoutSeconds != 120 {
		t.Fatalf("default mentor timeout = %d, want 120", cfg.Mentor.TimeoutSeconds)
	}
}

func TestLoadFromFileRejectsBadReflectionHour(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mentme.yaml")
	if err := os.WriteFile(path, []byte("reflection:\n  hour: 31\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, err := LoadFrom(path); err == nil {
		t.Fatal("expected error for out-of-range reflection hour")
	}
}
