package config

import "testing"

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Addr == "" || cfg.DBPath == "" {
		t.Fatal("defaults not applied")
	}
	if cfg.MaxRounds != 8 {
		t.Errorf("MaxRounds = %d, want 8", cfg.MaxRounds)
	}
	if cfg.EventProbability != 0.25 {
		t.Errorf("EventProbability = %g, want 0.25", cfg.EventProbability)
	}
}

func TestLoadRejectsBadValues(t *testing.T) {
	t.Setenv("TOWNHALL_MAX_ROUNDS", "0")
	if _, err := Load(); err == nil {
		t.Fatal("expected error for zero max rounds")
	}

	t.Setenv("TOWNHALL_MAX_ROUNDS", "8")
	t.Setenv("TOWNHALL_EVENT_PROBABILITY", "1.5")
	if _, err := Load(); err == nil {
		t.Fatal("expected error for out-of-range probability")
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("TOWNHALL_ADDR", ":9999")
	t.Setenv("TOWNHALL_MAX_ROUNDS", "12")

	cfg, err := Load()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Addr != ":9999" {
		t.Errorf("Addr = %s, want :9999", cfg.Addr)
	}
	if cfg.MaxRounds != 12 {
		t.Errorf("MaxRounds = %d, want 12", cfg.MaxRounds)
	}
}
