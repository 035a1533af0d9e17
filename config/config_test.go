package config

import "testing"

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.MongoDB.URI == "" {
		t.Fatal("MongoDB URI default missing")
	}
	if cfg.MongoDB.Database != "chatbet" {
		t.Fatalf("unexpected default database: %q", cfg.MongoDB.Database)
	}
	if cfg.LogLevel != "info" {
		t.Fatalf("unexpected default log level: %q", cfg.LogLevel)
	}
}
