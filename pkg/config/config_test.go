package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeTemp(t *testing.T, content string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return p
}

func TestLoad(t *testing.T) {
	p := writeTemp(t, `
server:
  addr: ":9090"
  cors_origin: "https://example.com"
data:
  path_set: /data/trails.bin
  geojson: /data/extras.geojson
guidance:
  min_update_interval_ms: 100
  min_angle_change_deg: 3
  hide_distance_m: 15
  walking_speed_mps: 1.4
  auto_activate: true
  auto_activate_m: 50
`)

	cfg, err := Load(p)
	if err != nil {
		t.Fatal(err)
	}

	if cfg.Server.Addr != ":9090" {
		t.Errorf("addr = %q", cfg.Server.Addr)
	}
	if cfg.Server.CORSOrigin != "https://example.com" {
		t.Errorf("cors = %q", cfg.Server.CORSOrigin)
	}
	if cfg.Data.PathSet != "/data/trails.bin" {
		t.Errorf("path_set = %q", cfg.Data.PathSet)
	}

	g := cfg.Guidance.ToGuidance()
	if g.MinUpdateInterval != 100*time.Millisecond {
		t.Errorf("MinUpdateInterval = %v", g.MinUpdateInterval)
	}
	if g.MinAngleChangeDeg != 3 {
		t.Errorf("MinAngleChangeDeg = %v", g.MinAngleChangeDeg)
	}
	if g.HideDistanceMeters != 15 {
		t.Errorf("HideDistanceMeters = %v", g.HideDistanceMeters)
	}
	if !g.AutoActivate || g.AutoActivateMeters != 50 {
		t.Errorf("auto activate = %v/%v", g.AutoActivate, g.AutoActivateMeters)
	}
}

func TestLoadDefaults(t *testing.T) {
	p := writeTemp(t, `data: {path_set: trails.bin}`)

	cfg, err := Load(p)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Server.Addr != ":8080" {
		t.Errorf("default addr = %q", cfg.Server.Addr)
	}

	// Unset tuning knobs pass through as zero and pick up the guidance
	// defaults downstream.
	g := cfg.Guidance.ToGuidance()
	if g.MinUpdateInterval != 0 {
		t.Errorf("MinUpdateInterval = %v, want 0 (defaulted later)", g.MinUpdateInterval)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load("/nonexistent/config.yaml"); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestLoadMalformed(t *testing.T) {
	p := writeTemp(t, "server: [not a mapping")
	if _, err := Load(p); err == nil {
		t.Error("expected error for malformed YAML")
	}
}
