package canopy

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"
)

func TestParseConfigKeepsDefaults(t *testing.T) {
	cfg, err := ParseConfig([]byte("gravity: 0\ntie_break: skip\ndebug: true\n"))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Gravity != 0 {
		t.Errorf("Gravity = %v, want 0", cfg.Gravity)
	}
	if cfg.TieBreak != TieBreakSkip || !cfg.Debug {
		t.Errorf("TieBreak = %v, Debug = %v; want skip, true", cfg.TieBreak, cfg.Debug)
	}
	if cfg.Width != 800 || cfg.Drag != 0.1 || cfg.RestDamping != 0.97 {
		t.Errorf("omitted keys lost defaults: %+v", cfg)
	}
}

func TestParseConfigErrors(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		want string
	}{
		{"malformed", "width: [", "parsing config"},
		{"tie break", "tie_break: random", "invalid tie_break"},
		{"negative drag", "drag: -1", "drag must be non-negative"},
		{"rest damping", "rest_damping: 1.5", "rest_damping"},
		{"viewport", "width: -10", "viewport"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseConfig([]byte(tt.yaml))
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("err = %v, want containing %q", err, tt.want)
			}
		})
	}
}

func TestLoadConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "canopy.yaml")
	if err := os.WriteFile(path, []byte("width: 320\nheight: 240\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := LoadConfigFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Width != 320 || cfg.Height != 240 {
		t.Errorf("viewport = %vx%v, want 320x240", cfg.Width, cfg.Height)
	}

	if _, err := LoadConfigFile(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestMergeKeepsBase(t *testing.T) {
	base := DefaultConfig()
	base.Width, base.Height = 640, 480
	base.Gravity = 300

	cfg, err := base.Merge([]byte("drag: 0.5\n"))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Width != 640 || cfg.Height != 480 || cfg.Gravity != 300 {
		t.Errorf("base values lost: %vx%v gravity %v", cfg.Width, cfg.Height, cfg.Gravity)
	}
	if cfg.Drag != 0.5 {
		t.Errorf("Drag = %v, want 0.5", cfg.Drag)
	}
	if base.Drag != 0.1 {
		t.Errorf("base modified: Drag = %v", base.Drag)
	}
}

func TestConfigMarshalTieBreakByName(t *testing.T) {
	cfg := DefaultConfig()
	cfg.TieBreak = TieBreakSkip
	out, err := yaml.Marshal(cfg)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(out), "tie_break: skip") {
		t.Errorf("marshalled config missing tie_break name:\n%s", out)
	}
	back, err := ParseConfig(out)
	if err != nil {
		t.Fatal(err)
	}
	if back.TieBreak != TieBreakSkip || back.Width != cfg.Width {
		t.Errorf("round trip = %+v", back)
	}
}
