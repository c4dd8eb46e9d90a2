package engine

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/yourusername/bridgeengine/pkg/play"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
	if cfg.Slam.SmallSlamAllAces != 33 || cfg.Slam.GrandSlam != 37 {
		t.Errorf("slam defaults = %+v", cfg.Slam)
	}
	if !cfg.oracleFor(play.Expert) {
		t.Error("expert should use the oracle by default")
	}
	if cfg.oracleFor(play.Beginner) {
		t.Error("beginner should not use the oracle")
	}
	if cfg.depthFor(play.Beginner) >= cfg.depthFor(play.Expert) {
		t.Error("depth must grow with difficulty")
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "absent.hcl"))
	if err != nil {
		t.Fatalf("missing file should use defaults: %v", err)
	}
	if cfg.Slam.SmallSlamAllAces != 33 {
		t.Errorf("slam defaults not applied: %+v", cfg.Slam)
	}
}

func TestLoadConfigMerges(t *testing.T) {
	path := filepath.Join(t.TempDir(), "engine.hcl")
	content := `
engine {
  log_level = "debug"
}

difficulty "advanced" {
  depth = 5
}

slam {
  grand_slam = 39
}

solver {
  addr       = "127.0.0.1:7300"
  timeout_ms = 500
}

server {
  port = 9090
}
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.Engine.LogLevel != "debug" {
		t.Errorf("log_level = %q", cfg.Engine.LogLevel)
	}
	if cfg.depthFor(play.Advanced) != 5 {
		t.Errorf("advanced depth = %d, want 5", cfg.depthFor(play.Advanced))
	}
	// Unmentioned tiers keep their defaults.
	if cfg.depthFor(play.Beginner) != play.Beginner.Depth() {
		t.Errorf("beginner depth changed to %d", cfg.depthFor(play.Beginner))
	}
	if cfg.Slam.GrandSlam != 39 || cfg.Slam.SmallSlamAllAces != 33 {
		t.Errorf("slam merge = %+v", cfg.Slam)
	}
	if cfg.Solver.Addr != "127.0.0.1:7300" || cfg.SolverTimeout().Milliseconds() != 500 {
		t.Errorf("solver merge = %+v", cfg.Solver)
	}
	if cfg.Server.Port != 9090 || cfg.Server.Host != "localhost" {
		t.Errorf("server merge = %+v", cfg.Server)
	}
}

func TestConfigValidate(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Difficulties = append(cfg.Difficulties, DifficultyLevel{Name: "nightmare", Depth: 3})
	if err := cfg.Validate(); err == nil {
		t.Error("unknown difficulty name should not validate")
	}

	cfg = DefaultConfig()
	cfg.Slam.GrandSlam = 30
	if err := cfg.Validate(); err == nil {
		t.Error("grand slam cutoff below small slam should not validate")
	}

	cfg = DefaultConfig()
	cfg.Difficulties[0].Depth = 0
	if err := cfg.Validate(); err == nil {
		t.Error("zero depth should not validate")
	}

	cfg = DefaultConfig()
	cfg.Server.Port = 70000
	if err := cfg.Validate(); err == nil {
		t.Error("out-of-range port should not validate")
	}
}
