package engine

import (
	"fmt"
	"os"
	"time"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/yourusername/bridgeengine/pkg/bidding"
	"github.com/yourusername/bridgeengine/pkg/play"
)

// Config is the engine profile, loadable from an HCL file. Every block is
// optional; missing blocks keep their defaults.
type Config struct {
	Engine       *EngineConfig     `hcl:"engine,block"`
	Difficulties []DifficultyLevel `hcl:"difficulty,block"`
	Slam         *SlamConfig       `hcl:"slam,block"`
	Solver       *SolverConfig     `hcl:"solver,block"`
	Server       *ServerConfig     `hcl:"server,block"`
}

// EngineConfig holds general engine settings.
type EngineConfig struct {
	LogLevel  string `hcl:"log_level,optional"`
	CacheSize int    `hcl:"cache_size,optional"`
}

// DifficultyLevel tunes one named difficulty tier.
type DifficultyLevel struct {
	Name      string `hcl:"name,label"`
	Depth     int    `hcl:"depth"`
	UseOracle bool   `hcl:"use_oracle,optional"`
}

// SlamConfig carries the combined-point cutoffs for slam bidding. The
// values are empirically tuned, which is why they live in config rather
// than code.
type SlamConfig struct {
	SmallSlamAllAces   int `hcl:"small_slam_all_aces,optional"`
	SmallSlamOneAceOut int `hcl:"small_slam_one_ace_out,optional"`
	GrandSlam          int `hcl:"grand_slam,optional"`
}

// SolverConfig points the expert tier at an external double-dummy oracle.
// An empty address disables the oracle; expert then uses its deepest
// search.
type SolverConfig struct {
	Addr      string `hcl:"addr,optional"`
	TimeoutMS int    `hcl:"timeout_ms,optional"`
}

// ServerConfig sets API-server defaults; command-line flags take
// precedence over it.
type ServerConfig struct {
	Host           string `hcl:"host,optional"`
	Port           int    `hcl:"port,optional"`
	MaxFastWorkers int    `hcl:"max_fast_workers,optional"`
	MaxSlowWorkers int    `hcl:"max_slow_workers,optional"`
}

// DefaultConfig returns the built-in profile.
func DefaultConfig() *Config {
	slam := bidding.DefaultSlamThresholds()
	return &Config{
		Engine: &EngineConfig{
			LogLevel:  "info",
			CacheSize: play.DefaultCacheSize,
		},
		Difficulties: []DifficultyLevel{
			{Name: play.Beginner.String(), Depth: play.Beginner.Depth()},
			{Name: play.Intermediate.String(), Depth: play.Intermediate.Depth()},
			{Name: play.Advanced.String(), Depth: play.Advanced.Depth()},
			{Name: play.Expert.String(), Depth: play.Expert.Depth(), UseOracle: true},
		},
		Slam: &SlamConfig{
			SmallSlamAllAces:   slam.SmallSlamAllAces,
			SmallSlamOneAceOut: slam.SmallSlamOneAceOut,
			GrandSlam:          slam.GrandSlam,
		},
		Solver: &SolverConfig{TimeoutMS: 3000},
		Server: &ServerConfig{
			Host:           "localhost",
			Port:           8080,
			MaxFastWorkers: 100,
			MaxSlowWorkers: 2,
		},
	}
}

// LoadConfig reads an HCL profile, filling anything unspecified from the
// defaults. A missing file is not an error; the defaults apply.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(path)
	if diags.HasErrors() {
		return nil, fmt.Errorf("parsing config %s: %s", path, diags.Error())
	}

	var loaded Config
	if diags := gohcl.DecodeBody(file.Body, nil, &loaded); diags.HasErrors() {
		return nil, fmt.Errorf("decoding config %s: %s", path, diags.Error())
	}
	cfg.merge(&loaded)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// merge overlays loaded blocks onto the defaults. Difficulty blocks replace
// the default tier of the same name.
func (c *Config) merge(loaded *Config) {
	if loaded.Engine != nil {
		if loaded.Engine.LogLevel != "" {
			c.Engine.LogLevel = loaded.Engine.LogLevel
		}
		if loaded.Engine.CacheSize > 0 {
			c.Engine.CacheSize = loaded.Engine.CacheSize
		}
	}
	for _, d := range loaded.Difficulties {
		replaced := false
		for i := range c.Difficulties {
			if c.Difficulties[i].Name == d.Name {
				c.Difficulties[i] = d
				replaced = true
				break
			}
		}
		if !replaced {
			c.Difficulties = append(c.Difficulties, d)
		}
	}
	if loaded.Slam != nil {
		if loaded.Slam.SmallSlamAllAces > 0 {
			c.Slam.SmallSlamAllAces = loaded.Slam.SmallSlamAllAces
		}
		if loaded.Slam.SmallSlamOneAceOut > 0 {
			c.Slam.SmallSlamOneAceOut = loaded.Slam.SmallSlamOneAceOut
		}
		if loaded.Slam.GrandSlam > 0 {
			c.Slam.GrandSlam = loaded.Slam.GrandSlam
		}
	}
	if loaded.Solver != nil {
		if loaded.Solver.Addr != "" {
			c.Solver.Addr = loaded.Solver.Addr
		}
		if loaded.Solver.TimeoutMS > 0 {
			c.Solver.TimeoutMS = loaded.Solver.TimeoutMS
		}
	}
	if loaded.Server != nil {
		if loaded.Server.Host != "" {
			c.Server.Host = loaded.Server.Host
		}
		if loaded.Server.Port > 0 {
			c.Server.Port = loaded.Server.Port
		}
		if loaded.Server.MaxFastWorkers > 0 {
			c.Server.MaxFastWorkers = loaded.Server.MaxFastWorkers
		}
		if loaded.Server.MaxSlowWorkers > 0 {
			c.Server.MaxSlowWorkers = loaded.Server.MaxSlowWorkers
		}
	}
}

// Validate checks value ranges.
func (c *Config) Validate() error {
	for _, d := range c.Difficulties {
		if _, ok := play.ParseDifficulty(d.Name); !ok {
			return fmt.Errorf("unknown difficulty %q", d.Name)
		}
		if d.Depth < 1 || d.Depth > 13 {
			return fmt.Errorf("difficulty %q: depth %d out of range 1..13", d.Name, d.Depth)
		}
	}
	if c.Slam.SmallSlamAllAces > c.Slam.SmallSlamOneAceOut {
		return fmt.Errorf("slam: small_slam_all_aces %d above small_slam_one_ace_out %d",
			c.Slam.SmallSlamAllAces, c.Slam.SmallSlamOneAceOut)
	}
	if c.Slam.SmallSlamOneAceOut > c.Slam.GrandSlam {
		return fmt.Errorf("slam: small_slam_one_ace_out %d above grand_slam %d",
			c.Slam.SmallSlamOneAceOut, c.Slam.GrandSlam)
	}
	if c.Solver.TimeoutMS < 0 {
		return fmt.Errorf("solver: negative timeout_ms %d", c.Solver.TimeoutMS)
	}
	if c.Server.Port < 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server: port %d out of range", c.Server.Port)
	}
	return nil
}

// depthFor returns the configured depth for a difficulty.
func (c *Config) depthFor(d play.Difficulty) int {
	for _, lvl := range c.Difficulties {
		if lvl.Name == d.String() {
			return lvl.Depth
		}
	}
	return d.Depth()
}

// oracleFor reports whether the tier should consult the oracle.
func (c *Config) oracleFor(d play.Difficulty) bool {
	for _, lvl := range c.Difficulties {
		if lvl.Name == d.String() {
			return lvl.UseOracle
		}
	}
	return d == play.Expert
}

// SlamThresholds converts the slam block for the bidding system.
func (c *Config) SlamThresholds() bidding.SlamThresholds {
	return bidding.SlamThresholds{
		SmallSlamAllAces:   c.Slam.SmallSlamAllAces,
		SmallSlamOneAceOut: c.Slam.SmallSlamOneAceOut,
		GrandSlam:          c.Slam.GrandSlam,
	}
}

// SolverTimeout returns the solver block's timeout as a duration.
func (c *Config) SolverTimeout() time.Duration {
	return time.Duration(c.Solver.TimeoutMS) * time.Millisecond
}
