package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/kilianp07/mentormatch/core/session"
	"github.com/kilianp07/mentormatch/internal/toygen"
)

// SolverConfig tunes the branch-and-bound backend.
type SolverConfig struct {
	MaxNodes   int `json:"max_nodes" yaml:"max_nodes"`
	MaxSeconds int `json:"max_seconds" yaml:"max_seconds"`
}

// Config is the full configuration of the scheduling CLI.
type Config struct {
	Session session.Config `json:"session" yaml:"session"`
	Solver  SolverConfig   `json:"solver" yaml:"solver"`
	Toy     toygen.Config  `json:"toy" yaml:"toy"`
}

// Load reads the configuration from a JSON or YAML file, with optional
// environment overrides using the MM_ prefix (MM_SESSION__ROUNDS=4 sets
// session.rounds).
func Load(path string) (*Config, error) {
	k := koanf.New(".")
	ext := strings.ToLower(filepath.Ext(path))
	var parser koanf.Parser
	switch ext {
	case ".yaml", ".yml":
		parser = yaml.Parser()
	case ".json":
		parser = json.Parser()
	default:
		return nil, fmt.Errorf("unsupported config format: %s", ext)
	}
	if err := k.Load(file.Provider(path), parser); err != nil {
		return nil, err
	}
	if err := k.Load(env.Provider("MM_", ".", func(s string) string {
		s = strings.TrimPrefix(strings.ToLower(s), "mm_")
		return strings.ReplaceAll(s, "__", ".")
	}), nil); err != nil {
		return nil, err
	}
	var cfg Config
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "json"}); err != nil {
		return nil, err
	}
	cfg.Session.SetDefaults()
	cfg.Toy.SetDefaults()
	if err := cfg.Session.Validate(); err != nil {
		return nil, err
	}
	if err := cfg.Toy.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Default returns the configuration used when no file is supplied.
func Default() *Config {
	cfg := &Config{}
	cfg.Session.SetDefaults()
	cfg.Toy.SetDefaults()
	return cfg
}
