package cmd

import (
	"fmt"
	"math/rand"

	"github.com/spf13/cobra"

	"github.com/kilianp07/mentormatch/config"
	"github.com/kilianp07/mentormatch/core/model"
	"github.com/kilianp07/mentormatch/core/session"
	"github.com/kilianp07/mentormatch/internal/toygen"
)

var cfgPath string

var rootCmd = &cobra.Command{
	Use:   "mentormatch",
	Short: "Mentor/startup session scheduling engine",
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgPath, "config", "c", "", "configuration file (json or yaml)")
}

// Execute runs the CLI.
func Execute() error { return rootCmd.Execute() }

func loadConfig() (*config.Config, error) {
	if cfgPath == "" {
		return config.Default(), nil
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return cfg, nil
}

// toySession builds the demo population from the toy settings.
func toySession(cfg *config.Config) ([]model.Mentor, []model.Startup, model.FitMatrix, error) {
	rng := rand.New(rand.NewSource(cfg.Toy.Seed))
	return toygen.Generate(cfg.Toy, cfg.Session, rng)
}

func roundsLabel(cfg session.Config) string {
	return fmt.Sprintf("rounds=%d OS=%v OC=%v", cfg.Rounds, cfg.OSRounds, cfg.OCRounds)
}
