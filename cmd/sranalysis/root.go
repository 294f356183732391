package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"github.com/uyouii/sr-analysis/config"
	"github.com/uyouii/sr-analysis/synthetic"
)

var configPath string

func Execute(ctx context.Context) error {
	root := &cobra.Command{
		Use:   "sranalysis",
		Short: "Structural rate event detection and price level clustering",
	}
	root.PersistentFlags().StringVar(&configPath, "config", "", "yaml config file, defaults apply when empty")
	root.AddCommand(detectCmd(ctx))
	root.AddCommand(levelsCmd(ctx))
	root.AddCommand(generateCmd(ctx))
	return root.ExecuteContext(ctx)
}

func loadConfig() (*config.Config, error) {
	if configPath == "" {
		return config.Default()
	}
	return config.Load(configPath)
}

func syntheticParams(cfg *config.SyntheticConfig) (synthetic.Params, error) {
	start, err := cfg.Start()
	if err != nil {
		return synthetic.Params{}, err
	}
	return synthetic.Params{
		NumPoints:      cfg.NumPoints,
		Seed:           cfg.Seed,
		Start:          start,
		Interval:       cfg.Interval(),
		NoiseSigma:     cfg.NoiseSigma,
		DriftScale:     cfg.DriftScale,
		ShiftMagnitude: cfg.ShiftMagnitude,
		ShiftAt:        cfg.ShiftAt,
	}, nil
}

func outputPath(dir, name, stamp, ext string) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create output dir: %w", err)
	}
	return filepath.Join(dir, fmt.Sprintf("%s_%s.%s", name, stamp, ext)), nil
}

func runStamp() string {
	return time.Now().Format("20060102_150405")
}
