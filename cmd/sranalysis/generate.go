package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/uyouii/sr-analysis/dataio"
	"github.com/uyouii/sr-analysis/synthetic"
)

func generateCmd(ctx context.Context) *cobra.Command {
	var (
		kind   string
		output string
	)
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a synthetic dataset csv",
		Long: `Writes a reproducible synthetic dataset for trying out the detect and
levels commands. The signal kind writes a time,signal csv, the candles kind
writes a time,open,high,low,close csv.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			params, err := syntheticParams(&cfg.Synthetic)
			if err != nil {
				return err
			}

			if output == "" {
				output, err = outputPath(cfg.Output.Dir, kind, runStamp(), "csv")
				if err != nil {
					return err
				}
			}

			switch kind {
			case "signal":
				series, err := synthetic.GenerateSignal(params)
				if err != nil {
					return err
				}
				if err := dataio.WriteSignalCSV(output, series); err != nil {
					return err
				}
				fmt.Printf("wrote %d signal points to %s\n", series.Len(), output)
			case "candles":
				series, err := synthetic.GenerateCandles(params)
				if err != nil {
					return err
				}
				if err := dataio.WriteCandlesCSV(output, series); err != nil {
					return err
				}
				fmt.Printf("wrote %d candles to %s\n", series.Len(), output)
			default:
				return fmt.Errorf("unsupported kind: %s", kind)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&kind, "kind", "signal", "dataset kind: signal|candles")
	cmd.Flags().StringVar(&output, "output", "", "output csv path, derived from the output dir when empty")
	return cmd
}
