package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/uyouii/sr-analysis/config"
	"github.com/uyouii/sr-analysis/dataio"
	"github.com/uyouii/sr-analysis/model"
	"github.com/uyouii/sr-analysis/render"
	"github.com/uyouii/sr-analysis/srdetect"
	"github.com/uyouii/sr-analysis/synthetic"
)

func detectCmd(ctx context.Context) *cobra.Command {
	var (
		input     string
		window    int
		threshold float64
		noChart   bool
	)
	cmd := &cobra.Command{
		Use:   "detect",
		Short: "Detect structural rate events in a signal",
		Long: `Flags observations whose rolling z-score against the trailing window
crosses the threshold. Reads a time,signal csv when --input is given and
falls back to a synthetic signal otherwise.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("window") {
				cfg.Detect.Window = window
			}
			if cmd.Flags().Changed("threshold") {
				cfg.Detect.Threshold = threshold
			}

			series, err := loadSignal(input, cfg)
			if err != nil {
				return err
			}
			if err := series.Validate(); err != nil {
				return err
			}

			events, err := srdetect.DetectSREvents(cmd.Context(), series, cfg.Detect.Window, cfg.Detect.Threshold)
			if err != nil {
				return err
			}

			stamp := runStamp()
			eventsPath, err := outputPath(cfg.Output.Dir, "sr_events", stamp, "csv")
			if err != nil {
				return err
			}
			if err := dataio.WriteEventsCSV(eventsPath, events); err != nil {
				return err
			}

			report := &model.Report{
				Labels:      series.Labels,
				GeneratedAt: time.Now().UTC(),
				Events:      events,
			}
			reportPath, err := outputPath(cfg.Output.Dir, "sr_report", stamp, "json")
			if err != nil {
				return err
			}
			if err := dataio.WriteReportJSON(reportPath, report); err != nil {
				return err
			}

			if !noChart {
				chartPath, err := outputPath(cfg.Output.Dir, "sr_detection", stamp, "png")
				if err != nil {
					return err
				}
				if err := render.SignalChart(series, events, chartPath); err != nil {
					return err
				}
				fmt.Printf("chart: %s\n", chartPath)
			}

			fmt.Printf("detected %d sr events over %d points\n", len(events), series.Len())
			fmt.Printf("events: %s\nreport: %s\n", eventsPath, reportPath)
			return nil
		},
	}
	cmd.Flags().StringVar(&input, "input", "", "csv file with time and signal columns")
	cmd.Flags().IntVar(&window, "window", srdetect.DefaultWindow, "rolling window size")
	cmd.Flags().Float64Var(&threshold, "threshold", srdetect.DefaultThreshold, "z-score threshold")
	cmd.Flags().BoolVar(&noChart, "no-chart", false, "skip writing the chart png")
	return cmd
}

func loadSignal(input string, cfg *config.Config) (*model.TimeSeries, error) {
	if input != "" {
		return dataio.ReadSignalCSV(input)
	}
	params, err := syntheticParams(&cfg.Synthetic)
	if err != nil {
		return nil, err
	}
	return synthetic.GenerateSignal(params)
}
