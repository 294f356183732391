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
	"github.com/uyouii/sr-analysis/srlevel"
	"github.com/uyouii/sr-analysis/synthetic"
)

func levelsCmd(ctx context.Context) *cobra.Command {
	var (
		input      string
		order      int
		trendOrder int
		atrPeriod  int
		atrMult    float64
		collapse   bool
		noChart    bool
	)
	cmd := &cobra.Command{
		Use:   "levels",
		Short: "Cluster pivot prices into levels and fit trendlines",
		Long: `Finds the local extrema of the low and high price tracks, clusters the
pivot prices into levels with an ATR sized tolerance and fits a trendline
through the last two pivots of each kind. Reads a time,open,high,low,close
csv when --input is given and falls back to synthetic candles otherwise.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("order") {
				cfg.Levels.Order = order
			}
			if cmd.Flags().Changed("trend-order") {
				cfg.Levels.TrendOrder = trendOrder
			}
			if cmd.Flags().Changed("atr-period") {
				cfg.Levels.ATRPeriod = atrPeriod
			}
			if cmd.Flags().Changed("atr-multiplier") {
				cfg.Levels.ATRMultiplier = atrMult
			}
			if cmd.Flags().Changed("collapse-plateaus") {
				cfg.Levels.CollapsePlateaus = collapse
			}

			series, err := loadCandles(input, cfg)
			if err != nil {
				return err
			}
			if err := series.Validate(); err != nil {
				return err
			}

			levels, err := srlevel.CalculateLevels(cmd.Context(), series, srlevel.LevelParams{
				Order:            cfg.Levels.Order,
				ATRPeriod:        cfg.Levels.ATRPeriod,
				ATRMultiplier:    cfg.Levels.ATRMultiplier,
				CollapsePlateaus: cfg.Levels.CollapsePlateaus,
			})
			if err != nil {
				return err
			}
			trendlines, err := srlevel.CalculateTrendlines(cmd.Context(), series, srlevel.TrendlineParams{
				Order:            cfg.Levels.TrendOrder,
				CollapsePlateaus: cfg.Levels.CollapsePlateaus,
			})
			if err != nil {
				return err
			}

			report := &model.Report{
				Labels:      series.Labels,
				GeneratedAt: time.Now().UTC(),
				Levels:      levels,
				Trendlines:  trendlines,
			}
			stamp := runStamp()
			reportPath, err := outputPath(cfg.Output.Dir, "levels_report", stamp, "json")
			if err != nil {
				return err
			}
			if err := dataio.WriteReportJSON(reportPath, report); err != nil {
				return err
			}

			if !noChart {
				chartPath, err := outputPath(cfg.Output.Dir, "levels_chart", stamp, "png")
				if err != nil {
					return err
				}
				if err := render.CandleChart(series, levels, trendlines, chartPath); err != nil {
					return err
				}
				fmt.Printf("chart: %s\n", chartPath)
			}

			fmt.Printf("found %d levels and %d trendlines over %d candles\n", len(levels), len(trendlines), series.Len())
			for _, level := range levels {
				fmt.Printf("  level %v\n", level)
			}
			for _, tl := range trendlines {
				fmt.Printf("  %s: %v -> %v\n", tl.Name, tl.Start.Value, tl.End.Value)
			}
			fmt.Printf("report: %s\n", reportPath)
			return nil
		},
	}
	cmd.Flags().StringVar(&input, "input", "", "csv file with time, open, high, low and close columns")
	cmd.Flags().IntVar(&order, "order", srlevel.DefaultPivotOrder, "neighborhood half width for level pivots")
	cmd.Flags().IntVar(&trendOrder, "trend-order", srlevel.DefaultTrendlineOrder, "neighborhood half width for trendline pivots")
	cmd.Flags().IntVar(&atrPeriod, "atr-period", srlevel.DefaultATRPeriod, "atr smoothing period")
	cmd.Flags().Float64Var(&atrMult, "atr-multiplier", srlevel.DefaultATRMultiplier, "cluster tolerance as a multiple of atr")
	cmd.Flags().BoolVar(&collapse, "collapse-plateaus", false, "keep only the first pivot of an adjacent equal price run")
	cmd.Flags().BoolVar(&noChart, "no-chart", false, "skip writing the chart png")
	return cmd
}

func loadCandles(input string, cfg *config.Config) (*model.CandleSeries, error) {
	if input != "" {
		return dataio.ReadCandlesCSV(input)
	}
	params, err := syntheticParams(&cfg.Synthetic)
	if err != nil {
		return nil, err
	}
	return synthetic.GenerateCandles(params)
}
