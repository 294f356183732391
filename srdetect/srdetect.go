package srdetect

import (
	"context"
	"fmt"
	"math"

	"github.com/uyouii/sr-analysis/common"
	"github.com/uyouii/sr-analysis/model"
	"github.com/uyouii/sr-analysis/utils"
	"go.uber.org/zap"
	"gonum.org/v1/gonum/stat"
)

// RollingStats computes the trailing window mean, sample standard deviation,
// difference from mean and z-score for every observation. The first window-1
// observations have no full window behind them, their stats are NaN. A window
// larger than the series yields all NaN stats, not an error.
func RollingStats(series *model.TimeSeries, window int) ([]model.RollingStat, error) {
	if window <= 0 {
		return nil, fmt.Errorf("%w: window must be positive, got %d", common.ErrorInvalidParam, window)
	}
	if series.IsEmpty() {
		return nil, common.ErrorEmptySeries
	}

	values := series.Floats()
	stats := make([]model.RollingStat, len(values))
	nan := math.NaN()
	for i := range stats {
		stats[i] = model.RollingStat{Mean: nan, Std: nan, Diff: nan, ZScore: nan}
	}

	for i := window - 1; i < len(values); i++ {
		win := values[i-window+1 : i+1]
		mean := stat.Mean(win, nil)
		// sample std is undefined for a single point, use 0 there
		std := 0.0
		if window > 1 {
			std = stat.StdDev(win, nil)
		}
		diff := values[i] - mean
		stats[i] = model.RollingStat{
			Mean:   mean,
			Std:    std,
			Diff:   diff,
			ZScore: diff / (std + Epsilon),
		}
	}

	return stats, nil
}

// DetectSREvents flags every observation whose absolute z-score against the
// trailing window exceeds threshold.
func DetectSREvents(ctx context.Context, series *model.TimeSeries, window int, threshold float64) ([]model.SREvent, error) {
	logger := utils.GetLogger(ctx)

	defer func() {
		if err := recover(); err != nil {
			logger.Error("DetectSREvents recover panic error!", zap.Any("err", err),
				zap.String("panic info", utils.GetPanicInfo()),
				zap.Int("window", window), zap.Float64("threshold", threshold))
		}
	}()

	if threshold <= 0 {
		return nil, fmt.Errorf("%w: threshold must be positive, got %v", common.ErrorInvalidParam, threshold)
	}

	stats, err := RollingStats(series, window)
	if err != nil {
		logger.Error("RollingStats failed", zap.Error(err), zap.Int("window", window))
		return nil, err
	}

	events := []model.SREvent{}
	for i, st := range stats {
		if !st.Defined() || math.Abs(st.ZScore) <= threshold {
			continue
		}
		eventType := model.UpwardSREvent
		if st.ZScore < 0 {
			eventType = model.DownwardSREvent
		}
		events = append(events, model.SREvent{
			SREventType: eventType,
			Index:       i,
			TimeValue:   series.Values[i],
			ZScore:      st.ZScore,
		})
	}

	logger.Info("sr event detection done", zap.String("series", series.DebugString()),
		zap.Int("window", window), zap.Float64("threshold", threshold),
		zap.Int("eventCnt", len(events)))

	return events, nil
}
