package srlevel

import (
	"fmt"
	"math"

	"github.com/uyouii/sr-analysis/common"
	"github.com/uyouii/sr-analysis/model"
	"gonum.org/v1/gonum/floats"
)

// TrueRanges returns the true range per candle. The first candle has no
// previous close, its true range falls back to high - low.
func TrueRanges(candles []model.Candle) []float64 {
	res := make([]float64, len(candles))
	for i, c := range candles {
		if i == 0 {
			res[i] = c.High - c.Low
			continue
		}
		prevClose := candles[i-1].Close
		res[i] = floats.Max([]float64{
			c.High - c.Low,
			math.Abs(c.High - prevClose),
			math.Abs(c.Low - prevClose),
		})
	}
	return res
}

// ATRValues smooths the true ranges left to right with an exponential
// moving average, alpha = 2 / (period + 1), seeded with the first true range.
func ATRValues(series *model.CandleSeries, period int) ([]float64, error) {
	if period <= 0 {
		return nil, fmt.Errorf("%w: atr period must be positive, got %d", common.ErrorInvalidParam, period)
	}
	if series.IsEmpty() {
		return nil, common.ErrorEmptySeries
	}

	trueRanges := TrueRanges(series.Candles)
	alpha := 2.0 / (float64(period) + 1.0)

	res := make([]float64, len(trueRanges))
	res[0] = trueRanges[0]
	for i := 1; i < len(trueRanges); i++ {
		res[i] = alpha*trueRanges[i] + (1-alpha)*res[i-1]
	}
	return res, nil
}

// ATR returns the most recent smoothed true range.
func ATR(series *model.CandleSeries, period int) (float64, error) {
	values, err := ATRValues(series, period)
	if err != nil {
		return 0, err
	}
	return values[len(values)-1], nil
}
