package srlevel

import (
	"context"
	"fmt"
	"sort"

	"github.com/uyouii/sr-analysis/common"
	"github.com/uyouii/sr-analysis/model"
	"github.com/uyouii/sr-analysis/utils"
	"go.uber.org/zap"
)

type LevelParams struct {
	Order         int
	ATRPeriod     int
	ATRMultiplier float64
	// CollapsePlateaus merges runs of equal-price neighboring pivots into
	// their first member before clustering.
	CollapsePlateaus bool
}

func DefaultLevelParams() LevelParams {
	return LevelParams{
		Order:         DefaultPivotOrder,
		ATRPeriod:     DefaultATRPeriod,
		ATRMultiplier: DefaultATRMultiplier,
	}
}

// CalculateLevels clusters pivot prices into support / resistance levels.
// Pivot prices are walked ascending, a price opens a new cluster when it
// exceeds the current cluster seed by more than multiplier * ATR, and that
// raw price becomes the next seed. Returned levels are the cluster seeds,
// rounded, deduplicated and sorted ascending.
func CalculateLevels(ctx context.Context, series *model.CandleSeries, params LevelParams) ([]float64, error) {
	logger := utils.GetLogger(ctx)

	defer func() {
		if err := recover(); err != nil {
			logger.Error("CalculateLevels recover panic error!", zap.Any("err", err),
				zap.String("panic info", utils.GetPanicInfo()), zap.Any("params", params))
		}
	}()

	if params.ATRMultiplier <= 0 {
		return nil, fmt.Errorf("%w: atr multiplier must be positive, got %v", common.ErrorInvalidParam, params.ATRMultiplier)
	}

	pivots, err := FindPivots(series, params.Order)
	if err != nil {
		logger.Error("FindPivots failed", zap.Error(err), zap.Int("order", params.Order))
		return nil, err
	}
	atr, err := ATR(series, params.ATRPeriod)
	if err != nil {
		logger.Error("ATR failed", zap.Error(err), zap.Int("period", params.ATRPeriod))
		return nil, err
	}

	if params.CollapsePlateaus {
		pivots = collapsePlateaus(pivots)
	}

	prices := make([]float64, 0, len(pivots))
	for _, p := range pivots {
		prices = append(prices, p.Price)
	}
	sort.Float64s(prices)

	seeds := clusterPrices(prices, params.ATRMultiplier*atr)

	res := make([]float64, 0, len(seeds))
	seen := map[float64]struct{}{}
	for _, seed := range seeds {
		rounded := utils.RoundTo(seed, LevelRoundDecimals)
		if _, ok := seen[rounded]; ok {
			continue
		}
		seen[rounded] = struct{}{}
		res = append(res, rounded)
	}
	sort.Float64s(res)

	logger.Info("sr levels calculated", zap.String("series", series.DebugString()),
		zap.Int("pivotCnt", len(pivots)), zap.Float64("atr", atr), zap.Int("levelCnt", len(res)))

	return res, nil
}

// clusterPrices walks ascending prices and opens a new cluster whenever a
// price exceeds the current seed by more than tolerance. The price that
// broke the tolerance becomes the new seed, not a cluster mean.
func clusterPrices(prices []float64, tolerance float64) []float64 {
	if len(prices) == 0 {
		return []float64{}
	}
	seed := prices[0]
	res := []float64{seed}
	for _, p := range prices[1:] {
		if p > seed+tolerance {
			seed = p
			res = append(res, seed)
		}
	}
	return res
}
