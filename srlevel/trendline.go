package srlevel

import (
	"context"

	"github.com/uyouii/sr-analysis/model"
	"github.com/uyouii/sr-analysis/utils"
	"go.uber.org/zap"
)

type TrendlineParams struct {
	Order            int
	CollapsePlateaus bool
}

func DefaultTrendlineParams() TrendlineParams {
	return TrendlineParams{Order: DefaultTrendlineOrder}
}

// CalculateTrendlines connects the last two low pivots into an uptrend
// support line and the last two high pivots into a downtrend resistance
// line. A kind with fewer than two pivots contributes no line, so the
// result holds between zero and two trendlines, support first.
func CalculateTrendlines(ctx context.Context, series *model.CandleSeries, params TrendlineParams) ([]model.Trendline, error) {
	logger := utils.GetLogger(ctx)

	defer func() {
		if err := recover(); err != nil {
			logger.Error("CalculateTrendlines recover panic error!", zap.Any("err", err),
				zap.String("panic info", utils.GetPanicInfo()), zap.Any("params", params))
		}
	}()

	pivots, err := FindPivots(series, params.Order)
	if err != nil {
		logger.Error("FindPivots failed", zap.Error(err), zap.Int("order", params.Order))
		return nil, err
	}

	if params.CollapsePlateaus {
		pivots = collapsePlateaus(pivots)
	}

	lows, highs := []model.Pivot{}, []model.Pivot{}
	for _, p := range pivots {
		switch p.Kind {
		case model.LowPivot:
			lows = append(lows, p)
		case model.HighPivot:
			highs = append(highs, p)
		}
	}

	res := []model.Trendline{}
	if line, ok := lastTwoPivotLine(lows, UptrendSupportName, UptrendSupportStyle); ok {
		res = append(res, line)
	}
	if line, ok := lastTwoPivotLine(highs, DowntrendResistanceName, DowntrendResistanceStyle); ok {
		res = append(res, line)
	}

	logger.Info("trendlines calculated", zap.String("series", series.DebugString()),
		zap.Int("lowPivotCnt", len(lows)), zap.Int("highPivotCnt", len(highs)),
		zap.Int("lineCnt", len(res)))

	return res, nil
}

func lastTwoPivotLine(pivots []model.Pivot, name string, style model.LineStyle) (model.Trendline, bool) {
	if len(pivots) < 2 {
		return model.Trendline{}, false
	}
	p1, p2 := pivots[len(pivots)-2], pivots[len(pivots)-1]
	return model.Trendline{
		Name:  name,
		Start: model.TimeValue{Time: p1.Time, Value: p1.Price},
		End:   model.TimeValue{Time: p2.Time, Value: p2.Price},
		Style: style,
	}, true
}
