package srlevel

import (
	"fmt"

	"github.com/uyouii/sr-analysis/common"
	"github.com/uyouii/sr-analysis/model"
)

// FindPivots scans the low track for local minima and the high track for
// local maxima. A pivot must be <= (resp. >=) every neighbor within order
// positions on each side, with the neighborhood clipped at the series edges,
// so ties yield one pivot per plateau member and the first or last candle
// can qualify. A series shorter than 2*order+1 has no full neighborhood
// anywhere and yields no pivots.
func FindPivots(series *model.CandleSeries, order int) ([]model.Pivot, error) {
	if order <= 0 {
		return nil, fmt.Errorf("%w: order must be positive, got %d", common.ErrorInvalidParam, order)
	}
	if series.IsEmpty() {
		return nil, common.ErrorEmptySeries
	}

	res := []model.Pivot{}
	n := series.Len()
	if n < 2*order+1 {
		return res, nil
	}

	lows, highs := series.Lows(), series.Highs()
	for i := 0; i < n; i++ {
		if isLocalMin(lows, i, order) {
			res = append(res, model.Pivot{
				Kind:  model.LowPivot,
				Index: i,
				Time:  series.Candles[i].Time,
				Price: lows[i],
			})
		}
		if isLocalMax(highs, i, order) {
			res = append(res, model.Pivot{
				Kind:  model.HighPivot,
				Index: i,
				Time:  series.Candles[i].Time,
				Price: highs[i],
			})
		}
	}
	return res, nil
}

func isLocalMin(values []float64, i, order int) bool {
	lo, hi := neighborhood(len(values), i, order)
	for j := lo; j <= hi; j++ {
		if values[i] > values[j] {
			return false
		}
	}
	return true
}

func isLocalMax(values []float64, i, order int) bool {
	lo, hi := neighborhood(len(values), i, order)
	for j := lo; j <= hi; j++ {
		if values[i] < values[j] {
			return false
		}
	}
	return true
}

func neighborhood(n, i, order int) (int, int) {
	return max(i-order, 0), min(i+order, n-1)
}

// collapsePlateaus keeps the first pivot of every run of consecutive
// same-kind pivots at the same price.
func collapsePlateaus(pivots []model.Pivot) []model.Pivot {
	res := make([]model.Pivot, 0, len(pivots))
	last := map[model.PivotKind]model.Pivot{}
	for _, p := range pivots {
		prev, seen := last[p.Kind]
		last[p.Kind] = p
		if seen && prev.Index == p.Index-1 && prev.Price == p.Price {
			continue
		}
		res = append(res, p)
	}
	return res
}
