package synthetic

import (
	"fmt"
	"math"
	"time"

	"github.com/uyouii/sr-analysis/common"
	"github.com/uyouii/sr-analysis/model"
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"
)

// Params controls the synthetic generators. The seed is explicit, the same
// params always produce the same series.
type Params struct {
	NumPoints      int
	Seed           uint64
	Start          time.Time
	Interval       time.Duration
	NoiseSigma     float64
	DriftScale     float64
	ShiftMagnitude float64
	// ShiftAt is the index the level shift starts at, zero selects the
	// midpoint.
	ShiftAt int
}

func DefaultParams() Params {
	return Params{
		NumPoints:      300,
		Seed:           42,
		Start:          time.Date(2025, 10, 1, 9, 0, 0, 0, time.UTC),
		Interval:       15 * time.Minute,
		NoiseSigma:     0.5,
		DriftScale:     0.5,
		ShiftMagnitude: 15.0,
	}
}

func (p Params) validate() error {
	if p.NumPoints <= 0 {
		return fmt.Errorf("%w: num points must be positive, got %d", common.ErrorInvalidParam, p.NumPoints)
	}
	if p.Interval <= 0 {
		return fmt.Errorf("%w: interval must be positive, got %v", common.ErrorInvalidParam, p.Interval)
	}
	if p.NoiseSigma < 0 {
		return fmt.Errorf("%w: noise sigma must not be negative, got %v", common.ErrorInvalidParam, p.NoiseSigma)
	}
	if p.ShiftAt < 0 {
		return fmt.Errorf("%w: shift index must not be negative, got %d", common.ErrorInvalidParam, p.ShiftAt)
	}
	return nil
}

func (p Params) shiftIndex() int {
	if p.ShiftAt == 0 {
		return p.NumPoints / 2
	}
	return p.ShiftAt
}

// GenerateSignal returns a scaled random walk with a one-off upward level
// shift at the shift index, the kind of structural break the detector flags.
func GenerateSignal(params Params) (*model.TimeSeries, error) {
	if err := params.validate(); err != nil {
		return nil, err
	}

	noise := distuv.Normal{Mu: 0, Sigma: params.NoiseSigma, Src: rand.NewSource(params.Seed)}
	shiftAt := params.shiftIndex()

	res := &model.TimeSeries{
		Labels: map[string]string{"source": "synthetic"},
		Values: make([]model.TimeValue, 0, params.NumPoints),
	}
	sum := 0.0
	for i := 0; i < params.NumPoints; i++ {
		sum += noise.Rand()
		value := sum * params.DriftScale
		if i >= shiftAt {
			value += params.ShiftMagnitude
		}
		res.Values = append(res.Values, model.TimeValue{
			Time:  params.Start.Add(time.Duration(i) * params.Interval),
			Value: value,
		})
	}
	return res, nil
}

// GenerateCandles returns random walk bars with wicks around each body and
// the same level shift as GenerateSignal. Each bar opens at the previous
// bar's close, so the shift shows up as a gap bar.
func GenerateCandles(params Params) (*model.CandleSeries, error) {
	if err := params.validate(); err != nil {
		return nil, err
	}

	noise := distuv.Normal{Mu: 0, Sigma: params.NoiseSigma, Src: rand.NewSource(params.Seed)}
	shiftAt := params.shiftIndex()

	res := &model.CandleSeries{
		Labels:  map[string]string{"source": "synthetic"},
		Candles: make([]model.Candle, 0, params.NumPoints),
	}
	sum, prevValue := 0.0, 0.0
	for i := 0; i < params.NumPoints; i++ {
		sum += noise.Rand()
		value := sum * params.DriftScale
		if i >= shiftAt {
			value += params.ShiftMagnitude
		}

		open, closePrice := prevValue, value
		upperWick := math.Abs(noise.Rand()) * params.DriftScale
		lowerWick := math.Abs(noise.Rand()) * params.DriftScale
		res.Candles = append(res.Candles, model.Candle{
			Time:  params.Start.Add(time.Duration(i) * params.Interval),
			Open:  open,
			High:  max(open, closePrice) + upperWick,
			Low:   min(open, closePrice) - lowerWick,
			Close: closePrice,
		})
		prevValue = value
	}
	return res, nil
}
