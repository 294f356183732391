package model

import (
	"fmt"
	"math"
	"time"

	"github.com/uyouii/sr-analysis/common"
)

type TimeValue struct {
	Time  time.Time `json:"time"`
	Value float64   `json:"value"`
}

func (v *TimeValue) Less(timeValue TimeValue) bool {
	return v.Value < timeValue.Value
}

func (v *TimeValue) Before(timeValue TimeValue) bool {
	return v.Time.Before(timeValue.Time)
}

type TimeSeries struct {
	// Labels contains label key -> label value, like "symbol": "AUDCAD"
	Labels map[string]string
	Values []TimeValue
}

func (s *TimeSeries) DebugString() string {
	res := fmt.Sprintf("labels: %+v, valueCount: %+v", s.Labels, len(s.Values))
	return res
}

func (s *TimeSeries) IsEmpty() bool {
	if s == nil {
		return true
	}
	return len(s.Values) == 0
}

func (s *TimeSeries) Len() int {
	if s == nil {
		return 0
	}
	return len(s.Values)
}

func (s *TimeSeries) Floats() []float64 {
	if s == nil {
		return nil
	}
	res := make([]float64, 0, s.Len())
	for _, v := range s.Values {
		res = append(res, v.Value)
	}
	return res
}

// Validate checks that the series is non-empty, every value is finite
// and the timestamps are strictly increasing.
func (s *TimeSeries) Validate() error {
	if s.IsEmpty() {
		return common.ErrorEmptySeries
	}
	for i, v := range s.Values {
		if math.IsNaN(v.Value) || math.IsInf(v.Value, 0) {
			return fmt.Errorf("%w: value at index %d is not finite", common.ErrorInvalidValue, i)
		}
		if i > 0 && !s.Values[i-1].Before(v) {
			return fmt.Errorf("%w: index %d", common.ErrorUnsortedSeries, i)
		}
	}
	return nil
}

type Candle struct {
	Time  time.Time `json:"time"`
	Open  float64   `json:"open"`
	High  float64   `json:"high"`
	Low   float64   `json:"low"`
	Close float64   `json:"close"`
}

type CandleSeries struct {
	Labels  map[string]string
	Candles []Candle
}

func (s *CandleSeries) DebugString() string {
	res := fmt.Sprintf("labels: %+v, candleCount: %+v", s.Labels, len(s.Candles))
	return res
}

func (s *CandleSeries) IsEmpty() bool {
	if s == nil {
		return true
	}
	return len(s.Candles) == 0
}

func (s *CandleSeries) Len() int {
	if s == nil {
		return 0
	}
	return len(s.Candles)
}

func (s *CandleSeries) Lows() []float64 {
	if s == nil {
		return nil
	}
	res := make([]float64, 0, s.Len())
	for _, c := range s.Candles {
		res = append(res, c.Low)
	}
	return res
}

func (s *CandleSeries) Highs() []float64 {
	if s == nil {
		return nil
	}
	res := make([]float64, 0, s.Len())
	for _, c := range s.Candles {
		res = append(res, c.High)
	}
	return res
}

func (s *CandleSeries) Closes() []float64 {
	if s == nil {
		return nil
	}
	res := make([]float64, 0, s.Len())
	for _, c := range s.Candles {
		res = append(res, c.Close)
	}
	return res
}

// Validate checks that the series is non-empty, every candle holds finite
// prices with high >= low, and the timestamps are strictly increasing.
func (s *CandleSeries) Validate() error {
	if s.IsEmpty() {
		return common.ErrorEmptySeries
	}
	for i, c := range s.Candles {
		for _, p := range []float64{c.Open, c.High, c.Low, c.Close} {
			if math.IsNaN(p) || math.IsInf(p, 0) {
				return fmt.Errorf("%w: candle at index %d has a non finite price", common.ErrorInvalidValue, i)
			}
		}
		if c.High < c.Low {
			return fmt.Errorf("%w: candle at index %d has high < low", common.ErrorInvalidValue, i)
		}
		if i > 0 && !s.Candles[i-1].Time.Before(c.Time) {
			return fmt.Errorf("%w: index %d", common.ErrorUnsortedSeries, i)
		}
	}
	return nil
}
