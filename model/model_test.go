package model

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/uyouii/sr-analysis/common"
)

var testStart = time.Date(2025, 10, 1, 9, 0, 0, 0, time.UTC)

func signalSeries(values ...float64) *TimeSeries {
	series := &TimeSeries{Labels: map[string]string{"source": "test"}}
	for i, v := range values {
		series.Values = append(series.Values, TimeValue{
			Time:  testStart.Add(time.Duration(i) * 15 * time.Minute),
			Value: v,
		})
	}
	return series
}

func candleSeries(candles ...Candle) *CandleSeries {
	for i := range candles {
		candles[i].Time = testStart.Add(time.Duration(i) * time.Hour)
	}
	return &CandleSeries{Labels: map[string]string{"source": "test"}, Candles: candles}
}

func TestTimeValueOrdering(t *testing.T) {
	a := TimeValue{Time: testStart, Value: 1}
	b := TimeValue{Time: testStart.Add(time.Minute), Value: 2}

	assert.True(t, a.Less(b))
	assert.False(t, b.Less(a))
	assert.True(t, a.Before(b))
	assert.False(t, b.Before(a))
}

func TestTimeSeriesNilSafety(t *testing.T) {
	var series *TimeSeries
	assert.True(t, series.IsEmpty())
	assert.Equal(t, 0, series.Len())
	assert.Empty(t, series.Floats())
}

func TestTimeSeriesFloats(t *testing.T) {
	series := signalSeries(1.5, -2, 3)
	assert.Equal(t, []float64{1.5, -2, 3}, series.Floats())
}

func TestTimeSeriesValidate(t *testing.T) {
	assert.NoError(t, signalSeries(1, 2, 3).Validate())

	tests := []struct {
		name    string
		series  *TimeSeries
		wantErr error
	}{
		{"nil series", nil, common.ErrorEmptySeries},
		{"empty series", &TimeSeries{}, common.ErrorEmptySeries},
		{"nan value", signalSeries(1, math.NaN(), 3), common.ErrorInvalidValue},
		{"inf value", signalSeries(1, math.Inf(1), 3), common.ErrorInvalidValue},
		{
			"duplicate timestamp",
			&TimeSeries{Values: []TimeValue{
				{Time: testStart, Value: 1},
				{Time: testStart, Value: 2},
			}},
			common.ErrorUnsortedSeries,
		},
		{
			"decreasing timestamp",
			&TimeSeries{Values: []TimeValue{
				{Time: testStart.Add(time.Hour), Value: 1},
				{Time: testStart, Value: 2},
			}},
			common.ErrorUnsortedSeries,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, tt.series.Validate(), tt.wantErr)
		})
	}
}

func TestCandleSeriesNilSafety(t *testing.T) {
	var series *CandleSeries
	assert.True(t, series.IsEmpty())
	assert.Equal(t, 0, series.Len())
	assert.Empty(t, series.Lows())
	assert.Empty(t, series.Highs())
	assert.Empty(t, series.Closes())
}

func TestCandleSeriesTracks(t *testing.T) {
	series := candleSeries(
		Candle{Open: 1, High: 3, Low: 0.5, Close: 2},
		Candle{Open: 2, High: 4, Low: 1.5, Close: 3},
	)
	assert.Equal(t, []float64{0.5, 1.5}, series.Lows())
	assert.Equal(t, []float64{3, 4}, series.Highs())
	assert.Equal(t, []float64{2, 3}, series.Closes())
}

func TestCandleSeriesValidate(t *testing.T) {
	assert.NoError(t, candleSeries(
		Candle{Open: 1, High: 3, Low: 0.5, Close: 2},
		Candle{Open: 2, High: 4, Low: 1.5, Close: 3},
	).Validate())

	tests := []struct {
		name    string
		series  *CandleSeries
		wantErr error
	}{
		{"nil series", nil, common.ErrorEmptySeries},
		{"empty series", &CandleSeries{}, common.ErrorEmptySeries},
		{
			"nan price",
			candleSeries(Candle{Open: 1, High: math.NaN(), Low: 0.5, Close: 2}),
			common.ErrorInvalidValue,
		},
		{
			"high below low",
			candleSeries(Candle{Open: 1, High: 1, Low: 2, Close: 1.5}),
			common.ErrorInvalidValue,
		},
		{
			"duplicate timestamp",
			&CandleSeries{Candles: []Candle{
				{Time: testStart, Open: 1, High: 2, Low: 0.5, Close: 1.5},
				{Time: testStart, Open: 1, High: 2, Low: 0.5, Close: 1.5},
			}},
			common.ErrorUnsortedSeries,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, tt.series.Validate(), tt.wantErr)
		})
	}
}

func TestSREventTypeString(t *testing.T) {
	assert.Equal(t, "upward", UpwardSREvent.String())
	assert.Equal(t, "downward", DownwardSREvent.String())
	assert.Equal(t, "unknown", SREventType(0).String())
}

func TestPivotKindString(t *testing.T) {
	assert.Equal(t, "low", LowPivot.String())
	assert.Equal(t, "high", HighPivot.String())
	assert.Equal(t, "unknown", PivotKind(0).String())
}

func TestRollingStatDefined(t *testing.T) {
	assert.True(t, RollingStat{ZScore: 1.5}.Defined())
	assert.False(t, RollingStat{Mean: math.NaN(), Std: math.NaN(), Diff: math.NaN(), ZScore: math.NaN()}.Defined())
}
