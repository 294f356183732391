package render

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uyouii/sr-analysis/common"
	"github.com/uyouii/sr-analysis/model"
	"github.com/uyouii/sr-analysis/srlevel"
)

func testSeries(values []float64) *model.TimeSeries {
	start := time.Date(2025, 10, 1, 9, 0, 0, 0, time.UTC)
	series := &model.TimeSeries{Labels: map[string]string{"source": "test"}}
	for i, v := range values {
		series.Values = append(series.Values, model.TimeValue{
			Time:  start.Add(time.Duration(i) * 15 * time.Minute),
			Value: v,
		})
	}
	return series
}

func testCandles(values []float64) *model.CandleSeries {
	start := time.Date(2025, 10, 1, 9, 0, 0, 0, time.UTC)
	series := &model.CandleSeries{Labels: map[string]string{"source": "test"}}
	for i, v := range values {
		series.Candles = append(series.Candles, model.Candle{
			Time:  start.Add(time.Duration(i) * time.Hour),
			Open:  v,
			High:  v + 0.5,
			Low:   v - 0.5,
			Close: v,
		})
	}
	return series
}

func assertPngWritten(t *testing.T, path string) {
	t.Helper()
	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
}

func TestSignalChart(t *testing.T) {
	series := testSeries([]float64{1, 2, 3, 10, 4, 5})
	events := []model.SREvent{
		{
			SREventType: model.UpwardSREvent,
			Index:       3,
			TimeValue:   series.Values[3],
			ZScore:      3.5,
		},
	}

	path := filepath.Join(t.TempDir(), "signal.png")
	require.NoError(t, SignalChart(series, events, path))
	assertPngWritten(t, path)
}

func TestSignalChartNoEvents(t *testing.T) {
	series := testSeries([]float64{1, 2, 3, 4, 5})

	path := filepath.Join(t.TempDir(), "signal.png")
	require.NoError(t, SignalChart(series, nil, path))
	assertPngWritten(t, path)
}

func TestSignalChartEmptySeries(t *testing.T) {
	path := filepath.Join(t.TempDir(), "signal.png")
	assert.ErrorIs(t, SignalChart(&model.TimeSeries{}, nil, path), common.ErrorEmptySeries)
	assert.ErrorIs(t, SignalChart(nil, nil, path), common.ErrorEmptySeries)
}

func TestCandleChart(t *testing.T) {
	series := testCandles([]float64{5, 3, 4, 2, 6, 5, 7})
	start := series.Candles[1].Time
	end := series.Candles[3].Time
	trendlines := []model.Trendline{
		{
			Name:  srlevel.UptrendSupportName,
			Start: model.TimeValue{Time: start, Value: 2.5},
			End:   model.TimeValue{Time: end, Value: 1.5},
			Style: srlevel.UptrendSupportStyle,
		},
		{
			Name:  srlevel.DowntrendResistanceName,
			Start: model.TimeValue{Time: start, Value: 5.5},
			End:   model.TimeValue{Time: end, Value: 6.5},
			Style: srlevel.DowntrendResistanceStyle,
		},
	}

	path := filepath.Join(t.TempDir(), "candles.png")
	require.NoError(t, CandleChart(series, []float64{2.5, 5.0}, trendlines, path))
	assertPngWritten(t, path)
}

func TestCandleChartUnknownStyleColor(t *testing.T) {
	series := testCandles([]float64{5, 3, 4})
	trendlines := []model.Trendline{
		{
			Name:  "custom",
			Start: model.TimeValue{Time: series.Candles[0].Time, Value: 3},
			End:   model.TimeValue{Time: series.Candles[2].Time, Value: 4},
			Style: model.LineStyle{Color: "magenta", Dash: "-", Width: 2},
		},
	}

	path := filepath.Join(t.TempDir(), "candles.png")
	require.NoError(t, CandleChart(series, nil, trendlines, path))
	assertPngWritten(t, path)
}

func TestCandleChartEmptySeries(t *testing.T) {
	path := filepath.Join(t.TempDir(), "candles.png")
	assert.ErrorIs(t, CandleChart(&model.CandleSeries{}, nil, nil, path), common.ErrorEmptySeries)
	assert.ErrorIs(t, CandleChart(nil, nil, nil, path), common.ErrorEmptySeries)
}
