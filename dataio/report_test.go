package dataio

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uyouii/sr-analysis/model"
)

func TestReportJSONRoundTrip(t *testing.T) {
	start := time.Date(2025, 10, 1, 9, 0, 0, 0, time.UTC)
	report := &model.Report{
		Labels:      map[string]string{"source": "test"},
		GeneratedAt: start.Add(24 * time.Hour),
		Events: []model.SREvent{
			{SREventType: model.UpwardSREvent, Index: 7, TimeValue: model.TimeValue{Time: start, Value: 12.5}, ZScore: 4.2},
		},
		Levels: []float64{0.91325, 0.92417},
		Trendlines: []model.Trendline{
			{
				Name:  "Uptrend Support",
				Start: model.TimeValue{Time: start, Value: 0.91},
				End:   model.TimeValue{Time: start.Add(time.Hour), Value: 0.915},
				Style: model.LineStyle{Color: "green", Dash: "--", Width: 1.5},
			},
		},
	}

	path := filepath.Join(t.TempDir(), "report.json")
	require.NoError(t, WriteReportJSON(path, report))

	back, err := ReadReportJSON(path)
	require.NoError(t, err)

	assert.Equal(t, report.Labels, back.Labels)
	assert.True(t, report.GeneratedAt.Equal(back.GeneratedAt))
	require.Len(t, back.Events, 1)
	assert.Equal(t, report.Events[0].SREventType, back.Events[0].SREventType)
	assert.Equal(t, report.Events[0].Index, back.Events[0].Index)
	assert.InDelta(t, report.Events[0].ZScore, back.Events[0].ZScore, 1e-12)
	assert.Equal(t, report.Levels, back.Levels)
	require.Len(t, back.Trendlines, 1)
	assert.Equal(t, report.Trendlines[0].Name, back.Trendlines[0].Name)
	assert.Equal(t, report.Trendlines[0].Style, back.Trendlines[0].Style)
	assert.True(t, report.Trendlines[0].Start.Time.Equal(back.Trendlines[0].Start.Time))
	assert.InDelta(t, report.Trendlines[0].End.Value, back.Trendlines[0].End.Value, 1e-12)
}

func TestReadReportJSONErrors(t *testing.T) {
	_, err := ReadReportJSON(filepath.Join(t.TempDir(), "nope.json"))
	assert.Error(t, err)

	path := writeFile(t, "broken.json", "{not json")
	_, err = ReadReportJSON(path)
	assert.Error(t, err)
}
