package render

import (
	"fmt"
	"image/color"

	"github.com/uyouii/sr-analysis/common"
	"github.com/uyouii/sr-analysis/model"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

const timeFormat = "01-02 15:04"

var (
	signalColor = color.RGBA{R: 0x34, G: 0x98, B: 0xdb, A: 0xff}
	eventColor  = color.RGBA{R: 0xe7, G: 0x4c, B: 0x3c, A: 0xff}
	closeColor  = color.RGBA{R: 0x87, G: 0xce, B: 0xeb, A: 0xff}
	levelColor  = color.RGBA{R: 0x80, G: 0x80, B: 0x80, A: 0xff}

	styleColors = map[string]color.RGBA{
		"green": {G: 0x80, A: 0xff},
		"red":   {R: 0xff, A: 0xff},
	}
)

// SignalChart draws the signal with the detected events overlaid and saves
// it to path. The image format follows the file extension.
func SignalChart(series *model.TimeSeries, events []model.SREvent, path string) error {
	if series.IsEmpty() {
		return common.ErrorEmptySeries
	}

	p := plot.New()
	p.Title.Text = "Time Series with Structural Rate (SR) Events"
	p.X.Label.Text = "Timestamp"
	p.Y.Label.Text = "Signal Value"
	p.X.Tick.Marker = plot.TimeTicks{Format: timeFormat}
	p.Add(plotter.NewGrid())

	xys := make(plotter.XYs, series.Len())
	for i, v := range series.Values {
		xys[i].X = float64(v.Time.Unix())
		xys[i].Y = v.Value
	}
	line, err := plotter.NewLine(xys)
	if err != nil {
		return fmt.Errorf("signal line: %w", err)
	}
	line.LineStyle.Color = signalColor
	line.LineStyle.Width = vg.Points(1.5)
	p.Add(line)
	p.Legend.Add("Original Signal", line)

	if len(events) > 0 {
		exys := make(plotter.XYs, len(events))
		for i, ev := range events {
			exys[i].X = float64(ev.TimeValue.Time.Unix())
			exys[i].Y = ev.TimeValue.Value
		}
		scatter, err := plotter.NewScatter(exys)
		if err != nil {
			return fmt.Errorf("event scatter: %w", err)
		}
		scatter.GlyphStyle.Color = eventColor
		scatter.GlyphStyle.Radius = vg.Points(3)
		scatter.GlyphStyle.Shape = draw.CircleGlyph{}
		p.Add(scatter)
		p.Legend.Add("SR Event Detected", scatter)
	}

	p.Legend.Top = true
	p.Legend.Left = true

	if err := p.Save(14*vg.Inch, 7*vg.Inch, path); err != nil {
		return fmt.Errorf("save chart: %w", err)
	}
	return nil
}

// CandleChart draws the close track with the clustered levels and the
// trendlines overlaid.
func CandleChart(series *model.CandleSeries, levels []float64, trendlines []model.Trendline, path string) error {
	if series.IsEmpty() {
		return common.ErrorEmptySeries
	}

	p := plot.New()
	p.Title.Text = "Chart Analysis"
	p.X.Label.Text = "Timestamp"
	p.Y.Label.Text = "Price (Close)"
	p.X.Tick.Marker = plot.TimeTicks{Format: timeFormat}
	p.Add(plotter.NewGrid())

	xys := make(plotter.XYs, series.Len())
	for i, c := range series.Candles {
		xys[i].X = float64(c.Time.Unix())
		xys[i].Y = c.Close
	}
	closeLine, err := plotter.NewLine(xys)
	if err != nil {
		return fmt.Errorf("close line: %w", err)
	}
	closeLine.LineStyle.Color = closeColor
	closeLine.LineStyle.Width = vg.Points(1.5)
	p.Add(closeLine)
	p.Legend.Add("Close", closeLine)

	first := float64(series.Candles[0].Time.Unix())
	last := float64(series.Candles[series.Len()-1].Time.Unix())
	for _, level := range levels {
		hline, err := plotter.NewLine(plotter.XYs{{X: first, Y: level}, {X: last, Y: level}})
		if err != nil {
			return fmt.Errorf("level line: %w", err)
		}
		hline.LineStyle.Color = levelColor
		hline.LineStyle.Width = vg.Points(1)
		p.Add(hline)
	}

	for _, tl := range trendlines {
		segment, err := plotter.NewLine(plotter.XYs{
			{X: float64(tl.Start.Time.Unix()), Y: tl.Start.Value},
			{X: float64(tl.End.Time.Unix()), Y: tl.End.Value},
		})
		if err != nil {
			return fmt.Errorf("trendline %s: %w", tl.Name, err)
		}
		applyStyle(segment, tl.Style)
		p.Add(segment)
		p.Legend.Add(tl.Name, segment)
	}

	p.Legend.Top = true
	p.Legend.Left = true

	if err := p.Save(14*vg.Inch, 7*vg.Inch, path); err != nil {
		return fmt.Errorf("save chart: %w", err)
	}
	return nil
}

// applyStyle maps styling hints onto a drawn line, unknown colors fall back
// to grey.
func applyStyle(line *plotter.Line, style model.LineStyle) {
	c, ok := styleColors[style.Color]
	if !ok {
		c = levelColor
	}
	line.LineStyle.Color = c
	if style.Dash == "--" {
		line.LineStyle.Dashes = []vg.Length{vg.Points(6), vg.Points(4)}
	}
	line.LineStyle.Width = vg.Points(style.Width)
}
