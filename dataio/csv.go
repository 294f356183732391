package dataio

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/uyouii/sr-analysis/common"
	"github.com/uyouii/sr-analysis/model"
)

const timeLayout = time.RFC3339

func columnIndex(header []string) map[string]int {
	res := map[string]int{}
	for i, name := range header {
		res[strings.ToLower(strings.TrimSpace(name))] = i
	}
	return res
}

func requireColumns(index map[string]int, names ...string) error {
	for _, name := range names {
		if _, ok := index[name]; !ok {
			return fmt.Errorf("%w: %s", common.ErrorMissingColumn, name)
		}
	}
	return nil
}

func readRows(path string) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	if len(rows) == 0 {
		return nil, common.ErrorEmptySeries
	}
	return rows, nil
}

func parseTimeField(s string) (time.Time, error) {
	res, err := time.Parse(timeLayout, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: bad timestamp %q", common.ErrorInvalidValue, s)
	}
	return res, nil
}

func parseFloatField(s string) (float64, error) {
	res, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, fmt.Errorf("%w: bad number %q", common.ErrorInvalidValue, s)
	}
	return res, nil
}

// ReadSignalCSV loads a univariate series from a CSV file holding at least
// the columns "time" (RFC3339) and "signal". Extra columns are ignored,
// column names are matched case insensitively.
func ReadSignalCSV(path string) (*model.TimeSeries, error) {
	rows, err := readRows(path)
	if err != nil {
		return nil, err
	}
	index := columnIndex(rows[0])
	if err := requireColumns(index, "time", "signal"); err != nil {
		return nil, err
	}

	res := &model.TimeSeries{
		Labels: map[string]string{"source": filepath.Base(path)},
		Values: make([]model.TimeValue, 0, len(rows)-1),
	}
	for _, row := range rows[1:] {
		ts, err := parseTimeField(row[index["time"]])
		if err != nil {
			return nil, err
		}
		value, err := parseFloatField(row[index["signal"]])
		if err != nil {
			return nil, err
		}
		res.Values = append(res.Values, model.TimeValue{Time: ts, Value: value})
	}

	if err := res.Validate(); err != nil {
		return nil, err
	}
	return res, nil
}

// ReadCandlesCSV loads an OHLC series from a CSV file holding at least the
// columns "time", "open", "high", "low" and "close".
func ReadCandlesCSV(path string) (*model.CandleSeries, error) {
	rows, err := readRows(path)
	if err != nil {
		return nil, err
	}
	index := columnIndex(rows[0])
	if err := requireColumns(index, "time", "open", "high", "low", "close"); err != nil {
		return nil, err
	}

	res := &model.CandleSeries{
		Labels:  map[string]string{"source": filepath.Base(path)},
		Candles: make([]model.Candle, 0, len(rows)-1),
	}
	for _, row := range rows[1:] {
		ts, err := parseTimeField(row[index["time"]])
		if err != nil {
			return nil, err
		}
		candle := model.Candle{Time: ts}
		for _, field := range []struct {
			name string
			dst  *float64
		}{
			{"open", &candle.Open},
			{"high", &candle.High},
			{"low", &candle.Low},
			{"close", &candle.Close},
		} {
			value, err := parseFloatField(row[index[field.name]])
			if err != nil {
				return nil, err
			}
			*field.dst = value
		}
		res.Candles = append(res.Candles, candle)
	}

	if err := res.Validate(); err != nil {
		return nil, err
	}
	return res, nil
}

// WriteSignalCSV writes a series in the layout ReadSignalCSV accepts.
func WriteSignalCSV(path string, series *model.TimeSeries) error {
	if series.IsEmpty() {
		return common.ErrorEmptySeries
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{"time", "signal"}); err != nil {
		return err
	}
	for _, v := range series.Values {
		record := []string{
			v.Time.Format(timeLayout),
			strconv.FormatFloat(v.Value, 'g', -1, 64),
		}
		if err := w.Write(record); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

// WriteCandlesCSV writes a candle series in the layout ReadCandlesCSV
// accepts.
func WriteCandlesCSV(path string, series *model.CandleSeries) error {
	if series.IsEmpty() {
		return common.ErrorEmptySeries
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{"time", "open", "high", "low", "close"}); err != nil {
		return err
	}
	for _, c := range series.Candles {
		record := []string{
			c.Time.Format(timeLayout),
			strconv.FormatFloat(c.Open, 'g', -1, 64),
			strconv.FormatFloat(c.High, 'g', -1, 64),
			strconv.FormatFloat(c.Low, 'g', -1, 64),
			strconv.FormatFloat(c.Close, 'g', -1, 64),
		}
		if err := w.Write(record); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

// WriteEventsCSV writes detected events with their timestamps, values and
// z-scores.
func WriteEventsCSV(path string, events []model.SREvent) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{"time", "value", "z_score", "type"}); err != nil {
		return err
	}
	for _, ev := range events {
		record := []string{
			ev.TimeValue.Time.Format(timeLayout),
			strconv.FormatFloat(ev.TimeValue.Value, 'g', -1, 64),
			strconv.FormatFloat(ev.ZScore, 'g', -1, 64),
			ev.SREventType.String(),
		}
		if err := w.Write(record); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}
