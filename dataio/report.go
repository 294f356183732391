package dataio

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/uyouii/sr-analysis/model"
)

// WriteReportJSON writes the analysis report as indented JSON.
func WriteReportJSON(path string, report *model.Report) error {
	b, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

func ReadReportJSON(path string) (*model.Report, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	report := &model.Report{}
	if err := json.Unmarshal(b, report); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return report, nil
}
