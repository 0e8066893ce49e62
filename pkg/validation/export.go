package validation

import (
	"encoding/json"
	"os"
)

// ExportReportJSON serializes a ValidationReport to indented JSON.
func ExportReportJSON(report *ValidationReport) ([]byte, error) {
	return json.MarshalIndent(report, "", "  ")
}

// ExportReportJSONCompact serializes a ValidationReport to compact JSON.
func ExportReportJSONCompact(report *ValidationReport) ([]byte, error) {
	return json.Marshal(report)
}

// SaveReportToFile writes an indented JSON report to filepath (0644).
func SaveReportToFile(report *ValidationReport, filepath string) error {
	data, err := ExportReportJSON(report)
	if err != nil {
		return err
	}
	return os.WriteFile(filepath, data, 0644)
}

// LoadReportFromFile reads a ValidationReport from a JSON file.
func LoadReportFromFile(filepath string) (*ValidationReport, error) {
	data, err := os.ReadFile(filepath)
	if err != nil {
		return nil, err
	}
	var report ValidationReport
	if err := json.Unmarshal(data, &report); err != nil {
		return nil, err
	}
	return &report, nil
}
