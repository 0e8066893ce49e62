package export

import (
	"encoding/json"
	"os"

	"github.com/vastuforge/floorplan/pkg/solver"
)

// ExportJSON serializes a solved response to JSON with indentation.
// Returns formatted JSON with 2-space indentation for readability.
func ExportJSON(resp *solver.Response) ([]byte, error) {
	return json.MarshalIndent(resp, "", "  ")
}

// ExportJSONCompact serializes a solved response to JSON without
// indentation. Returns compact JSON suitable for storage or transmission.
func ExportJSONCompact(resp *solver.Response) ([]byte, error) {
	return json.Marshal(resp)
}

// SaveJSONToFile exports resp to a JSON file with indentation.
// The file is created with 0644 permissions (readable by all, writable by owner).
func SaveJSONToFile(resp *solver.Response, filepath string) error {
	data, err := ExportJSON(resp)
	if err != nil {
		return err
	}
	return os.WriteFile(filepath, data, 0644)
}

// SaveJSONCompactToFile exports resp to a compact JSON file.
// The file is created with 0644 permissions (readable by all, writable by owner).
func SaveJSONCompactToFile(resp *solver.Response, filepath string) error {
	data, err := ExportJSONCompact(resp)
	if err != nil {
		return err
	}
	return os.WriteFile(filepath, data, 0644)
}
