// CLAUDE:SUMMARY Uploaded batch file parsing: CSV 'names' column or JSON 'names' field into a flat name list.
package api

import (
	"fmt"
	"io"
	"strings"

	"github.com/hazyhaar/lodestone/pkg/catalog"
)

const errUnsupportedFileType = "unsupported file type, use CSV or JSON with a 'names' field"

// ExtractNames reads an uploaded batch file and returns the flat list of
// names to match. CSV files need a 'names' header column, JSON files a
// top-level 'names' string array. The extension decides the format.
func ExtractNames(filename string, r io.Reader) ([]string, error) {
	switch {
	case strings.HasSuffix(strings.ToLower(filename), ".csv"):
		names, err := catalog.NamesFromCSV(r, catalog.DefaultField)
		if err != nil {
			return nil, err
		}
		if len(names) == 0 {
			return nil, fmt.Errorf("no valid names found in CSV file")
		}
		return names, nil
	case strings.HasSuffix(strings.ToLower(filename), ".json"):
		data, err := io.ReadAll(r)
		if err != nil {
			return nil, fmt.Errorf("read upload: %w", err)
		}
		names, err := catalog.NamesFromJSON(data, catalog.DefaultField)
		if err != nil {
			return nil, err
		}
		if len(names) == 0 {
			return nil, fmt.Errorf("no valid names found in JSON file")
		}
		return names, nil
	default:
		return nil, fmt.Errorf("%s", errUnsupportedFileType)
	}
}
