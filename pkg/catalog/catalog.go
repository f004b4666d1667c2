// CLAUDE:SUMMARY Canonical entity catalog loading from inline config, CSV, JSON, or SQLite sources.
package catalog

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// DefaultField is the column/field name holding entity names in CSV and
// JSON sources when the config does not override it.
const DefaultField = "names"

// Config selects where the canonical entity catalog comes from. Either an
// inline entity list or a file path; when both are set the file wins.
type Config struct {
	Entities []string `yaml:"entities"` // inline list
	File     string   `yaml:"file"`     // .csv, .json, .db or .sqlite
	Field    string   `yaml:"field"`    // CSV column / JSON field, default "names"
}

// Load resolves the configured source into an ordered list of canonical
// entity names. Blank entries are skipped; an empty result is an error.
func Load(cfg Config) ([]string, error) {
	field := cfg.Field
	if field == "" {
		field = DefaultField
	}

	var names []string
	var err error
	switch {
	case cfg.File != "":
		names, err = loadFile(cfg.File, field)
	default:
		names = cleanNames(cfg.Entities)
	}
	if err != nil {
		return nil, err
	}
	if len(names) == 0 {
		return nil, fmt.Errorf("catalog source yields no entities")
	}
	return names, nil
}

func loadFile(path, field string) ([]string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("open catalog %s: %w", path, err)
		}
		defer f.Close()
		names, err := NamesFromCSV(f, field)
		if err != nil {
			return nil, fmt.Errorf("catalog %s: %w", path, err)
		}
		return names, nil
	case ".json":
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read catalog %s: %w", path, err)
		}
		names, err := NamesFromJSON(data, field)
		if err != nil {
			return nil, fmt.Errorf("catalog %s: %w", path, err)
		}
		return names, nil
	case ".db", ".sqlite":
		return loadSQLite(path)
	default:
		return nil, fmt.Errorf("catalog %s: unsupported extension (want .csv, .json, .db or .sqlite)", path)
	}
}

// NamesFromCSV extracts entity names from CSV data. The first row must be
// a header containing the given column; blank cells are skipped.
func NamesFromCSV(r io.Reader, column string) ([]string, error) {
	cr := csv.NewReader(r)
	cr.LazyQuotes = true
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("CSV is empty")
	}
	if err != nil {
		return nil, fmt.Errorf("read CSV header: %w", err)
	}

	idx := -1
	for i, h := range header {
		if strings.TrimSpace(h) == column {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, fmt.Errorf("CSV must contain a %q column", column)
	}

	var names []string
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read CSV row: %w", err)
		}
		if idx >= len(record) {
			continue
		}
		if name := strings.TrimSpace(record[idx]); name != "" {
			names = append(names, name)
		}
	}
	return names, nil
}

// NamesFromJSON extracts entity names from a JSON object holding an array
// of strings under the given field, e.g. {"names": ["Büro AG", ...]}.
func NamesFromJSON(data []byte, field string) ([]string, error) {
	var doc map[string]json.RawMessage
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("invalid JSON: %w", err)
	}
	raw, ok := doc[field]
	if !ok {
		return nil, fmt.Errorf("JSON must contain a %q field", field)
	}
	var names []string
	if err := json.Unmarshal(raw, &names); err != nil {
		return nil, fmt.Errorf("field %q must be an array of strings: %w", field, err)
	}
	return cleanNames(names), nil
}

func cleanNames(in []string) []string {
	out := make([]string, 0, len(in))
	for _, n := range in {
		if n = strings.TrimSpace(n); n != "" {
			out = append(out, n)
		}
	}
	return out
}
