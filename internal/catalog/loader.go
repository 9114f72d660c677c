package catalog

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// manifest column names; only id, name and image are required.
const (
	colID       = "id"
	colName     = "name"
	colPrice    = "price"
	colLastSeen = "last_seen"
	colImage    = "image"
	colBundle   = "bundle"
)

func parseBool(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true", "1", "yes", "y":
		return true
	}
	return false
}

// LoadManifest reads a CSV manifest file and converts its rows into items.
// Relative image paths are resolved against the manifest's directory.
func LoadManifest(path string, shopDate time.Time) ([]Item, error) {
	fp, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer fp.Close()

	entries, err := ReadEntries(fp)
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", path, err)
	}

	base := filepath.Dir(path)
	out := make([]Item, 0, len(entries))
	for _, e := range entries {
		if !IsRemote(e.Image) && e.Image != "" && !filepath.IsAbs(e.Image) {
			e.Image = filepath.Join(base, e.Image)
		}
		it, err := e.Item(shopDate)
		if err != nil {
			return nil, fmt.Errorf("loading %s: %w", path, err)
		}
		out = append(out, it)
	}
	return out, nil
}

// ReadEntries parses manifest rows from CSV with a header line.
func ReadEntries(r io.Reader) ([]Entry, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	rows, err := cr.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(rows) < 1 {
		return nil, fmt.Errorf("manifest has no header")
	}
	cols := map[string]int{}
	for i, h := range rows[0] {
		cols[strings.ToLower(strings.TrimSpace(h))] = i
	}
	for _, required := range []string{colID, colName, colImage} {
		if _, ok := cols[required]; !ok {
			return nil, fmt.Errorf("manifest header missing %q column", required)
		}
	}

	get := func(row []string, name string) string {
		if idx, ok := cols[name]; ok && idx < len(row) {
			return strings.TrimSpace(row[idx])
		}
		return ""
	}

	out := []Entry{}
	for n, row := range rows[1:] {
		if len(row) == 1 && strings.TrimSpace(row[0]) == "" {
			continue
		}
		e := Entry{
			ID:       get(row, colID),
			Name:     get(row, colName),
			LastSeen: get(row, colLastSeen),
			Image:    get(row, colImage),
			Bundle:   parseBool(get(row, colBundle)),
		}
		if priceStr := get(row, colPrice); priceStr != "" && priceStr != "-" {
			v, err := strconv.Atoi(priceStr)
			if err != nil {
				return nil, fmt.Errorf("row %d: invalid price %q", n+2, priceStr)
			}
			e.Price = v
		}
		out = append(out, e)
	}
	return out, nil
}

// IsRemote reports whether an image reference is an http(s) URL.
func IsRemote(ref string) bool {
	return strings.HasPrefix(ref, "http://") || strings.HasPrefix(ref, "https://")
}
