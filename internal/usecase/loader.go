package usecase

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"FinCast/internal/domain/models"
	"FinCast/pkg/util"
)

// LoadSeries reads a price history CSV from path.
func LoadSeries(path string) (*models.Series, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	s, err := ReadSeries(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	s.Source = path
	return s, nil
}

type columns struct {
	date, close, open, high, low, volume int
}

// ReadSeries parses CSV with a Date (or Start) column and a Close column.
// Open, High, Low and Volume are kept when present. Empty Close cells load as
// NaN. Rows come back sorted ascending by date.
func ReadSeries(r io.Reader) (*models.Series, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: empty file", models.ErrDataFormat)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: header: %v", models.ErrDataFormat, err)
	}
	cols, err := locateColumns(header)
	if err != nil {
		return nil, err
	}

	var rows []models.Row
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %v", models.ErrDataFormat, err)
		}
		line, _ := cr.FieldPos(0)
		if blank(rec) {
			continue
		}
		row, err := parseRow(rec, cols)
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: %v", models.ErrDataFormat, line, err)
		}
		rows = append(rows, row)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: no data rows", models.ErrDataFormat)
	}

	sort.SliceStable(rows, func(i, j int) bool { return rows[i].Date.Before(rows[j].Date) })
	for i := 1; i < len(rows); i++ {
		if rows[i].Date.Equal(rows[i-1].Date) {
			return nil, fmt.Errorf("%w: duplicate date %s", models.ErrDataFormat, util.FormatDate(rows[i].Date))
		}
	}
	return &models.Series{Rows: rows}, nil
}

func locateColumns(header []string) (columns, error) {
	cols := columns{date: -1, close: -1, open: -1, high: -1, low: -1, volume: -1}
	start := -1
	for i, h := range header {
		name := strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")))
		switch name {
		case "date":
			cols.date = i
		case "start":
			start = i
		case "close":
			cols.close = i
		case "open":
			cols.open = i
		case "high":
			cols.high = i
		case "low":
			cols.low = i
		case "volume":
			cols.volume = i
		}
	}
	if cols.date < 0 {
		cols.date = start
	}
	if cols.date < 0 {
		return cols, fmt.Errorf("%w: missing Date or Start column", models.ErrDataFormat)
	}
	if cols.close < 0 {
		return cols, fmt.Errorf("%w: missing Close column", models.ErrDataFormat)
	}
	return cols, nil
}

func parseRow(rec []string, cols columns) (models.Row, error) {
	raw := field(rec, cols.date)
	date, ok := util.ParseDate(raw)
	if !ok {
		return models.Row{}, fmt.Errorf("unparseable date %q", raw)
	}

	row := models.Row{Date: date, Close: math.NaN()}
	if c := field(rec, cols.close); c != "" {
		v, err := strconv.ParseFloat(c, 64)
		if err != nil {
			return models.Row{}, fmt.Errorf("unparseable close %q", c)
		}
		row.Close = v
	}
	row.Open = optional(rec, cols.open)
	row.High = optional(rec, cols.high)
	row.Low = optional(rec, cols.low)
	row.Volume = optional(rec, cols.volume)
	return row, nil
}

func field(rec []string, i int) string {
	if i < 0 || i >= len(rec) {
		return ""
	}
	return strings.TrimSpace(rec[i])
}

// optional columns are informational, so unparseable cells are dropped.
func optional(rec []string, i int) *float64 {
	s := strings.ReplaceAll(field(rec, i), ",", "")
	if s == "" {
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	return &v
}

func blank(rec []string) bool {
	for _, f := range rec {
		if strings.TrimSpace(f) != "" {
			return false
		}
	}
	return true
}

// ResolveCSV picks the input file: the explicit path when set, else the first
// *.csv (lexical order) in dir, else in the working directory.
func ResolveCSV(explicit, dir string) (string, error) {
	if explicit != "" {
		if _, err := os.Stat(explicit); err != nil {
			return "", fmt.Errorf("csv %s: %w", explicit, err)
		}
		return explicit, nil
	}
	for _, d := range []string{dir, "."} {
		if d == "" {
			continue
		}
		matches, err := filepath.Glob(filepath.Join(d, "*.csv"))
		if err != nil {
			return "", err
		}
		if len(matches) > 0 {
			sort.Strings(matches)
			return matches[0], nil
		}
	}
	return "", fmt.Errorf("no csv file found in %q or working directory: %w", dir, os.ErrNotExist)
}
