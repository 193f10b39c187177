package loader

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"weatherreport/internal/model"
)

var (
	// ErrMalformedRow matches every *MalformedRowError.
	ErrMalformedRow = errors.New("malformed row")
	// ErrMissingHeader is returned when the source has no rows at all.
	ErrMissingHeader = errors.New("missing header row")
	// ErrUnsupportedFormat is returned by LoadFile for unknown extensions.
	ErrUnsupportedFormat = errors.New("unsupported data format")
)

// MalformedRowError reports a row that cannot become a WeatherRecord.
type MalformedRowError struct {
	Line int // 1-based, header included
	Row  []string
	Err  error
}

func (e *MalformedRowError) Error() string {
	return fmt.Sprintf("line %d: malformed row %q: %v", e.Line, e.Row, e.Err)
}

func (e *MalformedRowError) Unwrap() error { return e.Err }

// Is makes errors.Is(err, ErrMalformedRow) hold.
func (e *MalformedRowError) Is(target error) bool { return target == ErrMalformedRow }

// RowReader yields rows as string fields and io.EOF when exhausted.
// *csv.Reader satisfies it.
type RowReader interface {
	Read() ([]string, error)
}

// fieldPositioner is implemented by readers that know where the last row started.
type fieldPositioner interface {
	FieldPos(field int) (line, column int)
}

// Load discards the header row and converts every remaining non-blank row.
func Load(rows RowReader) (model.Dataset, error) {
	if _, err := rows.Read(); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, ErrMissingHeader
		}
		return nil, fmt.Errorf("read header: %w", err)
	}

	ds := model.Dataset{}
	n := 1
	for {
		row, err := rows.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		n++
		var pe *csv.ParseError
		if errors.As(err, &pe) {
			return nil, &MalformedRowError{Line: pe.StartLine, Row: row, Err: pe.Err}
		}
		if err != nil {
			return nil, fmt.Errorf("read row %d: %w", n, err)
		}
		if isBlank(row) {
			continue
		}

		rec, err := parseRecord(row)
		if err != nil {
			return nil, &MalformedRowError{Line: lineOf(rows, n), Row: row, Err: err}
		}
		ds = append(ds, rec)
	}
	return ds, nil
}

// LoadCSV reads CSV text with a header row followed by date,low,high rows.
func LoadCSV(r io.Reader) (model.Dataset, error) {
	reader := csv.NewReader(r)
	// row width is checked per row so short rows surface as MalformedRowError
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	return Load(reader)
}

func parseRecord(row []string) (model.WeatherRecord, error) {
	if len(row) < 3 {
		return model.WeatherRecord{}, fmt.Errorf("expected 3 columns, got %d", len(row))
	}
	low, err := strconv.Atoi(strings.TrimSpace(row[1]))
	if err != nil {
		return model.WeatherRecord{}, fmt.Errorf("low temperature: %w", err)
	}
	high, err := strconv.Atoi(strings.TrimSpace(row[2]))
	if err != nil {
		return model.WeatherRecord{}, fmt.Errorf("high temperature: %w", err)
	}
	return model.WeatherRecord{Date: row[0], LowF: low, HighF: high}, nil
}

func isBlank(row []string) bool {
	for _, f := range row {
		if strings.TrimSpace(f) != "" {
			return false
		}
	}
	return true
}

func lineOf(rows RowReader, ordinal int) int {
	if p, ok := rows.(fieldPositioner); ok {
		if line, _ := p.FieldPos(0); line > 0 {
			return line
		}
	}
	return ordinal
}
