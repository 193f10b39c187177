package loader

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/xuri/excelize/v2"

	"weatherreport/internal/model"
)

// decoder wraps a compressed stream. The returned closer releases decoder state only.
type decoder func(r io.Reader) (io.ReadCloser, error)

func gzipDecoder(r io.Reader) (io.ReadCloser, error) {
	return gzip.NewReader(r)
}

func zstdDecoder(r io.Reader) (io.ReadCloser, error) {
	d, err := zstd.NewReader(r)
	if err != nil {
		return nil, err
	}
	return d.IOReadCloser(), nil
}

// LoadFile loads a dataset from path, choosing the format by extension:
// .csv, .csv.gz, .csv.zst or .xlsx.
func LoadFile(path string) (model.Dataset, error) {
	lower := strings.ToLower(path)

	var (
		ds  model.Dataset
		err error
	)
	switch {
	case strings.HasSuffix(lower, ".csv"):
		ds, err = loadCSVFile(path, nil)
	case strings.HasSuffix(lower, ".csv.gz"):
		ds, err = loadCSVFile(path, gzipDecoder)
	case strings.HasSuffix(lower, ".csv.zst"):
		ds, err = loadCSVFile(path, zstdDecoder)
	case strings.HasSuffix(lower, ".xlsx"):
		ds, err = loadWorkbook(path)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, filepath.Base(path))
	}
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", filepath.Base(path), err)
	}
	return ds, nil
}

func loadCSVFile(path string, decode decoder) (model.Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open data file: %w", err)
	}
	defer f.Close()

	var r io.Reader = f
	if decode != nil {
		dr, err := decode(f)
		if err != nil {
			return nil, fmt.Errorf("open decoder: %w", err)
		}
		defer dr.Close()
		r = dr
	}
	return LoadCSV(r)
}

func loadWorkbook(path string) (model.Dataset, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, ErrMissingHeader
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheets[0], err)
	}
	return Load(&sheetRows{rows: rows})
}

// sheetRows adapts in-memory spreadsheet rows to RowReader.
type sheetRows struct {
	rows [][]string
	next int
}

func (s *sheetRows) Read() ([]string, error) {
	if s.next >= len(s.rows) {
		return nil, io.EOF
	}
	row := s.rows[s.next]
	s.next++
	return row, nil
}

// FieldPos reports the spreadsheet row of the last row read.
func (s *sheetRows) FieldPos(int) (line, column int) {
	return s.next, 1
}
