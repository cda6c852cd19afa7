package export

import (
	"context"
	"encoding/csv"
	"path/filepath"

	"github.com/spf13/afero"
)

const csvName = "translations.csv"

// utf8BOM lets spreadsheet tools detect the encoding.
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

type CSVExporter struct {
	fs afero.Fs
}

func NewCSVExporter(fs afero.Fs) *CSVExporter {
	return &CSVExporter{fs: fs}
}

func (e *CSVExporter) Format() Format { return FormatCSV }

// Export writes translations.csv: a Key column followed by one column per
// language code, one row per flat key.
func (e *CSVExporter) Export(ctx context.Context, entries []Entry, languages []Language, dir string) (string, error) {
	path := filepath.Join(dir, csvName)

	f, err := e.fs.Create(path)
	if err != nil {
		return "", ioFailure("create", path, err)
	}
	defer f.Close()

	if _, err := f.Write(utf8BOM); err != nil {
		return "", ioFailure("write", path, err)
	}

	w := csv.NewWriter(f)
	header := make([]string, 0, len(languages)+1)
	header = append(header, "Key")
	for _, lang := range languages {
		header = append(header, lang.Code)
	}
	if err := w.Write(header); err != nil {
		return "", ioFailure("write", path, err)
	}

	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		if entry.Placeholder {
			continue
		}
		row := make([]string, 0, len(languages)+1)
		row = append(row, entry.Key)
		for _, lang := range languages {
			row = append(row, entry.Text(lang.Code))
		}
		if err := w.Write(row); err != nil {
			return "", ioFailure("write", path, err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return "", ioFailure("flush", path, err)
	}
	if err := f.Close(); err != nil {
		return "", ioFailure("close", path, err)
	}
	return path, nil
}
