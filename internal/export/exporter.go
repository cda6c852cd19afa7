package export

import (
	"context"
	"fmt"

	"translation-backend/internal/errs"

	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"
)

// Exporter writes the translations of the given languages into dir and returns
// the path of the primary artifact.
type Exporter interface {
	Format() Format
	Export(ctx context.Context, entries []Entry, languages []Language, dir string) (string, error)
}

// ExporterFor returns the exporter of a format. Formats are a closed set;
// adding one means adding a case here.
func ExporterFor(format Format, fs afero.Fs, logger *logrus.Logger) (Exporter, error) {
	switch format {
	case FormatJSON:
		return NewJSONExporter(fs, logger), nil
	case FormatCSV:
		return NewCSVExporter(fs), nil
	}
	return nil, fmt.Errorf("%w: %q", errs.ErrUnsupportedFormat, format)
}

func ioFailure(op, path string, err error) error {
	return fmt.Errorf("%w: %s %s: %v", errs.ErrIO, op, path, err)
}
