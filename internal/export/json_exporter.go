package export

import (
	"context"
	"io"
	"path/filepath"

	"github.com/klauspost/compress/zip"
	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"
)

const archiveName = "translations.zip"

type JSONExporter struct {
	fs     afero.Fs
	logger *logrus.Logger
}

func NewJSONExporter(fs afero.Fs, logger *logrus.Logger) *JSONExporter {
	return &JSONExporter{fs: fs, logger: logger}
}

func (e *JSONExporter) Format() Format { return FormatJSON }

// Export writes <code>.json for a single language. Several languages are
// bundled into translations.zip with one <code>.json entry each.
func (e *JSONExporter) Export(ctx context.Context, entries []Entry, languages []Language, dir string) (string, error) {
	if len(languages) == 1 {
		path := filepath.Join(dir, languages[0].Code+".json")
		if err := e.writeDocument(entries, languages[0].Code, path); err != nil {
			return "", err
		}
		return path, nil
	}

	tmpDir, err := afero.TempDir(e.fs, "", "json_export_")
	if err != nil {
		return "", ioFailure("create temp dir", "", err)
	}
	defer e.fs.RemoveAll(tmpDir)

	files := make([]string, 0, len(languages))
	for _, lang := range languages {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		path := filepath.Join(tmpDir, lang.Code+".json")
		if err := e.writeDocument(entries, lang.Code, path); err != nil {
			return "", err
		}
		files = append(files, path)
	}

	zipPath := filepath.Join(dir, archiveName)
	if err := e.writeArchive(zipPath, files); err != nil {
		e.fs.Remove(zipPath)
		return "", err
	}
	return zipPath, nil
}

func (e *JSONExporter) writeDocument(entries []Entry, code, path string) error {
	doc, conflicts := BuildDocument(entries, code)
	for _, c := range conflicts {
		e.logger.WithFields(logrus.Fields{
			"key":      c.Key,
			"language": code,
			"reason":   c.Reason,
		}).Warn("Skipping translation key that collides with an earlier key")
	}

	f, err := e.fs.Create(path)
	if err != nil {
		return ioFailure("create", path, err)
	}
	if err := doc.Encode(f); err != nil {
		f.Close()
		return ioFailure("write", path, err)
	}
	if err := f.Close(); err != nil {
		return ioFailure("close", path, err)
	}
	return nil
}

func (e *JSONExporter) writeArchive(zipPath string, files []string) error {
	out, err := e.fs.Create(zipPath)
	if err != nil {
		return ioFailure("create", zipPath, err)
	}
	defer out.Close()

	zw := zip.NewWriter(out)
	for _, path := range files {
		w, err := zw.CreateHeader(&zip.FileHeader{
			Name:   filepath.Base(path),
			Method: zip.Deflate,
		})
		if err != nil {
			return ioFailure("add entry to", zipPath, err)
		}
		if err := e.copyInto(w, path); err != nil {
			return err
		}
	}
	if err := zw.Close(); err != nil {
		return ioFailure("finalize", zipPath, err)
	}
	if err := out.Close(); err != nil {
		return ioFailure("close", zipPath, err)
	}
	return nil
}

func (e *JSONExporter) copyInto(w io.Writer, path string) error {
	f, err := e.fs.Open(path)
	if err != nil {
		return ioFailure("open", path, err)
	}
	defer f.Close()

	if _, err := io.Copy(w, f); err != nil {
		return ioFailure("archive", path, err)
	}
	return nil
}
