package services

import (
	"context"
	"errors"
	"io"
	"sync"
	"testing"
	"time"

	"translation-backend/internal/config"
	"translation-backend/internal/database"
	"translation-backend/internal/database/dbtest"
	"translation-backend/internal/repository"

	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"
)

const exportRoot = "/exports"

type fakeEnqueuer struct {
	mu  sync.Mutex
	ids []uint
	err error
}

func (f *fakeEnqueuer) EnqueueExport(_ context.Context, exportID uint) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.ids = append(f.ids, exportID)
	return nil
}

type fakeMirror struct {
	mu        sync.Mutex
	objects   map[string]string
	uploadErr error
}

func newFakeMirror() *fakeMirror {
	return &fakeMirror{objects: make(map[string]string)}
}

func (m *fakeMirror) Upload(_ context.Context, objectKey, filePath, _ string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.uploadErr != nil {
		return m.uploadErr
	}
	m.objects[objectKey] = filePath
	return nil
}

func (m *fakeMirror) PresignedURL(_ context.Context, objectKey, fileName string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.objects[objectKey]; !ok {
		return "", errors.New("no such object")
	}
	return "https://minio.local/exports/" + objectKey + "?name=" + fileName, nil
}

func (m *fakeMirror) Remove(_ context.Context, objectKey string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.objects, objectKey)
	return nil
}

type testEnv struct {
	db           *database.Database
	fx           *dbtest.Fixture
	fs           afero.Fs
	cfg          config.ExportConfig
	logger       *logrus.Logger
	projects     repository.ProjectRepository
	languages    repository.LanguageRepository
	translations repository.TranslationRepository
	exports      repository.ExportRepository
	exporter     ExportService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db := dbtest.New(t)
	logger := logrus.New()
	logger.SetOutput(io.Discard)

	fs := afero.NewMemMapFs()
	require.NoError(t, fs.MkdirAll(exportRoot, 0o755))

	env := &testEnv{
		db:           db,
		fx:           dbtest.Seed(t, db),
		fs:           fs,
		cfg:          config.ExportConfig{Root: exportRoot, Retention: 168 * time.Hour},
		logger:       logger,
		projects:     repository.NewProjectRepository(db),
		languages:    repository.NewLanguageRepository(db),
		translations: repository.NewTranslationRepository(db),
		exports:      repository.NewExportRepository(db),
	}
	env.exporter = NewExportService(env.projects, env.languages, env.translations, fs, env.cfg, logger)
	return env
}

func (e *testEnv) jobs(enqueuer Enqueuer, mirror ArtifactMirror) ExportJobService {
	return NewExportJobService(e.exports, e.projects, e.exporter, enqueuer, mirror, e.fs, e.cfg, e.logger)
}

func (e *testEnv) scratchDirs(t *testing.T) []string {
	t.Helper()
	infos, err := afero.ReadDir(e.fs, exportRoot)
	require.NoError(t, err)
	var names []string
	for _, info := range infos {
		if info.IsDir() {
			names = append(names, info.Name())
		}
	}
	return names
}
