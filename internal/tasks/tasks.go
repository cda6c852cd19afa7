package tasks

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"translation-backend/internal/services"

	"github.com/hibiken/asynq"
	"github.com/sirupsen/logrus"
)

const (
	TypeExportProject = "export:project"
	TypeExportSweep   = "exports:sweep"

	QueueExports = "exports"
)

type ExportPayload struct {
	ExportID uint `json:"export_id"`
}

func NewExportTask(exportID uint) (*asynq.Task, error) {
	payload, err := json.Marshal(ExportPayload{ExportID: exportID})
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TypeExportProject, payload), nil
}

func NewSweepTask() *asynq.Task {
	return asynq.NewTask(TypeExportSweep, nil)
}

// taskEnqueuer is the part of asynq.Client the dispatcher needs.
type taskEnqueuer interface {
	EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

// Client queues export tasks on redis.
type Client struct {
	client taskEnqueuer
	logger *logrus.Logger
}

func NewClient(client taskEnqueuer, logger *logrus.Logger) *Client {
	return &Client{client: client, logger: logger}
}

// EnqueueExport queues one run of the export. Failed runs are not retried.
func (c *Client) EnqueueExport(ctx context.Context, exportID uint) error {
	task, err := NewExportTask(exportID)
	if err != nil {
		return err
	}

	info, err := c.client.EnqueueContext(ctx, task,
		asynq.TaskID(fmt.Sprintf("export-%d", exportID)),
		asynq.Queue(QueueExports),
		asynq.MaxRetry(0),
		asynq.Timeout(30*time.Minute),
	)
	if err != nil {
		c.logger.WithError(err).WithFields(logrus.Fields{
			"type":      TypeExportProject,
			"export_id": exportID,
		}).Error("Failed to enqueue task")
		return err
	}

	c.logger.WithFields(logrus.Fields{
		"task_id":   info.ID,
		"queue":     info.Queue,
		"export_id": exportID,
	}).Debug("Task enqueued")
	return nil
}

type Handlers struct {
	jobs      services.ExportJobService
	retention services.RetentionService
	logger    *logrus.Logger
	now       func() time.Time
}

func NewHandlers(jobs services.ExportJobService, retention services.RetentionService, logger *logrus.Logger) *Handlers {
	return &Handlers{
		jobs:      jobs,
		retention: retention,
		logger:    logger,
		now:       time.Now,
	}
}

// Register binds the task types to their handlers.
func (h *Handlers) Register(mux *asynq.ServeMux) {
	mux.HandleFunc(TypeExportProject, h.HandleExportTask)
	mux.HandleFunc(TypeExportSweep, h.HandleSweepTask)
}

func (h *Handlers) HandleExportTask(ctx context.Context, t *asynq.Task) error {
	var payload ExportPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return fmt.Errorf("decode %s payload: %v: %w", t.Type(), err, asynq.SkipRetry)
	}

	if err := h.jobs.Run(ctx, payload.ExportID); err != nil {
		h.logger.WithError(err).WithFields(logrus.Fields{
			"type":      t.Type(),
			"export_id": payload.ExportID,
		}).Error("Export task failed")
		// export failures are final
		return fmt.Errorf("export %d: %v: %w", payload.ExportID, err, asynq.SkipRetry)
	}
	return nil
}

func (h *Handlers) HandleSweepTask(ctx context.Context, t *asynq.Task) error {
	report, err := h.retention.Sweep(ctx, h.now().UTC())
	if err != nil {
		h.logger.WithError(err).WithField("type", t.Type()).Error("Retention sweep failed")
		return err
	}
	if report.Failed > 0 {
		h.logger.WithField("failed", report.Failed).Warn("Some expired exports could not be removed")
	}
	return nil
}
