package server

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"

	"github.com/fileproc-eval/task-coordinator-service/src/aggregator"
	"github.com/fileproc-eval/task-coordinator-service/src/dispatcher"
	"github.com/fileproc-eval/task-coordinator-service/src/models"
	"github.com/fileproc-eval/task-coordinator-service/src/partition"
	"github.com/fileproc-eval/task-coordinator-service/src/prober"
	"github.com/fileproc-eval/task-coordinator-service/src/registry"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// Handler owns the coordinator's HTTP surface: worker registration and batch
// submission.
type Handler struct {
	registry   *registry.Registry
	prober     *prober.Prober
	dispatcher *dispatcher.Dispatcher
	aggregator *aggregator.Aggregator
	outputDir  string
	logger     *logrus.Logger
}

// NewHandler creates the handler with its collaborators.
func NewHandler(
	reg *registry.Registry,
	prb *prober.Prober,
	dsp *dispatcher.Dispatcher,
	agg *aggregator.Aggregator,
	outputDir string,
	logger *logrus.Logger,
) *Handler {
	return &Handler{
		registry:   reg,
		prober:     prb,
		dispatcher: dsp,
		aggregator: agg,
		outputDir:  outputDir,
		logger:     logger,
	}
}

// RegisterRoutes attaches the coordinator routes to the engine.
func (h *Handler) RegisterRoutes(r *gin.Engine) {
	r.GET("/", h.Home)
	r.POST("/register", h.RegisterWorker)
	r.POST("/assign_task", h.AssignTask)
}

// Home answers a plain liveness text.
func (h *Handler) Home(c *gin.Context) {
	c.String(http.StatusOK, "Master is working")
}

// RegisterWorker adds a worker endpoint to the registry. Re-registering an
// existing endpoint succeeds and leaves a single entry.
func (h *Handler) RegisterWorker(c *gin.Context) {
	var req models.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.SlaveIP == "" || req.SlavePort == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "slave_ip and slave_port are required"})
		return
	}

	h.registry.Register(models.WorkerEndpoint{Host: req.SlaveIP, Port: req.SlavePort})
	c.JSON(http.StatusOK, gin.H{"status": "success"})
}

// AssignTask runs one batch through the full pipeline: probe the registry,
// partition the files over the live snapshot, dispatch one concurrent call
// per slice and aggregate whatever comes back. Slice and item failures shrink
// the reported count but never fail the batch call itself.
func (h *Handler) AssignTask(c *gin.Context) {
	batchID := uuid.NewString()
	batchLog := h.logger.WithField("batch_id", batchID)
	batchLog.WithField("state", models.BatchReceived).Info("Batch received")

	// Prune dead workers before looking at the payload; an empty pool rejects
	// the batch before the partitioner or dispatcher ever run.
	h.prober.Prune(c.Request.Context())
	snapshot := h.registry.Snapshot()
	if len(snapshot) == 0 {
		batchLog.WithField("state", models.BatchRejected).Warn("No live workers after probing")
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "No slaves available"})
		return
	}
	batchLog.WithFields(logrus.Fields{
		"state":   models.BatchProbed,
		"workers": len(snapshot),
	}).Info("Registry probed")

	taskTypeName := c.PostForm("task_type")
	if taskTypeName == "" {
		taskTypeName = "image"
	}
	taskType, err := models.ParseTaskType(taskTypeName)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("Unknown task type: %s", taskTypeName)})
		return
	}

	batch, err := h.readBatch(c, taskType)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	outputDir := filepath.Join(h.outputDir, taskType.String())
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		batchLog.WithField("error", err.Error()).Error("Failed to create output directory")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to prepare output directory"})
		return
	}

	slices := partition.Split(batch.Files, snapshot)
	batchLog.WithFields(logrus.Fields{
		"state":     models.BatchPartitioned,
		"task_type": taskType.String(),
		"files":     len(batch.Files),
		"slices":    len(slices),
	}).Info("Batch partitioned")

	// The dispatch context is detached from the request on purpose: a client
	// disconnect must not cancel in-flight worker calls.
	batchLog.WithField("state", models.BatchDispatching).Info("Dispatching slices")
	results := h.dispatcher.Dispatch(context.Background(), taskType, slices)

	report := h.aggregator.Collect(taskType, results, outputDir)
	batchLog.WithFields(logrus.Fields{
		"state":     models.BatchAggregated,
		"persisted": report.TotalFilesProcessed,
		"submitted": len(batch.Files),
	}).Info("Batch aggregated")

	c.JSON(http.StatusOK, report)
}

// readBatch pulls the batch's files from the multipart form under the task
// type's field name.
func (h *Handler) readBatch(c *gin.Context, taskType models.TaskType) (models.TaskBatch, error) {
	form, err := c.MultipartForm()
	if err != nil {
		return models.TaskBatch{}, &noFilesError{taskType: taskType}
	}

	headers := form.File[taskType.FieldName()]
	files := make([]models.FileBlob, 0, len(headers))
	for _, fh := range headers {
		f, err := fh.Open()
		if err != nil {
			h.logger.WithFields(logrus.Fields{
				"filename": fh.Filename,
				"error":    err.Error(),
			}).Warn("Skipping unreadable uploaded file")
			continue
		}
		content, err := io.ReadAll(f)
		f.Close()
		if err != nil {
			h.logger.WithFields(logrus.Fields{
				"filename": fh.Filename,
				"error":    err.Error(),
			}).Warn("Skipping unreadable uploaded file")
			continue
		}
		files = append(files, models.FileBlob{
			Filename: fh.Filename,
			Content:  content,
			MimeType: fh.Header.Get("Content-Type"),
		})
	}

	if len(files) == 0 {
		return models.TaskBatch{}, &noFilesError{taskType: taskType}
	}
	return models.TaskBatch{Type: taskType, Files: files}, nil
}

type noFilesError struct {
	taskType models.TaskType
}

func (e *noFilesError) Error() string {
	return "No files provided for " + e.taskType.String() + " processing"
}
