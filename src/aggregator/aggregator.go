package aggregator

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/fileproc-eval/task-coordinator-service/src/dispatcher"
	"github.com/fileproc-eval/task-coordinator-service/src/models"
	"github.com/sirupsen/logrus"
)

// Aggregator consumes the unordered stream of per-slice results, decodes each
// returned item for its task type and persists it. A single item failing to
// decode or write is logged and dropped; it never aborts the remaining items,
// and a failed slice never blocks another slice's results.
type Aggregator struct {
	logger *logrus.Logger
}

// New creates an aggregator.
func New(logger *logrus.Logger) *Aggregator {
	return &Aggregator{logger: logger}
}

// Collect drains the results channel and returns the batch's final report.
// The reported count is the number of items actually persisted, which can be
// less than the number of submitted files when slices or items fail.
func (a *Aggregator) Collect(taskType models.TaskType, results <-chan dispatcher.SliceResult, outputDir string) models.DispatchResult {
	saved := make([]string, 0)

	for res := range results {
		if res.Err != nil {
			// Already logged by the dispatcher; the slice contributes nothing.
			continue
		}
		for _, item := range res.Items {
			path, err := a.persistItem(taskType, item, outputDir)
			if err != nil {
				a.logger.WithFields(logrus.Fields{
					"filename":  item.Filename,
					"task_type": taskType.String(),
					"error":     err.Error(),
				}).Warn("Dropping result item that could not be decoded or saved")
				continue
			}
			saved = append(saved, path)
		}
	}

	return models.DispatchResult{
		TaskType:            taskType.String(),
		Message:             fmt.Sprintf("%s processing complete", taskType.Title()),
		TotalFilesProcessed: len(saved),
		SavedFiles:          saved,
	}
}

// persistItem decodes one item's base64 envelope and writes it under
// outputDir following the task type's naming rule.
func (a *Aggregator) persistItem(taskType models.TaskType, item models.ProcessedItem, outputDir string) (string, error) {
	if item.Filename == "" {
		return "", errors.New("result item has no filename")
	}
	if item.Data == "" {
		return "", fmt.Errorf("result item has no %s payload", taskType.DataKey())
	}

	payload, err := base64.StdEncoding.DecodeString(item.Data)
	if err != nil {
		return "", fmt.Errorf("failed to decode base64 payload: %w", err)
	}

	if taskType.Binary() {
		path := filepath.Join(outputDir, "processed_"+item.Filename)
		if err := os.WriteFile(path, payload, 0o644); err != nil {
			return "", fmt.Errorf("failed to save result: %w", err)
		}
		return path, nil
	}

	if !utf8.Valid(payload) {
		return "", errors.New("payload is not valid UTF-8 text")
	}
	if !json.Valid(payload) {
		return "", errors.New("payload is not valid JSON")
	}

	path := filepath.Join(outputDir, baseName(item.Filename)+taskType.OutputSuffix())
	if err := os.WriteFile(path, payload, 0o644); err != nil {
		return "", fmt.Errorf("failed to save result: %w", err)
	}
	return path, nil
}

// baseName strips the final extension, if any.
func baseName(filename string) string {
	if i := strings.LastIndex(filename, "."); i >= 0 {
		return filename[:i]
	}
	return filename
}
