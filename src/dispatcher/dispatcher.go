package dispatcher

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"sync"
	"time"

	"github.com/fileproc-eval/task-coordinator-service/src/models"
	"github.com/sirupsen/logrus"
)

// TaskPath is the worker contract endpoint that accepts a slice of files.
const TaskPath = "/get_task"

// EndpointRemover is the registry surface the dispatcher needs: an endpoint
// whose slice call fails is dropped so the next batch does not probe it again.
type EndpointRemover interface {
	Remove(ep models.WorkerEndpoint)
}

// SliceResult is the outcome of one slice's worker call. Either Items is
// populated or Err is set; a failed slice contributes zero items and is never
// retried or reassigned.
type SliceResult struct {
	Endpoint models.WorkerEndpoint
	Items    []models.ProcessedItem
	Err      error
}

// workerResponse is the fixed response shape of the worker contract. Each
// result carries a filename plus one task-type-specific base64 data key.
type workerResponse struct {
	Results []map[string]string `json:"results"`
}

// Dispatcher issues one concurrent worker call per task slice, capped by a
// semaphore so a large pool cannot flood outbound connections. Results are
// delivered in completion order; consumers must not assume submission order.
type Dispatcher struct {
	registry    EndpointRemover
	client      *http.Client
	callTimeout time.Duration
	maxInFlight int
	logger      *logrus.Logger
}

// New creates a dispatcher. callTimeout bounds each worker call; maxInFlight
// caps concurrent outbound calls.
func New(reg EndpointRemover, callTimeout time.Duration, maxInFlight int, logger *logrus.Logger) *Dispatcher {
	if maxInFlight < 1 {
		maxInFlight = 1
	}
	return &Dispatcher{
		registry:    reg,
		client:      &http.Client{},
		callTimeout: callTimeout,
		maxInFlight: maxInFlight,
		logger:      logger,
	}
}

// Dispatch sends every slice to its worker concurrently and returns a channel
// of per-slice results in completion order. The channel is closed once all
// slices have finished. The passed context deliberately outlives any client
// request: an in-flight worker call runs to completion or timeout even if the
// submitting client disconnects.
func (d *Dispatcher) Dispatch(ctx context.Context, taskType models.TaskType, slices []models.TaskSlice) <-chan SliceResult {
	results := make(chan SliceResult, len(slices))
	sem := make(chan struct{}, d.maxInFlight)

	var wg sync.WaitGroup
	for _, slice := range slices {
		wg.Add(1)
		go func(s models.TaskSlice) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			items, err := d.sendSlice(ctx, taskType, s)
			if err != nil {
				d.logger.WithFields(logrus.Fields{
					"endpoint":  s.Endpoint.Addr(),
					"task_type": taskType.String(),
					"files":     len(s.Files),
					"error":     err.Error(),
				}).Error("Slice dispatch failed, dropping its files for this round")
				d.registry.Remove(s.Endpoint)
				results <- SliceResult{Endpoint: s.Endpoint, Err: err}
				return
			}

			d.logger.WithFields(logrus.Fields{
				"endpoint":  s.Endpoint.Addr(),
				"task_type": taskType.String(),
				"files":     len(s.Files),
				"results":   len(items),
			}).Info("Slice completed")
			results <- SliceResult{Endpoint: s.Endpoint, Items: items}
		}(slice)
	}

	go func() {
		wg.Wait()
		close(results)
	}()

	return results
}

// sendSlice performs one worker contract call: a multipart POST carrying the
// task type plus one part per file under the type's field name.
func (d *Dispatcher) sendSlice(ctx context.Context, taskType models.TaskType, s models.TaskSlice) ([]models.ProcessedItem, error) {
	body, contentType, err := encodeSlice(taskType, s.Files)
	if err != nil {
		return nil, fmt.Errorf("failed to encode slice body: %w", err)
	}

	callCtx, cancel := context.WithTimeout(ctx, d.callTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(callCtx, http.MethodPost, s.Endpoint.URL(TaskPath), body)
	if err != nil {
		return nil, fmt.Errorf("failed to build worker request: %w", err)
	}
	req.Header.Set("Content-Type", contentType)

	resp, err := d.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to contact worker %s: %w", s.Endpoint.Addr(), err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		io.Copy(io.Discard, resp.Body)
		return nil, fmt.Errorf("worker %s returned status %d", s.Endpoint.Addr(), resp.StatusCode)
	}

	var wr workerResponse
	if err := json.NewDecoder(resp.Body).Decode(&wr); err != nil {
		return nil, fmt.Errorf("failed to decode worker %s response: %w", s.Endpoint.Addr(), err)
	}

	dataKey := taskType.DataKey()
	items := make([]models.ProcessedItem, 0, len(wr.Results))
	for _, result := range wr.Results {
		items = append(items, models.ProcessedItem{
			Filename: result["filename"],
			Data:     result[dataKey],
		})
	}
	return items, nil
}

// encodeSlice builds the multipart body for one slice, preserving each file's
// declared mime type on its part.
func encodeSlice(taskType models.TaskType, files []models.FileBlob) (*bytes.Buffer, string, error) {
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	if err := writer.WriteField("task_type", taskType.String()); err != nil {
		return nil, "", err
	}

	for _, f := range files {
		header := make(textproto.MIMEHeader)
		header.Set("Content-Disposition", fmt.Sprintf(`form-data; name=%q; filename=%q`, taskType.FieldName(), f.Filename))
		mimeType := f.MimeType
		if mimeType == "" {
			mimeType = "application/octet-stream"
		}
		header.Set("Content-Type", mimeType)

		part, err := writer.CreatePart(header)
		if err != nil {
			return nil, "", err
		}
		if _, err := part.Write(f.Content); err != nil {
			return nil, "", err
		}
	}

	if err := writer.Close(); err != nil {
		return nil, "", err
	}
	return body, writer.FormDataContentType(), nil
}
