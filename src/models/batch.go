package models

import "fmt"

// WorkerEndpoint is the identity of a registered worker process.
type WorkerEndpoint struct {
	Host string
	Port int
}

// Addr returns the endpoint as host:port.
func (e WorkerEndpoint) Addr() string {
	return fmt.Sprintf("%s:%d", e.Host, e.Port)
}

// URL builds an http URL for the given path on this endpoint.
func (e WorkerEndpoint) URL(path string) string {
	return fmt.Sprintf("http://%s:%d%s", e.Host, e.Port, path)
}

// FileBlob is one submitted file, immutable once received.
type FileBlob struct {
	Filename string
	Content  []byte
	MimeType string
}

// TaskBatch is one client-submitted group of files plus its task type. It is
// built per request and never stored.
type TaskBatch struct {
	Type  TaskType
	Files []FileBlob
}

// TaskSlice assigns a contiguous subsequence of a batch's files to one worker
// for one dispatch round.
type TaskSlice struct {
	Endpoint WorkerEndpoint
	Files    []FileBlob
}

// ProcessedItem is one result entry returned by a worker. Data holds the
// base64 transport envelope; its decoded meaning (binary vs JSON text)
// depends on the batch's task type.
type ProcessedItem struct {
	Filename string
	Data     string
}

// DispatchResult is the final report for one batch.
type DispatchResult struct {
	TaskType            string   `json:"task_type"`
	Message             string   `json:"message"`
	TotalFilesProcessed int      `json:"total_files_processed"`
	SavedFiles          []string `json:"saved_files"`
}

// RegisterRequest is the body of a worker registration call.
type RegisterRequest struct {
	SlaveIP   string `json:"slave_ip"`
	SlavePort int    `json:"slave_port"`
}

// BatchState tracks where a batch is in its lifecycle, for logging.
type BatchState string

const (
	BatchReceived    BatchState = "RECEIVED"
	BatchRejected    BatchState = "REJECTED"
	BatchProbed      BatchState = "PROBED"
	BatchPartitioned BatchState = "PARTITIONED"
	BatchDispatching BatchState = "DISPATCHING"
	BatchAggregated  BatchState = "AGGREGATED"
)
