package models

import (
	"fmt"
	"strings"
)

// TaskType identifies one of the supported processing kinds. The set is
// closed: each type owns its multipart field name, worker response data key,
// output suffix and payload kind, so no other package carries per-type tables.
type TaskType int

const (
	TaskImage TaskType = iota
	TaskText
	TaskEmbedding
	TaskOCR
	TaskAudio
	TaskDocument
)

type taskTypeInfo struct {
	name      string
	fieldName string
	dataKey   string
	suffix    string
	binary    bool
}

var taskTypeTable = map[TaskType]taskTypeInfo{
	TaskImage:     {name: "image", fieldName: "images", dataKey: "image_data", suffix: ".png", binary: true},
	TaskText:      {name: "text", fieldName: "texts", dataKey: "analysis_data", suffix: "_analysis.json"},
	TaskEmbedding: {name: "embedding", fieldName: "texts", dataKey: "embedding_data", suffix: "_embedding.json"},
	TaskOCR:       {name: "ocr", fieldName: "images", dataKey: "ocr_data", suffix: "_ocr.json"},
	TaskAudio:     {name: "audio", fieldName: "audio_files", dataKey: "audio_data", suffix: "_audio_analysis.json"},
	TaskDocument:  {name: "document", fieldName: "documents", dataKey: "document_data", suffix: "_document_analysis.json"},
}

// ParseTaskType maps the wire name of a task type to its enum value.
func ParseTaskType(name string) (TaskType, error) {
	for t, info := range taskTypeTable {
		if info.name == name {
			return t, nil
		}
	}
	return 0, fmt.Errorf("unknown task type: %s", name)
}

// AllTaskTypes returns every supported task type.
func AllTaskTypes() []TaskType {
	return []TaskType{TaskImage, TaskText, TaskEmbedding, TaskOCR, TaskAudio, TaskDocument}
}

func (t TaskType) String() string {
	return taskTypeTable[t].name
}

// FieldName is the multipart form field carrying this type's files, both on
// the client submission and on the worker contract.
func (t TaskType) FieldName() string {
	return taskTypeTable[t].fieldName
}

// DataKey is the JSON key under which a worker returns this type's payload.
func (t TaskType) DataKey() string {
	return taskTypeTable[t].dataKey
}

// OutputSuffix is appended to the file basename when persisting non-binary
// results.
func (t TaskType) OutputSuffix() string {
	return taskTypeTable[t].suffix
}

// Binary reports whether the decoded payload is raw bytes rather than UTF-8
// JSON text.
func (t TaskType) Binary() bool {
	return taskTypeTable[t].binary
}

// Title returns the capitalized wire name, used in the batch report message.
func (t TaskType) Title() string {
	name := taskTypeTable[t].name
	if name == "ocr" {
		return "Ocr"
	}
	return strings.ToUpper(name[:1]) + name[1:]
}
