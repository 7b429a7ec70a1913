package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestParseTaskType tests wire-name parsing for every supported type
func TestParseTaskType(t *testing.T) {
	t.Parallel()
	t.Run("Parses every supported type", func(t *testing.T) {
		assert.Len(t, AllTaskTypes(), 6)
		for _, taskType := range AllTaskTypes() {
			parsed, err := ParseTaskType(taskType.String())
			assert.NoError(t, err)
			assert.Equal(t, taskType, parsed)
		}
	})

	t.Run("Rejects unknown type", func(t *testing.T) {
		_, err := ParseTaskType("video")
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "unknown task type: video")
	})

	t.Run("Rejects empty string", func(t *testing.T) {
		_, err := ParseTaskType("")
		assert.Error(t, err)
	})
}

// TestTaskType_Tables tests the per-type field name, data key and suffix data
func TestTaskType_Tables(t *testing.T) {
	t.Parallel()
	tests := []struct {
		taskType  TaskType
		fieldName string
		dataKey   string
		suffix    string
		binary    bool
	}{
		{TaskImage, "images", "image_data", ".png", true},
		{TaskText, "texts", "analysis_data", "_analysis.json", false},
		{TaskEmbedding, "texts", "embedding_data", "_embedding.json", false},
		{TaskOCR, "images", "ocr_data", "_ocr.json", false},
		{TaskAudio, "audio_files", "audio_data", "_audio_analysis.json", false},
		{TaskDocument, "documents", "document_data", "_document_analysis.json", false},
	}

	for _, tt := range tests {
		t.Run(tt.taskType.String(), func(t *testing.T) {
			assert.Equal(t, tt.fieldName, tt.taskType.FieldName())
			assert.Equal(t, tt.dataKey, tt.taskType.DataKey())
			assert.Equal(t, tt.suffix, tt.taskType.OutputSuffix())
			assert.Equal(t, tt.binary, tt.taskType.Binary())
		})
	}
}

// TestTaskType_Title tests report message capitalization
func TestTaskType_Title(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "Image", TaskImage.Title())
	assert.Equal(t, "Ocr", TaskOCR.Title())
	assert.Equal(t, "Embedding", TaskEmbedding.Title())
}

// TestWorkerEndpoint_Addr tests endpoint identity formatting
func TestWorkerEndpoint_Addr(t *testing.T) {
	t.Parallel()
	ep := WorkerEndpoint{Host: "10.0.0.5", Port: 3000}
	assert.Equal(t, "10.0.0.5:3000", ep.Addr())
	assert.Equal(t, "http://10.0.0.5:3000/check_status", ep.URL("/check_status"))
}
