package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"
)

// report mirrors the coordinator's batch response.
type report struct {
	TaskType            string   `json:"task_type"`
	Message             string   `json:"message"`
	TotalFilesProcessed int      `json:"total_files_processed"`
	SavedFiles          []string `json:"saved_files"`
}

// fieldNameFor maps a task type to its multipart field name.
func fieldNameFor(taskType string) (string, bool) {
	switch taskType {
	case "image", "ocr":
		return "images", true
	case "text", "embedding":
		return "texts", true
	case "audio":
		return "audio_files", true
	case "document":
		return "documents", true
	}
	return "", false
}

func usage() {
	fmt.Println("Usage: test_client <coordinator_url> <task_type> <file1> [file2 ...]")
	fmt.Println("Task types: image, text, embedding, ocr, audio, document")
	fmt.Println("Examples:")
	fmt.Println("  test_client http://localhost:5000 image photo1.jpg photo2.png")
	fmt.Println("  test_client http://localhost:5000 text document.txt essay.txt")
	fmt.Println("  test_client http://localhost:5000 audio song.wav speech.wav")
}

func buildRequestBody(taskType, fieldName string, paths []string) (*bytes.Buffer, string, int, error) {
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	attached := 0

	if err := writer.WriteField("task_type", taskType); err != nil {
		return nil, "", 0, err
	}

	for _, path := range paths {
		content, err := os.ReadFile(path)
		if err != nil {
			fmt.Printf("File not found: %s\n", path)
			continue
		}
		part, err := writer.CreateFormFile(fieldName, filepath.Base(path))
		if err != nil {
			return nil, "", 0, err
		}
		if _, err := part.Write(content); err != nil {
			return nil, "", 0, err
		}
		attached++
	}

	if err := writer.Close(); err != nil {
		return nil, "", 0, err
	}
	return body, writer.FormDataContentType(), attached, nil
}

func main() {
	if len(os.Args) < 4 {
		usage()
		os.Exit(1)
	}

	coordinatorURL := strings.TrimRight(os.Args[1], "/")
	taskType := os.Args[2]
	paths := os.Args[3:]

	fieldName, ok := fieldNameFor(taskType)
	if !ok {
		fmt.Printf("Unknown task type: %s\n", taskType)
		os.Exit(1)
	}

	body, contentType, attached, err := buildRequestBody(taskType, fieldName, paths)
	if err != nil {
		fmt.Printf("Failed to build request: %v\n", err)
		os.Exit(1)
	}
	if attached == 0 {
		fmt.Println("No valid files to send")
		os.Exit(1)
	}

	req, err := http.NewRequest(http.MethodPost, coordinatorURL+"/assign_task", body)
	if err != nil {
		fmt.Printf("Failed to build request: %v\n", err)
		os.Exit(1)
	}
	req.Header.Set("Content-Type", contentType)

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		fmt.Printf("Failed to reach coordinator: %v\n", err)
		os.Exit(1)
	}
	defer resp.Body.Close()

	raw, _ := io.ReadAll(resp.Body)
	var result report
	if err := json.Unmarshal(raw, &result); err != nil {
		fmt.Printf("Response: %s\n", string(raw))
		os.Exit(1)
	}

	fmt.Printf("Task Type: %s\n", result.TaskType)
	fmt.Printf("Message: %s\n", result.Message)
	fmt.Printf("Files Processed: %d\n", result.TotalFilesProcessed)
	if len(result.SavedFiles) > 0 {
		fmt.Println("Saved Files:")
		for _, path := range result.SavedFiles {
			fmt.Printf("  - %s\n", path)
		}
	}
}
