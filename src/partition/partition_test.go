package partition

import (
	"fmt"
	"testing"

	"github.com/fileproc-eval/task-coordinator-service/src/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ============================================================================
// TEST HELPERS
// ============================================================================

func makeFiles(n int) []models.FileBlob {
	files := make([]models.FileBlob, n)
	for i := range files {
		files[i] = models.FileBlob{
			Filename: fmt.Sprintf("file_%d.png", i),
			Content:  []byte{byte(i)},
			MimeType: "application/octet-stream",
		}
	}
	return files
}

func makeEndpoints(k int) []models.WorkerEndpoint {
	endpoints := make([]models.WorkerEndpoint, k)
	for i := range endpoints {
		endpoints[i] = models.WorkerEndpoint{Host: "10.0.0.1", Port: 3000 + i}
	}
	return endpoints
}

// ============================================================================
// TESTS
// ============================================================================

// TestSplit_SevenFilesThreeWorkers tests the canonical uneven split
func TestSplit_SevenFilesThreeWorkers(t *testing.T) {
	t.Parallel()
	// Arrange
	files := makeFiles(7)
	endpoints := makeEndpoints(3)

	// Act
	slices := Split(files, endpoints)

	// Assert: slices of 3, 2, 2 assigned in endpoint order
	require.Len(t, slices, 3)
	assert.Equal(t, endpoints[0], slices[0].Endpoint)
	assert.Len(t, slices[0].Files, 3)
	assert.Equal(t, endpoints[1], slices[1].Endpoint)
	assert.Len(t, slices[1].Files, 2)
	assert.Equal(t, endpoints[2], slices[2].Endpoint)
	assert.Len(t, slices[2].Files, 2)

	// Slices are contiguous and cover the batch in order
	assert.Equal(t, files[0:3], slices[0].Files)
	assert.Equal(t, files[3:5], slices[1].Files)
	assert.Equal(t, files[5:7], slices[2].Files)
}

// TestSplit_Balance tests the size invariants over a grid of N and K
func TestSplit_Balance(t *testing.T) {
	t.Parallel()
	for n := 1; n <= 12; n++ {
		for k := 1; k <= 6; k++ {
			t.Run(fmt.Sprintf("N=%d K=%d", n, k), func(t *testing.T) {
				slices := Split(makeFiles(n), makeEndpoints(k))

				total := 0
				minSize, maxSize := n, 0
				for _, s := range slices {
					size := len(s.Files)
					require.Greater(t, size, 0, "empty slices must be omitted")
					total += size
					if size < minSize {
						minSize = size
					}
					if size > maxSize {
						maxSize = size
					}
				}

				assert.Equal(t, n, total, "slice sizes must sum to N")
				assert.LessOrEqual(t, maxSize-minSize, 1, "slice sizes must differ by at most one")
				assert.LessOrEqual(t, len(slices), k, "at most one slice per endpoint")
			})
		}
	}
}

// TestSplit_FewerFilesThanWorkers tests that surplus workers get no slice
func TestSplit_FewerFilesThanWorkers(t *testing.T) {
	t.Parallel()
	files := makeFiles(2)
	endpoints := makeEndpoints(5)

	slices := Split(files, endpoints)

	require.Len(t, slices, 2)
	assert.Equal(t, endpoints[0], slices[0].Endpoint)
	assert.Equal(t, endpoints[1], slices[1].Endpoint)
}

// TestSplit_Deterministic tests that identical inputs produce identical output
func TestSplit_Deterministic(t *testing.T) {
	t.Parallel()
	files := makeFiles(9)
	endpoints := makeEndpoints(4)

	assert.Equal(t, Split(files, endpoints), Split(files, endpoints))
}

// TestSplit_DegenerateInputs tests the N=0 and K=0 guards
func TestSplit_DegenerateInputs(t *testing.T) {
	t.Parallel()
	assert.Nil(t, Split(nil, makeEndpoints(3)))
	assert.Nil(t, Split(makeFiles(3), nil))
}
