// Package partition splits a batch's files across the live worker endpoints.
package partition

import "github.com/fileproc-eval/task-coordinator-service/src/models"

// Split divides the ordered files across the ordered endpoints into
// contiguous slices whose sizes differ by at most one. With N files and K
// endpoints the first N%K endpoints receive N/K+1 files and the rest N/K;
// endpoints that would receive nothing are omitted. The function is pure:
// identical inputs always produce identical slices. Callers reject empty
// batches and empty endpoint lists before calling.
func Split(files []models.FileBlob, endpoints []models.WorkerEndpoint) []models.TaskSlice {
	n := len(files)
	k := len(endpoints)
	if n == 0 || k == 0 {
		return nil
	}

	base := n / k
	remainder := n % k

	slices := make([]models.TaskSlice, 0, k)
	start := 0
	for i, ep := range endpoints {
		size := base
		if i < remainder {
			size++
		}
		if size == 0 {
			continue
		}
		slices = append(slices, models.TaskSlice{
			Endpoint: ep,
			Files:    files[start : start+size],
		})
		start += size
	}

	return slices
}
