package registry

import (
	"sort"
	"sync"

	"github.com/fileproc-eval/task-coordinator-service/src/models"
	"github.com/sirupsen/logrus"
)

// Registry is the shared set of known worker endpoints. It is mutated by the
// registration handler, by the prober when an endpoint fails its liveness
// check, and by the dispatcher when a slice call fails, so every operation
// takes the lock. Raw iteration is never exposed; consumers work on a
// Snapshot.
type Registry struct {
	mu        sync.RWMutex
	endpoints map[models.WorkerEndpoint]struct{}
	logger    *logrus.Logger
}

// New creates an empty registry.
func New(logger *logrus.Logger) *Registry {
	return &Registry{
		endpoints: make(map[models.WorkerEndpoint]struct{}),
		logger:    logger,
	}
}

// Register adds an endpoint. Registering an endpoint that is already present
// is a no-op.
func (r *Registry) Register(ep models.WorkerEndpoint) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.endpoints[ep]; ok {
		r.logger.WithField("endpoint", ep.Addr()).Debug("Worker already registered")
		return
	}

	r.endpoints[ep] = struct{}{}
	r.logger.WithFields(logrus.Fields{
		"endpoint": ep.Addr(),
		"workers":  len(r.endpoints),
	}).Info("Worker registered")
}

// Remove drops an endpoint. Removing an unknown endpoint is a no-op.
func (r *Registry) Remove(ep models.WorkerEndpoint) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.endpoints[ep]; !ok {
		return
	}

	delete(r.endpoints, ep)
	r.logger.WithFields(logrus.Fields{
		"endpoint": ep.Addr(),
		"workers":  len(r.endpoints),
	}).Info("Worker removed")
}

// Snapshot returns a point-in-time copy of the registered endpoints, sorted
// by host:port. The ordering keeps partitioning reproducible for a given set
// of workers.
func (r *Registry) Snapshot() []models.WorkerEndpoint {
	r.mu.RLock()
	defer r.mu.RUnlock()

	endpoints := make([]models.WorkerEndpoint, 0, len(r.endpoints))
	for ep := range r.endpoints {
		endpoints = append(endpoints, ep)
	}

	sort.Slice(endpoints, func(i, j int) bool {
		return endpoints[i].Addr() < endpoints[j].Addr()
	})

	return endpoints
}

// Len returns the number of registered endpoints.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.endpoints)
}
