package prober

import (
	"context"
	"io"
	"net/http"
	"time"

	"github.com/fileproc-eval/task-coordinator-service/src/models"
	"github.com/fileproc-eval/task-coordinator-service/src/registry"
	"github.com/sirupsen/logrus"
)

// StatusPath is the well-known liveness endpoint every worker exposes.
const StatusPath = "/check_status"

// Prober prunes dead endpoints from the registry. It runs synchronously
// right before a batch is dispatched, never as a background loop, so after
// Prune the registry holds only endpoints that answered the immediately
// preceding probe. Liveness at actual dispatch time is not guaranteed.
type Prober struct {
	registry *registry.Registry
	client   *http.Client
	logger   *logrus.Logger
}

// New creates a prober whose probes time out after probeTimeout.
func New(reg *registry.Registry, probeTimeout time.Duration, logger *logrus.Logger) *Prober {
	return &Prober{
		registry: reg,
		client:   &http.Client{Timeout: probeTimeout},
		logger:   logger,
	}
}

// Prune probes every endpoint in the current snapshot and removes the ones
// that error or answer with a non-success status. It returns the number of
// endpoints that survived.
func (p *Prober) Prune(ctx context.Context) int {
	alive := 0
	for _, ep := range p.registry.Snapshot() {
		if p.probe(ctx, ep) {
			alive++
			continue
		}
		p.logger.WithField("endpoint", ep.Addr()).Warn("Worker is unresponsive, removing from registry")
		p.registry.Remove(ep)
	}
	return alive
}

func (p *Prober) probe(ctx context.Context, ep models.WorkerEndpoint) bool {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, ep.URL(StatusPath), nil)
	if err != nil {
		return false
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return false
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	return resp.StatusCode >= 200 && resp.StatusCode < 300
}
