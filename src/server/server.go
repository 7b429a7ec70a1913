package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fileproc-eval/task-coordinator-service/src/aggregator"
	"github.com/fileproc-eval/task-coordinator-service/src/config"
	"github.com/fileproc-eval/task-coordinator-service/src/dispatcher"
	"github.com/fileproc-eval/task-coordinator-service/src/monitoring"
	"github.com/fileproc-eval/task-coordinator-service/src/prober"
	"github.com/fileproc-eval/task-coordinator-service/src/registry"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// Server wires the coordinator components and owns the HTTP listener.
type Server struct {
	config     config.Interface
	logger     *logrus.Logger
	registry   *registry.Registry
	engine     *gin.Engine
	httpServer *http.Server
}

// NewServer builds the component graph from configuration.
func NewServer(cfg config.Interface) *Server {
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	if level, err := logrus.ParseLevel(cfg.GetLogLevel()); err == nil {
		logger.SetLevel(level)
	}

	reg := registry.New(logger)
	prb := prober.New(reg, cfg.GetProbeTimeout(), logger)
	dsp := dispatcher.New(reg, cfg.GetDispatchTimeout(), cfg.GetMaxConcurrentDispatches(), logger)
	agg := aggregator.New(logger)

	engine := gin.New()
	engine.Use(gin.Recovery())

	handler := NewHandler(reg, prb, dsp, agg, cfg.GetOutputDir(), logger)
	handler.RegisterRoutes(engine)
	monitoring.NewHandler(reg).RegisterRoutes(engine)

	logger.WithFields(logrus.Fields{
		"service":     cfg.GetServiceName(),
		"listen_addr": cfg.GetListenAddr(),
		"output_dir":  cfg.GetOutputDir(),
	}).Info("Server initialized")

	return &Server{
		config:   cfg,
		logger:   logger,
		registry: reg,
		engine:   engine,
		httpServer: &http.Server{
			Addr:    cfg.GetListenAddr(),
			Handler: engine,
		},
	}
}

// Run serves HTTP until SIGINT or SIGTERM, then drains in-flight requests.
func (s *Server) Run() error {
	errCh := make(chan error, 1)
	go func() {
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()
	s.logger.WithField("listen_addr", s.config.GetListenAddr()).Info("Coordinator listening")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return fmt.Errorf("http server failed: %w", err)
	case sig := <-quit:
		s.logger.WithField("signal", sig.String()).Info("Shutdown signal received, draining requests")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}

	s.logger.Info("Server stopped, all requests drained")
	return nil
}

// Registry exposes the worker registry, mainly for tests.
func (s *Server) Registry() *registry.Registry {
	return s.registry
}

// Engine exposes the gin engine, mainly for tests.
func (s *Server) Engine() *gin.Engine {
	return s.engine
}
