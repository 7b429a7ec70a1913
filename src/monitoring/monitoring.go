package monitoring

import (
	"net/http"
	"runtime"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/host"
	"github.com/shirou/gopsutil/v3/mem"
)

// WorkerCounter is the registry surface the status endpoint needs.
type WorkerCounter interface {
	Len() int
}

type ProcessStats struct {
	NumGoroutine int    `json:"num_goroutine"`
	AllocBytes   uint64 `json:"alloc_bytes"`
	SysBytes     uint64 `json:"sys_bytes"`
	NumGC        uint32 `json:"num_gc"`
}

type HostStats struct {
	TotalRAM        uint64    `json:"total_ram"`
	AvailableRAM    uint64    `json:"available_ram"`
	UsedRAMPercent  float64   `json:"used_ram_percent"`
	TotalCPUCores   int       `json:"total_cpu_cores"`
	CPUUsagePercent []float64 `json:"cpu_usage_percent"`
	UptimeSeconds   uint64    `json:"uptime_seconds"`
}

type Status struct {
	Timestamp         time.Time    `json:"timestamp"`
	RegisteredWorkers int          `json:"registered_workers"`
	Process           ProcessStats `json:"process"`
	Host              HostStats    `json:"host"`
}

// Handler serves the coordinator status snapshot. The snapshot is read-only:
// it reports the registry size without probing, so polling it never mutates
// the worker pool.
type Handler struct {
	workers WorkerCounter
}

func NewHandler(workers WorkerCounter) *Handler {
	return &Handler{workers: workers}
}

func (h *Handler) RegisterRoutes(r *gin.Engine) {
	r.GET("/status", h.GetStatus)
}

func (h *Handler) GetStatus(c *gin.Context) {
	var memStats runtime.MemStats
	runtime.ReadMemStats(&memStats)

	status := Status{
		Timestamp:         time.Now(),
		RegisteredWorkers: h.workers.Len(),
		Process: ProcessStats{
			NumGoroutine: runtime.NumGoroutine(),
			AllocBytes:   memStats.Alloc,
			SysBytes:     memStats.Sys,
			NumGC:        memStats.NumGC,
		},
		Host: HostStats{
			TotalCPUCores: runtime.NumCPU(),
		},
	}

	if vMem, err := mem.VirtualMemory(); err == nil {
		status.Host.TotalRAM = vMem.Total
		status.Host.AvailableRAM = vMem.Available
		status.Host.UsedRAMPercent = vMem.UsedPercent
	}
	if cpuPercent, err := cpu.Percent(0, true); err == nil {
		status.Host.CPUUsagePercent = cpuPercent
	}
	if uptime, err := host.Uptime(); err == nil {
		status.Host.UptimeSeconds = uptime
	}

	c.JSON(http.StatusOK, status)
}
