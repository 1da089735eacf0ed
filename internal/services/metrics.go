package services

import (
	"context"
	"os"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/jmoiron/sqlx"
	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/disk"
	"github.com/shirou/gopsutil/v3/mem"
	"github.com/shirou/gopsutil/v3/process"
)

type MetricSample struct {
	CapturedAt         time.Time `db:"captured_at" json:"captured_at"`
	ProcessMemoryBytes int64     `db:"process_memory_bytes" json:"process_memory_bytes"`
	SystemMemoryTotal  int64     `db:"system_memory_total_bytes" json:"system_memory_total_bytes"`
	SystemMemoryUsed   int64     `db:"system_memory_used_bytes" json:"system_memory_used_bytes"`
	DiskTotalBytes     int64     `db:"disk_total_bytes" json:"disk_total_bytes"`
	DiskUsedBytes      int64     `db:"disk_used_bytes" json:"disk_used_bytes"`
	ProcessCpuLoad     float64   `db:"process_cpu_load" json:"process_cpu_load"`
	SystemCpuLoad      float64   `db:"system_cpu_load" json:"system_cpu_load"`
}

// CaptureMetrics samples process and system usage, persists the sample
// and returns it for broadcast.
func CaptureMetrics(db *sqlx.DB, diskPath string) (MetricSample, error) {
	proc, _ := process.NewProcess(int32(os.Getpid()))
	memStat, _ := mem.VirtualMemory()
	diskStat, err := disk.Usage(diskPath)
	if err != nil {
		diskStat, _ = disk.Usage("/")
	}
	processRSS := int64(0)
	processCPU := float64(0)
	if proc != nil {
		rss, _ := proc.MemoryInfo()
		if rss != nil {
			processRSS = int64(rss.RSS)
		}
		cpuPerc, _ := proc.CPUPercent()
		processCPU = cpuPerc / 100.0
	}
	sysCPU, _ := cpu.Percent(0, false)
	sysCPUValue := 0.0
	if len(sysCPU) > 0 {
		sysCPUValue = sysCPU[0] / 100.0
	}
	sample := MetricSample{
		CapturedAt:         time.Now().UTC(),
		ProcessMemoryBytes: processRSS,
		SystemMemoryTotal:  int64(memStat.Total),
		SystemMemoryUsed:   int64(memStat.Total - memStat.Available),
		DiskTotalBytes:     int64(diskStat.Total),
		DiskUsedBytes:      int64(diskStat.Used),
		ProcessCpuLoad:     processCPU,
		SystemCpuLoad:      sysCPUValue,
	}

	_, err = db.Exec(`
INSERT INTO server_metric_samples (
  id, captured_at, process_memory_bytes, system_memory_total_bytes,
  system_memory_used_bytes, disk_total_bytes, disk_used_bytes,
  process_cpu_load, system_cpu_load
) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
`, uuid.NewString(), sample.CapturedAt, sample.ProcessMemoryBytes, sample.SystemMemoryTotal,
		sample.SystemMemoryUsed, sample.DiskTotalBytes, sample.DiskUsedBytes,
		sample.ProcessCpuLoad, sample.SystemCpuLoad)
	if err != nil {
		return MetricSample{}, err
	}
	return sample, nil
}

// LatestMetrics returns up to limit samples in chronological order.
func LatestMetrics(db *sqlx.DB, limit int) ([]MetricSample, error) {
	rows := []MetricSample{}
	if err := db.Select(&rows, `
SELECT captured_at, process_memory_bytes, system_memory_total_bytes,
       system_memory_used_bytes, disk_total_bytes, disk_used_bytes,
       process_cpu_load, system_cpu_load
FROM server_metric_samples
ORDER BY captured_at DESC
LIMIT $1
`, limit); err != nil {
		return nil, err
	}
	items := make([]MetricSample, 0, len(rows))
	for i := len(rows) - 1; i >= 0; i-- {
		items = append(items, rows[i])
	}
	return items, nil
}

// MetricsHub fans captured samples out to connected websocket clients.
// Add and Remove run on handler goroutines while Run drains the channel,
// so the client set is guarded by a mutex.
type MetricsHub struct {
	mu      sync.Mutex
	clients map[*websocket.Conn]bool
	ch      chan MetricSample
}

func NewMetricsHub() *MetricsHub {
	return &MetricsHub{
		clients: map[*websocket.Conn]bool{},
		ch:      make(chan MetricSample, 16),
	}
}

func (h *MetricsHub) Run(ctx context.Context) {
	for {
		select {
		case sample := <-h.ch:
			for _, conn := range h.snapshot() {
				_ = conn.WriteJSON(sample)
			}
		case <-ctx.Done():
			return
		}
	}
}

func (h *MetricsHub) Broadcast(sample MetricSample) {
	select {
	case h.ch <- sample:
	default:
	}
}

func (h *MetricsHub) Add(conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.clients[conn] = true
}

func (h *MetricsHub) Remove(conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.clients, conn)
}

func (h *MetricsHub) snapshot() []*websocket.Conn {
	h.mu.Lock()
	defer h.mu.Unlock()
	conns := make([]*websocket.Conn, 0, len(h.clients))
	for conn := range h.clients {
		conns = append(conns, conn)
	}
	return conns
}
