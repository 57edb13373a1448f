package jobs

import (
	"sync"
	"time"

	"github.com/gcbaptista/recipe-search/internal/metrics"
	"github.com/gcbaptista/recipe-search/model"
)

// JobStats is a point-in-time copy of the manager's counters.
type JobStats struct {
	JobsCreated          int64                     `json:"jobs_created"`
	JobsCompleted        int64                     `json:"jobs_completed"`
	JobsFailed           int64                     `json:"jobs_failed"`
	AverageExecutionTime time.Duration             `json:"average_execution_time_ns"`
	JobsByStatus         map[model.JobStatus]int64 `json:"jobs_by_status"`
	LastUpdated          time.Time                 `json:"last_updated"`
}

// jobCounters tracks job outcomes and forwards final states to Prometheus.
type jobCounters struct {
	mu                 sync.RWMutex
	created            int64
	completed          int64
	failed             int64
	totalExecutionTime time.Duration
	byStatus           map[model.JobStatus]int64
	lastUpdated        time.Time
	prom               *metrics.Metrics
}

func newJobCounters(prom *metrics.Metrics) *jobCounters {
	return &jobCounters{
		byStatus:    make(map[model.JobStatus]int64),
		lastUpdated: time.Now(),
		prom:        prom,
	}
}

func (c *jobCounters) recordCreated() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.created++
	c.byStatus[model.JobStatusPending]++
	c.lastUpdated = time.Now()
}

func (c *jobCounters) recordStatusChange(jobType model.JobType, oldStatus, newStatus model.JobStatus) {
	c.mu.Lock()
	if oldStatus != "" && c.byStatus[oldStatus] > 0 {
		c.byStatus[oldStatus]--
	}
	c.byStatus[newStatus]++
	c.lastUpdated = time.Now()
	c.mu.Unlock()

	if newStatus.IsFinal() {
		c.prom.ObserveJob(string(jobType), string(newStatus))
	}
}

func (c *jobCounters) recordCompleted(executionTime time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.completed++
	c.totalExecutionTime += executionTime
}

func (c *jobCounters) recordFailed() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.failed++
}

func (c *jobCounters) snapshot() JobStats {
	c.mu.RLock()
	defer c.mu.RUnlock()

	byStatus := make(map[model.JobStatus]int64, len(c.byStatus))
	for k, v := range c.byStatus {
		byStatus[k] = v
	}

	var average time.Duration
	if c.completed > 0 {
		average = c.totalExecutionTime / time.Duration(c.completed)
	}

	return JobStats{
		JobsCreated:          c.created,
		JobsCompleted:        c.completed,
		JobsFailed:           c.failed,
		AverageExecutionTime: average,
		JobsByStatus:         byStatus,
		LastUpdated:          c.lastUpdated,
	}
}
