// File: internal/services/rag/metrics.go
package rag

import "sync"

// Metrics is a snapshot of engine performance counters.
type Metrics struct {
	TotalQueries         int     `json:"total_queries"`
	SuccessfulRetrievals int     `json:"successful_retrievals"`
	FailedRetrievals     int     `json:"failed_retrievals"`
	AvgResponseTime      float64 `json:"avg_response_time"`
	SuccessRate          float64 `json:"success_rate"`
	IndexedChunks        int     `json:"indexed_chunks"`
}

type metricsRecorder struct {
	mu sync.Mutex
	m  Metrics
}

func (r *metricsRecorder) recordQuery() {
	r.mu.Lock()
	r.m.TotalQueries++
	r.mu.Unlock()
}

func (r *metricsRecorder) recordRetrieval(ok bool) {
	r.mu.Lock()
	if ok {
		r.m.SuccessfulRetrievals++
	} else {
		r.m.FailedRetrievals++
	}
	r.mu.Unlock()
}

// recordResponseTime folds one response time into the running average.
func (r *metricsRecorder) recordResponseTime(seconds float64) {
	r.mu.Lock()
	if r.m.TotalQueries > 0 {
		r.m.AvgResponseTime = (r.m.AvgResponseTime*float64(r.m.TotalQueries-1) + seconds) / float64(r.m.TotalQueries)
	}
	r.mu.Unlock()
}

func (r *metricsRecorder) snapshot() Metrics {
	r.mu.Lock()
	defer r.mu.Unlock()
	m := r.m
	if m.TotalQueries > 0 {
		m.SuccessRate = float64(m.SuccessfulRetrievals) / float64(m.TotalQueries) * 100
	}
	return m
}
