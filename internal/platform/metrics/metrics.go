package metrics

import (
	"sync/atomic"
	"time"
)

type Collector struct {
	totalRequests     uint64
	clientErrors      uint64
	errorRequests     uint64
	totalDurationMs   uint64
	payrollsGenerated uint64
	payrollRunsFailed uint64
	checkIns          uint64
	checkOuts         uint64
}

func New() *Collector {
	return &Collector{}
}

func (c *Collector) Record(status int, duration time.Duration) {
	atomic.AddUint64(&c.totalRequests, 1)
	switch {
	case status >= 500:
		atomic.AddUint64(&c.errorRequests, 1)
	case status >= 400:
		atomic.AddUint64(&c.clientErrors, 1)
	}
	atomic.AddUint64(&c.totalDurationMs, uint64(duration.Milliseconds()))
}

func (c *Collector) PayrollsGenerated(n int) {
	if n > 0 {
		atomic.AddUint64(&c.payrollsGenerated, uint64(n))
	}
}

func (c *Collector) PayrollRunFailed() {
	atomic.AddUint64(&c.payrollRunsFailed, 1)
}

func (c *Collector) CheckIn() {
	atomic.AddUint64(&c.checkIns, 1)
}

func (c *Collector) CheckOut() {
	atomic.AddUint64(&c.checkOuts, 1)
}

func (c *Collector) Snapshot() map[string]any {
	total := atomic.LoadUint64(&c.totalRequests)
	totalMs := atomic.LoadUint64(&c.totalDurationMs)
	avg := float64(0)
	if total > 0 {
		avg = float64(totalMs) / float64(total)
	}
	return map[string]any{
		"requestsTotal":          total,
		"clientErrorsTotal":      atomic.LoadUint64(&c.clientErrors),
		"errorsTotal":            atomic.LoadUint64(&c.errorRequests),
		"avgDurationMs":          avg,
		"totalDurationMs":        totalMs,
		"payrollsGeneratedTotal": atomic.LoadUint64(&c.payrollsGenerated),
		"payrollRunsFailedTotal": atomic.LoadUint64(&c.payrollRunsFailed),
		"checkInsTotal":          atomic.LoadUint64(&c.checkIns),
		"checkOutsTotal":         atomic.LoadUint64(&c.checkOuts),
	}
}
