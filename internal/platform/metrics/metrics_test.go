package metrics

import (
	"testing"
	"time"
)

func TestCollectorSnapshot(t *testing.T) {
	c := New()
	c.Record(200, 10*time.Millisecond)
	c.Record(404, 20*time.Millisecond)
	c.Record(500, 30*time.Millisecond)
	c.PayrollsGenerated(3)
	c.PayrollsGenerated(0)
	c.PayrollRunFailed()
	c.CheckIn()
	c.CheckOut()

	snap := c.Snapshot()
	expect := map[string]uint64{
		"requestsTotal":          3,
		"clientErrorsTotal":      1,
		"errorsTotal":            1,
		"totalDurationMs":        60,
		"payrollsGeneratedTotal": 3,
		"payrollRunsFailedTotal": 1,
		"checkInsTotal":          1,
		"checkOutsTotal":         1,
	}
	for key, want := range expect {
		if got := snap[key].(uint64); got != want {
			t.Fatalf("%s: expected %d, got %d", key, want, got)
		}
	}
	if avg := snap["avgDurationMs"].(float64); avg != 20 {
		t.Fatalf("expected avg 20ms, got %v", avg)
	}
}
