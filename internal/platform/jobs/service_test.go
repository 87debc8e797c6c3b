package jobs

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"staffpay/internal/domain/apperr"
	"staffpay/internal/domain/employee"
	"staffpay/internal/domain/payroll"
	"staffpay/internal/platform/metrics"
	"staffpay/internal/store/memory"
)

func setup(t *testing.T) (*Service, *memory.Store, *metrics.Collector) {
	t.Helper()
	store := memory.New()
	ctx := context.Background()
	for _, e := range []employee.Employee{
		{Name: "Ana", Department: "Engineering", BaseSalary: employee.Float(50000), Variant: employee.FullTime{}},
		{Name: "Ben", Department: "Engineering", BaseSalary: employee.Float(60000), Variant: employee.Developer{ProjectsCompleted: employee.Int(2)}},
		{Name: "Cleo", Department: "People", BaseSalary: employee.Float(40000), Variant: employee.HR{}},
	} {
		if _, err := store.Employees.Save(ctx, e); err != nil {
			t.Fatalf("seed employee: %v", err)
		}
	}
	collector := metrics.New()
	gen := payroll.NewService(store.Payrolls, store.Employees, nil)
	svc := New(gen, store.Employees, collector, 0)
	svc.Now = func() time.Time { return time.Date(2024, time.March, 31, 12, 0, 0, 0, time.UTC) }
	return svc, store, collector
}

func TestRunNowGeneratesDepartment(t *testing.T) {
	svc, store, collector := setup(t)

	run, err := svc.RunNow(context.Background(), "Engineering", "March", 2024)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if run.Status != RunCompleted {
		t.Fatalf("expected completed, got %s", run.Status)
	}
	if len(run.PayrollIDs) != 2 {
		t.Fatalf("expected 2 payrolls, got %d", len(run.PayrollIDs))
	}
	rows, _ := store.Payrolls.FindByMonthAndYear(context.Background(), "March", 2024)
	if len(rows) != 2 {
		t.Fatalf("expected 2 stored payrolls, got %d", len(rows))
	}
	if got := collector.Snapshot()["payrollsGeneratedTotal"].(uint64); got != 2 {
		t.Fatalf("expected metric 2, got %d", got)
	}
}

func TestEnqueueProcessedByWorker(t *testing.T) {
	svc, _, _ := setup(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	svc.Start(ctx)

	run, err := svc.Enqueue("People", "March", 2024)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if run.Status != RunQueued {
		t.Fatalf("expected queued, got %s", run.Status)
	}

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		got, err := svc.Get(run.ID)
		if err != nil {
			t.Fatalf("get: %v", err)
		}
		if got.Status == RunCompleted {
			if len(got.PayrollIDs) != 1 {
				t.Fatalf("expected 1 payroll, got %d", len(got.PayrollIDs))
			}
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatal("run did not complete in time")
}

func TestEnqueueValidation(t *testing.T) {
	svc, _, _ := setup(t)
	cases := []struct {
		department, month string
		year              int
	}{
		{"", "March", 2024},
		{"Engineering", " ", 2024},
		{"Engineering", "March", 0},
	}
	for _, tc := range cases {
		if _, err := svc.Enqueue(tc.department, tc.month, tc.year); !apperr.IsInvalidInput(err) {
			t.Fatalf("expected invalid input for %+v, got %v", tc, err)
		}
	}
}

func TestGetUnknownRun(t *testing.T) {
	svc, _, _ := setup(t)
	if _, err := svc.Get("missing"); !apperr.IsNotFound(err) {
		t.Fatalf("expected not found, got %v", err)
	}
	if _, err := svc.Get(""); !apperr.IsInvalidInput(err) {
		t.Fatalf("expected invalid input, got %v", err)
	}
}

func TestEnqueueAllDepartments(t *testing.T) {
	svc, _, _ := setup(t)
	svc.enqueueAllDepartments(context.Background())

	if len(svc.queue) != 2 {
		t.Fatalf("expected 2 queued runs, got %d", len(svc.queue))
	}
	first, _ := svc.Get(<-svc.queue)
	if first.Department != "Engineering" || first.Month != "March" || first.Year != 2024 {
		t.Fatalf("unexpected run %+v", first)
	}
}

func TestQueueFull(t *testing.T) {
	svc, _, _ := setup(t)
	svc.queue = make(chan string)
	if _, err := svc.Enqueue("Engineering", "March", 2024); err != ErrQueueFull {
		t.Fatalf("expected ErrQueueFull, got %v", err)
	}
}

type recordingMailer struct {
	mu   sync.Mutex
	sent []string
}

func (m *recordingMailer) Send(_ context.Context, from, to, subject, body string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, from+"|"+to+"|"+subject+"|"+body)
	return nil
}

func TestRunNotifiesConfiguredRecipient(t *testing.T) {
	svc, _, _ := setup(t)
	mailer := &recordingMailer{}
	svc.Notify = Notification{Mailer: mailer, From: "payroll@example.com", To: "hr@example.com"}

	if _, err := svc.RunNow(context.Background(), "Engineering", "March", 2024); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(mailer.sent) != 1 {
		t.Fatalf("expected one notification, got %d", len(mailer.sent))
	}
	msg := mailer.sent[0]
	for _, want := range []string{
		"payroll@example.com|hr@example.com|",
		"Payroll run completed: Engineering March 2024",
		"Payrolls generated: 2",
	} {
		if !strings.Contains(msg, want) {
			t.Fatalf("notification missing %q: %s", want, msg)
		}
	}
}

func TestRunSkipsNotificationWithoutRecipient(t *testing.T) {
	svc, _, _ := setup(t)
	mailer := &recordingMailer{}
	svc.Notify = Notification{Mailer: mailer}

	if _, err := svc.RunNow(context.Background(), "People", "March", 2024); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(mailer.sent) != 0 {
		t.Fatalf("expected no notification, got %v", mailer.sent)
	}
}

func TestFinishedRunsAreEvictedBeyondRetention(t *testing.T) {
	svc, _, _ := setup(t)
	svc.retain = 2
	ctx := context.Background()

	var ids []string
	for _, month := range []string{"January", "February", "March"} {
		run, err := svc.RunNow(ctx, "People", month, 2024)
		if err != nil {
			t.Fatalf("run %s: %v", month, err)
		}
		ids = append(ids, run.ID)
	}

	if _, err := svc.Get(ids[0]); !apperr.IsNotFound(err) {
		t.Fatalf("expected oldest run to be evicted, got %v", err)
	}
	for _, id := range ids[1:] {
		if _, err := svc.Get(id); err != nil {
			t.Fatalf("expected run %s to be retained: %v", id, err)
		}
	}
}

func TestQueuedRunsSurviveRetention(t *testing.T) {
	svc, _, _ := setup(t)
	svc.retain = 1

	first, err := svc.Enqueue("People", "January", 2024)
	if err != nil {
		t.Fatalf("enqueue: %v", err)
	}
	if _, err := svc.Enqueue("People", "February", 2024); err != nil {
		t.Fatalf("enqueue: %v", err)
	}
	got, err := svc.Get(first.ID)
	if err != nil {
		t.Fatalf("expected queued run to be kept: %v", err)
	}
	if got.Status != RunQueued {
		t.Fatalf("expected queued, got %s", got.Status)
	}
}
