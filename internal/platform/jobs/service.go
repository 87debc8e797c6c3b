package jobs

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"staffpay/internal/domain/apperr"
	"staffpay/internal/domain/employee"
	"staffpay/internal/domain/payroll"
	"staffpay/internal/platform/metrics"
)

const JobDepartmentPayroll = "department_payroll"

const (
	RunQueued    = "queued"
	RunRunning   = "running"
	RunCompleted = "completed"
	RunFailed    = "failed"
)

// DefaultRunRetention bounds how many runs Get can still report. Queued and
// running runs are never evicted.
const DefaultRunRetention = 500

var ErrQueueFull = errors.New("job queue full")

type PayrollGenerator interface {
	GenerateDepartmentPayroll(ctx context.Context, department, month string, year int) ([]payroll.Payroll, error)
}

type EmployeeLister interface {
	FindAll(ctx context.Context) ([]employee.Employee, error)
}

type Mailer interface {
	Send(ctx context.Context, from, to, subject, body string) error
}

// Notification addresses a summary mail for every finished run. An empty To
// disables it.
type Notification struct {
	Mailer Mailer
	From   string
	To     string
}

// Run tracks one department payroll batch.
type Run struct {
	ID          string     `json:"id"`
	Type        string     `json:"type"`
	Department  string     `json:"department"`
	Month       string     `json:"month"`
	Year        int        `json:"year"`
	Status      string     `json:"status"`
	PayrollIDs  []string   `json:"payrollIds"`
	Error       string     `json:"error,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
	CompletedAt *time.Time `json:"completedAt,omitempty"`
}

type Service struct {
	payrolls  PayrollGenerator
	employees EmployeeLister
	metrics   *metrics.Collector
	interval  time.Duration
	queue     chan string
	Now       func() time.Time
	Notify    Notification

	mu     sync.RWMutex
	runs   map[string]*Run
	order  []string
	retain int
}

// New builds the worker. A zero interval disables the monthly schedule.
func New(payrolls PayrollGenerator, employees EmployeeLister, collector *metrics.Collector, interval time.Duration) *Service {
	return &Service{
		payrolls:  payrolls,
		employees: employees,
		metrics:   collector,
		interval:  interval,
		queue:     make(chan string, 128),
		Now:       time.Now,
		runs:      make(map[string]*Run),
		retain:    DefaultRunRetention,
	}
}

func (s *Service) Start(ctx context.Context) {
	go s.worker(ctx)
	if s.interval > 0 {
		go s.schedulePayroll(ctx, s.interval)
	}
}

// Enqueue validates the request and queues a department run for the worker.
func (s *Service) Enqueue(department, month string, year int) (Run, error) {
	run, err := s.newRun(department, month, year)
	if err != nil {
		return Run{}, err
	}
	select {
	case s.queue <- run.ID:
		return run, nil
	default:
		s.finish(run.ID, nil, ErrQueueFull)
		slog.Warn("job queue full", "jobType", JobDepartmentPayroll, "department", run.Department)
		return Run{}, ErrQueueFull
	}
}

// RunNow executes a department run synchronously.
func (s *Service) RunNow(ctx context.Context, department, month string, year int) (Run, error) {
	run, err := s.newRun(department, month, year)
	if err != nil {
		return Run{}, err
	}
	if err := s.runJob(ctx, run.ID); err != nil {
		got, _ := s.Get(run.ID)
		return got, err
	}
	return s.Get(run.ID)
}

func (s *Service) Get(runID string) (Run, error) {
	if strings.TrimSpace(runID) == "" {
		return Run{}, apperr.InvalidInput("run ID cannot be null")
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	run, ok := s.runs[runID]
	if !ok {
		return Run{}, apperr.NotFound("PayrollRun", "ID", runID)
	}
	return cloneRun(run), nil
}

func (s *Service) newRun(department, month string, year int) (Run, error) {
	if strings.TrimSpace(department) == "" {
		return Run{}, payroll.ErrDepartmentRequired
	}
	if err := payroll.ValidatePeriod(month, year); err != nil {
		return Run{}, err
	}
	run := &Run{
		ID:         uuid.NewString(),
		Type:       JobDepartmentPayroll,
		Department: department,
		Month:      strings.TrimSpace(month),
		Year:       year,
		Status:     RunQueued,
		PayrollIDs: []string{},
		CreatedAt:  s.Now().UTC(),
	}
	s.mu.Lock()
	s.runs[run.ID] = run
	s.order = append(s.order, run.ID)
	s.evictLocked()
	s.mu.Unlock()
	return cloneRun(run), nil
}

// evictLocked drops the oldest finished runs beyond the retention limit.
func (s *Service) evictLocked() {
	excess := len(s.order) - s.retain
	if excess <= 0 {
		return
	}
	kept := s.order[:0]
	for _, id := range s.order {
		run := s.runs[id]
		if excess > 0 && (run.Status == RunCompleted || run.Status == RunFailed) {
			delete(s.runs, id)
			excess--
			continue
		}
		kept = append(kept, id)
	}
	s.order = kept
}

func (s *Service) worker(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case runID := <-s.queue:
			if err := s.runJob(ctx, runID); err != nil {
				slog.Warn("job run failed", "jobType", JobDepartmentPayroll, "runId", runID, "err", err)
			}
		}
	}
}

func (s *Service) runJob(ctx context.Context, runID string) error {
	s.mu.Lock()
	run, ok := s.runs[runID]
	if !ok {
		s.mu.Unlock()
		return apperr.NotFound("PayrollRun", "ID", runID)
	}
	run.Status = RunRunning
	department, month, year := run.Department, run.Month, run.Year
	s.mu.Unlock()

	generated, err := s.payrolls.GenerateDepartmentPayroll(ctx, department, month, year)
	s.finish(runID, generated, err)
	if s.metrics != nil {
		s.metrics.PayrollsGenerated(len(generated))
		if err != nil {
			s.metrics.PayrollRunFailed()
		}
	}
	if run, getErr := s.Get(runID); getErr == nil {
		s.notify(ctx, run, generated)
	}
	return err
}

func (s *Service) notify(ctx context.Context, run Run, generated []payroll.Payroll) {
	if s.Notify.Mailer == nil || s.Notify.To == "" {
		return
	}
	subject, body := runMessage(run, payroll.Summarize(run.Month, run.Year, generated))
	if err := s.Notify.Mailer.Send(ctx, s.Notify.From, s.Notify.To, subject, body); err != nil {
		slog.Warn("payroll run notification failed", "runId", run.ID, "to", s.Notify.To, "err", err)
	}
}

func runMessage(run Run, summary payroll.PeriodSummary) (string, string) {
	subject := fmt.Sprintf("Payroll run %s: %s %s %d", run.Status, run.Department, run.Month, run.Year)
	var b strings.Builder
	fmt.Fprintf(&b, "Run: %s\n", run.ID)
	fmt.Fprintf(&b, "Department: %s\n", run.Department)
	fmt.Fprintf(&b, "Period: %s %d\n", run.Month, run.Year)
	fmt.Fprintf(&b, "Status: %s\n", run.Status)
	fmt.Fprintf(&b, "Payrolls generated: %d\n", summary.PayrollCount)
	fmt.Fprintf(&b, "Total net: %.2f\n", summary.TotalNet)
	if run.Error != "" {
		fmt.Fprintf(&b, "Error: %s\n", run.Error)
	}
	return subject, b.String()
}

func (s *Service) finish(runID string, generated []payroll.Payroll, err error) {
	now := s.Now().UTC()
	s.mu.Lock()
	defer s.mu.Unlock()
	run, ok := s.runs[runID]
	if !ok {
		return
	}
	for _, p := range generated {
		run.PayrollIDs = append(run.PayrollIDs, p.ID)
	}
	run.Status = RunCompleted
	if err != nil {
		run.Status = RunFailed
		run.Error = err.Error()
	}
	run.CompletedAt = &now
}

func (s *Service) schedulePayroll(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.enqueueAllDepartments(ctx)
		}
	}
}

// enqueueAllDepartments queues a run for the current month for every department.
func (s *Service) enqueueAllDepartments(ctx context.Context) {
	departments, err := s.departments(ctx)
	if err != nil {
		slog.Warn("payroll scheduler department lookup failed", "err", err)
		return
	}
	now := s.Now().UTC()
	for _, department := range departments {
		if _, err := s.Enqueue(department, now.Month().String(), now.Year()); err != nil {
			slog.Warn("payroll scheduler enqueue failed", "department", department, "err", err)
		}
	}
}

func (s *Service) departments(ctx context.Context) ([]string, error) {
	all, err := s.employees.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	seen := map[string]bool{}
	var out []string
	for _, e := range all {
		if strings.TrimSpace(e.Department) == "" || seen[e.Department] {
			continue
		}
		seen[e.Department] = true
		out = append(out, e.Department)
	}
	sort.Strings(out)
	return out, nil
}

func cloneRun(run *Run) Run {
	out := *run
	out.PayrollIDs = append([]string{}, run.PayrollIDs...)
	if run.CompletedAt != nil {
		at := *run.CompletedAt
		out.CompletedAt = &at
	}
	return out
}
