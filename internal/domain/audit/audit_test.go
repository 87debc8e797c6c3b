package audit

import (
	"context"
	"testing"
	"time"

	"staffpay/internal/domain/auth"
	"staffpay/internal/requestctx"
)

func TestRecordAttributesRequestUser(t *testing.T) {
	svc := New(10)
	svc.Now = func() time.Time { return time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC) }
	ctx := requestctx.WithRequestID(context.Background(), "req-1")
	ctx = requestctx.WithUser(ctx, auth.UserContext{UserID: "u1", Username: "hr", Role: auth.RoleHR})

	svc.Record(ctx, "employee.create", "employee", "e1", map[string]string{"name": "Ada"})

	events := svc.List(Filter{}, true, 0, 0)
	if len(events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(events))
	}
	evt := events[0]
	if evt.ActorID != "u1" || evt.Actor != "hr" || evt.RequestID != "req-1" || evt.EntityID != "e1" {
		t.Fatalf("unexpected event %+v", evt)
	}
	if string(evt.After) != `{"name":"Ada"}` {
		t.Fatalf("unexpected payload %s", evt.After)
	}
	if withoutDetails := svc.List(Filter{}, false, 0, 0); withoutDetails[0].After != nil {
		t.Fatal("expected details to be omitted")
	}
}

func TestListFiltersPagesAndCaps(t *testing.T) {
	svc := New(3)
	ctx := context.Background()
	svc.Record(ctx, "employee.create", "employee", "e1", nil)
	svc.Record(ctx, "employee.create", "employee", "e2", nil)
	svc.Record(ctx, "payroll.generate", "payroll", "p1", nil)
	svc.Record(ctx, "employee.delete", "employee", "e1", nil)

	if total := svc.Count(Filter{}); total != 3 {
		t.Fatalf("expected capacity to cap events at 3, got %d", total)
	}
	employees := svc.List(Filter{EntityType: "employee"}, false, 0, 0)
	if len(employees) != 2 || employees[0].Action != "employee.delete" {
		t.Fatalf("expected newest employee event first, got %+v", employees)
	}
	page := svc.List(Filter{}, false, 1, 1)
	if len(page) != 1 || page[0].EntityID != "p1" {
		t.Fatalf("unexpected page %+v", page)
	}
}

func TestNilServiceRecordsNothing(t *testing.T) {
	var svc *Service
	svc.Record(context.Background(), "noop", "none", "x", nil)
}
