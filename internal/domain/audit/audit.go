// Package audit keeps a bounded in-process trail of write operations and
// mirrors every event to the structured log.
package audit

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"staffpay/internal/requestctx"
)

const DefaultCapacity = 1000

type Event struct {
	ID         string          `json:"id" csv:"id"`
	ActorID    string          `json:"actorId" csv:"actor_user_id"`
	Actor      string          `json:"actor" csv:"actor"`
	Action     string          `json:"action" csv:"action"`
	EntityType string          `json:"entityType" csv:"entity_type"`
	EntityID   string          `json:"entityId" csv:"entity_id"`
	RequestID  string          `json:"requestId" csv:"request_id"`
	CreatedAt  time.Time       `json:"createdAt" csv:"created_at"`
	After      json.RawMessage `json:"after,omitempty" csv:"-"`
}

type Filter struct {
	Action     string
	EntityType string
	ActorUser  string
}

func (f Filter) matches(evt Event) bool {
	return (f.Action == "" || evt.Action == f.Action) &&
		(f.EntityType == "" || evt.EntityType == f.EntityType) &&
		(f.ActorUser == "" || evt.ActorID == f.ActorUser)
}

type Service struct {
	mu       sync.RWMutex
	events   []Event
	capacity int
	Now      func() time.Time
}

// New keeps at most capacity events, dropping the oldest first. A
// non-positive capacity means DefaultCapacity.
func New(capacity int) *Service {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Service{capacity: capacity, Now: time.Now}
}

// Record stores an event attributed to the request's user. A nil Service
// records nothing.
func (s *Service) Record(ctx context.Context, action, entityType, entityID string, after any) {
	if s == nil {
		return
	}
	evt := Event{
		ID:         uuid.NewString(),
		Action:     action,
		EntityType: entityType,
		EntityID:   entityID,
		RequestID:  requestctx.GetRequestID(ctx),
		CreatedAt:  s.Now().UTC(),
	}
	if user, ok := requestctx.GetUser(ctx); ok {
		evt.ActorID = user.UserID
		evt.Actor = user.Username
	}
	if after != nil {
		if payload, err := json.Marshal(after); err == nil {
			evt.After = payload
		} else {
			slog.Warn("audit payload marshal failed", "action", action, "err", err)
		}
	}

	s.mu.Lock()
	s.events = append(s.events, evt)
	if over := len(s.events) - s.capacity; over > 0 {
		s.events = append([]Event(nil), s.events[over:]...)
	}
	s.mu.Unlock()

	slog.Info("audit",
		"action", evt.Action,
		"entityType", evt.EntityType,
		"entityId", evt.EntityID,
		"actorId", evt.ActorID,
		"requestId", evt.RequestID,
	)
}

func (s *Service) Count(filter Filter) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	total := 0
	for _, evt := range s.events {
		if filter.matches(evt) {
			total++
		}
	}
	return total
}

// List returns matching events newest first. A zero limit means all.
func (s *Service) List(filter Filter, includeDetails bool, limit, offset int) []Event {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []Event{}
	skipped := 0
	for i := len(s.events) - 1; i >= 0; i-- {
		evt := s.events[i]
		if !filter.matches(evt) {
			continue
		}
		if skipped < offset {
			skipped++
			continue
		}
		if !includeDetails {
			evt.After = nil
		}
		out = append(out, evt)
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out
}
