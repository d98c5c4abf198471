package worker

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/shaiso/Simplify/internal/domain"
	"github.com/shaiso/Simplify/internal/mq"
	"github.com/shaiso/Simplify/internal/repo"
)

// fakeEvents — EventStore в памяти.
type fakeEvents struct {
	mu        sync.Mutex
	byID      map[uuid.UUID]domain.Event
	insertErr error
	lastQuery repo.EventFilter
}

func newFakeEvents() *fakeEvents {
	return &fakeEvents{byID: make(map[uuid.UUID]domain.Event)}
}

func (f *fakeEvents) Insert(_ context.Context, ev *domain.Event) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.insertErr != nil {
		return f.insertErr
	}
	if _, ok := f.byID[ev.ID]; ok {
		return repo.ErrAlreadyExists
	}
	f.byID[ev.ID] = *ev
	return nil
}

func (f *fakeEvents) List(_ context.Context, filter repo.EventFilter) ([]domain.Event, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lastQuery = filter
	var out []domain.Event
	for _, ev := range f.byID {
		if filter.FlowID != "" && ev.FlowID != filter.FlowID {
			continue
		}
		out = append(out, ev)
	}
	return out, nil
}

func testWorker(events EventStore) *Worker {
	return New(Config{
		Events: events,
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
}

// roundTrip имитирует доставку: сообщение проходит через JSON, как в очереди.
func roundTrip(t *testing.T, msg *mq.Message) *mq.Message {
	t.Helper()
	body, err := json.Marshal(msg)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var out mq.Message
	if err := json.Unmarshal(body, &out); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	return &out
}

func TestHandleMessage_RecordsEvent(t *testing.T) {
	events := newFakeEvents()
	w := testWorker(events)

	msg := roundTrip(t, mq.NewMessage(mq.MessageTypeProgressSaved, mq.ProgressSavedPayload{
		FlowID:         "sk_non_eu_employee_first_entry_bratislava_v1",
		CompletedSteps: []string{"sk_visa_d"},
	}))

	if err := w.HandleMessage(context.Background(), msg); err != nil {
		t.Fatalf("HandleMessage: %v", err)
	}

	id := uuid.MustParse(msg.ID)
	ev, ok := events.byID[id]
	if !ok {
		t.Fatal("event not recorded")
	}
	if ev.Type != "progress.saved" {
		t.Errorf("Type = %q", ev.Type)
	}
	if ev.FlowID != "sk_non_eu_employee_first_entry_bratislava_v1" {
		t.Errorf("FlowID = %q", ev.FlowID)
	}
	if !ev.OccurredAt.Equal(msg.Timestamp) {
		t.Errorf("OccurredAt = %v, want %v", ev.OccurredAt, msg.Timestamp)
	}

	var payload mq.ProgressSavedPayload
	if err := json.Unmarshal(ev.Payload, &payload); err != nil {
		t.Fatalf("payload: %v", err)
	}
	if len(payload.CompletedSteps) != 1 || payload.CompletedSteps[0] != "sk_visa_d" {
		t.Errorf("CompletedSteps = %v", payload.CompletedSteps)
	}
}

func TestHandleMessage_DuplicateIsAcked(t *testing.T) {
	events := newFakeEvents()
	w := testWorker(events)

	msg := roundTrip(t, mq.NewMessage(mq.MessageTypeProgressDeleted, mq.ProgressDeletedPayload{FlowID: "f"}))

	for i := 0; i < 2; i++ {
		if err := w.HandleMessage(context.Background(), msg); err != nil {
			t.Fatalf("delivery %d: %v", i+1, err)
		}
	}
	if len(events.byID) != 1 {
		t.Errorf("recorded %d events, want 1", len(events.byID))
	}
}

func TestHandleMessage_InvalidIsDropped(t *testing.T) {
	tests := []struct {
		name string
		msg  *mq.Message
	}{
		{"bad id", &mq.Message{ID: "not-a-uuid", Type: mq.MessageTypeProgressSaved, Timestamp: time.Now()}},
		{"empty type", &mq.Message{ID: uuid.NewString(), Timestamp: time.Now()}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			events := newFakeEvents()
			w := testWorker(events)

			if err := w.HandleMessage(context.Background(), tt.msg); err != nil {
				t.Errorf("invalid message must be acked, got %v", err)
			}
			if len(events.byID) != 0 {
				t.Error("invalid message must not be recorded")
			}
		})
	}
}

func TestHandleMessage_StoreFailureIsRetried(t *testing.T) {
	events := newFakeEvents()
	events.insertErr = errors.New("connection refused")
	w := testWorker(events)

	msg := roundTrip(t, mq.NewMessage(mq.MessageTypeFlowRecommended, mq.FlowRecommendedPayload{
		Confidence: domain.ConfidenceLow,
		Rule:       "default",
	}))

	if err := w.HandleMessage(context.Background(), msg); err == nil {
		t.Error("expected error so the message is requeued")
	}
}

func TestHTTPHandler_Events(t *testing.T) {
	events := newFakeEvents()
	w := testWorker(events)
	_ = w.HandleMessage(context.Background(),
		roundTrip(t, mq.NewMessage(mq.MessageTypeProgressDeleted, mq.ProgressDeletedPayload{FlowID: "a"})))
	_ = w.HandleMessage(context.Background(),
		roundTrip(t, mq.NewMessage(mq.MessageTypeProgressDeleted, mq.ProgressDeletedPayload{FlowID: "b"})))

	h := NewHTTPHandler(events, slog.New(slog.NewTextHandler(io.Discard, nil)))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/events?flow_id=a&limit=5", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	var resp struct {
		Events []domain.Event `json:"events"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(resp.Events) != 1 || resp.Events[0].FlowID != "a" {
		t.Errorf("events = %+v", resp.Events)
	}
	if events.lastQuery.Limit != 5 {
		t.Errorf("limit = %d, want 5", events.lastQuery.Limit)
	}

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/events?limit=abc", nil))
	if rec.Code != http.StatusBadRequest {
		t.Errorf("bad limit: status = %d, want 400", rec.Code)
	}

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	if rec.Code != http.StatusOK {
		t.Errorf("healthz: status = %d", rec.Code)
	}
}
