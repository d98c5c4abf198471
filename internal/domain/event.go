package domain

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Event — запись журнала событий (flow.recommended, progress.saved, progress.deleted).
type Event struct {
	ID         uuid.UUID       `json:"id"`
	Type       string          `json:"type"`
	FlowID     string          `json:"flow_id,omitempty"`
	Payload    json.RawMessage `json:"payload"`
	OccurredAt time.Time       `json:"occurred_at"`
	RecordedAt time.Time       `json:"recorded_at"`
}
