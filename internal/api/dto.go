package api

import (
	"github.com/shaiso/Simplify/internal/catalog"
	"github.com/shaiso/Simplify/internal/domain"
)

// FlowListResponse — ответ GET /flows.
type FlowListResponse struct {
	Flows []domain.FlowSummary `json:"flows"`
}

// ResolvedFlowResponse — ответ GET /flow/{flow_id}.
type ResolvedFlowResponse struct {
	Flow  domain.Header `json:"flow"`
	Steps []domain.Step `json:"steps"`
}

// SaveProgressRequest — тело POST /progress/{flow_id}.
//
// flow_id в теле необязателен: идентификатор берётся из пути.
type SaveProgressRequest struct {
	FlowID         string          `json:"flow_id"`
	CompletedSteps []string        `json:"completed_steps"`
	Documents      map[string]bool `json:"documents,omitempty"`
}

// ToDomain собирает Progress для flowID из пути.
func (r SaveProgressRequest) ToDomain(flowID string) domain.Progress {
	p := domain.Progress{
		FlowID:         flowID,
		CompletedSteps: r.CompletedSteps,
		Documents:      r.Documents,
	}
	p.Normalize()
	return p
}

// StatusResponse — подтверждение записи прогресса.
type StatusResponse struct {
	Status string `json:"status"`
	FlowID string `json:"flow_id,omitempty"`
}

// EligibilityResponse — ответ GET /eligibility.
type EligibilityResponse struct {
	Version    string              `json:"version,omitempty"`
	Dimensions []catalog.Dimension `json:"dimensions"`
}
