package api

import (
	"net/http"

	"github.com/shaiso/Simplify/internal/catalog"
	"github.com/shaiso/Simplify/internal/telemetry"
)

// Health — liveness.
// GET /health
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	JSON(w, http.StatusOK, StatusResponse{Status: "ok"})
}

// GetEligibility отдаёт вопросы анкеты из документа eligibility.
// Без документа — пустой список.
// GET /eligibility
func (h *Handler) GetEligibility(w http.ResponseWriter, r *http.Request) {
	doc, err := catalog.LoadEligibility(h.rulesDir)
	if err != nil {
		InternalError(w, telemetry.FromContext(r.Context()), err)
		return
	}

	resp := EligibilityResponse{Dimensions: []catalog.Dimension{}}
	if doc != nil {
		resp.Version = doc.Version
		if doc.Dimensions != nil {
			resp.Dimensions = doc.Dimensions
		}
	}
	JSON(w, http.StatusOK, resp)
}
