package api

import (
	"net/http"

	"github.com/shaiso/Simplify/internal/telemetry"
)

// LegacyFlowID — flow, который отдаёт GET /resolve-flow.
const LegacyFlowID = "sk_non_eu_employee_first_entry_bratislava_v1"

// ListFlows возвращает каталог flows.
// GET /flows
func (h *Handler) ListFlows(w http.ResponseWriter, r *http.Request) {
	flows, err := h.flows.List(r.Context())
	if HandleCatalogError(w, telemetry.FromContext(r.Context()), err, "") {
		return
	}

	JSON(w, http.StatusOK, FlowListResponse{Flows: flows})
}

// GetFlow возвращает flow со всеми шагами.
// GET /flow/{flow_id}
func (h *Handler) GetFlow(w http.ResponseWriter, r *http.Request) {
	h.resolve(w, r, r.PathValue("flow_id"))
}

// ResolveFlow — GET /resolve-flow, фиксированный flow для старых клиентов.
func (h *Handler) ResolveFlow(w http.ResponseWriter, r *http.Request) {
	h.resolve(w, r, LegacyFlowID)
}

func (h *Handler) resolve(w http.ResponseWriter, r *http.Request, flowID string) {
	ctx := r.Context()
	logger := telemetry.WithFlowID(telemetry.FromContext(ctx), flowID)

	flow, err := h.flows.Get(ctx, flowID)
	if HandleCatalogError(w, logger, err, "flow not found: "+flowID) {
		return
	}

	steps, err := h.steps.Resolve(ctx, flow)
	if HandleCatalogError(w, logger, err, "") {
		return
	}

	logger.Debug("flow resolved", "steps", len(steps))
	JSON(w, http.StatusOK, ResolvedFlowResponse{
		Flow:  flow.Header(),
		Steps: steps,
	})
}
