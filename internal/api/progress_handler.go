package api

import (
	"encoding/json"
	"net/http"

	"github.com/shaiso/Simplify/internal/mq"
	"github.com/shaiso/Simplify/internal/telemetry"
)

// GetProgress возвращает прогресс по flow (пустой, если не сохранялся).
// GET /progress/{flow_id}
func (h *Handler) GetProgress(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	flowID := r.PathValue("flow_id")

	p, err := h.progress.Get(ctx, flowID)
	if err != nil {
		InternalError(w, telemetry.WithFlowID(telemetry.FromContext(ctx), flowID), err)
		return
	}

	p.Normalize()
	JSON(w, http.StatusOK, p)
}

// SaveProgress заменяет прогресс по flow. flow_id из пути важнее flow_id из тела.
// POST /progress/{flow_id}
func (h *Handler) SaveProgress(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	flowID := r.PathValue("flow_id")
	logger := telemetry.WithFlowID(telemetry.FromContext(ctx), flowID)

	var req SaveProgressRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		BadRequest(w, "invalid request body")
		return
	}
	if req.FlowID != "" && req.FlowID != flowID {
		logger.Debug("body flow_id ignored", "body_flow_id", req.FlowID)
	}

	p := req.ToDomain(flowID)
	if err := h.progress.Save(ctx, p); err != nil {
		InternalError(w, logger, err)
		return
	}
	telemetry.ProgressWrites.WithLabelValues("save").Inc()
	logger.Info("progress saved", "completed", len(p.CompletedSteps))

	if h.publisher != nil {
		err := h.publisher.PublishProgressSaved(ctx, mq.ProgressSavedPayload{
			FlowID:         flowID,
			CompletedSteps: p.CompletedSteps,
		})
		if err != nil {
			logger.Warn("failed to publish progress.saved", "error", err)
		}
	}

	JSON(w, http.StatusOK, StatusResponse{Status: "saved", FlowID: flowID})
}

// DeleteProgress сбрасывает прогресс по flow.
// DELETE /progress/{flow_id}
func (h *Handler) DeleteProgress(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	flowID := r.PathValue("flow_id")
	logger := telemetry.WithFlowID(telemetry.FromContext(ctx), flowID)

	if err := h.progress.Delete(ctx, flowID); err != nil {
		InternalError(w, logger, err)
		return
	}
	telemetry.ProgressWrites.WithLabelValues("delete").Inc()
	logger.Info("progress deleted")

	if h.publisher != nil {
		if err := h.publisher.PublishProgressDeleted(ctx, flowID); err != nil {
			logger.Warn("failed to publish progress.deleted", "error", err)
		}
	}

	JSON(w, http.StatusOK, StatusResponse{Status: "deleted", FlowID: flowID})
}
