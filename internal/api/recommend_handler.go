package api

import (
	"encoding/json"
	"net/http"

	"github.com/shaiso/Simplify/internal/domain"
	"github.com/shaiso/Simplify/internal/mq"
	"github.com/shaiso/Simplify/internal/telemetry"
)

// RecommendFlow подбирает flow по ответам анкеты.
// POST /recommend-flow
func (h *Handler) RecommendFlow(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := telemetry.FromContext(ctx)

	var answers domain.IntakeAnswers
	if err := json.NewDecoder(r.Body).Decode(&answers); err != nil {
		BadRequest(w, "invalid request body")
		return
	}

	out, err := h.recommender.Evaluate(ctx, answers)
	if err != nil {
		InternalError(w, logger, err)
		return
	}

	if h.publisher != nil {
		err := h.publisher.PublishFlowRecommended(ctx, mq.FlowRecommendedPayload{
			Answers:    answers,
			FlowID:     out.Recommendation.FlowID,
			Confidence: out.Recommendation.Confidence,
			Rule:       out.Rule,
		})
		if err != nil {
			logger.Warn("failed to publish flow.recommended", "error", err)
		}
	}

	JSON(w, http.StatusOK, out.Recommendation)
}
