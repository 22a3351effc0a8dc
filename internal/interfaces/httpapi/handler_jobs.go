package httpapi

import (
	"fmt"
	"net/http"

	"github.com/hucklog/ultimate-stats/internal/usecase"
)

type recomputeTotalsRequest struct {
	TeamIDs    []string `json:"teamIds" validate:"required,min=1"`
	MaxWorkers int      `json:"maxWorkers" validate:"gte=0,lte=64"`
}

func (h *Handler) RunRecomputeTotalsJob(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RunRecomputeTotalsJob")
	defer span.End()

	if h.recomputeService == nil {
		writeError(ctx, w, fmt.Errorf("%w: recompute service is not configured", usecase.ErrDependencyUnavailable))
		return
	}

	var req recomputeTotalsRequest
	if err := h.decodeAndValidate(r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	result, err := h.recomputeService.RecomputeLifetimeTotals(ctx, usecase.RecomputeInput{
		TeamIDs:    req.TeamIDs,
		MaxWorkers: req.MaxWorkers,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "recompute totals job failed", "teams", len(req.TeamIDs), "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, result)
}
