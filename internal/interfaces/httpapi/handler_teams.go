package httpapi

import (
	"net/http"
)

func (h *Handler) GetTeamStats(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetTeamStats")
	defer span.End()

	teamID := r.PathValue("teamID")
	view, err := h.viewService.GetTeamTotals(ctx, teamID)
	if err != nil {
		h.logger.WarnContext(ctx, "get team stats failed", "team_id", teamID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, view)
}

func (h *Handler) GetTeamGameStats(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetTeamGameStats")
	defer span.End()

	teamID := r.PathValue("teamID")
	gameID := r.PathValue("gameID")
	view, err := h.viewService.GetTeamGameRecord(ctx, teamID, gameID)
	if err != nil {
		h.logger.WarnContext(ctx, "get team game stats failed", "team_id", teamID, "game_id", gameID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, view)
}
