package httpapi

import (
	"net/http"
)

func (h *Handler) GetPlayerStats(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetPlayerStats")
	defer span.End()

	playerID := r.PathValue("playerID")
	view, err := h.viewService.GetPlayerTotals(ctx, playerID)
	if err != nil {
		h.logger.WarnContext(ctx, "get player stats failed", "player_id", playerID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, view)
}

func (h *Handler) ListPlayerGames(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListPlayerGames")
	defer span.End()

	playerID := r.PathValue("playerID")
	views, err := h.viewService.ListPlayerGames(ctx, playerID)
	if err != nil {
		h.logger.WarnContext(ctx, "list player games failed", "player_id", playerID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, views)
}

func (h *Handler) ListPlayerConnections(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListPlayerConnections")
	defer span.End()

	playerID := r.PathValue("playerID")
	records, err := h.viewService.ListConnectionsByThrower(ctx, playerID)
	if err != nil {
		h.logger.WarnContext(ctx, "list player connections failed", "player_id", playerID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, records)
}
