package httpapi

import (
	"net/http"

	"github.com/hucklog/ultimate-stats/internal/domain/playerstats"
	"github.com/hucklog/ultimate-stats/internal/usecase"
)

type reconcileGuestRequest struct {
	GuestID  string   `json:"guestId" validate:"required"`
	PlayerID string   `json:"playerId" validate:"required"`
	Name     string   `json:"name"`
	Username string   `json:"username"`
	TeamIDs  []string `json:"teamIds" validate:"required,min=1"`
}

func (h *Handler) CreateReconciliation(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CreateReconciliation")
	defer span.End()

	var req reconcileGuestRequest
	if err := h.decodeAndValidate(r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	err := h.reconService.ReconcileGuest(ctx, usecase.ReconcileGuestInput{
		GuestID: req.GuestID,
		Player: playerstats.Identity{
			ID:       req.PlayerID,
			Name:     req.Name,
			Username: req.Username,
		},
		TeamIDs: req.TeamIDs,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "reconcile guest failed",
			"guest_id", req.GuestID,
			"player_id", req.PlayerID,
			"error", err,
		)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]string{
		"guestId":  req.GuestID,
		"playerId": req.PlayerID,
	})
}
