package httpapi

import (
	"fmt"
	"net/http"

	sonic "github.com/bytedance/sonic"

	"github.com/hucklog/ultimate-stats/internal/domain/action"
	"github.com/hucklog/ultimate-stats/internal/domain/connection"
	"github.com/hucklog/ultimate-stats/internal/domain/game"
	"github.com/hucklog/ultimate-stats/internal/domain/playerstats"
	"github.com/hucklog/ultimate-stats/internal/domain/teamstats"
	"github.com/hucklog/ultimate-stats/internal/usecase"
)

type createGameRequest struct {
	ID        string `json:"id"`
	TeamOneID string `json:"teamOneId" validate:"required"`
	TeamTwoID string `json:"teamTwoId" validate:"required"`
}

type completeGameRequest struct {
	WinningTeamID string `json:"winningTeamId" validate:"required"`
}

type pointPlayerDTO struct {
	PlayerID string `json:"playerId" validate:"required"`
	Name     string `json:"name"`
	Username string `json:"username"`
}

type pointActionDTO struct {
	Number    int    `json:"number" validate:"required,gt=0"`
	Type      string `json:"type" validate:"required"`
	PlayerOne string `json:"playerOne"`
	PlayerTwo string `json:"playerTwo"`
}

type pointRosterDTO struct {
	TeamID  string           `json:"teamId" validate:"required"`
	Players []pointPlayerDTO `json:"players" validate:"required,min=1,dive"`
}

type ingestPointRequest struct {
	TeamOne         pointRosterDTO   `json:"teamOne" validate:"required"`
	TeamTwo         pointRosterDTO   `json:"teamTwo" validate:"required"`
	TeamOneActions  []pointActionDTO `json:"teamOneActions" validate:"dive"`
	TeamTwoActions  []pointActionDTO `json:"teamTwoActions" validate:"dive"`
	PullingTeamID   string           `json:"pullingTeamId" validate:"required"`
	ReceivingTeamID string           `json:"receivingTeamId" validate:"required"`
}

type gameSummaryDTO struct {
	Game        *game.Game              `json:"game"`
	Players     []playerstats.GameRecord `json:"players"`
	Teams       []teamstats.GameRecord   `json:"teams"`
	Connections []connection.Record      `json:"connections"`
}

func (h *Handler) CreateGame(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CreateGame")
	defer span.End()

	var req createGameRequest
	if err := h.decodeAndValidate(r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	created, err := h.statsService.CreateGame(ctx, req.ID, req.TeamOneID, req.TeamTwoID)
	if err != nil {
		h.logger.WarnContext(ctx, "create game failed", "game_id", req.ID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, created)
}

func (h *Handler) IngestPoint(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.IngestPoint")
	defer span.End()

	gameID := r.PathValue("gameID")

	var req ingestPointRequest
	if err := h.decodeAndValidate(r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	input, err := req.toInput(gameID)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	if err := h.statsService.IngestPoint(ctx, input); err != nil {
		h.logger.WarnContext(ctx, "ingest point failed", "game_id", gameID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusAccepted, map[string]string{"gameId": gameID})
}

func (h *Handler) CompleteGame(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CompleteGame")
	defer span.End()

	gameID := r.PathValue("gameID")

	var req completeGameRequest
	if err := h.decodeAndValidate(r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	if err := h.statsService.CompleteGame(ctx, gameID, req.WinningTeamID); err != nil {
		h.logger.WarnContext(ctx, "complete game failed", "game_id", gameID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]string{
		"gameId":        gameID,
		"winningTeamId": req.WinningTeamID,
	})
}

func (h *Handler) GetGame(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetGame")
	defer span.End()

	gameID := r.PathValue("gameID")
	summary, err := h.statsService.GetGameSummary(ctx, gameID)
	if err != nil {
		h.logger.WarnContext(ctx, "get game summary failed", "game_id", gameID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, gameSummaryDTO{
		Game:        summary.Game,
		Players:     summary.Players,
		Teams:       summary.Teams,
		Connections: summary.Connections,
	})
}

func (h *Handler) GetGameLeaders(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetGameLeaders")
	defer span.End()

	gameID := r.PathValue("gameID")
	leaders, err := h.statsService.GetGameLeaders(ctx, gameID)
	if err != nil {
		h.logger.WarnContext(ctx, "get game leaders failed", "game_id", gameID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, leaders)
}

func (h *Handler) ListGameConnections(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListGameConnections")
	defer span.End()

	gameID := r.PathValue("gameID")
	records, err := h.viewService.ListConnectionsByGame(ctx, gameID)
	if err != nil {
		h.logger.WarnContext(ctx, "list game connections failed", "game_id", gameID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, records)
}

func (h *Handler) decodeAndValidate(r *http.Request, dst any) error {
	decoder := sonic.ConfigDefault.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(dst); err != nil {
		return fmt.Errorf("%w: %v", usecase.ErrInvalidInput, err)
	}
	if err := h.validator.Struct(dst); err != nil {
		return fmt.Errorf("%w: %v", usecase.ErrInvalidInput, err)
	}
	return nil
}

func (req ingestPointRequest) toInput(gameID string) (usecase.IngestPointInput, error) {
	teamOneActions, err := toActions(req.TeamOneActions)
	if err != nil {
		return usecase.IngestPointInput{}, err
	}
	teamTwoActions, err := toActions(req.TeamTwoActions)
	if err != nil {
		return usecase.IngestPointInput{}, err
	}

	return usecase.IngestPointInput{
		GameID:          gameID,
		TeamOne:         toRoster(req.TeamOne),
		TeamTwo:         toRoster(req.TeamTwo),
		TeamOneActions:  teamOneActions,
		TeamTwoActions:  teamTwoActions,
		PullingTeamID:   req.PullingTeamID,
		ReceivingTeamID: req.ReceivingTeamID,
	}, nil
}

func toRoster(dto pointRosterDTO) usecase.PointRoster {
	roster := usecase.PointRoster{TeamID: dto.TeamID}
	for _, p := range dto.Players {
		roster.Players = append(roster.Players, playerstats.Identity{
			ID:       p.PlayerID,
			Name:     p.Name,
			Username: p.Username,
		})
	}
	return roster
}

func toActions(dtos []pointActionDTO) ([]action.Action, error) {
	actions := make([]action.Action, 0, len(dtos))
	for _, dto := range dtos {
		kind := action.Type(dto.Type)
		if _, ok := action.AllTypes[kind]; !ok {
			return nil, fmt.Errorf("%w: unknown action type %q", usecase.ErrInvalidInput, dto.Type)
		}
		actions = append(actions, action.Action{
			Number:    dto.Number,
			Type:      kind,
			PlayerOne: dto.PlayerOne,
			PlayerTwo: dto.PlayerTwo,
		})
	}
	return actions, nil
}
