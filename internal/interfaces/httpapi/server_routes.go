package httpapi

import "net/http"

func registerSystemRoutes(mux *http.ServeMux, handler *Handler, swaggerEnabled bool) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
	if !swaggerEnabled {
		return
	}

	mux.HandleFunc("GET /openapi.yaml", handler.OpenAPI)
	mux.HandleFunc("GET /docs", handler.SwaggerUI)
	mux.HandleFunc("GET /docs/", handler.SwaggerUI)
}

func registerGameRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("POST /v1/games", handler.CreateGame)
	mux.HandleFunc("GET /v1/games/{gameID}", handler.GetGame)
	mux.HandleFunc("POST /v1/games/{gameID}/points", handler.IngestPoint)
	mux.HandleFunc("POST /v1/games/{gameID}/complete", handler.CompleteGame)
	mux.HandleFunc("GET /v1/games/{gameID}/leaders", handler.GetGameLeaders)
	mux.HandleFunc("GET /v1/games/{gameID}/connections", handler.ListGameConnections)
}

func registerStatsRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/players/{playerID}/stats", handler.GetPlayerStats)
	mux.HandleFunc("GET /v1/players/{playerID}/games", handler.ListPlayerGames)
	mux.HandleFunc("GET /v1/players/{playerID}/connections", handler.ListPlayerConnections)
	mux.HandleFunc("GET /v1/teams/{teamID}/stats", handler.GetTeamStats)
	mux.HandleFunc("GET /v1/teams/{teamID}/games/{gameID}", handler.GetTeamGameStats)
	mux.HandleFunc("POST /v1/reconciliations", handler.CreateReconciliation)
}

func registerInternalJobRoutes(mux *http.ServeMux, handler *Handler, internalJobToken string) {
	mux.Handle("POST /v1/internal/jobs/recompute-totals", RequireInternalJobToken(internalJobToken, http.HandlerFunc(handler.RunRecomputeTotalsJob)))
}
