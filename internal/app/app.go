package app

import (
	"fmt"
	"net/http"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/uptrace/opentelemetry-go-extra/otelsql"
	"github.com/uptrace/opentelemetry-go-extra/otelsqlx"
	semconv "go.opentelemetry.io/otel/semconv/v1.34.0"

	"github.com/hucklog/ultimate-stats/external/userdir"
	"github.com/hucklog/ultimate-stats/internal/config"
	"github.com/hucklog/ultimate-stats/internal/domain/connection"
	"github.com/hucklog/ultimate-stats/internal/domain/game"
	"github.com/hucklog/ultimate-stats/internal/domain/playerstats"
	"github.com/hucklog/ultimate-stats/internal/domain/team"
	"github.com/hucklog/ultimate-stats/internal/domain/teamstats"
	cacherepo "github.com/hucklog/ultimate-stats/internal/infrastructure/repository/cache"
	"github.com/hucklog/ultimate-stats/internal/infrastructure/repository/memory"
	"github.com/hucklog/ultimate-stats/internal/infrastructure/repository/postgres"
	"github.com/hucklog/ultimate-stats/internal/interfaces/httpapi"
	basecache "github.com/hucklog/ultimate-stats/internal/platform/cache"
	"github.com/hucklog/ultimate-stats/internal/platform/logging"
	"github.com/hucklog/ultimate-stats/internal/platform/resilience"
	"github.com/hucklog/ultimate-stats/internal/usecase"
)

type repositories struct {
	games       game.Repository
	teams       team.Repository
	playerStats playerstats.Repository
	teamStats   teamstats.Repository
	connections connection.Repository
}

// NewHTTPServer wires repositories, services, and the HTTP surface
// from config. An empty DB_URL selects the in-memory repositories;
// anything else opens postgres.
func NewHTTPServer(cfg config.Config, logger *logging.Logger) (*http.Server, error) {
	if logger == nil {
		logger = logging.Default()
	}

	repos, err := buildRepositories(cfg, logger)
	if err != nil {
		return nil, err
	}

	if cfg.CacheEnabled {
		store := basecache.NewStore(cfg.CacheTTL)
		repos.playerStats = cacherepo.NewPlayerStatsRepository(repos.playerStats, store)
		repos.teamStats = cacherepo.NewTeamStatsRepository(repos.teamStats, store)
		repos.connections = cacherepo.NewConnectionRepository(repos.connections, store)
		logger.Info("repository cache enabled", "ttl", cfg.CacheTTL.String())
	}

	var resolver usecase.IdentityResolver
	if cfg.UserDirBaseURL != "" {
		resolver = userdir.NewClient(userdir.ClientConfig{
			BaseURL:    cfg.UserDirBaseURL,
			LookupPath: cfg.UserDirLookupPath,
			APIKey:     cfg.UserDirAPIKey,
			Timeout:    cfg.UserDirTimeout,
			Logger:     logger,
			CircuitBreaker: resilience.CircuitBreakerConfig{
				Enabled:          cfg.UserDirCircuitEnabled,
				FailureThreshold: cfg.UserDirCircuitFailureCount,
				OpenTimeout:      cfg.UserDirCircuitOpenTimeout,
				HalfOpenMaxReq:   cfg.UserDirCircuitHalfOpenMax,
			},
		})
		logger.Info("user directory resolver enabled", "base_url", cfg.UserDirBaseURL)
	}

	statsSvc := usecase.NewStatsService(repos.games, repos.playerStats, repos.teamStats, repos.connections, logger)
	viewSvc := usecase.NewStatsViewService(repos.playerStats, repos.teamStats, repos.connections)
	reconSvc := usecase.NewReconciliationService(repos.games, repos.teams, repos.playerStats, repos.connections, resolver, logger)
	recomputeSvc := usecase.NewRecomputeService(repos.games, repos.playerStats, logger)

	handler := httpapi.NewHandler(statsSvc, viewSvc, reconSvc, recomputeSvc, logger)
	router := httpapi.NewRouter(handler, logger, cfg.SwaggerEnabled, cfg.CORSAllowedOrigins, cfg.InternalJobToken)

	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	if server.Addr == "" {
		return nil, fmt.Errorf("http server addr cannot be empty")
	}

	return server, nil
}

func buildRepositories(cfg config.Config, logger *logging.Logger) (repositories, error) {
	if cfg.DBURL == "" {
		logger.Info("using in-memory repositories", "reason", "DB_URL empty")
		return repositories{
			games:       memory.NewGameRepository(),
			teams:       memory.NewTeamRepository(memory.SeedTeams()),
			playerStats: memory.NewPlayerStatsRepository(),
			teamStats:   memory.NewTeamStatsRepository(),
			connections: memory.NewConnectionRepository(),
		}, nil
	}

	db, err := openDatabase(cfg)
	if err != nil {
		return repositories{}, err
	}
	logger.Info("postgres repositories ready", "db", dbNameFromURL(cfg.DBURL))

	return repositories{
		games:       postgres.NewGameRepository(db),
		teams:       postgres.NewTeamRepository(db),
		playerStats: postgres.NewPlayerStatsRepository(db),
		teamStats:   postgres.NewTeamStatsRepository(db),
		connections: postgres.NewConnectionRepository(db),
	}, nil
}

func openDatabase(cfg config.Config) (*sqlx.DB, error) {
	dbURL := normalizeDBURL(cfg.DBURL, cfg.DBDisablePreparedBinary)

	db, err := otelsqlx.Open("postgres", dbURL,
		otelsql.WithAttributes(semconv.DBSystemNamePostgreSQL),
		otelsql.WithDBName(dbNameFromURL(cfg.DBURL)),
		otelsql.WithQueryFormatter(formatDBQueryForTrace),
	)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(30 * time.Minute)
	return db, nil
}
