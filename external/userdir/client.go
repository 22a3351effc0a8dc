package userdir

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/valyala/bytebufferpool"

	"github.com/hucklog/ultimate-stats/internal/domain/playerstats"
	"github.com/hucklog/ultimate-stats/internal/platform/logging"
	"github.com/hucklog/ultimate-stats/internal/platform/resilience"
	"github.com/hucklog/ultimate-stats/internal/usecase"
)

const (
	defaultLookupPath = "/v1/users"
	defaultTimeout    = 3 * time.Second

	identityCacheTTL        = 5 * time.Minute
	identityCacheMaxEntries = 4096
)

var errUserDirTransient = crerr.New("user directory transient failure")

type ClientConfig struct {
	HTTPClient     *http.Client
	BaseURL        string
	LookupPath     string
	APIKey         string
	Timeout        time.Duration
	Logger         *logging.Logger
	CircuitBreaker resilience.CircuitBreakerConfig
}

// Client resolves player display identities against the user directory
// service. It satisfies the reconciliation service's resolver contract.
type Client struct {
	httpClient     *http.Client
	baseURL        string
	lookupPath     string
	apiKey         string
	logger         *logging.Logger
	breaker        *resilience.CircuitBreaker
	circuitEnabled bool
	flight         resilience.SingleFlight
	cache          *identityCache
}

func NewClient(cfg ClientConfig) *Client {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = defaultTimeout
		}
		httpClient = &http.Client{Timeout: timeout}
	}

	lookupPath := strings.TrimSpace(cfg.LookupPath)
	if lookupPath == "" {
		lookupPath = defaultLookupPath
	}
	breakerCfg := resilience.NormalizeCircuitBreakerConfig(cfg.CircuitBreaker)

	return &Client{
		httpClient:     httpClient,
		baseURL:        strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/"),
		lookupPath:     lookupPath,
		apiKey:         strings.TrimSpace(cfg.APIKey),
		logger:         logger,
		breaker:        resilience.NewCircuitBreaker(breakerCfg.FailureThreshold, breakerCfg.OpenTimeout, breakerCfg.HalfOpenMaxReq),
		circuitEnabled: breakerCfg.Enabled,
		cache:          newIdentityCache(identityCacheTTL, identityCacheMaxEntries),
	}
}

type userPayload struct {
	ID          string `json:"id"`
	DisplayName string `json:"displayName"`
	Username    string `json:"username"`
}

// Resolve looks up one player's display identity. Results are cached
// briefly; concurrent lookups for the same player collapse into one
// request.
func (c *Client) Resolve(ctx context.Context, playerID string) (playerstats.Identity, error) {
	playerID = strings.TrimSpace(playerID)
	if playerID == "" {
		return playerstats.Identity{}, fmt.Errorf("%w: player id is required", usecase.ErrInvalidInput)
	}
	if c.baseURL == "" {
		return playerstats.Identity{}, fmt.Errorf("%w: user directory is not configured", usecase.ErrDependencyUnavailable)
	}

	if identity, ok := c.cache.Get(playerID); ok {
		return identity, nil
	}

	if c.circuitEnabled {
		if err := c.breaker.Allow(); err != nil {
			c.logger.WarnContext(ctx, "user directory circuit breaker rejected request", "state", c.breaker.State())
			return playerstats.Identity{}, fmt.Errorf("%w: user directory is temporarily unavailable", usecase.ErrDependencyUnavailable)
		}
	}

	out, err, _ := c.flight.Do(playerID, func() (any, error) {
		identity, reqErr := c.fetchIdentity(ctx, playerID)
		if c.circuitEnabled {
			if reqErr != nil && crerr.Is(reqErr, errUserDirTransient) {
				c.breaker.RecordFailure()
			} else {
				c.breaker.RecordSuccess()
			}
		}
		return identity, reqErr
	})
	if err != nil {
		if crerr.Is(err, errUserDirTransient) {
			return playerstats.Identity{}, fmt.Errorf("%w: %v", usecase.ErrDependencyUnavailable, err)
		}
		return playerstats.Identity{}, err
	}

	identity, ok := out.(playerstats.Identity)
	if !ok {
		return playerstats.Identity{}, fmt.Errorf("unexpected lookup payload type %T", out)
	}

	c.cache.Set(playerID, identity)
	return identity, nil
}

func (c *Client) fetchIdentity(ctx context.Context, playerID string) (playerstats.Identity, error) {
	lookupURL := c.baseURL + c.lookupPath + "/" + url.PathEscape(playerID)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, lookupURL, nil)
	if err != nil {
		return playerstats.Identity{}, crerr.Wrap(err, "build request")
	}
	req.Header.Set("Accept", "application/json")
	if c.apiKey != "" {
		req.Header.Set("X-API-Key", c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return playerstats.Identity{}, crerr.Wrapf(errUserDirTransient, "send request: %v", err)
	}
	defer func() { _ = resp.Body.Close() }()

	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)
	if _, err := buf.ReadFrom(io.LimitReader(resp.Body, 1<<20)); err != nil {
		return playerstats.Identity{}, crerr.Wrapf(errUserDirTransient, "read response body: %v", err)
	}

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return playerstats.Identity{}, fmt.Errorf("%w: player %s is not registered", usecase.ErrNotFound, playerID)
	case resp.StatusCode >= 500:
		return playerstats.Identity{}, crerr.Wrapf(errUserDirTransient, "directory status=%d", resp.StatusCode)
	case resp.StatusCode != http.StatusOK:
		return playerstats.Identity{}, crerr.Newf("directory status=%d body=%s", resp.StatusCode, abbreviate(buf.Bytes()))
	}

	var payload userPayload
	if err := sonic.Unmarshal(buf.Bytes(), &payload); err != nil {
		return playerstats.Identity{}, crerr.Wrap(err, "decode directory payload")
	}
	if payload.ID == "" {
		payload.ID = playerID
	}

	return playerstats.Identity{
		ID:       payload.ID,
		Name:     payload.DisplayName,
		Username: payload.Username,
	}, nil
}

func abbreviate(body []byte) string {
	const limit = 256
	text := strings.TrimSpace(string(body))
	if len(text) <= limit {
		return text
	}
	return text[:limit] + "..."
}
