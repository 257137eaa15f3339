package ups

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/devacc8/cybership-carrier-service/pkg/carrier"
	"github.com/devacc8/cybership-carrier-service/pkg/carrier/transport"
	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// tokenExpiryBuffer refreshes 60 seconds before actual expiry to avoid
// edge-case failures from clock skew and in-flight latency.
const tokenExpiryBuffer = 60 * time.Second

// AuthManager owns the OAuth client-credentials exchange for one UPS
// account and caches the resulting bearer token. Concurrent refreshes are
// deduplicated: at most one exchange is in flight at any instant, and all
// waiting callers receive its result.
type AuthManager struct {
	cfg    Config
	http   transport.Doer
	logger *otelzap.Logger

	mu        sync.RWMutex
	token     string
	expiresAt time.Time

	group singleflight.Group
}

// NewAuthManager creates an auth manager using the given transport.
func NewAuthManager(cfg Config, doer transport.Doer, logger *otelzap.Logger) *AuthManager {
	cfg.applyDefaults()
	return &AuthManager{
		cfg:    cfg,
		http:   doer,
		logger: logger,
	}
}

// GetAccessToken returns the cached token while it is still fresh and
// performs a single credential exchange otherwise.
func (a *AuthManager) GetAccessToken(ctx context.Context) (string, error) {
	if token, ok := a.cached(); ok {
		return token, nil
	}

	v, err, _ := a.group.Do("token", func() (any, error) {
		// A caller that lost the race may find the winner's token cached.
		if token, ok := a.cached(); ok {
			return token, nil
		}
		return a.acquireToken(ctx)
	})
	if err != nil {
		return "", err
	}
	return v.(string), nil
}

// InvalidateToken clears the cached token unconditionally. It is
// idempotent and does not cancel an in-flight exchange.
func (a *AuthManager) InvalidateToken() {
	a.mu.Lock()
	a.token = ""
	a.expiresAt = time.Time{}
	a.mu.Unlock()
}

func (a *AuthManager) cached() (string, bool) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	if a.token != "" && time.Now().Before(a.expiresAt) {
		return a.token, true
	}
	return "", false
}

func (a *AuthManager) acquireToken(ctx context.Context) (string, error) {
	credentials := base64.StdEncoding.EncodeToString(
		[]byte(a.cfg.ClientID + ":" + a.cfg.ClientSecret))

	resp, err := a.http.Post(ctx, a.cfg.OAuthURL,
		[]byte("grant_type=client_credentials"),
		map[string]string{
			"Content-Type":  "application/x-www-form-urlencoded",
			"Authorization": "Basic " + credentials,
		},
		a.cfg.AuthTimeout,
	)
	if err != nil {
		return "", carrier.NewCarrierError(carrier.ErrCodeNetwork, "failed to acquire UPS OAuth token").
			WithCarrier(carrier.CarrierUPS).
			WithRetryable(true).
			WithCause(err)
	}

	if resp.Status != http.StatusOK {
		return "", carrier.NewCarrierError(carrier.ErrCodeAuthFailed,
			fmt.Sprintf("UPS OAuth failed with status %d", resp.Status)).
			WithCarrier(carrier.CarrierUPS).
			WithStatus(resp.Status).
			WithRetryable(resp.Status >= 500)
	}

	var body oauthResponse
	if err := json.Unmarshal(resp.Body, &body); err != nil {
		return "", carrier.NewCarrierError(carrier.ErrCodeMalformedResponse,
			"UPS OAuth returned unexpected response format").
			WithCarrier(carrier.CarrierUPS).
			WithCause(err)
	}
	if issues := checkShape(&body); issues != nil {
		return "", carrier.NewCarrierError(carrier.ErrCodeMalformedResponse,
			"UPS OAuth returned unexpected response format").
			WithCarrier(carrier.CarrierUPS).
			WithDetails(map[string]any{"issues": issues})
	}

	expiresIn, err := strconv.Atoi(body.ExpiresIn)
	if err != nil {
		return "", carrier.NewCarrierError(carrier.ErrCodeMalformedResponse,
			fmt.Sprintf("UPS OAuth returned non-numeric expires_in: %q", body.ExpiresIn)).
			WithCarrier(carrier.CarrierUPS).
			WithCause(err)
	}

	a.mu.Lock()
	a.token = body.AccessToken
	// A non-positive lifetime leaves expiresAt in the past, forcing a
	// fresh exchange on the next call.
	a.expiresAt = time.Now().Add(time.Duration(expiresIn)*time.Second - tokenExpiryBuffer)
	a.mu.Unlock()

	a.logger.Debug("Acquired UPS OAuth token",
		zap.Int("expires_in_seconds", expiresIn),
	)

	return body.AccessToken, nil
}
