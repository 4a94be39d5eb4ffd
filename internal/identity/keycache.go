package identity

import (
	"context"
	"crypto/rsa"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"math/big"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/sethvargo/go-retry"

	pkgerrors "github.com/admaster-ai/admaster-backend/pkg/errors"
	"github.com/admaster-ai/admaster-backend/pkg/metrics"
)

const (
	defaultFetchTimeout    = 5 * time.Second
	defaultRefreshAttempts = 3
	defaultRefreshCooldown = 30 * time.Second
	refreshBaseDelay       = 200 * time.Millisecond
)

// errUnknownKey means the key set was consulted (and refreshed if allowed) and
// still has no key for the token's kid. The verifier maps it to a credential
// failure, not a dependency failure.
var errUnknownKey = errors.New("signing key not found for kid")

// jwksDocument mirrors the provider's JWKS endpoint response.
type jwksDocument struct {
	Keys []jwksKey `json:"keys"`
}

type jwksKey struct {
	Kty string `json:"kty"`
	Kid string `json:"kid"`
	Use string `json:"use"`
	Alg string `json:"alg"`
	N   string `json:"n"`
	E   string `json:"e"`
}

// KeyCache holds the identity provider's RSA signing keys process-wide.
// It populates itself on first use and refreshes when asked for an unknown
// kid, with a bounded retry ceiling per refresh and a cooldown between
// refreshes so a provider outage is not hammered. The key map lock is never
// held during the HTTP fetch; refreshMu serializes fetches so a burst of
// unknown kids triggers a single refresh.
type KeyCache struct {
	url      string
	client   *http.Client
	attempts uint64
	cooldown time.Duration
	metrics  *metrics.AppMetrics

	mu          sync.RWMutex
	keys        map[string]*rsa.PublicKey
	lastRefresh time.Time

	refreshMu sync.Mutex
}

// KeyCacheOptions configures a KeyCache.
type KeyCacheOptions struct {
	JWKSURL         string
	FetchTimeout    time.Duration
	RefreshAttempts uint64
	RefreshCooldown time.Duration
	HTTPClient      *http.Client
	Metrics         *metrics.AppMetrics
}

// NewKeyCache builds an empty cache bound to the provider's JWKS endpoint.
func NewKeyCache(opts KeyCacheOptions) (*KeyCache, error) {
	if strings.TrimSpace(opts.JWKSURL) == "" {
		return nil, fmt.Errorf("jwks url required")
	}
	if opts.FetchTimeout <= 0 {
		opts.FetchTimeout = defaultFetchTimeout
	}
	if opts.RefreshAttempts == 0 {
		opts.RefreshAttempts = defaultRefreshAttempts
	}
	if opts.RefreshCooldown <= 0 {
		opts.RefreshCooldown = defaultRefreshCooldown
	}
	client := opts.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: opts.FetchTimeout}
	}
	return &KeyCache{
		url:      opts.JWKSURL,
		client:   client,
		attempts: opts.RefreshAttempts,
		cooldown: opts.RefreshCooldown,
		metrics:  opts.Metrics,
	}, nil
}

// Key returns the RSA public key for the given kid, refreshing the key set
// when the kid is unknown and the cooldown allows it.
func (c *KeyCache) Key(ctx context.Context, kid string) (*rsa.PublicKey, error) {
	if key, ok := c.lookup(kid); ok {
		return key, nil
	}
	if err := c.refresh(ctx); err != nil {
		return nil, err
	}
	if key, ok := c.lookup(kid); ok {
		return key, nil
	}
	return nil, errUnknownKey
}

func (c *KeyCache) lookup(kid string) (*rsa.PublicKey, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	key, ok := c.keys[kid]
	return key, ok
}

// refresh fetches the key set unless another refresh completed within the
// cooldown window.
func (c *KeyCache) refresh(ctx context.Context) error {
	c.refreshMu.Lock()
	defer c.refreshMu.Unlock()

	c.mu.RLock()
	populated := c.keys != nil
	coolingDown := time.Since(c.lastRefresh) < c.cooldown
	c.mu.RUnlock()

	if coolingDown {
		if populated {
			return nil
		}
		return pkgerrors.New(pkgerrors.CodeDependency, "signing keys unavailable")
	}

	var doc *jwksDocument
	backoff := retry.WithMaxRetries(c.attempts, retry.NewExponential(refreshBaseDelay))
	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		fetched, fetchErr := c.fetchKeys(ctx)
		if fetchErr != nil {
			return retry.RetryableError(fetchErr)
		}
		doc = fetched
		return nil
	})

	c.mu.Lock()
	c.lastRefresh = time.Now()
	c.mu.Unlock()

	if err != nil {
		c.metrics.IncKeyRefresh(metrics.OutcomeError)
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "failed to refresh identity provider signing keys")
	}

	keys := make(map[string]*rsa.PublicKey, len(doc.Keys))
	for _, k := range doc.Keys {
		if !strings.EqualFold(k.Kty, "RSA") || k.Kid == "" {
			continue
		}
		pub, parseErr := parseRSAKey(k)
		if parseErr != nil {
			continue
		}
		keys[k.Kid] = pub
	}

	c.mu.Lock()
	c.keys = keys
	c.mu.Unlock()

	c.metrics.IncKeyRefresh(metrics.OutcomeOK)
	return nil
}

func (c *KeyCache) fetchKeys(ctx context.Context) (*jwksDocument, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return nil, fmt.Errorf("building jwks request: %w", err)
	}
	res, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching jwks: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("jwks endpoint returned status %d", res.StatusCode)
	}

	var doc jwksDocument
	if err := json.NewDecoder(res.Body).Decode(&doc); err != nil {
		return nil, fmt.Errorf("decoding jwks response: %w", err)
	}
	return &doc, nil
}

func parseRSAKey(key jwksKey) (*rsa.PublicKey, error) {
	nBytes, err := base64.RawURLEncoding.DecodeString(key.N)
	if err != nil {
		return nil, fmt.Errorf("decoding modulus for kid %s: %w", key.Kid, err)
	}
	eBytes, err := base64.RawURLEncoding.DecodeString(key.E)
	if err != nil {
		return nil, fmt.Errorf("decoding exponent for kid %s: %w", key.Kid, err)
	}

	exponent := 0
	for _, b := range eBytes {
		exponent = exponent<<8 | int(b)
	}
	if exponent <= 0 {
		return nil, fmt.Errorf("invalid exponent for kid %s", key.Kid)
	}

	return &rsa.PublicKey{
		N: new(big.Int).SetBytes(nBytes),
		E: exponent,
	}, nil
}
