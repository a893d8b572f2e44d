package storefrontserver

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	identitydomain "github.com/rawatr0788-code/Gamerz-Kit/internal/domains/identity/domain"
	apierrors "github.com/rawatr0788-code/Gamerz-Kit/internal/shared/errors"
)

const (
	identityContextKey = "storefront.identity"
	tokenContextKey    = "storefront.token"
)

// TokenVerifier resolves a session token to the signed-in identity.
type TokenVerifier interface {
	Verify(ctx context.Context, token string) (identitydomain.Authenticated, error)
}

// IdentityMiddleware attaches the caller identity to the request. Missing or
// rejected tokens leave the caller Anonymous; handlers decide what that means.
func IdentityMiddleware(verifier TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(identityContextKey, identitydomain.Identity(identitydomain.Anonymous{}))
		token := bearerToken(c.GetHeader("Authorization"))
		if token == "" {
			c.Next()
			return
		}
		c.Set(tokenContextKey, token)
		if verifier != nil {
			if auth, err := verifier.Verify(c.Request.Context(), token); err == nil {
				c.Set(identityContextKey, identitydomain.Identity(auth))
			}
		}
		c.Next()
	}
}

func bearerToken(header string) string {
	scheme, token, ok := strings.Cut(strings.TrimSpace(header), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}

func identityFrom(c *gin.Context) identitydomain.Identity {
	if value, ok := c.Get(identityContextKey); ok {
		if id, ok := value.(identitydomain.Identity); ok {
			return id
		}
	}
	return identitydomain.Anonymous{}
}

func tokenFrom(c *gin.Context) string {
	return c.GetString(tokenContextKey)
}

// IPRateLimiter hands out one token bucket per client address. Buckets idle
// long enough to have refilled are indistinguishable from new ones and are
// swept on later calls, so the map only holds recently active addresses.
type IPRateLimiter struct {
	mu        sync.Mutex
	clients   map[string]*ipBucket
	limit     rate.Limit
	burst     int
	idle      time.Duration
	lastSweep time.Time
	now       func() time.Time
}

type ipBucket struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// NewIPRateLimiter allows burst requests at once, refilling one every interval.
func NewIPRateLimiter(interval time.Duration, burst int) *IPRateLimiter {
	if burst <= 0 {
		burst = 1
	}
	return &IPRateLimiter{
		clients: map[string]*ipBucket{},
		limit:   rate.Every(interval),
		burst:   burst,
		idle:    interval * time.Duration(burst),
		now:     time.Now,
	}
}

// Allow reports whether ip may make another request now. A nil limiter allows everything.
func (l *IPRateLimiter) Allow(ip string) bool {
	if l == nil {
		return true
	}
	l.mu.Lock()
	now := l.now()
	l.sweep(now)
	bucket, ok := l.clients[ip]
	if !ok {
		bucket = &ipBucket{limiter: rate.NewLimiter(l.limit, l.burst)}
		l.clients[ip] = bucket
	}
	bucket.lastSeen = now
	l.mu.Unlock()
	return bucket.limiter.AllowN(now, 1)
}

// Len reports how many addresses currently hold a bucket.
func (l *IPRateLimiter) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.clients)
}

// sweep runs at most once per idle period. Callers hold l.mu.
func (l *IPRateLimiter) sweep(now time.Time) {
	if now.Sub(l.lastSweep) < l.idle {
		return
	}
	l.lastSweep = now
	for ip, bucket := range l.clients {
		if now.Sub(bucket.lastSeen) >= l.idle {
			delete(l.clients, ip)
		}
	}
}

// allowRequest answers 429 and returns false once the caller's bucket is empty.
func allowRequest(c *gin.Context, limiter *IPRateLimiter) bool {
	if limiter.Allow(c.ClientIP()) {
		return true
	}
	c.Header("Retry-After", "60")
	respondProblem(c, apierrors.ErrTooManyRequests.WithDetail("too many attempts, try again later"))
	return false
}
