package middleware

import (
	"net"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"

	"stayhub/shared"
	"stayhub/shared/cache"
	"stayhub/shared/constant"
	"stayhub/transport/http/response"
)

const (
	cacheKeyRateLimit = "limiter"
	localLimiterTTL   = 10 * time.Minute
)

// RateLimit counts requests per client in a Redis fixed window. While Redis is unreachable
// each instance falls back to an in-process token bucket with the same budget.
func (a *appMiddleware) RateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !a.config.App.RateLimiter.Enable {
			next.ServeHTTP(w, r)

			return
		}

		maxReqs := a.config.App.RateLimiter.MaxRequests
		windowSecs := a.config.App.RateLimiter.WindowSeconds
		client := clientIP(r)

		count, err := a.hit(r, shared.BuildCacheKey(cacheKeyRateLimit, client), windowSecs)
		if err != nil {
			log.Warn().Err(err).Msg("rate limiter cache unavailable, using local limiter")

			if !a.limiter.allow(client) {
				response.WithRequestLimitExceeded(w, windowSecs)

				return
			}

			next.ServeHTTP(w, r)

			return
		}

		w.Header().Set(constant.RequestHeaderRateLimit, strconv.Itoa(maxReqs))
		w.Header().Set(constant.RequestHeaderRateLimitRemaining, strconv.Itoa(max(0, maxReqs-count)))
		w.Header().Set(constant.RequestHeaderRateLimitWindow, strconv.Itoa(windowSecs))

		if count > maxReqs {
			response.WithRequestLimitExceeded(w, windowSecs)

			return
		}

		next.ServeHTTP(w, r)
	})
}

func (a *appMiddleware) hit(r *http.Request, key string, windowSecs int) (int, error) {
	var count int

	err := a.cache.Get(r.Context(), key, &count)

	switch {
	case cache.IsMiss(err):
		count = 1
	case err != nil:
		return 0, err
	default:
		count++
	}

	if err = a.cache.Save(r.Context(), key, count, windowSecs); err != nil {
		return 0, err
	}

	return count, nil
}

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

type localLimiter struct {
	mu       sync.Mutex
	visitors map[string]*visitor
	limit    rate.Limit
	burst    int
}

func newLocalLimiter(maxRequests, windowSecs int) *localLimiter {
	if maxRequests <= 0 || windowSecs <= 0 {
		return &localLimiter{visitors: map[string]*visitor{}, limit: rate.Inf}
	}

	return &localLimiter{
		visitors: map[string]*visitor{},
		limit:    rate.Limit(float64(maxRequests) / float64(windowSecs)),
		burst:    maxRequests,
	}
}

func (l *localLimiter) allow(client string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := time.Now()

	for key, v := range l.visitors {
		if now.Sub(v.lastSeen) > localLimiterTTL {
			delete(l.visitors, key)
		}
	}

	v, ok := l.visitors[client]
	if !ok {
		v = &visitor{limiter: rate.NewLimiter(l.limit, l.burst)}
		l.visitors[client] = v
	}

	v.lastSeen = now

	return v.limiter.Allow()
}

func clientIP(r *http.Request) string {
	if xff := r.Header.Get(constant.RequestHeaderForwardedFor); xff != "" {
		first, _, _ := strings.Cut(xff, ",")

		return strings.TrimSpace(first)
	}

	if xri := r.Header.Get(constant.RequestHeaderRealIP); xri != "" {
		return strings.TrimSpace(xri)
	}

	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return host
	}

	return r.RemoteAddr
}
