package middleware

import (
	"hotelbook/shared"
	"hotelbook/shared/constant"
	"hotelbook/transport/http/response"
	"net"
	"net/http"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"
)

const (
	cacheKeyRateLimit = "limiter"
	unknownAgent      = "unknown"
)

// RateLimit counts requests per client ip and user agent in a fixed Redis window. When Redis is
// unreachable requests pass through unlimited.
func (a *appMiddleware) RateLimit() func(http.Handler) http.Handler {
	limit := a.config.App.RateLimiter

	return func(next http.Handler) http.Handler {
		if !limit.Enable {
			return next
		}

		maxRequests := int64(limit.MaxRequests)
		window := strconv.Itoa(limit.WindowSeconds)

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := shared.BuildCacheKey(cacheKeyRateLimit, a.getClientIP(r), userAgent(r))

			count, err := a.cache.Increment(r.Context(), key, limit.WindowSeconds)
			if err != nil {
				log.Warn().Err(err).Str("key", key).Msg("rate limiter unavailable")
				next.ServeHTTP(w, r)

				return
			}

			header := w.Header()
			header.Set(constant.RequestHeaderRateLimit, strconv.FormatInt(maxRequests, 10))
			header.Set(constant.RequestHeaderRateLimitRemaining, strconv.FormatInt(max(0, maxRequests-count), 10))
			header.Set(constant.RequestHeaderRateLimitWindow, window)

			if count > maxRequests {
				header.Set(constant.RequestHeaderRetryAfter, window)
				response.WithRequestLimitExceeded(w)

				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func userAgent(r *http.Request) string {
	if ua := r.Header.Get(constant.RequestHeaderUserAgent); ua != "" {
		return ua
	}

	return unknownAgent
}

// getClientIP prefers the first X-Forwarded-For hop, then X-Real-IP, then the peer address
// without its port.
func (a *appMiddleware) getClientIP(r *http.Request) string {
	if first, _, _ := strings.Cut(r.Header.Get(constant.RequestHeaderForwardedFor), ","); strings.TrimSpace(first) != "" {
		return strings.TrimSpace(first)
	}

	if realIP := strings.TrimSpace(r.Header.Get(constant.RequestHeaderRealIP)); realIP != "" {
		return realIP
	}

	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return host
	}

	return r.RemoteAddr
}
