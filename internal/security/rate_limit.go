package security

import (
	"net"
	"net/http"
	"sync"

	"document-versioning-server/internal/metrics"
	"document-versioning-server/internal/util"

	"golang.org/x/time/rate"
)

// RateLimiter : token bucket на каждый IP, для публичных ссылок
type RateLimiter struct {
	rps     float64
	burst   int
	buckets sync.Map // map[string]*rate.Limiter
}

func NewRateLimiter(rps float64, burst int) *RateLimiter {
	return &RateLimiter{rps: rps, burst: burst}
}

func (l *RateLimiter) limiter(key string) *rate.Limiter {
	if v, ok := l.buckets.Load(key); ok {
		return v.(*rate.Limiter)
	}
	v, _ := l.buckets.LoadOrStore(key, rate.NewLimiter(rate.Limit(l.rps), l.burst))
	return v.(*rate.Limiter)
}

// Middleware : ключ берётся из RemoteAddr, перед ним должен стоять middleware.RealIP
func (l *RateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ip, _, err := net.SplitHostPort(r.RemoteAddr)
		if err != nil {
			ip = r.RemoteAddr
		}
		if ip == "" {
			ip = "unknown"
		}

		if !l.limiter("ip:" + ip).Allow() {
			metrics.RateLimitRejected.WithLabelValues("public_share").Inc()
			w.Header().Set("Retry-After", "1")
			util.HandleError(w, "слишком много запросов", http.StatusTooManyRequests)
			return
		}
		next.ServeHTTP(w, r)
	})
}
