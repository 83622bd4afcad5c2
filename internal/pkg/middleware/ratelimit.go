package middleware

import (
	"net"
	"net/http"
	"strconv"
	"time"

	"marmitaria/internal/pkg/cache"
	"marmitaria/internal/pkg/logger"
)

// RateLimiter limita requisições por IP numa janela fixa guardada no cache.
// Se o cache falhar, a requisição segue (o painel não deve cair por causa do Redis).
func RateLimiter(client cache.Client, limit int, duration time.Duration, log logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if limit <= 0 {
				next.ServeHTTP(w, r)
				return
			}

			ip, _, err := net.SplitHostPort(r.RemoteAddr)
			if err != nil {
				ip = r.RemoteAddr
			}
			key := "rate-limit:" + ip

			count, err := client.Incr(r.Context(), key, duration)
			if err != nil {
				log.Warn("Rate limiter indisponível, liberando requisição.", map[string]interface{}{"ip": ip, "error": err.Error()})
				next.ServeHTTP(w, r)
				return
			}

			remaining := limit - int(count)
			if remaining < 0 {
				remaining = 0
			}
			w.Header().Set("X-RateLimit-Limit", strconv.Itoa(limit))
			w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(remaining))

			if int(count) > limit {
				log.Debug("Limite de requisições excedido.", map[string]interface{}{"ip": ip, "count": count})
				w.Header().Set("Retry-After", strconv.Itoa(int(duration.Seconds())))
				http.Error(w, "Muitas requisições. Tente novamente em instantes.", http.StatusTooManyRequests)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
