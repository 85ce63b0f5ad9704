package middleware

import (
	"context"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/mux"
	"golang.org/x/time/rate"

	"github.com/m04kA/SMC-BookingWizard/internal/api/handlers"
)

const msgRateLimited = "слишком много запросов, попробуйте позже"

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
}

// RateLimiterConfig параметры ограничителя
type RateLimiterConfig struct {
	RequestsPerSecond float64
	Burst             int
	// TrustForwardedFor - клиентский IP берется из X-Forwarded-For.
	// Включать только за доверенным прокси, иначе заголовок подделывается клиентом.
	TrustForwardedFor bool
	// IdleTTL - через сколько простоя лимитер IP удаляется, 0 - не удалять
	IdleTTL time.Duration
}

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter ограничивает частоту запросов с одного IP
type RateLimiter struct {
	cfg RateLimiterConfig
	log Logger
	now func() time.Time

	mu       sync.Mutex
	visitors map[string]*visitor
}

// NewRateLimiter создает ограничитель: RequestsPerSecond запросов в секунду с запасом Burst
func NewRateLimiter(cfg RateLimiterConfig, log Logger) *RateLimiter {
	return &RateLimiter{
		cfg:      cfg,
		log:      log,
		now:      time.Now,
		visitors: make(map[string]*visitor),
	}
}

// Middleware отвечает 429, если лимит IP исчерпан
func (l *RateLimiter) Middleware() mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ip := clientIP(r, l.cfg.TrustForwardedFor)
			if !l.limiter(ip).Allow() {
				l.log.Warn("Rate limit exceeded: ip=%s, path=%s", ip, r.URL.Path)
				handlers.RespondError(w, http.StatusTooManyRequests, msgRateLimited)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// Sweep удаляет лимитеры IP, простаивающие дольше IdleTTL
func (l *RateLimiter) Sweep(now time.Time) int {
	if l.cfg.IdleTTL <= 0 {
		return 0
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	removed := 0
	for ip, v := range l.visitors {
		if now.Sub(v.lastSeen) > l.cfg.IdleTTL {
			delete(l.visitors, ip)
			removed++
		}
	}
	return removed
}

// Run периодически вызывает Sweep до отмены контекста
func (l *RateLimiter) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if removed := l.Sweep(l.now()); removed > 0 {
				l.log.Info("Rate limiter: removed %d idle clients", removed)
			}
		}
	}
}

func (l *RateLimiter) limiter(ip string) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()

	v, ok := l.visitors[ip]
	if !ok {
		v = &visitor{limiter: rate.NewLimiter(rate.Limit(l.cfg.RequestsPerSecond), l.cfg.Burst)}
		l.visitors[ip] = v
	}
	v.lastSeen = l.now()
	return v.limiter
}

func (l *RateLimiter) size() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.visitors)
}

func clientIP(r *http.Request, trustForwardedFor bool) string {
	if trustForwardedFor {
		if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
			if ip := strings.TrimSpace(strings.Split(fwd, ",")[0]); ip != "" {
				return ip
			}
		}
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
