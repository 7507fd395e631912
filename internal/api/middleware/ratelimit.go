package middleware

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"net/netip"
	"strconv"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/m04kA/SMC-ClinicService/internal/api/handlers"
)

const (
	msgRateLimited        = "слишком много запросов, попробуйте позже"
	msgRateLimiterFailure = "сервис временно недоступен"
)

// WindowCounter инкрементирует счетчик ключа в текущем окне
type WindowCounter interface {
	Incr(ctx context.Context, key string) (int64, error)
}

var fixedWindowScript = redis.NewScript(`
local current = redis.call("INCR", KEYS[1])
if current == 1 then
  redis.call("PEXPIRE", KEYS[1], ARGV[1])
end
return current
`)

// RedisWindowCounter счетчик фиксированного окна в Redis, общий для всех инстансов
type RedisWindowCounter struct {
	client redis.Scripter
	window time.Duration
}

// NewRedisWindowCounter создает счетчик с окном window
func NewRedisWindowCounter(client redis.Scripter, window time.Duration) *RedisWindowCounter {
	if window <= 0 {
		window = time.Minute
	}
	return &RedisWindowCounter{client: client, window: window}
}

// Incr увеличивает счетчик, первое обращение в окне ставит TTL
func (c *RedisWindowCounter) Incr(ctx context.Context, key string) (int64, error) {
	res, err := fixedWindowScript.Run(ctx, c.client, []string{key}, c.window.Milliseconds()).Result()
	if err != nil {
		return 0, err
	}
	switch v := res.(type) {
	case int64:
		return v, nil
	case string:
		return strconv.ParseInt(v, 10, 64)
	default:
		return 0, fmt.Errorf("unexpected redis script result type %T", res)
	}
}

// RateLimit ограничивает число запросов с одного адреса
type RateLimit struct {
	counter  WindowCounter
	limit    int64
	prefix   string
	failOpen bool
	proxies  TrustedProxies
	logger   Logger
}

// NewRateLimit создает ограничитель; при failOpen сбой Redis пропускает запрос.
// X-Forwarded-For учитывается только от адресов из proxies
func NewRateLimit(counter WindowCounter, limit int, prefix string, failOpen bool, proxies TrustedProxies, logger Logger) *RateLimit {
	if limit <= 0 {
		limit = 60
	}
	if strings.TrimSpace(prefix) == "" {
		prefix = "rl"
	}
	return &RateLimit{counter: counter, limit: int64(limit), prefix: prefix, failOpen: failOpen, proxies: proxies, logger: logger}
}

// Middleware возвращает 429, когда адрес превысил лимит окна
func (rl *RateLimit) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key := rl.prefix + ":" + rl.proxies.ClientKey(r)

		count, err := rl.counter.Incr(r.Context(), key)
		if err != nil {
			rl.logger.Warn("%s %s - rate limiter error: %v", r.Method, r.URL.Path, err)
			if rl.failOpen {
				next.ServeHTTP(w, r)
				return
			}
			handlers.RespondError(w, http.StatusServiceUnavailable, msgRateLimiterFailure)
			return
		}

		if count > rl.limit {
			rl.logger.Warn("%s %s - rate limit exceeded for %s", r.Method, r.URL.Path, key)
			handlers.RespondError(w, http.StatusTooManyRequests, msgRateLimited)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// TrustedProxies адреса балансировщиков, которым разрешено передавать X-Forwarded-For
type TrustedProxies []netip.Prefix

// ParseTrustedProxies разбирает список IP или CIDR
func ParseTrustedProxies(items []string) (TrustedProxies, error) {
	proxies := make(TrustedProxies, 0, len(items))
	for _, item := range items {
		item = strings.TrimSpace(item)
		if strings.Contains(item, "/") {
			prefix, err := netip.ParsePrefix(item)
			if err != nil {
				return nil, fmt.Errorf("trusted proxy %q: %w", item, err)
			}
			proxies = append(proxies, prefix.Masked())
			continue
		}
		addr, err := netip.ParseAddr(item)
		if err != nil {
			return nil, fmt.Errorf("trusted proxy %q: %w", item, err)
		}
		addr = addr.Unmap()
		proxies = append(proxies, netip.PrefixFrom(addr, addr.BitLen()))
	}
	return proxies, nil
}

func (p TrustedProxies) contains(host string) bool {
	addr, err := netip.ParseAddr(host)
	if err != nil {
		return false
	}
	addr = addr.Unmap()
	for _, prefix := range p {
		if prefix.Contains(addr) {
			return true
		}
	}
	return false
}

// ClientKey адрес клиента для счетчика.
// Без доверенного прокси в RemoteAddr заголовок X-Forwarded-For игнорируется.
// Цепочка читается справа налево до первого недоверенного адреса
func (p TrustedProxies) ClientKey(r *http.Request) string {
	remote := r.RemoteAddr
	if host, _, err := net.SplitHostPort(remote); err == nil {
		remote = host
	}
	if !p.contains(remote) {
		return remote
	}

	forwarded := r.Header.Values("X-Forwarded-For")
	hops := strings.Split(strings.Join(forwarded, ","), ",")
	for i := len(hops) - 1; i >= 0; i-- {
		hop := strings.TrimSpace(hops[i])
		if hop == "" {
			continue
		}
		if !p.contains(hop) {
			return hop
		}
	}
	return remote
}
