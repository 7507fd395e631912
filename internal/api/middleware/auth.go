package middleware

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/m04kA/SMC-ClinicService/internal/api/handlers"
	"github.com/m04kA/SMC-ClinicService/internal/domain"
)

const (
	msgMissingToken = "требуется авторизация"
	msgInvalidToken = "недействительный токен"
)

// ErrInvalidClaims возвращается, когда токен не описывает сотрудника
var ErrInvalidClaims = errors.New("middleware: invalid staff claims")

type actorKey struct{}

// StaffClaims полезная нагрузка токена сотрудника
// sub - идентификатор сотрудника, resource_id - его календарь (для врачей и грумеров)
type StaffClaims struct {
	Role       string `json:"role"`
	ResourceID *int64 `json:"resource_id,omitempty"`
	jwt.RegisteredClaims
}

// Auth проверяет Bearer JWT (HMAC) и кладет domain.Actor в контекст
type Auth struct {
	secret []byte
	issuer string
	leeway time.Duration
	logger Logger
}

// NewAuth создает middleware аутентификации
func NewAuth(secret, issuer string, leeway time.Duration, logger Logger) *Auth {
	return &Auth{
		secret: []byte(secret),
		issuer: issuer,
		leeway: leeway,
		logger: logger,
	}
}

// Middleware отклоняет запросы без валидного токена
func (a *Auth) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if header == "" {
			handlers.RespondUnauthorized(w, msgMissingToken)
			return
		}
		parts := strings.Fields(header)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			handlers.RespondUnauthorized(w, msgInvalidToken)
			return
		}

		actor, err := a.Parse(parts[1])
		if err != nil {
			a.logger.Warn("%s %s - rejected token: %v", r.Method, r.URL.Path, err)
			handlers.RespondUnauthorized(w, msgInvalidToken)
			return
		}

		next.ServeHTTP(w, r.WithContext(WithActor(r.Context(), actor)))
	})
}

// Parse проверяет подпись и срок действия токена и возвращает сотрудника
func (a *Auth) Parse(tokenString string) (domain.Actor, error) {
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg(), jwt.SigningMethodHS384.Alg(), jwt.SigningMethodHS512.Alg()}),
		jwt.WithLeeway(a.leeway),
		jwt.WithExpirationRequired(),
	}
	if a.issuer != "" {
		opts = append(opts, jwt.WithIssuer(a.issuer))
	}

	var claims StaffClaims
	if _, err := jwt.ParseWithClaims(tokenString, &claims, func(*jwt.Token) (interface{}, error) {
		return a.secret, nil
	}, opts...); err != nil {
		return domain.Actor{}, err
	}

	actor := domain.Actor{
		StaffID:    claims.Subject,
		Role:       domain.Role(claims.Role),
		ResourceID: claims.ResourceID,
	}
	if actor.StaffID == "" {
		return domain.Actor{}, fmt.Errorf("%w: subject is required", ErrInvalidClaims)
	}
	if !actor.Role.IsValid() {
		return domain.Actor{}, fmt.Errorf("%w: unknown role %q", ErrInvalidClaims, claims.Role)
	}
	return actor, nil
}

// WithActor кладет сотрудника в контекст
func WithActor(ctx context.Context, actor domain.Actor) context.Context {
	return context.WithValue(ctx, actorKey{}, actor)
}

// GetActor достает сотрудника из контекста
func GetActor(ctx context.Context) (domain.Actor, bool) {
	actor, ok := ctx.Value(actorKey{}).(domain.Actor)
	return actor, ok
}
