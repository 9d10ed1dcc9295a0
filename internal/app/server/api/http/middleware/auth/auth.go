package auth

import (
	"context"
	"net/http"
	"strings"

	"nodex/internal/domain/token"

	"github.com/danielgtaylor/huma/v2"
	"golang.org/x/exp/slog"
)

const unauthenticated = "Please authenticate using a valid token"

// Auth - шлюз аутентификации. Без валидного токена цепочка обработчиков прерывается.
type Auth struct {
	api    huma.API
	tokens token.Servicer
	header string
	log    *slog.Logger
}

// New создает шлюз. header - имя заголовка с токеном; Authorization: Bearer принимается всегда.
func New(api huma.API, tokens token.Servicer, header string, log *slog.Logger) *Auth {
	return &Auth{
		api:    api,
		tokens: tokens,
		header: header,
		log:    log.With("component", "auth_middleware"),
	}
}

type contextKey string

const UserIDKey contextKey = "userID"

// Middleware возвращает middleware для Huma с сигнатурой func(ctx Context, next func(Context))
func (a *Auth) Middleware() func(huma.Context, func(huma.Context)) {
	return func(ctx huma.Context, next func(huma.Context)) {
		raw := a.extract(ctx)
		if raw == "" {
			a.log.Debug("missing token", "path", ctx.URL().Path)
			a.reject(ctx)
			return
		}

		userID, err := a.tokens.Verify(raw)
		if err != nil {
			a.log.Debug("token rejected", "path", ctx.URL().Path, "error", err)
			a.reject(ctx)
			return
		}

		next(huma.WithContext(ctx, WithUserID(ctx.Context(), userID)))
	}
}

func (a *Auth) extract(ctx huma.Context) string {
	if a.header != "" {
		if v := strings.TrimSpace(ctx.Header(a.header)); v != "" {
			return v
		}
	}
	v := ctx.Header("Authorization")
	if len(v) > 7 && strings.EqualFold(v[:7], "Bearer ") {
		return strings.TrimSpace(v[7:])
	}
	return ""
}

func (a *Auth) reject(ctx huma.Context) {
	if err := huma.WriteErr(a.api, ctx, http.StatusUnauthorized, unauthenticated); err != nil {
		a.log.Error("write unauthorized response", "error", err)
	}
}

func WithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, UserIDKey, userID)
}

func GetUserID(ctx context.Context) (string, bool) {
	userID, ok := ctx.Value(UserIDKey).(string)
	return userID, ok && userID != ""
}
