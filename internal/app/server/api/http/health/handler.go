package health

import (
	"context"
	"time"

	"nodex/internal/utils/logger"

	"github.com/danielgtaylor/huma/v2"
	"golang.org/x/exp/slog"
)

const pingTimeout = 2 * time.Second

// Checker проверяет доступность базы. Его реализует storage.Storage.
type Checker interface {
	Ping(ctx context.Context) error
}

type Handler struct {
	db         Checker
	log        *slog.Logger
	middleware huma.Middlewares
}

// NewHandler: db может быть nil, тогда отвечаем только о самом процессе.
func NewHandler(db Checker, log *slog.Logger, middleware huma.Middlewares) *Handler {
	return &Handler{
		db:         db,
		log:        log.With("component", "health"),
		middleware: middleware,
	}
}

func (h *Handler) SetupRoutes(api huma.API) {
	huma.Register(api, h.healthCheckOp(), h.healthCheck)
}

func (h *Handler) healthCheck(ctx context.Context, _ *Input) (*Output, error) {
	if h.db == nil {
		return &Output{Body: Response{Status: "OK"}}, nil
	}

	ctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	if err := h.db.Ping(ctx); err != nil {
		h.log.Error("database ping failed", logger.Err(err))
		return nil, huma.Error503ServiceUnavailable("database is unavailable")
	}

	return &Output{Body: Response{Status: "OK", Database: "up"}}, nil
}
