package user

import (
	"context"

	"nodex/internal/app/server/api/http/apierr"
	"nodex/internal/app/server/api/http/middleware/auth"
	"nodex/internal/domain/user"

	"github.com/danielgtaylor/huma/v2"
	"golang.org/x/exp/slog"
)

type Handler struct {
	service        user.Servicer
	log            *slog.Logger
	middleware     huma.Middlewares
	authMiddleware huma.Middlewares
}

// NewHandler: middleware - для публичных операций, authMiddleware - для операций под шлюзом.
func NewHandler(service user.Servicer, log *slog.Logger, middleware, authMiddleware huma.Middlewares) *Handler {
	return &Handler{
		service:        service,
		log:            log.With("component", "user_handler"),
		middleware:     middleware,
		authMiddleware: authMiddleware,
	}
}

func (h *Handler) SetupRoutes(api huma.API) {
	huma.Register(api, h.signupOp(), h.signup)
	huma.Register(api, h.loginOp(), h.login)
	for _, op := range h.currentUserOps() {
		huma.Register(api, op, h.currentUser)
	}
}

func (h *Handler) signup(ctx context.Context, input *signupInput) (*tokenOutput, error) {
	token, err := h.service.Signup(ctx, user.SignupRequest{
		Name:     input.Body.Name,
		Email:    input.Body.Email,
		Contact:  input.Body.Contact,
		Password: input.Body.Password,
	})
	if err != nil {
		return nil, apierr.From(h.log, err)
	}

	return &tokenOutput{Body: TokenResponse{AuthToken: token}}, nil
}

func (h *Handler) login(ctx context.Context, input *loginInput) (*tokenOutput, error) {
	token, err := h.service.Login(ctx, user.LoginRequest{
		Email:    input.Body.Email,
		Password: input.Body.Password,
	})
	if err != nil {
		return nil, apierr.From(h.log, err)
	}

	return &tokenOutput{Body: TokenResponse{AuthToken: token}}, nil
}

func (h *Handler) currentUser(ctx context.Context, _ *struct{}) (*currentUserOutput, error) {
	userID, ok := auth.GetUserID(ctx)
	if !ok {
		return nil, huma.Error401Unauthorized("Unauthorized")
	}

	u, err := h.service.CurrentUser(ctx, userID)
	if err != nil {
		return nil, apierr.From(h.log, err)
	}

	return &currentUserOutput{Body: CurrentUserResponse{User: u}}, nil
}
