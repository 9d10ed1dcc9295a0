package user

import (
	"net/http"
	"strings"

	"github.com/danielgtaylor/huma/v2"
)

func (h *Handler) signupOp() huma.Operation {
	return huma.Operation{
		OperationID: "auth-createuser",
		Method:      http.MethodPost,
		Path:        "/api/auth/createuser",
		Summary:     "Регистрация пользователя",
		Tags:        []string{"auth"},
		Middlewares: h.middleware,
	}
}

func (h *Handler) loginOp() huma.Operation {
	return huma.Operation{
		OperationID: "auth-login",
		Method:      http.MethodPost,
		Path:        "/api/auth/login",
		Summary:     "Авторизация пользователя",
		Tags:        []string{"auth"},
		Middlewares: h.middleware,
	}
}

func (h *Handler) currentUserOps() []huma.Operation {
	ops := make([]huma.Operation, 0, 2)
	for _, method := range []string{http.MethodGet, http.MethodPost} {
		ops = append(ops, huma.Operation{
			OperationID: "auth-getuser-" + strings.ToLower(method),
			Method:      method,
			Path:        "/api/auth/getuser",
			Summary:     "Текущий пользователь",
			Tags:        []string{"auth"},
			Security:    []map[string][]string{{"auth": {}}, {"bearer": {}}},
			Middlewares: h.authMiddleware,
		})
	}
	return ops
}
