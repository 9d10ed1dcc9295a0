package user

import "nodex/internal/domain/user"

// Поля необязательны на уровне схемы: полноту проверяет доменный валидатор, чтобы вернуть все нарушения сразу.
type signupInput struct {
	Body struct {
		Name     string `json:"name,omitempty" example:"Jane Doe"`
		Email    string `json:"email,omitempty" example:"jane@example.com"`
		Contact  string `json:"contact,omitempty" example:"+1 555 010 0200"`
		Password string `json:"password,omitempty" example:"s3cret!"`
	}
}

type loginInput struct {
	Body struct {
		Email    string `json:"email,omitempty" example:"jane@example.com"`
		Password string `json:"password,omitempty"`
	}
}

type tokenOutput struct {
	Body TokenResponse
}

type TokenResponse struct {
	AuthToken string `json:"authtoken" doc:"Токен для заголовка auth"`
}

type currentUserOutput struct {
	Body CurrentUserResponse
}

type CurrentUserResponse struct {
	User user.User `json:"user"`
}
