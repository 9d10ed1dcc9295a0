package auth

import (
	"context"
	"io"
	"net/http"
	"testing"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/slog"

	"nodex/internal/domain/token"
)

type whoamiOutput struct {
	Body struct {
		UserID string `json:"userId"`
	}
}

func setup(t *testing.T, tokens token.Servicer) humatest.TestAPI {
	_, api := humatest.New(t)
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	gate := New(api, tokens, "auth", log)

	huma.Register(api, huma.Operation{
		OperationID: "whoami",
		Method:      http.MethodGet,
		Path:        "/whoami",
		Middlewares: huma.Middlewares{gate.Middleware()},
	}, func(ctx context.Context, _ *struct{}) (*whoamiOutput, error) {
		id, ok := GetUserID(ctx)
		if !ok {
			t.Error("handler reached without a user id")
		}
		out := &whoamiOutput{}
		out.Body.UserID = id
		return out, nil
	})
	return api
}

func TestAuth_Middleware(t *testing.T) {
	tokens := token.NewService("secret", time.Hour)
	valid, err := tokens.Issue("user-1")
	require.NoError(t, err)
	foreign, err := token.NewService("other", time.Hour).Issue("user-1")
	require.NoError(t, err)

	tests := []struct {
		name       string
		headers    []any
		wantStatus int
		wantUser   string
	}{
		{name: "custom header", headers: []any{"auth: " + valid}, wantStatus: http.StatusOK, wantUser: "user-1"},
		{name: "bearer fallback", headers: []any{"Authorization: Bearer " + valid}, wantStatus: http.StatusOK, wantUser: "user-1"},
		{name: "missing token halts", wantStatus: http.StatusUnauthorized},
		{name: "garbage token", headers: []any{"auth: not-a-jwt"}, wantStatus: http.StatusUnauthorized},
		{name: "wrong secret", headers: []any{"auth: " + foreign}, wantStatus: http.StatusUnauthorized},
		{name: "basic scheme ignored", headers: []any{"Authorization: Basic " + valid}, wantStatus: http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			api := setup(t, tokens)

			resp := api.Get("/whoami", tt.headers...)

			assert.Equal(t, tt.wantStatus, resp.Code)
			if tt.wantUser != "" {
				assert.Contains(t, resp.Body.String(), `"userId":"`+tt.wantUser+`"`)
			} else {
				assert.Contains(t, resp.Body.String(), unauthenticated)
			}
		})
	}
}

func TestGetUserID(t *testing.T) {
	_, ok := GetUserID(context.Background())
	assert.False(t, ok)

	_, ok = GetUserID(WithUserID(context.Background(), ""))
	assert.False(t, ok)

	id, ok := GetUserID(WithUserID(context.Background(), "abc"))
	assert.True(t, ok)
	assert.Equal(t, "abc", id)
}
