package apierr

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/danielgtaylor/huma/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/slog"

	"nodex/internal/domain/record"
	"nodex/internal/domain/user"
	"nodex/internal/domain/validation"
)

func TestFrom(t *testing.T) {
	var verrs validation.Errors
	verrs.Add("name", "must be at least 5 characters")
	verrs.Add("email", "must be a valid email")

	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantDetail string
	}{
		{name: "validation", err: verrs.Err(), wantStatus: http.StatusBadRequest, wantDetail: "validation failed"},
		{name: "wrapped validation", err: fmt.Errorf("create: %w", verrs.Err()), wantStatus: http.StatusBadRequest, wantDetail: "validation failed"},
		{name: "duplicate email", err: user.ErrDuplicateEmail, wantStatus: http.StatusBadRequest, wantDetail: "This email is already in use."},
		{name: "bad credentials", err: user.ErrInvalidCredentials, wantStatus: http.StatusBadRequest},
		{name: "conflict", err: fmt.Errorf("insert: %w", record.ErrConflict), wantStatus: http.StatusBadRequest},
		{name: "forbidden", err: record.ErrForbidden, wantStatus: http.StatusForbidden, wantDetail: "Access denied"},
		{name: "record not found", err: record.ErrNotFound, wantStatus: http.StatusNotFound},
		{name: "user not found", err: user.ErrNotFound, wantStatus: http.StatusNotFound},
		{name: "unexpected", err: errors.New("disk on fire"), wantStatus: http.StatusInternalServerError, wantDetail: "internal error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			log := slog.New(slog.NewTextHandler(&buf, nil))

			got := From(log, tt.err)

			var se huma.StatusError
			require.True(t, errors.As(got, &se))
			assert.Equal(t, tt.wantStatus, se.GetStatus())
			if tt.wantDetail != "" {
				model, ok := got.(*huma.ErrorModel)
				require.True(t, ok)
				assert.Equal(t, tt.wantDetail, model.Detail)
			}
			if tt.wantStatus == http.StatusInternalServerError {
				assert.Contains(t, buf.String(), "disk on fire")
				assert.NotContains(t, got.Error(), "disk on fire")
			} else {
				assert.Empty(t, buf.String())
			}
		})
	}
}

func TestFrom_ValidationDetails(t *testing.T) {
	var verrs validation.Errors
	verrs.Add("name", "must be at least 5 characters")
	verrs.Add("password", "must be at least 6 characters")

	got := From(slog.Default(), verrs.Err())

	model, ok := got.(*huma.ErrorModel)
	require.True(t, ok)
	require.Len(t, model.Errors, 2)
	assert.Equal(t, "body.name", model.Errors[0].Location)
	assert.Equal(t, "must be at least 6 characters", model.Errors[1].Message)
}
