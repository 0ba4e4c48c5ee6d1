package errutil

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want Kind
	}{
		{"invalid argument", InvalidArgument("bad"), KindInvalidArgument},
		{"conflict", Conflict("dup"), KindConflict},
		{"unauthorized", Unauthorized("nope"), KindUnauthorized},
		{"unauthenticated", Unauthenticated("token"), KindUnauthenticated},
		{"forbidden", Forbidden("admin only"), KindForbidden},
		{"not found", NotFound("missing"), KindNotFound},
		{"internal", Internal(errors.New("db down"), "insert"), KindInternal},
		{"plain error", errors.New("boom"), KindInternal},
		{"wrapped kind", fmt.Errorf("outer: %w", NotFound("missing")), KindNotFound},
		{"nil", nil, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, KindOf(tt.err))
		})
	}
}

func TestHTTPStatus(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, HTTPStatus(KindInvalidArgument))
	assert.Equal(t, http.StatusBadRequest, HTTPStatus(KindConflict))
	assert.Equal(t, http.StatusBadRequest, HTTPStatus(KindUnauthorized))
	assert.Equal(t, http.StatusBadRequest, HTTPStatus(KindNotFound))
	assert.Equal(t, http.StatusUnauthorized, HTTPStatus(KindUnauthenticated))
	assert.Equal(t, http.StatusForbidden, HTTPStatus(KindForbidden))
	assert.Equal(t, http.StatusInternalServerError, HTTPStatus(KindInternal))
}

func TestPublicMessage(t *testing.T) {
	assert.Equal(t, "User already exists", PublicMessage(Conflict("User already exists")))
	assert.Equal(t, "Internal server error", PublicMessage(Internal(errors.New("dial tcp: refused"), "ping")))
	assert.Equal(t, "Internal server error", PublicMessage(errors.New("raw")))
}

func TestLogError_IncludesCodeAndContext(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))

	LogError(logger, "checkout failed", Internal(errors.New("db down"), "close entry"))

	out := buf.String()
	assert.Contains(t, out, `"level":"ERROR"`)
	assert.Contains(t, out, "INTERNAL")
	assert.Contains(t, out, "close entry")
}

func TestLogError_ClientErrorsAreWarnings(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))

	LogError(logger, "login failed", Unauthorized("Invalid password"))

	assert.Contains(t, buf.String(), `"level":"WARN"`)
}
