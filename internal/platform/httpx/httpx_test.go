package httpx

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"cyber-kittens/internal/platform/apperr"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) ErrorResponse {
	t.Helper()
	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp
}

func TestWriteError_KindMapping(t *testing.T) {
	cases := []struct {
		err    error
		status int
		name   string
	}{
		{apperr.New(apperr.KindNotFound, "kitten not found"), http.StatusNotFound, "NotFoundError"},
		{apperr.New(apperr.KindForbidden, "not your kitten"), http.StatusForbidden, "ForbiddenError"},
		{apperr.New(apperr.KindUnauthenticated, "missing token"), http.StatusUnauthorized, "UnauthenticatedError"},
		{apperr.New(apperr.KindConflict, "username taken"), http.StatusConflict, "ConflictError"},
		{apperr.New(apperr.KindPayloadTooLarge, "too big"), http.StatusRequestEntityTooLarge, "PayloadTooLargeError"},
		{apperr.New(apperr.KindPreconditionFailed, "no claims"), http.StatusInternalServerError, "PreconditionFailedError"},
	}

	for _, tc := range cases {
		rec := httptest.NewRecorder()
		WriteError(rec, httptest.NewRequest(http.MethodGet, "/", nil), tc.err)

		assert.Equal(t, tc.status, rec.Code)
		resp := decodeError(t, rec)
		assert.Equal(t, tc.name, resp.Name)
		assert.Equal(t, resp.Message, resp.Error)
	}
}

func TestWriteError_UnknownErrorIs500WithoutLeaking(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteError(rec, httptest.NewRequest(http.MethodGet, "/", nil), errors.New("pq: password authentication failed"))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	resp := decodeError(t, rec)
	assert.Equal(t, "InternalError", resp.Name)
	assert.Equal(t, "internal error", resp.Message)
}

func TestWriteError_ValidationFields(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteError(rec, httptest.NewRequest(http.MethodPost, "/", nil),
		apperr.Invalid("invalid fields: age", map[string]string{"age": "age is required"}))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	resp := decodeError(t, rec)
	assert.Equal(t, "age is required", resp.Fields["age"])
}

func TestDecodeJSON(t *testing.T) {
	type body struct {
		Name string `json:"name"`
	}

	var b body
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"Tom"}`))
	require.NoError(t, DecodeJSON(req, &b))
	assert.Equal(t, "Tom", b.Name)

	for _, raw := range []string{"", "{", `{"name":"a","extra":1}`, `{"name":"a"}{"name":"b"}`} {
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(raw))
		err := DecodeJSON(req, &b)
		assert.Equal(t, apperr.KindBadRequest, apperr.KindOf(err), "body %q", raw)
	}
}

func TestDecodeJSON_BodyTooLarge(t *testing.T) {
	type body struct {
		Name string `json:"name"`
	}

	raw := `{"name":"` + strings.Repeat("a", MaxBodyBytes) + `"}`
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(raw))

	var b body
	err := DecodeJSON(req, &b)
	assert.Equal(t, apperr.KindPayloadTooLarge, apperr.KindOf(err))

	rec := httptest.NewRecorder()
	WriteError(rec, req, err)
	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
	assert.Contains(t, decodeError(t, rec).Message, "exceeds")
}
