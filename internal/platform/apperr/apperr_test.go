package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKind_Status(t *testing.T) {
	cases := map[Kind]int{
		KindUnauthenticated:    http.StatusUnauthorized,
		KindBadRequest:         http.StatusBadRequest,
		KindForbidden:          http.StatusForbidden,
		KindNotFound:           http.StatusNotFound,
		KindConflict:           http.StatusConflict,
		KindPayloadTooLarge:    http.StatusRequestEntityTooLarge,
		KindPreconditionFailed: http.StatusInternalServerError,
		KindInternal:           http.StatusInternalServerError,
	}
	for k, want := range cases {
		assert.Equal(t, want, k.Status(), "kind %s", k)
	}
}

func TestError_IsMatchesByKind(t *testing.T) {
	err := New(KindNotFound, "kitten not found")
	wrapped := fmt.Errorf("get kitten: %w", err)

	assert.True(t, errors.Is(wrapped, ErrNotFound))
	assert.False(t, errors.Is(wrapped, ErrForbidden))
	assert.Equal(t, KindNotFound, KindOf(wrapped))
}

func TestKindOf_PlainErrorIsInternal(t *testing.T) {
	assert.Equal(t, KindInternal, KindOf(errors.New("boom")))
}

func TestWrap_KeepsCause(t *testing.T) {
	cause := errors.New("db down")
	err := Wrap(KindInternal, "create kitten", cause)

	require.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "db down")
}

func TestInvalid_CarriesFields(t *testing.T) {
	err := Invalid("validation failed", map[string]string{"age": "age is required"})

	ae, ok := As(err)
	require.True(t, ok)
	assert.Equal(t, KindBadRequest, ae.Kind)
	assert.Equal(t, "age is required", ae.Fields["age"])
	assert.Equal(t, "BadRequestError", ae.Kind.Name())
}
