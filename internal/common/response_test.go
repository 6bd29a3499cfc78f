package common

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestWriteAppErrorUsesAttachedStatus(t *testing.T) {
	rr := httptest.NewRecorder()
	WriteAppError(rr, NotFound("cart not found"))

	require.Equal(t, http.StatusNotFound, rr.Code)
	require.JSONEq(t, `{"error":{"code":"NOT_FOUND","message":"cart not found"}}`, rr.Body.String())
}

func TestWriteAppErrorWrapped(t *testing.T) {
	rr := httptest.NewRecorder()
	wrapped := fmt.Errorf("submit quote: %w", BadRequest("invalid quote contact", nil))
	WriteAppError(rr, wrapped)
	require.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestWriteAppErrorDefaultsToInternal(t *testing.T) {
	rr := httptest.NewRecorder()
	WriteAppError(rr, errors.New("boom"))

	require.Equal(t, http.StatusInternalServerError, rr.Code)
	require.Contains(t, rr.Body.String(), "INTERNAL")
}

func TestJSONDataEnvelope(t *testing.T) {
	rr := httptest.NewRecorder()
	JSONData(rr, http.StatusOK, map[string]int{"count": 3})

	require.Equal(t, "application/json", rr.Header().Get("Content-Type"))
	require.JSONEq(t, `{"data":{"count":3}}`, rr.Body.String())
}

func TestAsAppError(t *testing.T) {
	appErr, ok := AsAppError(NotFound("x"))
	require.True(t, ok)
	require.Equal(t, "NOT_FOUND", appErr.Code)

	_, ok = AsAppError(errors.New("plain"))
	require.False(t, ok)
	require.False(t, IsAppError(errors.New("plain")))
}
