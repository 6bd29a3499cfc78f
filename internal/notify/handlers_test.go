package notify

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"
)

func TestNotificationEndpoints(t *testing.T) {
	center := NewCenter(DefaultTTL)
	h := &Handler{Center: center}
	r := chi.NewRouter()
	h.Routes(r)

	// No notification yet: the data payload is null.
	req := httptest.NewRequest(http.MethodGet, "/sessions/s1/notification", nil)
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	require.Equal(t, http.StatusOK, rr.Code)
	require.JSONEq(t, `{"data":null}`, rr.Body.String())

	center.Show("s1", "toast", &Action{Label: "View Cart", Screen: "quotes"})

	rr = httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	require.Equal(t, http.StatusOK, rr.Code)
	var body struct {
		Data *Notification `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	require.NotNil(t, body.Data)
	require.Equal(t, "toast", body.Data.Message)

	dismiss := httptest.NewRequest(http.MethodDelete, "/sessions/s1/notification", nil)
	rr = httptest.NewRecorder()
	r.ServeHTTP(rr, dismiss)
	require.Equal(t, http.StatusOK, rr.Code)

	rr = httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	require.JSONEq(t, `{"data":null}`, rr.Body.String())
}
