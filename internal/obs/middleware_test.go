package obs

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

func TestHTTPObsMiddlewareRecordsRequests(t *testing.T) {
	reg := prometheus.NewRegistry()
	metrics := NewHTTPMetrics("vellum", nil, reg)

	r := chi.NewRouter()
	r.Use(RoutePatternMiddleware)
	r.Use(HTTPObs{Metrics: metrics}.Middleware)
	r.Get("/products/{id}", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/products/sp-1001", nil)
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	require.Equal(t, http.StatusOK, rr.Code)

	count := testutil.ToFloat64(metrics.ReqTotal.WithLabelValues(http.MethodGet, "/products/{id}", "200"))
	require.Equal(t, 1.0, count)
	require.Equal(t, 0.0, testutil.ToFloat64(metrics.InFlight))
}

func TestHTTPObsMiddlewareNilMetricsPassthrough(t *testing.T) {
	handler := HTTPObs{}.Middleware(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, http.StatusNoContent, rr.Code)
}

func TestStatusRecorderCapturesWrites(t *testing.T) {
	rr := httptest.NewRecorder()
	recorder := NewStatusRecorder(rr)
	recorder.WriteHeader(http.StatusTeapot)
	n, err := recorder.Write([]byte("short and stout"))
	require.NoError(t, err)

	require.Equal(t, http.StatusTeapot, recorder.Status())
	require.Equal(t, int64(n), recorder.BytesWritten())
}

func TestParseBucketsCSV(t *testing.T) {
	require.Nil(t, ParseBucketsCSV(""))
	require.Equal(t, []float64{5, 10, 50}, ParseBucketsCSV("5, 10, 50"))
	require.Equal(t, []float64{25}, ParseBucketsCSV("junk, -5, 0, 25"))
}

func TestDomainMetricHelpersTolerateUnregistered(t *testing.T) {
	// Helpers are nil-safe so packages can run under test without the
	// process-level registration in main.
	ObserveScreenView("home")
	ObserveProductLookup("hit")
	ObserveNotificationShown()
}
