package health

import (
	"context"
	"encoding/json"
	"net/http"
	"sync/atomic"
	"time"
)

var readyFlag atomic.Bool

func init() {
	readyFlag.Store(true)
}

// SetReady flips the readiness gate. The server clears it at the start of
// shutdown so load balancers drain traffic before connections close.
func SetReady(v bool) {
	readyFlag.Store(v)
}

// Checker represents dependencies that can be probed for readiness.
type Checker interface {
	PingCatalog(ctx context.Context, timeout time.Duration) error
}

// CheckerFunc adapts a function to the Checker interface.
type CheckerFunc func(ctx context.Context, timeout time.Duration) error

// PingCatalog implements Checker.
func (f CheckerFunc) PingCatalog(ctx context.Context, timeout time.Duration) error {
	return f(ctx, timeout)
}

// Handler exposes HTTP handlers for health endpoints.
type Handler struct {
	Checker        Checker
	CatalogTimeout time.Duration
}

// Live reports liveness status.
func (h Handler) Live(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

// Ready reports readiness based on the shutdown gate and the catalog probe.
func (h Handler) Ready(w http.ResponseWriter, r *http.Request) {
	if !readyFlag.Load() {
		http.Error(w, "shutting down", http.StatusServiceUnavailable)
		return
	}
	if h.Checker == nil {
		http.Error(w, "dependencies unavailable", http.StatusServiceUnavailable)
		return
	}
	catalogStatus := "ok"
	if err := h.Checker.PingCatalog(r.Context(), h.catalogTimeout()); err != nil {
		catalogStatus = err.Error()
	}
	status := map[string]string{
		"catalog": catalogStatus,
	}
	w.Header().Set("Content-Type", "application/json")
	if catalogStatus != "ok" {
		w.WriteHeader(http.StatusServiceUnavailable)
	} else {
		w.WriteHeader(http.StatusOK)
	}
	_ = json.NewEncoder(w).Encode(status)
}

func (h Handler) catalogTimeout() time.Duration {
	if h.CatalogTimeout <= 0 {
		return 200 * time.Millisecond
	}
	return h.CatalogTimeout
}
