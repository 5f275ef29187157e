package cli

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/aretw0/espalier"
	"github.com/aretw0/espalier/internal/graph"
)

type statusResponse struct {
	Machine string             `json:"machine"`
	Phase   string             `json:"phase"`
	Running bool               `json:"running"`
	Current espalier.StateID   `json:"current"`
	Next    espalier.StateID   `json:"next,omitempty"`
	Ticks   uint64             `json:"ticks"`
	States  []espalier.StateID `json:"states"`
}

// newRouter wires the observation endpoints for a running machine. The
// handlers only touch the machine's atomic accessors, so they are safe
// to serve while the runner ticks on another goroutine.
func newRouter[C any](m *espalier.Machine[C], start espalier.StateID, reg *prometheus.Registry) http.Handler {
	r := chi.NewRouter()

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, map[string]string{"status": "ok"})
	})

	r.Get("/status", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, statusResponse{
			Machine: m.Name(),
			Phase:   m.Phase().String(),
			Running: m.Running(),
			Current: m.Current(),
			Next:    m.Next(),
			Ticks:   m.Ticks(),
			States:  m.States(),
		})
	})

	r.Get("/graph", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		fmt.Fprint(w, graph.Mermaid(m, &graph.Overlay{Start: start, Current: m.Current()}))
	})

	r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))

	return r
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		http.Error(w, "encode error", http.StatusInternalServerError)
	}
}
