package cli

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/aretw0/espalier"
	"github.com/aretw0/espalier/pkg/observability"
)

type probeState struct {
	espalier.Base[struct{}]
}

func newStatusMachine(t *testing.T, opts ...espalier.Option) *espalier.Machine[struct{}] {
	t.Helper()
	m := espalier.New(struct{}{}, append([]espalier.Option{espalier.WithName("status-demo")}, opts...)...)

	a := &probeState{}
	a.RegisterTransition("b")
	if err := m.Register("a", a); err != nil {
		t.Fatalf("Register(a) = %v", err)
	}
	if err := m.Register("b", &probeState{}); err != nil {
		t.Fatalf("Register(b) = %v", err)
	}
	if err := m.SetStartState("a"); err != nil {
		t.Fatalf("SetStartState(a) = %v", err)
	}
	return m
}

func get(t *testing.T, handler http.Handler, path string) *httptest.ResponseRecorder {
	t.Helper()
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, path, nil))
	return rr
}

func TestRouterHealthz(t *testing.T) {
	handler := newRouter(newStatusMachine(t), "a", prometheus.NewRegistry())

	rr := get(t, handler, "/healthz")
	if rr.Code != http.StatusOK {
		t.Fatalf("code = %d, want %d", rr.Code, http.StatusOK)
	}

	var resp map[string]string
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if resp["status"] != "ok" {
		t.Errorf("status = %q, want %q", resp["status"], "ok")
	}
}

func TestRouterStatus(t *testing.T) {
	m := newStatusMachine(t)
	if err := m.Update(); err != nil {
		t.Fatalf("Update() = %v", err)
	}
	handler := newRouter(m, "a", prometheus.NewRegistry())

	rr := get(t, handler, "/status")
	if rr.Code != http.StatusOK {
		t.Fatalf("code = %d, want %d", rr.Code, http.StatusOK)
	}

	var resp statusResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if resp.Machine != "status-demo" {
		t.Errorf("machine = %q, want %q", resp.Machine, "status-demo")
	}
	if resp.Phase != "idle" {
		t.Errorf("phase = %q, want %q", resp.Phase, "idle")
	}
	if !resp.Running || resp.Current != "a" || resp.Ticks != 1 {
		t.Errorf("running=%v current=%q ticks=%d, want running at \"a\" after one tick", resp.Running, resp.Current, resp.Ticks)
	}
	if len(resp.States) != 2 {
		t.Errorf("states = %v, want two entries", resp.States)
	}
}

func TestRouterGraph(t *testing.T) {
	m := newStatusMachine(t)
	if err := m.Update(); err != nil {
		t.Fatalf("Update() = %v", err)
	}
	handler := newRouter(m, "a", prometheus.NewRegistry())

	rr := get(t, handler, "/graph")
	if rr.Code != http.StatusOK {
		t.Fatalf("code = %d, want %d", rr.Code, http.StatusOK)
	}

	body := rr.Body.String()
	for _, want := range []string{"stateDiagram-v2", "[*] --> a", "a --> b", "class a current"} {
		if !strings.Contains(body, want) {
			t.Errorf("graph body missing %q:\n%s", want, body)
		}
	}
}

func TestRouterMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	collector := observability.NewCollector(reg)
	m := newStatusMachine(t, espalier.WithHooks(collector.Hooks()))
	if err := m.Update(); err != nil {
		t.Fatalf("Update() = %v", err)
	}
	handler := newRouter(m, "a", reg)

	rr := get(t, handler, "/metrics")
	if rr.Code != http.StatusOK {
		t.Fatalf("code = %d, want %d", rr.Code, http.StatusOK)
	}
	if body := rr.Body.String(); !strings.Contains(body, "espalier_ticks_total") {
		t.Errorf("metrics exposition missing espalier_ticks_total:\n%s", body)
	}
}
