package inspect

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"github.com/loom-ui/loom/pkg/recon"
	"github.com/loom-ui/loom/pkg/recontest"
)

func TestHealthz(t *testing.T) {
	srv := New(Config{})
	req := httptest.NewRequest("GET", "/healthz", nil)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", rec.Code)
	}
	if rec.Body.String() != "OK" {
		t.Errorf("body = %q, want OK", rec.Body.String())
	}
}

func TestTreeBeforeAnyBuild(t *testing.T) {
	srv := New(Config{})
	req := httptest.NewRequest("GET", "/tree", nil)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid error body: %v", err)
	}
	if body["code"] != "E020" {
		t.Errorf("error code = %q, want E020", body["code"])
	}
}

func TestTreeReflectsLatestBuild(t *testing.T) {
	srv := New(Config{})
	h := recontest.NewHarness(t, srv)

	app := recontest.CountingWithChild("app", recontest.Counting("leaf"))
	h.BuildNew(app)

	req := httptest.NewRequest("GET", "/tree", nil)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var snap TreeSnapshot
	if err := json.Unmarshal(rec.Body.Bytes(), &snap); err != nil {
		t.Fatalf("invalid snapshot body: %v", err)
	}
	if snap.Generation != h.Root().Generation() {
		t.Errorf("generation = %d, want %d", snap.Generation, h.Root().Generation())
	}
	if snap.Trigger != "NewTree" {
		t.Errorf("trigger = %q, want NewTree", snap.Trigger)
	}
	if snap.NodesBuilt != 2 {
		t.Errorf("nodesBuilt = %d, want 2", snap.NodesBuilt)
	}
	if snap.Root == nil || len(snap.Root.Children) != 1 {
		t.Fatalf("expected host root with one child, got %+v", snap.Root)
	}
	appSnap := snap.Root.Children[0]
	if !strings.Contains(appSnap.Component, "CountingComponent") {
		t.Errorf("component = %q, want a CountingComponent", appSnap.Component)
	}
	if len(appSnap.Children) != 1 {
		t.Fatalf("app node has %d children, want 1", len(appSnap.Children))
	}
}

func TestStatsOmitsTree(t *testing.T) {
	srv := New(Config{})
	h := recontest.NewHarness(t, srv)
	h.EnableFasterStateUpdates()

	h.BuildNew(recontest.Counting("app"))
	h.BuildNext(recontest.Counting("app"), recon.TriggerStateUpdate, 999)

	req := httptest.NewRequest("GET", "/stats", nil)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var snap TreeSnapshot
	if err := json.Unmarshal(rec.Body.Bytes(), &snap); err != nil {
		t.Fatalf("invalid stats body: %v", err)
	}
	if snap.Root != nil {
		t.Error("stats response should not carry the tree")
	}
	if snap.NodesReused != 1 {
		t.Errorf("nodesReused = %d, want 1", snap.NodesReused)
	}
}

func TestMetricsEndpointMounted(t *testing.T) {
	srv := New(Config{})
	req := httptest.NewRequest("GET", "/metrics", nil)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", rec.Code)
	}
}

func TestWebSocketReceivesSnapshots(t *testing.T) {
	srv := New(Config{})
	h := recontest.NewHarness(t, srv)
	h.BuildNew(recontest.Counting("app"))

	ts := httptest.NewServer(srv.Handler())
	defer ts.Close()

	wsURL := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))

	// The latest generation is pushed on connect.
	var first TreeSnapshot
	if err := conn.ReadJSON(&first); err != nil {
		t.Fatalf("read initial snapshot: %v", err)
	}
	firstGen := first.Generation

	// The registered client must be visible before the next build's
	// broadcast is sent.
	waitForClients(t, srv, 1)

	h.BuildNext(recontest.Counting("app"), recon.TriggerPropsUpdate)

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var second TreeSnapshot
	if err := conn.ReadJSON(&second); err != nil {
		t.Fatalf("read broadcast snapshot: %v", err)
	}
	if second.Generation <= firstGen {
		t.Errorf("broadcast generation = %d, want one newer than %d", second.Generation, firstGen)
	}
	if second.Trigger != "PropsUpdate" {
		t.Errorf("broadcast trigger = %q, want PropsUpdate", second.Trigger)
	}
}

func waitForClients(t *testing.T, srv *Server, n int) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if srv.hub.clientCount() >= n {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("timed out waiting for %d websocket clients", n)
}

func TestListenAndServeRejectsBadAddr(t *testing.T) {
	srv := New(Config{Addr: "not-an-address"})
	err := srv.ListenAndServe(context.Background())
	if err == nil {
		t.Fatal("expected error for malformed address")
	}
	if !strings.Contains(err.Error(), "E010") {
		t.Errorf("error = %v, want E010", err)
	}
}
