package steps

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/drexlabs/autofarm/internal/metrics"
)

func registerServer(t *testing.T, registered bool, registerOK bool) (*httptest.Server, *int32, *int32) {
	t.Helper()
	var statusCalls, registerCalls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodGet && r.URL.Path == "/profile/status":
			atomic.AddInt32(&statusCalls, 1)
			json.NewEncoder(w).Encode(map[string]any{"status": registered})
		case r.Method == http.MethodPost && r.URL.Path == "/profile/register":
			atomic.AddInt32(&registerCalls, 1)
			var body map[string]string
			json.NewDecoder(r.Body).Decode(&body)
			if body["walletAddress"] == "" {
				t.Error("register body missing walletAddress")
			}
			json.NewEncoder(w).Encode(map[string]any{"status": registerOK})
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(srv.Close)
	return srv, &statusCalls, &registerCalls
}

func TestRegisterNewWallet(t *testing.T) {
	srv, _, registerCalls := registerServer(t, false, true)
	cfg := baseConfig()
	cfg.Network.RegisterAPI = srv.URL
	env := testEnv(t, &fakeBackend{}, cfg)

	okCounter := metrics.StepsTotal.WithLabelValues("register", "ok")
	before := testutil.ToFloat64(okCounter)

	if !env.Register(context.Background()) {
		t.Fatal("register should succeed")
	}
	if *registerCalls != 1 {
		t.Fatalf("register called %d times", *registerCalls)
	}
	// The step records its own outcome, like every other category.
	if got := testutil.ToFloat64(okCounter) - before; got != 1 {
		t.Fatalf("register step counted %v times, want 1", got)
	}
}

func TestRegisterShortCircuitsWhenAlreadyRegistered(t *testing.T) {
	srv, _, registerCalls := registerServer(t, true, true)
	cfg := baseConfig()
	cfg.Network.RegisterAPI = srv.URL
	env := testEnv(t, &fakeBackend{}, cfg)

	if !env.Register(context.Background()) {
		t.Fatal("already registered is a success")
	}
	if *registerCalls != 0 {
		t.Fatal("register endpoint should not be hit")
	}
}

func TestRegisterRejectionIsFailure(t *testing.T) {
	srv, _, _ := registerServer(t, false, false)
	cfg := baseConfig()
	cfg.Network.RegisterAPI = srv.URL
	env := testEnv(t, &fakeBackend{}, cfg)

	if env.Register(context.Background()) {
		t.Fatal("rejected register must fail")
	}
}

func TestTransportRetriesOn5xx(t *testing.T) {
	var hits int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&hits, 1) < 3 {
			http.Error(w, "try later", http.StatusBadGateway)
			return
		}
		json.NewEncoder(w).Encode(map[string]any{"status": true})
	}))
	t.Cleanup(srv.Close)

	cfg := baseConfig()
	cfg.Network.RegisterAPI = srv.URL
	env := testEnv(t, &fakeBackend{}, cfg)

	if !env.Register(context.Background()) {
		t.Fatal("transport retry should ride out 5xx responses")
	}
	if hits != 3 {
		t.Fatalf("server hit %d times, want 3", hits)
	}
}
