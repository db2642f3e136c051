package health

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestHTTPProber(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodHead {
			t.Errorf("Expected HEAD, got %s", r.Method)
		}
		switch r.URL.Path {
		case "/ok":
			if r.Header.Get("User-Agent") != "test-agent" {
				t.Errorf("Expected User-Agent test-agent, got %q", r.Header.Get("User-Agent"))
			}
			w.WriteHeader(http.StatusOK)
		case "/moved":
			http.Redirect(w, r, "/ok", http.StatusMovedPermanently)
		case "/slow":
			time.Sleep(200 * time.Millisecond)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer server.Close()

	prober := NewHTTPProber(server.Client(), "test-agent")
	ctx := context.Background()

	if err := prober.Probe(ctx, server.URL+"/ok", time.Second); err != nil {
		t.Errorf("Expected success, got %v", err)
	}
	if err := prober.Probe(ctx, server.URL+"/moved", time.Second); err != nil {
		t.Errorf("Expected redirect to be followed, got %v", err)
	}
	if err := prober.Probe(ctx, server.URL+"/missing", time.Second); err == nil {
		t.Error("Expected error for 404")
	}
	if err := prober.Probe(ctx, server.URL+"/slow", 20*time.Millisecond); err == nil {
		t.Error("Expected timeout error")
	}
}
