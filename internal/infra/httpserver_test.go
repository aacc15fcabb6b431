package infra

import (
	"context"
	"net/http"
	"testing"
	"time"
)

func TestHTTPServerUsesConfig(t *testing.T) {
	cfg := &Config{Port: "9090", HTTPReadTimeout: 3 * time.Second, HTTPWriteTimeout: 90 * time.Second, HTTPIdleTimeout: time.Minute}
	srv := NewHTTPServer(cfg, http.NotFoundHandler())

	if srv.Addr() != ":9090" {
		t.Fatalf("Addr() = %q", srv.Addr())
	}
	if srv.server.WriteTimeout != 90*time.Second || srv.server.ReadTimeout != 3*time.Second {
		t.Fatalf("timeouts = %s/%s", srv.server.ReadTimeout, srv.server.WriteTimeout)
	}
}

func TestHTTPServerStartAfterShutdown(t *testing.T) {
	srv := NewHTTPServer(&Config{Port: "0"}, http.NotFoundHandler())
	if err := srv.Shutdown(context.Background()); err != nil {
		t.Fatalf("Shutdown() error: %v", err)
	}
	if err := srv.Start(); err != nil {
		t.Fatalf("Start() after Shutdown = %v, want nil", err)
	}
}
