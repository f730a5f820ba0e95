package http

import (
	"context"
	"net/http"
	"testing"
	"time"

	"todoapi/internal/logging"
)

func TestServerStartAndShutdown(t *testing.T) {
	srv := NewServer("127.0.0.1:0", http.NewServeMux(), time.Second, time.Second, logging.NewLogger(true))

	done := make(chan error, 1)
	go func() { done <- srv.Start() }()

	// give the listener a moment to bind before draining it
	time.Sleep(50 * time.Millisecond)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		t.Fatalf("shutdown: %v", err)
	}

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("start returned error after clean shutdown: %v", err)
		}
	case <-time.After(time.Second):
		t.Fatal("server did not stop after shutdown")
	}
}
