package main

import (
	"context"
	"net"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ClinicService/internal/config"
)

func TestHTTPServer_ShutdownEndsOpenStreams(t *testing.T) {
	streamOpen := make(chan struct{})
	streamDone := make(chan struct{})
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.(http.Flusher).Flush()
		close(streamOpen)
		<-r.Context().Done()
		close(streamDone)
	})

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	srv := newHTTPServer(ln.Addr().String(), handler, config.ServerConfig{})
	go func() { _ = srv.Serve(ln) }()

	go func() {
		resp, err := http.Get("http://" + ln.Addr().String() + "/api/v1/changes")
		if err == nil {
			resp.Body.Close()
		}
	}()

	select {
	case <-streamOpen:
	case <-time.After(5 * time.Second):
		t.Fatal("stream was not opened")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	started := time.Now()
	assert.NoError(t, srv.Shutdown(ctx))
	assert.Less(t, time.Since(started), 3*time.Second)

	select {
	case <-streamDone:
	default:
		t.Fatal("stream handler still running after shutdown")
	}
}
