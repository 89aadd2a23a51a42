package http

import (
	"context"
	"io"
	"net"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/turtacn/chemsolver/internal/config"
	"github.com/turtacn/chemsolver/internal/testutil"
)

func TestServer_ServeAndStop(t *testing.T) {
	log := testutil.NewMockLogger()
	mux := http.NewServeMux()
	mux.HandleFunc("/ping", func(w http.ResponseWriter, _ *http.Request) { _, _ = io.WriteString(w, "pong") })

	srv := NewServer(config.ServerConfig{
		Host: "127.0.0.1", Port: 8080,
		ReadTimeout: time.Second, WriteTimeout: time.Second, ShutdownTimeout: time.Second,
	}, mux, log)
	assert.Equal(t, "127.0.0.1:8080", srv.srv.Addr)
	assert.Equal(t, mux, srv.Handler())

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	done := make(chan error, 1)
	go func() { done <- srv.Serve(ln) }()

	resp, err := http.Get("http://" + ln.Addr().String() + "/ping")
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	assert.Equal(t, "pong", string(body))

	require.NoError(t, srv.Stop(context.Background()))
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("Serve did not return after Stop")
	}
	assert.True(t, log.HasMessage("info", "http server stopped"))
}

func TestServer_StartInvalidAddress(t *testing.T) {
	srv := NewServer(config.ServerConfig{Host: "256.0.0.1", Port: 1}, http.NewServeMux(), nil)
	assert.Error(t, srv.Start())
}

//Personal.AI order the ending
