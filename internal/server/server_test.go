package server_test

import (
	"io"
	"net"
	"net/http"
	"testing"
	"time"

	"github.com/JaimeStill/cmyk-lab/internal/config"
	"github.com/JaimeStill/cmyk-lab/internal/server"
	"github.com/JaimeStill/cmyk-lab/pkg/lifecycle"
	"github.com/JaimeStill/cmyk-lab/pkg/logging"
)

func TestServer_StartShutdown(t *testing.T) {
	cfg := &config.ServerConfig{Host: "127.0.0.1", ReadTimeout: "5s", WriteTimeout: "5s"}
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("pong"))
	})

	lc := lifecycle.New()
	srv := server.New(cfg, time.Second, handler, logging.Discard())
	if err := srv.Start(lc); err != nil {
		t.Fatalf("Start() error = %v", err)
	}

	client := &http.Client{Transport: &http.Transport{DisableKeepAlives: true}}

	resp, err := client.Get("http://" + srv.Addr() + "/")
	if err != nil {
		t.Fatalf("GET error = %v", err)
	}
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	if string(body) != "pong" {
		t.Errorf("body = %q, want pong", body)
	}

	if err := lc.Shutdown(2 * time.Second); err != nil {
		t.Fatalf("Shutdown() error = %v", err)
	}

	if _, err := client.Get("http://" + srv.Addr() + "/"); err == nil {
		t.Error("server still accepting requests after shutdown")
	}
}

func TestServer_Start_BindError(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatal(err)
	}
	defer ln.Close()

	port := ln.Addr().(*net.TCPAddr).Port
	cfg := &config.ServerConfig{Host: "127.0.0.1", Port: port}
	srv := server.New(cfg, time.Second, http.NotFoundHandler(), logging.Discard())

	if err := srv.Start(lifecycle.New()); err == nil {
		t.Error("Start() expected error for a port already in use")
	}
}
