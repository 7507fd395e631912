package main

import (
	"context"
	"net"
	"net/http"
	"time"

	"github.com/m04kA/SMC-ClinicService/internal/config"
)

// newHTTPServer создает сервер, контексты запросов которого отменяются при Shutdown.
// Иначе открытые SSE-потоки держат Shutdown до истечения таймаута
func newHTTPServer(addr string, handler http.Handler, cfg config.ServerConfig) *http.Server {
	baseCtx, cancel := context.WithCancel(context.Background())

	srv := &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  time.Duration(cfg.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.IdleTimeout) * time.Second,
		BaseContext: func(net.Listener) context.Context {
			return baseCtx
		},
	}
	srv.RegisterOnShutdown(cancel)
	return srv
}
