// Package main runs the Othello web server.
package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jaminalder/codex-othello/internal/app"
	"github.com/jaminalder/codex-othello/internal/web"
)

func main() {
	defaultAddr := "localhost:8080"
	if v := os.Getenv("OTHELLO_ADDR"); v != "" {
		defaultAddr = v
	}

	var (
		addr            = flag.String("addr", defaultAddr, "listen address (env OTHELLO_ADDR)")
		heartbeat       = flag.Duration("heartbeat", web.DefaultHeartbeat, "SSE keep-alive interval")
		shutdownTimeout = flag.Duration("shutdown-timeout", 5*time.Second, "graceful shutdown timeout")
		quiet           = flag.Bool("quiet", false, "disable request logging")
	)
	flag.Parse()

	svc := app.NewService()
	// SSE streams only end when their request context does.
	baseCtx, cancelBase := context.WithCancel(context.Background())
	defer cancelBase()
	srv := &http.Server{
		Addr:              *addr,
		Handler:           web.NewServer(svc, web.WithHeartbeat(*heartbeat), web.WithRequestLog(!*quiet)),
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return baseCtx },
	}
	srv.RegisterOnShutdown(cancelBase)

	go func() {
		log.Printf("Othello server listening on http://%s", *addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("listen error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), *shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("Server forced to shutdown: %v", err)
	}
	log.Println("Server exited")
}
