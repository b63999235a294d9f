package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	zlog "github.com/rs/zerolog/log"

	"github.com/ymatsuda/auth-service/internal/bootstrap"
	"github.com/ymatsuda/auth-service/internal/logger"
)

const shutdownGrace = 15 * time.Second

// server is the slice of *http.Server that run() drives. A fake
// implementation stands in during tests.
type server interface {
	ListenAndServe() error
	Shutdown(ctx context.Context) error
	Close() error
	Addr() string
}

type realServer struct{ *http.Server }

func (s realServer) Addr() string { return s.Server.Addr }

type buildFunc func() (server, func(), error)

func run(build buildFunc, sigCh <-chan os.Signal, lg zerolog.Logger) int {
	srv, cleanup, err := build()
	if err != nil {
		lg.Error().Err(err).Msg("bootstrap failed")
		return 1
	}
	defer cleanup()

	crashed := make(chan error, 1)
	go func() {
		lg.Info().Str("addr", srv.Addr()).Msg("listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			crashed <- err
		}
	}()

	select {
	case sig := <-sigCh:
		lg.Info().Str("signal", sig.String()).Msg("shutdown signal received")
	case err := <-crashed:
		lg.Error().Err(err).Msg("server crashed")
		return 1
	}

	ctx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		lg.Error().Err(err).Msg("graceful shutdown failed; forcing close")
		_ = srv.Close()
	}

	lg.Info().Msg("shutdown complete")
	return 0
}

func buildServer() (server, func(), error) {
	srv, cleanup, err := bootstrap.NewServer()
	if err != nil {
		return nil, nil, err
	}
	return realServer{srv}, cleanup, nil
}

func main() {
	logger.Init()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	os.Exit(run(buildServer, sigCh, zlog.Logger))
}
