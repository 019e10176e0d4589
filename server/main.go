package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/brojonat/annonces/app"
	"github.com/brojonat/annonces/geo"
)

const shutdownTimeout = 10 * time.Second

// RunHTTPServer serves the listings UI and API until ctx is done.
func RunHTTPServer(ctx context.Context, l *slog.Logger, c *app.Controller, gr geo.Resolver, port, tileURL string) error {
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%s", port),
		Handler:           getRootHandler(l, c, gr, getAllowedOrigins(), tileURL),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		<-ctx.Done()
		sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		errc <- srv.Shutdown(sctx)
	}()

	l.Info("listening", "port", port)
	if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return <-errc
}
