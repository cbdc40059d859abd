package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/lyricsbox/lyricsbox/internal/logging"
	"github.com/lyricsbox/lyricsbox/internal/web"
)

const shutdownTimeout = 5 * time.Second

func newServeCommand(ctx *commandContext) *cobra.Command {
	var bind string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the lyrics widget over HTTP",
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := ctx.openSession(cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer sess.close()

			addr := sess.cfg.Server.Bind
			if b := strings.TrimSpace(bind); b != "" {
				addr = b
			}
			ln, err := net.Listen("tcp", addr)
			if err != nil {
				return fmt.Errorf("listen %s: %w", addr, err)
			}

			srv := web.NewServer(sess.search, web.Config{
				AllowedOrigins: sess.cfg.Server.AllowedOrigins,
				Pulse:          sess.cfg.Pulse(),
				State:          func() string { return sess.store.State().String() },
			}, sess.log)

			runCtx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return serveHTTP(runCtx, &http.Server{Handler: srv.Handler(), ReadHeaderTimeout: 10 * time.Second}, ln, sess.log)
		},
	}

	cmd.Flags().StringVar(&bind, "bind", "", "Listen address (default from config server.bind)")
	return cmd
}

// serveHTTP runs srv on ln until ctx is done, then shuts it down gracefully.
func serveHTTP(ctx context.Context, srv *http.Server, ln net.Listener, log *slog.Logger) error {
	log = log.With(logging.FieldComponent, "serve")
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Info("lyricsbox listening", "addr", ln.Addr().String())
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("serve: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
		defer cancel()
		log.Info("shutting down")
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}
