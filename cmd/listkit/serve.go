package main

import (
	"context"
	"errors"
	"fmt"
	"html"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/vango-dev/listkit/internal/config"
	"github.com/vango-dev/listkit/internal/sample"
	"github.com/vango-dev/listkit/pkg/adapter"
	"github.com/vango-dev/listkit/pkg/differ"
	"github.com/vango-dev/listkit/pkg/host/term"
	"github.com/vango-dev/listkit/pkg/host/wshost"
	"github.com/vango-dev/listkit/pkg/metrics"
)

func serveCmd() *cobra.Command {
	var (
		dir   string
		port  int
		host  string
		items int
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Stream sample list updates over WebSocket",
		Long: `Start an HTTP server that changes the sample list on every tick and
streams the resulting updates to connected browsers.

Routes:
  /         the current grid
  /ws       update stream (JSON)
  /metrics  Prometheus metrics

Examples:
  listkit serve
  listkit serve --port=8080
  listkit serve --host=0.0.0.0`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadOrDefault(dir)
			if err != nil {
				return err
			}
			if port > 0 {
				cfg.Serve.Port = port
			}
			if host != "" {
				cfg.Serve.Host = host
			}
			if err := cfg.Validate(); err != nil {
				return err
			}
			return runServe(cmd.Context(), cfg, items)
		},
	}

	cmd.Flags().StringVarP(&dir, "dir", "d", ".", "Directory containing listkit.json")
	cmd.Flags().IntVarP(&port, "port", "P", 0, "Port to listen on (default from listkit.json)")
	cmd.Flags().StringVarP(&host, "host", "H", "", "Host to bind to (default from listkit.json)")
	cmd.Flags().IntVarP(&items, "items", "n", 41, "Number of items")

	return cmd
}

func runServe(ctx context.Context, cfg *config.Config, items int) error {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	loop := differ.NewLoop(64)
	go loop.Run(ctx)
	defer loop.Close()

	registry := prometheus.NewRegistry()
	collector := metrics.New(
		metrics.WithNamespace(cfg.Metrics.Namespace),
		metrics.WithRegistry(registry),
	)

	a, err := sample.NewAdapter(
		adapter.WithExecutor(loop),
		adapter.WithDiffObserver(collector),
		adapter.WithBindObserver(collector),
	)
	if err != nil {
		return err
	}

	grid := term.NewGrid(a, term.Config{
		SpanCount: cfg.Grid.SpanCount,
		Width:     cfg.Grid.Width,
		Renderer:  term.NewRenderer(io.Discard),
	})
	hub := wshost.New(wshost.Config{
		Size:     a.ItemCount,
		Gatherer: registry,
		Observer: collector,
		Render: func(w io.Writer) error {
			var page string
			if !loop.Do(func() { page = grid.Render() }) {
				return errors.New("render loop stopped")
			}
			_, err := fmt.Fprintf(w, "<!doctype html><title>listkit</title><pre>%s</pre>", html.EscapeString(page))
			return err
		},
	})
	defer hub.Close()
	a.Attach(differ.Hosts(grid, hub))

	srv := &http.Server{
		Addr:              cfg.ServeAddress(),
		Handler:           hub.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	printBanner()
	success("Serving on %s", cfg.ServeURL())
	info("WebSocket: %s/ws", cfg.ServeURL())
	info("Metrics:   %s/metrics", cfg.ServeURL())

	list := sample.Build(0, items)
	a.Submit(list)

	ticker := time.NewTicker(cfg.TickInterval())
	defer ticker.Stop()

	for round := 1; ; round++ {
		select {
		case <-ticker.C:
			list = rotate(sample.Retitle(list, round))
			a.Submit(list)
		case err := <-errCh:
			if errors.Is(err, http.ErrServerClosed) {
				return nil
			}
			return err
		case <-ctx.Done():
			fmt.Println("\n  Shutting down...")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		}
	}
}
