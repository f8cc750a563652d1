package cli

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/weftml/weft/internal/devserver"
	"github.com/weftml/weft/internal/watcher"
)

var (
	serveHost     string
	servePort     int
	serveNoReload bool
)

var serveCmd = &cobra.Command{
	Use:   "serve [dir]",
	Short: "Regenerate templates on change and serve with live reload",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		roots := cfg.Generate.Roots
		if len(args) == 1 {
			roots = args
		}
		host := cfg.Serve.Host
		if cmd.Flags().Changed("host") {
			host = serveHost
		}
		port := cfg.Serve.Port
		if cmd.Flags().Changed("port") {
			port = servePort
		}
		return runServe(cmd, roots, host, port)
	},
}

func init() {
	serveCmd.Flags().StringVar(&serveHost, "host", "localhost", "interface to bind")
	serveCmd.Flags().IntVar(&servePort, "port", 7332, "port to bind")
	serveCmd.Flags().BoolVar(&serveNoReload, "no-reload", false, "disable live reload injection")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, roots []string, host string, port int) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	regenerate := func() {
		if _, err := generateAll(cmd, roots, false, false); err != nil {
			logger.Error("generation failed", "error", err)
		}
	}
	regenerate()

	ds := devserver.New(cfg.Serve.Static, !serveNoReload, logger)

	w, err := watcher.New(cfg.Watch.Debounce(), cfg.Generate.Exclude, logger)
	if err != nil {
		return err
	}
	defer w.Close()
	for _, root := range roots {
		if err := w.AddRecursive(root); err != nil {
			return err
		}
	}
	go func() {
		err := w.Run(ctx, func(paths []string) {
			logger.Info("templates changed", "count", len(paths))
			regenerate()
			ds.Broadcast(ctx)
		})
		if err != nil && !errors.Is(err, context.Canceled) {
			logger.Error("watcher stopped", "error", err)
		}
	}()

	srv := &http.Server{
		Addr:              net.JoinHostPort(host, strconv.Itoa(port)),
		Handler:           ds.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	serveErr := make(chan error, 1)
	go func() {
		logger.Info("dev server listening", "addr", srv.Addr)
		serveErr <- srv.ListenAndServe()
	}()

	select {
	case err := <-serveErr:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
