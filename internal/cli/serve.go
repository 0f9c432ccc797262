package cli

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/openarc/ehive-shop/internal/config"
	"github.com/openarc/ehive-shop/internal/logger"
	"github.com/openarc/ehive-shop/internal/middleware"
)

// ServerDependencies holds all dependencies needed for the server
type ServerDependencies struct {
	ServerConfig    config.ServerConfig
	Logger          *logger.Logger
	Metrics         prometheus.Gatherer
	ShopHandler     http.Handler
	ProductHandler  http.Handler
	CartHandler     http.Handler
	SuccessHandler  http.Handler
	CancelHandler   http.Handler
	FragmentHandler http.Handler
	NotFoundHandler http.Handler
}

// RunServe starts the storefront web server
func RunServe(deps ServerDependencies) error {
	listener, server, err := StartServer(deps)
	if err != nil {
		return err
	}
	defer listener.Close()

	return WaitForShutdown(server, nil, deps.Logger)
}

// NewRouter wires the storefront routes. Nil handlers leave their route unregistered.
func NewRouter(deps ServerDependencies) http.Handler {
	logg := deps.Logger
	if logg == nil {
		logg = logger.Nop()
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID(logg))
	r.Use(middleware.Logging(logg))
	r.Use(middleware.Recoverer(logg))

	handle(r, "/", deps.ShopHandler)
	handle(r, "/shop", deps.ShopHandler)
	handle(r, "/products/{id}", deps.ProductHandler)
	handle(r, "/cart", deps.CartHandler)
	handle(r, "/success", deps.SuccessHandler)
	handle(r, "/cancel", deps.CancelHandler)
	if deps.FragmentHandler != nil {
		r.With(middleware.CORS(deps.ServerConfig.AllowedOrigins)).Handle("/fragments/purchase", deps.FragmentHandler)
	}

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte("ok"))
	})

	if deps.Metrics != nil {
		r.Handle("/metrics", promhttp.HandlerFor(deps.Metrics, promhttp.HandlerOpts{}))
	}

	if dir := deps.ServerConfig.StaticDir; dir != "" {
		r.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.Dir(dir))))
	}

	if deps.NotFoundHandler != nil {
		r.NotFound(deps.NotFoundHandler.ServeHTTP)
	}

	return r
}

func handle(r chi.Router, pattern string, h http.Handler) {
	if h == nil {
		return
	}
	r.Handle(pattern, h)
}

// StartServer creates and starts the HTTP server, returning the listener and server
func StartServer(deps ServerDependencies) (net.Listener, *http.Server, error) {
	logg := deps.Logger
	if logg == nil {
		logg = logger.Nop()
	}

	// Create listener
	addr := fmt.Sprintf(":%s", deps.ServerConfig.Port)
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create listener: %w", err)
	}

	// Create HTTP server
	server := &http.Server{
		Handler:           NewRouter(deps),
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		ctx := logg.WithField(context.Background(), "addr", listener.Addr().String())
		logg.Info(ctx, "server.listening")
		if err := server.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logg.Error(ctx, "server.serve_failed", err)
		}
	}()

	return listener, server, nil
}

// WaitForShutdown waits for a shutdown signal and gracefully shuts down the server
// If shutdown channel is nil, a new channel will be created and registered with signal.Notify
func WaitForShutdown(server *http.Server, shutdown chan os.Signal, logg *logger.Logger) error {
	return WaitForShutdownWithTimeout(server, shutdown, 30*time.Second, logg)
}

// WaitForShutdownWithTimeout allows specifying a custom shutdown timeout (primarily for testing)
func WaitForShutdownWithTimeout(server *http.Server, shutdown chan os.Signal, shutdownTimeout time.Duration, logg *logger.Logger) error {
	if logg == nil {
		logg = logger.Nop()
	}

	// Channel to listen for interrupt or terminate signals
	if shutdown == nil {
		shutdown = make(chan os.Signal, 1)
		signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM, syscall.SIGINT)
		defer signal.Stop(shutdown)
	}

	// Wait for shutdown signal
	sig := <-shutdown
	ctx := logg.WithField(context.Background(), "signal", sig.String())
	logg.Info(ctx, "server.shutting_down")

	// Give outstanding requests time to complete
	ctx, cancel := context.WithTimeout(ctx, shutdownTimeout)
	defer cancel()

	// Attempt graceful shutdown
	if err := server.Shutdown(ctx); err != nil {
		// Force close the server after timeout.
		// http.Server.Close does not propagate listener close errors, so the
		// nested failure is not reachable with a real listener.
		if err := server.Close(); err != nil {
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
	}

	logg.Info(ctx, "server.stopped")
	return nil
}
