package web

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	config "github.com/meetscribe/backend/config/web"
	"github.com/meetscribe/backend/gateways/web/handler"
)

type Server struct {
	cfg     *config.Config
	log     *slog.Logger
	handler *handler.Handler
}

func New(cfg *config.Config, h *handler.Handler, log *slog.Logger) *Server {
	return &Server{
		cfg:     cfg,
		log:     log,
		handler: h,
	}
}

func (s *Server) Start(ctx context.Context) error {
	router := chi.NewRouter()
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	s.handler.RegisterRoutes(router)

	addr := fmt.Sprintf(":%d", s.cfg.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  5 * time.Minute, // large uploads
		WriteTimeout: 10 * time.Minute,
		IdleTimeout:  60 * time.Second,
	}

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	serverErrors := make(chan error, 1)

	go func() {
		s.log.Info("web gateway started", slog.String("address", srv.Addr))
		serverErrors <- srv.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		return fmt.Errorf("server error: %w", err)
	case sig := <-shutdown:
		s.log.Info("start shutdown", slog.String("signal", sig.String()))
	case <-ctx.Done():
		s.log.Info("closing server due to context cancellation")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		s.log.Error("graceful shutdown failed", slog.String("error", err.Error()))
		srv.Close()
		return fmt.Errorf("failed to gracefully shutdown server: %w", err)
	}

	s.log.Info("server stopped cleanly")
	return nil
}
