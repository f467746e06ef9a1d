package http

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"roomboard/config"
	"roomboard/infras/otel"
	"roomboard/shared/constant"
	"roomboard/transport/http/middleware"
	"roomboard/transport/http/response"
	"roomboard/transport/http/router"
	"sync"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog/log"
	httpSwagger "github.com/swaggo/http-swagger"
)

type ServerState int32

const (
	ServerStateReady ServerState = iota + 1
	ServerStateInGracePeriod
	ServerStateInCleanupPeriod
)

const (
	readHeaderTimeout = 10 * time.Second
	idleTimeout       = 120 * time.Second
)

type HTTP struct {
	Config       *config.Config
	Router       router.Router
	Middleware   middleware.AppMiddleware
	StaffSession middleware.StaffSession
	Otel         otel.Otel

	state atomic.Int32
	once  sync.Once
	mux   *chi.Mux
}

func New(
	cfg *config.Config,
	r router.Router,
	appMiddleware middleware.AppMiddleware,
	staffSession middleware.StaffSession,
	otel otel.Otel,
) *HTTP {
	return &HTTP{
		Config:       cfg,
		Router:       r,
		Middleware:   appMiddleware,
		StaffSession: staffSession,
		Otel:         otel,
	}
}

func (h *HTTP) State() ServerState {
	return ServerState(h.state.Load())
}

// Serve listens until SIGINT or SIGTERM, then drains in-flight requests before returning.
func (h *HTTP) Serve() {
	h.setup()

	server := &http.Server{
		Addr:              net.JoinHostPort(h.Config.Server.Host, h.Config.Server.Port),
		Handler:           h.mux,
		ReadHeaderTimeout: readHeaderTimeout,
		IdleTimeout:       idleTimeout,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	done := make(chan struct{})

	go func() {
		defer close(done)

		<-ctx.Done()
		h.shutdown(server)
	}()

	log.Info().Str("addr", server.Addr).Msg("Starting up HTTP server.")

	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal().Err(err).Msg("Failed to start HTTP server")
	}

	<-done
}

// ServeHTTP serves a single request without a listener, for serverless entry points.
func (h *HTTP) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.setup()
	h.mux.ServeHTTP(w, r)
}

func (h *HTTP) setup() {
	h.once.Do(func() {
		h.setupRoutes()
		h.state.Store(int32(ServerStateReady))
	})
}

func (h *HTTP) setupRoutes() {
	mux := chi.NewRouter()

	mux.Use(chiMiddleware.RequestID)
	mux.Use(chiMiddleware.Recoverer)
	h.setupCORS(mux)
	mux.Use(h.Middleware.Tracing)

	mux.Get("/health", h.health)

	if h.Config.Server.Env == constant.ServerEnvDevelopment {
		mux.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))
	}

	mux.Group(func(api chi.Router) {
		api.Use(h.Middleware.RateLimit())
		api.Use(h.StaffSession.Identify)

		h.Router.SetupRoutes(api)
	})

	h.mux = mux
}

func (h *HTTP) setupCORS(mux *chi.Mux) {
	corsConfig := h.Config.App.CORS
	if !corsConfig.Enable {
		return
	}

	mux.Use(cors.Handler(cors.Options{
		AllowedOrigins:   corsConfig.AllowedOrigins,
		AllowedMethods:   corsConfig.AllowedMethods,
		AllowedHeaders:   corsConfig.AllowedHeaders,
		AllowCredentials: corsConfig.AllowCredentials,
		MaxAge:           corsConfig.MaxAgeSeconds,
	}))
}

func (h *HTTP) health(w http.ResponseWriter, _ *http.Request) {
	switch h.State() {
	case ServerStateReady:
		response.WithMessage(w, http.StatusOK, "OK")
	case ServerStateInGracePeriod:
		response.WithPreparingShutdown(w)
	default:
		response.WithUnhealthy(w)
	}
}

// shutdown reports 503 on /health for the grace period, then drains in-flight requests
// within the cleanup period.
func (h *HTTP) shutdown(server *http.Server) {
	shutdownConfig := h.Config.Server.Shutdown
	cleanup := time.Duration(shutdownConfig.CleanupPeriodSeconds) * time.Second

	if h.Config.Server.Env == constant.ServerEnvDevelopment {
		log.Warn().Msg("Received SIGTERM. Shutting down now.")

		cleanup = 0
	} else {
		log.Info().Msg("Received SIGTERM.")
		log.Info().Int64("seconds", shutdownConfig.GracePeriodSeconds).Msg("Entering grace period.")

		h.state.Store(int32(ServerStateInGracePeriod))

		time.Sleep(time.Duration(shutdownConfig.GracePeriodSeconds) * time.Second)

		log.Info().Int64("seconds", shutdownConfig.CleanupPeriodSeconds).Msg("Entering cleanup period.")
	}

	h.state.Store(int32(ServerStateInCleanupPeriod))

	ctx, cancel := context.WithTimeout(context.Background(), max(cleanup, time.Second))
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("HTTP server did not drain in time")
	}

	if err := h.Otel.Shutdown(ctx); err != nil {
		log.Warn().Err(err).Msg("Failed to flush traces")
	}

	log.Info().Msg("Cleaning up completed. Shutting down now.")
}
