package server

import (
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/voyagent/voyagent/internal/api"
	"github.com/voyagent/voyagent/internal/auth"
	"github.com/voyagent/voyagent/internal/booking"
	"github.com/voyagent/voyagent/internal/chat"
	"github.com/voyagent/voyagent/internal/pkg/config"
	"github.com/voyagent/voyagent/internal/search"
	"github.com/voyagent/voyagent/internal/state"
	"github.com/voyagent/voyagent/internal/store"
)

// Server holds the dependencies for the HTTP server.
type Server struct {
	cfg    *config.Config
	logger *zap.Logger
	router http.Handler

	app     *state.App
	store   store.Store
	client  *api.Client
	gateway *booking.HostedGateway

	searchCtrl *search.Controller
	bookCtrl   *booking.Orchestrator
	authCtrl   *auth.Controller
	assistant  *chat.Assistant
}

// New creates a Server with all dependencies wired and persisted state
// rehydrated.
func New(cfg *config.Config, logger *zap.Logger) (*Server, error) {
	s := &Server{
		cfg:    cfg,
		logger: logger,
	}

	st, err := s.setupStore()
	if err != nil {
		return nil, err
	}
	s.store = st

	s.app = state.NewApp(logger)
	s.client = api.NewClient(cfg.Backend.BaseURL, cfg.Backend.Timeout)
	s.gateway = booking.NewHostedGateway(logger)

	s.searchCtrl = search.NewController(s.client, s.app, logger)
	s.bookCtrl = booking.NewOrchestrator(s.client, s.app, s.gateway, cfg.Checkout.Currency, logger)
	s.authCtrl = auth.NewController(s.client, s.app, st, logger)
	s.assistant = chat.NewAssistant(s.client, s.app, st, logger)

	s.authCtrl.Rehydrate()
	s.assistant.Rehydrate()

	return s, nil
}

// setupStore picks the state backend: Redis when configured, local files
// otherwise.
func (s *Server) setupStore() (store.Store, error) {
	if addr := s.cfg.State.RedisAddr; addr != "" {
		s.logger.Info("Using Redis state store", zap.String("addr", addr))
		return store.NewRedisStore(addr, "voyagent", s.logger), nil
	}
	s.logger.Info("Using file state store", zap.String("dir", s.cfg.State.Dir))
	return store.NewFileStore(s.cfg.State.Dir, s.logger)
}

// HTTPServer creates and configures the HTTP server. The write timeout is
// generous because a booking request stays open for the whole hosted
// checkout.
func (s *Server) HTTPServer() *http.Server {
	return &http.Server{
		Addr:         ":" + s.cfg.ServerPort,
		Handler:      s.router,
		IdleTimeout:  time.Minute,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 15 * time.Minute,
	}
}

// SetRouter sets the HTTP router/handler.
func (s *Server) SetRouter(router http.Handler) {
	s.router = router
}

// GetLogger returns the logger instance.
func (s *Server) GetLogger() *zap.Logger { return s.logger }

// GetConfig returns the configuration.
func (s *Server) GetConfig() *config.Config { return s.cfg }
