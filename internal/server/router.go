package server

import (
	"net/http"
	"time"

	ginzap "github.com/gin-contrib/zap"
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/voyagent/voyagent/internal/handlers"
	"github.com/voyagent/voyagent/internal/middleware"
)

// SetupRouter configures and returns the gin router with all middleware and
// routes.
func (s *Server) SetupRouter() *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()

	r.Use(ginzap.GinzapWithConfig(s.logger, &ginzap.Config{
		UTC:        true,
		TimeFormat: time.RFC3339,
		Context:    zapContextFunc(),
	}))
	r.Use(ginzap.RecoveryWithZap(s.logger, true))
	r.Use(middleware.OTELGinMiddleware("voyagent"))
	r.Use(middleware.CORSMiddleware())
	r.Use(middleware.SecurityMiddleware())

	s.setupRoutes(r)

	return r
}

func (s *Server) setupRoutes(r *gin.Engine) {
	searchH := handlers.NewSearchHandlers(s.searchCtrl, s.app, s.logger)
	bookingH := handlers.NewBookingHandlers(s.bookCtrl, s.gateway, s.logger)
	authH := handlers.NewAuthHandlers(s.authCtrl, s.app, s.logger)
	chatH := handlers.NewChatHandlers(s.assistant, s.app, s.logger)

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	r.POST("/search/:domain", searchH.Submit)
	r.POST("/search/tab/:domain", searchH.Tab)

	r.POST("/bookings/:domain/:id", bookingH.Book)
	r.POST("/checkout/:orderID/complete", bookingH.Complete)
	r.POST("/checkout/:orderID/cancel", bookingH.Cancel)
	r.POST("/checkout/:orderID/fail", bookingH.Fail)

	authGroup := r.Group("/auth")
	{
		authGroup.POST("/login", authH.Login)
		authGroup.POST("/signup", authH.Signup)
		authGroup.POST("/logout", authH.Logout)
		authGroup.GET("/session", authH.Session)
	}

	chatGroup := r.Group("/chat")
	{
		chatGroup.POST("/messages", chatH.SendMessage)
		chatGroup.GET("/history", chatH.History)
		chatGroup.DELETE("/history", chatH.ClearHistory)
		chatGroup.POST("/action", chatH.Action)
		chatGroup.POST("/quick-action", chatH.QuickAction)
	}

	if s.cfg.Debug {
		debugH := handlers.NewDebugHandlers(s.app, s.logger)
		r.POST("/debug/seed", debugH.Seed)
		r.GET("/debug/cache", debugH.Metrics)
	}
}

// zapContextFunc returns the zap context function for request logging.
func zapContextFunc() ginzap.Fn {
	return func(c *gin.Context) []zapcore.Field {
		fields := []zapcore.Field{}

		if requestID := c.Writer.Header().Get("X-Request-Id"); requestID != "" {
			fields = append(fields, zap.String("request_id", requestID))
		}

		if span := trace.SpanFromContext(c.Request.Context()); span.SpanContext().IsValid() {
			fields = append(fields,
				zap.String("trace_id", span.SpanContext().TraceID().String()),
				zap.String("span_id", span.SpanContext().SpanID().String()),
			)
		}

		return fields
	}
}
