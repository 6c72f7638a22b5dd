package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.uber.org/zap"

	"github.com/voyagent/voyagent/internal/auth"
	"github.com/voyagent/voyagent/internal/models"
	"github.com/voyagent/voyagent/internal/observability/metrics"
	"github.com/voyagent/voyagent/internal/state"
)

type AuthHandlers struct {
	controller *auth.Controller
	app        *state.App
	logger     *zap.Logger
}

func NewAuthHandlers(controller *auth.Controller, app *state.App, logger *zap.Logger) *AuthHandlers {
	return &AuthHandlers{controller: controller, app: app, logger: logger}
}

type loginForm struct {
	Email    string `form:"email" json:"email"`
	Password string `form:"password" json:"password"`
}

type signupForm struct {
	Name            string `form:"name" json:"name"`
	Email           string `form:"email" json:"email"`
	Password        string `form:"password" json:"password"`
	ConfirmPassword string `form:"confirmPassword" json:"confirmPassword"`
}

func (h *AuthHandlers) Login(c *gin.Context) {
	var form loginForm
	if err := c.ShouldBind(&form); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "unreadable request body"})
		return
	}

	metrics.Get().AuthRequestsTotal.Add(c.Request.Context(), 1,
		metric.WithAttributes(attribute.String("endpoint", "login")))

	session, err := h.controller.Login(c.Request.Context(), form.Email, form.Password)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"user":    session.User,
		"notification": models.NewNotification(models.NotifySuccess,
			"Welcome back, "+session.User.Name+"!"),
	})
}

func (h *AuthHandlers) Signup(c *gin.Context) {
	var form signupForm
	if err := c.ShouldBind(&form); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "unreadable request body"})
		return
	}

	metrics.Get().AuthRequestsTotal.Add(c.Request.Context(), 1,
		metric.WithAttributes(attribute.String("endpoint", "signup")))

	session, err := h.controller.Signup(c.Request.Context(),
		form.Name, form.Email, form.Password, form.ConfirmPassword)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"user":    session.User,
		"notification": models.NewNotification(models.NotifySuccess,
			"Account created. Welcome, "+session.User.Name+"!"),
	})
}

// Logout clears the session everywhere and tells the client to reload from
// scratch.
func (h *AuthHandlers) Logout(c *gin.Context) {
	if err := h.controller.Logout(); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "reload": true})
}

// Session reports the current session for page loads.
func (h *AuthHandlers) Session(c *gin.Context) {
	s := h.app.Session()
	c.JSON(http.StatusOK, gin.H{
		"authenticated": s.Authenticated(),
		"user":          s.User,
	})
}
