// Package auth owns login, signup, logout and session rehydration. The
// session is write-through: memory and the store change together, so a crash
// between them cannot leave a half-authenticated state on disk.
package auth

import (
	"context"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"

	"github.com/voyagent/voyagent/internal/api"
	"github.com/voyagent/voyagent/internal/models"
	"github.com/voyagent/voyagent/internal/state"
	"github.com/voyagent/voyagent/internal/store"
)

// Backend is the slice of the API client the auth flow needs.
type Backend interface {
	Login(ctx context.Context, req api.LoginRequest) (*api.AuthResponse, error)
	Signup(ctx context.Context, req api.SignupRequest) (*api.AuthResponse, error)
}

var _ Backend = (*api.Client)(nil)

type Controller struct {
	backend Backend
	app     *state.App
	store   store.Store
	logger  *zap.Logger
}

func NewController(backend Backend, app *state.App, st store.Store, logger *zap.Logger) *Controller {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Controller{backend: backend, app: app, store: st, logger: logger}
}

func (c *Controller) Login(ctx context.Context, email, password string) (models.Session, error) {
	var missing []string
	if email == "" {
		missing = append(missing, "email")
	}
	if password == "" {
		missing = append(missing, "password")
	}
	if len(missing) > 0 {
		return models.Session{}, &models.ValidationError{Fields: missing}
	}

	resp, err := c.backend.Login(ctx, api.LoginRequest{Email: email, Password: password})
	if err != nil {
		return models.Session{}, err
	}
	if !resp.Success || resp.Token == "" {
		return models.Session{}, models.ErrUnauthenticated
	}

	return c.establish(models.Session{Token: resp.Token, User: resp.User})
}

func (c *Controller) Signup(ctx context.Context, name, email, password, confirm string) (models.Session, error) {
	var missing []string
	if name == "" {
		missing = append(missing, "name")
	}
	if email == "" {
		missing = append(missing, "email")
	}
	if password == "" {
		missing = append(missing, "password")
	}
	if confirm == "" {
		missing = append(missing, "confirmPassword")
	}
	if len(missing) > 0 {
		return models.Session{}, &models.ValidationError{Fields: missing}
	}
	if password != confirm {
		return models.Session{}, &models.ValidationError{Fields: []string{"confirmPassword"}}
	}

	resp, err := c.backend.Signup(ctx, api.SignupRequest{Name: name, Email: email, Password: password})
	if err != nil {
		return models.Session{}, err
	}
	if !resp.Success || resp.Token == "" {
		return models.Session{}, models.ErrUnauthenticated
	}

	return c.establish(models.Session{Token: resp.Token, User: resp.User})
}

// establish makes a session current, persisting before returning.
func (c *Controller) establish(s models.Session) (models.Session, error) {
	if err := c.store.Set(store.KeyAuthToken, []byte(s.Token)); err != nil {
		return models.Session{}, err
	}
	if err := store.SetJSON(c.store, store.KeyUserData, s.User); err != nil {
		return models.Session{}, err
	}
	c.app.SetSession(s)
	c.logger.Info("Session established",
		zap.String("user_id", s.User.ID.String()),
		zap.String("email", s.User.Email))
	return s, nil
}

// Logout drops the session from memory and from the store. Chat history is
// not part of the session and survives.
func (c *Controller) Logout() error {
	c.app.ClearSession()
	if err := c.store.Delete(store.KeyAuthToken); err != nil {
		return err
	}
	if err := c.store.Delete(store.KeyUserData); err != nil {
		return err
	}
	c.logger.Info("Session cleared")
	return nil
}

// Rehydrate restores the persisted session at startup. An expired or
// unreadable token means starting signed out; it never blocks startup.
func (c *Controller) Rehydrate() bool {
	raw, ok := c.store.Get(store.KeyAuthToken)
	if !ok || len(raw) == 0 {
		return false
	}
	token := string(raw)

	if expired(token) {
		c.logger.Info("Persisted token expired, discarding session")
		_ = c.store.Delete(store.KeyAuthToken)
		_ = c.store.Delete(store.KeyUserData)
		return false
	}

	var user models.User
	if !store.GetJSON(c.store, c.logger, store.KeyUserData, &user) {
		_ = c.store.Delete(store.KeyAuthToken)
		return false
	}

	c.app.SetSession(models.Session{Token: token, User: user})
	c.logger.Info("Session rehydrated", zap.String("user_id", user.ID.String()))
	return true
}

// expired reports whether token is a JWT whose exp claim has passed. The
// signature is not checked here: only the backend verifies tokens, the
// client just avoids presenting one it knows is dead. Opaque tokens pass.
func expired(token string) bool {
	parsed, _, err := jwt.NewParser().ParseUnverified(token, jwt.MapClaims{})
	if err != nil {
		return false
	}
	exp, err := parsed.Claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}
	return exp.Before(time.Now())
}
