package models

// User is the backend-owned profile as returned by login/signup.
type User struct {
	ID          FlexID         `json:"id"`
	Name        string         `json:"name"`
	Email       string         `json:"email"`
	Preferences map[string]any `json:"preferences,omitempty"`
}

// Session is the authenticated state persisted across reloads. The token is
// opaque to the client; only the backend interprets it.
type Session struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

func (s Session) Authenticated() bool { return s.Token != "" }
