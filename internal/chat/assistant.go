// Package chat drives the assistant conversation: an insertion-ordered log,
// a context snapshot on every send, and graceful degradation when the
// backend is unreachable.
package chat

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	ahocorasick "github.com/petar-dambovaliev/aho-corasick"
	"go.uber.org/zap"

	"github.com/voyagent/voyagent/internal/api"
	"github.com/voyagent/voyagent/internal/models"
	"github.com/voyagent/voyagent/internal/search"
	"github.com/voyagent/voyagent/internal/state"
	"github.com/voyagent/voyagent/internal/store"
)

const (
	welcomeText = "Hi! I'm your travel assistant. I can help you find flights, hotels and local transport. What are you planning?"

	// apologyText is shown in place of a reply when the assistant backend is
	// unreachable. The user's message stays in the log.
	apologyText = "Sorry, I'm having trouble responding right now. Please try again in a moment."
)

var welcomeSuggestions = []string{
	"Find flights to Goa",
	"Hotels in Mumbai",
	"Book a cab",
}

// quickReplies are canned assistant responses for the quick-action buttons.
// They never reach the backend.
var quickReplies = map[string]string{
	"search_flights":     "I can help you search for flights. Where would you like to go?",
	"search_hotels":      "I can help you find hotels. What destination are you looking for?",
	"search_transport":   "I can help you book transportation. Where do you need to go?",
	"travel_tips":        "Here are some travel tips:\n\n• Book flights 2-3 months in advance for best prices\n• Check visa requirements for your destination\n• Pack light and bring essential documents\n• Research local customs and culture\n• Get travel insurance for peace of mind",
	"weather_info":       "I can help you check the weather for your destination. Which city would you like to know about?",
	"currency_converter": "I can help you convert currencies. What amount and currencies do you need to convert?",
}

// Backend is the slice of the API client the assistant needs.
type Backend interface {
	Chat(ctx context.Context, req api.ChatRequest, token string) (*models.ChatReply, error)
}

var _ Backend = (*api.Client)(nil)

type Assistant struct {
	backend Backend
	app     *state.App
	store   store.Store
	cities  ahocorasick.AhoCorasick
	names   []string
	logger  *zap.Logger
}

func NewAssistant(backend Backend, app *state.App, st store.Store, logger *zap.Logger) *Assistant {
	if logger == nil {
		logger = zap.NewNop()
	}

	names := search.KnownCities()
	sort.Strings(names)
	builder := ahocorasick.NewAhoCorasickBuilder(ahocorasick.Opts{
		AsciiCaseInsensitive: true,
		MatchOnlyWholeWords:  true,
		MatchKind:            ahocorasick.LeftMostLongestMatch,
	})

	return &Assistant{
		backend: backend,
		app:     app,
		store:   st,
		cities:  builder.Build(names),
		names:   names,
		logger:  logger,
	}
}

// SendOutcome is the log delta one send produced.
type SendOutcome struct {
	UserMessage      models.ChatMessage
	AssistantMessage models.ChatMessage
	Suggestions      []string
	Degraded         bool
}

// Send appends the user's message, asks the backend with a fresh context
// snapshot, and appends the reply. A backend failure degrades to a canned
// apology instead of surfacing an error: the conversation must survive
// backend downtime.
func (a *Assistant) Send(ctx context.Context, text string) (*SendOutcome, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, &models.ValidationError{Fields: []string{"message"}}
	}

	userMsg := models.ChatMessage{
		ID:        uuid.New(),
		Sender:    models.SenderUser,
		Content:   models.TextContent(text),
		Timestamp: time.Now(),
	}
	a.persist(a.app.AppendChatMessage(userMsg))

	session := a.app.Session()
	reply, err := a.backend.Chat(ctx, api.ChatRequest{
		Message: text,
		Context: a.snapshot(session),
	}, session.Token)

	out := &SendOutcome{UserMessage: userMsg}
	if err != nil || !reply.Success {
		if err != nil {
			a.logger.Warn("Assistant backend unavailable", zap.Error(err))
		} else {
			a.logger.Warn("Assistant backend declined the message")
		}
		out.Degraded = true
		out.AssistantMessage = models.ChatMessage{
			ID:        uuid.New(),
			Sender:    models.SenderAssistant,
			Content:   models.TextContent(apologyText),
			Timestamp: time.Now(),
		}
	} else {
		out.AssistantMessage = models.ChatMessage{
			ID:        uuid.New(),
			Sender:    models.SenderAssistant,
			Content:   reply.Response,
			Timestamp: time.Now(),
		}
		out.Suggestions = reply.Suggestions
	}

	a.persist(a.app.AppendChatMessage(out.AssistantMessage))
	return out, nil
}

// snapshot captures the ambient state the backend personalizes on.
func (a *Assistant) snapshot(session models.Session) models.ChatContext {
	return models.ChatContext{
		CurrentPage:     "home",
		CurrentSearch:   a.app.ActiveTab().String(),
		UserPreferences: session.User.Preferences,
		MentionedCities: a.MentionedCities(a.recentText()),
		Timestamp:       time.Now().Format(time.RFC3339),
	}
}

// MentionedCities scans text for known city names, deduplicated in first-
// mention order.
func (a *Assistant) MentionedCities(text string) []string {
	if text == "" {
		return nil
	}
	seen := make(map[string]bool)
	var cities []string
	for _, m := range a.cities.FindAll(text) {
		name := a.names[m.Pattern()]
		if !seen[name] {
			seen[name] = true
			cities = append(cities, name)
		}
	}
	return cities
}

// recentText concatenates the last few user messages, newest last.
func (a *Assistant) recentText() string {
	log := a.app.ChatLog()
	var parts []string
	for _, msg := range log {
		if msg.Sender == models.SenderUser && msg.Content.Kind == models.ContentText {
			parts = append(parts, msg.Content.Text)
		}
	}
	if len(parts) > 5 {
		parts = parts[len(parts)-5:]
	}
	return strings.Join(parts, "\n")
}

// Welcome seeds an empty conversation with the greeting. Idempotent: a log
// with any content is left alone.
func (a *Assistant) Welcome() (*SendOutcome, bool) {
	if len(a.app.ChatLog()) > 0 {
		return nil, false
	}
	msg := models.ChatMessage{
		ID:        uuid.New(),
		Sender:    models.SenderAssistant,
		Content:   models.TextContent(welcomeText),
		Timestamp: time.Now(),
	}
	a.persist(a.app.AppendChatMessage(msg))
	return &SendOutcome{AssistantMessage: msg, Suggestions: welcomeSuggestions}, true
}

// QuickReply appends the canned response for a quick-action button. Unknown
// actions are a validation error, not a backend round trip.
func (a *Assistant) QuickReply(action string) (*SendOutcome, error) {
	text, ok := quickReplies[action]
	if !ok {
		return nil, &models.ValidationError{Fields: []string{"action"}}
	}
	msg := models.ChatMessage{
		ID:        uuid.New(),
		Sender:    models.SenderAssistant,
		Content:   models.TextContent(text),
		Timestamp: time.Now(),
	}
	a.persist(a.app.AppendChatMessage(msg))
	return &SendOutcome{AssistantMessage: msg}, nil
}

func (a *Assistant) History() []models.ChatMessage {
	return a.app.ChatLog()
}

func (a *Assistant) ClearHistory() error {
	a.app.ClearChatLog()
	return a.store.Delete(store.KeyChatHistory)
}

// Rehydrate restores the persisted conversation at startup. Malformed
// history is discarded, not fatal.
func (a *Assistant) Rehydrate() bool {
	var log []models.ChatMessage
	if !store.GetJSON(a.store, a.logger, store.KeyChatHistory, &log) {
		return false
	}
	a.app.SetChatLog(log)
	a.logger.Info("Chat history rehydrated", zap.Int("messages", len(log)))
	return true
}

func (a *Assistant) persist(log []models.ChatMessage) {
	if err := store.SetJSON(a.store, store.KeyChatHistory, log); err != nil {
		a.logger.Warn("Persisting chat history failed", zap.Error(err))
	}
}
