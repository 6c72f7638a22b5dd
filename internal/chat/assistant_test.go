package chat

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/voyagent/voyagent/internal/api"
	"github.com/voyagent/voyagent/internal/models"
	"github.com/voyagent/voyagent/internal/state"
	"github.com/voyagent/voyagent/internal/store"
)

type memStore struct {
	data map[string][]byte
}

func newMemStore() *memStore { return &memStore{data: map[string][]byte{}} }

func (m *memStore) Get(key string) ([]byte, bool) {
	v, ok := m.data[key]
	return v, ok
}

func (m *memStore) Set(key string, value []byte) error {
	m.data[key] = value
	return nil
}

func (m *memStore) Delete(key string) error {
	delete(m.data, key)
	return nil
}

type fakeChatBackend struct {
	reply   *models.ChatReply
	err     error
	lastReq *api.ChatRequest
	token   string
}

func (f *fakeChatBackend) Chat(ctx context.Context, req api.ChatRequest, token string) (*models.ChatReply, error) {
	f.lastReq = &req
	f.token = token
	if f.err != nil {
		return nil, f.err
	}
	return f.reply, nil
}

func textReply(s string) *models.ChatReply {
	return &models.ChatReply{Success: true, Response: models.TextContent(s), Suggestions: []string{"More ideas"}}
}

func TestAssistant_Send(t *testing.T) {
	t.Run("blank messages are rejected locally", func(t *testing.T) {
		a := NewAssistant(&fakeChatBackend{}, state.NewApp(nil), newMemStore(), nil)
		_, err := a.Send(context.Background(), "   ")
		var verr *models.ValidationError
		assert.ErrorAs(t, err, &verr)
	})

	t.Run("a reply lands in the log in order and is persisted", func(t *testing.T) {
		st := newMemStore()
		app := state.NewApp(nil)
		backend := &fakeChatBackend{reply: textReply("Goa is lovely in winter.")}
		a := NewAssistant(backend, app, st, nil)

		out, err := a.Send(context.Background(), "tell me about goa")
		require.NoError(t, err)
		assert.False(t, out.Degraded)
		assert.Equal(t, []string{"More ideas"}, out.Suggestions)

		log := app.ChatLog()
		require.Len(t, log, 2)
		assert.Equal(t, models.SenderUser, log[0].Sender)
		assert.Equal(t, models.SenderAssistant, log[1].Sender)
		assert.Equal(t, "Goa is lovely in winter.", log[1].Content.Text)

		var persisted []models.ChatMessage
		require.True(t, store.GetJSON(st, nil, store.KeyChatHistory, &persisted))
		assert.Len(t, persisted, 2)
	})

	t.Run("the context snapshot carries tab, token and mentioned cities", func(t *testing.T) {
		app := state.NewApp(nil)
		app.SetActiveTab(models.DomainHotels)
		app.SetSession(models.Session{Token: "tok_9", User: models.User{Preferences: map[string]any{"budget": "low"}}})
		backend := &fakeChatBackend{reply: textReply("ok")}
		a := NewAssistant(backend, app, newMemStore(), nil)

		_, err := a.Send(context.Background(), "flights from Delhi to Goa please")
		require.NoError(t, err)

		require.NotNil(t, backend.lastReq)
		assert.Equal(t, "tok_9", backend.token)
		assert.Equal(t, "hotels", backend.lastReq.Context.CurrentSearch)
		assert.Equal(t, "low", backend.lastReq.Context.UserPreferences["budget"])
		assert.Contains(t, backend.lastReq.Context.MentionedCities, "delhi")
		assert.Contains(t, backend.lastReq.Context.MentionedCities, "goa")
		assert.NotEmpty(t, backend.lastReq.Context.Timestamp)
	})

	t.Run("a success=false reply degrades to the apology too", func(t *testing.T) {
		app := state.NewApp(nil)
		a := NewAssistant(&fakeChatBackend{reply: &models.ChatReply{Success: false}}, app, newMemStore(), nil)

		out, err := a.Send(context.Background(), "anything there?")
		require.NoError(t, err)
		assert.True(t, out.Degraded)
		assert.Empty(t, out.Suggestions)

		log := app.ChatLog()
		require.Len(t, log, 2)
		assert.Equal(t, apologyText, log[1].Content.Text)
	})

	t.Run("a backend failure degrades to an apology, keeping the user message", func(t *testing.T) {
		app := state.NewApp(nil)
		a := NewAssistant(&fakeChatBackend{err: errors.New("upstream down")}, app, newMemStore(), nil)

		out, err := a.Send(context.Background(), "hello?")
		require.NoError(t, err)
		assert.True(t, out.Degraded)

		log := app.ChatLog()
		require.Len(t, log, 2)
		assert.Equal(t, "hello?", log[0].Content.Text)
		assert.Equal(t, apologyText, log[1].Content.Text)
	})
}

func TestAssistant_MentionedCities(t *testing.T) {
	a := NewAssistant(&fakeChatBackend{}, state.NewApp(nil), newMemStore(), nil)

	t.Run("matching is case-insensitive and whole-word", func(t *testing.T) {
		cities := a.MentionedCities("I want to fly from DELHI to Goa, not to Goalkeeper City")
		assert.Contains(t, cities, "delhi")
		assert.Contains(t, cities, "goa")
	})

	t.Run("mentions are deduplicated", func(t *testing.T) {
		cities := a.MentionedCities("goa goa goa")
		assert.Equal(t, []string{"goa"}, cities)
	})

	t.Run("no text, no cities", func(t *testing.T) {
		assert.Empty(t, a.MentionedCities(""))
	})
}

func TestAssistant_Welcome(t *testing.T) {
	app := state.NewApp(nil)
	a := NewAssistant(&fakeChatBackend{}, app, newMemStore(), nil)

	out, seeded := a.Welcome()
	require.True(t, seeded)
	assert.Equal(t, models.SenderAssistant, out.AssistantMessage.Sender)
	assert.NotEmpty(t, out.Suggestions)
	assert.Len(t, app.ChatLog(), 1)

	t.Run("welcome is idempotent", func(t *testing.T) {
		_, seededAgain := a.Welcome()
		assert.False(t, seededAgain)
		assert.Len(t, app.ChatLog(), 1)
	})
}

func TestAssistant_QuickReply(t *testing.T) {
	st := newMemStore()
	app := state.NewApp(nil)
	backend := &fakeChatBackend{}
	a := NewAssistant(backend, app, st, nil)

	t.Run("a known action gets a canned reply without a backend call", func(t *testing.T) {
		out, err := a.QuickReply("travel_tips")
		require.NoError(t, err)
		assert.Contains(t, out.AssistantMessage.Content.Text, "travel tips")
		assert.Nil(t, backend.lastReq)
		assert.Len(t, app.ChatLog(), 1)

		var persisted []models.ChatMessage
		require.True(t, store.GetJSON(st, nil, store.KeyChatHistory, &persisted))
		assert.Len(t, persisted, 1)
	})

	t.Run("an unknown action is rejected", func(t *testing.T) {
		_, err := a.QuickReply("time_travel")
		var verr *models.ValidationError
		assert.ErrorAs(t, err, &verr)
	})
}

func TestAssistant_HistoryLifecycle(t *testing.T) {
	st := newMemStore()
	app := state.NewApp(nil)
	backend := &fakeChatBackend{reply: textReply("noted")}
	a := NewAssistant(backend, app, st, nil)

	_, err := a.Send(context.Background(), "remember this")
	require.NoError(t, err)

	t.Run("a fresh assistant rehydrates the same log", func(t *testing.T) {
		app2 := state.NewApp(nil)
		a2 := NewAssistant(backend, app2, st, nil)
		require.True(t, a2.Rehydrate())
		assert.Len(t, a2.History(), 2)
		assert.Equal(t, "remember this", a2.History()[0].Content.Text)
	})

	t.Run("clearing removes memory and disk", func(t *testing.T) {
		require.NoError(t, a.ClearHistory())
		assert.Empty(t, a.History())
		_, ok := st.Get(store.KeyChatHistory)
		assert.False(t, ok)
	})
}
