package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

type Sender string

const (
	SenderUser      Sender = "user"
	SenderAssistant Sender = "assistant"
)

// ContentKind tags the variants of assistant-produced content.
type ContentKind string

const (
	ContentText ContentKind = "text"
	ContentCard ContentKind = "card"
	ContentList ContentKind = "list"
)

// CardAction is an action attached to an assistant card. Search actions
// carry prefill values for a search form; navigate carries a URL.
type CardAction struct {
	Type string            `json:"type"`
	URL  string            `json:"url,omitempty"`
	Data map[string]string `json:"data,omitempty"`
}

const (
	ActionSearchFlights   = "search_flights"
	ActionSearchHotels    = "search_hotels"
	ActionSearchTransport = "search_transport"
	ActionNavigate        = "navigate"
)

type ChatCard struct {
	Title       string      `json:"title,omitempty"`
	Image       string      `json:"image,omitempty"`
	Description string      `json:"description,omitempty"`
	ActionText  string      `json:"actionText,omitempty"`
	Action      *CardAction `json:"action,omitempty"`
}

// ChatContent is the tagged union of assistant message bodies: plain text,
// a card, or a list of items. On the wire text is a bare JSON string and the
// structured forms are {"type": ..., "data": ...}; both directions keep that
// shape so persisted history stays compatible.
type ChatContent struct {
	Kind ContentKind
	Text string
	Card *ChatCard
	List []string
}

func TextContent(s string) ChatContent { return ChatContent{Kind: ContentText, Text: s} }

func (c *ChatContent) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*c = TextContent(s)
		return nil
	}
	var envelope struct {
		Type string          `json:"type"`
		Data json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(data, &envelope); err != nil {
		return err
	}
	switch envelope.Type {
	case string(ContentCard):
		card := &ChatCard{}
		if err := json.Unmarshal(envelope.Data, card); err != nil {
			return err
		}
		*c = ChatContent{Kind: ContentCard, Card: card}
	case string(ContentList):
		var items []string
		if err := json.Unmarshal(envelope.Data, &items); err != nil {
			return err
		}
		*c = ChatContent{Kind: ContentList, List: items}
	default:
		return fmt.Errorf("unknown chat content type %q", envelope.Type)
	}
	return nil
}

func (c ChatContent) MarshalJSON() ([]byte, error) {
	switch c.Kind {
	case ContentCard:
		return json.Marshal(map[string]any{"type": ContentCard, "data": c.Card})
	case ContentList:
		return json.Marshal(map[string]any{"type": ContentList, "data": c.List})
	default:
		return json.Marshal(c.Text)
	}
}

// ChatMessage is one entry of the insertion-ordered conversation log.
type ChatMessage struct {
	ID        uuid.UUID   `json:"id"`
	Sender    Sender      `json:"sender"`
	Content   ChatContent `json:"content"`
	Timestamp time.Time   `json:"timestamp"`
}

// ChatContext is the ambient snapshot sent with every user message.
type ChatContext struct {
	CurrentPage     string         `json:"currentPage,omitempty"`
	CurrentSearch   string         `json:"currentSearch,omitempty"`
	UserPreferences map[string]any `json:"userPreferences,omitempty"`
	MentionedCities []string       `json:"mentionedCities,omitempty"`
	Timestamp       string         `json:"timestamp"`
}

// ChatReply is the backend response to /api/ai/chat.
type ChatReply struct {
	Success     bool        `json:"success"`
	Response    ChatContent `json:"response"`
	Suggestions []string    `json:"suggestions,omitempty"`
}
