package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.uber.org/zap"

	"github.com/voyagent/voyagent/internal/chat"
	"github.com/voyagent/voyagent/internal/models"
	"github.com/voyagent/voyagent/internal/observability/metrics"
	"github.com/voyagent/voyagent/internal/state"
)

type ChatHandlers struct {
	assistant *chat.Assistant
	app       *state.App
	logger    *zap.Logger
}

func NewChatHandlers(assistant *chat.Assistant, app *state.App, logger *zap.Logger) *ChatHandlers {
	return &ChatHandlers{assistant: assistant, app: app, logger: logger}
}

type chatMessageForm struct {
	Message string `form:"message" json:"message"`
}

// SendMessage handles POST /chat/messages.
func (h *ChatHandlers) SendMessage(c *gin.Context) {
	var form chatMessageForm
	if err := c.ShouldBind(&form); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "unreadable request body"})
		return
	}

	outcome, err := h.assistant.Send(c.Request.Context(), form.Message)
	if err != nil {
		respondError(c, err)
		return
	}

	metrics.Get().ChatMessagesTotal.Add(c.Request.Context(), 1,
		metric.WithAttributes(attribute.Bool("degraded", outcome.Degraded)))

	c.JSON(http.StatusOK, gin.H{
		"success":     true,
		"message":     presentMessage(outcome.AssistantMessage),
		"suggestions": outcome.Suggestions,
		"degraded":    outcome.Degraded,
	})
}

// History handles GET /chat/history, seeding the welcome message into an
// empty conversation first.
func (h *ChatHandlers) History(c *gin.Context) {
	var suggestions []string
	if outcome, seeded := h.assistant.Welcome(); seeded {
		suggestions = outcome.Suggestions
	}

	log := h.assistant.History()
	messages := make([]gin.H, 0, len(log))
	for _, msg := range log {
		messages = append(messages, presentMessage(msg))
	}

	c.JSON(http.StatusOK, gin.H{
		"success":     true,
		"messages":    messages,
		"suggestions": suggestions,
	})
}

// ClearHistory handles DELETE /chat/history.
func (h *ChatHandlers) ClearHistory(c *gin.Context) {
	if err := h.assistant.ClearHistory(); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// Action handles POST /chat/action for assistant card buttons.
func (h *ChatHandlers) Action(c *gin.Context) {
	var action models.CardAction
	if err := c.ShouldBindJSON(&action); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "unreadable action payload"})
		return
	}

	outcome, err := chat.ApplyAction(h.app, action, h.logger)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}

	resp := gin.H{"success": true}
	if outcome.SwitchedTab != "" {
		resp["activeTab"] = outcome.SwitchedTab
		resp["prefill"] = outcome.Prefilled
	}
	if outcome.NavigateURL != "" {
		resp["navigate"] = outcome.NavigateURL
	}
	c.JSON(http.StatusOK, resp)
}

type quickActionForm struct {
	Action string `form:"action" json:"action"`
}

// QuickAction handles POST /chat/quick-action: canned replies for the quick
// buttons under the input, no backend round trip.
func (h *ChatHandlers) QuickAction(c *gin.Context) {
	var form quickActionForm
	if err := c.ShouldBind(&form); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "unreadable request body"})
		return
	}

	outcome, err := h.assistant.QuickReply(form.Action)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": presentMessage(outcome.AssistantMessage),
	})
}

// presentMessage adds the display form alongside the raw content. Only text
// gets formatting; cards and lists render client-side from the structure.
func presentMessage(msg models.ChatMessage) gin.H {
	out := gin.H{
		"id":        msg.ID,
		"sender":    msg.Sender,
		"content":   msg.Content,
		"timestamp": msg.Timestamp,
	}
	if msg.Content.Kind == models.ContentText {
		out["html"] = chat.FormatMessage(msg.Content.Text)
	}
	return out
}
