// Package state holds the mutable application state — result caches,
// session, chat log, active tab, prefill values — as one explicit object
// injected into controllers. Nothing here is ambient; tests build their own.
package state

import (
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/voyagent/voyagent/internal/models"
)

// resultTTL bounds how long a result set stays addressable for booking.
const resultTTL = 30 * time.Minute

type App struct {
	mu sync.RWMutex

	results  *TTLCache[[]models.Result]
	lastHTML map[models.Domain]string

	activeTab models.Domain
	prefill   map[models.Domain]map[string]string

	session models.Session
	chatLog []models.ChatMessage

	logger *zap.Logger
}

func NewApp(logger *zap.Logger) *App {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &App{
		results:   NewTTLCache[[]models.Result](resultTTL, "results", logger),
		lastHTML:  make(map[models.Domain]string),
		activeTab: models.DomainFlights,
		prefill:   make(map[models.Domain]map[string]string),
		logger:    logger,
	}
}

// SetResults replaces a domain's result cache wholesale. The previous set —
// and every booking reference into it — is gone after this.
func (a *App) SetResults(domain models.Domain, results []models.Result) {
	a.results.Set(domain.String(), results)
}

func (a *App) Results(domain models.Domain) ([]models.Result, bool) {
	return a.results.Get(domain.String())
}

func (a *App) ClearResults(domain models.Domain) {
	a.results.Delete(domain.String())
}

// SetRenderedHTML records the card markup last handed to the display layer.
// It exists solely for the degraded-mode scrape fallback.
func (a *App) SetRenderedHTML(domain models.Domain, html string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.lastHTML[domain] = html
}

func (a *App) RenderedHTML(domain models.Domain) string {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.lastHTML[domain]
}

func (a *App) SetActiveTab(domain models.Domain) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.activeTab = domain
}

func (a *App) ActiveTab() models.Domain {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.activeTab
}

// SetPrefill stores form values for a domain without submitting anything.
// The search controller's validation still runs on submit.
func (a *App) SetPrefill(domain models.Domain, values map[string]string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	merged := a.prefill[domain]
	if merged == nil {
		merged = make(map[string]string, len(values))
	}
	for k, v := range values {
		if v != "" {
			merged[k] = v
		}
	}
	a.prefill[domain] = merged
}

func (a *App) Prefill(domain models.Domain) map[string]string {
	a.mu.RLock()
	defer a.mu.RUnlock()
	out := make(map[string]string, len(a.prefill[domain]))
	for k, v := range a.prefill[domain] {
		out[k] = v
	}
	return out
}

func (a *App) SetSession(s models.Session) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.session = s
}

func (a *App) Session() models.Session {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.session
}

func (a *App) ClearSession() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.session = models.Session{}
}

// AppendChatMessage adds to the insertion-ordered conversation log and
// returns a snapshot of the full log for persistence.
func (a *App) AppendChatMessage(msg models.ChatMessage) []models.ChatMessage {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.chatLog = append(a.chatLog, msg)
	return append([]models.ChatMessage(nil), a.chatLog...)
}

func (a *App) ChatLog() []models.ChatMessage {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return append([]models.ChatMessage(nil), a.chatLog...)
}

func (a *App) SetChatLog(log []models.ChatMessage) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.chatLog = append([]models.ChatMessage(nil), log...)
}

func (a *App) ClearChatLog() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.chatLog = nil
}

// CacheMetricsSnapshot exposes result-cache counters for the metrics layer.
func (a *App) CacheMetricsSnapshot() CacheMetrics {
	return a.results.Metrics()
}
