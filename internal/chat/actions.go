package chat

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/voyagent/voyagent/internal/models"
	"github.com/voyagent/voyagent/internal/state"
)

// ActionOutcome is the state change a card action produced. Actions switch
// tabs and prefill forms; they never submit a search on the user's behalf.
type ActionOutcome struct {
	SwitchedTab models.Domain
	Prefilled   map[string]string
	NavigateURL string
}

var actionDomains = map[string]models.Domain{
	models.ActionSearchFlights:   models.DomainFlights,
	models.ActionSearchHotels:    models.DomainHotels,
	models.ActionSearchTransport: models.DomainTransport,
}

// ApplyAction executes an assistant card action against app state.
func ApplyAction(app *state.App, action models.CardAction, logger *zap.Logger) (*ActionOutcome, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	if domain, ok := actionDomains[action.Type]; ok {
		app.SetActiveTab(domain)
		if len(action.Data) > 0 {
			app.SetPrefill(domain, action.Data)
		}
		logger.Info("Card action applied",
			zap.String("action", action.Type),
			zap.String("domain", domain.String()),
			zap.Int("prefill_fields", len(action.Data)))
		return &ActionOutcome{SwitchedTab: domain, Prefilled: action.Data}, nil
	}

	if action.Type == models.ActionNavigate {
		if action.URL == "" {
			return nil, fmt.Errorf("navigate action without url")
		}
		return &ActionOutcome{NavigateURL: action.URL}, nil
	}

	return nil, fmt.Errorf("unknown card action %q", action.Type)
}
