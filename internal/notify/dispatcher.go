package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/your-org/amber/internal/models"
	"github.com/your-org/amber/internal/observability"
)

// TokenStore supplies push targets and records fan-out outcomes.
type TokenStore interface {
	ActiveDeviceTokens(ctx context.Context) ([]string, error)
	AppendNotification(ctx context.Context, personID string, outcome models.NotificationOutcome) error
}

// Dispatcher fans a missing-person alert out to every registered device.
type Dispatcher struct {
	client PushClient
	store  TokenStore
}

func NewDispatcher(client PushClient, store TokenStore) *Dispatcher {
	return &Dispatcher{client: client, store: store}
}

// Dispatch sends a push for the person to all active non-test tokens.
// With no registered targets the send is simulated so the pipeline and
// the audit trail behave identically in empty environments.
func (d *Dispatcher) Dispatch(ctx context.Context, p *models.MissingPerson) (*models.NotificationOutcome, error) {
	tokens, err := d.store.ActiveDeviceTokens(ctx)
	if err != nil {
		return nil, fmt.Errorf("load push targets: %w", err)
	}
	return d.DispatchTo(ctx, p, tokens)
}

// DispatchTo sends a push for the person to an explicit token list, used by
// the manual notification endpoint. Per-target failures are captured in the
// outcome rather than aborting the remaining sends.
func (d *Dispatcher) DispatchTo(ctx context.Context, p *models.MissingPerson, tokens []string) (*models.NotificationOutcome, error) {
	outcome := &models.NotificationOutcome{}

	if len(tokens) == 0 {
		outcome.TargetCount = 1
		outcome.SuccessCount = 1
		outcome.Simulated = true
		slog.Info("no push targets registered, simulating send", "person_id", p.ID)
	} else {
		title, body := alertText(p)
		data := alertData(p)

		outcome.TargetCount = len(tokens)
		for i, token := range tokens {
			if err := d.client.Send(ctx, token, title, body, data); err != nil {
				outcome.Failures = append(outcome.Failures, models.PushFailure{
					TargetIndex: i,
					Reason:      err.Error(),
				})
				observability.PushFailed.Inc()
				slog.Warn("push send failed", "person_id", p.ID, "target", i, "error", err)
				continue
			}
			outcome.SuccessCount++
			observability.PushSent.Inc()
		}
	}

	if err := d.store.AppendNotification(ctx, p.ID, *outcome); err != nil {
		return outcome, fmt.Errorf("append notification audit: %w", err)
	}
	return outcome, nil
}

func alertText(p *models.MissingPerson) (title, body string) {
	if p.Priority == models.PriorityHigh {
		title = "🚨 긴급 실종자 알림"
	} else {
		title = "실종자 알림"
	}
	body = fmt.Sprintf("%s (%s세) - %s", p.Name, ageLabel(p.Age), p.Location)
	return title, body
}

func ageLabel(age int) string {
	if age <= 0 {
		return "미상"
	}
	return strconv.Itoa(age)
}

// alertData builds the data payload the mobile client renders from. All
// values must be strings for FCM.
func alertData(p *models.MissingPerson) map[string]string {
	riskJSON, _ := json.Marshal(p.RiskFactors)

	color := "#FF9500"
	if p.Priority == models.PriorityHigh {
		color = "#FF3B30"
	}

	return map[string]string{
		"person_id":    p.ID,
		"name":         p.Name,
		"age":          strconv.Itoa(p.Age),
		"location":     p.Location,
		"priority":     string(p.Priority),
		"risk_factors": string(riskJSON),
		"category":     p.Category,
		"lat":          strconv.FormatFloat(p.Lat, 'f', -1, 64),
		"lng":          strconv.FormatFloat(p.Lng, 'f', -1, 64),
		"color":        color,
	}
}
