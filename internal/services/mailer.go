package services

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/clubos/community-backend/internal/config"
	"github.com/clubos/community-backend/internal/models"
)

const resendEndpoint = "https://api.resend.com/emails"

type resendRequest struct {
	From    string   `json:"from"`
	To      []string `json:"to"`
	Subject string   `json:"subject"`
	Html    string   `json:"html,omitempty"`
}

// Mailer sends transactional email through the Resend API. The contract with
// the rest of the system is success/failure only; delivery problems are
// logged, never surfaced to a mutation.
type Mailer struct {
	apiKey string
	from   string
	client *http.Client
}

func NewMailer(cfg *config.Config) *Mailer {
	return &Mailer{
		apiKey: cfg.ResendAPIKey,
		from:   cfg.ResendFrom,
		client: &http.Client{Timeout: 10 * time.Second},
	}
}

// Send delivers one email. A non-2xx API answer is an error.
func (m *Mailer) Send(subject, html string, to []string) error {
	if m.apiKey == "" {
		slog.Info("mailer disabled, skipping email", "subject", subject)
		return nil
	}

	payload, err := json.Marshal(resendRequest{
		From:    m.from,
		To:      to,
		Subject: subject,
		Html:    html,
	})
	if err != nil {
		return fmt.Errorf("marshal email payload: %w", err)
	}

	req, err := http.NewRequest(http.MethodPost, resendEndpoint, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("build email request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+m.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := m.client.Do(req)
	if err != nil {
		return fmt.Errorf("send email: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return fmt.Errorf("email API returned %d: %s", resp.StatusCode, string(body))
	}
	return nil
}

// DemoSlotStatusChanged implements mutation.Notifier. It runs as a
// post-commit hook, so the send happens off the request path and only for
// persisted state.
func (m *Mailer) DemoSlotStatusChanged(slot models.DemoSlot, email string) {
	go func() {
		subject := fmt.Sprintf("Your demo slot is %s", slot.Status)
		html := fmt.Sprintf("<p>Your demo %q for event %s is now <strong>%s</strong>.</p>",
			slot.Title, slot.LumaEventID, slot.Status)
		if err := m.Send(subject, html, []string{email}); err != nil {
			slog.Error("demo slot notification failed", "slot", slot.ID, "error", err)
		}
	}()
}
