package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/clubos/community-backend/internal/config"
	"github.com/clubos/community-backend/internal/models"
)

// EventSyncer periodically mirrors the external calendar's events into the
// local events table. It lives outside the gateway's concurrency contract:
// its only shared resource is the database.
type EventSyncer struct {
	db       *gorm.DB
	cfg      *config.Config
	client   *http.Client
	interval time.Duration
}

func NewEventSyncer(db *gorm.DB, cfg *config.Config) *EventSyncer {
	return &EventSyncer{
		db:       db,
		cfg:      cfg,
		client:   &http.Client{Timeout: 30 * time.Second},
		interval: cfg.LumaSyncInterval,
	}
}

// Start launches the sync loop. It runs one sync immediately, then on every
// tick until done closes.
func (s *EventSyncer) Start(done chan struct{}) {
	if s.cfg.LumaAPIKey == "" {
		slog.Info("event sync disabled, no calendar API key")
		return
	}
	go func() {
		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()

		s.runOnce()
		for {
			select {
			case <-ticker.C:
				s.runOnce()
			case <-done:
				return
			}
		}
	}()
}

func (s *EventSyncer) runOnce() {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	n, err := s.SyncOnce(ctx)
	if err != nil {
		slog.Error("event sync failed", "error", err)
		return
	}
	slog.Info("event sync completed", "events", n)
}

type lumaEventEntry struct {
	Event struct {
		APIID   string    `json:"api_id"`
		Name    string    `json:"name"`
		URL     string    `json:"url"`
		StartAt time.Time `json:"start_at"`
		EndAt   time.Time `json:"end_at"`
	} `json:"event"`
}

type lumaListResponse struct {
	Entries []lumaEventEntry `json:"entries"`
}

// SyncOnce fetches the calendar's events and upserts them by external id.
func (s *EventSyncer) SyncOnce(ctx context.Context) (int, error) {
	endpoint := fmt.Sprintf("%s/calendar/list-events?calendar_api_id=%s",
		s.cfg.LumaAPIURL, url.QueryEscape(s.cfg.LumaCalendarID))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return 0, fmt.Errorf("build calendar request: %w", err)
	}
	req.Header.Set("x-luma-api-key", s.cfg.LumaAPIKey)

	resp, err := s.client.Do(req)
	if err != nil {
		return 0, fmt.Errorf("fetch calendar events: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("calendar API returned %d", resp.StatusCode)
	}

	var list lumaListResponse
	if err := json.NewDecoder(resp.Body).Decode(&list); err != nil {
		return 0, fmt.Errorf("decode calendar events: %w", err)
	}

	for _, entry := range list.Entries {
		event := models.Event{
			ID:          uuid.New(),
			LumaEventID: entry.Event.APIID,
			Name:        entry.Event.Name,
			URL:         entry.Event.URL,
			StartsAt:    entry.Event.StartAt,
			EndsAt:      entry.Event.EndAt,
		}
		err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "luma_event_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"name", "url", "starts_at", "ends_at", "updated_at"}),
		}).Create(&event).Error
		if err != nil {
			return 0, fmt.Errorf("upsert event %s: %w", entry.Event.APIID, err)
		}
	}
	return len(list.Entries), nil
}
