package mutation

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"gorm.io/gorm"

	"github.com/clubos/community-backend/internal/metrics"
)

// Request is one mutation envelope in a batch. IDs echo back to the client
// so its optimistic cache can reconcile.
type Request struct {
	ID       int64           `json:"id"`
	ClientID string          `json:"clientId"`
	Name     string          `json:"name"`
	Args     json.RawMessage `json:"args"`
}

// ResultID identifies which request a result belongs to.
type ResultID struct {
	ID       int64  `json:"id"`
	ClientID string `json:"clientId"`
}

// ResultBody is either a data payload or an app-level error, never both.
type ResultBody struct {
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
	Message string `json:"message,omitempty"`
}

// Result is one entry in the batch response.
type Result struct {
	ID     ResultID   `json:"id"`
	Result ResultBody `json:"result"`
}

// Coordinator drives a batch through the registry, one transaction per
// mutation: a failing mutation rolls back alone and never aborts its
// siblings, and each outcome is reported independently. (The alternative,
// one transaction around the whole batch, would be a one-line change here;
// per-mutation isolation is the documented choice.)
type Coordinator struct {
	db       *gorm.DB
	registry *Registry
}

func NewCoordinator(db *gorm.DB, registry *Registry) *Coordinator {
	return &Coordinator{db: db, registry: registry}
}

// Execute applies the batch in array order. Business failures become result
// entries; anything unexpected (driver faults, handler bugs) escalates as an
// error so the gateway can answer with a batch-level 500.
func (c *Coordinator) Execute(ctx context.Context, ec *Context, batch []Request) ([]Result, error) {
	results := make([]Result, 0, len(batch))

	for _, req := range batch {
		data, err := c.executeOne(ctx, ec, req)

		rid := ResultID{ID: req.ID, ClientID: req.ClientID}
		if err == nil {
			metrics.ObserveMutation(req.Name, "ok")
			results = append(results, Result{ID: rid, Result: ResultBody{Data: data}})
			continue
		}

		me, ok := AsError(err)
		if !ok {
			metrics.ObserveMutation(req.Name, "fault")
			return nil, fmt.Errorf("mutation %s: %w", req.Name, err)
		}

		metrics.ObserveMutation(req.Name, string(me.Kind))
		slog.Warn("mutation rejected",
			"subject", ec.Subject,
			"mutation", req.Name,
			"outcome", string(me.Kind),
			"error", me.Message,
		)
		results = append(results, Result{ID: rid, Result: ResultBody{Error: "app", Message: me.Message}})
	}

	return results, nil
}

func (c *Coordinator) executeOne(ctx context.Context, ec *Context, req Request) (any, error) {
	m, err := c.registry.Lookup(req.Name)
	if err != nil {
		return nil, err
	}

	// Schema check happens before any database access.
	if err := m.ValidateArgs(ctx, req.Args); err != nil {
		return nil, err
	}

	var data any
	err = c.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var herr error
		data, herr = m.Handler(tx, ec, req.Args)
		return herr
	})
	if err != nil {
		ec.dropAfterCommit()
		return nil, err
	}

	ec.runAfterCommit()
	return data, nil
}
