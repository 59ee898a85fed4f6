package mutation

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/qri-io/jsonschema"
	"gorm.io/gorm"

	"github.com/clubos/community-backend/internal/models"
)

// HandlerFunc is the authorization-and-write logic bound to one mutation
// name. It runs inside a transaction; args have already passed schema
// validation.
type HandlerFunc func(tx *gorm.DB, ec *Context, args json.RawMessage) (any, error)

// Notifier is the outbound side-effect surface handlers may schedule work on
// (always via Context.Defer, never inside the transaction).
type Notifier interface {
	DemoSlotStatusChanged(slot models.DemoSlot, email string)
}

// Env carries the collaborators handlers need beyond the transactional DB
// handle.
type Env struct {
	Notifier Notifier
}

// Mutation is one registered (name, validator, handler) entry.
type Mutation struct {
	Name    string
	schema  *jsonschema.Schema
	Handler HandlerFunc
}

// ValidateArgs checks args against the mutation's input schema. A violation
// is a client-input error raised before any database access.
func (m *Mutation) ValidateArgs(ctx context.Context, args json.RawMessage) error {
	if len(args) == 0 {
		args = json.RawMessage(`{}`)
	}
	keyErrs, err := m.schema.ValidateBytes(ctx, args)
	if err != nil {
		return Invalid("invalid arguments: %v", err)
	}
	if len(keyErrs) > 0 {
		msgs := make([]string, 0, len(keyErrs))
		for _, ke := range keyErrs {
			msgs = append(msgs, ke.Error())
		}
		return Invalid("invalid arguments: %s", strings.Join(msgs, "; "))
	}
	return nil
}

// Registry is the static name → mutation map, populated once at startup.
type Registry struct {
	mutations map[string]*Mutation
}

// NewRegistry builds the full mutation table. Adding an entity operation
// means adding exactly one register call here.
func NewRegistry(env *Env) *Registry {
	r := &Registry{mutations: make(map[string]*Mutation)}

	r.register("profiles.create", profileCreateSchema, profilesCreate)
	r.register("profiles.update", profileUpdateSchema, profilesUpdate)
	r.register("projects.create", projectCreateSchema, projectsCreate)
	r.register("projects.update", projectUpdateSchema, projectsUpdate)
	r.register("projects.delete", projectDeleteSchema, projectsDelete)
	r.register("attendance.checkIn", attendanceCheckInSchema, attendanceCheckIn)
	r.register("surveyResponses.submit", surveyResponseSubmitSchema, surveyResponsesSubmit)
	r.register("demoSlots.request", demoSlotRequestSchema, demoSlotsRequest)
	r.register("demoSlots.updateStatus", demoSlotUpdateStatusSchema, func(tx *gorm.DB, ec *Context, args json.RawMessage) (any, error) {
		return demoSlotsUpdateStatus(env, tx, ec, args)
	})

	return r
}

func (r *Registry) register(name, schema string, h HandlerFunc) {
	if _, exists := r.mutations[name]; exists {
		panic(fmt.Sprintf("mutation %q registered twice", name))
	}
	r.mutations[name] = &Mutation{Name: name, schema: mustSchema(name, schema), Handler: h}
}

// Lookup resolves a mutation by name. A miss is a hard per-mutation error,
// never silently ignored.
func (r *Registry) Lookup(name string) (*Mutation, error) {
	m, ok := r.mutations[name]
	if !ok {
		return nil, UnknownMutation(name)
	}
	return m, nil
}

// Names returns the registered mutation names (for diagnostics).
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.mutations))
	for name := range r.mutations {
		names = append(names, name)
	}
	return names
}

func mustSchema(name, raw string) *jsonschema.Schema {
	rs := &jsonschema.Schema{}
	if err := json.Unmarshal([]byte(raw), rs); err != nil {
		panic(fmt.Sprintf("mutation %q: bad input schema: %v", name, err))
	}
	return rs
}
