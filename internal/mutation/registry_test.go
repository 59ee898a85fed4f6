package mutation_test

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/clubos/community-backend/internal/mutation"
)

func TestLookupUnknownName(t *testing.T) {
	r := mutation.NewRegistry(&mutation.Env{})

	_, err := r.Lookup("widgets.frobnicate")
	if err == nil {
		t.Fatal("expected error for unknown mutation")
	}
	if !mutation.IsKind(err, mutation.KindUnknown) {
		t.Fatalf("expected unknown_mutation kind, got %v", err)
	}
}

func TestRegistryCoversAllOperations(t *testing.T) {
	r := mutation.NewRegistry(&mutation.Env{})

	want := []string{
		"profiles.create",
		"profiles.update",
		"projects.create",
		"projects.update",
		"projects.delete",
		"attendance.checkIn",
		"surveyResponses.submit",
		"demoSlots.request",
		"demoSlots.updateStatus",
	}
	for _, name := range want {
		if _, err := r.Lookup(name); err != nil {
			t.Errorf("missing mutation %s: %v", name, err)
		}
	}
	if got := len(r.Names()); got != len(want) {
		t.Fatalf("expected %d registered mutations, got %d", len(want), got)
	}
}

func TestValidateArgs(t *testing.T) {
	r := mutation.NewRegistry(&mutation.Env{})
	m, err := r.Lookup("demoSlots.updateStatus")
	if err != nil {
		t.Fatalf("lookup: %v", err)
	}

	cases := []struct {
		name string
		args string
		ok   bool
	}{
		{"valid", `{"id":"3e9c9f6e-0000-4000-8000-000000000000","status":"confirmed"}`, true},
		{"bad status value", `{"id":"3e9c9f6e-0000-4000-8000-000000000000","status":"maybe"}`, false},
		{"missing id", `{"status":"canceled"}`, false},
		{"unknown field", `{"id":"3e9c9f6e-0000-4000-8000-000000000000","status":"canceled","extra":1}`, false},
		{"empty body", ``, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := m.ValidateArgs(context.Background(), json.RawMessage(tc.args))
			if tc.ok && err != nil {
				t.Fatalf("expected valid, got %v", err)
			}
			if !tc.ok {
				if err == nil {
					t.Fatal("expected validation error")
				}
				if !mutation.IsKind(err, mutation.KindValidation) {
					t.Fatalf("expected validation kind, got %v", err)
				}
			}
		})
	}
}
