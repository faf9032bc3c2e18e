package services

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestInteractionAddValidation(t *testing.T) {
	env := newTestEnv(t)
	client := env.mustCreateClient(t, CreateClientInput{})
	record := env.mustCreateCase(t, client.ID, "Grievance")

	due := time.Now().Add(48 * time.Hour)
	_, err := env.interactions.Add(context.Background(), record.ID, CreateInteractionInput{
		PartyA:      PartyInput{Type: "ARGAN", Name: "Jo Bloggs"},
		PartyB:      PartyInput{Type: "ALIEN", Name: ""},
		ActionDueAt: &due,
	})
	var fieldErr *FieldValidationError
	if !errors.As(err, &fieldErr) {
		t.Fatalf("err = %v, want FieldValidationError", err)
	}
	got := map[string]bool{}
	for _, f := range fieldErr.Fields {
		got[f.Field] = true
	}
	for _, want := range []string{"party_b.type", "party_b.name", "content", "action_summary"} {
		if !got[want] {
			t.Errorf("missing field error %q in %v", want, fieldErr.Fields)
		}
	}
}

func TestInteractionTimelineOrder(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	client := env.mustCreateClient(t, CreateClientInput{})
	record := env.mustCreateCase(t, client.ID, "Grievance")

	later := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	earlier := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	if _, err := env.interactions.Add(ctx, record.ID, CreateInteractionInput{
		PartyA: PartyInput{Type: "ARGAN", Name: "Jo"}, PartyB: PartyInput{Type: "CLIENT", Name: "Sam"},
		Content: "second", OccurredAt: &later,
	}); err != nil {
		t.Fatalf("add: %v", err)
	}
	if _, err := env.interactions.Add(ctx, record.ID, CreateInteractionInput{
		PartyA: PartyInput{Type: "ARGAN", Name: "Jo"}, PartyB: PartyInput{Type: "CLIENT", Name: "Sam"},
		Content: "first", OccurredAt: &earlier,
	}); err != nil {
		t.Fatalf("add: %v", err)
	}

	timeline, err := env.interactions.ListByCase(ctx, record.ID)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(timeline) != 2 || timeline[0].Content != "first" || timeline[1].Content != "second" {
		t.Fatalf("timeline not ordered by occurred_at: %+v", timeline)
	}
}

func TestSetActiveActionSwap(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	client := env.mustCreateClient(t, CreateClientInput{})
	record := env.mustCreateCase(t, client.ID, "Grievance")
	first := env.mustAddInteraction(t, record.ID, "first")
	second := env.mustAddInteraction(t, record.ID, "second")

	flagged, err := env.interactions.SetActiveAction(ctx, first.ID)
	if err != nil {
		t.Fatalf("set active: %v", err)
	}
	if !flagged.IsActiveAction {
		t.Fatal("flag not set")
	}

	// Flagging the second clears the first in the same transaction.
	if _, err := env.interactions.SetActiveAction(ctx, second.ID); err != nil {
		t.Fatalf("swap: %v", err)
	}
	reloaded, err := env.interactions.Get(ctx, first.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if reloaded.IsActiveAction {
		t.Fatal("previous active action still flagged after swap")
	}

	count, err := env.repos.Interaction.CountActiveByCase(ctx, nil, record.ID)
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 1 {
		t.Fatalf("active actions = %d, want exactly 1", count)
	}
}

func TestActiveActionScopedToCase(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	client := env.mustCreateClient(t, CreateClientInput{})
	caseA := env.mustCreateCase(t, client.ID, "Case A")
	caseB := env.mustCreateCase(t, client.ID, "Case B")
	inA := env.mustAddInteraction(t, caseA.ID, "a")
	inB := env.mustAddInteraction(t, caseB.ID, "b")

	if _, err := env.interactions.SetActiveAction(ctx, inA.ID); err != nil {
		t.Fatalf("set: %v", err)
	}
	if _, err := env.interactions.SetActiveAction(ctx, inB.ID); err != nil {
		t.Fatalf("set: %v", err)
	}

	// Each case keeps its own flag.
	stillA, err := env.interactions.Get(ctx, inA.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if !stillA.IsActiveAction {
		t.Fatal("flag in case A cleared by a swap in case B")
	}
}

func TestUnsetActiveAction(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	client := env.mustCreateClient(t, CreateClientInput{})
	record := env.mustCreateCase(t, client.ID, "Grievance")
	interaction := env.mustAddInteraction(t, record.ID, "first")

	if _, err := env.interactions.SetActiveAction(ctx, interaction.ID); err != nil {
		t.Fatalf("set: %v", err)
	}
	cleared, err := env.interactions.UnsetActiveAction(ctx, interaction.ID)
	if err != nil {
		t.Fatalf("unset: %v", err)
	}
	if cleared.IsActiveAction {
		t.Fatal("flag survived unset")
	}

	count, err := env.repos.Interaction.CountActiveByCase(ctx, nil, record.ID)
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 0 {
		t.Fatalf("active actions = %d, want 0", count)
	}
}

func TestInteractionUpdateAllowList(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	client := env.mustCreateClient(t, CreateClientInput{})
	record := env.mustCreateCase(t, client.ID, "Grievance")
	interaction := env.mustAddInteraction(t, record.ID, "original")

	updated, err := env.interactions.Update(ctx, interaction.ID, map[string]interface{}{"content": "amended"})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Content != "amended" {
		t.Errorf("content = %q", updated.Content)
	}

	var validationErr *ValidationError
	if _, err := env.interactions.Update(ctx, interaction.ID, map[string]interface{}{"is_active_action": true}); !errors.As(err, &validationErr) {
		t.Fatalf("flag edit via patch = %v, want ValidationError", err)
	}
}
