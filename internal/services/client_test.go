package services

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/arganhr/backoffice/internal/data/repos"
	"github.com/arganhr/backoffice/internal/domain"
)

func TestClientCreateDefaults(t *testing.T) {
	env := newTestEnv(t)
	client, err := env.clients.Create(context.Background(), CreateClientInput{
		Name:        "  Acme Ltd  ",
		Email:       "Hello@Acme.COM",
		ServiceTier: domain.ServiceTierTier1,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if client.Name != "Acme Ltd" {
		t.Errorf("name = %q, want trimmed", client.Name)
	}
	if client.Email != "hello@acme.com" {
		t.Errorf("email = %q, want lowercased", client.Email)
	}
	if client.Status != domain.ClientStatusPending {
		t.Errorf("status = %q, want PENDING default", client.Status)
	}
	if client.Seq != 1 {
		t.Errorf("seq = %d, want 1", client.Seq)
	}
	// Tier default retainer applies when none is given.
	if client.MonthlyRetainer != 45000 {
		t.Errorf("retainer = %d, want tier default 45000", client.MonthlyRetainer)
	}
}

func TestClientCreateValidation(t *testing.T) {
	env := newTestEnv(t)
	_, err := env.clients.Create(context.Background(), CreateClientInput{
		Email:       "not-an-email",
		ServiceTier: "PLATINUM",
	})
	var fieldErr *FieldValidationError
	if !errors.As(err, &fieldErr) {
		t.Fatalf("err = %v, want FieldValidationError", err)
	}
	got := map[string]bool{}
	for _, f := range fieldErr.Fields {
		got[f.Field] = true
	}
	for _, want := range []string{"name", "email", "service_tier"} {
		if !got[want] {
			t.Errorf("missing field error for %q in %v", want, fieldErr.Fields)
		}
	}
}

func TestClientDuplicateEmail(t *testing.T) {
	env := newTestEnv(t)
	env.mustCreateClient(t, CreateClientInput{Name: "First", Email: "dup@example.com"})

	_, err := env.clients.Create(context.Background(), CreateClientInput{
		Name:        "Second",
		Email:       "DUP@example.com",
		ServiceTier: domain.ServiceTierAdHoc,
	})
	var emailErr *EmailExistsError
	if !errors.As(err, &emailErr) {
		t.Fatalf("err = %v, want EmailExistsError", err)
	}
	if emailErr.Email != "dup@example.com" {
		t.Errorf("error names %q, want normalized email", emailErr.Email)
	}
}

func TestClientDeactivateFreesEmail(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	first := env.mustCreateClient(t, CreateClientInput{Name: "First", Email: "reuse@example.com"})

	if _, err := env.clients.Deactivate(ctx, first.ID); err != nil {
		t.Fatalf("deactivate: %v", err)
	}
	// Soft delete keeps the row.
	got, err := env.clients.Get(ctx, first.ID)
	if err != nil {
		t.Fatalf("get after deactivate: %v", err)
	}
	if got.Status != domain.ClientStatusInactive {
		t.Errorf("status = %q, want INACTIVE", got.Status)
	}

	if _, err := env.clients.Create(ctx, CreateClientInput{
		Name:        "Second",
		Email:       "reuse@example.com",
		ServiceTier: domain.ServiceTierDocOnly,
	}); err != nil {
		t.Fatalf("inactive rows should release their email, got %v", err)
	}
}

func TestClientUpdateSelfEmailUnchanged(t *testing.T) {
	env := newTestEnv(t)
	client := env.mustCreateClient(t, CreateClientInput{Name: "Solo", Email: "solo@example.com"})

	updated, err := env.clients.Update(context.Background(), client.ID, map[string]interface{}{
		"email": "solo@example.com",
		"phone": "020 7946 0000",
	})
	if err != nil {
		t.Fatalf("updating with own email should pass the duplicate check: %v", err)
	}
	if updated.Phone != "020 7946 0000" {
		t.Errorf("phone = %q", updated.Phone)
	}
}

func TestClientUpdateRejectsUnknownFields(t *testing.T) {
	env := newTestEnv(t)
	client := env.mustCreateClient(t, CreateClientInput{})

	_, err := env.clients.Update(context.Background(), client.ID, map[string]interface{}{
		"name": "New Name",
		"seq":  99,
	})
	var validationErr *ValidationError
	if !errors.As(err, &validationErr) {
		t.Fatalf("err = %v, want ValidationError", err)
	}
	if !strings.Contains(validationErr.Message, "seq") {
		t.Errorf("error should name the rejected field, got %q", validationErr.Message)
	}
}

func TestClientGetNotFound(t *testing.T) {
	env := newTestEnv(t)
	_, err := env.clients.Get(context.Background(), uuid.New())
	var notFound *NotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("err = %v, want NotFoundError", err)
	}
}

func TestClientUniqueSectors(t *testing.T) {
	env := newTestEnv(t)
	for _, sector := range []string{"Tech", "Tech", "Health", ""} {
		env.mustCreateClient(t, CreateClientInput{Sector: sector})
	}
	sectors := env.clients.UniqueSectors(context.Background())
	want := []string{"Health", "Tech"}
	if len(sectors) != len(want) {
		t.Fatalf("sectors = %v, want %v", sectors, want)
	}
	for i := range want {
		if sectors[i] != want[i] {
			t.Errorf("sectors[%d] = %q, want %q", i, sectors[i], want[i])
		}
	}
}

func TestClientListFilters(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.mustCreateClient(t, CreateClientInput{Name: "Alpha", Status: domain.ClientStatusActive, Sector: "Tech"})
	env.mustCreateClient(t, CreateClientInput{Name: "Beta", Status: domain.ClientStatusPending, Sector: "Health"})

	active, err := env.clients.List(ctx, repos.ClientListFilter{Status: domain.ClientStatusActive})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(active) != 1 || active[0].Name != "Alpha" {
		t.Errorf("status filter returned %d rows", len(active))
	}

	matched, err := env.clients.List(ctx, repos.ClientListFilter{Search: "et"})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(matched) != 1 || matched[0].Name != "Beta" {
		t.Errorf("search filter returned %d rows", len(matched))
	}
}

func TestClientSubRecords(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	client := env.mustCreateClient(t, CreateClientInput{})

	contact, err := env.clients.AddContact(ctx, client.ID, ContactInput{Name: "Pat Lee", Email: "pat@example.com"})
	if err != nil {
		t.Fatalf("add contact: %v", err)
	}
	if contact.Type != "PRIMARY" {
		t.Errorf("contact type = %q, want PRIMARY default", contact.Type)
	}

	if _, err := env.clients.AddAddress(ctx, client.ID, AddressInput{Line1: "1 High St", City: "London"}); err != nil {
		t.Fatalf("add address: %v", err)
	}
	if _, err := env.clients.AddAudit(ctx, client.ID, AuditInput{Auditor: "Ext Audit LLP"}); err != nil {
		t.Fatalf("add audit: %v", err)
	}

	loaded, err := env.clients.Get(ctx, client.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if len(loaded.Contacts) != 1 || len(loaded.Addresses) != 1 || len(loaded.Audits) != 1 {
		t.Fatalf("preloads = %d/%d/%d, want 1/1/1", len(loaded.Contacts), len(loaded.Addresses), len(loaded.Audits))
	}

	if err := env.clients.RemoveContact(ctx, contact.ID); err != nil {
		t.Fatalf("remove contact: %v", err)
	}
	var notFound *NotFoundError
	if err := env.clients.RemoveContact(ctx, contact.ID); !errors.As(err, &notFound) {
		t.Errorf("second remove = %v, want NotFoundError", err)
	}
}
