package services

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/arganhr/backoffice/internal/data/repos"
	"github.com/arganhr/backoffice/internal/domain"
)

func TestCaseNumbering(t *testing.T) {
	env := newTestEnv(t)
	clientA := env.mustCreateClient(t, CreateClientInput{})
	clientB := env.mustCreateClient(t, CreateClientInput{})

	first := env.mustCreateCase(t, clientA.ID, "Grievance")
	second := env.mustCreateCase(t, clientA.ID, "Disciplinary")
	other := env.mustCreateCase(t, clientB.ID, "TUPE consultation")

	if first.CaseNumber != "CASE-001-0001" {
		t.Errorf("first = %q, want CASE-001-0001", first.CaseNumber)
	}
	if second.CaseNumber != "CASE-001-0002" {
		t.Errorf("second = %q, want CASE-001-0002", second.CaseNumber)
	}
	// Sequences are per client.
	if other.CaseNumber != "CASE-002-0001" {
		t.Errorf("other = %q, want CASE-002-0001", other.CaseNumber)
	}
	if first.Status != domain.CaseStatusOpen {
		t.Errorf("status = %q, want OPEN", first.Status)
	}
}

func TestCaseCloseStampsTimestamp(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	client := env.mustCreateClient(t, CreateClientInput{})
	record := env.mustCreateCase(t, client.ID, "Grievance")

	closed, err := env.cases.Update(ctx, record.ID, map[string]interface{}{"status": domain.CaseStatusClosed})
	if err != nil {
		t.Fatalf("close: %v", err)
	}
	if closed.ClosedAt == nil {
		t.Fatal("closed_at not stamped")
	}

	reopened, err := env.cases.Update(ctx, record.ID, map[string]interface{}{"status": domain.CaseStatusOpen})
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	if reopened.ClosedAt != nil {
		t.Errorf("closed_at = %v after reopen, want cleared", reopened.ClosedAt)
	}
}

func TestCaseUpdateRejectsUnknownFields(t *testing.T) {
	env := newTestEnv(t)
	client := env.mustCreateClient(t, CreateClientInput{})
	record := env.mustCreateCase(t, client.ID, "Grievance")

	_, err := env.cases.Update(context.Background(), record.ID, map[string]interface{}{"case_number": "CASE-999-9999"})
	var validationErr *ValidationError
	if !errors.As(err, &validationErr) {
		t.Fatalf("err = %v, want ValidationError", err)
	}
	if !strings.Contains(validationErr.Message, "case_number") {
		t.Errorf("message = %q, should name the field", validationErr.Message)
	}
}

func TestCaseDetailCounts(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	client := env.mustCreateClient(t, CreateClientInput{})
	record := env.mustCreateCase(t, client.ID, "Grievance")
	env.mustAddInteraction(t, record.ID, "Initial call")
	env.mustAddInteraction(t, record.ID, "Follow up email")

	detail, err := env.cases.Get(ctx, record.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if detail.InteractionCount != 2 {
		t.Errorf("interaction count = %d, want 2", detail.InteractionCount)
	}
	if detail.FileCount != 0 {
		t.Errorf("file count = %d, want 0", detail.FileCount)
	}
}

func TestCaseListFilters(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	client := env.mustCreateClient(t, CreateClientInput{})
	env.mustCreateCase(t, client.ID, "Open case")
	toClose := env.mustCreateCase(t, client.ID, "Closed case")
	if _, err := env.cases.Update(ctx, toClose.ID, map[string]interface{}{"status": domain.CaseStatusClosed}); err != nil {
		t.Fatalf("close: %v", err)
	}
	escalated, err := env.cases.Create(ctx, CreateCaseInput{ClientID: client.ID, Title: "Urgent", Escalated: true})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	openOnly, err := env.cases.ListByClient(ctx, client.ID, repos.CaseListFilter{Status: domain.CaseStatusOpen})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(openOnly) != 2 {
		t.Errorf("open cases = %d, want 2", len(openOnly))
	}

	flag := true
	urgent, err := env.cases.ListByClient(ctx, client.ID, repos.CaseListFilter{Escalated: &flag})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(urgent) != 1 || urgent[0].ID != escalated.ID {
		t.Errorf("escalated filter returned %d rows", len(urgent))
	}
}

func TestCaseDeleteCascades(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	client := env.mustCreateClient(t, CreateClientInput{})
	record := env.mustCreateCase(t, client.ID, "Grievance")
	interaction := env.mustAddInteraction(t, record.ID, "Initial call")

	if err := env.cases.Delete(ctx, record.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}

	var notFound *NotFoundError
	if _, err := env.cases.Get(ctx, record.ID); !errors.As(err, &notFound) {
		t.Errorf("get deleted case = %v, want NotFoundError", err)
	}
	if _, err := env.interactions.Get(ctx, interaction.ID); !errors.As(err, &notFound) {
		t.Errorf("get orphan interaction = %v, want NotFoundError", err)
	}
}

func TestCaseAttachFileWithoutStore(t *testing.T) {
	env := newTestEnv(t)
	client := env.mustCreateClient(t, CreateClientInput{})
	record := env.mustCreateCase(t, client.ID, "Grievance")

	_, err := env.cases.AttachFile(context.Background(), record.ID, AttachFileInput{
		Name: "notes.pdf",
		Size: 1024,
		Body: strings.NewReader("pdf bytes"),
	})
	var validationErr *ValidationError
	if !errors.As(err, &validationErr) {
		t.Fatalf("err = %v, want ValidationError when no store is wired", err)
	}
}

func TestCaseAttachFileRequiresBody(t *testing.T) {
	env := newTestEnv(t)
	store := newFakeStore()
	cases := NewCaseService(env.db, env.log, env.repos.Case, env.repos.Interaction, env.repos.File, env.repos.Client, store)
	client := env.mustCreateClient(t, CreateClientInput{})
	record := env.mustCreateCase(t, client.ID, "Grievance")

	// A wired store with no content is a caller error, not a config one.
	_, err := cases.AttachFile(context.Background(), record.ID, AttachFileInput{Name: "notes.pdf", Size: 1024})
	var fieldErr *FieldValidationError
	if !errors.As(err, &fieldErr) {
		t.Fatalf("err = %v, want FieldValidationError for missing content", err)
	}
	if len(store.objects) != 0 {
		t.Errorf("uploads = %d, want none on rejected attach", len(store.objects))
	}

	file, err := cases.AttachFile(context.Background(), record.ID, AttachFileInput{
		Name: "notes.pdf",
		Size: 1024,
		Body: strings.NewReader("pdf bytes"),
	})
	if err != nil {
		t.Fatalf("attach: %v", err)
	}
	if _, ok := store.objects[file.BucketKey]; !ok {
		t.Errorf("object %q not uploaded", file.BucketKey)
	}
	if file.URL != "https://cdn.test/"+file.BucketKey {
		t.Errorf("url = %q, want public url for %q", file.URL, file.BucketKey)
	}
}
