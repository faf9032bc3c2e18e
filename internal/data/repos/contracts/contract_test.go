package contracts_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/arganhr/backoffice/internal/data/repos/contracts"
	"github.com/arganhr/backoffice/internal/data/repos/testutil"
	domaincontracts "github.com/arganhr/backoffice/internal/domain/contracts"
)

func seedContract(clientID uuid.UUID, version int64, status string, renewal time.Time) *domaincontracts.Contract {
	start := renewal.AddDate(-1, 0, 0)
	return &domaincontracts.Contract{
		ID:             uuid.New(),
		ClientID:       clientID,
		ContractNumber: "CON-T-" + uuid.NewString(),
		Version:        version,
		Status:         status,
		StartDate:      start,
		RenewalDate:    renewal,
	}
}

func TestContractRepoArchiveActiveByClient(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	repo := contracts.NewContractRepo(db, testutil.Logger(t))
	ctx := context.Background()

	clientID := uuid.New()
	otherClient := uuid.New()
	renewal := time.Now().AddDate(1, 0, 0)
	for _, c := range []*domaincontracts.Contract{
		seedContract(clientID, 1, domaincontracts.ContractStatusActive, renewal),
		seedContract(clientID, 2, domaincontracts.ContractStatusDraft, renewal),
		seedContract(otherClient, 1, domaincontracts.ContractStatusActive, renewal),
	} {
		if _, err := repo.Create(ctx, tx, c); err != nil {
			t.Fatalf("create: %v", err)
		}
	}

	archived, err := repo.ArchiveActiveByClient(ctx, tx, clientID)
	if err != nil {
		t.Fatalf("archive: %v", err)
	}
	if archived != 1 {
		t.Fatalf("archived = %d, want 1", archived)
	}
	count, err := repo.CountActiveByClient(ctx, tx, clientID)
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 0 {
		t.Fatalf("active after archive = %d, want 0", count)
	}
	// Other clients keep their active contract.
	count, err = repo.CountActiveByClient(ctx, tx, otherClient)
	if err != nil || count != 1 {
		t.Fatalf("other client active = %d (%v), want 1", count, err)
	}
}

func TestContractRepoMaxVersion(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	repo := contracts.NewContractRepo(db, testutil.Logger(t))
	ctx := context.Background()

	clientID := uuid.New()
	max, err := repo.MaxVersion(ctx, tx, clientID)
	if err != nil {
		t.Fatalf("max version: %v", err)
	}
	if max != 0 {
		t.Fatalf("max for fresh client = %d, want 0", max)
	}
	renewal := time.Now().AddDate(1, 0, 0)
	if _, err := repo.Create(ctx, tx, seedContract(clientID, 3, domaincontracts.ContractStatusArchived, renewal)); err != nil {
		t.Fatalf("create: %v", err)
	}
	max, err = repo.MaxVersion(ctx, tx, clientID)
	if err != nil || max != 3 {
		t.Fatalf("max = %d (%v), want 3", max, err)
	}
}

func TestContractRepoCountActiveRenewingBefore(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	repo := contracts.NewContractRepo(db, testutil.Logger(t))
	ctx := context.Background()

	clientID := uuid.New()
	soon := time.Now().AddDate(0, 0, 30)
	far := time.Now().AddDate(1, 0, 0)
	for _, c := range []*domaincontracts.Contract{
		seedContract(clientID, 1, domaincontracts.ContractStatusActive, soon),
		seedContract(uuid.New(), 1, domaincontracts.ContractStatusActive, far),
		seedContract(uuid.New(), 1, domaincontracts.ContractStatusArchived, soon),
	} {
		if _, err := repo.Create(ctx, tx, c); err != nil {
			t.Fatalf("create: %v", err)
		}
	}

	count, err := repo.CountActiveRenewingBefore(ctx, tx, time.Now().AddDate(0, 0, 60))
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 1 {
		t.Fatalf("renewing = %d, want 1 (active inside window only)", count)
	}
}
