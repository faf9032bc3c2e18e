package clients_test

import (
	"context"
	"testing"

	"github.com/google/uuid"

	"github.com/arganhr/backoffice/internal/data/repos/clients"
	"github.com/arganhr/backoffice/internal/data/repos/testutil"
	domainclients "github.com/arganhr/backoffice/internal/domain/clients"
)

func seedClient(tb testing.TB, email, status string, seq int64) *domainclients.Client {
	tb.Helper()
	return &domainclients.Client{
		ID:          uuid.New(),
		Seq:         seq,
		Name:        "Client " + email,
		Type:        domainclients.ClientTypeCompany,
		ServiceTier: domainclients.ServiceTierTier1,
		Email:       email,
		Status:      status,
	}
}

func TestClientRepoNextSeq(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	repo := clients.NewClientRepo(db, testutil.Logger(t))
	ctx := context.Background()

	seq, err := repo.NextSeq(ctx, tx)
	if err != nil {
		t.Fatalf("next seq: %v", err)
	}
	if _, err := repo.Create(ctx, tx, seedClient(t, "seq1@example.com", domainclients.ClientStatusActive, seq)); err != nil {
		t.Fatalf("create: %v", err)
	}
	next, err := repo.NextSeq(ctx, tx)
	if err != nil {
		t.Fatalf("next seq: %v", err)
	}
	if next != seq+1 {
		t.Fatalf("next = %d, want %d", next, seq+1)
	}
}

func TestClientRepoEmailInUseScoping(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	repo := clients.NewClientRepo(db, testutil.Logger(t))
	ctx := context.Background()

	seq, err := repo.NextSeq(ctx, tx)
	if err != nil {
		t.Fatalf("next seq: %v", err)
	}
	live, err := repo.Create(ctx, tx, seedClient(t, "live@example.com", domainclients.ClientStatusActive, seq))
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := repo.Create(ctx, tx, seedClient(t, "gone@example.com", domainclients.ClientStatusInactive, seq+1)); err != nil {
		t.Fatalf("create: %v", err)
	}

	inUse, err := repo.EmailInUse(ctx, tx, "live@example.com", uuid.Nil)
	if err != nil || !inUse {
		t.Fatalf("live email in use = %v (%v), want true", inUse, err)
	}
	// The owner itself is excluded.
	inUse, err = repo.EmailInUse(ctx, tx, "live@example.com", live.ID)
	if err != nil || inUse {
		t.Fatalf("self-excluded check = %v (%v), want false", inUse, err)
	}
	// Inactive rows release their email.
	inUse, err = repo.EmailInUse(ctx, tx, "gone@example.com", uuid.Nil)
	if err != nil || inUse {
		t.Fatalf("inactive email in use = %v (%v), want false", inUse, err)
	}
}

func TestClientRepoDistinctSectors(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	repo := clients.NewClientRepo(db, testutil.Logger(t))
	ctx := context.Background()

	seq, err := repo.NextSeq(ctx, tx)
	if err != nil {
		t.Fatalf("next seq: %v", err)
	}
	for i, sector := range []string{"Tech", "Tech", "Health", ""} {
		c := seedClient(t, uuid.NewString()+"@example.com", domainclients.ClientStatusActive, seq+int64(i))
		if sector != "" {
			s := sector
			c.Sector = &s
		}
		if _, err := repo.Create(ctx, tx, c); err != nil {
			t.Fatalf("create: %v", err)
		}
	}

	sectors, err := repo.DistinctSectors(ctx, tx)
	if err != nil {
		t.Fatalf("sectors: %v", err)
	}
	seen := map[string]int{}
	for _, s := range sectors {
		seen[s]++
	}
	if seen["Tech"] != 1 || seen["Health"] != 1 {
		t.Fatalf("sectors = %v, want Tech and Health once each", sectors)
	}
}
