package services

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/arganhr/backoffice/internal/config"
	"github.com/arganhr/backoffice/internal/data/repos"
	"github.com/arganhr/backoffice/internal/domain"
	"github.com/arganhr/backoffice/internal/platform/logger"
)

// fakeStore is an in-memory ObjectStore recording what was uploaded.
type fakeStore struct {
	objects map[string][]byte
}

func newFakeStore() *fakeStore {
	return &fakeStore{objects: map[string][]byte{}}
}

func (f *fakeStore) Upload(_ context.Context, key string, r io.Reader) error {
	raw, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	f.objects[key] = raw
	return nil
}

func (f *fakeStore) Delete(_ context.Context, key string) error {
	delete(f.objects, key)
	return nil
}

func (f *fakeStore) PublicURL(key string) string {
	return "https://cdn.test/" + key
}

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := "file:" + t.Name() + uuid.NewString() + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := db.AutoMigrate(domain.All()...); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func newTestLogger(t *testing.T) *logger.Logger {
	t.Helper()
	log, err := logger.New("test")
	if err != nil {
		t.Fatalf("logger: %v", err)
	}
	t.Cleanup(log.Sync)
	return log
}

// testEnv bundles everything a service test needs so each case reads as
// one setup line.
type testEnv struct {
	db      *gorm.DB
	log     *logger.Logger
	repos   repos.Set
	pricing config.Pricing

	clients      ClientService
	contracts    ContractService
	cases        CaseService
	interactions InteractionService
	admins       AdminService
	auth         AuthService
	dashboard    DashboardService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	db := newTestDB(t)
	log := newTestLogger(t)
	set := repos.NewSet(db, log)
	pricing, err := config.LoadPricing("", log)
	if err != nil {
		t.Fatalf("pricing: %v", err)
	}
	return &testEnv{
		db:           db,
		log:          log,
		repos:        set,
		pricing:      pricing,
		clients:      NewClientService(db, log, set.Client, set.Contact, set.Address, set.Audit, pricing),
		contracts:    NewContractService(db, log, set.Contract, set.Client, pricing, "1"),
		cases:        NewCaseService(db, log, set.Case, set.Interaction, set.File, set.Client, nil),
		interactions: NewInteractionService(db, log, set.Interaction, set.Case),
		admins:       NewAdminService(db, log, set.Admin, nil),
		auth:         NewAuthService(db, log, set.Admin, set.Token, "test-secret", time.Hour, 24*time.Hour),
		dashboard:    NewDashboardService(db, log, set.Client, set.Case, set.Contract, nil),
	}
}

func (e *testEnv) mustCreateClient(t *testing.T, input CreateClientInput) *domain.Client {
	t.Helper()
	if input.Name == "" {
		input.Name = "Acme Ltd"
	}
	if input.Email == "" {
		input.Email = uuid.NewString() + "@example.com"
	}
	if input.ServiceTier == "" {
		input.ServiceTier = domain.ServiceTierTier1
	}
	client, err := e.clients.Create(context.Background(), input)
	if err != nil {
		t.Fatalf("create client: %v", err)
	}
	return client
}

func (e *testEnv) mustCreateContract(t *testing.T, input CreateContractInput) *domain.Contract {
	t.Helper()
	if input.StartDate == nil {
		start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
		input.StartDate = &start
	}
	if input.RenewalDate == nil {
		renewal := input.StartDate.AddDate(1, 0, 0)
		input.RenewalDate = &renewal
	}
	contract, err := e.contracts.Create(context.Background(), input)
	if err != nil {
		t.Fatalf("create contract: %v", err)
	}
	return contract
}

func (e *testEnv) mustCreateCase(t *testing.T, clientID uuid.UUID, title string) *domain.Case {
	t.Helper()
	record, err := e.cases.Create(context.Background(), CreateCaseInput{ClientID: clientID, Title: title})
	if err != nil {
		t.Fatalf("create case: %v", err)
	}
	return record
}

func (e *testEnv) mustAddInteraction(t *testing.T, caseID uuid.UUID, content string) *domain.Interaction {
	t.Helper()
	interaction, err := e.interactions.Add(context.Background(), caseID, CreateInteractionInput{
		PartyA:  PartyInput{Type: "ARGAN", Name: "Jo Bloggs"},
		PartyB:  PartyInput{Type: "CLIENT", Name: "Sam Client"},
		Content: content,
	})
	if err != nil {
		t.Fatalf("add interaction: %v", err)
	}
	return interaction
}
