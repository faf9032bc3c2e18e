package services

import (
	"context"
	"testing"
	"time"

	"github.com/arganhr/backoffice/internal/domain"
)

func TestDashboardSummaryRollups(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	retainer := int64(50000)
	active := env.mustCreateClient(t, CreateClientInput{
		Status:          domain.ClientStatusActive,
		ServiceTier:     domain.ServiceTierTier1,
		MonthlyRetainer: &retainer,
	})
	env.mustCreateClient(t, CreateClientInput{Status: domain.ClientStatusPending})
	// Inactive retainers stay out of the revenue totals.
	inactiveRetainer := int64(99999)
	env.mustCreateClient(t, CreateClientInput{
		Status:          domain.ClientStatusInactive,
		ServiceTier:     domain.ServiceTierTier1,
		MonthlyRetainer: &inactiveRetainer,
	})

	env.mustCreateCase(t, active.ID, "Open one")
	_, err := env.cases.Create(ctx, CreateCaseInput{ClientID: active.ID, Title: "Urgent", Escalated: true})
	if err != nil {
		t.Fatalf("create case: %v", err)
	}
	closed := env.mustCreateCase(t, active.ID, "Done")
	if _, err := env.cases.Update(ctx, closed.ID, map[string]interface{}{"status": domain.CaseStatusClosed}); err != nil {
		t.Fatalf("close: %v", err)
	}

	// One active contract renewing inside the 60 day window, one far out.
	soonStart := time.Now().AddDate(0, -11, 0)
	soonRenewal := time.Now().AddDate(0, 0, 30)
	env.mustCreateContract(t, CreateContractInput{
		ClientID:    active.ID,
		Status:      domain.ContractStatusActive,
		StartDate:   &soonStart,
		RenewalDate: &soonRenewal,
	})
	other := env.mustCreateClient(t, CreateClientInput{Status: domain.ClientStatusActive, ServiceTier: domain.ServiceTierAdHoc})
	env.mustCreateContract(t, CreateContractInput{ClientID: other.ID, Status: domain.ContractStatusActive})

	summary, err := env.dashboard.Summary(ctx)
	if err != nil {
		t.Fatalf("summary: %v", err)
	}

	if summary.ClientsByStatus[domain.ClientStatusActive] != 2 {
		t.Errorf("active clients = %d, want 2", summary.ClientsByStatus[domain.ClientStatusActive])
	}
	if summary.ClientsByStatus[domain.ClientStatusInactive] != 1 {
		t.Errorf("inactive clients = %d, want 1", summary.ClientsByStatus[domain.ClientStatusInactive])
	}
	if summary.RetainerPenceByTier[domain.ServiceTierTier1] != 50000 {
		t.Errorf("tier 1 retainer = %d, want 50000 (active clients only)", summary.RetainerPenceByTier[domain.ServiceTierTier1])
	}
	if summary.CasesByStatus[domain.CaseStatusOpen] != 2 {
		t.Errorf("open cases = %d, want 2", summary.CasesByStatus[domain.CaseStatusOpen])
	}
	if summary.CasesByStatus[domain.CaseStatusClosed] != 1 {
		t.Errorf("closed cases = %d, want 1", summary.CasesByStatus[domain.CaseStatusClosed])
	}
	if summary.EscalatedOpenCases != 1 {
		t.Errorf("escalated open = %d, want 1", summary.EscalatedOpenCases)
	}
	if summary.ContractsRenewing != 1 {
		t.Errorf("renewing = %d, want 1", summary.ContractsRenewing)
	}
	if summary.GeneratedAt.IsZero() {
		t.Error("generated_at missing")
	}
}
