package services

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/arganhr/backoffice/internal/data/repos"
	"github.com/arganhr/backoffice/internal/platform/logger"
)

const (
	dashboardCacheKey = "dashboard:summary"
	dashboardCacheTTL = 60 * time.Second
	renewalWindowDays = 60
)

// DashboardSummary is the read-only rollup the landing page renders.
// Everything is computed from the base tables at read time.
type DashboardSummary struct {
	ClientsByStatus     map[string]int64 `json:"clients_by_status"`
	RetainerPenceByTier map[string]int64 `json:"retainer_pence_by_tier"`
	CasesByStatus       map[string]int64 `json:"cases_by_status"`
	EscalatedOpenCases  int64            `json:"escalated_open_cases"`
	ContractsRenewing   int64            `json:"contracts_renewing_within_60d"`
	GeneratedAt         time.Time        `json:"generated_at"`
}

type DashboardService interface {
	Summary(ctx context.Context) (*DashboardSummary, error)
}

type dashboardService struct {
	db           *gorm.DB
	log          *logger.Logger
	clientRepo   repos.ClientRepo
	caseRepo     repos.CaseRepo
	contractRepo repos.ContractRepo
	cache        *redis.Client
}

// NewDashboardService takes a nil cache client when redis is not
// configured; every call then hits the database.
func NewDashboardService(
	db *gorm.DB,
	log *logger.Logger,
	clientRepo repos.ClientRepo,
	caseRepo repos.CaseRepo,
	contractRepo repos.ContractRepo,
	cache *redis.Client,
) DashboardService {
	return &dashboardService{
		db:           db,
		log:          log.With("service", "DashboardService"),
		clientRepo:   clientRepo,
		caseRepo:     caseRepo,
		contractRepo: contractRepo,
		cache:        cache,
	}
}

func (s *dashboardService) Summary(ctx context.Context) (*DashboardSummary, error) {
	if cached := s.fromCache(ctx); cached != nil {
		return cached, nil
	}

	summary := &DashboardSummary{GeneratedAt: time.Now().UTC()}
	var err error
	if summary.ClientsByStatus, err = s.clientRepo.CountByStatus(ctx, nil); err != nil {
		return nil, err
	}
	if summary.RetainerPenceByTier, err = s.clientRepo.RetainerTotalsByTier(ctx, nil); err != nil {
		return nil, err
	}
	if summary.CasesByStatus, err = s.caseRepo.CountByStatus(ctx, nil); err != nil {
		return nil, err
	}
	if summary.EscalatedOpenCases, err = s.caseRepo.CountEscalatedOpen(ctx, nil); err != nil {
		return nil, err
	}
	cutoff := time.Now().AddDate(0, 0, renewalWindowDays)
	if summary.ContractsRenewing, err = s.contractRepo.CountActiveRenewingBefore(ctx, nil, cutoff); err != nil {
		return nil, err
	}

	s.toCache(ctx, summary)
	return summary, nil
}

// Cache errors are logged and ignored; the database result always wins.
func (s *dashboardService) fromCache(ctx context.Context) *DashboardSummary {
	if s.cache == nil {
		return nil
	}
	raw, err := s.cache.Get(ctx, dashboardCacheKey).Bytes()
	if err != nil {
		if err != redis.Nil {
			s.log.Warn("Dashboard cache read failed", "error", err)
		}
		return nil
	}
	var summary DashboardSummary
	if err := json.Unmarshal(raw, &summary); err != nil {
		s.log.Warn("Dashboard cache entry unreadable", "error", err)
		return nil
	}
	return &summary
}

func (s *dashboardService) toCache(ctx context.Context, summary *DashboardSummary) {
	if s.cache == nil {
		return
	}
	raw, err := json.Marshal(summary)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, dashboardCacheKey, raw, dashboardCacheTTL).Err(); err != nil {
		s.log.Warn("Dashboard cache write failed", "error", err)
	}
}
