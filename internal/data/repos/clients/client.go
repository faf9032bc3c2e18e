package clients

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/arganhr/backoffice/internal/domain/clients"
	"github.com/arganhr/backoffice/internal/platform/logger"
)

// ListFilter narrows List. Zero values mean "no constraint".
type ListFilter struct {
	Status string
	Tier   string
	Sector string
	Search string
}

type ClientRepo interface {
	Create(ctx context.Context, tx *gorm.DB, client *clients.Client) (*clients.Client, error)
	GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*clients.Client, error)
	GetBySeq(ctx context.Context, tx *gorm.DB, seq int64) (*clients.Client, error)
	List(ctx context.Context, tx *gorm.DB, filter ListFilter) ([]*clients.Client, error)
	Update(ctx context.Context, tx *gorm.DB, id uuid.UUID, fields map[string]interface{}) (*clients.Client, error)
	EmailInUse(ctx context.Context, tx *gorm.DB, email string, excludeID uuid.UUID) (bool, error)
	NextSeq(ctx context.Context, tx *gorm.DB) (int64, error)
	DistinctSectors(ctx context.Context, tx *gorm.DB) ([]string, error)
	CountByStatus(ctx context.Context, tx *gorm.DB) (map[string]int64, error)
	RetainerTotalsByTier(ctx context.Context, tx *gorm.DB) (map[string]int64, error)
}

type clientRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewClientRepo(db *gorm.DB, log *logger.Logger) ClientRepo {
	return &clientRepo{db: db, log: log.With("repo", "ClientRepo")}
}

func (r *clientRepo) conn(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return r.db
}

func (r *clientRepo) Create(ctx context.Context, tx *gorm.DB, client *clients.Client) (*clients.Client, error) {
	if err := r.conn(tx).WithContext(ctx).Create(client).Error; err != nil {
		return nil, err
	}
	return client, nil
}

func (r *clientRepo) GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*clients.Client, error) {
	var result clients.Client
	err := r.conn(tx).WithContext(ctx).
		Preload("Contacts").
		Preload("Addresses").
		Preload("Audits").
		First(&result, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (r *clientRepo) GetBySeq(ctx context.Context, tx *gorm.DB, seq int64) (*clients.Client, error) {
	var result clients.Client
	if err := r.conn(tx).WithContext(ctx).First(&result, "seq = ?", seq).Error; err != nil {
		return nil, err
	}
	return &result, nil
}

func (r *clientRepo) List(ctx context.Context, tx *gorm.DB, filter ListFilter) ([]*clients.Client, error) {
	q := r.conn(tx).WithContext(ctx).Model(&clients.Client{})
	if filter.Status != "" {
		q = q.Where("status = ?", filter.Status)
	}
	if filter.Tier != "" {
		q = q.Where("service_tier = ?", filter.Tier)
	}
	if filter.Sector != "" {
		q = q.Where("sector = ?", filter.Sector)
	}
	if filter.Search != "" {
		q = q.Where("name LIKE ?", "%"+filter.Search+"%")
	}
	var results []*clients.Client
	if err := q.Order("name asc").Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *clientRepo) Update(ctx context.Context, tx *gorm.DB, id uuid.UUID, fields map[string]interface{}) (*clients.Client, error) {
	conn := r.conn(tx).WithContext(ctx)
	res := conn.Model(&clients.Client{}).Where("id = ?", id).Updates(fields)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	var updated clients.Client
	if err := conn.First(&updated, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &updated, nil
}

// EmailInUse checks among non-INACTIVE clients only; soft-deleted rows
// free up their email.
func (r *clientRepo) EmailInUse(ctx context.Context, tx *gorm.DB, email string, excludeID uuid.UUID) (bool, error) {
	var count int64
	q := r.conn(tx).WithContext(ctx).
		Model(&clients.Client{}).
		Where("email = ?", email).
		Where("status <> ?", clients.ClientStatusInactive)
	if excludeID != uuid.Nil {
		q = q.Where("id <> ?", excludeID)
	}
	if err := q.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *clientRepo) NextSeq(ctx context.Context, tx *gorm.DB) (int64, error) {
	var max int64
	err := r.conn(tx).WithContext(ctx).
		Model(&clients.Client{}).
		Select("COALESCE(MAX(seq), 0)").
		Scan(&max).Error
	if err != nil {
		return 0, err
	}
	return max + 1, nil
}

func (r *clientRepo) DistinctSectors(ctx context.Context, tx *gorm.DB) ([]string, error) {
	var sectors []string
	err := r.conn(tx).WithContext(ctx).
		Model(&clients.Client{}).
		Where("sector IS NOT NULL AND sector <> ''").
		Distinct("sector").
		Order("sector asc").
		Pluck("sector", &sectors).Error
	if err != nil {
		return nil, err
	}
	return sectors, nil
}

type statusCount struct {
	Status string
	Count  int64
}

func (r *clientRepo) CountByStatus(ctx context.Context, tx *gorm.DB) (map[string]int64, error) {
	var rows []statusCount
	err := r.conn(tx).WithContext(ctx).
		Model(&clients.Client{}).
		Select("status, COUNT(*) AS count").
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	out := make(map[string]int64, len(rows))
	for _, row := range rows {
		out[row.Status] = row.Count
	}
	return out, nil
}

type tierTotal struct {
	ServiceTier string
	Total       int64
}

// RetainerTotalsByTier sums monthly retainers of ACTIVE clients per tier.
func (r *clientRepo) RetainerTotalsByTier(ctx context.Context, tx *gorm.DB) (map[string]int64, error) {
	var rows []tierTotal
	err := r.conn(tx).WithContext(ctx).
		Model(&clients.Client{}).
		Select("service_tier, COALESCE(SUM(monthly_retainer), 0) AS total").
		Where("status = ?", clients.ClientStatusActive).
		Group("service_tier").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	out := make(map[string]int64, len(rows))
	for _, row := range rows {
		out[row.ServiceTier] = row.Total
	}
	return out, nil
}
