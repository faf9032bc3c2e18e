package cases

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/arganhr/backoffice/internal/domain/cases"
	"github.com/arganhr/backoffice/internal/platform/logger"
)

type ListFilter struct {
	Status    string
	Escalated *bool
}

type CaseRepo interface {
	Create(ctx context.Context, tx *gorm.DB, c *cases.Case) (*cases.Case, error)
	GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*cases.Case, error)
	ListByClient(ctx context.Context, tx *gorm.DB, clientID uuid.UUID, filter ListFilter) ([]*cases.Case, error)
	NextSeq(ctx context.Context, tx *gorm.DB, clientID uuid.UUID) (int64, error)
	Update(ctx context.Context, tx *gorm.DB, id uuid.UUID, fields map[string]interface{}) (*cases.Case, error)
	Delete(ctx context.Context, tx *gorm.DB, id uuid.UUID) error
	CountByStatus(ctx context.Context, tx *gorm.DB) (map[string]int64, error)
	CountEscalatedOpen(ctx context.Context, tx *gorm.DB) (int64, error)
}

type caseRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewCaseRepo(db *gorm.DB, log *logger.Logger) CaseRepo {
	return &caseRepo{db: db, log: log.With("repo", "CaseRepo")}
}

func (r *caseRepo) conn(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return r.db
}

func (r *caseRepo) Create(ctx context.Context, tx *gorm.DB, c *cases.Case) (*cases.Case, error) {
	if err := r.conn(tx).WithContext(ctx).Create(c).Error; err != nil {
		return nil, err
	}
	return c, nil
}

func (r *caseRepo) GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*cases.Case, error) {
	var result cases.Case
	if err := r.conn(tx).WithContext(ctx).First(&result, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &result, nil
}

func (r *caseRepo) ListByClient(ctx context.Context, tx *gorm.DB, clientID uuid.UUID, filter ListFilter) ([]*cases.Case, error) {
	q := r.conn(tx).WithContext(ctx).Where("client_id = ?", clientID)
	if filter.Status != "" {
		q = q.Where("status = ?", filter.Status)
	}
	if filter.Escalated != nil {
		q = q.Where("escalated = ?", *filter.Escalated)
	}
	var results []*cases.Case
	if err := q.Order("created_at desc").Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *caseRepo) NextSeq(ctx context.Context, tx *gorm.DB, clientID uuid.UUID) (int64, error) {
	var max int64
	err := r.conn(tx).WithContext(ctx).
		Model(&cases.Case{}).
		Where("client_id = ?", clientID).
		Select("COALESCE(MAX(seq), 0)").
		Scan(&max).Error
	if err != nil {
		return 0, err
	}
	return max + 1, nil
}

func (r *caseRepo) Update(ctx context.Context, tx *gorm.DB, id uuid.UUID, fields map[string]interface{}) (*cases.Case, error) {
	conn := r.conn(tx).WithContext(ctx)
	res := conn.Model(&cases.Case{}).Where("id = ?", id).Updates(fields)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	var updated cases.Case
	if err := conn.First(&updated, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &updated, nil
}

func (r *caseRepo) Delete(ctx context.Context, tx *gorm.DB, id uuid.UUID) error {
	return r.conn(tx).WithContext(ctx).Delete(&cases.Case{}, "id = ?", id).Error
}

type statusCount struct {
	Status string
	Count  int64
}

func (r *caseRepo) CountByStatus(ctx context.Context, tx *gorm.DB) (map[string]int64, error) {
	var rows []statusCount
	err := r.conn(tx).WithContext(ctx).
		Model(&cases.Case{}).
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

func (r *caseRepo) CountEscalatedOpen(ctx context.Context, tx *gorm.DB) (int64, error) {
	var count int64
	err := r.conn(tx).WithContext(ctx).
		Model(&cases.Case{}).
		Where("escalated = ? AND status <> ?", true, cases.CaseStatusClosed).
		Count(&count).Error
	if err != nil {
		return 0, err
	}
	return count, nil
}
