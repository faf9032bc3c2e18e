package cases

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/arganhr/backoffice/internal/domain/cases"
	"github.com/arganhr/backoffice/internal/platform/logger"
)

type FileRepo interface {
	Create(ctx context.Context, tx *gorm.DB, file *cases.CaseFile) (*cases.CaseFile, error)
	GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*cases.CaseFile, error)
	ListByCase(ctx context.Context, tx *gorm.DB, caseID uuid.UUID) ([]*cases.CaseFile, error)
	CountByCase(ctx context.Context, tx *gorm.DB, caseID uuid.UUID) (int64, error)
	Delete(ctx context.Context, tx *gorm.DB, id uuid.UUID) error
	DeleteByCase(ctx context.Context, tx *gorm.DB, caseID uuid.UUID) error
}

type fileRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewFileRepo(db *gorm.DB, log *logger.Logger) FileRepo {
	return &fileRepo{db: db, log: log.With("repo", "FileRepo")}
}

func (r *fileRepo) conn(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return r.db
}

func (r *fileRepo) Create(ctx context.Context, tx *gorm.DB, file *cases.CaseFile) (*cases.CaseFile, error) {
	if err := r.conn(tx).WithContext(ctx).Create(file).Error; err != nil {
		return nil, err
	}
	return file, nil
}

func (r *fileRepo) GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*cases.CaseFile, error) {
	var result cases.CaseFile
	if err := r.conn(tx).WithContext(ctx).First(&result, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &result, nil
}

func (r *fileRepo) ListByCase(ctx context.Context, tx *gorm.DB, caseID uuid.UUID) ([]*cases.CaseFile, error) {
	var results []*cases.CaseFile
	err := r.conn(tx).WithContext(ctx).
		Where("case_id = ?", caseID).
		Order("created_at asc").
		Find(&results).Error
	if err != nil {
		return nil, err
	}
	return results, nil
}

func (r *fileRepo) CountByCase(ctx context.Context, tx *gorm.DB, caseID uuid.UUID) (int64, error) {
	var count int64
	err := r.conn(tx).WithContext(ctx).
		Model(&cases.CaseFile{}).
		Where("case_id = ?", caseID).
		Count(&count).Error
	if err != nil {
		return 0, err
	}
	return count, nil
}

func (r *fileRepo) Delete(ctx context.Context, tx *gorm.DB, id uuid.UUID) error {
	return r.conn(tx).WithContext(ctx).Delete(&cases.CaseFile{}, "id = ?", id).Error
}

func (r *fileRepo) DeleteByCase(ctx context.Context, tx *gorm.DB, caseID uuid.UUID) error {
	return r.conn(tx).WithContext(ctx).Delete(&cases.CaseFile{}, "case_id = ?", caseID).Error
}
