package cases

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/arganhr/backoffice/internal/domain/cases"
	"github.com/arganhr/backoffice/internal/platform/logger"
)

type InteractionRepo interface {
	Create(ctx context.Context, tx *gorm.DB, interaction *cases.Interaction) (*cases.Interaction, error)
	GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*cases.Interaction, error)
	ListByCase(ctx context.Context, tx *gorm.DB, caseID uuid.UUID) ([]*cases.Interaction, error)
	Update(ctx context.Context, tx *gorm.DB, id uuid.UUID, fields map[string]interface{}) (*cases.Interaction, error)
	ClearActiveByCase(ctx context.Context, tx *gorm.DB, caseID uuid.UUID) error
	SetActiveFlag(ctx context.Context, tx *gorm.DB, id uuid.UUID, active bool) error
	CountByCase(ctx context.Context, tx *gorm.DB, caseID uuid.UUID) (int64, error)
	CountActiveByCase(ctx context.Context, tx *gorm.DB, caseID uuid.UUID) (int64, error)
	DeleteByCase(ctx context.Context, tx *gorm.DB, caseID uuid.UUID) error
}

type interactionRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewInteractionRepo(db *gorm.DB, log *logger.Logger) InteractionRepo {
	return &interactionRepo{db: db, log: log.With("repo", "InteractionRepo")}
}

func (r *interactionRepo) conn(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return r.db
}

func (r *interactionRepo) Create(ctx context.Context, tx *gorm.DB, interaction *cases.Interaction) (*cases.Interaction, error) {
	if err := r.conn(tx).WithContext(ctx).Create(interaction).Error; err != nil {
		return nil, err
	}
	return interaction, nil
}

func (r *interactionRepo) GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*cases.Interaction, error) {
	var result cases.Interaction
	if err := r.conn(tx).WithContext(ctx).First(&result, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &result, nil
}

func (r *interactionRepo) ListByCase(ctx context.Context, tx *gorm.DB, caseID uuid.UUID) ([]*cases.Interaction, error) {
	var results []*cases.Interaction
	err := r.conn(tx).WithContext(ctx).
		Where("case_id = ?", caseID).
		Order("occurred_at asc").
		Find(&results).Error
	if err != nil {
		return nil, err
	}
	return results, nil
}

func (r *interactionRepo) Update(ctx context.Context, tx *gorm.DB, id uuid.UUID, fields map[string]interface{}) (*cases.Interaction, error) {
	conn := r.conn(tx).WithContext(ctx)
	res := conn.Model(&cases.Interaction{}).Where("id = ?", id).Updates(fields)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	var updated cases.Interaction
	if err := conn.First(&updated, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &updated, nil
}

// ClearActiveByCase unsets the active-action flag on every interaction in
// the case. Meant to run inside the same transaction as SetActiveFlag.
func (r *interactionRepo) ClearActiveByCase(ctx context.Context, tx *gorm.DB, caseID uuid.UUID) error {
	return r.conn(tx).WithContext(ctx).
		Model(&cases.Interaction{}).
		Where("case_id = ? AND is_active_action = ?", caseID, true).
		Update("is_active_action", false).Error
}

func (r *interactionRepo) SetActiveFlag(ctx context.Context, tx *gorm.DB, id uuid.UUID, active bool) error {
	res := r.conn(tx).WithContext(ctx).
		Model(&cases.Interaction{}).
		Where("id = ?", id).
		Update("is_active_action", active)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *interactionRepo) CountByCase(ctx context.Context, tx *gorm.DB, caseID uuid.UUID) (int64, error) {
	var count int64
	err := r.conn(tx).WithContext(ctx).
		Model(&cases.Interaction{}).
		Where("case_id = ?", caseID).
		Count(&count).Error
	if err != nil {
		return 0, err
	}
	return count, nil
}

func (r *interactionRepo) CountActiveByCase(ctx context.Context, tx *gorm.DB, caseID uuid.UUID) (int64, error) {
	var count int64
	err := r.conn(tx).WithContext(ctx).
		Model(&cases.Interaction{}).
		Where("case_id = ? AND is_active_action = ?", caseID, true).
		Count(&count).Error
	if err != nil {
		return 0, err
	}
	return count, nil
}

func (r *interactionRepo) DeleteByCase(ctx context.Context, tx *gorm.DB, caseID uuid.UUID) error {
	return r.conn(tx).WithContext(ctx).Delete(&cases.Interaction{}, "case_id = ?", caseID).Error
}
