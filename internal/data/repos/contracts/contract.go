package contracts

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/arganhr/backoffice/internal/domain/contracts"
	"github.com/arganhr/backoffice/internal/platform/logger"
)

type ContractRepo interface {
	Create(ctx context.Context, tx *gorm.DB, contract *contracts.Contract) (*contracts.Contract, error)
	GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*contracts.Contract, error)
	ListByClient(ctx context.Context, tx *gorm.DB, clientID uuid.UUID) ([]*contracts.Contract, error)
	MaxVersion(ctx context.Context, tx *gorm.DB, clientID uuid.UUID) (int64, error)
	ArchiveActiveByClient(ctx context.Context, tx *gorm.DB, clientID uuid.UUID) (int64, error)
	SetStatus(ctx context.Context, tx *gorm.DB, id uuid.UUID, status string) error
	CountActiveByClient(ctx context.Context, tx *gorm.DB, clientID uuid.UUID) (int64, error)
	CountActiveRenewingBefore(ctx context.Context, tx *gorm.DB, cutoff time.Time) (int64, error)
	Update(ctx context.Context, tx *gorm.DB, id uuid.UUID, fields map[string]interface{}) (*contracts.Contract, error)
	Delete(ctx context.Context, tx *gorm.DB, id uuid.UUID) error
}

type contractRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewContractRepo(db *gorm.DB, log *logger.Logger) ContractRepo {
	return &contractRepo{db: db, log: log.With("repo", "ContractRepo")}
}

func (r *contractRepo) conn(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return r.db
}

func (r *contractRepo) Create(ctx context.Context, tx *gorm.DB, contract *contracts.Contract) (*contracts.Contract, error) {
	if err := r.conn(tx).WithContext(ctx).Create(contract).Error; err != nil {
		return nil, err
	}
	return contract, nil
}

func (r *contractRepo) GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*contracts.Contract, error) {
	var result contracts.Contract
	if err := r.conn(tx).WithContext(ctx).First(&result, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &result, nil
}

func (r *contractRepo) ListByClient(ctx context.Context, tx *gorm.DB, clientID uuid.UUID) ([]*contracts.Contract, error) {
	var results []*contracts.Contract
	err := r.conn(tx).WithContext(ctx).
		Where("client_id = ?", clientID).
		Order("version desc").
		Find(&results).Error
	if err != nil {
		return nil, err
	}
	return results, nil
}

func (r *contractRepo) MaxVersion(ctx context.Context, tx *gorm.DB, clientID uuid.UUID) (int64, error) {
	var max int64
	err := r.conn(tx).WithContext(ctx).
		Model(&contracts.Contract{}).
		Where("client_id = ?", clientID).
		Select("COALESCE(MAX(version), 0)").
		Scan(&max).Error
	if err != nil {
		return 0, err
	}
	return max, nil
}

// ArchiveActiveByClient flips every ACTIVE contract of the client to
// ARCHIVED and reports how many rows moved.
func (r *contractRepo) ArchiveActiveByClient(ctx context.Context, tx *gorm.DB, clientID uuid.UUID) (int64, error) {
	res := r.conn(tx).WithContext(ctx).
		Model(&contracts.Contract{}).
		Where("client_id = ? AND status = ?", clientID, contracts.ContractStatusActive).
		Update("status", contracts.ContractStatusArchived)
	if res.Error != nil {
		return 0, res.Error
	}
	return res.RowsAffected, nil
}

func (r *contractRepo) SetStatus(ctx context.Context, tx *gorm.DB, id uuid.UUID, status string) error {
	res := r.conn(tx).WithContext(ctx).
		Model(&contracts.Contract{}).
		Where("id = ?", id).
		Update("status", status)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *contractRepo) CountActiveByClient(ctx context.Context, tx *gorm.DB, clientID uuid.UUID) (int64, error) {
	var count int64
	err := r.conn(tx).WithContext(ctx).
		Model(&contracts.Contract{}).
		Where("client_id = ? AND status = ?", clientID, contracts.ContractStatusActive).
		Count(&count).Error
	if err != nil {
		return 0, err
	}
	return count, nil
}

func (r *contractRepo) CountActiveRenewingBefore(ctx context.Context, tx *gorm.DB, cutoff time.Time) (int64, error) {
	var count int64
	err := r.conn(tx).WithContext(ctx).
		Model(&contracts.Contract{}).
		Where("status = ? AND renewal_date <= ?", contracts.ContractStatusActive, cutoff).
		Count(&count).Error
	if err != nil {
		return 0, err
	}
	return count, nil
}

func (r *contractRepo) Update(ctx context.Context, tx *gorm.DB, id uuid.UUID, fields map[string]interface{}) (*contracts.Contract, error) {
	conn := r.conn(tx).WithContext(ctx)
	res := conn.Model(&contracts.Contract{}).Where("id = ?", id).Updates(fields)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	var updated contracts.Contract
	if err := conn.First(&updated, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &updated, nil
}

func (r *contractRepo) Delete(ctx context.Context, tx *gorm.DB, id uuid.UUID) error {
	return r.conn(tx).WithContext(ctx).Delete(&contracts.Contract{}, "id = ?", id).Error
}
