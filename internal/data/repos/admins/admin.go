package admins

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/arganhr/backoffice/internal/domain/admins"
	"github.com/arganhr/backoffice/internal/platform/logger"
)

type AdminRepo interface {
	Create(ctx context.Context, tx *gorm.DB, admin *admins.Admin) (*admins.Admin, error)
	GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*admins.Admin, error)
	GetActiveByEmail(ctx context.Context, tx *gorm.DB, email string) (*admins.Admin, error)
	List(ctx context.Context, tx *gorm.DB) ([]*admins.Admin, error)
	Update(ctx context.Context, tx *gorm.DB, id uuid.UUID, fields map[string]interface{}) (*admins.Admin, error)
	EmailInUse(ctx context.Context, tx *gorm.DB, email string, excludeID uuid.UUID) (bool, error)
}

type adminRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewAdminRepo(db *gorm.DB, log *logger.Logger) AdminRepo {
	return &adminRepo{db: db, log: log.With("repo", "AdminRepo")}
}

func (r *adminRepo) conn(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return r.db
}

func (r *adminRepo) Create(ctx context.Context, tx *gorm.DB, admin *admins.Admin) (*admins.Admin, error) {
	if err := r.conn(tx).WithContext(ctx).Create(admin).Error; err != nil {
		return nil, err
	}
	return admin, nil
}

func (r *adminRepo) GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*admins.Admin, error) {
	var result admins.Admin
	if err := r.conn(tx).WithContext(ctx).First(&result, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &result, nil
}

// GetActiveByEmail returns nil, nil when no active admin has the email.
func (r *adminRepo) GetActiveByEmail(ctx context.Context, tx *gorm.DB, email string) (*admins.Admin, error) {
	var result admins.Admin
	err := r.conn(tx).WithContext(ctx).
		Where("email = ? AND status = ?", email, admins.AdminStatusActive).
		First(&result).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (r *adminRepo) List(ctx context.Context, tx *gorm.DB) ([]*admins.Admin, error) {
	var results []*admins.Admin
	err := r.conn(tx).WithContext(ctx).
		Order("last_name asc, first_name asc").
		Find(&results).Error
	if err != nil {
		return nil, err
	}
	return results, nil
}

func (r *adminRepo) Update(ctx context.Context, tx *gorm.DB, id uuid.UUID, fields map[string]interface{}) (*admins.Admin, error) {
	conn := r.conn(tx).WithContext(ctx)
	res := conn.Model(&admins.Admin{}).Where("id = ?", id).Updates(fields)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	var updated admins.Admin
	if err := conn.First(&updated, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &updated, nil
}

func (r *adminRepo) EmailInUse(ctx context.Context, tx *gorm.DB, email string, excludeID uuid.UUID) (bool, error) {
	var count int64
	q := r.conn(tx).WithContext(ctx).
		Model(&admins.Admin{}).
		Where("email = ? AND status = ?", email, admins.AdminStatusActive)
	if excludeID != uuid.Nil {
		q = q.Where("id <> ?", excludeID)
	}
	if err := q.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}
