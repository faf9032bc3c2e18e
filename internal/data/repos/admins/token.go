package admins

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/arganhr/backoffice/internal/domain/admins"
	"github.com/arganhr/backoffice/internal/platform/logger"
)

type TokenRepo interface {
	Upsert(ctx context.Context, tx *gorm.DB, token *admins.AdminToken) (*admins.AdminToken, error)
	GetByToken(ctx context.Context, tx *gorm.DB, token string) (*admins.AdminToken, error)
	DeleteByAdmin(ctx context.Context, tx *gorm.DB, adminID uuid.UUID) error
}

type tokenRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewTokenRepo(db *gorm.DB, log *logger.Logger) TokenRepo {
	return &tokenRepo{db: db, log: log.With("repo", "TokenRepo")}
}

func (r *tokenRepo) conn(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return r.db
}

// Upsert replaces any existing refresh token row for the admin.
func (r *tokenRepo) Upsert(ctx context.Context, tx *gorm.DB, token *admins.AdminToken) (*admins.AdminToken, error) {
	conn := r.conn(tx).WithContext(ctx)
	if err := conn.Delete(&admins.AdminToken{}, "admin_id = ?", token.AdminID).Error; err != nil {
		return nil, err
	}
	if err := conn.Create(token).Error; err != nil {
		return nil, err
	}
	return token, nil
}

func (r *tokenRepo) GetByToken(ctx context.Context, tx *gorm.DB, token string) (*admins.AdminToken, error) {
	var result admins.AdminToken
	err := r.conn(tx).WithContext(ctx).First(&result, "token = ?", token).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (r *tokenRepo) DeleteByAdmin(ctx context.Context, tx *gorm.DB, adminID uuid.UUID) error {
	return r.conn(tx).WithContext(ctx).Delete(&admins.AdminToken{}, "admin_id = ?", adminID).Error
}
