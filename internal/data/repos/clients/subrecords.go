package clients

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/arganhr/backoffice/internal/domain/clients"
	"github.com/arganhr/backoffice/internal/platform/logger"
)

// Contacts, addresses and audits are owned leaf rows of a client; unlike
// the client itself they are removed physically.

type ContactRepo interface {
	Create(ctx context.Context, tx *gorm.DB, contact *clients.ClientContact) (*clients.ClientContact, error)
	GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*clients.ClientContact, error)
	ListByClient(ctx context.Context, tx *gorm.DB, clientID uuid.UUID) ([]*clients.ClientContact, error)
	Update(ctx context.Context, tx *gorm.DB, id uuid.UUID, fields map[string]interface{}) (*clients.ClientContact, error)
	Delete(ctx context.Context, tx *gorm.DB, id uuid.UUID) error
}

type contactRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewContactRepo(db *gorm.DB, log *logger.Logger) ContactRepo {
	return &contactRepo{db: db, log: log.With("repo", "ContactRepo")}
}

func (r *contactRepo) conn(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return r.db
}

func (r *contactRepo) Create(ctx context.Context, tx *gorm.DB, contact *clients.ClientContact) (*clients.ClientContact, error) {
	if err := r.conn(tx).WithContext(ctx).Create(contact).Error; err != nil {
		return nil, err
	}
	return contact, nil
}

func (r *contactRepo) GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*clients.ClientContact, error) {
	var result clients.ClientContact
	if err := r.conn(tx).WithContext(ctx).First(&result, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &result, nil
}

func (r *contactRepo) ListByClient(ctx context.Context, tx *gorm.DB, clientID uuid.UUID) ([]*clients.ClientContact, error) {
	var results []*clients.ClientContact
	err := r.conn(tx).WithContext(ctx).
		Where("client_id = ?", clientID).
		Order("created_at asc").
		Find(&results).Error
	if err != nil {
		return nil, err
	}
	return results, nil
}

func (r *contactRepo) Update(ctx context.Context, tx *gorm.DB, id uuid.UUID, fields map[string]interface{}) (*clients.ClientContact, error) {
	conn := r.conn(tx).WithContext(ctx)
	res := conn.Model(&clients.ClientContact{}).Where("id = ?", id).Updates(fields)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	var updated clients.ClientContact
	if err := conn.First(&updated, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &updated, nil
}

func (r *contactRepo) Delete(ctx context.Context, tx *gorm.DB, id uuid.UUID) error {
	return r.conn(tx).WithContext(ctx).Delete(&clients.ClientContact{}, "id = ?", id).Error
}

type AddressRepo interface {
	Create(ctx context.Context, tx *gorm.DB, address *clients.ClientAddress) (*clients.ClientAddress, error)
	GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*clients.ClientAddress, error)
	ListByClient(ctx context.Context, tx *gorm.DB, clientID uuid.UUID) ([]*clients.ClientAddress, error)
	Update(ctx context.Context, tx *gorm.DB, id uuid.UUID, fields map[string]interface{}) (*clients.ClientAddress, error)
	Delete(ctx context.Context, tx *gorm.DB, id uuid.UUID) error
}

type addressRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewAddressRepo(db *gorm.DB, log *logger.Logger) AddressRepo {
	return &addressRepo{db: db, log: log.With("repo", "AddressRepo")}
}

func (r *addressRepo) conn(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return r.db
}

func (r *addressRepo) Create(ctx context.Context, tx *gorm.DB, address *clients.ClientAddress) (*clients.ClientAddress, error) {
	if err := r.conn(tx).WithContext(ctx).Create(address).Error; err != nil {
		return nil, err
	}
	return address, nil
}

func (r *addressRepo) GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*clients.ClientAddress, error) {
	var result clients.ClientAddress
	if err := r.conn(tx).WithContext(ctx).First(&result, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &result, nil
}

func (r *addressRepo) ListByClient(ctx context.Context, tx *gorm.DB, clientID uuid.UUID) ([]*clients.ClientAddress, error) {
	var results []*clients.ClientAddress
	err := r.conn(tx).WithContext(ctx).
		Where("client_id = ?", clientID).
		Order("created_at asc").
		Find(&results).Error
	if err != nil {
		return nil, err
	}
	return results, nil
}

func (r *addressRepo) Update(ctx context.Context, tx *gorm.DB, id uuid.UUID, fields map[string]interface{}) (*clients.ClientAddress, error) {
	conn := r.conn(tx).WithContext(ctx)
	res := conn.Model(&clients.ClientAddress{}).Where("id = ?", id).Updates(fields)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	var updated clients.ClientAddress
	if err := conn.First(&updated, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &updated, nil
}

func (r *addressRepo) Delete(ctx context.Context, tx *gorm.DB, id uuid.UUID) error {
	return r.conn(tx).WithContext(ctx).Delete(&clients.ClientAddress{}, "id = ?", id).Error
}

type AuditRepo interface {
	Create(ctx context.Context, tx *gorm.DB, audit *clients.ClientAudit) (*clients.ClientAudit, error)
	GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*clients.ClientAudit, error)
	ListByClient(ctx context.Context, tx *gorm.DB, clientID uuid.UUID) ([]*clients.ClientAudit, error)
	Update(ctx context.Context, tx *gorm.DB, id uuid.UUID, fields map[string]interface{}) (*clients.ClientAudit, error)
	Delete(ctx context.Context, tx *gorm.DB, id uuid.UUID) error
}

type auditRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewAuditRepo(db *gorm.DB, log *logger.Logger) AuditRepo {
	return &auditRepo{db: db, log: log.With("repo", "AuditRepo")}
}

func (r *auditRepo) conn(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return r.db
}

func (r *auditRepo) Create(ctx context.Context, tx *gorm.DB, audit *clients.ClientAudit) (*clients.ClientAudit, error) {
	if err := r.conn(tx).WithContext(ctx).Create(audit).Error; err != nil {
		return nil, err
	}
	return audit, nil
}

func (r *auditRepo) GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*clients.ClientAudit, error) {
	var result clients.ClientAudit
	if err := r.conn(tx).WithContext(ctx).First(&result, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &result, nil
}

func (r *auditRepo) ListByClient(ctx context.Context, tx *gorm.DB, clientID uuid.UUID) ([]*clients.ClientAudit, error) {
	var results []*clients.ClientAudit
	err := r.conn(tx).WithContext(ctx).
		Where("client_id = ?", clientID).
		Order("next_audit_date asc").
		Find(&results).Error
	if err != nil {
		return nil, err
	}
	return results, nil
}

func (r *auditRepo) Update(ctx context.Context, tx *gorm.DB, id uuid.UUID, fields map[string]interface{}) (*clients.ClientAudit, error) {
	conn := r.conn(tx).WithContext(ctx)
	res := conn.Model(&clients.ClientAudit{}).Where("id = ?", id).Updates(fields)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	var updated clients.ClientAudit
	if err := conn.First(&updated, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &updated, nil
}

func (r *auditRepo) Delete(ctx context.Context, tx *gorm.DB, id uuid.UUID) error {
	return r.conn(tx).WithContext(ctx).Delete(&clients.ClientAudit{}, "id = ?", id).Error
}
