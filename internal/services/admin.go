package services

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/arganhr/backoffice/internal/data/repos"
	"github.com/arganhr/backoffice/internal/domain"
	"github.com/arganhr/backoffice/internal/domain/admins"
	"github.com/arganhr/backoffice/internal/platform/logger"
)

var adminUpdateAllowList = map[string]bool{
	"email":      true,
	"first_name": true,
	"last_name":  true,
	"role":       true,
	"status":     true,
}

type CreateAdminInput struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Role      string `json:"role"`
}

type AdminService interface {
	Create(ctx context.Context, input CreateAdminInput) (*domain.Admin, error)
	Get(ctx context.Context, id uuid.UUID) (*domain.Admin, error)
	List(ctx context.Context) ([]*domain.Admin, error)
	Update(ctx context.Context, id uuid.UUID, patch map[string]interface{}) (*domain.Admin, error)
	Deactivate(ctx context.Context, id uuid.UUID) (*domain.Admin, error)
	ChangePassword(ctx context.Context, id uuid.UUID, current, next string) error
}

type adminService struct {
	db            *gorm.DB
	log           *logger.Logger
	adminRepo     repos.AdminRepo
	avatarService AvatarService
}

func NewAdminService(db *gorm.DB, log *logger.Logger, adminRepo repos.AdminRepo, avatarService AvatarService) AdminService {
	return &adminService{
		db:            db,
		log:           log.With("service", "AdminService"),
		adminRepo:     adminRepo,
		avatarService: avatarService,
	}
}

func (s *adminService) Create(ctx context.Context, input CreateAdminInput) (*domain.Admin, error) {
	input.Email = normalizeEmail(input.Email)
	input.FirstName = strings.TrimSpace(input.FirstName)
	input.LastName = strings.TrimSpace(input.LastName)
	if input.Role == "" {
		input.Role = admins.AdminRoleStaff
	}

	var fe fieldErrors
	if input.Email == "" {
		fe.add("email", "Email is required")
	} else if !emailPattern.MatchString(input.Email) {
		fe.add("email", "Email is not a valid address")
	}
	if len(input.Password) < 8 {
		fe.add("password", "Password must be at least 8 characters")
	}
	if input.FirstName == "" {
		fe.add("first_name", "First name is required")
	}
	if input.LastName == "" {
		fe.add("last_name", "Last name is required")
	}
	if !admins.ValidAdminRole(input.Role) {
		fe.add("role", "Role must be SUPERADMIN or STAFF")
	}
	if err := fe.asError(); err != nil {
		return nil, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	admin := &domain.Admin{
		ID:        uuid.New(),
		Email:     input.Email,
		Password:  string(hashed),
		FirstName: input.FirstName,
		LastName:  input.LastName,
		Role:      input.Role,
		Status:    admins.AdminStatusActive,
	}

	var created *domain.Admin
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		inUse, err := s.adminRepo.EmailInUse(ctx, tx, input.Email, uuid.Nil)
		if err != nil {
			return err
		}
		if inUse {
			return &EmailExistsError{Email: input.Email}
		}
		created, err = s.adminRepo.Create(ctx, tx, admin)
		return err
	})
	if err != nil {
		return nil, err
	}

	// Avatar generation runs after the account row is committed so a
	// duplicate-email rejection never leaves an orphaned bucket object.
	// Failures here must not block account creation.
	if s.avatarService != nil {
		if err := s.avatarService.CreateAndUploadAdminAvatar(ctx, admin); err != nil {
			s.log.Warn("Admin avatar generation failed", "admin_id", admin.ID, "error", err)
		} else if admin.AvatarBucketKey != "" {
			created, err = s.adminRepo.Update(ctx, nil, admin.ID, map[string]interface{}{
				"avatar_bucket_key": admin.AvatarBucketKey,
				"avatar_url":        admin.AvatarURL,
			})
			if err != nil {
				return nil, err
			}
		}
	}

	s.log.Info("Admin created", "admin_id", created.ID, "role", created.Role)
	return created, nil
}

func (s *adminService) Get(ctx context.Context, id uuid.UUID) (*domain.Admin, error) {
	admin, err := s.adminRepo.GetByID(ctx, nil, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, &NotFoundError{Entity: "admin", ID: id.String()}
	}
	if err != nil {
		return nil, err
	}
	return admin, nil
}

func (s *adminService) List(ctx context.Context) ([]*domain.Admin, error) {
	return s.adminRepo.List(ctx, nil)
}

func (s *adminService) Update(ctx context.Context, id uuid.UUID, patch map[string]interface{}) (*domain.Admin, error) {
	fields, err := filterPatch(patch, adminUpdateAllowList)
	if err != nil {
		return nil, err
	}

	var fe fieldErrors
	if raw, ok := fields["role"]; ok {
		if role, _ := raw.(string); !admins.ValidAdminRole(role) {
			fe.add("role", "Role must be SUPERADMIN or STAFF")
		}
	}
	if raw, ok := fields["status"]; ok {
		if status, _ := raw.(string); !admins.ValidAdminStatus(status) {
			fe.add("status", "Status must be ACTIVE or INACTIVE")
		}
	}
	if raw, ok := fields["email"]; ok {
		email := normalizeEmail(raw.(string))
		if !emailPattern.MatchString(email) {
			fe.add("email", "Email is not a valid address")
		}
		fields["email"] = email
	}
	if err := fe.asError(); err != nil {
		return nil, err
	}

	var updated *domain.Admin
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if raw, ok := fields["email"]; ok {
			inUse, err := s.adminRepo.EmailInUse(ctx, tx, raw.(string), id)
			if err != nil {
				return err
			}
			if inUse {
				return &EmailExistsError{Email: raw.(string)}
			}
		}
		var err error
		updated, err = s.adminRepo.Update(ctx, tx, id, fields)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &NotFoundError{Entity: "admin", ID: id.String()}
		}
		return err
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (s *adminService) Deactivate(ctx context.Context, id uuid.UUID) (*domain.Admin, error) {
	updated, err := s.adminRepo.Update(ctx, nil, id, map[string]interface{}{
		"status": admins.AdminStatusInactive,
	})
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, &NotFoundError{Entity: "admin", ID: id.String()}
	}
	if err != nil {
		return nil, err
	}
	s.log.Info("Admin deactivated", "admin_id", id)
	return updated, nil
}

func (s *adminService) ChangePassword(ctx context.Context, id uuid.UUID, current, next string) error {
	if len(next) < 8 {
		return &FieldValidationError{Fields: []FieldError{{Field: "password", Message: "Password must be at least 8 characters"}}}
	}
	admin, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(admin.Password), []byte(current)); err != nil {
		return NewValidationError("Current password is incorrect")
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(next), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	_, err = s.adminRepo.Update(ctx, nil, id, map[string]interface{}{"password": string(hashed)})
	return err
}
