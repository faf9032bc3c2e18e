package services

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/arganhr/backoffice/internal/config"
	"github.com/arganhr/backoffice/internal/data/repos"
	"github.com/arganhr/backoffice/internal/domain"
	"github.com/arganhr/backoffice/internal/domain/clients"
	"github.com/arganhr/backoffice/internal/platform/logger"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// clientUpdateAllowList is the schema-driven whitelist of patchable
// client columns. Anything outside it is rejected, never silently
// dropped.
var clientUpdateAllowList = map[string]bool{
	"name":             true,
	"company_number":   true,
	"sector":           true,
	"type":             true,
	"service_tier":     true,
	"monthly_retainer": true,
	"payment_method":   true,
	"email":            true,
	"phone":            true,
	"status":           true,
	"external_audit":   true,
}

type CreateClientInput struct {
	Name            string  `json:"name"`
	CompanyNumber   string  `json:"company_number"`
	Sector          string  `json:"sector"`
	Type            string  `json:"type"`
	ServiceTier     string  `json:"service_tier"`
	MonthlyRetainer *int64  `json:"monthly_retainer"`
	PaymentMethod   string  `json:"payment_method"`
	Email           string  `json:"email"`
	Phone           string  `json:"phone"`
	Status          string  `json:"status"`
	ExternalAudit   bool    `json:"external_audit"`
}

type ContactInput struct {
	Type  string `json:"type"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
	Role  string `json:"role"`
}

type AddressInput struct {
	Type     string `json:"type"`
	Line1    string `json:"line1"`
	Line2    string `json:"line2"`
	City     string `json:"city"`
	Postcode string `json:"postcode"`
}

type AuditInput struct {
	Auditor       string     `json:"auditor"`
	Interval      string     `json:"interval"`
	NextAuditDate *time.Time `json:"next_audit_date"`
}

type ClientService interface {
	Create(ctx context.Context, input CreateClientInput) (*domain.Client, error)
	Get(ctx context.Context, id uuid.UUID) (*domain.Client, error)
	List(ctx context.Context, filter repos.ClientListFilter) ([]*domain.Client, error)
	Update(ctx context.Context, id uuid.UUID, patch map[string]interface{}) (*domain.Client, error)
	Deactivate(ctx context.Context, id uuid.UUID) (*domain.Client, error)
	UniqueSectors(ctx context.Context) []string

	AddContact(ctx context.Context, clientID uuid.UUID, input ContactInput) (*domain.ClientContact, error)
	RemoveContact(ctx context.Context, id uuid.UUID) error
	AddAddress(ctx context.Context, clientID uuid.UUID, input AddressInput) (*domain.ClientAddress, error)
	RemoveAddress(ctx context.Context, id uuid.UUID) error
	AddAudit(ctx context.Context, clientID uuid.UUID, input AuditInput) (*domain.ClientAudit, error)
	RemoveAudit(ctx context.Context, id uuid.UUID) error
}

type clientService struct {
	db          *gorm.DB
	log         *logger.Logger
	clientRepo  repos.ClientRepo
	contactRepo repos.ContactRepo
	addressRepo repos.AddressRepo
	auditRepo   repos.AuditRepo
	pricing     config.Pricing
}

func NewClientService(
	db *gorm.DB,
	log *logger.Logger,
	clientRepo repos.ClientRepo,
	contactRepo repos.ContactRepo,
	addressRepo repos.AddressRepo,
	auditRepo repos.AuditRepo,
	pricing config.Pricing,
) ClientService {
	return &clientService{
		db:          db,
		log:         log.With("service", "ClientService"),
		clientRepo:  clientRepo,
		contactRepo: contactRepo,
		addressRepo: addressRepo,
		auditRepo:   auditRepo,
		pricing:     pricing,
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (s *clientService) Create(ctx context.Context, input CreateClientInput) (*domain.Client, error) {
	input.Name = strings.TrimSpace(input.Name)
	input.Email = normalizeEmail(input.Email)
	if input.Type == "" {
		input.Type = clients.ClientTypeCompany
	}
	if input.Status == "" {
		input.Status = clients.ClientStatusPending
	}
	if input.PaymentMethod == "" {
		input.PaymentMethod = clients.PaymentMethodInvoice
	}

	var fe fieldErrors
	if input.Name == "" {
		fe.add("name", "Name is required")
	}
	if input.Email == "" {
		fe.add("email", "Email is required")
	} else if !emailPattern.MatchString(input.Email) {
		fe.add("email", "Email is not a valid address")
	}
	if !clients.ValidServiceTier(input.ServiceTier) {
		fe.add("service_tier", "Service tier must be one of TIER_1, DOC_ONLY, AD_HOC")
	}
	if !clients.ValidClientStatus(input.Status) {
		fe.add("status", "Status must be one of ACTIVE, PENDING, INACTIVE")
	}
	if !clients.ValidClientType(input.Type) {
		fe.add("type", "Type must be COMPANY or INDIVIDUAL")
	}
	if !clients.ValidPaymentMethod(input.PaymentMethod) {
		fe.add("payment_method", "Payment method must be INVOICE or DIRECT_DEBIT")
	}
	if input.MonthlyRetainer != nil && *input.MonthlyRetainer < 0 {
		fe.add("monthly_retainer", "Monthly retainer cannot be negative")
	}
	if err := fe.asError(); err != nil {
		return nil, err
	}

	retainer := s.pricing.ForTier(input.ServiceTier).MonthlyRetainer
	if input.MonthlyRetainer != nil {
		retainer = *input.MonthlyRetainer
	}

	var created *domain.Client
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		inUse, err := s.clientRepo.EmailInUse(ctx, tx, input.Email, uuid.Nil)
		if err != nil {
			return err
		}
		if inUse {
			return &EmailExistsError{Email: input.Email}
		}

		seq, err := s.clientRepo.NextSeq(ctx, tx)
		if err != nil {
			return err
		}

		client := &domain.Client{
			ID:              uuid.New(),
			Seq:             seq,
			Name:            input.Name,
			CompanyNumber:   strings.TrimSpace(input.CompanyNumber),
			Type:            input.Type,
			ServiceTier:     input.ServiceTier,
			MonthlyRetainer: retainer,
			PaymentMethod:   input.PaymentMethod,
			Email:           input.Email,
			Phone:           strings.TrimSpace(input.Phone),
			Status:          input.Status,
			ExternalAudit:   input.ExternalAudit,
		}
		if sector := strings.TrimSpace(input.Sector); sector != "" {
			client.Sector = &sector
		}

		created, err = s.clientRepo.Create(ctx, tx, client)
		return err
	})
	if err != nil {
		return nil, err
	}
	s.log.Info("Client created", "client_id", created.ID, "seq", created.Seq)
	return created, nil
}

func (s *clientService) Get(ctx context.Context, id uuid.UUID) (*domain.Client, error) {
	client, err := s.clientRepo.GetByID(ctx, nil, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, &NotFoundError{Entity: "client", ID: id.String()}
	}
	if err != nil {
		return nil, err
	}
	return client, nil
}

func (s *clientService) List(ctx context.Context, filter repos.ClientListFilter) ([]*domain.Client, error) {
	return s.clientRepo.List(ctx, nil, filter)
}

func (s *clientService) Update(ctx context.Context, id uuid.UUID, patch map[string]interface{}) (*domain.Client, error) {
	fields, err := filterPatch(patch, clientUpdateAllowList)
	if err != nil {
		return nil, err
	}
	if err := validateClientPatch(fields); err != nil {
		return nil, err
	}

	var updated *domain.Client
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if raw, ok := fields["email"]; ok {
			email := normalizeEmail(raw.(string))
			fields["email"] = email
			inUse, err := s.clientRepo.EmailInUse(ctx, tx, email, id)
			if err != nil {
				return err
			}
			if inUse {
				return &EmailExistsError{Email: email}
			}
		}
		var err error
		updated, err = s.clientRepo.Update(ctx, tx, id, fields)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &NotFoundError{Entity: "client", ID: id.String()}
		}
		return err
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// Deactivate is the soft delete: rows stay put, status flips.
func (s *clientService) Deactivate(ctx context.Context, id uuid.UUID) (*domain.Client, error) {
	updated, err := s.clientRepo.Update(ctx, nil, id, map[string]interface{}{
		"status": clients.ClientStatusInactive,
	})
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, &NotFoundError{Entity: "client", ID: id.String()}
	}
	if err != nil {
		return nil, err
	}
	s.log.Info("Client deactivated", "client_id", id)
	return updated, nil
}

// UniqueSectors never propagates an error: a failed lookup must not block
// rendering the sector dropdown, so it logs and returns an empty list.
func (s *clientService) UniqueSectors(ctx context.Context) []string {
	sectors, err := s.clientRepo.DistinctSectors(ctx, nil)
	if err != nil {
		s.log.Error("Failed to fetch distinct sectors", "error", err)
		return []string{}
	}
	return sectors
}

func (s *clientService) AddContact(ctx context.Context, clientID uuid.UUID, input ContactInput) (*domain.ClientContact, error) {
	if input.Type == "" {
		input.Type = clients.ContactTypePrimary
	}
	var fe fieldErrors
	if strings.TrimSpace(input.Name) == "" {
		fe.add("name", "Contact name is required")
	}
	if !clients.ValidContactType(input.Type) {
		fe.add("type", "Contact type must be one of PRIMARY, SECONDARY, INVOICE")
	}
	if input.Email != "" && !emailPattern.MatchString(normalizeEmail(input.Email)) {
		fe.add("email", "Email is not a valid address")
	}
	if err := fe.asError(); err != nil {
		return nil, err
	}
	if _, err := s.Get(ctx, clientID); err != nil {
		return nil, err
	}
	return s.contactRepo.Create(ctx, nil, &domain.ClientContact{
		ID:       uuid.New(),
		ClientID: clientID,
		Type:     input.Type,
		Name:     strings.TrimSpace(input.Name),
		Email:    normalizeEmail(input.Email),
		Phone:    strings.TrimSpace(input.Phone),
		Role:     strings.TrimSpace(input.Role),
	})
}

func (s *clientService) RemoveContact(ctx context.Context, id uuid.UUID) error {
	if _, err := s.contactRepo.GetByID(ctx, nil, id); errors.Is(err, gorm.ErrRecordNotFound) {
		return &NotFoundError{Entity: "contact", ID: id.String()}
	} else if err != nil {
		return err
	}
	return s.contactRepo.Delete(ctx, nil, id)
}

func (s *clientService) AddAddress(ctx context.Context, clientID uuid.UUID, input AddressInput) (*domain.ClientAddress, error) {
	if input.Type == "" {
		input.Type = clients.AddressTypeService
	}
	var fe fieldErrors
	if strings.TrimSpace(input.Line1) == "" {
		fe.add("line1", "Address line 1 is required")
	}
	if !clients.ValidAddressType(input.Type) {
		fe.add("type", "Address type must be SERVICE or INVOICE")
	}
	if err := fe.asError(); err != nil {
		return nil, err
	}
	if _, err := s.Get(ctx, clientID); err != nil {
		return nil, err
	}
	return s.addressRepo.Create(ctx, nil, &domain.ClientAddress{
		ID:       uuid.New(),
		ClientID: clientID,
		Type:     input.Type,
		Line1:    strings.TrimSpace(input.Line1),
		Line2:    strings.TrimSpace(input.Line2),
		City:     strings.TrimSpace(input.City),
		Postcode: strings.TrimSpace(input.Postcode),
	})
}

func (s *clientService) RemoveAddress(ctx context.Context, id uuid.UUID) error {
	if _, err := s.addressRepo.GetByID(ctx, nil, id); errors.Is(err, gorm.ErrRecordNotFound) {
		return &NotFoundError{Entity: "address", ID: id.String()}
	} else if err != nil {
		return err
	}
	return s.addressRepo.Delete(ctx, nil, id)
}

func (s *clientService) AddAudit(ctx context.Context, clientID uuid.UUID, input AuditInput) (*domain.ClientAudit, error) {
	if input.Interval == "" {
		input.Interval = clients.AuditIntervalAnnual
	}
	var fe fieldErrors
	if strings.TrimSpace(input.Auditor) == "" {
		fe.add("auditor", "Auditor is required")
	}
	if !clients.ValidAuditInterval(input.Interval) {
		fe.add("interval", "Interval must be one of QUARTERLY, SEMI_ANNUAL, ANNUAL")
	}
	if err := fe.asError(); err != nil {
		return nil, err
	}
	if _, err := s.Get(ctx, clientID); err != nil {
		return nil, err
	}
	return s.auditRepo.Create(ctx, nil, &domain.ClientAudit{
		ID:            uuid.New(),
		ClientID:      clientID,
		Auditor:       strings.TrimSpace(input.Auditor),
		Interval:      input.Interval,
		NextAuditDate: input.NextAuditDate,
	})
}

func (s *clientService) RemoveAudit(ctx context.Context, id uuid.UUID) error {
	if _, err := s.auditRepo.GetByID(ctx, nil, id); errors.Is(err, gorm.ErrRecordNotFound) {
		return &NotFoundError{Entity: "audit", ID: id.String()}
	} else if err != nil {
		return err
	}
	return s.auditRepo.Delete(ctx, nil, id)
}

func validateClientPatch(fields map[string]interface{}) error {
	var fe fieldErrors
	if raw, ok := fields["name"]; ok {
		if name, _ := raw.(string); strings.TrimSpace(name) == "" {
			fe.add("name", "Name cannot be empty")
		}
	}
	if raw, ok := fields["email"]; ok {
		email, _ := raw.(string)
		if !emailPattern.MatchString(normalizeEmail(email)) {
			fe.add("email", "Email is not a valid address")
		}
	}
	if raw, ok := fields["service_tier"]; ok {
		if tier, _ := raw.(string); !clients.ValidServiceTier(tier) {
			fe.add("service_tier", "Service tier must be one of TIER_1, DOC_ONLY, AD_HOC")
		}
	}
	if raw, ok := fields["status"]; ok {
		if status, _ := raw.(string); !clients.ValidClientStatus(status) {
			fe.add("status", "Status must be one of ACTIVE, PENDING, INACTIVE")
		}
	}
	if raw, ok := fields["type"]; ok {
		if t, _ := raw.(string); !clients.ValidClientType(t) {
			fe.add("type", "Type must be COMPANY or INDIVIDUAL")
		}
	}
	if raw, ok := fields["payment_method"]; ok {
		if pm, _ := raw.(string); !clients.ValidPaymentMethod(pm) {
			fe.add("payment_method", "Payment method must be INVOICE or DIRECT_DEBIT")
		}
	}
	if raw, ok := fields["monthly_retainer"]; ok {
		if v, err := toInt64(raw); err != nil || v < 0 {
			fe.add("monthly_retainer", "Monthly retainer must be a non-negative amount")
		} else {
			fields["monthly_retainer"] = v
		}
	}
	return fe.asError()
}
