package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/arganhr/backoffice/internal/config"
	"github.com/arganhr/backoffice/internal/data/repos"
	"github.com/arganhr/backoffice/internal/domain"
	"github.com/arganhr/backoffice/internal/domain/contracts"
	"github.com/arganhr/backoffice/internal/platform/logger"
)

// draftUpdateAllowList applies while a contract is DRAFT; once ACTIVE
// only the signed date may change, and ARCHIVED rows are immutable.
var draftUpdateAllowList = map[string]bool{
	"start_date":            true,
	"renewal_date":          true,
	"signed_date":           true,
	"inclusive_hours":       true,
	"hourly_rate":           true,
	"daily_rate":            true,
	"mileage_rate":          true,
	"overnight_rate":        true,
	"services_in_scope":     true,
	"services_out_of_scope": true,
}

var activeUpdateAllowList = map[string]bool{
	"signed_date": true,
}

type CreateContractInput struct {
	ClientID        uuid.UUID  `json:"client_id"`
	Status          string     `json:"status"`
	StartDate       *time.Time `json:"start_date"`
	RenewalDate     *time.Time `json:"renewal_date"`
	ReplaceExisting bool       `json:"replace_existing"`

	InclusiveHours *int64 `json:"inclusive_hours"`
	HourlyRate     *int64 `json:"hourly_rate"`
	DailyRate      *int64 `json:"daily_rate"`
	MileageRate    *int64 `json:"mileage_rate"`
	OvernightRate  *int64 `json:"overnight_rate"`

	ServicesInScope    []string `json:"services_in_scope"`
	ServicesOutOfScope []string `json:"services_out_of_scope"`
}

type ContractService interface {
	Create(ctx context.Context, input CreateContractInput) (*domain.Contract, error)
	Get(ctx context.Context, id uuid.UUID) (*domain.Contract, error)
	ListByClient(ctx context.Context, clientID uuid.UUID) ([]*domain.Contract, error)
	SetActive(ctx context.Context, clientID, contractID uuid.UUID) (*domain.Contract, error)
	Finalize(ctx context.Context, clientID, contractID uuid.UUID) (*domain.Contract, error)
	Update(ctx context.Context, id uuid.UUID, patch map[string]interface{}) (*domain.Contract, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type contractService struct {
	db           *gorm.DB
	log          *logger.Logger
	contractRepo repos.ContractRepo
	clientRepo   repos.ClientRepo
	pricing      config.Pricing
	officeCode   string
}

func NewContractService(
	db *gorm.DB,
	log *logger.Logger,
	contractRepo repos.ContractRepo,
	clientRepo repos.ClientRepo,
	pricing config.Pricing,
	officeCode string,
) ContractService {
	if officeCode == "" {
		officeCode = "1"
	}
	return &contractService{
		db:           db,
		log:          log.With("service", "ContractService"),
		contractRepo: contractRepo,
		clientRepo:   clientRepo,
		pricing:      pricing,
		officeCode:   officeCode,
	}
}

// contractNumber derives the human-readable document number, e.g.
// CON-1-005-003 for office 1, client seq 5, version 3.
func (s *contractService) contractNumber(clientSeq, version int64) string {
	return fmt.Sprintf("CON-%s-%03d-%03d", s.officeCode, clientSeq, version)
}

func (s *contractService) Create(ctx context.Context, input CreateContractInput) (*domain.Contract, error) {
	if input.Status == "" {
		// A replacement steps straight into the slot it frees up.
		if input.ReplaceExisting {
			input.Status = contracts.ContractStatusActive
		} else {
			input.Status = contracts.ContractStatusDraft
		}
	}

	var fe fieldErrors
	if input.ClientID == uuid.Nil {
		fe.add("client_id", "Client is required")
	}
	if input.StartDate == nil {
		fe.add("start_date", "Start date is required")
	}
	if input.RenewalDate == nil {
		fe.add("renewal_date", "Renewal date is required")
	}
	if input.StartDate != nil && input.RenewalDate != nil && !input.RenewalDate.After(*input.StartDate) {
		fe.add("renewal_date", "Renewal date must be after the start date")
	}
	if input.Status != contracts.ContractStatusDraft && input.Status != contracts.ContractStatusActive {
		fe.add("status", "New contracts must be DRAFT or ACTIVE")
	}
	for field, rate := range map[string]*int64{
		"inclusive_hours": input.InclusiveHours,
		"hourly_rate":     input.HourlyRate,
		"daily_rate":      input.DailyRate,
		"mileage_rate":    input.MileageRate,
		"overnight_rate":  input.OvernightRate,
	} {
		if rate != nil && *rate < 0 {
			fe.add(field, "Amount cannot be negative")
		}
	}
	if err := fe.asError(); err != nil {
		return nil, err
	}

	var created *domain.Contract
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		client, err := s.clientRepo.GetByID(ctx, tx, input.ClientID)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &NotFoundError{Entity: "client", ID: input.ClientID.String()}
		}
		if err != nil {
			return err
		}

		if input.ReplaceExisting {
			archived, err := s.contractRepo.ArchiveActiveByClient(ctx, tx, input.ClientID)
			if err != nil {
				return err
			}
			if archived > 0 {
				s.log.Info("Archived prior active contracts", "client_id", input.ClientID, "count", archived)
			}
		} else if input.Status == contracts.ContractStatusActive {
			active, err := s.contractRepo.CountActiveByClient(ctx, tx, input.ClientID)
			if err != nil {
				return err
			}
			if active > 0 {
				return NewValidationError("Client already has an active contract; set replace_existing to archive it")
			}
		}

		maxVersion, err := s.contractRepo.MaxVersion(ctx, tx, input.ClientID)
		if err != nil {
			return err
		}
		version := maxVersion + 1

		defaults := s.pricing.ForTier(client.ServiceTier)
		contract := &domain.Contract{
			ID:             uuid.New(),
			ClientID:       input.ClientID,
			ContractNumber: s.contractNumber(client.Seq, version),
			Version:        version,
			Status:         input.Status,
			StartDate:      *input.StartDate,
			RenewalDate:    *input.RenewalDate,
			InclusiveHours: pickRate(input.InclusiveHours, defaults.InclusiveHours),
			HourlyRate:     pickRate(input.HourlyRate, defaults.HourlyRate),
			DailyRate:      pickRate(input.DailyRate, defaults.DailyRate),
			MileageRate:    pickRate(input.MileageRate, defaults.MileageRate),
			OvernightRate:  pickRate(input.OvernightRate, defaults.OvernightRate),
		}
		if contract.ServicesInScope, err = encodeServiceList(input.ServicesInScope); err != nil {
			return err
		}
		if contract.ServicesOutOfScope, err = encodeServiceList(input.ServicesOutOfScope); err != nil {
			return err
		}

		if created, err = s.contractRepo.Create(ctx, tx, contract); err != nil {
			return err
		}

		if input.Status == contracts.ContractStatusActive {
			return s.checkSingleActive(ctx, tx, input.ClientID)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.log.Info("Contract created", "contract_id", created.ID, "number", created.ContractNumber, "status", created.Status)
	return created, nil
}

func (s *contractService) Get(ctx context.Context, id uuid.UUID) (*domain.Contract, error) {
	contract, err := s.contractRepo.GetByID(ctx, nil, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, &NotFoundError{Entity: "contract", ID: id.String()}
	}
	if err != nil {
		return nil, err
	}
	return contract, nil
}

func (s *contractService) ListByClient(ctx context.Context, clientID uuid.UUID) ([]*domain.Contract, error) {
	return s.contractRepo.ListByClient(ctx, nil, clientID)
}

// SetActive promotes an already-finalized contract. Activating a DRAFT
// goes through Finalize instead.
func (s *contractService) SetActive(ctx context.Context, clientID, contractID uuid.UUID) (*domain.Contract, error) {
	var result *domain.Contract
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		contract, err := s.loadClientContract(ctx, tx, clientID, contractID)
		if err != nil {
			return err
		}
		if contract.Status == contracts.ContractStatusDraft {
			return NewValidationError("Cannot set DRAFT contracts as ACTIVE")
		}
		if contract.Status == contracts.ContractStatusActive {
			result = contract
			return nil
		}
		return s.activate(ctx, tx, clientID, contractID, &result)
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// Finalize is the explicit DRAFT -> ACTIVE transition.
func (s *contractService) Finalize(ctx context.Context, clientID, contractID uuid.UUID) (*domain.Contract, error) {
	var result *domain.Contract
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		contract, err := s.loadClientContract(ctx, tx, clientID, contractID)
		if err != nil {
			return err
		}
		if contract.Status != contracts.ContractStatusDraft {
			return NewValidationError("Only DRAFT contracts can be finalized")
		}
		return s.activate(ctx, tx, clientID, contractID, &result)
	})
	if err != nil {
		return nil, err
	}
	s.log.Info("Contract finalized", "contract_id", contractID)
	return result, nil
}

func (s *contractService) loadClientContract(ctx context.Context, tx *gorm.DB, clientID, contractID uuid.UUID) (*domain.Contract, error) {
	contract, err := s.contractRepo.GetByID(ctx, tx, contractID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, &NotFoundError{Entity: "contract", ID: contractID.String()}
	}
	if err != nil {
		return nil, err
	}
	if contract.ClientID != clientID {
		return nil, &NotFoundError{Entity: "contract", ID: contractID.String()}
	}
	return contract, nil
}

func (s *contractService) activate(ctx context.Context, tx *gorm.DB, clientID, contractID uuid.UUID, out **domain.Contract) error {
	if _, err := s.contractRepo.ArchiveActiveByClient(ctx, tx, clientID); err != nil {
		return err
	}
	if err := s.contractRepo.SetStatus(ctx, tx, contractID, contracts.ContractStatusActive); err != nil {
		return err
	}
	if err := s.checkSingleActive(ctx, tx, clientID); err != nil {
		return err
	}
	updated, err := s.contractRepo.GetByID(ctx, tx, contractID)
	if err != nil {
		return err
	}
	*out = updated
	return nil
}

// checkSingleActive re-counts after a swap; a count other than one means
// a concurrent writer got past us and the transaction must abort.
func (s *contractService) checkSingleActive(ctx context.Context, tx *gorm.DB, clientID uuid.UUID) error {
	count, err := s.contractRepo.CountActiveByClient(ctx, tx, clientID)
	if err != nil {
		return err
	}
	if count != 1 {
		s.log.Error("Active contract invariant violated", "client_id", clientID, "active_count", count)
		return &InvariantViolationError{
			Message: fmt.Sprintf("expected exactly one active contract for client %s, found %d", clientID, count),
		}
	}
	return nil
}

func (s *contractService) Update(ctx context.Context, id uuid.UUID, patch map[string]interface{}) (*domain.Contract, error) {
	var updated *domain.Contract
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		contract, err := s.contractRepo.GetByID(ctx, tx, id)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &NotFoundError{Entity: "contract", ID: id.String()}
		}
		if err != nil {
			return err
		}

		var allowList map[string]bool
		switch contract.Status {
		case contracts.ContractStatusDraft:
			allowList = draftUpdateAllowList
		case contracts.ContractStatusActive:
			allowList = activeUpdateAllowList
		default:
			return NewValidationError("ARCHIVED contracts cannot be modified")
		}

		fields, err := filterPatch(patch, allowList)
		if err != nil {
			return err
		}
		if err := normalizeContractPatch(fields, contract); err != nil {
			return err
		}

		updated, err = s.contractRepo.Update(ctx, tx, id, fields)
		return err
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// Delete hard-removes a contract, which is only legal while it is DRAFT.
func (s *contractService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		contract, err := s.contractRepo.GetByID(ctx, tx, id)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &NotFoundError{Entity: "contract", ID: id.String()}
		}
		if err != nil {
			return err
		}
		if contract.Status != contracts.ContractStatusDraft {
			return NewValidationError("Only DRAFT contracts can be deleted")
		}
		return s.contractRepo.Delete(ctx, tx, id)
	})
}

func pickRate(input *int64, fallback int64) int64 {
	if input != nil {
		return *input
	}
	return fallback
}

func encodeServiceList(names []string) (datatypes.JSON, error) {
	if names == nil {
		names = []string{}
	}
	cleaned := make([]string, 0, len(names))
	for _, name := range names {
		if trimmed := strings.TrimSpace(name); trimmed != "" {
			cleaned = append(cleaned, trimmed)
		}
	}
	raw, err := json.Marshal(cleaned)
	if err != nil {
		return nil, err
	}
	return datatypes.JSON(raw), nil
}

// normalizeContractPatch coerces JSON-decoded values and validates the
// date pair against the stored row.
func normalizeContractPatch(fields map[string]interface{}, current *domain.Contract) error {
	var fe fieldErrors

	start := current.StartDate
	renewal := current.RenewalDate
	for _, key := range []string{"start_date", "renewal_date", "signed_date"} {
		raw, ok := fields[key]
		if !ok {
			continue
		}
		parsed, err := toTime(raw)
		if err != nil {
			fe.add(key, "Invalid date")
			continue
		}
		fields[key] = parsed
		switch key {
		case "start_date":
			start = parsed
		case "renewal_date":
			renewal = parsed
		}
	}
	if !renewal.After(start) {
		fe.add("renewal_date", "Renewal date must be after the start date")
	}

	for _, key := range []string{"inclusive_hours", "hourly_rate", "daily_rate", "mileage_rate", "overnight_rate"} {
		raw, ok := fields[key]
		if !ok {
			continue
		}
		v, err := toInt64(raw)
		if err != nil || v < 0 {
			fe.add(key, "Amount must be a non-negative integer")
			continue
		}
		fields[key] = v
	}

	for _, key := range []string{"services_in_scope", "services_out_of_scope"} {
		raw, ok := fields[key]
		if !ok {
			continue
		}
		names, err := toStringSlice(raw)
		if err != nil {
			fe.add(key, "Must be a list of service names")
			continue
		}
		encoded, err := encodeServiceList(names)
		if err != nil {
			fe.add(key, "Must be a list of service names")
			continue
		}
		fields[key] = encoded
	}

	return fe.asError()
}

func toTime(raw interface{}) (time.Time, error) {
	switch v := raw.(type) {
	case time.Time:
		return v, nil
	case *time.Time:
		if v == nil {
			return time.Time{}, fmt.Errorf("nil time")
		}
		return *v, nil
	case string:
		return time.Parse(time.RFC3339, v)
	default:
		return time.Time{}, fmt.Errorf("not a time: %T", raw)
	}
}

func toStringSlice(raw interface{}) ([]string, error) {
	switch v := raw.(type) {
	case []string:
		return v, nil
	case []interface{}:
		out := make([]string, 0, len(v))
		for _, item := range v {
			str, ok := item.(string)
			if !ok {
				return nil, fmt.Errorf("not a string: %T", item)
			}
			out = append(out, str)
		}
		return out, nil
	default:
		return nil, fmt.Errorf("not a list: %T", raw)
	}
}
