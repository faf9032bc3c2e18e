package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/arganhr/backoffice/internal/data/repos"
	"github.com/arganhr/backoffice/internal/domain"
	"github.com/arganhr/backoffice/internal/domain/cases"
	"github.com/arganhr/backoffice/internal/platform/logger"
)

var interactionUpdateAllowList = map[string]bool{
	"content":        true,
	"action_owner":   true,
	"action_summary": true,
	"action_due_at":  true,
}

type PartyInput struct {
	Type string `json:"type"`
	Name string `json:"name"`
}

type CreateInteractionInput struct {
	PartyA        PartyInput `json:"party_a"`
	PartyB        PartyInput `json:"party_b"`
	Content       string     `json:"content"`
	ActionOwner   string     `json:"action_owner"`
	ActionSummary string     `json:"action_summary"`
	ActionDueAt   *time.Time `json:"action_due_at"`
	OccurredAt    *time.Time `json:"occurred_at"`
}

type InteractionService interface {
	Add(ctx context.Context, caseID uuid.UUID, input CreateInteractionInput) (*domain.Interaction, error)
	Get(ctx context.Context, id uuid.UUID) (*domain.Interaction, error)
	ListByCase(ctx context.Context, caseID uuid.UUID) ([]*domain.Interaction, error)
	Update(ctx context.Context, id uuid.UUID, patch map[string]interface{}) (*domain.Interaction, error)
	SetActiveAction(ctx context.Context, id uuid.UUID) (*domain.Interaction, error)
	UnsetActiveAction(ctx context.Context, id uuid.UUID) (*domain.Interaction, error)
}

type interactionService struct {
	db              *gorm.DB
	log             *logger.Logger
	interactionRepo repos.InteractionRepo
	caseRepo        repos.CaseRepo
}

func NewInteractionService(
	db *gorm.DB,
	log *logger.Logger,
	interactionRepo repos.InteractionRepo,
	caseRepo repos.CaseRepo,
) InteractionService {
	return &interactionService{
		db:              db,
		log:             log.With("service", "InteractionService"),
		interactionRepo: interactionRepo,
		caseRepo:        caseRepo,
	}
}

func (s *interactionService) Add(ctx context.Context, caseID uuid.UUID, input CreateInteractionInput) (*domain.Interaction, error) {
	input.Content = strings.TrimSpace(input.Content)

	var fe fieldErrors
	if !cases.ValidPartyType(input.PartyA.Type) {
		fe.add("party_a.type", "Party type must be one of ARGAN, CLIENT, CONTRACTOR, EMPLOYEE, THIRD_PARTY")
	}
	if strings.TrimSpace(input.PartyA.Name) == "" {
		fe.add("party_a.name", "Party name is required")
	}
	if !cases.ValidPartyType(input.PartyB.Type) {
		fe.add("party_b.type", "Party type must be one of ARGAN, CLIENT, CONTRACTOR, EMPLOYEE, THIRD_PARTY")
	}
	if strings.TrimSpace(input.PartyB.Name) == "" {
		fe.add("party_b.name", "Party name is required")
	}
	if input.Content == "" {
		fe.add("content", "Content is required")
	}
	if input.ActionDueAt != nil && strings.TrimSpace(input.ActionSummary) == "" {
		fe.add("action_summary", "A due date needs an action summary")
	}
	if err := fe.asError(); err != nil {
		return nil, err
	}

	if _, err := s.caseRepo.GetByID(ctx, nil, caseID); errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, &NotFoundError{Entity: "case", ID: caseID.String()}
	} else if err != nil {
		return nil, err
	}

	occurredAt := time.Now().UTC()
	if input.OccurredAt != nil {
		occurredAt = *input.OccurredAt
	}

	return s.interactionRepo.Create(ctx, nil, &domain.Interaction{
		ID:            uuid.New(),
		CaseID:        caseID,
		PartyAType:    input.PartyA.Type,
		PartyAName:    strings.TrimSpace(input.PartyA.Name),
		PartyBType:    input.PartyB.Type,
		PartyBName:    strings.TrimSpace(input.PartyB.Name),
		Content:       input.Content,
		ActionOwner:   strings.TrimSpace(input.ActionOwner),
		ActionSummary: strings.TrimSpace(input.ActionSummary),
		ActionDueAt:   input.ActionDueAt,
		OccurredAt:    occurredAt,
	})
}

func (s *interactionService) Get(ctx context.Context, id uuid.UUID) (*domain.Interaction, error) {
	interaction, err := s.interactionRepo.GetByID(ctx, nil, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, &NotFoundError{Entity: "interaction", ID: id.String()}
	}
	if err != nil {
		return nil, err
	}
	return interaction, nil
}

func (s *interactionService) ListByCase(ctx context.Context, caseID uuid.UUID) ([]*domain.Interaction, error) {
	return s.interactionRepo.ListByCase(ctx, nil, caseID)
}

func (s *interactionService) Update(ctx context.Context, id uuid.UUID, patch map[string]interface{}) (*domain.Interaction, error) {
	fields, err := filterPatch(patch, interactionUpdateAllowList)
	if err != nil {
		return nil, err
	}
	var fe fieldErrors
	if raw, ok := fields["content"]; ok {
		if content, _ := raw.(string); strings.TrimSpace(content) == "" {
			fe.add("content", "Content cannot be empty")
		}
	}
	if raw, ok := fields["action_due_at"]; ok && raw != nil {
		parsed, err := toTime(raw)
		if err != nil {
			fe.add("action_due_at", "Invalid date")
		} else {
			fields["action_due_at"] = parsed
		}
	}
	if err := fe.asError(); err != nil {
		return nil, err
	}

	updated, err := s.interactionRepo.Update(ctx, nil, id, fields)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, &NotFoundError{Entity: "interaction", ID: id.String()}
	}
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// SetActiveAction swaps the single active-action flag within the case.
// Clear-then-set runs inside one transaction so concurrent swaps cannot
// leave two interactions flagged.
func (s *interactionService) SetActiveAction(ctx context.Context, id uuid.UUID) (*domain.Interaction, error) {
	var result *domain.Interaction
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		interaction, err := s.interactionRepo.GetByID(ctx, tx, id)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &NotFoundError{Entity: "interaction", ID: id.String()}
		}
		if err != nil {
			return err
		}
		if err := s.interactionRepo.ClearActiveByCase(ctx, tx, interaction.CaseID); err != nil {
			return err
		}
		if err := s.interactionRepo.SetActiveFlag(ctx, tx, id, true); err != nil {
			return err
		}
		count, err := s.interactionRepo.CountActiveByCase(ctx, tx, interaction.CaseID)
		if err != nil {
			return err
		}
		if count != 1 {
			s.log.Error("Active action invariant violated", "case_id", interaction.CaseID, "active_count", count)
			return &InvariantViolationError{Message: "expected exactly one active action after swap"}
		}
		result, err = s.interactionRepo.GetByID(ctx, tx, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (s *interactionService) UnsetActiveAction(ctx context.Context, id uuid.UUID) (*domain.Interaction, error) {
	err := s.interactionRepo.SetActiveFlag(ctx, nil, id, false)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, &NotFoundError{Entity: "interaction", ID: id.String()}
	}
	if err != nil {
		return nil, err
	}
	return s.interactionRepo.GetByID(ctx, nil, id)
}
