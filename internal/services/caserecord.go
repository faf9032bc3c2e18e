package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/arganhr/backoffice/internal/data/repos"
	"github.com/arganhr/backoffice/internal/domain"
	"github.com/arganhr/backoffice/internal/domain/cases"
	"github.com/arganhr/backoffice/internal/platform/logger"
	"github.com/arganhr/backoffice/internal/platform/storage"
)

var caseUpdateAllowList = map[string]bool{
	"title":       true,
	"status":      true,
	"escalated":   true,
	"assigned_to": true,
	"description": true,
}

type CreateCaseInput struct {
	ClientID    uuid.UUID  `json:"client_id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Escalated   bool       `json:"escalated"`
	AssignedTo  *uuid.UUID `json:"assigned_to"`
}

// CaseDetail is a case plus its read-time aggregates. Counts are always
// computed from the interaction and file tables, never denormalized.
type CaseDetail struct {
	*domain.Case
	InteractionCount int64 `json:"interaction_count"`
	FileCount        int64 `json:"file_count"`
}

type AttachFileInput struct {
	Name          string     `json:"name"`
	Size          int64      `json:"size"`
	InteractionID *uuid.UUID `json:"interaction_id"`
	Tags          []string   `json:"tags"`
	Body          io.Reader  `json:"-"`
}

type CaseService interface {
	Create(ctx context.Context, input CreateCaseInput) (*domain.Case, error)
	Get(ctx context.Context, id uuid.UUID) (*CaseDetail, error)
	ListByClient(ctx context.Context, clientID uuid.UUID, filter repos.CaseListFilter) ([]*domain.Case, error)
	Update(ctx context.Context, id uuid.UUID, patch map[string]interface{}) (*domain.Case, error)
	Delete(ctx context.Context, id uuid.UUID) error
	AttachFile(ctx context.Context, caseID uuid.UUID, input AttachFileInput) (*domain.CaseFile, error)
	ListFiles(ctx context.Context, caseID uuid.UUID) ([]*domain.CaseFile, error)
}

type caseService struct {
	db              *gorm.DB
	log             *logger.Logger
	caseRepo        repos.CaseRepo
	interactionRepo repos.InteractionRepo
	fileRepo        repos.FileRepo
	clientRepo      repos.ClientRepo
	store           storage.ObjectStore
}

// NewCaseService accepts a nil store; attaching files then fails with a
// validation error until storage is configured.
func NewCaseService(
	db *gorm.DB,
	log *logger.Logger,
	caseRepo repos.CaseRepo,
	interactionRepo repos.InteractionRepo,
	fileRepo repos.FileRepo,
	clientRepo repos.ClientRepo,
	store storage.ObjectStore,
) CaseService {
	return &caseService{
		db:              db,
		log:             log.With("service", "CaseService"),
		caseRepo:        caseRepo,
		interactionRepo: interactionRepo,
		fileRepo:        fileRepo,
		clientRepo:      clientRepo,
		store:           store,
	}
}

func (s *caseService) Create(ctx context.Context, input CreateCaseInput) (*domain.Case, error) {
	input.Title = strings.TrimSpace(input.Title)

	var fe fieldErrors
	if input.ClientID == uuid.Nil {
		fe.add("client_id", "Client is required")
	}
	if input.Title == "" {
		fe.add("title", "Title is required")
	}
	if err := fe.asError(); err != nil {
		return nil, err
	}

	var created *domain.Case
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		client, err := s.clientRepo.GetByID(ctx, tx, input.ClientID)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &NotFoundError{Entity: "client", ID: input.ClientID.String()}
		}
		if err != nil {
			return err
		}

		seq, err := s.caseRepo.NextSeq(ctx, tx, input.ClientID)
		if err != nil {
			return err
		}

		created, err = s.caseRepo.Create(ctx, tx, &domain.Case{
			ID:          uuid.New(),
			ClientID:    input.ClientID,
			Seq:         seq,
			CaseNumber:  fmt.Sprintf("CASE-%03d-%04d", client.Seq, seq),
			Title:       input.Title,
			Status:      cases.CaseStatusOpen,
			Escalated:   input.Escalated,
			Description: input.Description,
			AssignedTo:  input.AssignedTo,
		})
		return err
	})
	if err != nil {
		return nil, err
	}
	s.log.Info("Case created", "case_id", created.ID, "number", created.CaseNumber)
	return created, nil
}

func (s *caseService) Get(ctx context.Context, id uuid.UUID) (*CaseDetail, error) {
	c, err := s.caseRepo.GetByID(ctx, nil, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, &NotFoundError{Entity: "case", ID: id.String()}
	}
	if err != nil {
		return nil, err
	}
	interactionCount, err := s.interactionRepo.CountByCase(ctx, nil, id)
	if err != nil {
		return nil, err
	}
	fileCount, err := s.fileRepo.CountByCase(ctx, nil, id)
	if err != nil {
		return nil, err
	}
	return &CaseDetail{Case: c, InteractionCount: interactionCount, FileCount: fileCount}, nil
}

func (s *caseService) ListByClient(ctx context.Context, clientID uuid.UUID, filter repos.CaseListFilter) ([]*domain.Case, error) {
	return s.caseRepo.ListByClient(ctx, nil, clientID, filter)
}

func (s *caseService) Update(ctx context.Context, id uuid.UUID, patch map[string]interface{}) (*domain.Case, error) {
	fields, err := filterPatch(patch, caseUpdateAllowList)
	if err != nil {
		return nil, err
	}

	var fe fieldErrors
	if raw, ok := fields["status"]; ok {
		status, _ := raw.(string)
		if !cases.ValidCaseStatus(status) {
			fe.add("status", "Status must be one of OPEN, AWAITING, CLOSED")
		} else if status == cases.CaseStatusClosed {
			now := time.Now().UTC()
			fields["closed_at"] = &now
		} else {
			// Reopening clears the close stamp.
			fields["closed_at"] = gorm.Expr("NULL")
		}
	}
	if raw, ok := fields["title"]; ok {
		if title, _ := raw.(string); strings.TrimSpace(title) == "" {
			fe.add("title", "Title cannot be empty")
		}
	}
	if err := fe.asError(); err != nil {
		return nil, err
	}

	updated, err := s.caseRepo.Update(ctx, nil, id, fields)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, &NotFoundError{Entity: "case", ID: id.String()}
	}
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// Delete removes the case and everything hanging off it. Bucket objects
// are cleaned up best-effort after the database transaction commits.
func (s *caseService) Delete(ctx context.Context, id uuid.UUID) error {
	var orphanKeys []string
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := s.caseRepo.GetByID(ctx, tx, id); errors.Is(err, gorm.ErrRecordNotFound) {
			return &NotFoundError{Entity: "case", ID: id.String()}
		} else if err != nil {
			return err
		}
		files, err := s.fileRepo.ListByCase(ctx, tx, id)
		if err != nil {
			return err
		}
		for _, f := range files {
			if f.BucketKey != "" {
				orphanKeys = append(orphanKeys, f.BucketKey)
			}
		}
		if err := s.fileRepo.DeleteByCase(ctx, tx, id); err != nil {
			return err
		}
		if err := s.interactionRepo.DeleteByCase(ctx, tx, id); err != nil {
			return err
		}
		return s.caseRepo.Delete(ctx, tx, id)
	})
	if err != nil {
		return err
	}
	if s.store != nil {
		for _, key := range orphanKeys {
			if err := s.store.Delete(ctx, key); err != nil {
				s.log.Warn("Failed to delete bucket object for removed case", "key", key, "error", err)
			}
		}
	}
	s.log.Info("Case deleted", "case_id", id, "files_removed", len(orphanKeys))
	return nil
}

func (s *caseService) AttachFile(ctx context.Context, caseID uuid.UUID, input AttachFileInput) (*domain.CaseFile, error) {
	input.Name = strings.TrimSpace(input.Name)

	var fe fieldErrors
	if input.Name == "" {
		fe.add("name", "File name is required")
	}
	if input.Size < 0 {
		fe.add("size", "Size cannot be negative")
	}
	if input.Body == nil {
		fe.add("body", "File content is required")
	}
	if err := fe.asError(); err != nil {
		return nil, err
	}
	if s.store == nil {
		return nil, NewValidationError("File storage is not configured")
	}

	if _, err := s.caseRepo.GetByID(ctx, nil, caseID); errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, &NotFoundError{Entity: "case", ID: caseID.String()}
	} else if err != nil {
		return nil, err
	}

	if input.InteractionID != nil {
		interaction, err := s.interactionRepo.GetByID(ctx, nil, *input.InteractionID)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &NotFoundError{Entity: "interaction", ID: input.InteractionID.String()}
		}
		if err != nil {
			return nil, err
		}
		if interaction.CaseID != caseID {
			return nil, NewValidationError("Interaction does not belong to this case")
		}
	}

	file := &domain.CaseFile{
		ID:            uuid.New(),
		CaseID:        caseID,
		InteractionID: input.InteractionID,
		Name:          input.Name,
		Size:          input.Size,
	}
	if rd := requestAdmin(ctx); rd != nil {
		file.UploadedBy = rd
	}
	if len(input.Tags) > 0 {
		tags, err := encodeServiceList(input.Tags)
		if err != nil {
			return nil, err
		}
		file.Tags = tags
	}

	key := path.Join("cases", caseID.String(), file.ID.String()+"-"+input.Name)
	if err := s.store.Upload(ctx, key, input.Body); err != nil {
		return nil, fmt.Errorf("upload case file: %w", err)
	}
	file.BucketKey = key
	file.URL = s.store.PublicURL(key)

	return s.fileRepo.Create(ctx, nil, file)
}

func (s *caseService) ListFiles(ctx context.Context, caseID uuid.UUID) ([]*domain.CaseFile, error) {
	return s.fileRepo.ListByCase(ctx, nil, caseID)
}
