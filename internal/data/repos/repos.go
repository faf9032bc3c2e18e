package repos

import (
	"gorm.io/gorm"

	"github.com/arganhr/backoffice/internal/data/repos/admins"
	"github.com/arganhr/backoffice/internal/data/repos/cases"
	"github.com/arganhr/backoffice/internal/data/repos/clients"
	"github.com/arganhr/backoffice/internal/data/repos/contracts"
	"github.com/arganhr/backoffice/internal/platform/logger"
)

type ClientRepo = clients.ClientRepo
type ContactRepo = clients.ContactRepo
type AddressRepo = clients.AddressRepo
type AuditRepo = clients.AuditRepo
type ClientListFilter = clients.ListFilter

type ContractRepo = contracts.ContractRepo

type CaseRepo = cases.CaseRepo
type CaseListFilter = cases.ListFilter
type InteractionRepo = cases.InteractionRepo
type FileRepo = cases.FileRepo

type AdminRepo = admins.AdminRepo
type TokenRepo = admins.TokenRepo

var NewClientRepo = clients.NewClientRepo
var NewContactRepo = clients.NewContactRepo
var NewAddressRepo = clients.NewAddressRepo
var NewAuditRepo = clients.NewAuditRepo
var NewContractRepo = contracts.NewContractRepo
var NewCaseRepo = cases.NewCaseRepo
var NewInteractionRepo = cases.NewInteractionRepo
var NewFileRepo = cases.NewFileRepo
var NewAdminRepo = admins.NewAdminRepo
var NewTokenRepo = admins.NewTokenRepo

// Set bundles every repository for wiring.
type Set struct {
	Client      ClientRepo
	Contact     ContactRepo
	Address     AddressRepo
	Audit       AuditRepo
	Contract    ContractRepo
	Case        CaseRepo
	Interaction InteractionRepo
	File        FileRepo
	Admin       AdminRepo
	Token       TokenRepo
}

func NewSet(db *gorm.DB, log *logger.Logger) Set {
	return Set{
		Client:      NewClientRepo(db, log),
		Contact:     NewContactRepo(db, log),
		Address:     NewAddressRepo(db, log),
		Audit:       NewAuditRepo(db, log),
		Contract:    NewContractRepo(db, log),
		Case:        NewCaseRepo(db, log),
		Interaction: NewInteractionRepo(db, log),
		File:        NewFileRepo(db, log),
		Admin:       NewAdminRepo(db, log),
		Token:       NewTokenRepo(db, log),
	}
}
