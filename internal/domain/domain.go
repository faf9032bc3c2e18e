// Package domain aggregates the model sub-packages so callers can refer
// to every table type through a single import.
package domain

import (
	"github.com/arganhr/backoffice/internal/domain/admins"
	"github.com/arganhr/backoffice/internal/domain/cases"
	"github.com/arganhr/backoffice/internal/domain/clients"
	"github.com/arganhr/backoffice/internal/domain/contracts"
)

type Client = clients.Client
type ClientContact = clients.ClientContact
type ClientAddress = clients.ClientAddress
type ClientAudit = clients.ClientAudit

type Contract = contracts.Contract

type Case = cases.Case
type Interaction = cases.Interaction
type CaseFile = cases.CaseFile

type Admin = admins.Admin
type AdminToken = admins.AdminToken

const (
	ClientStatusActive   = clients.ClientStatusActive
	ClientStatusPending  = clients.ClientStatusPending
	ClientStatusInactive = clients.ClientStatusInactive

	ServiceTierTier1   = clients.ServiceTierTier1
	ServiceTierDocOnly = clients.ServiceTierDocOnly
	ServiceTierAdHoc   = clients.ServiceTierAdHoc

	ContractStatusDraft    = contracts.ContractStatusDraft
	ContractStatusActive   = contracts.ContractStatusActive
	ContractStatusArchived = contracts.ContractStatusArchived

	CaseStatusOpen     = cases.CaseStatusOpen
	CaseStatusAwaiting = cases.CaseStatusAwaiting
	CaseStatusClosed   = cases.CaseStatusClosed

	AdminStatusActive   = admins.AdminStatusActive
	AdminStatusInactive = admins.AdminStatusInactive

	AdminRoleSuperadmin = admins.AdminRoleSuperadmin
	AdminRoleStaff      = admins.AdminRoleStaff
)

// All lists every model for automigration.
func All() []interface{} {
	return []interface{}{
		&Client{},
		&ClientContact{},
		&ClientAddress{},
		&ClientAudit{},
		&Contract{},
		&Case{},
		&Interaction{},
		&CaseFile{},
		&Admin{},
		&AdminToken{},
	}
}
