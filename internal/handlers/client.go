package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/arganhr/backoffice/internal/data/repos"
	"github.com/arganhr/backoffice/internal/services"
)

type ClientHandler struct {
	clientService services.ClientService
}

func NewClientHandler(clientService services.ClientService) *ClientHandler {
	return &ClientHandler{clientService: clientService}
}

func (ch *ClientHandler) Create(c *gin.Context) {
	var req services.CreateClientInput
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondBadRequest(c, "invalid request body")
		return
	}
	client, err := ch.clientService.Create(c.Request.Context(), req)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondCreated(c, client)
}

func (ch *ClientHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	client, err := ch.clientService.Get(c.Request.Context(), id)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, client)
}

func (ch *ClientHandler) List(c *gin.Context) {
	filter := repos.ClientListFilter{
		Status: c.Query("status"),
		Tier:   c.Query("tier"),
		Sector: c.Query("sector"),
		Search: c.Query("search"),
	}
	clients, err := ch.clientService.List(c.Request.Context(), filter)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, clients)
}

func (ch *ClientHandler) Update(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var patch map[string]interface{}
	if err := c.ShouldBindJSON(&patch); err != nil {
		RespondBadRequest(c, "invalid request body")
		return
	}
	client, err := ch.clientService.Update(c.Request.Context(), id, patch)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, client)
}

func (ch *ClientHandler) Deactivate(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	client, err := ch.clientService.Deactivate(c.Request.Context(), id)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, client)
}

func (ch *ClientHandler) UniqueSectors(c *gin.Context) {
	RespondOK(c, ch.clientService.UniqueSectors(c.Request.Context()))
}

func (ch *ClientHandler) AddContact(c *gin.Context) {
	clientID, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req services.ContactInput
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondBadRequest(c, "invalid request body")
		return
	}
	contact, err := ch.clientService.AddContact(c.Request.Context(), clientID, req)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondCreated(c, contact)
}

func (ch *ClientHandler) RemoveContact(c *gin.Context) {
	id, ok := pathID(c, "contactID")
	if !ok {
		return
	}
	if err := ch.clientService.RemoveContact(c.Request.Context(), id); err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, gin.H{"deleted": true})
}

func (ch *ClientHandler) AddAddress(c *gin.Context) {
	clientID, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req services.AddressInput
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondBadRequest(c, "invalid request body")
		return
	}
	address, err := ch.clientService.AddAddress(c.Request.Context(), clientID, req)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondCreated(c, address)
}

func (ch *ClientHandler) RemoveAddress(c *gin.Context) {
	id, ok := pathID(c, "addressID")
	if !ok {
		return
	}
	if err := ch.clientService.RemoveAddress(c.Request.Context(), id); err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, gin.H{"deleted": true})
}

func (ch *ClientHandler) AddAudit(c *gin.Context) {
	clientID, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req services.AuditInput
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondBadRequest(c, "invalid request body")
		return
	}
	audit, err := ch.clientService.AddAudit(c.Request.Context(), clientID, req)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondCreated(c, audit)
}

func (ch *ClientHandler) RemoveAudit(c *gin.Context) {
	id, ok := pathID(c, "auditID")
	if !ok {
		return
	}
	if err := ch.clientService.RemoveAudit(c.Request.Context(), id); err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, gin.H{"deleted": true})
}
