package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/arganhr/backoffice/internal/services"
)

type InteractionHandler struct {
	interactionService services.InteractionService
}

func NewInteractionHandler(interactionService services.InteractionService) *InteractionHandler {
	return &InteractionHandler{interactionService: interactionService}
}

func (ih *InteractionHandler) Add(c *gin.Context) {
	caseID, ok := pathID(c, "caseID")
	if !ok {
		return
	}
	var req services.CreateInteractionInput
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondBadRequest(c, "invalid request body")
		return
	}
	interaction, err := ih.interactionService.Add(c.Request.Context(), caseID, req)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondCreated(c, interaction)
}

func (ih *InteractionHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "interactionID")
	if !ok {
		return
	}
	interaction, err := ih.interactionService.Get(c.Request.Context(), id)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, interaction)
}

func (ih *InteractionHandler) ListByCase(c *gin.Context) {
	caseID, ok := pathID(c, "caseID")
	if !ok {
		return
	}
	interactions, err := ih.interactionService.ListByCase(c.Request.Context(), caseID)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, interactions)
}

func (ih *InteractionHandler) Update(c *gin.Context) {
	id, ok := pathID(c, "interactionID")
	if !ok {
		return
	}
	var patch map[string]interface{}
	if err := c.ShouldBindJSON(&patch); err != nil {
		RespondBadRequest(c, "invalid request body")
		return
	}
	interaction, err := ih.interactionService.Update(c.Request.Context(), id, patch)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, interaction)
}

func (ih *InteractionHandler) SetActiveAction(c *gin.Context) {
	id, ok := pathID(c, "interactionID")
	if !ok {
		return
	}
	interaction, err := ih.interactionService.SetActiveAction(c.Request.Context(), id)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, interaction)
}

func (ih *InteractionHandler) UnsetActiveAction(c *gin.Context) {
	id, ok := pathID(c, "interactionID")
	if !ok {
		return
	}
	interaction, err := ih.interactionService.UnsetActiveAction(c.Request.Context(), id)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, interaction)
}
