package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/arganhr/backoffice/internal/services"
)

type ContractHandler struct {
	contractService services.ContractService
}

func NewContractHandler(contractService services.ContractService) *ContractHandler {
	return &ContractHandler{contractService: contractService}
}

func (ch *ContractHandler) Create(c *gin.Context) {
	clientID, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req services.CreateContractInput
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondBadRequest(c, "invalid request body")
		return
	}
	req.ClientID = clientID
	contract, err := ch.contractService.Create(c.Request.Context(), req)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondCreated(c, contract)
}

func (ch *ContractHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "contractID")
	if !ok {
		return
	}
	contract, err := ch.contractService.Get(c.Request.Context(), id)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, contract)
}

func (ch *ContractHandler) ListByClient(c *gin.Context) {
	clientID, ok := pathID(c, "id")
	if !ok {
		return
	}
	contracts, err := ch.contractService.ListByClient(c.Request.Context(), clientID)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, contracts)
}

func (ch *ContractHandler) SetActive(c *gin.Context) {
	clientID, ok := pathID(c, "id")
	if !ok {
		return
	}
	contractID, ok := pathID(c, "contractID")
	if !ok {
		return
	}
	contract, err := ch.contractService.SetActive(c.Request.Context(), clientID, contractID)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, contract)
}

func (ch *ContractHandler) Finalize(c *gin.Context) {
	clientID, ok := pathID(c, "id")
	if !ok {
		return
	}
	contractID, ok := pathID(c, "contractID")
	if !ok {
		return
	}
	contract, err := ch.contractService.Finalize(c.Request.Context(), clientID, contractID)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, contract)
}

func (ch *ContractHandler) Update(c *gin.Context) {
	id, ok := pathID(c, "contractID")
	if !ok {
		return
	}
	var patch map[string]interface{}
	if err := c.ShouldBindJSON(&patch); err != nil {
		RespondBadRequest(c, "invalid request body")
		return
	}
	contract, err := ch.contractService.Update(c.Request.Context(), id, patch)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, contract)
}

func (ch *ContractHandler) Delete(c *gin.Context) {
	id, ok := pathID(c, "contractID")
	if !ok {
		return
	}
	if err := ch.contractService.Delete(c.Request.Context(), id); err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, gin.H{"deleted": true})
}
