package handlers

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/arganhr/backoffice/internal/data/repos"
	"github.com/arganhr/backoffice/internal/services"
)

type CaseHandler struct {
	caseService services.CaseService
}

func NewCaseHandler(caseService services.CaseService) *CaseHandler {
	return &CaseHandler{caseService: caseService}
}

func (ch *CaseHandler) Create(c *gin.Context) {
	clientID, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req services.CreateCaseInput
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondBadRequest(c, "invalid request body")
		return
	}
	req.ClientID = clientID
	record, err := ch.caseService.Create(c.Request.Context(), req)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondCreated(c, record)
}

func (ch *CaseHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "caseID")
	if !ok {
		return
	}
	detail, err := ch.caseService.Get(c.Request.Context(), id)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, detail)
}

func (ch *CaseHandler) ListByClient(c *gin.Context) {
	clientID, ok := pathID(c, "id")
	if !ok {
		return
	}
	filter := repos.CaseListFilter{Status: c.Query("status")}
	if v := c.Query("escalated"); v != "" {
		escalated := v == "true"
		filter.Escalated = &escalated
	}
	records, err := ch.caseService.ListByClient(c.Request.Context(), clientID, filter)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, records)
}

func (ch *CaseHandler) Update(c *gin.Context) {
	id, ok := pathID(c, "caseID")
	if !ok {
		return
	}
	var patch map[string]interface{}
	if err := c.ShouldBindJSON(&patch); err != nil {
		RespondBadRequest(c, "invalid request body")
		return
	}
	record, err := ch.caseService.Update(c.Request.Context(), id, patch)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, record)
}

func (ch *CaseHandler) Delete(c *gin.Context) {
	id, ok := pathID(c, "caseID")
	if !ok {
		return
	}
	if err := ch.caseService.Delete(c.Request.Context(), id); err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, gin.H{"deleted": true})
}

// AttachFile takes a multipart form: the "file" part plus optional
// "interaction_id" and comma separated "tags" fields.
func (ch *CaseHandler) AttachFile(c *gin.Context) {
	caseID, ok := pathID(c, "caseID")
	if !ok {
		return
	}
	fileHeader, err := c.FormFile("file")
	if err != nil {
		RespondBadRequest(c, "missing file")
		return
	}
	input := services.AttachFileInput{
		Name: fileHeader.Filename,
		Size: fileHeader.Size,
	}
	if raw := c.PostForm("interaction_id"); raw != "" {
		interactionID, err := uuid.Parse(raw)
		if err != nil {
			RespondBadRequest(c, "invalid interaction_id")
			return
		}
		input.InteractionID = &interactionID
	}
	if raw := c.PostForm("tags"); raw != "" {
		for _, tag := range strings.Split(raw, ",") {
			if tag = strings.TrimSpace(tag); tag != "" {
				input.Tags = append(input.Tags, tag)
			}
		}
	}
	body, err := fileHeader.Open()
	if err != nil {
		RespondBadRequest(c, "unreadable file")
		return
	}
	defer body.Close()
	input.Body = body

	file, err := ch.caseService.AttachFile(c.Request.Context(), caseID, input)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondCreated(c, file)
}

func (ch *CaseHandler) ListFiles(c *gin.Context) {
	caseID, ok := pathID(c, "caseID")
	if !ok {
		return
	}
	files, err := ch.caseService.ListFiles(c.Request.Context(), caseID)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, files)
}
