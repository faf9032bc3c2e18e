package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/arganhr/backoffice/internal/requestdata"
	"github.com/arganhr/backoffice/internal/services"
)

type AdminHandler struct {
	adminService services.AdminService
}

func NewAdminHandler(adminService services.AdminService) *AdminHandler {
	return &AdminHandler{adminService: adminService}
}

func (ah *AdminHandler) Create(c *gin.Context) {
	var req services.CreateAdminInput
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondBadRequest(c, "invalid request body")
		return
	}
	admin, err := ah.adminService.Create(c.Request.Context(), req)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondCreated(c, admin)
}

func (ah *AdminHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	admin, err := ah.adminService.Get(c.Request.Context(), id)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, admin)
}

// Me answers with the record of the authenticated admin.
func (ah *AdminHandler) Me(c *gin.Context) {
	rd, ok := requestdata.GetRequestData(c.Request.Context())
	if !ok {
		c.JSON(http.StatusUnauthorized, Result{Success: false, Error: "not authenticated"})
		return
	}
	admin, err := ah.adminService.Get(c.Request.Context(), rd.AdminID)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, admin)
}

func (ah *AdminHandler) List(c *gin.Context) {
	admins, err := ah.adminService.List(c.Request.Context())
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, admins)
}

func (ah *AdminHandler) Update(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var patch map[string]interface{}
	if err := c.ShouldBindJSON(&patch); err != nil {
		RespondBadRequest(c, "invalid request body")
		return
	}
	admin, err := ah.adminService.Update(c.Request.Context(), id, patch)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, admin)
}

func (ah *AdminHandler) Deactivate(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	admin, err := ah.adminService.Deactivate(c.Request.Context(), id)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, admin)
}

func (ah *AdminHandler) ChangePassword(c *gin.Context) {
	rd, ok := requestdata.GetRequestData(c.Request.Context())
	if !ok {
		c.JSON(http.StatusUnauthorized, Result{Success: false, Error: "not authenticated"})
		return
	}
	var req struct {
		CurrentPassword string `json:"current_password"`
		NewPassword     string `json:"new_password"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondBadRequest(c, "invalid request body")
		return
	}
	if err := ah.adminService.ChangePassword(c.Request.Context(), rd.AdminID, req.CurrentPassword, req.NewPassword); err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, gin.H{"changed": true})
}
