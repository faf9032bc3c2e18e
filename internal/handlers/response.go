package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/arganhr/backoffice/internal/services"
)

// Result is the uniform envelope every endpoint answers with; service
// errors never cross the boundary as raw exceptions or stack traces.
type Result struct {
	Success bool                  `json:"success"`
	Data    interface{}           `json:"data,omitempty"`
	Error   string                `json:"error,omitempty"`
	Fields  []services.FieldError `json:"fields,omitempty"`
}

func RespondOK(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Result{Success: true, Data: data})
}

func RespondCreated(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, Result{Success: true, Data: data})
}

// RespondError maps the service error taxonomy onto HTTP statuses.
func RespondError(c *gin.Context, err error) {
	var fieldErr *services.FieldValidationError
	if errors.As(err, &fieldErr) {
		c.JSON(http.StatusBadRequest, Result{Success: false, Error: fieldErr.Error(), Fields: fieldErr.Fields})
		return
	}
	var validationErr *services.ValidationError
	if errors.As(err, &validationErr) {
		c.JSON(http.StatusBadRequest, Result{Success: false, Error: validationErr.Message})
		return
	}
	var notFoundErr *services.NotFoundError
	if errors.As(err, &notFoundErr) {
		c.JSON(http.StatusNotFound, Result{Success: false, Error: notFoundErr.Error()})
		return
	}
	var emailErr *services.EmailExistsError
	if errors.As(err, &emailErr) {
		c.JSON(http.StatusConflict, Result{Success: false, Error: emailErr.Error()})
		return
	}
	var invariantErr *services.InvariantViolationError
	if errors.As(err, &invariantErr) {
		c.JSON(http.StatusInternalServerError, Result{Success: false, Error: invariantErr.Message})
		return
	}
	c.JSON(http.StatusInternalServerError, Result{Success: false, Error: "internal error"})
}

func RespondBadRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, Result{Success: false, Error: message})
}

// pathID parses a uuid path parameter, answering 400 itself on failure.
func pathID(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		RespondBadRequest(c, "invalid "+name)
		return uuid.Nil, false
	}
	return id, true
}
