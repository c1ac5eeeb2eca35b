package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/auditgrid/auditgrid/internal/core/assessment"
	"github.com/auditgrid/auditgrid/internal/core/attribute"
)

type AttributeHandler struct {
	attributeService *attribute.Service
}

func NewAttributeHandler(attributeService *attribute.Service) *AttributeHandler {
	return &AttributeHandler{attributeService: attributeService}
}

func (h *AttributeHandler) CreateDefinition(c *gin.Context) {
	id, err := assessmentID(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid assessment id"})
		return
	}

	var req attribute.CreateDefinitionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	def, err := h.attributeService.CreateDefinition(c.Request.Context(), id, &req)
	if err != nil {
		if errors.Is(err, assessment.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		if errors.Is(err, attribute.ErrInvalidType) || errors.Is(err, attribute.ErrOptionsRequired) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, def)
}

func (h *AttributeHandler) SetValue(c *gin.Context) {
	id, err := assessmentID(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid assessment id"})
		return
	}

	definitionID, err := strconv.ParseInt(c.Param("definitionId"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid definition id"})
		return
	}

	var req attribute.SetValueRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	val, err := h.attributeService.SetValue(c.Request.Context(), id, definitionID, &req)
	if err != nil {
		switch {
		case errors.Is(err, attribute.ErrDefinitionNotFound), errors.Is(err, attribute.ErrPersonNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		case errors.Is(err, attribute.ErrDefinitionMismatch), errors.Is(err, attribute.ErrObjectIDNotAllowed):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case attribute.IsValidationError(err):
			c.JSON(http.StatusBadRequest, gin.H{"error": "validation failed", "details": attribute.GetValidationErrors(err)})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	c.JSON(http.StatusOK, val)
}
