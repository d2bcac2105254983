package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/siscolar/registro-backend/internal/model"
	"github.com/siscolar/registro-backend/internal/response"
	"github.com/siscolar/registro-backend/internal/service"
)

// SubjectHandler exposes the /materias routes.
type SubjectHandler struct {
	subjectService *service.SubjectService
}

// NewSubjectHandler creates a SubjectHandler.
func NewSubjectHandler(subjectService *service.SubjectService) *SubjectHandler {
	return &SubjectHandler{subjectService: subjectService}
}

// List godoc
// GET /materias
func (h *SubjectHandler) List(c *gin.Context) {
	subjects, err := h.subjectService.List(c.Request.Context())
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	if subjects == nil {
		subjects = []model.Subject{}
	}
	response.Success(c, http.StatusOK, subjects)
}

// Get godoc
// GET /materias/:id
func (h *SubjectHandler) Get(c *gin.Context) {
	sub, err := h.subjectService.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		mapError(c, err)
		return
	}
	response.Success(c, http.StatusOK, sub)
}

// Create godoc
// POST /materias
func (h *SubjectHandler) Create(c *gin.Context) {
	var req model.CreateSubjectRequest
	if !bind(c, &req, response.ErrMissingFields) {
		return
	}

	sub, err := h.subjectService.Create(c.Request.Context(), &req)
	if err != nil {
		mapError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, sub)
}

// Update godoc
// PUT /materias/:id
func (h *SubjectHandler) Update(c *gin.Context) {
	var req model.UpdateSubjectRequest
	if !bind(c, &req, response.ErrInvalidPayload) {
		return
	}

	sub, err := h.subjectService.Update(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		mapError(c, err)
		return
	}
	response.Success(c, http.StatusOK, sub)
}

// Delete godoc
// DELETE /materias/:id
func (h *SubjectHandler) Delete(c *gin.Context) {
	if err := h.subjectService.Delete(c.Request.Context(), c.Param("id")); err != nil {
		mapError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"mensaje": "Materia eliminada correctamente"})
}
