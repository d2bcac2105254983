package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/siscolar/registro-backend/internal/model"
	"github.com/siscolar/registro-backend/internal/response"
	"github.com/siscolar/registro-backend/internal/service"
)

// StudentHandler exposes the /alumnos routes.
type StudentHandler struct {
	studentService *service.StudentService
}

// NewStudentHandler creates a StudentHandler.
func NewStudentHandler(studentService *service.StudentService) *StudentHandler {
	return &StudentHandler{studentService: studentService}
}

// List godoc
// GET /alumnos
func (h *StudentHandler) List(c *gin.Context) {
	students, err := h.studentService.List(c.Request.Context())
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	if students == nil {
		students = []model.Student{}
	}
	response.Success(c, http.StatusOK, students)
}

// Get godoc
// GET /alumnos/:id
func (h *StudentHandler) Get(c *gin.Context) {
	st, err := h.studentService.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		mapError(c, err)
		return
	}
	response.Success(c, http.StatusOK, st)
}

// Create godoc
// POST /alumnos
func (h *StudentHandler) Create(c *gin.Context) {
	var req model.CreateStudentRequest
	if !bind(c, &req, response.ErrMissingFields) {
		return
	}

	st, err := h.studentService.Create(c.Request.Context(), &req)
	if err != nil {
		mapError(c, err)
		return
	}
	response.Success(c, http.StatusOK, st)
}

// Update godoc
// PUT /alumnos/:id
func (h *StudentHandler) Update(c *gin.Context) {
	var req model.UpdateStudentRequest
	if !bind(c, &req, response.ErrMissingFields) {
		return
	}

	st, err := h.studentService.Update(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		mapError(c, err)
		return
	}
	response.Success(c, http.StatusOK, st)
}

// Delete godoc
// DELETE /alumnos/:id
func (h *StudentHandler) Delete(c *gin.Context) {
	if err := h.studentService.Delete(c.Request.Context(), c.Param("id")); err != nil {
		mapError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"mensaje": "Alumno eliminado correctamente"})
}
