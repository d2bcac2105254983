package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/siscolar/registro-backend/internal/model"
	"github.com/siscolar/registro-backend/internal/response"
	"github.com/siscolar/registro-backend/internal/service"
)

// GradeHandler exposes the /calificaciones/:alumnoId/:materiaId routes.
type GradeHandler struct {
	gradeService *service.GradeService
}

// NewGradeHandler creates a GradeHandler.
func NewGradeHandler(gradeService *service.GradeService) *GradeHandler {
	return &GradeHandler{gradeService: gradeService}
}

// Add godoc
// POST /calificaciones/:alumnoId/:materiaId
func (h *GradeHandler) Add(c *gin.Context) {
	var req model.GradeRequest
	if !bind(c, &req, response.ErrGradeInvalid) {
		return
	}

	g, err := h.gradeService.Add(c.Request.Context(), c.Param("alumnoId"), c.Param("materiaId"), *req.Calificacion)
	if err != nil {
		mapError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{
		"mensaje":      "Calificación agregada",
		"alumnoId":     g.AlumnoID,
		"materiaId":    g.MateriaID,
		"calificacion": g.Calificacion,
	})
}

// Get godoc
// GET /calificaciones/:alumnoId/:materiaId
func (h *GradeHandler) Get(c *gin.Context) {
	g, err := h.gradeService.Get(c.Request.Context(), c.Param("alumnoId"), c.Param("materiaId"))
	if err != nil {
		mapError(c, err)
		return
	}
	response.Success(c, http.StatusOK, g)
}

// Update godoc
// PUT /calificaciones/:alumnoId/:materiaId
func (h *GradeHandler) Update(c *gin.Context) {
	var req model.GradeRequest
	if !bind(c, &req, response.ErrGradeInvalid) {
		return
	}

	g, err := h.gradeService.Update(c.Request.Context(), c.Param("alumnoId"), c.Param("materiaId"), *req.Calificacion)
	if err != nil {
		mapError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{
		"mensaje":      "Calificación actualizada",
		"alumnoId":     g.AlumnoID,
		"materiaId":    g.MateriaID,
		"calificacion": g.Calificacion,
	})
}

// Delete godoc
// DELETE /calificaciones/:alumnoId/:materiaId
func (h *GradeHandler) Delete(c *gin.Context) {
	if err := h.gradeService.Delete(c.Request.Context(), c.Param("alumnoId"), c.Param("materiaId")); err != nil {
		mapError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"mensaje": "Calificación eliminada"})
}
