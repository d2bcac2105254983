package router

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/siscolar/registro-backend/internal/config"
	"github.com/siscolar/registro-backend/internal/docstore"
	"github.com/siscolar/registro-backend/internal/handler"
	"github.com/siscolar/registro-backend/internal/repository"
	"github.com/siscolar/registro-backend/internal/service"
	"github.com/siscolar/registro-backend/internal/validator"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	validator.Setup()
	os.Exit(m.Run())
}

func newTestRouter() *gin.Engine {
	cfg := &config.Config{
		GinMode:           gin.TestMode,
		CacheTTL:          time.Minute,
		SlowListThreshold: time.Second,
	}
	log := zerolog.Nop()

	store := docstore.NewMemory()
	studentRepo := repository.NewStudentRepository(store)
	subjectRepo := repository.NewSubjectRepository(store)

	handlers := &Handlers{
		Student: handler.NewStudentHandler(service.NewStudentService(studentRepo, nil, cfg, log)),
		Subject: handler.NewSubjectHandler(service.NewSubjectService(subjectRepo, nil, cfg, log)),
		Grade:   handler.NewGradeHandler(service.NewGradeService(studentRepo, nil, log)),
	}
	return SetupRouter(handlers, cfg)
}

func doJSON(r *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		raw, _ := json.Marshal(body)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func studentPayload() map[string]any {
	return map[string]any{
		"id":             "A1",
		"numero_control": "20230001",
		"nombre":         "Juan Pérez",
		"semestre":       3,
		"edad":           20,
		"email":          "juan@tec.mx",
	}
}

func TestHealth(t *testing.T) {
	r := newTestRouter()
	w := doJSON(r, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ok", decodeBody(t, w)["status"])
}

func TestUnknownRoute(t *testing.T) {
	r := newTestRouter()
	w := doJSON(r, http.MethodGet, "/no-existe", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Ruta no encontrada", decodeBody(t, w)["error"])
}

func TestStudentLifecycle(t *testing.T) {
	r := newTestRouter()

	// Create answers 200 with the stored entity.
	w := doJSON(r, http.MethodPost, "/alumnos", studentPayload())
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	created := decodeBody(t, w)
	assert.Equal(t, "A1", created["id"])
	assert.Equal(t, map[string]any{}, created["materias"])

	// The list includes it.
	w = doJSON(r, http.MethodGet, "/alumnos", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var list []map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	require.Len(t, list, 1)
	assert.Equal(t, "20230001", list[0]["numero_control"])

	// Update.
	upd := studentPayload()
	delete(upd, "id")
	upd["semestre"] = 4
	w = doJSON(r, http.MethodPut, "/alumnos/A1", upd)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, float64(4), decodeBody(t, w)["semestre"])

	// Delete confirms in Spanish, then the student is gone.
	w = doJSON(r, http.MethodDelete, "/alumnos/A1", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Alumno eliminado correctamente", decodeBody(t, w)["mensaje"])

	w = doJSON(r, http.MethodGet, "/alumnos/A1", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Alumno no encontrado", decodeBody(t, w)["error"])
}

func TestStudentBadRequests(t *testing.T) {
	r := newTestRouter()

	t.Run("missing field", func(t *testing.T) {
		payload := studentPayload()
		delete(payload, "email")
		w := doJSON(r, http.MethodPost, "/alumnos", payload)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "Faltan campos obligatorios", decodeBody(t, w)["error"])
	})

	t.Run("malformed json", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/alumnos", bytes.NewReader([]byte("{no es json")))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "Cuerpo de la petición inválido", decodeBody(t, w)["error"])
	})

	t.Run("wrong field type", func(t *testing.T) {
		payload := studentPayload()
		payload["edad"] = "veinte"
		w := doJSON(r, http.MethodPost, "/alumnos", payload)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "Cuerpo de la petición inválido", decodeBody(t, w)["error"])
	})

	t.Run("invalid control number", func(t *testing.T) {
		payload := studentPayload()
		payload["numero_control"] = "123"
		w := doJSON(r, http.MethodPost, "/alumnos", payload)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "El número de control debe tener exactamente 8 dígitos numéricos", decodeBody(t, w)["error"])
	})
}

func TestStudentConflicts(t *testing.T) {
	r := newTestRouter()

	w := doJSON(r, http.MethodPost, "/alumnos", studentPayload())
	require.Equal(t, http.StatusOK, w.Code)

	t.Run("duplicate id", func(t *testing.T) {
		dup := studentPayload()
		dup["numero_control"] = "20230099"
		w := doJSON(r, http.MethodPost, "/alumnos", dup)
		assert.Equal(t, http.StatusConflict, w.Code)
		assert.Equal(t, "Ya existe un alumno con este ID", decodeBody(t, w)["error"])
	})

	t.Run("duplicate control number", func(t *testing.T) {
		dup := studentPayload()
		dup["id"] = "A2"
		w := doJSON(r, http.MethodPost, "/alumnos", dup)
		assert.Equal(t, http.StatusConflict, w.Code)
		assert.Equal(t, "El número de control ya está registrado", decodeBody(t, w)["error"])
	})
}

func TestSubjectLifecycle(t *testing.T) {
	r := newTestRouter()

	payload := map[string]any{
		"id":       "MAT-101",
		"nombre":   "Cálculo Diferencial",
		"semestre": 1,
	}
	w := doJSON(r, http.MethodPost, "/materias", payload)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	created := decodeBody(t, w)
	assert.Equal(t, float64(0), created["alumnos_inscritos"])

	// Partial update with an explicit zero keeps working.
	w = doJSON(r, http.MethodPut, "/materias/MAT-101", map[string]any{"alumnos_inscritos": 0, "semestre": 2})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	updated := decodeBody(t, w)
	assert.Equal(t, float64(0), updated["alumnos_inscritos"])
	assert.Equal(t, float64(2), updated["semestre"])
	assert.Equal(t, "Cálculo Diferencial", updated["nombre"])

	t.Run("duplicate name", func(t *testing.T) {
		dup := map[string]any{"id": "MAT-102", "nombre": "Cálculo Diferencial", "semestre": 1}
		w := doJSON(r, http.MethodPost, "/materias", dup)
		assert.Equal(t, http.StatusConflict, w.Code)
		assert.Equal(t, "Ya existe una materia con este nombre", decodeBody(t, w)["error"])
	})

	t.Run("invalid code", func(t *testing.T) {
		w := doJSON(r, http.MethodGet, "/materias/mat101", nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "ID de materia inválido. Formato: ABC-123", decodeBody(t, w)["error"])
	})

	w = doJSON(r, http.MethodDelete, "/materias/MAT-101", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Materia eliminada correctamente", decodeBody(t, w)["mensaje"])

	w = doJSON(r, http.MethodGet, "/materias/MAT-101", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Materia no encontrada", decodeBody(t, w)["error"])
}

func TestGradeFlow(t *testing.T) {
	r := newTestRouter()

	w := doJSON(r, http.MethodPost, "/alumnos", studentPayload())
	require.Equal(t, http.StatusOK, w.Code)

	// Add.
	w = doJSON(r, http.MethodPost, "/calificaciones/A1/MAT-101", map[string]any{"calificacion": 95})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	added := decodeBody(t, w)
	assert.Equal(t, "Calificación agregada", added["mensaje"])
	assert.Equal(t, "A1", added["alumnoId"])
	assert.Equal(t, "MAT-101", added["materiaId"])
	assert.Equal(t, float64(95), added["calificacion"])

	// Get uses the camelCase route identifiers in the body.
	w = doJSON(r, http.MethodGet, "/calificaciones/A1/MAT-101", nil)
	require.Equal(t, http.StatusOK, w.Code)
	got := decodeBody(t, w)
	assert.Equal(t, "A1", got["alumnoId"])
	assert.Equal(t, float64(95), got["calificacion"])

	// Update requires an existing entry.
	w = doJSON(r, http.MethodPut, "/calificaciones/A1/FIS-201", map[string]any{"calificacion": 70})
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Calificación no encontrada para esta materia", decodeBody(t, w)["error"])

	w = doJSON(r, http.MethodPut, "/calificaciones/A1/MAT-101", map[string]any{"calificacion": 70})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Calificación actualizada", decodeBody(t, w)["mensaje"])

	// Out-of-range and missing values are rejected.
	w = doJSON(r, http.MethodPost, "/calificaciones/A1/MAT-101", map[string]any{"calificacion": 101})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Calificación inválida (0-100)", decodeBody(t, w)["error"])

	w = doJSON(r, http.MethodPost, "/calificaciones/A1/MAT-101", map[string]any{})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Calificación inválida (0-100)", decodeBody(t, w)["error"])

	// Unknown student is a 404 on every verb.
	w = doJSON(r, http.MethodPost, "/calificaciones/A404/MAT-101", map[string]any{"calificacion": 80})
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Alumno no encontrado", decodeBody(t, w)["error"])

	// Delete.
	w = doJSON(r, http.MethodDelete, "/calificaciones/A1/MAT-101", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Calificación eliminada", decodeBody(t, w)["mensaje"])

	w = doJSON(r, http.MethodDelete, "/calificaciones/A1/MAT-101", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
