//go:build e2e
// +build e2e

package e2e

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"testing"
	"time"

	"github.com/joho/godotenv"
)

// End-to-end smoke test against a running server backed by a real DynamoDB
// (or dynamodb-local) table. Run with:
//
//	go test -tags e2e ./test/e2e/
const (
	defaultBaseURL = "http://localhost:8080"

	studentID     = "E2E001"
	controlNumber = "99990001"
	subjectID     = "EEE-901"
	subjectName   = "Materia de Prueba E2E"
)

var baseURL string

func TestMain(m *testing.M) {
	// Load .env if present (ignore error)
	_ = godotenv.Load("../../.env")

	baseURL = os.Getenv("BASE_URL")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}

	// Wait for the server to come up.
	if err := waitForHealth(); err != nil {
		fmt.Printf("Server not reachable: %v\n", err)
		os.Exit(1)
	}

	// Start from a clean slate; ignore not-found.
	cleanup()
	code := m.Run()
	cleanup()
	os.Exit(code)
}

func waitForHealth() error {
	var lastErr error
	for i := 0; i < 20; i++ {
		resp, err := http.Get(baseURL + "/health")
		if err == nil {
			resp.Body.Close()
			if resp.StatusCode == http.StatusOK {
				return nil
			}
			lastErr = fmt.Errorf("health returned %d", resp.StatusCode)
		} else {
			lastErr = err
		}
		time.Sleep(500 * time.Millisecond)
	}
	return lastErr
}

func cleanup() {
	doRequest(http.MethodDelete, "/alumnos/"+studentID, nil)
	doRequest(http.MethodDelete, "/materias/"+subjectID, nil)
}

func doRequest(method, path string, payload any) (*http.Response, map[string]any) {
	var body io.Reader
	if payload != nil {
		raw, _ := json.Marshal(payload)
		body = bytes.NewReader(raw)
	}
	req, _ := http.NewRequest(method, baseURL+path, body)
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, nil
	}
	defer resp.Body.Close()

	raw, _ := io.ReadAll(resp.Body)
	var decoded map[string]any
	_ = json.Unmarshal(raw, &decoded)
	return resp, decoded
}

func TestStudentAndGradeFlow(t *testing.T) {
	// 1. Create the student.
	resp, body := doRequest(http.MethodPost, "/alumnos", map[string]any{
		"id":             studentID,
		"numero_control": controlNumber,
		"nombre":         "Alumno de Prueba",
		"semestre":       3,
		"edad":           21,
		"email":          "e2e@tec.mx",
	})
	if resp == nil || resp.StatusCode != http.StatusOK {
		t.Fatalf("create student: %+v %v", resp, body)
	}

	// 2. Duplicate control number must conflict.
	resp, body = doRequest(http.MethodPost, "/alumnos", map[string]any{
		"id":             studentID + "B",
		"numero_control": controlNumber,
		"nombre":         "Otro Alumno",
		"semestre":       1,
		"edad":           18,
		"email":          "otro@tec.mx",
	})
	if resp.StatusCode != http.StatusConflict {
		t.Fatalf("expected 409 for duplicate control number, got %d: %v", resp.StatusCode, body)
	}

	// 3. Add and read back a grade.
	resp, _ = doRequest(http.MethodPost, "/calificaciones/"+studentID+"/MAT-101", map[string]any{"calificacion": 88})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("add grade: %d", resp.StatusCode)
	}

	resp, body = doRequest(http.MethodGet, "/calificaciones/"+studentID+"/MAT-101", nil)
	if resp.StatusCode != http.StatusOK || body["calificacion"] != 88.0 {
		t.Fatalf("get grade: %d %v", resp.StatusCode, body)
	}

	// 4. Delete the student; the grade goes with it.
	resp, _ = doRequest(http.MethodDelete, "/alumnos/"+studentID, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("delete student: %d", resp.StatusCode)
	}
	resp, _ = doRequest(http.MethodGet, "/calificaciones/"+studentID+"/MAT-101", nil)
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404 after delete, got %d", resp.StatusCode)
	}

	// 5. The control number is reusable once the student is gone.
	resp, _ = doRequest(http.MethodPost, "/alumnos", map[string]any{
		"id":             studentID,
		"numero_control": controlNumber,
		"nombre":         "Alumno de Prueba",
		"semestre":       3,
		"edad":           21,
		"email":          "e2e@tec.mx",
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("recreate student: %d", resp.StatusCode)
	}
}

func TestSubjectFlow(t *testing.T) {
	resp, body := doRequest(http.MethodPost, "/materias", map[string]any{
		"id":       subjectID,
		"nombre":   subjectName,
		"semestre": 5,
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create subject: %d %v", resp.StatusCode, body)
	}

	resp, body = doRequest(http.MethodPut, "/materias/"+subjectID, map[string]any{"alumnos_inscritos": 0})
	if resp.StatusCode != http.StatusOK || body["alumnos_inscritos"] != 0.0 {
		t.Fatalf("update subject: %d %v", resp.StatusCode, body)
	}

	resp, body = doRequest(http.MethodDelete, "/materias/"+subjectID, nil)
	if resp.StatusCode != http.StatusOK || body["mensaje"] != "Materia eliminada correctamente" {
		t.Fatalf("delete subject: %d %v", resp.StatusCode, body)
	}
}
