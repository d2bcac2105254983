package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/siscolar/registro-backend/internal/repository"
	"github.com/siscolar/registro-backend/internal/response"
	"github.com/siscolar/registro-backend/internal/service"
	"github.com/siscolar/registro-backend/internal/validator"
)

// mapError translates service and repository errors onto the HTTP taxonomy:
// validation → 400, absence → 404, uniqueness → 409, everything else → 500.
func mapError(c *gin.Context, err error) {
	switch {
	// ─── 400 InvalidArgument ───────────────────────────────────────────
	case errors.Is(err, service.ErrMissingFields):
		response.Fail(c, http.StatusBadRequest, response.ErrMissingFields)
	case errors.Is(err, service.ErrStudentIDInvalid):
		response.Fail(c, http.StatusBadRequest, response.ErrStudentIDInvalid)
	case errors.Is(err, service.ErrControlNumberInvalid):
		response.Fail(c, http.StatusBadRequest, response.ErrControlNumberInvalid)
	case errors.Is(err, service.ErrEmailInvalid):
		response.Fail(c, http.StatusBadRequest, response.ErrEmailInvalid)
	case errors.Is(err, service.ErrAgeOutOfRange):
		response.Fail(c, http.StatusBadRequest, response.ErrAgeOutOfRange)
	case errors.Is(err, service.ErrStudentSemesterOutOfRange):
		response.Fail(c, http.StatusBadRequest, response.ErrStudentSemesterRange)
	case errors.Is(err, service.ErrSubjectIDInvalid):
		response.Fail(c, http.StatusBadRequest, response.ErrSubjectIDInvalid)
	case errors.Is(err, service.ErrSubjectNameInvalid):
		response.Fail(c, http.StatusBadRequest, response.ErrSubjectNameInvalid)
	case errors.Is(err, service.ErrSubjectSemesterOutOfRange):
		response.Fail(c, http.StatusBadRequest, response.ErrSubjectSemesterRange)
	case errors.Is(err, service.ErrEnrolledCountInvalid):
		response.Fail(c, http.StatusBadRequest, response.ErrEnrolledCountInvalid)
	case errors.Is(err, service.ErrGradeOutOfRange):
		response.Fail(c, http.StatusBadRequest, response.ErrGradeInvalid)

	// ─── 404 NotFound ──────────────────────────────────────────────────
	case errors.Is(err, repository.ErrStudentNotFound):
		response.Fail(c, http.StatusNotFound, response.ErrStudentNotFound)
	case errors.Is(err, repository.ErrSubjectNotFound):
		response.Fail(c, http.StatusNotFound, response.ErrSubjectNotFound)
	case errors.Is(err, repository.ErrGradeNotFound):
		response.Fail(c, http.StatusNotFound, response.ErrGradeNotFound)

	// ─── 409 Conflict ──────────────────────────────────────────────────
	case errors.Is(err, repository.ErrDuplicateStudentID):
		response.Fail(c, http.StatusConflict, response.ErrStudentExists)
	case errors.Is(err, repository.ErrDuplicateControlNumber):
		response.Fail(c, http.StatusConflict, response.ErrControlNumberTaken)
	case errors.Is(err, repository.ErrDuplicateSubjectID):
		response.Fail(c, http.StatusConflict, response.ErrSubjectExists)
	case errors.Is(err, repository.ErrDuplicateSubjectName):
		response.Fail(c, http.StatusConflict, response.ErrSubjectNameTaken)

	// ─── 500 Internal ──────────────────────────────────────────────────
	default:
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
	}
}

// bind binds the JSON body into dst. Required-field failures answer with
// missingCode, anything else (syntax, wrong types) with the generic payload
// error. Returns false when the request was already answered.
func bind(c *gin.Context, dst any, missingCode response.ErrCode) bool {
	fields := validator.Bind(c, dst)
	if fields == nil {
		return true
	}
	if _, malformed := fields["detail"]; malformed {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidPayload)
	} else {
		response.Fail(c, http.StatusBadRequest, missingCode)
	}
	return false
}
