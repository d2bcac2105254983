package service

import "errors"

// Validation errors. Field validators run before any store access; the first
// failing field wins and nothing is written.
var (
	ErrMissingFields = errors.New("missing required fields")

	ErrStudentIDInvalid          = errors.New("student id must be alphanumeric")
	ErrControlNumberInvalid      = errors.New("numero de control must be 8 digits")
	ErrEmailInvalid              = errors.New("email format invalid")
	ErrAgeOutOfRange             = errors.New("edad out of range 17-30")
	ErrStudentSemesterOutOfRange = errors.New("semestre out of range 1-12")

	ErrSubjectIDInvalid          = errors.New("materia id must match AAA-999")
	ErrSubjectNameInvalid        = errors.New("materia nombre must be 5-100 characters")
	ErrSubjectSemesterOutOfRange = errors.New("semestre out of range 1-9")
	ErrEnrolledCountInvalid      = errors.New("alumnos_inscritos must be >= 0")

	ErrGradeOutOfRange = errors.New("calificacion out of range 0-100")
)
