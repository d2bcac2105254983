package repository

import "errors"

// Domain-level storage errors. Services pass these through and handlers map
// them onto the HTTP taxonomy.
var (
	ErrStudentNotFound        = errors.New("alumno not found")
	ErrDuplicateStudentID     = errors.New("alumno id already exists")
	ErrDuplicateControlNumber = errors.New("numero de control already registered")

	ErrSubjectNotFound      = errors.New("materia not found")
	ErrDuplicateSubjectID   = errors.New("materia id already exists")
	ErrDuplicateSubjectName = errors.New("materia nombre already registered")

	ErrGradeNotFound = errors.New("calificacion not found")
)
