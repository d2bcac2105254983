package model

// Subject represents a materia document, keyed by its AAA-999 code.
type Subject struct {
	ID               string `json:"id"`
	Nombre           string `json:"nombre"`
	Semestre         int    `json:"semestre"`
	AlumnosInscritos int    `json:"alumnos_inscritos"`
}

// CreateSubjectRequest is the payload for creating a subject.
// AlumnosInscritos defaults to 0 when omitted.
type CreateSubjectRequest struct {
	ID               *string `json:"id" binding:"required"`
	Nombre           *string `json:"nombre" binding:"required"`
	Semestre         *int    `json:"semestre" binding:"required"`
	AlumnosInscritos *int    `json:"alumnos_inscritos"`
}

// UpdateSubjectRequest is the payload for updating a subject. Every field is
// independently optional; a nil pointer means "leave untouched", so an
// explicit alumnos_inscritos of 0 is still honored.
type UpdateSubjectRequest struct {
	Nombre           *string `json:"nombre"`
	Semestre         *int    `json:"semestre"`
	AlumnosInscritos *int    `json:"alumnos_inscritos"`
}
