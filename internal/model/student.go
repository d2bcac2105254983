package model

// Student represents an alumno document. The document key is the externally
// supplied alphanumeric ID; Materias maps subject IDs to grades and is
// mutated only through the grade operations.
type Student struct {
	ID            string             `json:"id"`
	NumeroControl string             `json:"numero_control"`
	Nombre        string             `json:"nombre"`
	Semestre      int                `json:"semestre"`
	Edad          int                `json:"edad"`
	Email         string             `json:"email"`
	Materias      map[string]float64 `json:"materias"`
}

// CreateStudentRequest is the payload for creating a student. Every field is
// required; pointers distinguish an absent field from a zero value so a
// missing field never reaches the range validators.
type CreateStudentRequest struct {
	ID            *string `json:"id" binding:"required"`
	NumeroControl *string `json:"numero_control" binding:"required"`
	Nombre        *string `json:"nombre" binding:"required"`
	Semestre      *int    `json:"semestre" binding:"required"`
	Edad          *int    `json:"edad" binding:"required"`
	Email         *string `json:"email" binding:"required"`
}

// UpdateStudentRequest is the payload for updating a student. Same field set
// as create; the ID comes from the route.
type UpdateStudentRequest struct {
	NumeroControl *string `json:"numero_control" binding:"required"`
	Nombre        *string `json:"nombre" binding:"required"`
	Semestre      *int    `json:"semestre" binding:"required"`
	Edad          *int    `json:"edad" binding:"required"`
	Email         *string `json:"email" binding:"required"`
}
