package model

// Grade is a single calificación entry addressed by (alumno, materia).
// It is not a standalone document; it lives inside Student.Materias.
type Grade struct {
	AlumnoID     string  `json:"alumnoId"`
	MateriaID    string  `json:"materiaId"`
	Calificacion float64 `json:"calificacion"`
}

// GradeRequest is the payload for adding or updating a grade. The pointer
// rejects missing or non-numeric values before the range validator runs.
type GradeRequest struct {
	Calificacion *float64 `json:"calificacion" binding:"required"`
}
