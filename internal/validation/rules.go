// Package validation contains the pure field validators for students,
// subjects and grades. Every function is a stateless predicate over a raw
// value; services compose them before touching the store.
package validation

import (
	"regexp"
	"unicode/utf8"
)

var (
	studentIDPattern     = regexp.MustCompile(`^[a-zA-Z0-9]+$`)
	controlNumberPattern = regexp.MustCompile(`^\d{8}$`)
	subjectIDPattern     = regexp.MustCompile(`^[A-Z]{3}-\d{3}$`)
	emailPattern         = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
)

// ValidStudentID reports whether id is a non-empty alphanumeric document key.
func ValidStudentID(id string) bool {
	return studentIDPattern.MatchString(id)
}

// ValidControlNumber reports whether nc is exactly 8 decimal digits.
func ValidControlNumber(nc string) bool {
	return controlNumberPattern.MatchString(nc)
}

// ValidEmail reports whether email has the local@domain.tld shape.
func ValidEmail(email string) bool {
	return emailPattern.MatchString(email)
}

// ValidAge reports whether edad lies in [17, 30].
func ValidAge(edad int) bool {
	return edad >= 17 && edad <= 30
}

// ValidStudentSemester reports whether semestre lies in [1, 12].
func ValidStudentSemester(semestre int) bool {
	return semestre >= 1 && semestre <= 12
}

// ValidSubjectID reports whether id matches the AAA-999 shape, e.g. "MAT-101".
func ValidSubjectID(id string) bool {
	return subjectIDPattern.MatchString(id)
}

// ValidSubjectName reports whether nombre has between 5 and 100 characters.
func ValidSubjectName(nombre string) bool {
	n := utf8.RuneCountInString(nombre)
	return n >= 5 && n <= 100
}

// ValidSubjectSemester reports whether semestre lies in [1, 9].
func ValidSubjectSemester(semestre int) bool {
	return semestre >= 1 && semestre <= 9
}

// ValidEnrolledCount reports whether alumnos_inscritos is zero or positive.
func ValidEnrolledCount(alumnos int) bool {
	return alumnos >= 0
}

// ValidGrade reports whether calificacion lies in [0, 100].
func ValidGrade(calificacion float64) bool {
	return calificacion >= 0 && calificacion <= 100
}
