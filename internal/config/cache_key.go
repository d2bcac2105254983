package config

import "fmt"

type CacheKeyStruct struct{}

func NewCacheKeyStruct() *CacheKeyStruct {
	return &CacheKeyStruct{}
}

// StudentKey returns the cache key for a single student record.
func (r *CacheKeyStruct) StudentKey(studentID string) string {
	return fmt.Sprintf("alumno:%s", studentID)
}

// StudentListKey returns the cache key for the full student listing.
func (r *CacheKeyStruct) StudentListKey() string {
	return "alumnos:all"
}

// SubjectKey returns the cache key for a single subject record.
func (r *CacheKeyStruct) SubjectKey(subjectID string) string {
	return fmt.Sprintf("materia:%s", subjectID)
}

// SubjectListKey returns the cache key for the full subject listing.
func (r *CacheKeyStruct) SubjectListKey() string {
	return "materias:all"
}

var CacheKey = NewCacheKeyStruct()
