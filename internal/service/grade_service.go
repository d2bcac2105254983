package service

import (
	"context"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/siscolar/registro-backend/internal/config"
	"github.com/siscolar/registro-backend/internal/model"
	"github.com/siscolar/registro-backend/internal/repository"
	"github.com/siscolar/registro-backend/internal/validation"
)

// GradeService implements the calificación operations over the grade map
// nested inside a student document. Mutations never read-modify-write the
// whole document: each one is a single-key atomic map write, so concurrent
// operations on different subjects of the same student cannot clobber each
// other. The preceding read only picks the right 404.
//
// Subject IDs are deliberately not checked against the materias collection.
type GradeService struct {
	studentRepo *repository.StudentRepository
	rdb         *redis.Client
	log         zerolog.Logger
}

// NewGradeService creates a GradeService.
func NewGradeService(studentRepo *repository.StudentRepository, rdb *redis.Client, log zerolog.Logger) *GradeService {
	return &GradeService{
		studentRepo: studentRepo,
		rdb:         rdb,
		log:         log.With().Str("component", "grade_service").Logger(),
	}
}

// Add sets the grade for (student, subject), overwriting silently if one is
// already present. Add and update share this upsert semantic.
func (s *GradeService) Add(ctx context.Context, studentID, subjectID string, calificacion float64) (*model.Grade, error) {
	if !validation.ValidGrade(calificacion) {
		return nil, ErrGradeOutOfRange
	}
	if _, err := s.studentRepo.GetByID(ctx, studentID); err != nil {
		return nil, err
	}

	if err := s.studentRepo.SetGrade(ctx, studentID, subjectID, calificacion, false); err != nil {
		return nil, err
	}

	s.invalidate(ctx, studentID)
	return &model.Grade{AlumnoID: studentID, MateriaID: subjectID, Calificacion: calificacion}, nil
}

// Get returns the grade for (student, subject), or a not-found error for
// either the student or the entry.
func (s *GradeService) Get(ctx context.Context, studentID, subjectID string) (*model.Grade, error) {
	st, err := s.studentRepo.GetByID(ctx, studentID)
	if err != nil {
		return nil, err
	}

	calificacion, ok := st.Materias[subjectID]
	if !ok {
		return nil, repository.ErrGradeNotFound
	}
	return &model.Grade{AlumnoID: studentID, MateriaID: subjectID, Calificacion: calificacion}, nil
}

// Update overwrites an existing grade entry. Unlike Add it requires the
// entry to be present already.
func (s *GradeService) Update(ctx context.Context, studentID, subjectID string, calificacion float64) (*model.Grade, error) {
	if !validation.ValidGrade(calificacion) {
		return nil, ErrGradeOutOfRange
	}

	st, err := s.studentRepo.GetByID(ctx, studentID)
	if err != nil {
		return nil, err
	}
	if _, ok := st.Materias[subjectID]; !ok {
		return nil, repository.ErrGradeNotFound
	}

	if err := s.studentRepo.SetGrade(ctx, studentID, subjectID, calificacion, true); err != nil {
		return nil, err
	}

	s.invalidate(ctx, studentID)
	return &model.Grade{AlumnoID: studentID, MateriaID: subjectID, Calificacion: calificacion}, nil
}

// Delete removes an existing grade entry under the same conditions as Update.
func (s *GradeService) Delete(ctx context.Context, studentID, subjectID string) error {
	st, err := s.studentRepo.GetByID(ctx, studentID)
	if err != nil {
		return err
	}
	if _, ok := st.Materias[subjectID]; !ok {
		return repository.ErrGradeNotFound
	}

	if err := s.studentRepo.RemoveGrade(ctx, studentID, subjectID); err != nil {
		return err
	}

	s.invalidate(ctx, studentID)
	return nil
}

func (s *GradeService) invalidate(ctx context.Context, studentID string) {
	cacheDel(ctx, s.rdb, s.log, config.CacheKey.StudentKey(studentID), config.CacheKey.StudentListKey())
}
