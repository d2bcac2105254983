package service

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/siscolar/registro-backend/internal/config"
	"github.com/siscolar/registro-backend/internal/model"
	"github.com/siscolar/registro-backend/internal/repository"
	"github.com/siscolar/registro-backend/internal/validation"
)

// StudentService implements the alumno operations: CRUD plus the field
// validation and control-number uniqueness rules. rdb may be nil, which
// disables the read-through cache.
type StudentService struct {
	studentRepo *repository.StudentRepository
	rdb         *redis.Client
	cfg         *config.Config
	log         zerolog.Logger
}

// NewStudentService creates a StudentService.
func NewStudentService(studentRepo *repository.StudentRepository, rdb *redis.Client, cfg *config.Config, log zerolog.Logger) *StudentService {
	return &StudentService{
		studentRepo: studentRepo,
		rdb:         rdb,
		cfg:         cfg,
		log:         log.With().Str("component", "student_service").Logger(),
	}
}

// List returns all students. Scans slower than the configured threshold are
// logged as a warning but still succeed.
func (s *StudentService) List(ctx context.Context) ([]model.Student, error) {
	var cached []model.Student
	if cacheGet(ctx, s.rdb, s.log, config.CacheKey.StudentListKey(), &cached) {
		return cached, nil
	}

	start := time.Now()
	students, err := s.studentRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	if elapsed := time.Since(start); elapsed > s.cfg.SlowListThreshold {
		s.log.Warn().Dur("elapsed", elapsed).Msg("Consulta de alumnos tardó más de lo esperado")
	}

	cacheSet(ctx, s.rdb, s.log, config.CacheKey.StudentListKey(), students, s.cfg.CacheTTL)
	return students, nil
}

// Get returns the full student record including its grade map.
func (s *StudentService) Get(ctx context.Context, id string) (*model.Student, error) {
	if !validation.ValidStudentID(id) {
		return nil, ErrStudentIDInvalid
	}

	var cached model.Student
	if cacheGet(ctx, s.rdb, s.log, config.CacheKey.StudentKey(id), &cached) {
		return &cached, nil
	}

	st, err := s.studentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	cacheSet(ctx, s.rdb, s.log, config.CacheKey.StudentKey(id), st, s.cfg.CacheTTL)
	return st, nil
}

// Create validates the payload and persists a new student with an empty
// grade map. Field checks run in a fixed order and the first failure wins.
func (s *StudentService) Create(ctx context.Context, req *model.CreateStudentRequest) (*model.Student, error) {
	if *req.ID == "" || *req.NumeroControl == "" || *req.Nombre == "" || *req.Email == "" {
		return nil, ErrMissingFields
	}
	if err := validateStudentFields(*req.ID, *req.NumeroControl, *req.Email, *req.Edad, *req.Semestre); err != nil {
		return nil, err
	}

	st := &model.Student{
		ID:            *req.ID,
		NumeroControl: *req.NumeroControl,
		Nombre:        *req.Nombre,
		Semestre:      *req.Semestre,
		Edad:          *req.Edad,
		Email:         *req.Email,
	}
	if err := s.studentRepo.Create(ctx, st); err != nil {
		return nil, err
	}

	cacheDel(ctx, s.rdb, s.log, config.CacheKey.StudentListKey())
	return st, nil
}

// Update validates the payload and overwrites the named fields of an
// existing student. The control-number conflict check excludes the student
// being updated.
func (s *StudentService) Update(ctx context.Context, id string, req *model.UpdateStudentRequest) (*model.Student, error) {
	if !validation.ValidStudentID(id) {
		return nil, ErrStudentIDInvalid
	}
	if *req.NumeroControl == "" || *req.Nombre == "" || *req.Email == "" {
		return nil, ErrMissingFields
	}
	if err := validateStudentFields(id, *req.NumeroControl, *req.Email, *req.Edad, *req.Semestre); err != nil {
		return nil, err
	}

	st := &model.Student{
		ID:            id,
		NumeroControl: *req.NumeroControl,
		Nombre:        *req.Nombre,
		Semestre:      *req.Semestre,
		Edad:          *req.Edad,
		Email:         *req.Email,
	}
	if err := s.studentRepo.Update(ctx, st); err != nil {
		return nil, err
	}

	cacheDel(ctx, s.rdb, s.log, config.CacheKey.StudentKey(id), config.CacheKey.StudentListKey())
	return st, nil
}

// Delete removes a student and all of its grades.
func (s *StudentService) Delete(ctx context.Context, id string) error {
	if !validation.ValidStudentID(id) {
		return ErrStudentIDInvalid
	}
	if err := s.studentRepo.Delete(ctx, id); err != nil {
		return err
	}

	cacheDel(ctx, s.rdb, s.log, config.CacheKey.StudentKey(id), config.CacheKey.StudentListKey())
	return nil
}

// validateStudentFields applies the student field validators in the
// documented order: id shape, control number shape, email shape, age range,
// semester range.
func validateStudentFields(id, numeroControl, email string, edad, semestre int) error {
	switch {
	case !validation.ValidStudentID(id):
		return ErrStudentIDInvalid
	case !validation.ValidControlNumber(numeroControl):
		return ErrControlNumberInvalid
	case !validation.ValidEmail(email):
		return ErrEmailInvalid
	case !validation.ValidAge(edad):
		return ErrAgeOutOfRange
	case !validation.ValidStudentSemester(semestre):
		return ErrStudentSemesterOutOfRange
	}
	return nil
}
