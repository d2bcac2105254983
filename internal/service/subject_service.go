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

// SubjectService implements the materia operations: CRUD plus field
// validation and nombre uniqueness. rdb may be nil, which disables the
// read-through cache.
type SubjectService struct {
	subjectRepo *repository.SubjectRepository
	rdb         *redis.Client
	cfg         *config.Config
	log         zerolog.Logger
}

// NewSubjectService creates a SubjectService.
func NewSubjectService(subjectRepo *repository.SubjectRepository, rdb *redis.Client, cfg *config.Config, log zerolog.Logger) *SubjectService {
	return &SubjectService{
		subjectRepo: subjectRepo,
		rdb:         rdb,
		cfg:         cfg,
		log:         log.With().Str("component", "subject_service").Logger(),
	}
}

// List returns all subjects, with the same slow-scan warning as students.
func (s *SubjectService) List(ctx context.Context) ([]model.Subject, error) {
	var cached []model.Subject
	if cacheGet(ctx, s.rdb, s.log, config.CacheKey.SubjectListKey(), &cached) {
		return cached, nil
	}

	start := time.Now()
	subjects, err := s.subjectRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	if elapsed := time.Since(start); elapsed > s.cfg.SlowListThreshold {
		s.log.Warn().Dur("elapsed", elapsed).Msg("Consulta de materias tardó más de lo esperado")
	}

	cacheSet(ctx, s.rdb, s.log, config.CacheKey.SubjectListKey(), subjects, s.cfg.CacheTTL)
	return subjects, nil
}

// Get returns a subject by its AAA-999 code.
func (s *SubjectService) Get(ctx context.Context, id string) (*model.Subject, error) {
	if !validation.ValidSubjectID(id) {
		return nil, ErrSubjectIDInvalid
	}

	var cached model.Subject
	if cacheGet(ctx, s.rdb, s.log, config.CacheKey.SubjectKey(id), &cached) {
		return &cached, nil
	}

	sub, err := s.subjectRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	cacheSet(ctx, s.rdb, s.log, config.CacheKey.SubjectKey(id), sub, s.cfg.CacheTTL)
	return sub, nil
}

// Create validates the payload and persists a new subject.
// alumnos_inscritos defaults to 0 when omitted.
func (s *SubjectService) Create(ctx context.Context, req *model.CreateSubjectRequest) (*model.Subject, error) {
	if *req.ID == "" || *req.Nombre == "" {
		return nil, ErrMissingFields
	}

	inscritos := 0
	if req.AlumnosInscritos != nil {
		inscritos = *req.AlumnosInscritos
	}

	switch {
	case !validation.ValidSubjectID(*req.ID):
		return nil, ErrSubjectIDInvalid
	case !validation.ValidSubjectName(*req.Nombre):
		return nil, ErrSubjectNameInvalid
	case !validation.ValidSubjectSemester(*req.Semestre):
		return nil, ErrSubjectSemesterOutOfRange
	case !validation.ValidEnrolledCount(inscritos):
		return nil, ErrEnrolledCountInvalid
	}

	sub := &model.Subject{
		ID:               *req.ID,
		Nombre:           *req.Nombre,
		Semestre:         *req.Semestre,
		AlumnosInscritos: inscritos,
	}
	if err := s.subjectRepo.Create(ctx, sub); err != nil {
		return nil, err
	}

	cacheDel(ctx, s.rdb, s.log, config.CacheKey.SubjectListKey())
	return sub, nil
}

// Update merges the supplied fields into an existing subject. Each field is
// independently optional; presence is decided by the pointer, never by the
// value, so an explicit alumnos_inscritos of 0 is a real update.
func (s *SubjectService) Update(ctx context.Context, id string, req *model.UpdateSubjectRequest) (*model.Subject, error) {
	if !validation.ValidSubjectID(id) {
		return nil, ErrSubjectIDInvalid
	}

	switch {
	case req.Nombre != nil && !validation.ValidSubjectName(*req.Nombre):
		return nil, ErrSubjectNameInvalid
	case req.Semestre != nil && !validation.ValidSubjectSemester(*req.Semestre):
		return nil, ErrSubjectSemesterOutOfRange
	case req.AlumnosInscritos != nil && !validation.ValidEnrolledCount(*req.AlumnosInscritos):
		return nil, ErrEnrolledCountInvalid
	}

	current, err := s.subjectRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	merged := *current
	if req.Nombre != nil {
		merged.Nombre = *req.Nombre
	}
	if req.Semestre != nil {
		merged.Semestre = *req.Semestre
	}
	if req.AlumnosInscritos != nil {
		merged.AlumnosInscritos = *req.AlumnosInscritos
	}

	if err := s.subjectRepo.Update(ctx, &merged); err != nil {
		return nil, err
	}

	cacheDel(ctx, s.rdb, s.log, config.CacheKey.SubjectKey(id), config.CacheKey.SubjectListKey())
	return &merged, nil
}

// Delete removes a subject.
func (s *SubjectService) Delete(ctx context.Context, id string) error {
	if !validation.ValidSubjectID(id) {
		return ErrSubjectIDInvalid
	}
	if err := s.subjectRepo.Delete(ctx, id); err != nil {
		return err
	}

	cacheDel(ctx, s.rdb, s.log, config.CacheKey.SubjectKey(id), config.CacheKey.SubjectListKey())
	return nil
}
