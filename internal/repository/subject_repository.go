package repository

import (
	"context"
	"errors"

	"github.com/siscolar/registro-backend/internal/docstore"
	"github.com/siscolar/registro-backend/internal/model"
)

// Collection layout for subjects. Uniqueness of nombre is enforced the same
// way as student control numbers: one index document per registered name.
const (
	MateriasCollection = "materias"
	SubjectNameIndex   = "materias_nombre"
)

// SubjectRepository persists subjects.
type SubjectRepository struct {
	store docstore.Store
}

// NewSubjectRepository creates a SubjectRepository on the given store.
func NewSubjectRepository(store docstore.Store) *SubjectRepository {
	return &SubjectRepository{store: store}
}

// List returns every subject document.
func (r *SubjectRepository) List(ctx context.Context) ([]model.Subject, error) {
	docs, err := r.store.List(ctx, MateriasCollection)
	if err != nil {
		return nil, err
	}

	subjects := make([]model.Subject, 0, len(docs))
	for _, doc := range docs {
		var sub model.Subject
		if err := docstore.Decode(doc, &sub); err != nil {
			return nil, err
		}
		subjects = append(subjects, sub)
	}
	return subjects, nil
}

// GetByID returns a subject by its AAA-999 code.
func (r *SubjectRepository) GetByID(ctx context.Context, id string) (*model.Subject, error) {
	doc, err := r.store.GetByID(ctx, MateriasCollection, id)
	if err != nil {
		if errors.Is(err, docstore.ErrNotFound) {
			return nil, ErrSubjectNotFound
		}
		return nil, err
	}

	var sub model.Subject
	if err := docstore.Decode(doc, &sub); err != nil {
		return nil, err
	}
	return &sub, nil
}

// Create persists a new subject, reserving its nombre first.
func (r *SubjectRepository) Create(ctx context.Context, sub *model.Subject) error {
	if _, err := r.store.GetByID(ctx, MateriasCollection, sub.ID); err == nil {
		return ErrDuplicateSubjectID
	} else if !errors.Is(err, docstore.ErrNotFound) {
		return err
	}

	if err := r.reserveName(ctx, sub.Nombre, sub.ID); err != nil {
		return err
	}

	doc, err := docstore.Encode(sub)
	if err != nil {
		return err
	}

	if err := r.store.PutIfAbsent(ctx, MateriasCollection, sub.ID, doc); err != nil {
		_ = r.store.Delete(ctx, SubjectNameIndex, sub.Nombre)
		if errors.Is(err, docstore.ErrAlreadyExists) {
			return ErrDuplicateSubjectID
		}
		return err
	}
	return nil
}

// Update overwrites the subject with the already-merged record. A changed
// nombre is re-reserved before the write and the old reservation released
// after it.
func (r *SubjectRepository) Update(ctx context.Context, sub *model.Subject) error {
	current, err := r.GetByID(ctx, sub.ID)
	if err != nil {
		return err
	}

	changedName := sub.Nombre != current.Nombre
	if changedName {
		if err := r.reserveName(ctx, sub.Nombre, sub.ID); err != nil {
			return err
		}
	}

	fields := docstore.Document{
		"nombre":            sub.Nombre,
		"semestre":          sub.Semestre,
		"alumnos_inscritos": sub.AlumnosInscritos,
	}
	if err := r.store.Update(ctx, MateriasCollection, sub.ID, fields); err != nil {
		if changedName {
			_ = r.store.Delete(ctx, SubjectNameIndex, sub.Nombre)
		}
		if errors.Is(err, docstore.ErrNotFound) {
			return ErrSubjectNotFound
		}
		return err
	}

	if changedName {
		// Best effort; the consistency sweep removes leftovers.
		_ = r.store.Delete(ctx, SubjectNameIndex, current.Nombre)
	}
	return nil
}

// Delete removes the subject document and its nombre reservation.
func (r *SubjectRepository) Delete(ctx context.Context, id string) error {
	sub, err := r.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := r.store.Delete(ctx, MateriasCollection, id); err != nil {
		if errors.Is(err, docstore.ErrNotFound) {
			return ErrSubjectNotFound
		}
		return err
	}

	_ = r.store.Delete(ctx, SubjectNameIndex, sub.Nombre)
	return nil
}

func (r *SubjectRepository) reserveName(ctx context.Context, nombre, subjectID string) error {
	err := r.store.PutIfAbsent(ctx, SubjectNameIndex, nombre, docstore.Document{
		"materia_id": subjectID,
	})
	if errors.Is(err, docstore.ErrAlreadyExists) {
		return ErrDuplicateSubjectName
	}
	return err
}
