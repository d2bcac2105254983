package repository

import (
	"context"
	"errors"

	"github.com/siscolar/registro-backend/internal/docstore"
	"github.com/siscolar/registro-backend/internal/model"
)

// Collection layout for students. The control-number index collection holds
// one document per registered numero_control; its conditional create is what
// enforces uniqueness without a cross-document transaction.
const (
	AlumnosCollection  = "alumnos"
	ControlNumberIndex = "alumnos_numero_control"

	materiasField = "materias"
)

// StudentRepository persists students and their nested grade map.
type StudentRepository struct {
	store docstore.Store
}

// NewStudentRepository creates a StudentRepository on the given store.
func NewStudentRepository(store docstore.Store) *StudentRepository {
	return &StudentRepository{store: store}
}

// List returns every student document.
func (r *StudentRepository) List(ctx context.Context) ([]model.Student, error) {
	docs, err := r.store.List(ctx, AlumnosCollection)
	if err != nil {
		return nil, err
	}

	students := make([]model.Student, 0, len(docs))
	for _, doc := range docs {
		var st model.Student
		if err := docstore.Decode(doc, &st); err != nil {
			return nil, err
		}
		if st.Materias == nil {
			st.Materias = map[string]float64{}
		}
		students = append(students, st)
	}
	return students, nil
}

// GetByID returns the full student record including its grade map.
func (r *StudentRepository) GetByID(ctx context.Context, id string) (*model.Student, error) {
	doc, err := r.store.GetByID(ctx, AlumnosCollection, id)
	if err != nil {
		if errors.Is(err, docstore.ErrNotFound) {
			return nil, ErrStudentNotFound
		}
		return nil, err
	}

	var st model.Student
	if err := docstore.Decode(doc, &st); err != nil {
		return nil, err
	}
	if st.Materias == nil {
		st.Materias = map[string]float64{}
	}
	return &st, nil
}

// Create persists a new student with an empty grade map. The control number
// is reserved first with a conditional write; if the student write then
// loses a race on the ID, the reservation is released again.
func (r *StudentRepository) Create(ctx context.Context, st *model.Student) error {
	if _, err := r.store.GetByID(ctx, AlumnosCollection, st.ID); err == nil {
		return ErrDuplicateStudentID
	} else if !errors.Is(err, docstore.ErrNotFound) {
		return err
	}

	if err := r.reserveControlNumber(ctx, st.NumeroControl, st.ID); err != nil {
		return err
	}

	st.Materias = map[string]float64{}
	doc, err := docstore.Encode(st)
	if err != nil {
		return err
	}

	if err := r.store.PutIfAbsent(ctx, AlumnosCollection, st.ID, doc); err != nil {
		_ = r.store.Delete(ctx, ControlNumberIndex, st.NumeroControl)
		if errors.Is(err, docstore.ErrAlreadyExists) {
			return ErrDuplicateStudentID
		}
		return err
	}
	return nil
}

// Update overwrites the named student fields, leaving the grade map alone.
// A changed control number is re-reserved before the write and the old
// reservation released after it.
func (r *StudentRepository) Update(ctx context.Context, st *model.Student) error {
	current, err := r.GetByID(ctx, st.ID)
	if err != nil {
		return err
	}

	changedControl := st.NumeroControl != current.NumeroControl
	if changedControl {
		if err := r.reserveControlNumber(ctx, st.NumeroControl, st.ID); err != nil {
			return err
		}
	}

	fields := docstore.Document{
		"numero_control": st.NumeroControl,
		"nombre":         st.Nombre,
		"semestre":       st.Semestre,
		"edad":           st.Edad,
		"email":          st.Email,
	}
	if err := r.store.Update(ctx, AlumnosCollection, st.ID, fields); err != nil {
		if changedControl {
			_ = r.store.Delete(ctx, ControlNumberIndex, st.NumeroControl)
		}
		if errors.Is(err, docstore.ErrNotFound) {
			return ErrStudentNotFound
		}
		return err
	}

	if changedControl {
		// Best effort; the consistency sweep removes leftovers.
		_ = r.store.Delete(ctx, ControlNumberIndex, current.NumeroControl)
	}

	st.Materias = current.Materias
	return nil
}

// Delete removes the student document, its grade map and its control-number
// reservation.
func (r *StudentRepository) Delete(ctx context.Context, id string) error {
	st, err := r.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := r.store.Delete(ctx, AlumnosCollection, id); err != nil {
		if errors.Is(err, docstore.ErrNotFound) {
			return ErrStudentNotFound
		}
		return err
	}

	_ = r.store.Delete(ctx, ControlNumberIndex, st.NumeroControl)
	return nil
}

// SetGrade writes a single grade map entry atomically. With mustExist the
// entry has to be present already (grade update as opposed to add).
func (r *StudentRepository) SetGrade(ctx context.Context, studentID, subjectID string, value float64, mustExist bool) error {
	err := r.store.SetMapEntry(ctx, AlumnosCollection, studentID, materiasField, subjectID, value, mustExist)
	switch {
	case errors.Is(err, docstore.ErrNotFound):
		return ErrStudentNotFound
	case errors.Is(err, docstore.ErrConditionFailed):
		return ErrGradeNotFound
	}
	return err
}

// RemoveGrade deletes a single grade map entry atomically.
func (r *StudentRepository) RemoveGrade(ctx context.Context, studentID, subjectID string) error {
	err := r.store.RemoveMapEntry(ctx, AlumnosCollection, studentID, materiasField, subjectID)
	switch {
	case errors.Is(err, docstore.ErrNotFound):
		return ErrStudentNotFound
	case errors.Is(err, docstore.ErrConditionFailed):
		return ErrGradeNotFound
	}
	return err
}

func (r *StudentRepository) reserveControlNumber(ctx context.Context, numeroControl, studentID string) error {
	err := r.store.PutIfAbsent(ctx, ControlNumberIndex, numeroControl, docstore.Document{
		"alumno_id": studentID,
	})
	if errors.Is(err, docstore.ErrAlreadyExists) {
		return ErrDuplicateControlNumber
	}
	return err
}
