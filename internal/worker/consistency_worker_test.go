package worker

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/siscolar/registro-backend/internal/docstore"
	"github.com/siscolar/registro-backend/internal/repository"
)

func newSweepFixture() (*ConsistencyWorker, *docstore.Memory) {
	store := docstore.NewMemory()
	w := NewConsistencyWorker(store, time.Minute, zerolog.Nop())
	return w, store
}

func TestSweepRestoresMissingReservation(t *testing.T) {
	w, store := newSweepFixture()
	ctx := context.Background()

	// A student exists but its control-number reservation is gone, as after
	// a crash between the document write and the index write.
	require.NoError(t, store.Put(ctx, repository.AlumnosCollection, "A1", docstore.Document{
		"numero_control": "20230001",
	}))

	require.NoError(t, w.Sweep(ctx))

	res, err := store.GetByID(ctx, repository.ControlNumberIndex, "20230001")
	require.NoError(t, err)
	assert.Equal(t, "A1", res["alumno_id"])
}

func TestSweepRemovesOrphanedReservation(t *testing.T) {
	w, store := newSweepFixture()
	ctx := context.Background()

	// A reservation whose owner no longer exists.
	require.NoError(t, store.Put(ctx, repository.ControlNumberIndex, "20230001", docstore.Document{
		"alumno_id": "A1",
	}))

	require.NoError(t, w.Sweep(ctx))

	_, err := store.GetByID(ctx, repository.ControlNumberIndex, "20230001")
	assert.ErrorIs(t, err, docstore.ErrNotFound)
}

func TestSweepReplacesStaleReservation(t *testing.T) {
	w, store := newSweepFixture()
	ctx := context.Background()

	// A1 changed its control number but the old release was lost: the stale
	// reservation still points at A1 while A1 now claims a different number.
	require.NoError(t, store.Put(ctx, repository.AlumnosCollection, "A1", docstore.Document{
		"numero_control": "20230002",
	}))
	require.NoError(t, store.Put(ctx, repository.ControlNumberIndex, "20230001", docstore.Document{
		"alumno_id": "A1",
	}))

	require.NoError(t, w.Sweep(ctx))

	_, err := store.GetByID(ctx, repository.ControlNumberIndex, "20230001")
	assert.ErrorIs(t, err, docstore.ErrNotFound)

	res, err := store.GetByID(ctx, repository.ControlNumberIndex, "20230002")
	require.NoError(t, err)
	assert.Equal(t, "A1", res["alumno_id"])
}

func TestSweepKeepsValidReservation(t *testing.T) {
	w, store := newSweepFixture()
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, repository.AlumnosCollection, "A1", docstore.Document{
		"numero_control": "20230001",
	}))
	require.NoError(t, store.Put(ctx, repository.ControlNumberIndex, "20230001", docstore.Document{
		"alumno_id": "A1",
	}))

	require.NoError(t, w.Sweep(ctx))

	res, err := store.GetByID(ctx, repository.ControlNumberIndex, "20230001")
	require.NoError(t, err)
	assert.Equal(t, "A1", res["alumno_id"])
}

func TestSweepCoversSubjectNames(t *testing.T) {
	w, store := newSweepFixture()
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, repository.MateriasCollection, "MAT-101", docstore.Document{
		"nombre": "Cálculo Diferencial",
	}))

	require.NoError(t, w.Sweep(ctx))

	res, err := store.GetByID(ctx, repository.SubjectNameIndex, "Cálculo Diferencial")
	require.NoError(t, err)
	assert.Equal(t, "MAT-101", res["materia_id"])
}

func TestSweepDuplicateOwnersLeftForOperator(t *testing.T) {
	w, store := newSweepFixture()
	ctx := context.Background()

	// Two students claiming the same control number is a real inconsistency
	// the sweep only reports; it must not pick a winner by deleting data.
	require.NoError(t, store.Put(ctx, repository.AlumnosCollection, "A1", docstore.Document{
		"numero_control": "20230001",
	}))
	require.NoError(t, store.Put(ctx, repository.AlumnosCollection, "A2", docstore.Document{
		"numero_control": "20230001",
	}))

	require.NoError(t, w.Sweep(ctx))

	_, err := store.GetByID(ctx, repository.AlumnosCollection, "A1")
	require.NoError(t, err)
	_, err = store.GetByID(ctx, repository.AlumnosCollection, "A2")
	require.NoError(t, err)
}
