package worker

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/siscolar/registro-backend/internal/docstore"
	"github.com/siscolar/registro-backend/internal/repository"
)

// ConsistencyWorker periodically reconciles the uniqueness index collections
// with the documents that own them. The conditional writes in the
// repositories keep the indexes correct under normal operation; the sweep is
// the safety net for the windows where a crash lands between the reservation
// write and the document write (or between the document delete and the
// reservation release).
//
// A sweep removes orphaned reservations, recreates missing ones, and logs any
// genuine duplicates it cannot repair on its own.
type ConsistencyWorker struct {
	store    docstore.Store
	interval time.Duration
	log      zerolog.Logger
}

// NewConsistencyWorker creates a ConsistencyWorker.
func NewConsistencyWorker(store docstore.Store, interval time.Duration, log zerolog.Logger) *ConsistencyWorker {
	return &ConsistencyWorker{
		store:    store,
		interval: interval,
		log:      log.With().Str("component", "consistency_worker").Logger(),
	}
}

// Start begins the periodic sweep loop. Call in a goroutine.
func (w *ConsistencyWorker) Start(ctx context.Context) {
	w.log.Info().Dur("interval", w.interval).Msg("Worker started")

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			w.log.Info().Msg("Worker stopped")
			return
		case <-ticker.C:
			if err := w.Sweep(ctx); err != nil {
				w.log.Error().Err(err).Msg("Sweep failed")
			}
		}
	}
}

// Sweep reconciles both index collections once. Exposed separately so an
// operator (or a test) can trigger a repair without waiting for the ticker.
func (w *ConsistencyWorker) Sweep(ctx context.Context) error {
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return w.sweepIndex(gctx,
			repository.AlumnosCollection, "numero_control",
			repository.ControlNumberIndex, "alumno_id")
	})
	g.Go(func() error {
		return w.sweepIndex(gctx,
			repository.MateriasCollection, "nombre",
			repository.SubjectNameIndex, "materia_id")
	})
	return g.Wait()
}

// sweepIndex reconciles one index collection against its owning collection.
// valueField is the unique attribute on the owning document, ownerField the
// back-reference stored in the reservation.
func (w *ConsistencyWorker) sweepIndex(ctx context.Context, collection, valueField, indexCollection, ownerField string) error {
	docs, err := w.store.List(ctx, collection)
	if err != nil {
		return err
	}
	reservations, err := w.store.List(ctx, indexCollection)
	if err != nil {
		return err
	}

	// Owners by claimed value. More than one owner for a value is a real
	// duplicate the sweep cannot decide; it only reports those.
	claimed := make(map[string][]string)
	for _, d := range docs {
		id, _ := d["id"].(string)
		value, _ := d[valueField].(string)
		if id == "" || value == "" {
			continue
		}
		claimed[value] = append(claimed[value], id)
	}
	for value, owners := range claimed {
		if len(owners) > 1 {
			w.log.Warn().
				Str("collection", collection).
				Str(valueField, value).
				Strs("owners", owners).
				Msg("Valor único reclamado por varios documentos")
		}
	}

	// Drop reservations whose owner is gone or no longer claims the value.
	reserved := make(map[string]string, len(reservations))
	for _, res := range reservations {
		value, _ := res["id"].(string)
		owner, _ := res[ownerField].(string)
		reserved[value] = owner

		valid := false
		for _, id := range claimed[value] {
			if id == owner {
				valid = true
				break
			}
		}
		if !valid {
			if err := w.store.Delete(ctx, indexCollection, value); err != nil && err != docstore.ErrNotFound {
				return err
			}
			delete(reserved, value)
			w.log.Info().
				Str("index", indexCollection).
				Str("valor", value).
				Str("owner", owner).
				Msg("Reserva huérfana eliminada")
		}
	}

	// Recreate missing reservations. PutIfAbsent keeps the sweep safe
	// against concurrent live traffic.
	for value, owners := range claimed {
		if _, ok := reserved[value]; ok {
			continue
		}
		err := w.store.PutIfAbsent(ctx, indexCollection, value, docstore.Document{
			ownerField: owners[0],
		})
		if err != nil && err != docstore.ErrAlreadyExists {
			return err
		}
		if err == nil {
			w.log.Info().
				Str("index", indexCollection).
				Str("valor", value).
				Str("owner", owners[0]).
				Msg("Reserva faltante restaurada")
		}
	}

	return nil
}
