// Package docstore provides access to the document store backing the
// registry. Documents are schemaless maps addressed by collection name and
// document ID; atomicity is guaranteed only within a single document.
package docstore

import (
	"context"
	"encoding/json"
	"errors"
)

// Document is a schemaless document as stored in a collection.
type Document map[string]any

var (
	// ErrNotFound is returned when a document does not exist.
	ErrNotFound = errors.New("docstore: document not found")

	// ErrAlreadyExists is returned by PutIfAbsent when the document ID is taken.
	ErrAlreadyExists = errors.New("docstore: document already exists")

	// ErrConditionFailed is returned when a conditional map-entry write fails,
	// i.e. the required entry (or its owning document) is gone.
	ErrConditionFailed = errors.New("docstore: condition failed")
)

// Store is the document store client consumed by the repositories.
// The production implementation is Dynamo; tests use Memory.
type Store interface {
	// GetByID returns the document with the given ID, or ErrNotFound.
	GetByID(ctx context.Context, collection, id string) (Document, error)

	// Put writes the full document, creating or replacing it.
	Put(ctx context.Context, collection, id string, doc Document) error

	// PutIfAbsent writes the document only if the ID is not taken,
	// returning ErrAlreadyExists otherwise. This is the conditional
	// primitive the uniqueness index documents rely on.
	PutIfAbsent(ctx context.Context, collection, id string, doc Document) error

	// Update merges the given fields into an existing document.
	// Returns ErrNotFound if the document does not exist.
	Update(ctx context.Context, collection, id string, fields Document) error

	// Delete removes the document, returning ErrNotFound if absent.
	Delete(ctx context.Context, collection, id string) error

	// QueryEquals returns all documents whose field equals value.
	QueryEquals(ctx context.Context, collection, field string, value any) ([]Document, error)

	// List returns every document in the collection. The ID is exposed
	// under the "id" key of each returned document.
	List(ctx context.Context, collection string) ([]Document, error)

	// SetMapEntry atomically sets mapField[key] = value inside an existing
	// document. If mustExist is true the entry itself must already be
	// present. Returns ErrNotFound when the document is absent and
	// ErrConditionFailed when the entry requirement is not met.
	SetMapEntry(ctx context.Context, collection, id, mapField, key string, value any, mustExist bool) error

	// RemoveMapEntry atomically removes mapField[key] from an existing
	// document. Returns ErrNotFound when the document is absent and
	// ErrConditionFailed when the entry is not present.
	RemoveMapEntry(ctx context.Context, collection, id, mapField, key string) error
}

// Decode unmarshals a document into a typed struct via its JSON tags.
func Decode(doc Document, dst any) error {
	raw, err := json.Marshal(doc)
	if err != nil {
		return err
	}
	return json.Unmarshal(raw, dst)
}

// Encode converts a typed struct into a Document via its JSON tags.
func Encode(src any) (Document, error) {
	raw, err := json.Marshal(src)
	if err != nil {
		return nil, err
	}
	var doc Document
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, err
	}
	return doc, nil
}
