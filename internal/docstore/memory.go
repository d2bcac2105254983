package docstore

import (
	"context"
	"sync"
)

// Memory is an in-memory Store used by the test suites. It mirrors the
// Dynamo semantics, including the conditional primitives, behind a single
// mutex. Documents are deep-copied on the way in and out.
type Memory struct {
	mu          sync.RWMutex
	collections map[string]map[string]Document
}

// NewMemory creates an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{collections: make(map[string]map[string]Document)}
}

func (m *Memory) GetByID(ctx context.Context, collection, id string) (Document, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	doc, ok := m.collections[collection][id]
	if !ok {
		return nil, ErrNotFound
	}
	return copyDoc(doc)
}

func (m *Memory) Put(ctx context.Context, collection, id string, doc Document) error {
	stored, err := storeCopy(doc, id)
	if err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.col(collection)[id] = stored
	return nil
}

func (m *Memory) PutIfAbsent(ctx context.Context, collection, id string, doc Document) error {
	stored, err := storeCopy(doc, id)
	if err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	col := m.col(collection)
	if _, ok := col[id]; ok {
		return ErrAlreadyExists
	}
	col[id] = stored
	return nil
}

func (m *Memory) Update(ctx context.Context, collection, id string, fields Document) error {
	incoming, err := copyDoc(fields)
	if err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	doc, ok := m.collections[collection][id]
	if !ok {
		return ErrNotFound
	}
	for k, v := range incoming {
		if k == "id" {
			continue
		}
		doc[k] = v
	}
	return nil
}

func (m *Memory) Delete(ctx context.Context, collection, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	col := m.collections[collection]
	if _, ok := col[id]; !ok {
		return ErrNotFound
	}
	delete(col, id)
	return nil
}

func (m *Memory) QueryEquals(ctx context.Context, collection, field string, value any) ([]Document, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var docs []Document
	for _, doc := range m.collections[collection] {
		if doc[field] == value {
			c, err := copyDoc(doc)
			if err != nil {
				return nil, err
			}
			docs = append(docs, c)
		}
	}
	return docs, nil
}

func (m *Memory) List(ctx context.Context, collection string) ([]Document, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var docs []Document
	for _, doc := range m.collections[collection] {
		c, err := copyDoc(doc)
		if err != nil {
			return nil, err
		}
		docs = append(docs, c)
	}
	return docs, nil
}

func (m *Memory) SetMapEntry(ctx context.Context, collection, id, mapField, key string, value any, mustExist bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	doc, ok := m.collections[collection][id]
	if !ok {
		return ErrNotFound
	}
	entries, _ := doc[mapField].(map[string]any)
	if entries == nil {
		entries = make(map[string]any)
		doc[mapField] = entries
	}
	if mustExist {
		if _, present := entries[key]; !present {
			return ErrConditionFailed
		}
	}
	entries[key] = value
	return nil
}

func (m *Memory) RemoveMapEntry(ctx context.Context, collection, id, mapField, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	doc, ok := m.collections[collection][id]
	if !ok {
		return ErrNotFound
	}
	entries, _ := doc[mapField].(map[string]any)
	if _, present := entries[key]; !present {
		return ErrConditionFailed
	}
	delete(entries, key)
	return nil
}

func (m *Memory) col(collection string) map[string]Document {
	col, ok := m.collections[collection]
	if !ok {
		col = make(map[string]Document)
		m.collections[collection] = col
	}
	return col
}

// copyDoc deep-copies through the JSON codec so stored values have the same
// shapes a Dynamo round trip produces (numbers as float64, nested maps as
// map[string]any).
func copyDoc(doc Document) (Document, error) {
	var out Document
	if err := Decode(doc, &out); err != nil {
		return nil, err
	}
	if out == nil {
		out = Document{}
	}
	return out, nil
}

func storeCopy(doc Document, id string) (Document, error) {
	stored, err := copyDoc(doc)
	if err != nil {
		return nil, err
	}
	stored["id"] = id
	return stored, nil
}
