package record

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"

	"nodex/internal/domain/user"
)

type memStore struct {
	mu   sync.Mutex
	docs []Document

	failInsert error
	failUpdate error
}

func (m *memStore) List(_ context.Context, kind, ownerID string) ([]Document, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []Document
	for _, d := range m.docs {
		if d.Kind == kind && d.OwnerID == ownerID {
			out = append(out, d)
		}
	}
	return out, nil
}

func (m *memStore) Get(_ context.Context, kind, id string) (Document, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, d := range m.docs {
		if d.Kind == kind && d.ID == id {
			return d, nil
		}
	}
	return Document{}, ErrNotFound
}

func (m *memStore) FindByOwner(_ context.Context, kind, ownerID string) (Document, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, d := range m.docs {
		if d.Kind == kind && d.OwnerID == ownerID {
			return d, nil
		}
	}
	return Document{}, ErrNotFound
}

func (m *memStore) Insert(_ context.Context, doc Document) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failInsert != nil {
		return m.failInsert
	}
	m.docs = append(m.docs, doc)
	return nil
}

func (m *memStore) Update(_ context.Context, doc Document) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failUpdate != nil {
		return m.failUpdate
	}
	for i, d := range m.docs {
		if d.Kind == doc.Kind && d.ID == doc.ID {
			m.docs[i] = doc
			return nil
		}
	}
	return ErrNotFound
}

func (m *memStore) Delete(_ context.Context, kind, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, d := range m.docs {
		if d.Kind == kind && d.ID == id {
			m.docs = append(m.docs[:i], m.docs[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}

type memFiles struct {
	mu        sync.Mutex
	seq       int
	files     map[string][]byte
	removeErr error
}

func newMemFiles() *memFiles {
	return &memFiles{files: make(map[string][]byte)}
}

func (f *memFiles) Store(_ context.Context, dir, name string, r io.Reader) (string, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.seq++
	path := fmt.Sprintf("%s/%d-%s", dir, f.seq, name)
	f.files[path] = b
	return path, nil
}

func (f *memFiles) Remove(_ context.Context, path string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.removeErr != nil {
		return f.removeErr
	}
	delete(f.files, path)
	return nil
}

func (f *memFiles) has(path string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.files[path]
	return ok
}

type users map[string]user.User

func (u users) FindByID(_ context.Context, id string) (user.User, error) {
	if found, ok := u[id]; ok {
		return found, nil
	}
	return user.User{}, user.ErrNotFound
}

var errStore = errors.New("store is down")
