package record

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"golang.org/x/exp/slog"
)

type Servicer[F Fields, P Patch[F]] interface {
	Kind() Kind
	List(ctx context.Context, userID string) ([]Record[F], error)
	Find(ctx context.Context, userID, id string) (Record[F], error)
	Create(ctx context.Context, userID string, fields F, file *Upload) (Record[F], error)
	Update(ctx context.Context, userID, id string, patch P, file *Upload) (Record[F], error)
	Upsert(ctx context.Context, userID, id string, patch P, file *Upload) (Record[F], error)
	Delete(ctx context.Context, userID, id string) error
}

// Service - CRUD над записями одного вида с проверкой владельца. Один экземпляр на вид.
type Service[F Fields, P Patch[F]] struct {
	kind      Kind
	store     Store
	files     Files
	users     UserFinder
	publicURL string
	log       *slog.Logger
	now       func() time.Time
}

// NewService creates a record service for the given kind
func NewService[F Fields, P Patch[F]](kind Kind, store Store, files Files, users UserFinder, publicURL string, log *slog.Logger) *Service[F, P] {
	return &Service[F, P]{
		kind:      kind,
		store:     store,
		files:     files,
		users:     users,
		publicURL: publicURL,
		log:       log.With("component", "record_service", "kind", kind.Name),
		now:       time.Now,
	}
}

func (s *Service[F, P]) Kind() Kind {
	return s.kind
}

// List returns all records of the user in insertion order
func (s *Service[F, P]) List(ctx context.Context, userID string) ([]Record[F], error) {
	docs, err := s.store.List(ctx, s.kind.Name, userID)
	if err != nil {
		return nil, fmt.Errorf("list records: %w", err)
	}

	records := make([]Record[F], 0, len(docs))
	for _, doc := range docs {
		rec, err := s.toRecord(doc)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}

	return records, nil
}

// Find returns a single record owned by the user
func (s *Service[F, P]) Find(ctx context.Context, userID, id string) (Record[F], error) {
	doc, err := s.owned(ctx, userID, id)
	if err != nil {
		return Record[F]{}, err
	}
	return s.toRecord(doc)
}

// Create validates the fields, stores the attachment and then inserts the record
func (s *Service[F, P]) Create(ctx context.Context, userID string, fields F, file *Upload) (Record[F], error) {
	if err := fields.Validate(); err != nil {
		return Record[F]{}, err
	}

	if s.kind.Singleton {
		_, err := s.store.FindByOwner(ctx, s.kind.Name, userID)
		switch {
		case err == nil:
			return Record[F]{}, ErrConflict
		case !errors.Is(err, ErrNotFound):
			return Record[F]{}, fmt.Errorf("find existing record: %w", err)
		}
	}

	author, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return Record[F]{}, fmt.Errorf("resolve author: %w", err)
	}

	data, err := json.Marshal(fields)
	if err != nil {
		return Record[F]{}, fmt.Errorf("encode %s fields: %w", s.kind.Name, err)
	}

	filePath, err := s.storeFile(ctx, file)
	if err != nil {
		return Record[F]{}, err
	}

	now := s.now().UTC()
	doc := Document{
		ID:        uuid.NewString(),
		Kind:      s.kind.Name,
		OwnerID:   userID,
		Author:    author.Name,
		Data:      data,
		FilePath:  filePath,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.store.Insert(ctx, doc); err != nil {
		s.discard(ctx, filePath)
		if errors.Is(err, ErrConflict) {
			return Record[F]{}, ErrConflict
		}
		s.log.Error("failed to create record", "user_id", userID, "error", err)
		return Record[F]{}, fmt.Errorf("insert record: %w", err)
	}

	s.log.Info("record created", "record_id", doc.ID, "user_id", userID)

	return s.toRecord(doc)
}

// Update applies the supplied fields. A new attachment replaces the old one only after the record is persisted.
func (s *Service[F, P]) Update(ctx context.Context, userID, id string, patch P, file *Upload) (Record[F], error) {
	if err := patch.Validate(); err != nil {
		return Record[F]{}, err
	}

	doc, err := s.owned(ctx, userID, id)
	if err != nil {
		return Record[F]{}, err
	}

	return s.apply(ctx, doc, patch, file)
}

// Upsert updates the record with the given id, or the owner's single record for singleton kinds, or creates a new one.
func (s *Service[F, P]) Upsert(ctx context.Context, userID, id string, patch P, file *Upload) (Record[F], error) {
	if err := patch.Validate(); err != nil {
		return Record[F]{}, err
	}

	if id != "" {
		doc, err := s.store.Get(ctx, s.kind.Name, id)
		switch {
		case err == nil:
			if doc.OwnerID != userID {
				return Record[F]{}, ErrForbidden
			}
			return s.apply(ctx, doc, patch, file)
		case !errors.Is(err, ErrNotFound):
			return Record[F]{}, fmt.Errorf("get record: %w", err)
		}
	}

	if s.kind.Singleton {
		doc, err := s.store.FindByOwner(ctx, s.kind.Name, userID)
		switch {
		case err == nil:
			return s.apply(ctx, doc, patch, file)
		case !errors.Is(err, ErrNotFound):
			return Record[F]{}, fmt.Errorf("find existing record: %w", err)
		}
	}

	return s.Create(ctx, userID, patch.Fields(), file)
}

// Delete removes the record and then, best effort, its attachment
func (s *Service[F, P]) Delete(ctx context.Context, userID, id string) error {
	doc, err := s.owned(ctx, userID, id)
	if err != nil {
		return err
	}

	if err := s.store.Delete(ctx, s.kind.Name, id); err != nil {
		if errors.Is(err, ErrNotFound) {
			return ErrNotFound
		}
		s.log.Error("failed to delete record", "record_id", id, "user_id", userID, "error", err)
		return fmt.Errorf("delete record: %w", err)
	}

	s.discard(ctx, doc.FilePath)
	s.log.Info("record deleted", "record_id", id, "user_id", userID)

	return nil
}

func (s *Service[F, P]) owned(ctx context.Context, userID, id string) (Document, error) {
	doc, err := s.store.Get(ctx, s.kind.Name, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return Document{}, ErrNotFound
		}
		return Document{}, fmt.Errorf("get record: %w", err)
	}

	if doc.OwnerID != userID {
		s.log.Warn("ownership mismatch", "record_id", id, "user_id", userID)
		return Document{}, ErrForbidden
	}

	return doc, nil
}

func (s *Service[F, P]) apply(ctx context.Context, doc Document, patch P, file *Upload) (Record[F], error) {
	current, err := s.decode(doc.Data)
	if err != nil {
		return Record[F]{}, err
	}

	data, err := json.Marshal(patch.Apply(current))
	if err != nil {
		return Record[F]{}, fmt.Errorf("encode %s fields: %w", s.kind.Name, err)
	}

	newPath, err := s.storeFile(ctx, file)
	if err != nil {
		return Record[F]{}, err
	}

	oldPath := doc.FilePath
	doc.Data = data
	if newPath != nil {
		doc.FilePath = newPath
	}
	doc.UpdatedAt = s.now().UTC()

	if err := s.store.Update(ctx, doc); err != nil {
		s.discard(ctx, newPath)
		if errors.Is(err, ErrNotFound) {
			return Record[F]{}, ErrNotFound
		}
		s.log.Error("failed to update record", "record_id", doc.ID, "error", err)
		return Record[F]{}, fmt.Errorf("update record: %w", err)
	}

	// старый файл удаляем только после того, как запись ссылается на новый
	if newPath != nil {
		s.discard(ctx, oldPath)
	}

	s.log.Info("record updated", "record_id", doc.ID, "user_id", doc.OwnerID)

	return s.toRecord(doc)
}

func (s *Service[F, P]) storeFile(ctx context.Context, file *Upload) (*string, error) {
	if file == nil {
		return nil, nil
	}

	path, err := s.files.Store(ctx, s.kind.UploadDir, file.Name, file.Content)
	if err != nil {
		return nil, fmt.Errorf("store attachment: %w", err)
	}

	return &path, nil
}

func (s *Service[F, P]) discard(ctx context.Context, path *string) {
	if path == nil {
		return
	}
	if err := s.files.Remove(ctx, *path); err != nil {
		s.log.Warn("failed to remove attachment", "path", *path, "error", err)
	}
}

func (s *Service[F, P]) decode(data []byte) (F, error) {
	var fields F
	if err := json.Unmarshal(data, &fields); err != nil {
		return fields, fmt.Errorf("decode %s fields: %w", s.kind.Name, err)
	}
	return fields, nil
}

func (s *Service[F, P]) toRecord(doc Document) (Record[F], error) {
	fields, err := s.decode(doc.Data)
	if err != nil {
		return Record[F]{}, err
	}

	rec := Record[F]{
		ID:        doc.ID,
		OwnerID:   doc.OwnerID,
		Author:    doc.Author,
		Data:      fields,
		FilePath:  doc.FilePath,
		CreatedAt: doc.CreatedAt,
		UpdatedAt: doc.UpdatedAt,
	}

	if doc.FilePath != nil {
		imagePath, err := url.JoinPath(s.publicURL, s.kind.RoutePrefix, *doc.FilePath)
		if err != nil {
			return Record[F]{}, fmt.Errorf("build image path: %w", err)
		}
		rec.ImagePath = &imagePath
	}

	return rec, nil
}
