package storage

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nodex/internal/domain/record"
	"nodex/internal/domain/user"
)

// runContract проверяет поведение, общее для всех драйверов.
func runContract(t *testing.T, s *Storage) {
	ctx := context.Background()
	now := time.Now().UTC().Truncate(time.Millisecond)

	newUser := func(t *testing.T, email string) user.User {
		u := user.User{
			ID:           uuid.NewString(),
			Name:         "Jane Doe",
			Email:        email,
			Contact:      "+1 555 0100 200",
			PasswordHash: "$2a$10$hash",
			CreatedAt:    now,
		}
		require.NoError(t, s.Users.Create(ctx, u))
		return u
	}

	newDoc := func(kind, owner, data string) record.Document {
		return record.Document{
			ID:        uuid.NewString(),
			Kind:      kind,
			OwnerID:   owner,
			Author:    "Jane Doe",
			Data:      []byte(data),
			CreatedAt: now,
			UpdatedAt: now,
		}
	}

	t.Run("users", func(t *testing.T) {
		u := newUser(t, "users@example.com")

		byEmail, err := s.Users.FindByEmail(ctx, "users@example.com")
		require.NoError(t, err)
		assert.Equal(t, u.ID, byEmail.ID)
		assert.Equal(t, u.PasswordHash, byEmail.PasswordHash)
		assert.True(t, u.CreatedAt.Equal(byEmail.CreatedAt))

		byID, err := s.Users.FindByID(ctx, u.ID)
		require.NoError(t, err)
		assert.Equal(t, "Jane Doe", byID.Name)
		assert.Equal(t, u.Contact, byID.Contact)

		dup := u
		dup.ID = uuid.NewString()
		assert.ErrorIs(t, s.Users.Create(ctx, dup), user.ErrDuplicateEmail)

		_, err = s.Users.FindByEmail(ctx, "nobody@example.com")
		assert.ErrorIs(t, err, user.ErrNotFound)
		_, err = s.Users.FindByID(ctx, uuid.NewString())
		assert.ErrorIs(t, err, user.ErrNotFound)
	})

	t.Run("list keeps insertion order per owner and kind", func(t *testing.T) {
		a := newUser(t, "order-a@example.com")
		b := newUser(t, "order-b@example.com")

		var ids []string
		for _, title := range []string{"first", "second", "third"} {
			doc := newDoc(record.KindAbout.Name, a.ID, `{"title":"`+title+`"}`)
			require.NoError(t, s.Records.Insert(ctx, doc))
			ids = append(ids, doc.ID)
		}
		require.NoError(t, s.Records.Insert(ctx, newDoc(record.KindAbout.Name, b.ID, `{"title":"other"}`)))
		require.NoError(t, s.Records.Insert(ctx, newDoc(record.KindService.Name, a.ID, `{"title":"service"}`)))

		docs, err := s.Records.List(ctx, record.KindAbout.Name, a.ID)
		require.NoError(t, err)
		require.Len(t, docs, 3)
		for i, doc := range docs {
			assert.Equal(t, ids[i], doc.ID)
			assert.Equal(t, a.ID, doc.OwnerID)
		}
		assert.JSONEq(t, `{"title":"first"}`, string(docs[0].Data))

		empty, err := s.Records.List(ctx, record.KindUserdata.Name, a.ID)
		require.NoError(t, err)
		assert.NotNil(t, empty)
		assert.Empty(t, empty)
	})

	t.Run("get update delete", func(t *testing.T) {
		u := newUser(t, "crud@example.com")
		doc := newDoc(record.KindService.Name, u.ID, `{"title":"Consulting"}`)
		require.NoError(t, s.Records.Insert(ctx, doc))

		got, err := s.Records.Get(ctx, record.KindService.Name, doc.ID)
		require.NoError(t, err)
		assert.Nil(t, got.FilePath)
		assert.True(t, now.Equal(got.CreatedAt))

		_, err = s.Records.Get(ctx, record.KindAbout.Name, doc.ID)
		assert.ErrorIs(t, err, record.ErrNotFound, "kind is part of the key")

		path := "serviceuploads/1-abc-logo.png"
		later := now.Add(time.Minute)
		got.Data = []byte(`{"title":"Advisory"}`)
		got.FilePath = &path
		got.UpdatedAt = later
		require.NoError(t, s.Records.Update(ctx, got))

		got, err = s.Records.Get(ctx, record.KindService.Name, doc.ID)
		require.NoError(t, err)
		assert.JSONEq(t, `{"title":"Advisory"}`, string(got.Data))
		require.NotNil(t, got.FilePath)
		assert.Equal(t, path, *got.FilePath)
		assert.True(t, later.Equal(got.UpdatedAt))
		assert.True(t, now.Equal(got.CreatedAt))

		missing := newDoc(record.KindService.Name, u.ID, `{}`)
		assert.ErrorIs(t, s.Records.Update(ctx, missing), record.ErrNotFound)

		require.NoError(t, s.Records.Delete(ctx, record.KindService.Name, doc.ID))
		assert.ErrorIs(t, s.Records.Delete(ctx, record.KindService.Name, doc.ID), record.ErrNotFound)
		_, err = s.Records.Get(ctx, record.KindService.Name, doc.ID)
		assert.ErrorIs(t, err, record.ErrNotFound)
	})

	t.Run("one contact per owner", func(t *testing.T) {
		a := newUser(t, "contact-a@example.com")
		b := newUser(t, "contact-b@example.com")

		first := newDoc(record.KindContact.Name, a.ID, `{"title":"Head office"}`)
		require.NoError(t, s.Records.Insert(ctx, first))
		assert.ErrorIs(t, s.Records.Insert(ctx, newDoc(record.KindContact.Name, a.ID, `{}`)), record.ErrConflict)
		require.NoError(t, s.Records.Insert(ctx, newDoc(record.KindContact.Name, b.ID, `{}`)))

		found, err := s.Records.FindByOwner(ctx, record.KindContact.Name, a.ID)
		require.NoError(t, err)
		assert.Equal(t, first.ID, found.ID)

		_, err = s.Records.FindByOwner(ctx, record.KindContact.Name, uuid.NewString())
		assert.ErrorIs(t, err, record.ErrNotFound)

		// other kinds are not limited
		require.NoError(t, s.Records.Insert(ctx, newDoc(record.KindAbout.Name, a.ID, `{}`)))
		require.NoError(t, s.Records.Insert(ctx, newDoc(record.KindAbout.Name, a.ID, `{}`)))
	})
}
