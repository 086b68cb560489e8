package user

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/evstore/storefront/internal/apperr"
	"github.com/evstore/storefront/internal/db/dbtest"
)

func TestPGRepo(t *testing.T) {
	repo := NewPGRepo(dbtest.NewTestPool(t))
	ctx := context.Background()

	hash, err := HashPassword("correct horse")
	require.NoError(t, err)
	u := &User{Username: "ada", Email: "ada@example.com", PasswordHash: hash}
	require.NoError(t, repo.Create(ctx, u))
	require.NotEqual(t, uuid.Nil, u.ID)

	got, err := repo.GetByEmail(ctx, "ADA@example.com")
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)
	assert.True(t, CheckPassword(got.PasswordHash, "correct horse"))

	ok, err := repo.Exists(ctx, u.ID)
	require.NoError(t, err)
	assert.True(t, ok)
	ok, err = repo.Exists(ctx, uuid.New())
	require.NoError(t, err)
	assert.False(t, ok)

	err = repo.Create(ctx, &User{Username: "ada2", Email: "ada@example.com", PasswordHash: hash})
	var ce *apperr.ConflictError
	require.True(t, errors.As(err, &ce), "got %v", err)
	assert.Equal(t, "email", ce.Field)

	err = repo.Create(ctx, &User{Username: "ada", Email: "other@example.com", PasswordHash: hash})
	require.True(t, errors.As(err, &ce), "got %v", err)
	assert.Equal(t, "username", ce.Field)

	_, err = repo.GetByID(ctx, uuid.New())
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}
