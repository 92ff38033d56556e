package repository

import (
	"testing"

	"manavault/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserRepository_CreateAndGet(t *testing.T) {
	repo := NewUserRepository(newTestDB(t))
	ctx := t.Context()

	user := &models.User{Username: "chandra", Email: "chandra@example.com", Password: "hashed"}
	require.NoError(t, repo.Create(ctx, user))
	assert.NotZero(t, user.ID)

	byEmail, err := repo.GetByEmail(ctx, "Chandra@Example.com")
	require.NoError(t, err)
	require.NotNil(t, byEmail)
	assert.Equal(t, user.ID, byEmail.ID)

	byUsername, err := repo.GetByUsername(ctx, "CHANDRA")
	require.NoError(t, err)
	require.NotNil(t, byUsername)
	assert.Equal(t, user.ID, byUsername.ID)

	byID, err := repo.GetByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "chandra", byID.Username)
}

func TestUserRepository_GetMissingUser(t *testing.T) {
	repo := NewUserRepository(newTestDB(t))
	ctx := t.Context()

	byEmail, err := repo.GetByEmail(ctx, "ghost@example.com")
	require.NoError(t, err)
	assert.Nil(t, byEmail)

	_, err = repo.GetByID(ctx, 999)
	require.Error(t, err)
	appErr, ok := err.(*models.AppError)
	require.True(t, ok)
	assert.Equal(t, "NOT_FOUND", appErr.Code)
}

func TestUserRepository_DuplicateEmailConflicts(t *testing.T) {
	repo := NewUserRepository(newTestDB(t))
	ctx := t.Context()

	require.NoError(t, repo.Create(ctx, &models.User{
		Username: "jace", Email: "jace@example.com", Password: "hashed",
	}))

	err := repo.Create(ctx, &models.User{
		Username: "jace2", Email: "jace@example.com", Password: "hashed",
	})
	require.Error(t, err)
	appErr, ok := err.(*models.AppError)
	require.True(t, ok)
	assert.Equal(t, "CONFLICT", appErr.Code)
}
