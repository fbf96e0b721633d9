package users

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/studyhub/internal/config"
	"github.com/mrlokans/studyhub/internal/database"
	"github.com/mrlokans/studyhub/internal/entities"
	"github.com/mrlokans/studyhub/internal/logging"
)

func setupTestDB(t *testing.T) *Repository {
	t.Helper()
	db, err := database.NewDatabase(config.Database{Path: filepath.Join(t.TempDir(), "users.db")}, logging.Discard())
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return NewRepository(db.DB)
}

func createUser(t *testing.T, repo *Repository, email string) *entities.User {
	t.Helper()
	user := &entities.User{FirstName: "Ada", LastName: "Lovelace", Email: email}
	require.NoError(t, repo.CreateUser(user))
	return user
}

func TestRepository_CreateUser(t *testing.T) {
	repo := setupTestDB(t)

	user := createUser(t, repo, "  Ada@Example.com ")

	assert.NotZero(t, user.ID)
	assert.Equal(t, "ada@example.com", user.Email)
}

func TestRepository_CreateUser_DuplicateEmail(t *testing.T) {
	repo := setupTestDB(t)
	createUser(t, repo, "ada@example.com")

	err := repo.CreateUser(&entities.User{Email: "ADA@example.com"})

	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestRepository_GetUserByID(t *testing.T) {
	repo := setupTestDB(t)
	created := createUser(t, repo, "ada@example.com")

	user, err := repo.GetUserByID(created.ID)

	require.NoError(t, err)
	assert.Equal(t, "Ada", user.FirstName)
}

func TestRepository_GetUserByID_NotFound(t *testing.T) {
	repo := setupTestDB(t)

	_, err := repo.GetUserByID(999)

	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRepository_GetUserByEmail(t *testing.T) {
	repo := setupTestDB(t)
	created := createUser(t, repo, "ada@example.com")

	user, err := repo.GetUserByEmail("ADA@EXAMPLE.COM")

	require.NoError(t, err)
	assert.Equal(t, created.ID, user.ID)
}

func TestRepository_GetUserWithCollections(t *testing.T) {
	repo := setupTestDB(t)
	created := createUser(t, repo, "ada@example.com")
	require.NoError(t, repo.db.Create(&entities.Collection{Name: "Math", UserID: created.ID}).Error)

	user, err := repo.GetUserWithCollections(created.ID)

	require.NoError(t, err)
	require.Len(t, user.Collections, 1)
	assert.Equal(t, "Math", user.Collections[0].Name)
}

func TestRepository_UpdateUser(t *testing.T) {
	repo := setupTestDB(t)
	created := createUser(t, repo, "ada@example.com")

	user, err := repo.UpdateUser(created.ID, map[string]any{"first_name": "Augusta"})

	require.NoError(t, err)
	assert.Equal(t, "Augusta", user.FirstName)
	assert.Equal(t, "Lovelace", user.LastName)
}

func TestRepository_UpdateUser_NotFound(t *testing.T) {
	repo := setupTestDB(t)

	_, err := repo.UpdateUser(42, map[string]any{"first_name": "Nobody"})

	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRepository_DeleteUser(t *testing.T) {
	repo := setupTestDB(t)
	created := createUser(t, repo, "ada@example.com")

	require.NoError(t, repo.DeleteUser(created.ID))

	_, err := repo.GetUserByID(created.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, repo.DeleteUser(created.ID), ErrNotFound)
}
