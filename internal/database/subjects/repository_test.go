package subjects

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/studyhub/internal/config"
	"github.com/mrlokans/studyhub/internal/database"
	"github.com/mrlokans/studyhub/internal/entities"
	"github.com/mrlokans/studyhub/internal/logging"
)

func setupTestDB(t *testing.T) (*Repository, *entities.Collection) {
	t.Helper()
	db, err := database.NewDatabase(config.Database{Path: filepath.Join(t.TempDir(), "subjects.db")}, logging.Discard())
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	user := &entities.User{Email: "owner@example.com"}
	require.NoError(t, db.DB.Create(user).Error)
	collection := &entities.Collection{Name: "Physics", UserID: user.ID}
	require.NoError(t, db.DB.Create(collection).Error)

	return NewRepository(db.DB), collection
}

func TestRepository_CreateSubject(t *testing.T) {
	repo, collection := setupTestDB(t)
	image := "data:image/png;base64,AAAA"

	subject := &entities.Subject{Name: "Optics", CollectionID: collection.ID, Image: &image}
	require.NoError(t, repo.CreateSubject(subject))

	assert.NotZero(t, subject.ID)
	require.NotNil(t, subject.Collection)
	assert.Equal(t, collection.UserID, subject.OwnerID())
}

func TestRepository_GetSubjectByID(t *testing.T) {
	repo, collection := setupTestDB(t)
	subject := &entities.Subject{Name: "Optics", CollectionID: collection.ID}
	require.NoError(t, repo.CreateSubject(subject))

	found, err := repo.GetSubjectByID(subject.ID)

	require.NoError(t, err)
	assert.Equal(t, "Optics", found.Name)
	assert.Equal(t, collection.UserID, found.OwnerID())
	assert.Nil(t, found.Resume)

	_, err = repo.GetSubjectByID(999)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRepository_GetSubjectDetail_OrdersConversation(t *testing.T) {
	repo, collection := setupTestDB(t)
	subject := &entities.Subject{Name: "Optics", CollectionID: collection.ID}
	require.NoError(t, repo.CreateSubject(subject))

	base := time.Now()
	require.NoError(t, repo.db.Create(&entities.Conversation{Text: "second", SubjectID: subject.ID, CreatedAt: base.Add(time.Minute)}).Error)
	require.NoError(t, repo.db.Create(&entities.Conversation{Text: "first", SubjectID: subject.ID, CreatedAt: base}).Error)
	require.NoError(t, repo.db.Create(&entities.Question{Text: "Why?", SubjectID: subject.ID}).Error)

	detail, err := repo.GetSubjectDetail(subject.ID)

	require.NoError(t, err)
	require.Len(t, detail.Conversations, 2)
	assert.Equal(t, "first", detail.Conversations[0].Text)
	assert.Equal(t, "second", detail.Conversations[1].Text)
	require.Len(t, detail.Questions, 1)
}

func TestRepository_ListSubjectsForCollection(t *testing.T) {
	repo, collection := setupTestDB(t)
	require.NoError(t, repo.CreateSubject(&entities.Subject{Name: "A", CollectionID: collection.ID}))
	require.NoError(t, repo.CreateSubject(&entities.Subject{Name: "B", CollectionID: collection.ID}))

	list, err := repo.ListSubjectsForCollection(collection.ID)

	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "A", list[0].Name)
}

func TestRepository_UpdateAndDeleteSubject(t *testing.T) {
	repo, collection := setupTestDB(t)
	subject := &entities.Subject{Name: "Draft", CollectionID: collection.ID}
	require.NoError(t, repo.CreateSubject(subject))

	updated, err := repo.UpdateSubject(subject.ID, map[string]any{"name": "Final", "resume": "Light bends."})
	require.NoError(t, err)
	assert.Equal(t, "Final", updated.Name)
	require.NotNil(t, updated.Resume)
	assert.Equal(t, "Light bends.", *updated.Resume)

	exists, err := repo.Exists(subject.ID)
	require.NoError(t, err)
	assert.True(t, exists)

	require.NoError(t, repo.DeleteSubject(subject.ID))
	exists, err = repo.Exists(subject.ID)
	require.NoError(t, err)
	assert.False(t, exists)
	assert.ErrorIs(t, repo.DeleteSubject(subject.ID), ErrNotFound)
}
