package entities

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQuestion_Items(t *testing.T) {
	var q Question
	require.NoError(t, q.SetItems([]QuestionItem{
		{Text: "Paris", IsCorrect: true},
		{Text: "Lyon"},
	}))

	items, err := q.DecodeItems()
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "Paris", items[0].Text)
	assert.True(t, items[0].IsCorrect)
	assert.False(t, items[1].IsCorrect)
	assert.JSONEq(t, `[{"text":"Paris","isCorrect":true},{"text":"Lyon","isCorrect":false}]`, string(q.Items))
}

func TestQuestion_DecodeItems_Empty(t *testing.T) {
	items, err := Question{}.DecodeItems()
	require.NoError(t, err)
	assert.Nil(t, items)
}

func TestSubject_OwnerID(t *testing.T) {
	assert.Zero(t, Subject{}.OwnerID())
	assert.Equal(t, uint(7), Subject{Collection: &Collection{UserID: 7}}.OwnerID())
	assert.Equal(t, uint(3), Collection{UserID: 3}.OwnerID())
}

func TestUser_HidesPasswordHash(t *testing.T) {
	raw, err := json.Marshal(User{ID: 1, Email: "a@b.c", PasswordHash: "hash"})
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "hash\"")
	assert.NotContains(t, string(raw), "PasswordHash")
}
