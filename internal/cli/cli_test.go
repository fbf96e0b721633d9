package cli

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/mrlokans/studyhub/internal/auth"
)

func testBase(t *testing.T) (base, *bytes.Buffer) {
	t.Helper()
	b := newBase()
	b.cfg.Auth.BcryptCost = bcrypt.MinCost
	b.cfg.Auth.JWTSecret = "cli-secret"
	b.DatabasePath = filepath.Join(t.TempDir(), "cli.db")
	out := &bytes.Buffer{}
	b.out = out
	return b, out
}

func TestCreateUserCommand_ParseFlags(t *testing.T) {
	cmd := NewCreateUserCommand()
	err := cmd.ParseFlags([]string{"-email", "ada@example.com"})
	assert.Error(t, err)

	cmd = NewCreateUserCommand()
	require.NoError(t, cmd.ParseFlags([]string{"-email", "ada@example.com", "-password", "password123", "-db", "/tmp/x.db"}))
	assert.Equal(t, "/tmp/x.db", cmd.DatabasePath)
}

func TestCreateUserCommand_Run(t *testing.T) {
	b, out := testBase(t)
	cmd := &CreateUserCommand{base: b, Email: "ada@example.com", Password: "password123", FirstName: "Ada"}

	require.NoError(t, cmd.Run())
	assert.Contains(t, out.String(), "Created user 1 (ada@example.com)")
	assert.Contains(t, out.String(), "Token: ")

	guard := auth.NewTokenGuard([]byte("cli-secret"), 0)
	token := out.String()[bytes.Index(out.Bytes(), []byte("Token: "))+len("Token: "):]
	claims, err := guard.Verify("Bearer " + token[:len(token)-1])
	require.NoError(t, err)
	assert.Equal(t, uint(1), claims.UserID)

	dup := &CreateUserCommand{base: b, Email: "ada@example.com", Password: "password123"}
	err = dup.Run()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Email already registered")
}

func TestGenerateQuestionsCommand_ParseFlags(t *testing.T) {
	cmd := NewGenerateQuestionsCommand()
	assert.Error(t, cmd.ParseFlags([]string{"-subject", "3"}))

	cmd = NewGenerateQuestionsCommand()
	assert.Error(t, cmd.ParseFlags([]string{"-subject", "3", "-user", "1", "-items", "1"}))

	cmd = NewGenerateQuestionsCommand()
	require.NoError(t, cmd.ParseFlags([]string{"-subject", "3", "-user", "1", "-count", "7"}))
	assert.Equal(t, uint(3), cmd.SubjectID)
	assert.Equal(t, 7, cmd.Count)
	assert.Equal(t, 4, cmd.ItemCount)
}

func TestGenerateQuestionsCommand_MissingSubject(t *testing.T) {
	b, _ := testBase(t)
	cmd := &GenerateQuestionsCommand{base: b, SubjectID: 42, UserID: 1, Count: 3, ItemCount: 4}

	err := cmd.Run()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Subject not found")
}
