package result

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKind_StatusCode(t *testing.T) {
	tests := []struct {
		kind Kind
		want int
	}{
		{KindOK, http.StatusOK},
		{KindUnauthorized, http.StatusUnauthorized},
		{KindNotFound, http.StatusNotFound},
		{KindBadRequest, http.StatusBadRequest},
		{KindMethodNotAllowed, http.StatusMethodNotAllowed},
		{KindUpstream, http.StatusBadGateway},
		{KindInternal, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.kind.String(), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.kind.StatusCode())
		})
	}
}

func TestResult_Envelope(t *testing.T) {
	t.Run("success carries data", func(t *testing.T) {
		env := OK(map[string]int{"id": 1}, "ok").Envelope()

		raw, err := json.Marshal(env)
		require.NoError(t, err)
		assert.JSONEq(t, `{"statusCode":200,"message":"ok","data":{"id":1}}`, string(raw))
	})

	t.Run("created uses 201", func(t *testing.T) {
		r := Created("x", "created")
		assert.Equal(t, http.StatusCreated, r.StatusCode())
	})

	t.Run("failure sets error and drops data", func(t *testing.T) {
		r := Fail[string](KindNotFound, "Subject not found")
		r.Value = "leaked"

		raw, err := json.Marshal(r.Envelope())
		require.NoError(t, err)
		assert.JSONEq(t, `{"statusCode":404,"message":"Subject not found","error":true}`, string(raw))
	})

	t.Run("internal uses the fixed message", func(t *testing.T) {
		env := Internal[int]().Envelope()
		assert.Equal(t, http.StatusInternalServerError, env.StatusCode)
		assert.Equal(t, MsgInternal, env.Message)
	})
}

func TestMap(t *testing.T) {
	doubled := Map(OK(21, "ok"), func(v int) int { return v * 2 })
	assert.True(t, doubled.Ok())
	assert.Equal(t, 42, doubled.Value)

	failed := Map(Unauthorized[int](), func(v int) string { return "never" })
	assert.False(t, failed.Ok())
	assert.Equal(t, KindUnauthorized, failed.Kind)
	assert.Equal(t, MsgUnauthorized, failed.Message)
}
