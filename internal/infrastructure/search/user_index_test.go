package search

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/acquisitions/internal/domain/entity"
)

func TestBuildQuery_ClampsSize(t *testing.T) {
	assert.Equal(t, 10, BuildQuery("ann", 0)["size"])
	assert.Equal(t, 10, BuildQuery("ann", 500)["size"])
	assert.Equal(t, 25, BuildQuery("ann", 25)["size"])

	mm := BuildQuery("ann", 5)["query"].(map[string]any)["multi_match"].(map[string]any)
	assert.Equal(t, "ann", mm["query"])
	assert.Equal(t, []string{"email^2", "name"}, mm["fields"])
}

func TestToDoc_HasNoPasswordField(t *testing.T) {
	u := entity.SafeUser{ID: "1", Name: "Ann", Email: "ann@example.com", Role: entity.RoleUser, CreatedAt: time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)}

	b, err := json.Marshal(toDoc(u))
	require.NoError(t, err)
	assert.NotContains(t, strings.ToLower(string(b)), "password")
	assert.Contains(t, string(b), `"created_at":"2025-05-01T00:00:00Z"`)
}

func TestDecodeHits(t *testing.T) {
	body := `{"hits":{"hits":[
		{"_id":"1","_source":{"id":"1","name":"Ann","email":"ann@example.com","role":"user","created_at":"2025-05-01T00:00:00Z"}},
		{"_id":"2","_source":{"id":"2","name":"Bob","email":"bob@example.com","role":"admin","created_at":"bad"}}
	]}}`

	users, err := decodeHits(strings.NewReader(body))
	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.Equal(t, "ann@example.com", users[0].Email)
	assert.Equal(t, entity.RoleAdmin, users[1].Role)
	assert.True(t, users[1].CreatedAt.IsZero())

	_, err = decodeHits(strings.NewReader("{"))
	assert.Error(t, err)
}
