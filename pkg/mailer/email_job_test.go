package mailer

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	tpl "github.com/oksasatya/acquisitions/pkg/mailer/templates"
)

func TestWelcomeJob_SurvivesQueueAndRenders(t *testing.T) {
	job := NewWelcomeJob("ann@example.com", tpl.NewWelcomeData("Acquisitions", "Ann", "ann@example.com", "user"))

	b, err := json.Marshal(job)
	require.NoError(t, err)
	var got EmailJob
	require.NoError(t, json.Unmarshal(b, &got))

	subject, text, html, err := got.Render()
	require.NoError(t, err)
	assert.Equal(t, "Welcome to Acquisitions, Ann", subject)
	assert.Contains(t, text, "ann@example.com")
	assert.NotEmpty(t, html)
}

func TestRawJob_RenderPassesThrough(t *testing.T) {
	job := EmailJob{To: "x@example.com", Subject: "Hi", Text: "plain"}

	subject, text, html, err := job.Render()
	require.NoError(t, err)
	assert.Equal(t, "Hi", subject)
	assert.Equal(t, "plain", text)
	assert.Empty(t, html)
}
