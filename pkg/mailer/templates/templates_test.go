package templates

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRender_Welcome(t *testing.T) {
	data := ToMap(NewWelcomeData("Acquisitions", "Ann", "ann@example.com", "user", WithCompany("Acme", "https://help.example.com")))

	subject, text, html, err := Render(Welcome, data)
	require.NoError(t, err)

	assert.Equal(t, "Welcome to Acquisitions, Ann", subject)
	assert.Contains(t, text, "ann@example.com")
	assert.Contains(t, text, "https://help.example.com")
	assert.Contains(t, html, "<strong>ann@example.com</strong>")
	assert.Contains(t, html, "Acme")
}

func TestRender_EscapesHTML(t *testing.T) {
	data := ToMap(NewWelcomeData("", "<script>x</script>", "ann@example.com", "user"))

	subject, _, html, err := Render(Welcome, data)
	require.NoError(t, err)

	assert.Equal(t, "Welcome to Acquisitions, <script>x</script>", subject)
	assert.NotContains(t, html, "<script>")
}

func TestRender_UnknownTemplate(t *testing.T) {
	_, _, _, err := Render("missing", nil)
	assert.Error(t, err)
}
