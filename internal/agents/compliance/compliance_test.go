package compliance

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-campaigner/internal/agents/toolloop"
	"go-campaigner/pkg/models"
	"go-campaigner/pkg/tools"
)

func captureTask(t *testing.T, req Request) string {
	t.Helper()
	var task string
	reasoner := toolloop.ReasonerFunc(func(_ context.Context, _ string, turns []models.Turn, _ []tools.Definition) (toolloop.Response, error) {
		task = turns[0].Content
		return toolloop.Response{Text: `{}`}, nil
	})
	agent, err := New(reasoner, nil)
	require.NoError(t, err)
	require.True(t, agent.Run(context.Background(), req, nil).Success)
	return task
}

func TestRunIncludesConstraints(t *testing.T) {
	task := captureTask(t, Request{
		Brand:         "Acme",
		ContentPieces: []models.ContentPiece{{Platform: "twitter", PostText: "Go fast"}},
		Platforms:     []string{"twitter"},
		Constraints:   []string{"no emojis", "mention warranty"},
	})

	assert.Contains(t, task, "Additional Constraints: no emojis, mention warranty")
	assert.Contains(t, task, `"postText": "Go fast"`)
}

func TestRunOmitsEmptyConstraints(t *testing.T) {
	task := captureTask(t, Request{Brand: "Acme", Platforms: []string{"twitter"}})

	assert.NotContains(t, task, "Additional Constraints")
	assert.Contains(t, task, "Content to Review:\n[]")
}

func TestToolsCatalog(t *testing.T) {
	assert.Len(t, Tools().Catalog(), 4)
	assert.True(t, Tools().Has("scan_sensitive_content"))
}
