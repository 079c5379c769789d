package research

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-campaigner/internal/agents/toolloop"
	"go-campaigner/pkg/models"
	"go-campaigner/pkg/skills"
	"go-campaigner/pkg/tools"
)

func TestToolsCatalog(t *testing.T) {
	var names []string
	for _, d := range Tools().Catalog() {
		names = append(names, d.Name)
	}
	assert.Equal(t, []string{
		"search_market_trends",
		"analyze_competitors",
		"get_trending_hashtags",
		"analyze_audience_demographics",
		"get_platform_insights",
	}, names)
}

func TestRun(t *testing.T) {
	var (
		instructions string
		task         string
		calls        int
	)
	reasoner := toolloop.ReasonerFunc(func(_ context.Context, ins string, turns []models.Turn, catalog []tools.Definition) (toolloop.Response, error) {
		calls++
		instructions = ins
		task = turns[0].Content
		assert.Len(t, catalog, 5)
		if calls == 1 {
			return toolloop.Response{ToolCalls: []models.ToolCall{
				{ID: "c1", Name: "get_platform_insights", Arguments: `{"platform":"tiktok"}`},
			}}, nil
		}
		assert.Contains(t, turns[len(turns)-1].Content, "bestPostingTimes")
		return toolloop.Response{Text: `{"marketTrends":["short video"]}`}, nil
	})

	lib, err := skills.Builtin()
	require.NoError(t, err)
	agent, err := New(reasoner, lib)
	require.NoError(t, err)

	res := agent.Run(context.Background(), Request{
		Brand:          "Acme",
		Product:        "Rocket Skates",
		TargetAudience: "Gen Z",
		Platforms:      []string{"tiktok", "instagram"},
	}, nil)

	require.True(t, res.Success)
	assert.Equal(t, []string{"get_platform_insights"}, res.ToolCallsExecuted)
	assert.Contains(t, instructions, "You are Market Research Specialist")
	assert.Contains(t, task, "Brand: Acme")
	assert.Contains(t, task, "Platforms: tiktok, instagram")
	assert.Equal(t, "Market Research Specialist", agent.Name())
}
