package toolloop

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-campaigner/pkg/models"
	"go-campaigner/pkg/progress"
	"go-campaigner/pkg/skills"
	"go-campaigner/pkg/tools"
)

// script replays responses in order and records what it was asked.
type script struct {
	responses []Response
	err       error
	seen      [][]models.Turn
}

func (s *script) Reason(_ context.Context, _ string, turns []models.Turn, _ []tools.Definition) (Response, error) {
	s.seen = append(s.seen, turns)
	if s.err != nil {
		return Response{}, s.err
	}
	if len(s.seen) > len(s.responses) {
		return s.responses[len(s.responses)-1], nil
	}
	return s.responses[len(s.seen)-1], nil
}

func echoTools() *tools.Registry {
	return tools.NewRegistry(tools.Tool{
		Definition: tools.Definition{Name: "echo", Parameters: tools.Object(map[string]tools.Schema{"text": tools.String("")})},
		Handler: func(_ context.Context, args map[string]any) any {
			return map[string]any{"echo": args["text"]}
		},
	})
}

func call(id, name, args string) models.ToolCall {
	return models.ToolCall{ID: id, Name: name, Arguments: args}
}

func TestRunFinalAnswerWithoutTools(t *testing.T) {
	r := &script{responses: []Response{{Text: `{"ok":true}`}}}
	loop := New("Research Agent", "instructions", echoTools(), r)

	res := loop.Run(context.Background(), "do research", nil)

	require.True(t, res.Success)
	assert.Equal(t, `{"ok":true}`, res.Output)
	assert.Equal(t, `{"ok":true}`, res.Reasoning)
	assert.Empty(t, res.ToolCallsExecuted)
	assert.NotNil(t, res.ToolCallsExecuted)
	require.Len(t, res.Transcript, 1)
	assert.Equal(t, models.RoleUser, res.Transcript[0].Role)
}

func TestRunAppendsTwoTurnsPerToolCall(t *testing.T) {
	r := &script{responses: []Response{
		{ToolCalls: []models.ToolCall{call("1", "echo", `{"text":"a"}`), call("2", "echo", `{"text":"b"}`)}},
		{Text: "done"},
	}}
	reporter := progress.New()
	loop := New("Content Agent", "instructions", echoTools(), r)

	res := loop.Run(context.Background(), "task", reporter)

	require.True(t, res.Success)
	assert.Equal(t, []string{"echo", "echo"}, res.ToolCallsExecuted)
	// user + 2 * (assistant, tool)
	require.Len(t, res.Transcript, 5)
	assert.Equal(t, models.RoleAssistant, res.Transcript[1].Role)
	assert.Equal(t, models.RoleTool, res.Transcript[2].Role)
	assert.Equal(t, "1", res.Transcript[2].ToolCallID)
	assert.JSONEq(t, `{"echo":"a"}`, res.Transcript[2].Content)
	assert.JSONEq(t, `{"echo":"b"}`, res.Transcript[4].Content)

	// second reasoning call saw the tool results
	require.Len(t, r.seen, 2)
	assert.Len(t, r.seen[1], 5)

	var messages []string
	for _, ev := range reporter.Events() {
		messages = append(messages, ev.Message)
	}
	assert.Equal(t, []string{
		"Content Agent: iteration 1/5",
		"Content Agent: executing tool echo",
		"Content Agent: executing tool echo",
		"Content Agent: iteration 2/5",
	}, messages)
}

func TestRunUnknownToolIsReportedInBand(t *testing.T) {
	r := &script{responses: []Response{
		{ToolCalls: []models.ToolCall{call("1", "nope", `{}`)}},
		{Text: "recovered"},
	}}
	res := New("a", "", echoTools(), r).Run(context.Background(), "task", nil)

	require.True(t, res.Success)
	assert.Equal(t, []string{"nope"}, res.ToolCallsExecuted)
	assert.JSONEq(t, `{"error":"unknown tool: nope"}`, res.Transcript[2].Content)
}

func TestRunEmptyArgumentsMeanNoArguments(t *testing.T) {
	r := &script{responses: []Response{
		{ToolCalls: []models.ToolCall{call("1", "echo", "")}},
		{Text: "ok"},
	}}
	res := New("a", "", echoTools(), r).Run(context.Background(), "task", nil)

	require.True(t, res.Success)
	assert.JSONEq(t, `{"echo":null}`, res.Transcript[2].Content)
}

func TestRunMalformedArgumentsAreFatal(t *testing.T) {
	for _, args := range []string{`{not json`, `[1,2]`, `null`} {
		r := &script{responses: []Response{{ToolCalls: []models.ToolCall{call("1", "echo", args)}}}}
		res := New("a", "", echoTools(), r).Run(context.Background(), "task", nil)

		assert.False(t, res.Success, args)
		assert.Nil(t, res.Output, args)
		assert.Contains(t, res.Error, "decode arguments", args)
		assert.Empty(t, res.ToolCallsExecuted, args)
	}
}

func TestRunReasonerErrorIsFatal(t *testing.T) {
	r := &script{err: errors.New("rate limited")}
	res := New("a", "", echoTools(), r).Run(context.Background(), "task", nil)

	assert.False(t, res.Success)
	assert.Contains(t, res.Error, "rate limited")
}

func TestRunBudgetExhausted(t *testing.T) {
	r := &script{responses: []Response{{ToolCalls: []models.ToolCall{call("1", "echo", `{"text":"x"}`)}}}}
	res := New("a", "", echoTools(), r, WithMaxIterations(3)).Run(context.Background(), "task", nil)

	assert.False(t, res.Success)
	assert.Equal(t, ErrBudgetExhausted.Error(), res.Error)
	assert.Len(t, r.seen, 3)
	assert.Equal(t, []string{"echo", "echo", "echo"}, res.ToolCallsExecuted)
}

func TestWithMaxIterationsKeepsDefaultForNonPositive(t *testing.T) {
	assert.Equal(t, DefaultMaxIterations, New("a", "", nil, nil, WithMaxIterations(0)).MaxIterations())
	assert.Equal(t, 2, New("a", "", nil, nil, WithMaxIterations(2)).MaxIterations())
}

func TestDescriptorInstructions(t *testing.T) {
	d := Descriptor{Name: "Research Agent", Description: "a market research specialist", Skills: []string{"research/market-analysis.md"}}

	lib, err := skills.Builtin()
	require.NoError(t, err)

	text, err := d.Instructions(lib)
	require.NoError(t, err)
	assert.Contains(t, text, "You are Research Agent, a market research specialist.")
	assert.Contains(t, text, "### Market Analysis")

	text, err = d.Instructions(nil)
	require.NoError(t, err)
	assert.Contains(t, text, "## Response Guidelines")
}
