// Package reasoning adapts a langchaingo OpenAI chat client to the agent
// loop's reasoning service. Tool calls travel through a JSON reply protocol.
package reasoning

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/tmc/langchaingo/llms/openai"
	langChainPrompt "github.com/tmc/langchaingo/prompts"

	"go-campaigner/internal/agents/toolloop"
	"go-campaigner/pkg/data"
	"go-campaigner/pkg/models"
	"go-campaigner/pkg/prompts"
	"go-campaigner/pkg/tools"
)

var ToolProtocolPrompt = langChainPrompt.NewPromptTemplate(prompts.ToolProtocol, []string{"Instructions", "Tools"})

const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

var ErrEmptyReply = errors.New("chat model returned no choices")

type Config struct {
	APIKey string
	Model  string
}

// Message is one chat message sent to the model.
type Message struct {
	Role    string
	Content string
}

// ChatModel answers a chat conversation with the text of the first choice.
type ChatModel interface {
	Chat(ctx context.Context, messages []Message) (string, error)
}

type Handler struct {
	model ChatModel
}

func New(model ChatModel) *Handler {
	return &Handler{model: model}
}

// NewOpenAI builds a handler on the OpenAI chat completions client. Empty
// config values leave the client's environment defaults in place.
func NewOpenAI(cfg Config) (*Handler, error) {
	var opts []openai.Option
	if cfg.APIKey != "" {
		opts = append(opts, openai.WithToken(cfg.APIKey))
	}
	if cfg.Model != "" {
		opts = append(opts, openai.WithModel(cfg.Model))
	}
	llm, err := openai.New(opts...)
	if err != nil {
		return nil, fmt.Errorf("openai: %w", err)
	}
	return New(openAIChat{llm: llm}), nil
}

type openAIChat struct {
	llm *openai.LLM
}

func (c openAIChat) Chat(ctx context.Context, messages []Message) (string, error) {
	msgs := make([]openai.ChatMessage, 0, len(messages))
	for _, m := range messages {
		msgs = append(msgs, openai.ChatMessage{Role: m.Role, Content: m.Content})
	}
	resp, err := c.llm.Chat(ctx, msgs)
	if err != nil {
		return "", err
	}
	if resp == nil {
		return "", ErrEmptyReply
	}
	return resp.Content, nil
}

func (h *Handler) Reason(ctx context.Context, instructions string, turns []models.Turn, catalog []tools.Definition) (toolloop.Response, error) {
	msgs, err := Messages(instructions, turns, catalog)
	if err != nil {
		return toolloop.Response{}, err
	}
	text, err := h.model.Chat(ctx, msgs)
	if err != nil {
		return toolloop.Response{}, fmt.Errorf("chat: %w", err)
	}
	resp := parseCompletion(text)
	log.Debug().Int("messages", len(msgs)).Int("tool_calls", len(resp.ToolCalls)).Msg("completion parsed")
	return resp, nil
}

// Messages renders the system message followed by one message per turn.
// Tool results are sent as user messages since the model has no tool role.
func Messages(instructions string, turns []models.Turn, catalog []tools.Definition) ([]Message, error) {
	toolText, err := renderCatalog(catalog)
	if err != nil {
		return nil, err
	}
	system, err := ToolProtocolPrompt.Format(map[string]any{
		"Instructions": instructions,
		"Tools":        toolText,
	})
	if err != nil {
		return nil, fmt.Errorf("format system message: %w", err)
	}

	msgs := make([]Message, 0, len(turns)+1)
	msgs = append(msgs, Message{Role: RoleSystem, Content: system})
	for _, t := range turns {
		switch t.Role {
		case models.RoleAssistant:
			content, err := assistantContent(t)
			if err != nil {
				return nil, err
			}
			msgs = append(msgs, Message{Role: RoleAssistant, Content: content})
		case models.RoleTool:
			msgs = append(msgs, Message{
				Role:    RoleUser,
				Content: fmt.Sprintf("TOOL RESULT %s (id %s):\n%s", t.ToolName, t.ToolCallID, t.Content),
			})
		default:
			msgs = append(msgs, Message{Role: RoleUser, Content: t.Content})
		}
	}
	return msgs, nil
}

type wireCall struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Arguments json.RawMessage `json:"arguments"`
}

// assistantContent replays tool calls in the reply protocol so the model
// sees its own earlier replies.
func assistantContent(t models.Turn) (string, error) {
	if len(t.ToolCalls) == 0 {
		return t.Content, nil
	}
	calls := make([]wireCall, 0, len(t.ToolCalls))
	for _, c := range t.ToolCalls {
		args := json.RawMessage(c.Arguments)
		switch {
		case c.Arguments == "":
			args = json.RawMessage("{}")
		case !json.Valid(args):
			quoted, err := json.Marshal(c.Arguments)
			if err != nil {
				return "", fmt.Errorf("marshal arguments: %w", err)
			}
			args = quoted
		}
		calls = append(calls, wireCall{ID: c.ID, Name: c.Name, Arguments: args})
	}
	b, err := json.Marshal(map[string][]wireCall{"tool_calls": calls})
	if err != nil {
		return "", fmt.Errorf("marshal tool calls: %w", err)
	}
	return string(b), nil
}

func renderCatalog(catalog []tools.Definition) (string, error) {
	if len(catalog) == 0 {
		return "(no tools)", nil
	}
	b, err := json.MarshalIndent(catalog, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal catalog: %w", err)
	}
	return string(b), nil
}

type envelope struct {
	ToolCalls []wireCall       `json:"tool_calls"`
	Answer    json.RawMessage `json:"answer"`
}

// parseCompletion reads a reply in the tool protocol. Replies that do not
// follow it are taken as the final answer verbatim.
func parseCompletion(text string) toolloop.Response {
	raw := data.Unfence(text)
	match, err := data.SanitizeAnswer(raw)
	if err != nil {
		return toolloop.Response{Text: raw}
	}
	var env envelope
	if err := json.Unmarshal([]byte(match), &env); err != nil {
		return toolloop.Response{Text: raw}
	}

	if len(env.ToolCalls) > 0 {
		calls := make([]models.ToolCall, 0, len(env.ToolCalls))
		for _, c := range env.ToolCalls {
			id := c.ID
			if id == "" {
				id = "call_" + uuid.NewString()
			}
			calls = append(calls, models.ToolCall{ID: id, Name: c.Name, Arguments: arguments(c.Arguments)})
		}
		return toolloop.Response{ToolCalls: calls}
	}

	if len(env.Answer) > 0 {
		var s string
		if err := json.Unmarshal(env.Answer, &s); err == nil {
			return toolloop.Response{Text: s}
		}
		return toolloop.Response{Text: compact(env.Answer)}
	}
	return toolloop.Response{Text: raw}
}

// arguments keeps the payload as produced; a JSON string holding the
// arguments is unwrapped once.
func arguments(raw json.RawMessage) string {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return ""
	}
	if trimmed[0] == '"' {
		var s string
		if err := json.Unmarshal(trimmed, &s); err == nil {
			return s
		}
	}
	return string(trimmed)
}

func compact(raw json.RawMessage) string {
	var buf bytes.Buffer
	if err := json.Compact(&buf, raw); err != nil {
		return string(raw)
	}
	return buf.String()
}
