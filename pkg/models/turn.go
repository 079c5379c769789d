package models

type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
	RoleTool      Role = "tool"
)

// ToolCall is a tool invocation requested by the reasoning service. Arguments
// is the serialized argument object exactly as the service produced it.
type ToolCall struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Arguments string `json:"arguments"`
}

// Turn is one entry of a conversation transcript.
//
// User and system turns carry Content. Assistant turns carry optional Content
// and zero or more ToolCalls. Tool turns carry the ToolCallID they answer, the
// ToolName for readability, and the serialized result in Content.
type Turn struct {
	Role       Role       `json:"role"`
	Content    string     `json:"content,omitempty"`
	ToolCalls  []ToolCall `json:"toolCalls,omitempty"`
	ToolCallID string     `json:"toolCallId,omitempty"`
	ToolName   string     `json:"toolName,omitempty"`
}

func SystemTurn(content string) Turn {
	return Turn{Role: RoleSystem, Content: content}
}

func UserTurn(content string) Turn {
	return Turn{Role: RoleUser, Content: content}
}

// AssistantTurn records a single pending tool invocation.
func AssistantTurn(call ToolCall) Turn {
	return Turn{Role: RoleAssistant, ToolCalls: []ToolCall{call}}
}

func AssistantTextTurn(content string) Turn {
	return Turn{Role: RoleAssistant, Content: content}
}

func ToolTurn(call ToolCall, result string) Turn {
	return Turn{Role: RoleTool, ToolCallID: call.ID, ToolName: call.Name, Content: result}
}
