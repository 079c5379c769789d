package buffer

import (
	"errors"
	"fmt"

	"go-campaigner/pkg/models"
)

var ErrUnpairedToolTurn = errors.New("tool turn does not answer a pending tool call")

// Conversation is the append-only transcript of one agent run.
type Conversation struct {
	turns []models.Turn
}

func New() *Conversation {
	return &Conversation{turns: make([]models.Turn, 0)}
}

// Add appends t. A tool turn must answer one of the tool calls of the
// immediately preceding assistant turn.
func (c *Conversation) Add(t models.Turn) error {
	if t.Role == models.RoleTool {
		if !c.answersPending(t.ToolCallID) {
			return fmt.Errorf("%w: %q", ErrUnpairedToolTurn, t.ToolCallID)
		}
	}
	c.turns = append(c.turns, t)
	return nil
}

func (c *Conversation) answersPending(id string) bool {
	if len(c.turns) == 0 {
		return false
	}
	prev := c.turns[len(c.turns)-1]
	if prev.Role != models.RoleAssistant {
		return false
	}
	for _, call := range prev.ToolCalls {
		if call.ID == id {
			return true
		}
	}
	return false
}

// Turns returns a copy of the transcript.
func (c *Conversation) Turns() []models.Turn {
	out := make([]models.Turn, len(c.turns))
	copy(out, c.turns)
	return out
}

func (c *Conversation) Len() int {
	return len(c.turns)
}
