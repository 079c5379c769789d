package models

// AgentResult is the outcome of one agent run. On success Output is set and
// Error is empty; on failure Output is nil and Error describes why.
//
// Output is the final text for a single agent and *CampaignResult for the
// marketing pipeline.
type AgentResult struct {
	Success           bool     `json:"success"`
	Output            any      `json:"output"`
	ToolCallsExecuted []string `json:"toolCallsExecuted"`
	Reasoning         string   `json:"reasoning,omitempty"`
	Error             string   `json:"error,omitempty"`

	// Transcript is kept for post-hoc inspection by the caller.
	Transcript []Turn `json:"-"`
}

func Succeeded(output any, executed []string, reasoning string) AgentResult {
	return AgentResult{Success: true, Output: output, ToolCallsExecuted: nonNil(executed), Reasoning: reasoning}
}

func Failure(err error, executed []string) AgentResult {
	return AgentResult{Success: false, Output: nil, ToolCallsExecuted: nonNil(executed), Error: err.Error()}
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
