package models

import (
	"time"

	"go-campaigner/pkg/progress"
)

// CampaignStatus is the live view of a campaign run served to pollers.
type CampaignStatus struct {
	CampaignID string           `json:"campaignId"`
	Status     progress.Status  `json:"status"`
	Progress   int              `json:"progress"`
	Message    string           `json:"message"`
	Result     *CampaignResult  `json:"result,omitempty"`
	Error      string           `json:"error,omitempty"`
	ToolCalls  []string         `json:"toolCallsExecuted,omitempty"`
	Events     []progress.Event `json:"events,omitempty"`
	CreatedAt  time.Time        `json:"createdAt"`
	UpdatedAt  time.Time        `json:"updatedAt"`
}

// Done reports whether the run reached a terminal status.
func (s CampaignStatus) Done() bool {
	return s.Status == progress.Completed || s.Status == progress.Error
}
