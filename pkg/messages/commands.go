package messages

import (
	"github.com/google/uuid"

	"go-campaigner/pkg/models"
	"go-campaigner/pkg/progress"
)

// NewCampaign starts a pipeline run on a campaign actor.
type NewCampaign struct {
	CampaignID uuid.UUID
	Request    models.CampaignRequest
}

// ProgressReported carries one progress event from the running pipeline back
// to its campaign actor.
type ProgressReported struct {
	Event progress.Event
}

type CampaignFinished struct {
	Result models.AgentResult
}

type GetStatus struct{}
