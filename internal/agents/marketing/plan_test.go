package marketing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-campaigner/pkg/models"
)

func TestBuildExecutionPlanRoundRobin(t *testing.T) {
	pieces := []models.ContentPiece{{PostText: "a"}, {PostText: "b"}, {PostText: "c"}}

	plan := BuildExecutionPlan(pieces, []string{"twitter", "linkedin"})

	require.Len(t, plan.ScheduledPosts, 3)
	var platforms []string
	var priorities []int
	for i, p := range plan.ScheduledPosts {
		platforms = append(platforms, p.Platform)
		priorities = append(priorities, p.Priority)
		assert.Equal(t, i, p.ContentIndex)
		assert.Equal(t, PlanTimezone, p.Timezone)
		assert.Equal(t, DefaultPostingTime, p.SuggestedDateTime)
	}
	assert.Equal(t, []string{"twitter", "linkedin", "twitter"}, platforms)
	assert.Equal(t, []int{1, 2, 3}, priorities)
}

func TestBuildExecutionPlanKeepsDeclaredFields(t *testing.T) {
	pieces := []models.ContentPiece{{Platform: "tiktok", BestPostingTime: "7:00 PM"}}

	plan := BuildExecutionPlan(pieces, []string{"twitter"})

	assert.Equal(t, "tiktok", plan.ScheduledPosts[0].Platform)
	assert.Equal(t, "7:00 PM", plan.ScheduledPosts[0].SuggestedDateTime)
}

func TestBuildExecutionPlanEmpty(t *testing.T) {
	plan := BuildExecutionPlan(nil, nil)

	assert.NotNil(t, plan.ScheduledPosts)
	assert.Empty(t, plan.ScheduledPosts)
	assert.Equal(t, CampaignDuration, plan.CampaignDuration)
}
