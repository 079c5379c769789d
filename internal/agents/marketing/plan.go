package marketing

import "go-campaigner/pkg/models"

const (
	DefaultPostingTime = "11:00 AM"
	PlanTimezone       = "EST"
	CampaignDuration   = "1 week"
)

var recommendations = []string{
	"Post content in the suggested order for maximum impact",
	"Monitor engagement in the first hour and respond to comments",
	"Consider boosting top-performing posts",
	"Track performance metrics after 24-48 hours",
}

// BuildExecutionPlan schedules one post per content piece in order. Pieces
// without a platform take one from platforms round-robin; pieces without a
// posting time get DefaultPostingTime.
func BuildExecutionPlan(pieces []models.ContentPiece, platforms []string) models.ExecutionPlan {
	posts := make([]models.ScheduledPost, 0, len(pieces))
	for i, piece := range pieces {
		platform := piece.Platform
		if platform == "" && len(platforms) > 0 {
			platform = platforms[i%len(platforms)]
		}
		when := piece.BestPostingTime
		if when == "" {
			when = DefaultPostingTime
		}
		posts = append(posts, models.ScheduledPost{
			Platform:          platform,
			ContentIndex:      i,
			SuggestedDateTime: when,
			Timezone:          PlanTimezone,
			Priority:          i + 1,
		})
	}

	recs := make([]string, len(recommendations))
	copy(recs, recommendations)
	return models.ExecutionPlan{
		ScheduledPosts:   posts,
		Recommendations:  recs,
		CampaignDuration: CampaignDuration,
	}
}
