package tools

import (
	"context"
	"fmt"
	"hash/fnv"
	"regexp"
	"strings"
)

type MarketTrendsArgs struct {
	Query    string `json:"query"`
	Industry string `json:"industry"`
}

type MarketTrends struct {
	Trends   []string `json:"trends"`
	Insights string   `json:"insights"`
}

func SearchMarketTrends(_ context.Context, args MarketTrendsArgs) any {
	industry := args.Industry
	if industry == "" {
		industry = "general"
	}
	q := args.Query
	return MarketTrends{
		Trends: []string{
			q + " sustainability focus",
			q + " personalization trend",
			q + " digital-first approach",
			q + " community building",
			q + " authentic storytelling",
		},
		Insights: fmt.Sprintf("Current market trends for %s in %s show increased focus on sustainability, "+
			"personalization, and authentic brand storytelling. User-generated content and community "+
			"engagement are driving higher engagement rates.", q, industry),
	}
}

type CompetitorsArgs struct {
	Competitors []string `json:"competitors"`
	Platform    string   `json:"platform"`
}

type CompetitorProfile struct {
	Platform          string   `json:"platform"`
	AverageEngagement string   `json:"averageEngagement"`
	PostFrequency     string   `json:"postFrequency"`
	TopContentTypes   []string `json:"topContentTypes"`
	ToneOfVoice       string   `json:"toneOfVoice"`
	Strengths         []string `json:"strengths"`
	Weaknesses        []string `json:"weaknesses"`
}

type CompetitorAnalysis struct {
	Analysis map[string]CompetitorProfile `json:"analysis"`
}

// AnalyzeCompetitors derives the engagement figure from the competitor name
// so repeated calls agree.
func AnalyzeCompetitors(_ context.Context, args CompetitorsArgs) any {
	analysis := make(map[string]CompetitorProfile, len(args.Competitors))
	for _, c := range args.Competitors {
		h := fnv.New32a()
		_, _ = h.Write([]byte(strings.ToLower(c)))
		engagement := 1 + float64(h.Sum32()%50)/10
		analysis[c] = CompetitorProfile{
			Platform:          args.Platform,
			AverageEngagement: fmt.Sprintf("%.1f%%", engagement),
			PostFrequency:     "2-3 posts/day",
			TopContentTypes:   []string{"video", "carousel", "stories"},
			ToneOfVoice:       "professional yet approachable",
			Strengths:         []string{"consistent posting", "strong visuals", "engaged community"},
			Weaknesses:        []string{"limited video content", "infrequent stories"},
		}
	}
	return CompetitorAnalysis{Analysis: analysis}
}

type HashtagsArgs struct {
	Platform string `json:"platform"`
	Category string `json:"category"`
}

type Hashtag struct {
	Tag    string `json:"tag"`
	Volume string `json:"volume"`
}

type TrendingHashtags struct {
	Hashtags []Hashtag `json:"hashtags"`
}

var platformHashtags = map[string][]string{
	"instagram": {"instagood", "photooftheday", "trending", "explore", "viral"},
	"twitter":   {"trending", "viral", "mustread", "breaking", "news"},
	"linkedin":  {"leadership", "innovation", "business", "entrepreneurship", "growth"},
	"tiktok":    {"fyp", "viral", "trending", "foryou", "trend"},
}

var whitespace = regexp.MustCompile(`\s+`)

func GetTrendingHashtags(_ context.Context, args HashtagsArgs) any {
	base, ok := platformHashtags[args.Platform]
	if !ok {
		base = platformHashtags["instagram"]
	}
	category := strings.ToLower(whitespace.ReplaceAllString(args.Category, ""))

	tags := []Hashtag{{Tag: "#" + category, Volume: "high"}}
	for _, t := range base {
		tags = append(tags, Hashtag{Tag: "#" + t, Volume: "medium"})
	}
	tags = append(tags,
		Hashtag{Tag: "#" + category + "tips", Volume: "medium"},
		Hashtag{Tag: "#" + category + "community", Volume: "growing"},
	)
	return TrendingHashtags{Hashtags: tags}
}

type DemographicsArgs struct {
	TargetAudience string `json:"targetAudience"`
}

type Demographics struct {
	Description            string   `json:"description"`
	AgeRange               string   `json:"ageRange"`
	Gender                 string   `json:"gender"`
	PrimaryInterests       []string `json:"primaryInterests"`
	PreferredContentFormat []string `json:"preferredContentFormat"`
	PeakActivityTimes      []string `json:"peakActivityTimes"`
	Platforms              []string `json:"platforms"`
	PurchaseBehavior       string   `json:"purchaseBehavior"`
	PainPoints             []string `json:"painPoints"`
}

func AnalyzeAudienceDemographics(_ context.Context, args DemographicsArgs) any {
	return map[string]Demographics{"demographics": {
		Description:            args.TargetAudience,
		AgeRange:               "25-45",
		Gender:                 "Mixed (55% female, 45% male)",
		PrimaryInterests:       []string{"technology", "innovation", "productivity", "self-improvement"},
		PreferredContentFormat: []string{"short video", "infographics", "how-to guides", "listicles"},
		PeakActivityTimes:      []string{"7-9am", "12-1pm", "7-10pm"},
		Platforms:              []string{"instagram", "linkedin", "youtube", "tiktok"},
		PurchaseBehavior:       "Research-driven, value quality over price",
		PainPoints:             []string{"time management", "information overload", "staying current"},
	}}
}

type PlatformArgs struct {
	Platform string `json:"platform"`
}

type PlatformInsights struct {
	BestPostingTimes    []string `json:"bestPostingTimes"`
	OptimalPostLength   string   `json:"optimalPostLength,omitempty"`
	CharacterLimit      int      `json:"characterLimit,omitempty"`
	VideoLength         string   `json:"videoLength,omitempty"`
	HashtagLimit        int      `json:"hashtagLimit"`
	RecommendedHashtags string   `json:"recommendedHashtags,omitempty"`
	TopContentTypes     []string `json:"topContentTypes"`
	EngagementTips      []string `json:"engagementTips"`
}

var platformInsights = map[string]PlatformInsights{
	"instagram": {
		BestPostingTimes:    []string{"11am-1pm", "7pm-9pm"},
		OptimalPostLength:   "125-150 characters",
		HashtagLimit:        30,
		RecommendedHashtags: "5-10",
		TopContentTypes:     []string{"Reels (highest reach)", "Carousels (highest saves)", "Stories (engagement)"},
		EngagementTips:      []string{"Use calls-to-action", "Engage in comments within first hour", "Use location tags", "Post Reels for maximum reach"},
	},
	"twitter": {
		BestPostingTimes: []string{"8am-10am", "12pm-1pm", "5pm-6pm"},
		CharacterLimit:   280,
		HashtagLimit:     2,
		TopContentTypes:  []string{"Threads", "Polls", "Images with text"},
		EngagementTips:   []string{"Join trending conversations", "Use quotes strategically", "Engage early and often", "Thread longer content"},
	},
	"linkedin": {
		BestPostingTimes:  []string{"7am-8am", "12pm", "5pm-6pm"},
		OptimalPostLength: "1300-2000 characters",
		HashtagLimit:      5,
		TopContentTypes:   []string{"Documents/carousels", "Polls", "Personal stories", "Industry insights"},
		EngagementTips:    []string{"Share professional insights", "Ask thoughtful questions", "Tag relevant connections", "Post during business hours"},
	},
	"tiktok": {
		BestPostingTimes: []string{"7am-9am", "12pm-3pm", "7pm-11pm"},
		VideoLength:      "21-34 seconds optimal",
		HashtagLimit:     5,
		TopContentTypes:  []string{"Trending sounds", "Duets", "Tutorials", "Behind-the-scenes"},
		EngagementTips:   []string{"Hook in first 3 seconds", "Use trending audio", "Post 1-3 times daily", "Engage with comments quickly"},
	},
}

func GetPlatformInsights(_ context.Context, args PlatformArgs) any {
	insights, ok := platformInsights[args.Platform]
	if !ok {
		insights = platformInsights["instagram"]
	}
	return map[string]PlatformInsights{"insights": insights}
}
