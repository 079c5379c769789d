package tools

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"
)

var platformLimits = map[string]int{
	"twitter":   280,
	"instagram": 2200,
	"linkedin":  3000,
	"tiktok":    2200,
	"facebook":  63206,
}

type CharacterCountArgs struct {
	Text     string `json:"text"`
	Platform string `json:"platform"`
}

type CharacterCount struct {
	IsValid    bool   `json:"isValid"`
	Count      int    `json:"count"`
	Limit      int    `json:"limit"`
	Suggestion string `json:"suggestion,omitempty"`
}

func CheckCharacterCount(_ context.Context, args CharacterCountArgs) any {
	limit, ok := platformLimits[args.Platform]
	if !ok {
		limit = 2200
	}
	count := utf8.RuneCountInString(args.Text)
	res := CharacterCount{IsValid: count <= limit, Count: count, Limit: limit}
	if !res.IsValid {
		res.Suggestion = fmt.Sprintf("Text is %d characters over the limit. Consider shortening.", count-limit)
	}
	return res
}

type OptimizeHashtagsArgs struct {
	Hashtags []string `json:"hashtags"`
	Platform string   `json:"platform"`
}

type OptimizedHashtags struct {
	Optimized       []string `json:"optimized"`
	Recommendations []string `json:"recommendations"`
}

var optimalHashtagCounts = map[string]int{
	"instagram": 10,
	"twitter":   2,
	"linkedin":  5,
	"tiktok":    5,
}

func OptimizeHashtags(_ context.Context, args OptimizeHashtagsArgs) any {
	optimal, ok := optimalHashtagCounts[args.Platform]
	if !ok {
		optimal = 5
	}
	kept := args.Hashtags
	recommendations := []string{}
	if len(kept) > optimal {
		recommendations = append(recommendations,
			fmt.Sprintf("Reduced from %d to %d hashtags for %s", len(kept), optimal, args.Platform))
		kept = kept[:optimal]
	}
	optimized := make([]string, 0, len(kept))
	for _, tag := range kept {
		if !strings.HasPrefix(tag, "#") {
			tag = "#" + tag
		}
		optimized = append(optimized, tag)
	}
	return OptimizedHashtags{Optimized: optimized, Recommendations: recommendations}
}

type ImagePromptArgs struct {
	Description string `json:"description"`
	Style       string `json:"style"`
}

type ImagePrompt struct {
	Prompt         string `json:"prompt"`
	NegativePrompt string `json:"negativePrompt"`
}

var styleModifiers = map[string]string{
	"professional": "clean, corporate, high-quality, professional lighting, modern",
	"casual":       "friendly, warm, natural lighting, lifestyle, authentic",
	"minimalist":   "simple, clean background, modern, sleek, white space",
	"bold":         "vibrant colors, dynamic composition, eye-catching, energetic",
}

func GenerateImagePrompt(_ context.Context, args ImagePromptArgs) any {
	style := args.Style
	if style == "" {
		style = "professional"
	}
	modifier, ok := styleModifiers[style]
	if !ok {
		modifier = styleModifiers["professional"]
	}
	return ImagePrompt{
		Prompt:         args.Description + ", " + modifier + ", 4K quality, social media optimized, high resolution",
		NegativePrompt: "blurry, low quality, text, watermark, distorted, amateur",
	}
}

type PostingTimeArgs struct {
	Platform string `json:"platform"`
	Audience string `json:"audience"`
}

type PostingTime struct {
	Times     []string `json:"times"`
	Timezone  string   `json:"timezone"`
	Reasoning string   `json:"reasoning"`
}

var postingTimes = map[string][]string{
	"instagram": {"11:00 AM", "1:00 PM", "7:00 PM"},
	"twitter":   {"8:00 AM", "12:00 PM", "5:00 PM"},
	"linkedin":  {"7:30 AM", "12:00 PM", "5:30 PM"},
	"tiktok":    {"7:00 AM", "12:00 PM", "9:00 PM"},
}

// DefaultTimezone labels every posting time produced by this system.
const DefaultTimezone = "EST"

func GetOptimalPostingTime(_ context.Context, args PostingTimeArgs) any {
	times, ok := postingTimes[args.Platform]
	if !ok {
		times = postingTimes["instagram"]
	}
	audience := args.Audience
	if audience == "" {
		audience = "general audience"
	}
	return PostingTime{
		Times:     times,
		Timezone:  DefaultTimezone,
		Reasoning: fmt.Sprintf("Based on %s engagement patterns for %s. These times typically see highest engagement and reach.", args.Platform, audience),
	}
}
