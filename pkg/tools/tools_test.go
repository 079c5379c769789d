package tools

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func echoRegistry() *Registry {
	return NewRegistry(
		Tool{
			Definition: Definition{Name: "check_character_count", Description: "count", Parameters: Object(map[string]Schema{
				"text":     String(""),
				"platform": String(""),
			}, "text", "platform")},
			Handler: Func(CheckCharacterCount),
		},
		Tool{
			Definition: Definition{Name: "explode"},
			Handler:    func(context.Context, map[string]any) any { panic("kaboom") },
		},
	)
}

func TestRegistryDispatch(t *testing.T) {
	r := echoRegistry()
	got := r.Dispatch(context.Background(), "check_character_count", map[string]any{"text": "hello", "platform": "twitter"})

	res, ok := got.(CharacterCount)
	require.True(t, ok)
	assert.True(t, res.IsValid)
	assert.Equal(t, 5, res.Count)
	assert.Equal(t, 280, res.Limit)
}

func TestRegistryUnknownTool(t *testing.T) {
	got := echoRegistry().Dispatch(context.Background(), "delete_everything", map[string]any{})
	assert.Equal(t, ErrorResult{Error: "unknown tool: delete_everything"}, got)
}

func TestRegistryRecoversPanics(t *testing.T) {
	got := echoRegistry().Dispatch(context.Background(), "explode", nil)
	res, ok := got.(ErrorResult)
	require.True(t, ok)
	assert.Contains(t, res.Error, "kaboom")
}

func TestFuncReportsShapeMismatch(t *testing.T) {
	got := echoRegistry().Dispatch(context.Background(), "check_character_count", map[string]any{"text": 42})
	res, ok := got.(ErrorResult)
	require.True(t, ok)
	assert.Contains(t, res.Error, "invalid arguments")
}

func TestCatalogOrder(t *testing.T) {
	cat := echoRegistry().Catalog()
	require.Len(t, cat, 2)
	assert.Equal(t, "check_character_count", cat[0].Name)
	assert.Equal(t, "object", cat[0].Parameters["type"])
	assert.Equal(t, []string{"text", "platform"}, cat[0].Parameters["required"])
}

func TestOptimizeHashtags(t *testing.T) {
	got := OptimizeHashtags(context.Background(), OptimizeHashtagsArgs{
		Hashtags: []string{"one", "#two", "three"},
		Platform: "twitter",
	}).(OptimizedHashtags)

	assert.Equal(t, []string{"#one", "#two"}, got.Optimized)
	assert.Equal(t, []string{"Reduced from 3 to 2 hashtags for twitter"}, got.Recommendations)
}

func TestCheckCharacterCountOverLimit(t *testing.T) {
	long := make([]byte, 300)
	for i := range long {
		long[i] = 'a'
	}
	got := CheckCharacterCount(context.Background(), CharacterCountArgs{Text: string(long), Platform: "twitter"}).(CharacterCount)
	assert.False(t, got.IsValid)
	assert.Equal(t, "Text is 20 characters over the limit. Consider shortening.", got.Suggestion)
}

func TestCheckLegalCompliance(t *testing.T) {
	got := CheckLegalCompliance(context.Background(), LegalArgs{Content: "Our proven formula, in partnership with Acme"}).(LegalCheck)
	assert.False(t, got.IsCompliant)
	assert.Len(t, got.Issues, 2)

	got = CheckLegalCompliance(context.Background(), LegalArgs{Content: "Paid partnership with Acme #ad"}).(LegalCheck)
	assert.True(t, got.IsCompliant)
}

func TestCheckBrandGuidelines(t *testing.T) {
	got := CheckBrandGuidelines(context.Background(), BrandGuidelinesArgs{Content: "BUY NOW OR REGRET IT!!!"}).(BrandCheck)
	assert.False(t, got.IsCompliant)
	assert.Len(t, got.Issues, 2)

	got = CheckBrandGuidelines(context.Background(), BrandGuidelinesArgs{Content: "🎉🎉🎉🎉🎉🎉 party"}).(BrandCheck)
	assert.Equal(t, []string{"High emoji count may dilute professional brand voice"}, got.Issues)
}

func TestCheckPlatformPolicies(t *testing.T) {
	got := CheckPlatformPolicies(context.Background(), PlatformPolicyArgs{Content: "Retweet to win a prize", Platform: "twitter"}).(PolicyCheck)
	assert.False(t, got.IsCompliant)
	assert.Equal(t, []string{`Contains potentially policy-violating phrase: "retweet to win"`}, got.Issues)
}

func TestScanSensitiveContent(t *testing.T) {
	got := ScanSensitiveContent(context.Background(), SensitiveArgs{Content: "Vote for the medical cure"}).(SensitiveScan)
	assert.True(t, got.HasSensitiveContent)
	assert.Equal(t, []string{"political", "health"}, got.Categories)
	assert.Equal(t, "high", got.RiskLevel)

	got = ScanSensitiveContent(context.Background(), SensitiveArgs{Content: "A sunny day"}).(SensitiveScan)
	assert.Equal(t, "low", got.RiskLevel)
}

func TestGetTrendingHashtags(t *testing.T) {
	got := GetTrendingHashtags(context.Background(), HashtagsArgs{Platform: "unknown", Category: "Home Fitness"}).(TrendingHashtags)
	require.Len(t, got.Hashtags, 8)
	assert.Equal(t, Hashtag{Tag: "#homefitness", Volume: "high"}, got.Hashtags[0])
	assert.Equal(t, "#instagood", got.Hashtags[1].Tag)
	assert.Equal(t, "#homefitnesscommunity", got.Hashtags[7].Tag)
}

func TestAnalyzeCompetitorsIsDeterministic(t *testing.T) {
	args := CompetitorsArgs{Competitors: []string{"Acme", "Globex"}, Platform: "instagram"}
	first := AnalyzeCompetitors(context.Background(), args).(CompetitorAnalysis)
	second := AnalyzeCompetitors(context.Background(), args).(CompetitorAnalysis)
	assert.Equal(t, first, second)
	assert.Len(t, first.Analysis, 2)
}
