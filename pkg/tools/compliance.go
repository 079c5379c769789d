package tools

import (
	"context"
	"fmt"
	"regexp"
	"strings"
)

type BrandGuidelinesArgs struct {
	Content string `json:"content"`
	Brand   string `json:"brand"`
}

type BrandCheck struct {
	IsCompliant bool     `json:"isCompliant"`
	Issues      []string `json:"issues"`
	Suggestions []string `json:"suggestions"`
}

var emoji = regexp.MustCompile(`[\x{1F300}-\x{1F9FF}]`)

func CheckBrandGuidelines(_ context.Context, args BrandGuidelinesArgs) any {
	issues, suggestions := []string{}, []string{}
	c := args.Content

	if strings.Contains(c, "!!!") || strings.Contains(c, "????") {
		issues = append(issues, "Excessive punctuation may not align with professional brand voice")
		suggestions = append(suggestions, "Reduce excessive punctuation marks")
	}
	if strings.ToUpper(c) == c && len(c) > 10 {
		issues = append(issues, "ALL CAPS text may appear aggressive")
		suggestions = append(suggestions, "Use title case or sentence case instead")
	}
	if len(emoji.FindAllString(c, -1)) > 5 {
		issues = append(issues, "High emoji count may dilute professional brand voice")
		suggestions = append(suggestions, "Limit emojis to 2-3 per post for professional brands")
	}
	return BrandCheck{IsCompliant: len(issues) == 0, Issues: issues, Suggestions: suggestions}
}

type LegalArgs struct {
	Content string `json:"content"`
	Region  string `json:"region"`
}

type LegalCheck struct {
	IsCompliant         bool     `json:"isCompliant"`
	Issues              []string `json:"issues"`
	RequiredDisclosures []string `json:"requiredDisclosures"`
}

var (
	sponsoredIndicators = []string{"partner", "sponsor", "collab", "gifted", "paid"}
	disclosures         = []string{"#ad", "#sponsored", "paid partnership"}
	claimWords          = []string{"proven", "guaranteed", "best", "number one", "#1", "fastest", "only"}
)

func CheckLegalCompliance(_ context.Context, args LegalArgs) any {
	issues, required := []string{}, []string{}
	lower := strings.ToLower(args.Content)

	if containsAny(lower, sponsoredIndicators) && !containsAny(lower, disclosures) {
		issues = append(issues, "Content appears to be sponsored but lacks proper disclosure")
		required = append(required, "#ad or #sponsored disclosure required")
	}
	if containsAny(lower, claimWords) {
		issues = append(issues, "Content contains claims that may require substantiation")
		required = append(required, "Ensure all claims can be verified with evidence")
	}
	return LegalCheck{IsCompliant: len(issues) == 0, Issues: issues, RequiredDisclosures: required}
}

type PlatformPolicyArgs struct {
	Content  string `json:"content"`
	Platform string `json:"platform"`
}

type PolicyCheck struct {
	IsCompliant      bool     `json:"isCompliant"`
	Issues           []string `json:"issues"`
	PlatformSpecific []string `json:"platformSpecific"`
}

type platformPolicy struct {
	forbidden []string
	notes     []string
}

var policies = map[string]platformPolicy{
	"instagram": {
		forbidden: []string{"click link in bio", "follow for follow", "f4f", "like for like"},
		notes:     []string{"Avoid engagement bait", "Ensure proper music licensing for Reels"},
	},
	"linkedin": {
		forbidden: []string{"dm me", "send me a message for more"},
		notes:     []string{"Keep content professional", "Avoid excessive self-promotion"},
	},
	"tiktok": {
		forbidden: []string{"follow for follow", "like for like", "duet chain"},
		notes:     []string{"Ensure music is commercially licensed", "Disclose brand partnerships clearly"},
	},
	"twitter": {
		forbidden: []string{"follow back", "f4f", "retweet to win"},
		notes:     []string{"Avoid excessive @mentions", "Disclose automated posting"},
	},
}

func CheckPlatformPolicies(_ context.Context, args PlatformPolicyArgs) any {
	policy, ok := policies[args.Platform]
	if !ok {
		policy = policies["instagram"]
	}
	lower := strings.ToLower(args.Content)
	issues := []string{}
	for _, phrase := range policy.forbidden {
		if strings.Contains(lower, phrase) {
			issues = append(issues, fmt.Sprintf("Contains potentially policy-violating phrase: %q", phrase))
		}
	}
	return PolicyCheck{IsCompliant: len(issues) == 0, Issues: issues, PlatformSpecific: policy.notes}
}

type SensitiveArgs struct {
	Content string `json:"content"`
}

type SensitiveScan struct {
	HasSensitiveContent bool     `json:"hasSensitiveContent"`
	Categories          []string `json:"categories"`
	RiskLevel           string   `json:"riskLevel"`
}

var sensitiveTopics = []struct {
	category string
	keywords []string
}{
	{"political", []string{"election", "vote", "political", "democrat", "republican", "liberal", "conservative"}},
	{"health", []string{"cure", "treatment", "medical", "diagnosis", "symptom", "disease"}},
	{"financial", []string{"investment", "guarantee returns", "get rich", "crypto investment", "financial advice"}},
	{"controversial", []string{"controversial", "debate", "divided", "polarizing"}},
}

func ScanSensitiveContent(_ context.Context, args SensitiveArgs) any {
	lower := strings.ToLower(args.Content)
	categories := []string{}
	for _, topic := range sensitiveTopics {
		if containsAny(lower, topic.keywords) {
			categories = append(categories, topic.category)
		}
	}
	risk := "high"
	switch len(categories) {
	case 0:
		risk = "low"
	case 1:
		risk = "medium"
	}
	return SensitiveScan{HasSensitiveContent: len(categories) > 0, Categories: categories, RiskLevel: risk}
}

func containsAny(s string, needles []string) bool {
	for _, n := range needles {
		if strings.Contains(s, n) {
			return true
		}
	}
	return false
}
