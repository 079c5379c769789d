package prompts

var (
	AgentInstructions = `You are {{.Name}}, {{.Description}}.

## Your Skills and Knowledge

{{.Skills}}

## Response Guidelines
- Be specific and actionable
- Use your tools when external data or actions are needed
- Explain your reasoning briefly
- Format output as JSON when returning structured data`

	ResearchTask = `Conduct comprehensive market research for a social media campaign.

Brand: {{.Brand}}
Product: {{.Product}}
Target Audience: {{.TargetAudience}}
Platforms: {{.Platforms}}

Perform the following research tasks:
1. Analyze current market trends relevant to this product
2. Research competitor social media strategies
3. Gather audience insights and preferences
4. Identify trending hashtags and topics
5. Note platform-specific engagement patterns

Use your tools to gather data. Compile your findings into a structured JSON research report with the following structure:
{
  "marketTrends": [],
  "competitorAnalysis": {},
  "audienceInsights": {},
  "trendingHashtags": [],
  "platformRecommendations": {}
}`

	ContentTask = `Create social media content for a marketing campaign.

Brand: {{.Brand}}
Product: {{.Product}}
Target Audience: {{.TargetAudience}}
Campaign Goal: {{.CampaignGoal}}
Tone: {{.Tone}}
Platforms: {{.Platforms}}

Research Insights:
{{.ResearchInsights}}

For each platform, create content and return as a JSON array:
[
  {
    "platform": "platform_name",
    "postText": "The main post text",
    "caption": "Additional caption if needed",
    "hashtags": ["hashtag1", "hashtag2"],
    "suggestedImageDescription": "Description for visual content",
    "bestPostingTime": "Optimal posting time"
  }
]

Use your tools to:
1. Check character counts for each platform
2. Optimize hashtags for reach
3. Get optimal posting times

Ensure each piece of content is platform-specific and engaging.`

	ComplianceTask = `Review the following content for compliance.

Brand: {{.Brand}}
Platforms: {{.Platforms}}
{{if .Constraints}}Additional Constraints: {{.Constraints}}
{{end}}
Content to Review:
{{.ContentPieces}}

For each content piece, check:
1. Brand voice and guideline compliance
2. Legal requirements (FTC disclosures, copyright, etc.)
3. Platform-specific policy compliance
4. Sensitive content or potential issues

Use your tools to verify compliance. Return a JSON object:
{
  "contentPieces": [
    {
      "platform": "platform_name",
      "postText": "original or revised text",
      "hashtags": ["hashtags"],
      "complianceStatus": "approved|needs_revision|rejected",
      "complianceNotes": ["any issues or notes"]
    }
  ],
  "report": {
    "overallStatus": "approved|needs_revision|rejected",
    "brandGuidelineCompliance": true/false,
    "legalCompliance": true/false,
    "platformPolicyCompliance": true/false,
    "issues": []
  }
}`

	// ToolProtocol is the system message of a chat model without native tool
	// calling. The reply is parsed by internal/reasoning.
	ToolProtocol = `{{.Instructions}}

## Tools

You can call the following tools. Each takes a JSON object matching its "parameters" schema:
{{.Tools}}

Tool results arrive as user messages starting with "TOOL RESULT".

## How to reply

Reply with exactly one JSON object and nothing else, in one of these two forms.

To call one or more tools, in the order they should run:
{"tool_calls": [{"name": "TOOL_NAME", "arguments": {"PARAMETER": "VALUE"}}]}

To give your final answer:
{"answer": YOUR_FINAL_ANSWER}

YOUR_FINAL_ANSWER is either a JSON value or a JSON string. Call tools only when you need their results.
`
)
