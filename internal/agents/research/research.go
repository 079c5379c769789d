// Package research is the market research agent: it gathers trends,
// competitor and audience data through its tools and returns a JSON report.
package research

import (
	"context"
	"fmt"
	"strings"

	"go-campaigner/internal/agents/toolloop"
	"go-campaigner/pkg/models"
	"go-campaigner/pkg/progress"
	"go-campaigner/pkg/prompts"
	"go-campaigner/pkg/skills"
	"go-campaigner/pkg/template"
	"go-campaigner/pkg/tools"
)

var Descriptor = toolloop.Descriptor{
	Name:        "Market Research Specialist",
	Description: "An expert market researcher who analyzes trends, competitors, and audience insights to inform content strategy",
	Skills:      []string{"research/market-analysis.md"},
}

type Request struct {
	Brand          string
	Product        string
	TargetAudience string
	Platforms      []string
}

// Tools is the research agent's catalog.
func Tools() *tools.Registry {
	return tools.NewRegistry(
		tools.Tool{
			Definition: tools.Definition{
				Name:        "search_market_trends",
				Description: "Search for current market trends in a specific industry",
				Parameters: tools.Object(map[string]tools.Schema{
					"query":    tools.String("Search query for trends"),
					"industry": tools.String("Industry category"),
				}, "query"),
			},
			Handler: tools.Func(tools.SearchMarketTrends),
		},
		tools.Tool{
			Definition: tools.Definition{
				Name:        "analyze_competitors",
				Description: "Analyze competitor social media strategies",
				Parameters: tools.Object(map[string]tools.Schema{
					"competitors": tools.StringArray("List of competitor names"),
					"platform":    tools.String("Platform to analyze"),
				}, "competitors", "platform"),
			},
			Handler: tools.Func(tools.AnalyzeCompetitors),
		},
		tools.Tool{
			Definition: tools.Definition{
				Name:        "get_trending_hashtags",
				Description: "Get trending hashtags for a platform and category",
				Parameters: tools.Object(map[string]tools.Schema{
					"platform": tools.String(""),
					"category": tools.String(""),
				}, "platform", "category"),
			},
			Handler: tools.Func(tools.GetTrendingHashtags),
		},
		tools.Tool{
			Definition: tools.Definition{
				Name:        "analyze_audience_demographics",
				Description: "Get demographic insights for a target audience",
				Parameters: tools.Object(map[string]tools.Schema{
					"targetAudience": tools.String("Description of target audience"),
				}, "targetAudience"),
			},
			Handler: tools.Func(tools.AnalyzeAudienceDemographics),
		},
		tools.Tool{
			Definition: tools.Definition{
				Name:        "get_platform_insights",
				Description: "Get platform-specific engagement insights",
				Parameters: tools.Object(map[string]tools.Schema{
					"platform": tools.String(""),
				}, "platform"),
			},
			Handler: tools.Func(tools.GetPlatformInsights),
		},
	)
}

type Agent struct {
	loop *toolloop.Loop
}

func New(reasoner toolloop.Reasoner, lib *skills.Library, opts ...toolloop.Option) (*Agent, error) {
	instructions, err := Descriptor.Instructions(lib)
	if err != nil {
		return nil, err
	}
	return &Agent{loop: toolloop.New(Descriptor.Name, instructions, Tools(), reasoner, opts...)}, nil
}

func (a *Agent) Name() string { return a.loop.Name() }

func (a *Agent) Run(ctx context.Context, req Request, reporter *progress.Reporter) models.AgentResult {
	task, err := template.Parse(prompts.ResearchTask, struct {
		Brand, Product, TargetAudience, Platforms string
	}{req.Brand, req.Product, req.TargetAudience, strings.Join(req.Platforms, ", ")})
	if err != nil {
		return models.Failure(fmt.Errorf("research task: %w", err), nil)
	}
	return a.loop.Run(ctx, task, reporter)
}
