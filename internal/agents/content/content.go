// Package content is the content creation agent. It writes one post per
// platform from the research insights and returns them as a JSON array.
package content

import (
	"context"
	"encoding/json"
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
	Name:        "Content Creator",
	Description: "A creative content specialist who crafts engaging social media posts, captions, and hashtag strategies tailored to each platform",
	Skills:      []string{"content/social-media.md"},
}

type Request struct {
	Brand            string
	Product          string
	TargetAudience   string
	Platforms        []string
	Tone             string
	CampaignGoal     string
	ResearchInsights map[string]any
}

func Tools() *tools.Registry {
	return tools.NewRegistry(
		tools.Tool{
			Definition: tools.Definition{
				Name:        "check_character_count",
				Description: "Check if text meets platform character limits",
				Parameters: tools.Object(map[string]tools.Schema{
					"text":     tools.String(""),
					"platform": tools.String(""),
				}, "text", "platform"),
			},
			Handler: tools.Func(tools.CheckCharacterCount),
		},
		tools.Tool{
			Definition: tools.Definition{
				Name:        "optimize_hashtags",
				Description: "Optimize hashtag selection for reach and engagement",
				Parameters: tools.Object(map[string]tools.Schema{
					"hashtags": tools.StringArray(""),
					"platform": tools.String(""),
				}, "hashtags", "platform"),
			},
			Handler: tools.Func(tools.OptimizeHashtags),
		},
		tools.Tool{
			Definition: tools.Definition{
				Name:        "generate_image_prompt",
				Description: "Generate a prompt for AI image generation",
				Parameters: tools.Object(map[string]tools.Schema{
					"description": tools.String(""),
					"style":       tools.String(""),
				}, "description"),
			},
			Handler: tools.Func(tools.GenerateImagePrompt),
		},
		tools.Tool{
			Definition: tools.Definition{
				Name:        "get_optimal_posting_time",
				Description: "Get optimal posting time for a platform and audience",
				Parameters: tools.Object(map[string]tools.Schema{
					"platform": tools.String(""),
					"audience": tools.String(""),
				}, "platform"),
			},
			Handler: tools.Func(tools.GetOptimalPostingTime),
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
	insights, err := json.MarshalIndent(req.ResearchInsights, "", "  ")
	if err != nil {
		return models.Failure(fmt.Errorf("marshal research insights: %w", err), nil)
	}
	task, err := template.Parse(prompts.ContentTask, struct {
		Brand, Product, TargetAudience, CampaignGoal, Tone, Platforms, ResearchInsights string
	}{
		Brand:            req.Brand,
		Product:          req.Product,
		TargetAudience:   req.TargetAudience,
		CampaignGoal:     req.CampaignGoal,
		Tone:             req.Tone,
		Platforms:        strings.Join(req.Platforms, ", "),
		ResearchInsights: string(insights),
	})
	if err != nil {
		return models.Failure(fmt.Errorf("content task: %w", err), nil)
	}
	return a.loop.Run(ctx, task, reporter)
}
