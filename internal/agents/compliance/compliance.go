// Package compliance is the compliance review agent. It checks each content
// piece against brand, legal and platform rules and returns annotated pieces
// together with an overall report.
package compliance

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
	Name:        "Compliance Reviewer",
	Description: "A meticulous compliance specialist who reviews content for brand guideline adherence, legal requirements, and platform policy compliance",
	Skills:      []string{"compliance/brand-guidelines.md"},
}

type Request struct {
	Brand         string
	ContentPieces []models.ContentPiece
	Platforms     []string
	Constraints   []string
}

// Review is the answer shape the compliance agent is asked to produce.
type Review struct {
	ContentPieces []models.ContentPiece   `json:"contentPieces"`
	Report        *models.ComplianceReport `json:"report"`
}

func Tools() *tools.Registry {
	return tools.NewRegistry(
		tools.Tool{
			Definition: tools.Definition{
				Name:        "check_brand_guidelines",
				Description: "Check content against brand guidelines",
				Parameters: tools.Object(map[string]tools.Schema{
					"content": tools.String(""),
					"brand":   tools.String(""),
				}, "content", "brand"),
			},
			Handler: tools.Func(tools.CheckBrandGuidelines),
		},
		tools.Tool{
			Definition: tools.Definition{
				Name:        "check_legal_compliance",
				Description: "Check content for legal compliance (FTC, copyright, etc.)",
				Parameters: tools.Object(map[string]tools.Schema{
					"content": tools.String(""),
					"region":  tools.String("Geographic region for compliance"),
				}, "content"),
			},
			Handler: tools.Func(tools.CheckLegalCompliance),
		},
		tools.Tool{
			Definition: tools.Definition{
				Name:        "check_platform_policies",
				Description: "Check content against platform-specific policies",
				Parameters: tools.Object(map[string]tools.Schema{
					"content":  tools.String(""),
					"platform": tools.String(""),
				}, "content", "platform"),
			},
			Handler: tools.Func(tools.CheckPlatformPolicies),
		},
		tools.Tool{
			Definition: tools.Definition{
				Name:        "scan_sensitive_content",
				Description: "Scan for potentially sensitive or controversial content",
				Parameters: tools.Object(map[string]tools.Schema{
					"content": tools.String(""),
				}, "content"),
			},
			Handler: tools.Func(tools.ScanSensitiveContent),
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
	pieces := req.ContentPieces
	if pieces == nil {
		pieces = []models.ContentPiece{}
	}
	body, err := json.MarshalIndent(pieces, "", "  ")
	if err != nil {
		return models.Failure(fmt.Errorf("marshal content pieces: %w", err), nil)
	}
	task, err := template.Parse(prompts.ComplianceTask, struct {
		Brand, Platforms, Constraints, ContentPieces string
	}{
		Brand:         req.Brand,
		Platforms:     strings.Join(req.Platforms, ", "),
		Constraints:   strings.Join(req.Constraints, ", "),
		ContentPieces: string(body),
	})
	if err != nil {
		return models.Failure(fmt.Errorf("compliance task: %w", err), nil)
	}
	return a.loop.Run(ctx, task, reporter)
}
