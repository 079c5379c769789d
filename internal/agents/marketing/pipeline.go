// Package marketing sequences the research, content and compliance agents
// into one campaign and assembles the execution plan.
package marketing

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"go-campaigner/internal/agents/compliance"
	"go-campaigner/internal/agents/content"
	"go-campaigner/internal/agents/research"
	"go-campaigner/internal/agents/toolloop"
	"go-campaigner/pkg/data"
	"go-campaigner/pkg/logger"
	"go-campaigner/pkg/models"
	"go-campaigner/pkg/progress"
	"go-campaigner/pkg/skills"
)

const (
	stageResearch   = "research"
	stageContent    = "content"
	stageCompliance = "compliance"
	stageAssembly   = "assembly"
)

const CompletedMessage = "Campaign generation complete"

type Researcher interface {
	Run(ctx context.Context, req research.Request, reporter *progress.Reporter) models.AgentResult
}

type ContentCreator interface {
	Run(ctx context.Context, req content.Request, reporter *progress.Reporter) models.AgentResult
}

type Reviewer interface {
	Run(ctx context.Context, req compliance.Request, reporter *progress.Reporter) models.AgentResult
}

type Dependencies struct {
	Research   Researcher
	Content    ContentCreator
	Compliance Reviewer
	Metrics    *Metrics
}

// Pipeline holds no per-run state and may serve concurrent runs.
type Pipeline struct {
	research   Researcher
	content    ContentCreator
	compliance Reviewer
	metrics    *Metrics
}

func New(deps Dependencies) *Pipeline {
	return &Pipeline{
		research:   deps.Research,
		content:    deps.Content,
		compliance: deps.Compliance,
		metrics:    deps.Metrics,
	}
}

// Build wires the three specialist agents around one reasoning service.
func Build(reasoner toolloop.Reasoner, lib *skills.Library, metrics *Metrics, opts ...toolloop.Option) (*Pipeline, error) {
	r, err := research.New(reasoner, lib, opts...)
	if err != nil {
		return nil, fmt.Errorf("research agent: %w", err)
	}
	c, err := content.New(reasoner, lib, opts...)
	if err != nil {
		return nil, fmt.Errorf("content agent: %w", err)
	}
	v, err := compliance.New(reasoner, lib, opts...)
	if err != nil {
		return nil, fmt.Errorf("compliance agent: %w", err)
	}
	return New(Dependencies{Research: r, Content: c, Compliance: v, Metrics: metrics}), nil
}

// run is the bookkeeping of a single pipeline execution.
type run struct {
	lg       zerolog.Logger
	reporter *progress.Reporter
	metrics  *Metrics
	state    models.State
	executed []string
}

func (r *run) enter(next models.State) {
	if !r.state.CanTransition(next) {
		r.lg.Warn().Str("from", string(r.state)).Str("to", string(next)).Msg("unexpected pipeline transition")
	}
	r.lg.Debug().Str(logger.StageField, string(next)).Msg("pipeline stage")
	r.state = next
}

func (r *run) fail(err error) models.AgentResult {
	r.enter(models.Failed)
	r.reporter.Error("Campaign generation failed", err.Error())
	r.metrics.IncCampaign("failed")
	r.lg.Error().Err(err).Msg("campaign generation failed")
	return models.Failure(err, r.executed)
}

func (r *run) observe(stage, status string, start time.Time, res models.AgentResult) {
	r.metrics.ObserveStage(stage, status, time.Since(start))
	r.metrics.AddToolCalls(stage, len(res.ToolCallsExecuted))
}

// Run executes research, content, compliance and assembly in order. Research
// and content failures end the run; a compliance failure is tolerated and
// flagged in the report. Output of a successful result is *models.CampaignResult.
func (p *Pipeline) Run(ctx context.Context, req models.CampaignRequest, reporter *progress.Reporter) (result models.AgentResult) {
	if reporter == nil {
		reporter = progress.New()
	}
	r := &run{
		lg:       log.With().Str(logger.AgentNameField, "Marketing Orchestrator").Str("brand", req.Brand).Logger(),
		reporter: reporter,
		metrics:  p.metrics,
		state:    models.NotStarted,
		executed: make([]string, 0),
	}

	p.metrics.IncActive()
	defer p.metrics.DecActive()
	defer func() {
		if rec := recover(); rec != nil {
			result = r.fail(fmt.Errorf("%v", rec))
		}
	}()

	reporter.Start("Starting campaign generation")
	if err := req.Validate(); err != nil {
		return r.fail(fmt.Errorf("invalid request: %w", err))
	}

	// research
	r.enter(models.Researching)
	reporter.UpdateTo("Phase 1/4: Conducting market research...", 10)
	start := time.Now()
	researchRes := p.research.Run(ctx, research.Request{
		Brand:          req.Brand,
		Product:        req.Product,
		TargetAudience: req.TargetAudience,
		Platforms:      req.Platforms,
	}, reporter)
	r.executed = append(r.executed, researchRes.ToolCallsExecuted...)
	if !researchRes.Success {
		r.observe(stageResearch, "failed", start, researchRes)
		return r.fail(fmt.Errorf("research phase failed: %s", researchRes.Error))
	}
	insights := decodeInsights(outputText(researchRes))
	r.observe(stageResearch, "ok", start, researchRes)

	// content
	r.enter(models.CreatingContent)
	reporter.UpdateTo("Phase 2/4: Creating content...", 35)
	start = time.Now()
	contentRes := p.content.Run(ctx, content.Request{
		Brand:            req.Brand,
		Product:          req.Product,
		TargetAudience:   req.TargetAudience,
		Platforms:        req.Platforms,
		Tone:             req.Tone,
		CampaignGoal:     req.CampaignGoal,
		ResearchInsights: insights,
	}, reporter)
	r.executed = append(r.executed, contentRes.ToolCallsExecuted...)
	if !contentRes.Success {
		r.observe(stageContent, "failed", start, contentRes)
		return r.fail(fmt.Errorf("content creation phase failed: %s", contentRes.Error))
	}
	pieces := decodePieces(outputText(contentRes))
	r.observe(stageContent, "ok", start, contentRes)

	// compliance
	r.enter(models.ReviewingCompliance)
	reporter.UpdateTo("Phase 3/4: Reviewing compliance...", 60)
	start = time.Now()
	complianceRes := p.compliance.Run(ctx, compliance.Request{
		Brand:         req.Brand,
		ContentPieces: pieces,
		Platforms:     req.Platforms,
		Constraints:   req.Constraints,
	}, reporter)
	r.executed = append(r.executed, complianceRes.ToolCallsExecuted...)
	reviewed, report, status := decodeReview(complianceRes, pieces)
	if status != "ok" {
		r.lg.Warn().Str(logger.StageField, stageCompliance).Str("status", status).Msg("compliance review degraded")
	}
	r.observe(stageCompliance, status, start, complianceRes)

	// assembly
	r.enter(models.Assembling)
	reporter.UpdateTo("Phase 4/4: Assembling final campaign...", 85)
	start = time.Now()
	campaign := &models.CampaignResult{
		ResearchInsights: insights,
		ContentPieces:    reviewed,
		ComplianceReport: report,
		ExecutionPlan:    BuildExecutionPlan(reviewed, req.Platforms),
	}
	p.metrics.ObserveStage(stageAssembly, "ok", time.Since(start))

	r.enter(models.Completed)
	reporter.Complete(CompletedMessage)
	p.metrics.IncCampaign("completed")
	r.lg.Info().Int("pieces", len(reviewed)).Strs("tools", r.executed).Msg("campaign generated")
	return models.Succeeded(campaign, r.executed, "")
}

func outputText(res models.AgentResult) string {
	if s, ok := res.Output.(string); ok {
		return s
	}
	return fmt.Sprint(res.Output)
}

// decodeInsights expects a JSON object and falls back to wrapping the text.
func decodeInsights(text string) map[string]any {
	var insights map[string]any
	if err := data.Decode(text, &insights); err != nil || insights == nil {
		return map[string]any{"rawInsights": text}
	}
	return insights
}

// decodePieces expects a JSON array of pieces and falls back to a single raw piece.
func decodePieces(text string) []models.ContentPiece {
	var pieces []models.ContentPiece
	if err := data.Decode(text, &pieces); err != nil || pieces == nil {
		return []models.ContentPiece{{RawContent: text}}
	}
	return pieces
}

// decodeReview merges the compliance answer with the pre-review pieces. The
// returned status is "ok", "failed" or "undecodable".
func decodeReview(res models.AgentResult, pieces []models.ContentPiece) ([]models.ContentPiece, models.ComplianceReport, string) {
	if !res.Success {
		return pieces, unreviewed(
			"Compliance review did not complete; content has not been reviewed.",
			"The review error is attached verbatim in rawOutput.",
			res.Error,
		), "failed"
	}

	text := outputText(res)
	var review compliance.Review
	if err := data.Decode(text, &review); err != nil {
		return pieces, unreviewed(
			"Compliance review output could not be parsed; content has not been reviewed.",
			"The review output is attached verbatim in rawOutput.",
			text,
		), "undecodable"
	}

	reviewed := review.ContentPieces
	if len(reviewed) == 0 {
		reviewed = pieces
	}
	if review.Report == nil {
		return reviewed, unreviewed("Compliance review returned no report.", "", text), "ok"
	}
	report := *review.Report
	if report.OverallStatus == "" {
		report.OverallStatus = models.NeedsRevision
	}
	if report.Issues == nil {
		report.Issues = []models.ComplianceIssue{}
	}
	return reviewed, report, "ok"
}

func unreviewed(note, detail, raw string) models.ComplianceReport {
	notes := []string{note}
	if detail != "" {
		notes = append(notes, detail)
	}
	return models.ComplianceReport{
		OverallStatus: models.NeedsRevision,
		Issues:        []models.ComplianceIssue{},
		Notes:         notes,
		RawOutput:     raw,
	}
}
