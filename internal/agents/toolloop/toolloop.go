// Package toolloop drives one agent's bounded exchange with the reasoning
// service: ask, run the requested tools one by one, feed the results back,
// and stop at the first answer that requests no tools.
package toolloop

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"

	"go-campaigner/pkg/logger"
	"go-campaigner/pkg/memory/buffer"
	"go-campaigner/pkg/models"
	"go-campaigner/pkg/progress"
	"go-campaigner/pkg/prompts"
	"go-campaigner/pkg/skills"
	"go-campaigner/pkg/template"
	"go-campaigner/pkg/tools"
)

const DefaultMaxIterations = 5

var ErrBudgetExhausted = errors.New("iteration budget exhausted")

// Response is one reply of the reasoning service: either final text, or one
// or more tool calls to run before asking again.
type Response struct {
	Text      string
	ToolCalls []models.ToolCall
}

// Reasoner is the reasoning service. A returned error ends the run.
type Reasoner interface {
	Reason(ctx context.Context, instructions string, turns []models.Turn, catalog []tools.Definition) (Response, error)
}

type ReasonerFunc func(ctx context.Context, instructions string, turns []models.Turn, catalog []tools.Definition) (Response, error)

func (f ReasonerFunc) Reason(ctx context.Context, instructions string, turns []models.Turn, catalog []tools.Definition) (Response, error) {
	return f(ctx, instructions, turns, catalog)
}

// Descriptor identifies an agent and the skills its instructions include.
type Descriptor struct {
	Name        string
	Description string
	Skills      []string
}

// Instructions renders the fixed instruction block for d.
func (d Descriptor) Instructions(lib *skills.Library) (string, error) {
	var composed string
	if lib != nil {
		composed = lib.Compose(d.Skills)
	}
	out, err := template.Parse(prompts.AgentInstructions, struct {
		Name, Description, Skills string
	}{d.Name, d.Description, composed})
	if err != nil {
		return "", fmt.Errorf("instructions for %s: %w", d.Name, err)
	}
	return out, nil
}

type Loop struct {
	name          string
	instructions  string
	tools         *tools.Registry
	reasoner      Reasoner
	maxIterations int
}

type Option func(*Loop)

// WithMaxIterations bounds the number of reasoning calls per run. Values
// below one keep the default.
func WithMaxIterations(n int) Option {
	return func(l *Loop) {
		if n > 0 {
			l.maxIterations = n
		}
	}
}

func New(name, instructions string, registry *tools.Registry, reasoner Reasoner, opts ...Option) *Loop {
	if registry == nil {
		registry = tools.NewRegistry()
	}
	l := &Loop{
		name:          name,
		instructions:  instructions,
		tools:         registry,
		reasoner:      reasoner,
		maxIterations: DefaultMaxIterations,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

func (l *Loop) Name() string { return l.name }

func (l *Loop) Instructions() string { return l.instructions }

func (l *Loop) MaxIterations() int { return l.maxIterations }

// Run executes task to completion or until the iteration budget is spent.
// Progress is reported on reporter; a nil reporter gets a private one.
func (l *Loop) Run(ctx context.Context, task string, reporter *progress.Reporter) models.AgentResult {
	if reporter == nil {
		reporter = progress.New()
	}
	lg := log.With().Str(logger.AgentNameField, l.name).Logger()

	conv := buffer.New()
	executed := make([]string, 0)
	fail := func(err error) models.AgentResult {
		lg.Error().Err(err).Strs("tools", executed).Msg("agent run failed")
		res := models.Failure(err, executed)
		res.Transcript = conv.Turns()
		return res
	}

	if err := conv.Add(models.UserTurn(task)); err != nil {
		return fail(err)
	}

	catalog := l.tools.Catalog()
	for i := 1; i <= l.maxIterations; i++ {
		reporter.Update(fmt.Sprintf("%s: iteration %d/%d", l.name, i, l.maxIterations))
		lg.Debug().Int(logger.IterationField, i).Msg("asking reasoning service")

		resp, err := l.reasoner.Reason(ctx, l.instructions, conv.Turns(), catalog)
		if err != nil {
			return fail(fmt.Errorf("reason: %w", err))
		}

		if len(resp.ToolCalls) == 0 {
			lg.Info().Int(logger.IterationField, i).Strs("tools", executed).Msg("agent produced final answer")
			res := models.Succeeded(resp.Text, executed, resp.Text)
			res.Transcript = conv.Turns()
			return res
		}

		for _, call := range resp.ToolCalls {
			reporter.Update(fmt.Sprintf("%s: executing tool %s", l.name, call.Name))
			lg.Info().Int(logger.IterationField, i).Str(logger.ToolField, call.Name).Msg("executing tool")

			args, err := decodeArguments(call.Arguments)
			if err != nil {
				return fail(fmt.Errorf("tool %s: %w", call.Name, err))
			}
			result := l.tools.Dispatch(ctx, call.Name, args)
			executed = append(executed, call.Name)

			payload, err := json.Marshal(result)
			if err != nil {
				return fail(fmt.Errorf("tool %s: marshal result: %w", call.Name, err))
			}
			if err := conv.Add(models.AssistantTurn(call)); err != nil {
				return fail(err)
			}
			if err := conv.Add(models.ToolTurn(call, string(payload))); err != nil {
				return fail(err)
			}
		}
	}

	lg.Warn().Int("max_iterations", l.maxIterations).Msg("iteration budget exhausted")
	res := models.Failure(ErrBudgetExhausted, executed)
	res.Transcript = conv.Turns()
	return res
}

// decodeArguments accepts a JSON object; an empty payload means no arguments.
func decodeArguments(payload string) (map[string]any, error) {
	if payload == "" {
		return map[string]any{}, nil
	}
	var args map[string]any
	if err := json.Unmarshal([]byte(payload), &args); err != nil {
		return nil, fmt.Errorf("decode arguments: %w", err)
	}
	if args == nil {
		return nil, errors.New("decode arguments: not a JSON object")
	}
	return args, nil
}
