// Package actor hosts one campaign run. The actor is the only writer of the
// run's status; the pipeline itself runs on its own goroutine and reports
// back through messages, so status polls are answered while it works.
package actor

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/asynkron/protoactor-go/actor"
	"github.com/rs/zerolog/log"

	"go-campaigner/internal/agents/marketing"
	"go-campaigner/pkg/logger"
	"go-campaigner/pkg/messages"
	"go-campaigner/pkg/models"
	"go-campaigner/pkg/progress"
)

const FailedMessage = "Campaign generation failed"

type Runner interface {
	Run(ctx context.Context, req models.CampaignRequest, reporter *progress.Reporter) models.AgentResult
}

type Campaign struct {
	runner  Runner
	status  models.CampaignStatus
	started bool
	now     func() time.Time
}

// New returns a producer of campaign actors that run their pipeline with runner.
func New(runner Runner) actor.Producer {
	return func() actor.Actor {
		return &Campaign{runner: runner, now: time.Now}
	}
}

// Props spawns campaign actors under a one-for-one restart strategy.
func Props(runner Runner) *actor.Props {
	decider := func(reason interface{}) actor.Directive {
		log.Error().Msgf("handling failure for campaign actor. reason: %v", reason)
		return actor.RestartDirective
	}
	strategy := actor.NewOneForOneStrategy(3, 10000, decider)
	return actor.PropsFromProducer(New(runner), actor.WithSupervisor(strategy))
}

func (c *Campaign) Receive(ac actor.Context) {
	l := log.With().Fields(map[string]interface{}{
		logger.ActorIDField:    ac.Self().GetId(),
		logger.CampaignIDField: c.status.CampaignID,
	}).Logger()

	switch msg := ac.Message().(type) {
	case *actor.Started:
		l.Debug().Msg("starting actor")
	case *actor.Stopping:
		l.Debug().Msg("stopping actor")
	case *actor.Stopped:
		l.Debug().Msg("stopped actor")
	case *actor.Restarting:
		l.Debug().Msg("restarting actor")
	case messages.NewCampaign:
		if c.started {
			l.Warn().Msg("campaign already started, ignoring")
			return
		}
		c.started = true
		now := c.now()
		c.status = models.CampaignStatus{
			CampaignID: msg.CampaignID.String(),
			Status:     progress.Started,
			Message:    "Campaign generation started",
			Events:     make([]progress.Event, 0),
			CreatedAt:  now,
			UpdatedAt:  now,
		}
		l.Info().Str(logger.CampaignIDField, c.status.CampaignID).Str("brand", msg.Request.Brand).Msg("starting campaign")
		c.start(ac.ActorSystem().Root, ac.Self(), msg.Request)
	case messages.ProgressReported:
		c.record(msg.Event)
	case messages.CampaignFinished:
		c.finish(msg.Result)
		l.Info().Str("status", string(c.status.Status)).Msg("campaign finished")
	case messages.GetStatus:
		ac.Respond(c.snapshot())
	default:
		l.Warn().Msgf("unknown message: %v", msg)
	}
}

// start runs the pipeline off the mailbox. Progress events and the final
// result are sent back to self in emission order.
func (c *Campaign) start(root *actor.RootContext, self *actor.PID, req models.CampaignRequest) {
	runner := c.runner
	go func() {
		reporter := progress.New()
		unsubscribe := reporter.Subscribe(func(ev progress.Event) {
			root.Send(self, messages.ProgressReported{Event: ev})
		})

		res := runSafely(runner, req, reporter)
		unsubscribe()
		root.Send(self, messages.CampaignFinished{Result: res})
	}()
}

func runSafely(runner Runner, req models.CampaignRequest, reporter *progress.Reporter) (res models.AgentResult) {
	defer func() {
		if p := recover(); p != nil {
			err := fmt.Errorf("%v", p)
			reporter.Error(FailedMessage, err.Error())
			res = models.Failure(err, nil)
		}
	}()
	return runner.Run(context.Background(), req, reporter)
}

// record appends ev to the log. A terminal event only lands in the log; the
// status turns terminal in finish, together with the result or error.
func (c *Campaign) record(ev progress.Event) {
	c.status.Events = append(c.status.Events, ev)
	c.status.UpdatedAt = c.now()
	if ev.Status == progress.Completed || ev.Status == progress.Error {
		if c.status.Status == progress.Started {
			c.status.Status = progress.InProgress
		}
		return
	}
	c.status.Status = ev.Status
	c.status.Progress = ev.Progress
	c.status.Message = ev.Message
}

func (c *Campaign) finish(res models.AgentResult) {
	c.status.ToolCalls = res.ToolCallsExecuted
	c.status.UpdatedAt = c.now()
	if res.Success {
		c.status.Status = progress.Completed
		c.status.Progress = 100
		c.status.Message = marketing.CompletedMessage
		if campaign, ok := res.Output.(*models.CampaignResult); ok {
			c.status.Result = campaign
		}
		return
	}
	c.status.Status = progress.Error
	c.status.Error = res.Error
	c.status.Message = res.Error
	if c.status.Message == "" {
		c.status.Message = FailedMessage
	}
}

func (c *Campaign) snapshot() models.CampaignStatus {
	s := c.status
	s.Events = append([]progress.Event(nil), c.status.Events...)
	s.ToolCalls = append([]string(nil), c.status.ToolCalls...)
	return s
}

var ErrUnexpectedReply = errors.New("unexpected reply from campaign actor")

// Status asks the campaign actor at pid for its current status.
func Status(root *actor.RootContext, pid *actor.PID, timeout time.Duration) (models.CampaignStatus, error) {
	res, err := root.RequestFuture(pid, messages.GetStatus{}, timeout).Result()
	if err != nil {
		return models.CampaignStatus{}, fmt.Errorf("request status: %w", err)
	}
	status, ok := res.(models.CampaignStatus)
	if !ok {
		return models.CampaignStatus{}, fmt.Errorf("%w: %T", ErrUnexpectedReply, res)
	}
	return status, nil
}
